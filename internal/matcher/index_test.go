package matcher

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faqbot/internal/domain"
	"faqbot/internal/embedding/tfidf"
)

func TestIndexAgreesWithFindBestMatch(t *testing.T) {
	m := newMatcher()
	corpus := domain.Corpus{
		{Question: "What are the library hours?", Answer: "9am-9pm"},
		{Question: "How do I reset my password?", Answer: "Use the portal link"},
		{Question: "How do I apply for scholarships?", Answer: "Through the financial aid office"},
		{Question: "Where can I find the exam timetable?", Answer: "On the registrar's page"},
	}
	ix := m.NewIndex(corpus)
	require.NoError(t, ix.Err())
	assert.Equal(t, 4, ix.Len())

	queries := []string{
		"",
		"library opening hours",
		"forgot password",
		"scholarship applications",
		"exam schedule",
		"asdkjf qweroi",
	}
	for _, q := range queries {
		assert.Equal(t, m.FindBestMatch(q, corpus), ix.Match(q), "query %q", q)
	}
}

func TestIndexEmptyCorpus(t *testing.T) {
	ix := newMatcher().NewIndex(nil)
	require.NoError(t, ix.Err())
	res := ix.Match("library")
	assert.False(t, res.Resolved)
	assert.Equal(t, 0.0, res.Confidence)
}

func TestIndexReportsFitError(t *testing.T) {
	ix := newMatcher().NewIndex(domain.Corpus{{Question: "Is it?", Answer: "x"}})
	require.ErrorIs(t, ix.Err(), tfidf.ErrEmptyVocabulary)
	assert.False(t, ix.Match("is it").Resolved)
}

func TestIndexConcurrentMatch(t *testing.T) {
	ix := newMatcher().NewIndex(libraryCorpus())
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				assert.Equal(t, "Use the portal link", ix.Match("reset my password").Answer)
			}
		}()
	}
	wg.Wait()
}
