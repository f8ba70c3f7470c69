package speech

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "faqbot/pkg/errors"
)

func TestSplitText(t *testing.T) {
	assert.Empty(t, SplitText("   ", 10))
	assert.Equal(t, []string{"hello world"}, SplitText("hello   world", 20))
	assert.Equal(t, []string{"aaa bbb", "ccc"}, SplitText("aaa bbb ccc", 7))
	assert.Equal(t, []string{"abcd", "efgh", "ij k"}, SplitText("abcdefghij k", 4))

	assert.Equal(t, []string{"First sentence here.", "Second one."}, SplitText("First sentence here. Second one.", 30))
	assert.Equal(t, []string{"Hi. There is more"}, SplitText("Hi. There is more", 30))

	long := strings.Repeat("palabra ", 40)
	for _, p := range SplitText(long, MaxChunk) {
		assert.LessOrEqual(t, utf8.RuneCountInString(p), MaxChunk)
	}
	assert.Equal(t, strings.TrimSpace(long), strings.Join(SplitText(long, MaxChunk), " "))
}

func TestSentences(t *testing.T) {
	assert.Equal(t, []string{"Hello.", " How are you?", "fine"}, sentences("Hello. How are you?fine"))
	assert.Empty(t, sentences("   "))
}

func TestSupports(t *testing.T) {
	c := NewClient(Config{})
	assert.True(t, c.Supports("es"))
	assert.True(t, c.Supports("zh-CN"))
	assert.False(t, c.Supports("ig"))
	assert.False(t, c.Supports(""))
}

func TestSynthesizeConcatenatesChunks(t *testing.T) {
	var (
		mu  sync.Mutex
		idx []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/translate_tts", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "tw-ob", q.Get("client"))
		assert.Equal(t, "es", q.Get("tl"))
		assert.Equal(t, "2", q.Get("total"))
		mu.Lock()
		idx = append(idx, q.Get("idx"))
		mu.Unlock()
		_, _ = w.Write([]byte("mp3-" + q.Get("idx") + ";"))
	}))
	defer srv.Close()

	text := strings.Repeat("hola ", 30)
	audio, err := NewClient(Config{BaseURL: srv.URL}).Synthesize(context.Background(), text, "es")
	require.NoError(t, err)
	assert.Equal(t, "mp3-0;mp3-1;", string(audio))
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"0", "1"}, idx)
}

func TestSynthesizeUnsupportedLanguage(t *testing.T) {
	_, err := NewClient(Config{}).Synthesize(context.Background(), "nnoo", "ig")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeSpeech))
	assert.Contains(t, err.Error(), "audio playback is not available")
}

func TestSynthesizeErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	_, err := c.Synthesize(context.Background(), "hola", "es")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeSpeech))

	_, err = c.Synthesize(context.Background(), "  ", "es")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	url := srv.URL
	srv.Close()
	_, err = NewClient(Config{BaseURL: url}).Synthesize(context.Background(), "hola", "es")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNetwork))
}
