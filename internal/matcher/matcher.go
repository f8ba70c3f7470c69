// Package matcher picks the FAQ entry whose question is lexically closest to
// a user query, using TF-IDF vectors and cosine similarity.
package matcher

import (
	"strings"

	"faqbot/internal/domain"
	"faqbot/internal/embedding"
	"faqbot/internal/embedding/tfidf"
	"faqbot/internal/vectorstore"
	"faqbot/internal/vectorstore/memory"
)

const (
	// ConfidenceThreshold is the similarity a match must strictly exceed.
	ConfidenceThreshold = 0.2
	// FallbackMessage is answered when no question is similar enough.
	FallbackMessage = "I'm sorry, I don't have an answer to that. Could you try rephrasing your question?"
)

// Matcher scores queries against a corpus. It holds no per-query state and
// is safe for concurrent use.
type Matcher struct {
	normalizer  domain.Normalizer
	newEmbedder embedding.Factory
	newStore    vectorstore.Factory
}

// New creates a Matcher backed by the TF-IDF embedder and the in-memory
// vector store.
func New(normalizer domain.Normalizer) *Matcher {
	return NewWith(normalizer,
		func() embedding.Embedder { return tfidf.NewEmbedder() },
		func() vectorstore.Storage { return memory.NewStorage() },
	)
}

// NewWith creates a Matcher with explicit embedder and store factories.
func NewWith(normalizer domain.Normalizer, newEmbedder embedding.Factory, newStore vectorstore.Factory) *Matcher {
	return &Matcher{normalizer: normalizer, newEmbedder: newEmbedder, newStore: newStore}
}

// FindBestMatch fits a vector space over corpus, projects query into it and
// returns the answer of the most similar question. The space is rebuilt on
// every call, so the cost is linear in corpus size; use NewIndex to fit once
// for a static corpus.
//
// A blank query or an empty corpus is unresolved with confidence 0 and no
// vectors are computed.
func (m *Matcher) FindBestMatch(query string, corpus domain.Corpus) domain.MatchResult {
	if strings.TrimSpace(query) == "" || len(corpus) == 0 {
		return unresolved(0)
	}
	sp, err := m.fit(corpus)
	if err != nil {
		return unresolved(0)
	}
	return sp.match(m.normalizer.Normalize(query))
}

// space is a vector space fitted over one corpus.
type space struct {
	embedder embedding.Embedder
	store    vectorstore.Storage
}

func (m *Matcher) fit(corpus domain.Corpus) (*space, error) {
	questions := corpus.Questions()
	normalized := make([]string, len(questions))
	for i, q := range questions {
		normalized[i] = m.normalizer.Normalize(q)
	}
	emb := m.newEmbedder()
	if err := emb.Prepare(normalized); err != nil {
		return nil, err
	}
	vectors := make([][]float64, len(normalized))
	for i, text := range normalized {
		vec, err := emb.Embed(text)
		if err != nil {
			return nil, err
		}
		vectors[i] = vec
	}
	st := m.newStore()
	if err := st.Init(emb.Dimension()); err != nil {
		return nil, err
	}
	if err := st.Upsert(corpus, vectors); err != nil {
		return nil, err
	}
	return &space{embedder: emb, store: st}, nil
}

func (sp *space) match(normalizedQuery string) domain.MatchResult {
	vec, err := sp.embedder.Embed(normalizedQuery)
	if err != nil {
		return unresolved(0)
	}
	hit, err := sp.store.Nearest(vec)
	if err != nil {
		return unresolved(0)
	}
	return decide(hit)
}

func decide(hit domain.SearchResult) domain.MatchResult {
	score := clamp01(hit.Score)
	if score > ConfidenceThreshold {
		return domain.MatchResult{
			Answer:     hit.Entry.Answer,
			Confidence: score,
			Resolved:   true,
			Index:      hit.Index,
			Question:   hit.Entry.Question,
		}
	}
	return unresolved(score)
}

func unresolved(confidence float64) domain.MatchResult {
	return domain.MatchResult{Answer: FallbackMessage, Confidence: confidence, Index: -1}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
