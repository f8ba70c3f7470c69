package memory

import (
	"errors"
	"math"
	"sync"

	"faqbot/internal/domain"
	"faqbot/internal/vectorstore"
)

// Storage is a simple in-memory vector store using brute-force cosine
// similarity. Entries keep the order in which they were upserted; that order
// is the corpus index reported in search results.
type Storage struct {
	mu        sync.RWMutex
	dimension int
	vectors   [][]float64
	entries   []domain.QuestionEntry
}

// NewStorage creates an uninitialized store.
func NewStorage() *Storage { return &Storage{} }

// Init sets the vector dimension and drops any stored data.
func (s *Storage) Init(dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dimension
	s.vectors = nil
	s.entries = nil
	return nil
}

// Upsert appends entries and their vectors.
func (s *Storage) Upsert(entries []domain.QuestionEntry, vectors [][]float64) error {
	if len(entries) != len(vectors) {
		return errors.New("entries and vectors length mismatch")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range vectors {
		if len(v) != s.dimension {
			return errors.New("vector dimension mismatch")
		}
	}
	s.entries = append(s.entries, entries...)
	s.vectors = append(s.vectors, vectors...)
	return nil
}

// Nearest returns the entry with the highest cosine similarity to vector.
// Ties resolve to the lowest index; a zero vector scores 0 against all.
func (s *Storage) Nearest(vector []float64) (domain.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.vectors) == 0 {
		return domain.SearchResult{}, vectorstore.ErrEmpty
	}
	best := 0
	bestScore := cosine(s.vectors[0], vector)
	for i := 1; i < len(s.vectors); i++ {
		if score := cosine(s.vectors[i], vector); score > bestScore {
			best = i
			bestScore = score
		}
	}
	return domain.SearchResult{Index: best, Entry: s.entries[best], Score: bestScore}, nil
}

// Len reports the number of stored vectors.
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vectors)
}

// Clear drops stored vectors, keeping the dimension.
func (s *Storage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vectors = nil
	s.entries = nil
	return nil
}

func cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
