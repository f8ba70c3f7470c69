package vectorstore

import (
	"errors"

	"faqbot/internal/domain"
)

// ErrEmpty is returned by Nearest when the store holds no vectors.
var ErrEmpty = errors.New("vector store is empty")

// Storage holds one vector per corpus entry and finds the closest one.
type Storage interface {
	Init(dimension int) error
	Upsert(entries []domain.QuestionEntry, vectors [][]float64) error
	Nearest(vector []float64) (domain.SearchResult, error)
	Len() int
	Clear() error
}

// Factory returns a fresh, empty Storage.
type Factory func() Storage
