package embedding

// Embedder converts free text into a numeric vector representation.
// Prepare fits the vector space over a corpus; Embed then projects text into
// that frozen space without changing it.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(text string) ([]float64, error)
}

// Factory returns a fresh, unprepared Embedder.
type Factory func() Embedder
