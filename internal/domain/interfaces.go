package domain

// QuestionEntry is a single question/answer pair of the FAQ bank.
// Its identity is its position in the Corpus.
type QuestionEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Corpus is the ordered, read-only question bank loaded at startup.
type Corpus []QuestionEntry

// Questions returns the question texts in corpus order.
func (c Corpus) Questions() []string {
	out := make([]string, len(c))
	for i, e := range c {
		out[i] = e.Question
	}
	return out
}

// SearchResult is the best-scoring corpus entry for a query vector.
type SearchResult struct {
	Index int
	Entry QuestionEntry
	Score float64
}

// MatchResult is the answer picked for a user query.
// Resolved is false when no entry cleared the confidence threshold; Answer
// then holds the fallback message and Index is -1.
type MatchResult struct {
	Answer     string
	Confidence float64
	Resolved   bool
	Index      int
	Question   string
}

// Normalizer maps raw text to its canonical token sequence.
type Normalizer interface {
	Normalize(text string) string
}

// Tokenizer splits lowercased text into word-level tokens.
type Tokenizer interface {
	Tokenize(text string) []string
}

// Lemmatizer reduces a token to its dictionary base form.
type Lemmatizer interface {
	Lemmatize(token string) string
}

// StopwordSet reports whether a token carries no matching signal.
type StopwordSet interface {
	Contains(token string) bool
}

// FAQService defines the operations exposed by the chatbot core.
type FAQService interface {
	Ask(question string) MatchResult
}
