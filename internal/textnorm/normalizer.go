// Package textnorm turns free text into the canonical token sequence used
// for question matching: lowercase, tokenize, drop punctuation and
// stopwords, lemmatize.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"faqbot/internal/domain"
)

// Resources bundles the linguistic data a Normalizer depends on.
// Resources are immutable once built and may be shared between normalizers.
type Resources struct {
	Language   language.Tag
	Tokenizer  domain.Tokenizer
	Stopwords  domain.StopwordSet
	Lemmatizer domain.Lemmatizer
}

// English returns the standard English resource set.
func English() Resources {
	return Resources{
		Language:   language.English,
		Tokenizer:  WordTokenizer{},
		Stopwords:  EnglishStopwords(),
		Lemmatizer: EnglishLemmatizer(),
	}
}

// Normalizer implements domain.Normalizer. It is safe for concurrent use.
type Normalizer struct {
	res Resources
}

// New creates a Normalizer. Nil resource fields fall back to the English set.
func New(res Resources) *Normalizer {
	def := English()
	if res.Language == language.Und {
		res.Language = def.Language
	}
	if res.Tokenizer == nil {
		res.Tokenizer = def.Tokenizer
	}
	if res.Stopwords == nil {
		res.Stopwords = def.Stopwords
	}
	if res.Lemmatizer == nil {
		res.Lemmatizer = def.Lemmatizer
	}
	return &Normalizer{res: res}
}

// Normalize lowercases text, tokenizes it, discards punctuation-only tokens
// and stopwords, lemmatizes what is left, drops lemmas that are stopwords and
// joins the rest with single spaces. Empty or whitespace-only input yields "".
func (n *Normalizer) Normalize(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	// cases.Caser keeps state between calls and must not be shared.
	lowered := cases.Lower(n.res.Language).String(norm.NFKC.String(text))
	tokens := n.res.Tokenizer.Tokenize(lowered)
	lemmas := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if isPunctuation(tok) || n.res.Stopwords.Contains(tok) {
			continue
		}
		lemma := n.res.Lemmatizer.Lemmatize(tok)
		// "doings" -> "doing" must not survive a second pass
		if n.res.Stopwords.Contains(lemma) {
			continue
		}
		lemmas = append(lemmas, lemma)
	}
	return strings.Join(lemmas, " ")
}

// NormalizeAll normalizes texts preserving index alignment.
func (n *Normalizer) NormalizeAll(texts []string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = n.Normalize(t)
	}
	return out
}

func isPunctuation(tok string) bool {
	if tok == "" {
		return true
	}
	for _, r := range tok {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}
