package matcher

import (
	"strings"

	"faqbot/internal/domain"
)

// Index is a vector space fitted once over a static corpus. Match only
// projects the query, trading the per-query rebuild of FindBestMatch for
// memory held for the lifetime of the index.
type Index struct {
	normalizer domain.Normalizer
	space      *space
	size       int
	err        error
}

// NewIndex fits corpus once. A corpus that cannot be fitted (empty, or no
// usable terms) produces an index that leaves every query unresolved; Err
// reports why.
func (m *Matcher) NewIndex(corpus domain.Corpus) *Index {
	ix := &Index{normalizer: m.normalizer, size: len(corpus)}
	if len(corpus) == 0 {
		return ix
	}
	ix.space, ix.err = m.fit(corpus)
	return ix
}

// Match returns the same result FindBestMatch would for the indexed corpus.
func (ix *Index) Match(query string) domain.MatchResult {
	if strings.TrimSpace(query) == "" || ix.space == nil {
		return unresolved(0)
	}
	return ix.space.match(ix.normalizer.Normalize(query))
}

// Len reports the number of indexed entries.
func (ix *Index) Len() int { return ix.size }

// Err reports the error encountered while fitting, if any.
func (ix *Index) Err() error { return ix.err }
