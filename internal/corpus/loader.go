// Package corpus loads the FAQ question bank.
package corpus

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"faqbot/internal/domain"
	apperrors "faqbot/pkg/errors"
)

//go:embed qa_data.json
var defaultBank []byte

type document struct {
	Questions []domain.QuestionEntry `json:"questions"`
}

// Default returns the built-in university FAQ bank.
func Default() (domain.Corpus, error) {
	return Parse(bytes.NewReader(defaultBank))
}

// Load reads a question bank from path. An empty path selects the built-in
// bank.
func Load(path string) (domain.Corpus, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeCorpus, "open question bank", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a {"questions": [{"question": ..., "answer": ...}]} document.
// Every entry must carry a non-blank question.
func Parse(r io.Reader) (domain.Corpus, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeCorpus, "decode question bank", err)
	}
	for i, e := range doc.Questions {
		if strings.TrimSpace(e.Question) == "" {
			return nil, apperrors.Wrap(apperrors.CodeCorpus, fmt.Sprintf("entry %d has an empty question", i), nil)
		}
	}
	return domain.Corpus(doc.Questions), nil
}
