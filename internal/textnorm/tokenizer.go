package textnorm

import (
	"strings"
	"unicode"
)

// WordTokenizer splits text on whitespace and punctuation boundaries.
// Connectors (- . ') between two word characters stay inside the token, so
// "9am-9pm" and "o'clock" survive whole, while English clitics are split
// off: "what's" becomes "what" + "'s".
type WordTokenizer struct{}

var clitics = []string{"n't", "'s", "'re", "'ve", "'ll", "'d", "'m"}

// Tokenize implements domain.Tokenizer.
func (WordTokenizer) Tokenize(text string) []string {
	runes := []rune(text)
	var tokens []string
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case isWordRune(r):
			j := i + 1
			for j < len(runes) {
				if isWordRune(runes[j]) {
					j++
					continue
				}
				if isConnector(runes[j]) && j+1 < len(runes) && isWordRune(runes[j+1]) {
					j += 2
					continue
				}
				break
			}
			tokens = append(tokens, splitClitics(string(runes[i:j]))...)
			i = j
		default:
			j := i + 1
			for j < len(runes) && !unicode.IsSpace(runes[j]) && !isWordRune(runes[j]) {
				j++
			}
			tokens = append(tokens, string(runes[i:j]))
			i = j
		}
	}
	return tokens
}

func splitClitics(word string) []string {
	w := strings.ReplaceAll(word, "’", "'")
	switch w {
	case "can't":
		return []string{"can", "n't"}
	case "won't":
		return []string{"will", "n't"}
	case "cannot":
		return []string{"can", "not"}
	}
	for _, c := range clitics {
		if len(w) > len(c) && strings.HasSuffix(w, c) {
			return []string{w[:len(w)-len(c)], c}
		}
	}
	return []string{w}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

func isConnector(r rune) bool {
	return r == '-' || r == '.' || r == '\'' || r == '’'
}
