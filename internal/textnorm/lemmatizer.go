package textnorm

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NounLemmatizer maps inflected English nouns to their base form using an
// irregular-form table followed by WordNet-style detachment rules. Tokens are
// treated as nouns, so verb inflections such as "running" are kept as is.
type NounLemmatizer struct {
	exceptions map[string]string
	invariant  map[string]struct{}
}

// NewNounLemmatizer builds a lemmatizer from an irregular-form table and a
// list of words that must never be reduced.
func NewNounLemmatizer(exceptions map[string]string, invariant []string) *NounLemmatizer {
	l := &NounLemmatizer{
		exceptions: make(map[string]string, len(exceptions)),
		invariant:  make(map[string]struct{}, len(invariant)),
	}
	for k, v := range exceptions {
		l.exceptions[k] = v
	}
	for _, w := range invariant {
		l.invariant[w] = struct{}{}
	}
	return l
}

// EnglishLemmatizer returns the standard English noun lemmatizer.
func EnglishLemmatizer() *NounLemmatizer {
	return NewNounLemmatizer(irregularNouns, invariantWords)
}

// Lemmatize implements domain.Lemmatizer. Every returned lemma maps to
// itself.
func (l *NounLemmatizer) Lemmatize(token string) string {
	if lemma, ok := l.lookup(token); ok {
		return lemma
	}
	if !isLetters(token) {
		return l.lemmatizeCompound(token)
	}
	if utf8.RuneCountInString(token) <= 3 {
		return token
	}
	return detach(token)
}

func (l *NounLemmatizer) lookup(token string) (string, bool) {
	if lemma, ok := l.exceptions[token]; ok {
		return lemma, true
	}
	if _, ok := l.invariant[token]; ok {
		return token, true
	}
	return "", false
}

// lemmatizeCompound reduces the final word of a connected token
// ("e-mails" -> "e-mail", "check-ins" -> "check-in"). Tokens whose final
// letter run is shorter than three letters, or that end in a digit, are left
// alone.
func (l *NounLemmatizer) lemmatizeCompound(token string) string {
	cut := strings.LastIndexFunc(token, func(r rune) bool { return !unicode.IsLetter(r) })
	_, size := utf8.DecodeRuneInString(token[cut:])
	head, tail := token[:cut+size], token[cut+size:]
	if utf8.RuneCountInString(tail) < 3 {
		return token
	}
	if lemma, ok := l.lookup(tail); ok {
		return head + lemma
	}
	return head + detach(tail)
}

// detach applies the noun suffix rules to an all-letter word.
func detach(token string) string {
	n := len(token)
	switch {
	case strings.HasSuffix(token, "ss"), strings.HasSuffix(token, "us"), strings.HasSuffix(token, "is"):
		return token
	case strings.HasSuffix(token, "sses"), strings.HasSuffix(token, "xes"), strings.HasSuffix(token, "zzes"),
		strings.HasSuffix(token, "ches"), strings.HasSuffix(token, "shes"):
		return token[:n-2]
	case n > 5 && strings.HasSuffix(token, "uses") && !isVowel(token[n-5]):
		// campuses, statuses, bonuses
		return token[:n-2]
	case n > 4 && strings.HasSuffix(token, "ies"):
		return token[:n-3] + "y"
	case strings.HasSuffix(token, "s"):
		return token[:n-1]
	}
	return token
}

func isLetters(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

var irregularNouns = map[string]string{
	"children":   "child",
	"men":        "man",
	"women":      "woman",
	"freshmen":   "freshman",
	"feet":       "foot",
	"teeth":      "tooth",
	"geese":      "goose",
	"mice":       "mouse",
	"oxen":       "ox",
	"data":       "datum",
	"criteria":   "criterion",
	"phenomena":  "phenomenon",
	"analyses":   "analysis",
	"theses":     "thesis",
	"crises":     "crisis",
	"diagnoses":  "diagnosis",
	"hypotheses": "hypothesis",
	"indices":    "index",
	"appendices": "appendix",
	"matrices":   "matrix",
	"alumni":     "alumnus",
	"curricula":  "curriculum",
	"syllabi":    "syllabus",
	"quizzes":    "quiz",
	"buses":      "bus",
	"halves":     "half",
	"lives":      "life",
	"knives":     "knife",
	"wives":      "wife",
	"leaves":     "leaf",
	"shelves":    "shelf",
	"wolves":     "wolf",
	"thieves":    "thief",
	"caches":     "cache",
	"headaches":  "headache",
	"niches":     "niche",
	"movies":     "movie",
	"cookies":    "cookie",
	"calories":   "calorie",
	"zombies":    "zombie",
	"selfies":    "selfie",
	"ties":       "tie",
	"pies":       "pie",
	"lies":       "lie",
	"excuses":    "excuse",
	"refuses":    "refuse",
	"fuses":      "fuse",
}

var invariantWords = []string{
	"news", "series", "species", "means", "lens", "atlas", "canvas", "bias", "alias", "chaos",
	"physics", "mathematics", "economics", "politics", "ethics", "athletics", "electronics",
	"logistics", "gymnastics", "statistics", "measles", "diabetes", "headquarters", "always",
	"sometimes", "towards", "afterwards", "besides", "nowadays", "whereas", "perhaps",
}
