package translate

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
	"golang.org/x/text/language"

	apperrors "faqbot/pkg/errors"
)

// Language is a translation target offered by the endpoint.
type Language struct {
	Name string
	Code string
}

var languageCodes = map[string]string{
	"afrikaans": "af", "albanian": "sq", "amharic": "am", "arabic": "ar", "armenian": "hy",
	"assamese": "as", "aymara": "ay", "azerbaijani": "az", "bambara": "bm", "basque": "eu",
	"belarusian": "be", "bengali": "bn", "bhojpuri": "bho", "bosnian": "bs", "bulgarian": "bg",
	"catalan": "ca", "cebuano": "ceb", "chichewa": "ny", "chinese (simplified)": "zh-CN",
	"chinese (traditional)": "zh-TW", "corsican": "co", "croatian": "hr", "czech": "cs",
	"danish": "da", "dhivehi": "dv", "dogri": "doi", "dutch": "nl", "english": "en",
	"esperanto": "eo", "estonian": "et", "ewe": "ee", "filipino": "tl", "finnish": "fi",
	"french": "fr", "frisian": "fy", "galician": "gl", "georgian": "ka", "german": "de",
	"greek": "el", "guarani": "gn", "gujarati": "gu", "haitian creole": "ht", "hausa": "ha",
	"hawaiian": "haw", "hebrew": "iw", "hindi": "hi", "hmong": "hmn", "hungarian": "hu",
	"icelandic": "is", "igbo": "ig", "ilocano": "ilo", "indonesian": "id", "irish": "ga",
	"italian": "it", "japanese": "ja", "javanese": "jw", "kannada": "kn", "kazakh": "kk",
	"khmer": "km", "kinyarwanda": "rw", "konkani": "gom", "korean": "ko", "krio": "kri",
	"kurdish (kurmanji)": "ku", "kurdish (sorani)": "ckb", "kyrgyz": "ky", "lao": "lo",
	"latin": "la", "latvian": "lv", "lingala": "ln", "lithuanian": "lt", "luganda": "lg",
	"luxembourgish": "lb", "macedonian": "mk", "maithili": "mai", "malagasy": "mg",
	"malay": "ms", "malayalam": "ml", "maltese": "mt", "maori": "mi", "marathi": "mr",
	"meiteilon (manipuri)": "mni-Mtei", "mizo": "lus", "mongolian": "mn", "myanmar": "my",
	"nepali": "ne", "norwegian": "no", "odia (oriya)": "or", "oromo": "om", "pashto": "ps",
	"persian": "fa", "polish": "pl", "portuguese": "pt", "punjabi": "pa", "quechua": "qu",
	"romanian": "ro", "russian": "ru", "samoan": "sm", "sanskrit": "sa", "scots gaelic": "gd",
	"sepedi": "nso", "serbian": "sr", "sesotho": "st", "shona": "sn", "sindhi": "sd",
	"sinhala": "si", "slovak": "sk", "slovenian": "sl", "somali": "so", "spanish": "es",
	"sundanese": "su", "swahili": "sw", "swedish": "sv", "tajik": "tg", "tamil": "ta",
	"tatar": "tt", "telugu": "te", "thai": "th", "tigrinya": "ti", "tsonga": "ts",
	"turkish": "tr", "turkmen": "tk", "twi": "ak", "ukrainian": "uk", "urdu": "ur",
	"uyghur": "ug", "uzbek": "uz", "vietnamese": "vi", "welsh": "cy", "xhosa": "xh",
	"yiddish": "yi", "yoruba": "yo", "zulu": "zu",
}

// The endpoint still uses a few legacy codes; map their modern BCP 47 form.
var codeAliases = map[string]string{"he": "iw", "jv": "jw", "fil": "tl", "zh": "zh-CN"}

var languages = func() []Language {
	out := make([]Language, 0, len(languageCodes))
	for name, code := range languageCodes {
		out = append(out, Language{Name: name, Code: code})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}()

var languageNames = func() []string {
	out := make([]string, len(languages))
	for i, l := range languages {
		out[i] = l.Name
	}
	return out
}()

// SupportedLanguages returns every target language sorted by name.
func SupportedLanguages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// LookupLanguage resolves a language name ("spanish"), an endpoint code
// ("es", "zh-CN") or a BCP 47 tag ("es-MX", "he") to a supported language.
func LookupLanguage(s string) (Language, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return Language{}, apperrors.Wrap(apperrors.CodeInvalidInput, "language cannot be empty", nil)
	}
	if code, ok := languageCodes[key]; ok {
		return Language{Name: key, Code: code}, nil
	}
	for _, l := range languages {
		if strings.EqualFold(l.Code, key) {
			return l, nil
		}
	}
	if tag, err := language.Parse(key); err == nil {
		base, _ := tag.Base()
		code := base.String()
		if alias, ok := codeAliases[code]; ok {
			code = alias
		}
		for _, l := range languages {
			if l.Code == code {
				return l, nil
			}
		}
	}
	return Language{}, apperrors.Wrap(apperrors.CodeInvalidInput, "unsupported language "+s, nil)
}

// SearchLanguages ranks languages by fuzzy match against pattern. A blank
// pattern returns every language.
func SearchLanguages(pattern string) []Language {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	if pattern == "" {
		return SupportedLanguages()
	}
	matches := fuzzy.Find(pattern, languageNames)
	out := make([]Language, 0, len(matches))
	for _, m := range matches {
		out = append(out, languages[m.Index])
	}
	return out
}
