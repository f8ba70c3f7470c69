// Package speech fetches spoken MP3 audio for translated text.
package speech

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "faqbot/pkg/errors"
)

// MaxChunk is the longest piece of text the TTS endpoint reads per request.
const MaxChunk = 100

// languages the TTS voice can read aloud.
var ttsLanguages = map[string]struct{}{
	"af": {}, "ar": {}, "bg": {}, "bn": {}, "bs": {}, "ca": {}, "cs": {}, "cy": {},
	"da": {}, "de": {}, "el": {}, "en": {}, "eo": {}, "es": {}, "et": {}, "fi": {},
	"fr": {}, "gu": {}, "hi": {}, "hr": {}, "hu": {}, "hy": {}, "id": {}, "is": {},
	"it": {}, "iw": {}, "ja": {}, "jw": {}, "km": {}, "kn": {}, "ko": {}, "la": {},
	"lv": {}, "mk": {}, "ml": {}, "mr": {}, "ms": {}, "my": {}, "ne": {}, "nl": {},
	"no": {}, "pl": {}, "pt": {}, "ro": {}, "ru": {}, "si": {}, "sk": {}, "sq": {},
	"sr": {}, "su": {}, "sv": {}, "sw": {}, "ta": {}, "te": {}, "th": {}, "tl": {},
	"tr": {}, "uk": {}, "ur": {}, "vi": {}, "zh-CN": {}, "zh-TW": {},
}

// Config configures the speech client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client synthesizes speech through the translate_tts endpoint.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://translate.google.com"
	}
	t := cfg.Timeout
	if t == 0 {
		t = 15 * time.Second
	}
	return &Client{baseURL: strings.TrimRight(cfg.BaseURL, "/"), client: &http.Client{Timeout: t}}
}

// Supports reports whether lang (an endpoint language code) can be spoken.
func (c *Client) Supports(lang string) bool {
	_, ok := ttsLanguages[lang]
	return ok
}

// Synthesize returns MP3 audio for text. Text longer than MaxChunk is read
// piece by piece and the pieces are concatenated in order.
func (c *Client) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	if !c.Supports(lang) {
		return nil, apperrors.Wrap(apperrors.CodeSpeech, "audio playback is not available for language "+lang, nil)
	}
	parts := SplitText(text, MaxChunk)
	if len(parts) == 0 {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "text cannot be empty", nil)
	}
	var out bytes.Buffer
	for i, part := range parts {
		audio, err := c.fetch(ctx, part, lang, i, len(parts))
		if err != nil {
			return nil, err
		}
		out.Write(audio)
	}
	return out.Bytes(), nil
}

func (c *Client) fetch(ctx context.Context, part, lang string, idx, total int) ([]byte, error) {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", lang)
	q.Set("q", part)
	q.Set("total", strconv.Itoa(total))
	q.Set("idx", strconv.Itoa(idx))
	q.Set("textlen", strconv.Itoa(utf8.RuneCountInString(part)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/translate_tts?"+q.Encode(), nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeSpeech, "build tts request", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeNetwork, "tts request failed", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Wrap(apperrors.CodeSpeech, "tts failed: "+resp.Status, nil)
	}
	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeNetwork, "read tts response", err)
	}
	if len(audio) == 0 {
		return nil, apperrors.Wrap(apperrors.CodeSpeech, "tts returned no audio", nil)
	}
	return audio, nil
}

var sentenceRe = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)

// SplitText breaks text into pieces of at most limit runes. Pieces end at
// sentence boundaries where a whole sentence fits, otherwise at spaces; a
// single word longer than limit is cut mid-word.
func SplitText(text string, limit int) []string {
	var parts []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			parts = append(parts, string(cur))
			cur = cur[:0]
		}
	}
	for _, sentence := range sentences(text) {
		words := strings.Fields(sentence)
		if len(cur) > 0 && len(cur)+1+utf8.RuneCountInString(strings.Join(words, " ")) > limit {
			flush()
		}
		for _, word := range words {
			w := []rune(word)
			for len(w) > limit {
				flush()
				parts = append(parts, string(w[:limit]))
				w = w[limit:]
			}
			if len(cur) > 0 && len(cur)+1+len(w) > limit {
				flush()
			}
			if len(cur) > 0 {
				cur = append(cur, ' ')
			}
			cur = append(cur, w...)
		}
	}
	flush()
	return parts
}

// sentences splits text after each terminal punctuation mark, keeping any
// unterminated tail as a final sentence.
func sentences(text string) []string {
	var out []string
	last := 0
	for _, loc := range sentenceRe.FindAllStringIndex(text, -1) {
		out = append(out, text[loc[0]:loc[1]])
		last = loc[1]
	}
	if tail := strings.TrimSpace(text[last:]); tail != "" {
		out = append(out, tail)
	}
	return out
}
