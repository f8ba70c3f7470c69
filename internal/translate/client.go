// Package translate is a client for the Google Translate web endpoint.
package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "faqbot/pkg/errors"
)

// MaxTextLength is the longest text the endpoint accepts in one request.
const MaxTextLength = 5000

// Result is a translated text.
type Result struct {
	Text string
	// Source is the detected or requested source language code.
	Source string
	Target string
}

// Config configures the translation client.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

// Client translates text through the translate_a/single endpoint.
type Client struct {
	baseURL    string
	client     *http.Client
	maxRetries int
	backoff    func(attempt int) time.Duration
	sleep      func(ctx context.Context, d time.Duration) error
}

// NewClient creates a new translation client using the provided configuration.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://translate.googleapis.com"
	}
	t := cfg.Timeout
	if t == 0 {
		t = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		client:     &http.Client{Timeout: t},
		maxRetries: cfg.MaxRetries,
		backoff:    retryDelay,
		sleep:      sleepCtx,
	}
}

// Translate translates text from source ("auto" or empty to detect) into
// target. Target may be a language name or code.
func (c *Client) Translate(ctx context.Context, text, source, target string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, apperrors.Wrap(apperrors.CodeInvalidInput, "text cannot be empty", nil)
	}
	if utf8.RuneCountInString(text) > MaxTextLength {
		return Result{}, apperrors.Wrap(apperrors.CodeInvalidInput,
			fmt.Sprintf("text exceeds %d characters", MaxTextLength), nil)
	}
	tgt, err := LookupLanguage(target)
	if err != nil {
		return Result{}, err
	}
	src := "auto"
	if s := strings.TrimSpace(source); s != "" && !strings.EqualFold(s, "auto") {
		l, err := LookupLanguage(s)
		if err != nil {
			return Result{}, err
		}
		src = l.Code
	}

	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", src)
	q.Set("tl", tgt.Code)
	q.Set("dt", "t")
	q.Set("q", text)
	endpoint := c.baseURL + "/translate_a/single?" + q.Encode()

	var lastErr error
	var retryAfter time.Duration
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			d := c.backoff(attempt - 1)
			if retryAfter > 0 {
				d, retryAfter = retryAfter, 0
			}
			if err := c.sleep(ctx, d); err != nil {
				return Result{}, apperrors.Wrap(apperrors.CodeNetwork, "translate request cancelled", err)
			}
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return Result{}, apperrors.Wrap(apperrors.CodeTranslate, "build translate request", err)
		}
		resp, err := c.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return Result{}, apperrors.Wrap(apperrors.CodeNetwork, "translate request cancelled", ctx.Err())
			}
			lastErr = apperrors.Wrap(apperrors.CodeNetwork, "translate request failed", err)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			_ = resp.Body.Close()
			lastErr = apperrors.Wrap(apperrors.CodeTranslate, "translate failed: "+resp.Status, nil)
			// Retry-After replaces the backoff for the next attempt
			if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs > 0 {
				retryAfter = time.Duration(secs) * time.Second
			}
			continue
		}
		if resp.StatusCode >= 300 {
			_ = resp.Body.Close()
			return Result{}, apperrors.Wrap(apperrors.CodeTranslate, "translate failed: "+resp.Status, nil)
		}

		payload, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			lastErr = apperrors.Wrap(apperrors.CodeNetwork, "read translate response", err)
			continue
		}
		translated, detected, err := parseResponse(payload)
		if err != nil {
			return Result{}, apperrors.Wrap(apperrors.CodeTranslate, "decode translate response", err)
		}
		if src != "auto" || detected == "" {
			detected = src
		}
		return Result{Text: translated, Source: detected, Target: tgt.Code}, nil
	}
	return Result{}, lastErr
}

// parseResponse extracts the translation from the nested array payload:
// [[["Hola","Hello",...],...], null, "en", ...].
func parseResponse(payload []byte) (string, string, error) {
	var top []json.RawMessage
	if err := json.Unmarshal(payload, &top); err != nil {
		return "", "", err
	}
	if len(top) == 0 {
		return "", "", errors.New("empty response")
	}
	var segments [][]any
	if err := json.Unmarshal(top[0], &segments); err != nil {
		return "", "", err
	}
	var sb strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		if s, ok := seg[0].(string); ok {
			sb.WriteString(s)
		}
	}
	if sb.Len() == 0 {
		return "", "", errors.New("no translation returned")
	}
	var detected string
	if len(top) > 2 {
		_ = json.Unmarshal(top[2], &detected)
	}
	return sb.String(), detected, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func retryDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	base := 200 * time.Millisecond
	// exponential backoff capped at 5s
	d := base << attempt
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}
