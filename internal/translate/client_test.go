package translate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "faqbot/pkg/errors"
)

func newTestClient(url string, retries int) *Client {
	c := NewClient(Config{BaseURL: url, Timeout: 2 * time.Second, MaxRetries: retries})
	c.backoff = func(int) time.Duration { return 0 }
	return c
}

func TestTranslateParsesSegments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/translate_a/single", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "gtx", q.Get("client"))
		assert.Equal(t, "auto", q.Get("sl"))
		assert.Equal(t, "es", q.Get("tl"))
		assert.Equal(t, "Hello. How are you?", q.Get("q"))
		_, _ = w.Write([]byte(`[[["Hola. ","Hello. ",null,null,10],["¿Cómo estás?","How are you?",null,null,10]],null,"en"]`))
	}))
	defer srv.Close()

	res, err := newTestClient(srv.URL, 0).Translate(context.Background(), "Hello. How are you?", "auto", "spanish")
	require.NoError(t, err)
	assert.Equal(t, "Hola. ¿Cómo estás?", res.Text)
	assert.Equal(t, "en", res.Source)
	assert.Equal(t, "es", res.Target)
}

func TestTranslateExplicitSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "fr", r.URL.Query().Get("sl"))
		_, _ = w.Write([]byte(`[[["Hello","Bonjour"]],null,"fr"]`))
	}))
	defer srv.Close()

	res, err := newTestClient(srv.URL, 0).Translate(context.Background(), "Bonjour", "french", "en")
	require.NoError(t, err)
	assert.Equal(t, "Hello", res.Text)
	assert.Equal(t, "fr", res.Source)
}

func TestTranslateRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`[[["Hallo","Hello"]],null,"en"]`))
	}))
	defer srv.Close()

	res, err := newTestClient(srv.URL, 3).Translate(context.Background(), "Hello", "", "de")
	require.NoError(t, err)
	assert.Equal(t, "Hallo", res.Text)
	assert.Equal(t, int32(3), calls.Load())
}

func TestTranslateRetryAfterReplacesBackoff(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "2")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`[[["Hallo","Hello"]],null,"en"]`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 3)
	c.backoff = func(int) time.Duration { return 200 * time.Millisecond }
	var waits []time.Duration
	c.sleep = func(_ context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}

	_, err := c.Translate(context.Background(), "Hello", "", "de")
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{2 * time.Second}, waits)
}

func TestTranslateBackoffWithoutRetryAfter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 2)
	var waits []time.Duration
	c.sleep = func(_ context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}
	c.backoff = retryDelay

	_, err := c.Translate(context.Background(), "Hello", "", "de")
	require.Error(t, err)
	assert.Equal(t, []time.Duration{200 * time.Millisecond, 400 * time.Millisecond}, waits)
}

func TestTranslateGivesUpAfterRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 2).Translate(context.Background(), "Hello", "", "de")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeTranslate))
	assert.Equal(t, int32(3), calls.Load())
}

func TestTranslateClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 3).Translate(context.Background(), "Hello", "", "de")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeTranslate))
	assert.Equal(t, int32(1), calls.Load())
}

func TestTranslateMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>blocked</html>`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 0).Translate(context.Background(), "Hello", "", "de")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeTranslate))
}

func TestTranslateNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url, 1).Translate(context.Background(), "Hello", "", "de")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNetwork))
}

func TestTranslateRejectsBadInput(t *testing.T) {
	c := newTestClient("http://127.0.0.1:0", 0)
	ctx := context.Background()

	_, err := c.Translate(ctx, "   ", "", "es")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = c.Translate(ctx, strings.Repeat("a", MaxTextLength+1), "", "es")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = c.Translate(ctx, "hello", "", "klingon")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestRetryDelayCapped(t *testing.T) {
	assert.Equal(t, 200*time.Millisecond, retryDelay(0))
	assert.Equal(t, 800*time.Millisecond, retryDelay(2))
	assert.Equal(t, 5*time.Second, retryDelay(10))
}
