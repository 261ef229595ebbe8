package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tp-assess/internal/prompt"
)

const chatCompletionBody = `{
	"id": "cmpl-1",
	"object": "chat.completion",
	"choices": [
		{
			"index": 0,
			"finish_reason": "stop",
			"message": {"role": "assistant", "content": "structured answer"}
		}
	]
}`

// countingTransport records how many requests actually left the client.
type countingTransport struct {
	calls int64
	next  http.RoundTripper
}

func (c *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	atomic.AddInt64(&c.calls, 1)
	return c.next.RoundTrip(req)
}

func TestNewPerplexityRequiresAPIKey(t *testing.T) {
	transport := &countingTransport{next: http.DefaultTransport}

	_, err := NewPerplexity(PerplexityOptions{
		APIKey:     "",
		HTTPClient: &http.Client{Transport: transport},
	})

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Zero(t, atomic.LoadInt64(&transport.calls), "no network call may happen without a credential")
}

func TestPerplexityComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatCompletionBody))
	}))
	defer server.Close()

	gw, err := NewPerplexity(PerplexityOptions{
		APIKey:     "test-key",
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
	})
	require.NoError(t, err)

	raw, err := gw.Complete(context.Background(), prompt.CompletionRequest{System: "sys", User: "user"})
	require.NoError(t, err)
	assert.Equal(t, "structured answer", raw)
}

func TestPerplexityCompleteServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer server.Close()

	gw, err := NewPerplexity(PerplexityOptions{
		APIKey:     "test-key",
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
	})
	require.NoError(t, err)

	_, err = gw.Complete(context.Background(), prompt.CompletionRequest{User: "user"})
	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
}

func TestPerplexityCompleteTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer func() {
		close(release)
		server.Close()
	}()

	gw, err := NewPerplexity(PerplexityOptions{
		APIKey:     "test-key",
		BaseURL:    server.URL,
		Timeout:    50 * time.Millisecond,
		HTTPClient: server.Client(),
	})
	require.NoError(t, err)

	_, err = gw.Complete(context.Background(), prompt.CompletionRequest{User: "user"})
	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
}

func TestPerplexityCompleteEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "cmpl-2", "object": "chat.completion", "choices": []}`))
	}))
	defer server.Close()

	gw, err := NewPerplexity(PerplexityOptions{
		APIKey:     "test-key",
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
	})
	require.NoError(t, err)

	_, err = gw.Complete(context.Background(), prompt.CompletionRequest{User: "user"})
	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
}

func TestNewGeminiRequiresAPIKey(t *testing.T) {
	_, err := NewGemini(context.Background(), "", "", 0)
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
}
