package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"tp-assess/internal/prompt"
)

// DefaultModel is used when no model identifier is configured.
const DefaultModel = "llama-3.1-sonar-small-128k-online"

// DefaultBaseURL points at the Perplexity chat-completion endpoint.
const DefaultBaseURL = "https://api.perplexity.ai"

const defaultTimeout = 60 * time.Second

// PerplexityOptions configure the Perplexity-backed completer. Only
// APIKey is required; everything else has a sensible default.
type PerplexityOptions struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration

	// HTTPClient overrides the transport, used by tests to stub the
	// service without a live endpoint.
	HTTPClient *http.Client
}

// Perplexity completes requests against Perplexity's OpenAI-compatible
// chat endpoint with deterministic (temperature zero) sampling.
type Perplexity struct {
	client  openai.Client
	model   string
	timeout time.Duration
}

// NewPerplexity validates the configuration and builds the completer.
// A missing API key fails with ConfigurationError before any network
// use.
func NewPerplexity(opts PerplexityOptions) (*Perplexity, error) {
	if opts.APIKey == "" {
		return nil, &ConfigurationError{Reason: "API key is not set"}
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	clientOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithBaseURL(opts.BaseURL),
		option.WithMaxRetries(0),
	}
	if opts.HTTPClient != nil {
		clientOpts = append(clientOpts, option.WithHTTPClient(opts.HTTPClient))
	}

	return &Perplexity{
		client:  openai.NewClient(clientOpts...),
		model:   opts.Model,
		timeout: opts.Timeout,
	}, nil
}

// Complete performs the single blocking completion call, bounded by the
// configured timeout.
func (p *Perplexity) Complete(ctx context.Context, req prompt.CompletionRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.User),
		},
		Temperature: openai.Float(0),
	})
	if err != nil {
		return "", &TransportError{Cause: err}
	}
	if len(resp.Choices) == 0 {
		return "", &TransportError{Cause: fmt.Errorf("empty response from %s", p.model)}
	}

	content := resp.Choices[0].Message.Content
	log.Printf("model raw response (%d bytes)", len(content))
	return content, nil
}

// Selftest sends a minimal completion to verify connectivity and
// credentials. Exposed through the CLI only when debug mode is on.
func (p *Perplexity) Selftest(ctx context.Context) error {
	_, err := p.Complete(ctx, prompt.CompletionRequest{User: "test"})
	return err
}
