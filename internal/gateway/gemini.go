package gateway

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"tp-assess/internal/prompt"
)

// DefaultGeminiModel is used when no Gemini model is configured.
const DefaultGeminiModel = "gemini-2.5-flash-preview-09-2025"

// Gemini completes requests against the Gemini API. It is the
// alternative provider behind the same Completer interface.
type Gemini struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
}

// NewGemini validates the configuration and builds the completer. A
// missing API key fails with ConfigurationError before any network use.
func NewGemini(ctx context.Context, apiKey, model string, timeout time.Duration) (*Gemini, error) {
	if apiKey == "" {
		return nil, &ConfigurationError{Reason: "Gemini API key is not set"}
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("failed to create genai client: %v", err)}
	}

	m := client.GenerativeModel(model)
	m.SetTemperature(0)
	m.SafetySettings = []*genai.SafetySetting{
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockNone},
	}

	return &Gemini{client: client, model: m, timeout: timeout}, nil
}

// Close releases the underlying client.
func (g *Gemini) Close() {
	if g == nil || g.client == nil {
		return
	}
	if err := g.client.Close(); err != nil {
		log.Printf("warning: failed to close Gemini client: %v", err)
	}
}

// Complete performs the single blocking completion call, bounded by the
// configured timeout.
func (g *Gemini) Complete(ctx context.Context, req prompt.CompletionRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	g.model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.System)}}

	resp, err := g.model.GenerateContent(ctx, genai.Text(req.User))
	if err != nil {
		return "", &TransportError{Cause: err}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", &TransportError{Cause: fmt.Errorf("no candidates in response")}
	}

	part := resp.Candidates[0].Content.Parts[0]
	text, ok := part.(genai.Text)
	if !ok {
		return "", &TransportError{Cause: fmt.Errorf("unexpected response part type %T", part)}
	}

	log.Printf("model raw response (%d bytes)", len(text))
	return string(text), nil
}

// Selftest sends a minimal completion to verify connectivity and
// credentials.
func (g *Gemini) Selftest(ctx context.Context) error {
	_, err := g.Complete(ctx, prompt.CompletionRequest{User: "test"})
	return err
}
