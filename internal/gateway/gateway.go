// Package gateway is the sole I/O boundary of the assessment core: one
// outbound completion call per analysis, no retries, no streaming.
package gateway

import (
	"context"
	"fmt"

	"tp-assess/internal/prompt"
)

// Completer sends one composed request to a completion service and
// returns the raw response text. Implementations perform exactly one
// attempt per call; retrying is the caller's decision.
type Completer interface {
	Complete(ctx context.Context, req prompt.CompletionRequest) (string, error)
}

// ConfigurationError reports missing or invalid process-wide
// configuration. It is raised before any network attempt.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("gateway not configured: %s", e.Reason)
}

// TransportError wraps any failure during the completion call itself:
// timeout, connection failure, non-success status, or an unreadable
// response body.
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("completion call failed: %v", e.Cause)
}

func (e *TransportError) Unwrap() error { return e.Cause }
