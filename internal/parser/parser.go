// Package parser decodes the model's free-form reply into the
// structured five-field assessment result.
package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"tp-assess/internal/schema"
)

// AssessmentResult holds the five contract fields decoded from one
// model reply. It is immutable once returned.
type AssessmentResult struct {
	Assessment       string
	RelationshipType string
	Basis            string
	RiskLevel        string
	Documentation    string
}

// Recognized risk levels. The parser deliberately does not enforce
// these: an unexpected token is returned verbatim and reported as a
// soft warning by the caller, never as a parse failure.
var riskLevels = []string{"HIGH", "MEDIUM", "LOW"}

// RiskLevelRecognized reports whether RiskLevel is one of the expected
// HIGH/MEDIUM/LOW values.
func (r *AssessmentResult) RiskLevelRecognized() bool {
	for _, level := range riskLevels {
		if r.RiskLevel == level {
			return true
		}
	}
	return false
}

// ParseError reports a reply that could not be decoded into the
// contract's fields. Raw preserves the offending text for diagnostics.
type ParseError struct {
	Raw    string
	Reason string
	Cause  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse model response: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// Parse locates the JSON payload inside raw (the model may wrap it in
// prose or markdown fences), decodes it, and checks that every field
// the contract declares is present and non-null. Extra fields beyond
// the contract are ignored.
func Parse(raw string, contract schema.Contract) (*AssessmentResult, error) {
	payload := extractJSON(raw)
	if payload == "" {
		return nil, &ParseError{Raw: raw, Reason: "no JSON payload found in response"}
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		return nil, &ParseError{Raw: raw, Reason: "payload is not valid JSON", Cause: err}
	}

	result := &AssessmentResult{}
	for _, field := range contract.Fields() {
		value, ok := decoded[field.Name]
		if !ok || value == nil {
			return nil, &ParseError{Raw: raw, Reason: fmt.Sprintf("required field %q missing from payload", field.Name)}
		}
		text, ok := value.(string)
		if !ok {
			text = fmt.Sprint(value)
		}
		switch field.Name {
		case "assessment":
			result.Assessment = text
		case "relationship_type":
			result.RelationshipType = text
		case "basis":
			result.Basis = text
		case "risk_level":
			result.RiskLevel = text
		case "documentation":
			result.Documentation = text
		}
	}
	return result, nil
}

// extractJSON strips markdown code fences and, failing that, falls back
// to the outermost brace pair. Returns "" when no plausible object is
// found.
func extractJSON(raw string) string {
	cleaned := strings.TrimSpace(raw)

	if strings.HasPrefix(cleaned, "```json") {
		if nl := strings.Index(cleaned, "\n"); nl != -1 {
			cleaned = cleaned[nl+1:]
		}
	}
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	if json.Valid([]byte(cleaned)) {
		return cleaned
	}

	// Fall back to the outermost brace pair; a malformed candidate is
	// still returned so the decode error names the real problem.
	first := strings.Index(cleaned, "{")
	last := strings.LastIndex(cleaned, "}")
	if first != -1 && last > first {
		return cleaned[first : last+1]
	}
	return ""
}
