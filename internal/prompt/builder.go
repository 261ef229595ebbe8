// Package prompt composes the system and user messages sent to the
// completion service for one assessment.
package prompt

import (
	"strings"

	"tp-assess/internal/party"
	"tp-assess/internal/schema"
)

const systemPrompt = `You are an expert AI assistant specializing in UAE Transfer Pricing regulations and Related Party determinations.
Your task is to analyze relationships between parties and determine if they qualify as Related Parties or Connected Persons under UAE TP rules.

Key considerations:
1. Family relationships up to 4th degree
2. Ownership/control thresholds of 50% or more
3. Direct and indirect relationships
4. Special cases like listed companies and regulated entities
5. Risk assessment and documentation requirements

Please provide your analysis in a structured format covering:
1. Clear assessment of the relationship
2. Specific relationship type identified
3. Legal and factual basis for determination
4. Risk level assessment
5. Documentation requirements

`

// CompletionRequest carries the two messages of one completion call.
type CompletionRequest struct {
	System string
	User   string
}

// AssessmentRequest is the single-use aggregate of everything one
// analysis needs. Build it with NewAssessmentRequest and do not mutate
// it afterwards.
type AssessmentRequest struct {
	Party1       *party.Profile
	Party2       *party.Profile
	Relationship *party.Relationship
	Contract     schema.Contract
}

// NewAssessmentRequest validates the aggregate. Profiles must be
// present and any relationship must match the pair of party kinds.
func NewAssessmentRequest(p1, p2 *party.Profile, rel *party.Relationship, contract schema.Contract) (AssessmentRequest, error) {
	if p1 == nil || p2 == nil {
		return AssessmentRequest{}, &party.ValidationError{Field: "party", Reason: "both parties are required"}
	}
	if rel != nil {
		if err := rel.AppliesTo(p1.Kind, p2.Kind); err != nil {
			return AssessmentRequest{}, err
		}
	}
	return AssessmentRequest{Party1: p1, Party2: p2, Relationship: rel, Contract: contract}, nil
}

// Builder turns assessment requests into completion requests. A Builder
// is immutable and safe for concurrent use.
type Builder struct {
	contract schema.Contract
}

// NewBuilder returns a Builder bound to the given output contract.
func NewBuilder(contract schema.Contract) *Builder {
	return &Builder{contract: contract}
}

// Build composes the completion request. Given identical input values
// the produced text is byte-identical: no timestamps, no randomness.
func (b *Builder) Build(req AssessmentRequest) (CompletionRequest, error) {
	if req.Party1 == nil || req.Party2 == nil {
		return CompletionRequest{}, &party.ValidationError{Field: "party", Reason: "both parties are required"}
	}

	var user strings.Builder
	user.WriteString("Party 1 Details:\n")
	writeDescriptor(&user, req.Party1.Descriptor())
	user.WriteString("\nParty 2 Details:\n")
	writeDescriptor(&user, req.Party2.Descriptor())
	if req.Relationship != nil {
		user.WriteString("\nRelationship Details:\n")
		writeDescriptor(&user, req.Relationship.Descriptor())
	}
	user.WriteString("\nPlease analyze if these parties are Related Parties or Connected Persons under UAE Transfer Pricing rules.")

	return CompletionRequest{
		System: systemPrompt + b.contract.FormatInstructions(),
		User:   user.String(),
	}, nil
}

func writeDescriptor(b *strings.Builder, fields []party.Field) {
	for _, f := range fields {
		b.WriteString(f.Key)
		b.WriteString(": ")
		b.WriteString(f.Value)
		b.WriteString("\n")
	}
}
