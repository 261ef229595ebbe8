// Package schema declares the fixed output contract the model must
// honor: five named fields, in a fixed order, rendered as textual
// format instructions that are embedded verbatim in every prompt.
package schema

import "strings"

// Field is one required output field of the contract.
type Field struct {
	Name        string
	Description string
}

// Contract is an ordered, immutable set of required output fields. The
// same field names drive both the instructions sent to the model and
// the parser that decodes its reply, so they must never diverge.
type Contract struct {
	fields []Field
}

// Default returns the five-field related-party assessment contract.
// Construct once and share; contracts are read-only.
func Default() Contract {
	return Contract{fields: []Field{
		{Name: "assessment", Description: "Detailed assessment of the relationship between the parties"},
		{Name: "relationship_type", Description: "The specific type of relationship identified"},
		{Name: "basis", Description: "The legal and factual basis for the determination"},
		{Name: "risk_level", Description: "Risk level assessment (HIGH, MEDIUM, or LOW)"},
		{Name: "documentation", Description: "Required documentation and compliance requirements"},
	}}
}

// Fields returns the contract fields in declaration order.
func (c Contract) Fields() []Field {
	out := make([]Field, len(c.fields))
	copy(out, c.fields)
	return out
}

// FormatInstructions renders the output-shape instructions appended to
// the system prompt. The rendering is deterministic: same contract,
// same bytes.
func (c Contract) FormatInstructions() string {
	var b strings.Builder
	b.WriteString("The output should be a markdown code snippet formatted in the following schema, ")
	b.WriteString("including the leading and trailing \"```json\" and \"```\":\n\n")
	b.WriteString("```json\n{\n")
	for i, f := range c.fields {
		b.WriteString("\t\"")
		b.WriteString(f.Name)
		b.WriteString("\": string")
		if i < len(c.fields)-1 {
			b.WriteString(",")
		}
		b.WriteString("  // ")
		b.WriteString(f.Description)
		b.WriteString("\n")
	}
	b.WriteString("}\n```")
	return b.String()
}
