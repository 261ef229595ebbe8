package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tp-assess/internal/party"
	"tp-assess/internal/schema"
)

func mustIndividual(t *testing.T, name, residency string) *party.Profile {
	t.Helper()
	p, err := party.NewIndividual(name, residency)
	require.NoError(t, err)
	return p
}

func mustCompany(t *testing.T, name, companyType string, listed, regulated bool) *party.Profile {
	t.Helper()
	p, err := party.NewCompany(name, companyType, listed, regulated)
	require.NoError(t, err)
	return p
}

func TestBuildIsDeterministic(t *testing.T) {
	contract := schema.Default()
	builder := NewBuilder(contract)

	pairs := []struct {
		name string
		p1   *party.Profile
		p2   *party.Profile
		rel  *party.Relationship
	}{
		{
			name: "individual pair",
			p1:   mustIndividual(t, "Alice", "UAE Resident"),
			p2:   mustIndividual(t, "Bob", "Non-Resident"),
			rel:  mustFamily(t, "Sibling"),
		},
		{
			name: "company pair",
			p1:   mustCompany(t, "Acme LLC", "LLC", true, false),
			p2:   mustCompany(t, "Beta FZ", "Free Zone Entity", false, true),
			rel:  mustOwnership(t, 51, 60, true),
		},
		{
			name: "mixed pair",
			p1:   mustIndividual(t, "Alice", "UAE Resident"),
			p2:   mustCompany(t, "Acme LLC", "LLC", false, false),
		},
	}

	for _, tt := range pairs {
		t.Run(tt.name, func(t *testing.T) {
			req, err := NewAssessmentRequest(tt.p1, tt.p2, tt.rel, contract)
			require.NoError(t, err)

			first, err := builder.Build(req)
			require.NoError(t, err)
			for i := 0; i < 5; i++ {
				again, err := builder.Build(req)
				require.NoError(t, err)
				require.Equal(t, first, again)
			}
		})
	}
}

func mustFamily(t *testing.T, rel string) *party.Relationship {
	t.Helper()
	r, err := party.NewFamily(rel)
	require.NoError(t, err)
	return r
}

func mustOwnership(t *testing.T, ownership, voting float64, board bool) *party.Relationship {
	t.Helper()
	r, err := party.NewOwnership(ownership, voting, board)
	require.NoError(t, err)
	return r
}

func TestBuildUserMessageContent(t *testing.T) {
	contract := schema.Default()
	builder := NewBuilder(contract)

	req, err := NewAssessmentRequest(
		mustIndividual(t, "Alice", "UAE Resident"),
		mustIndividual(t, "Bob", "UAE Resident"),
		mustFamily(t, "Sibling"),
		contract,
	)
	require.NoError(t, err)

	completion, err := builder.Build(req)
	require.NoError(t, err)

	assert.Contains(t, completion.User, "Party 1 Details:")
	assert.Contains(t, completion.User, "Party 2 Details:")
	assert.Contains(t, completion.User, "Alice")
	assert.Contains(t, completion.User, "Bob")
	assert.Contains(t, completion.User, "Sibling")
	assert.Contains(t, completion.User, "Related Parties or Connected Persons")
}

func TestBuildSystemMessageCarriesFormatInstructions(t *testing.T) {
	contract := schema.Default()
	builder := NewBuilder(contract)

	req, err := NewAssessmentRequest(
		mustIndividual(t, "Alice", "UAE Resident"),
		mustIndividual(t, "Bob", "UAE Resident"),
		nil,
		contract,
	)
	require.NoError(t, err)

	completion, err := builder.Build(req)
	require.NoError(t, err)

	assert.Contains(t, completion.System, "UAE Transfer Pricing")
	assert.Contains(t, completion.System, contract.FormatInstructions())
	for _, f := range contract.Fields() {
		assert.Contains(t, completion.System, f.Name)
	}
}

func TestBuildOmitsRelationshipForMixedPair(t *testing.T) {
	contract := schema.Default()
	builder := NewBuilder(contract)

	req, err := NewAssessmentRequest(
		mustIndividual(t, "Alice", "UAE Resident"),
		mustCompany(t, "Acme LLC", "LLC", false, false),
		nil,
		contract,
	)
	require.NoError(t, err)

	completion, err := builder.Build(req)
	require.NoError(t, err)
	assert.NotContains(t, completion.User, "Relationship Details:")
}

func TestNewAssessmentRequestRejectsBadInput(t *testing.T) {
	contract := schema.Default()

	_, err := NewAssessmentRequest(nil, mustIndividual(t, "Bob", "UAE Resident"), nil, contract)
	assert.ErrorIs(t, err, party.ErrValidation)

	// Family facts between two companies are a pair mismatch.
	_, err = NewAssessmentRequest(
		mustCompany(t, "Acme LLC", "LLC", false, false),
		mustCompany(t, "Beta LLC", "LLC", false, false),
		mustFamily(t, "Sibling"),
		contract,
	)
	assert.ErrorIs(t, err, party.ErrValidation)
}
