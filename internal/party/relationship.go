package party

import "strconv"

// RelationshipKind distinguishes how two parties are linked.
type RelationshipKind string

const (
	// Ownership applies to company/company pairs.
	Ownership RelationshipKind = "ownership"
	// Family applies to individual/individual pairs.
	Family RelationshipKind = "family"
)

// Family relationships accepted between two individuals.
var familyRelationships = []string{
	"None",
	"Parent/Child",
	"Grandparent/Grandchild",
	"Sibling",
	"Uncle/Aunt/Nephew/Niece",
	"First Cousin",
	"Other",
}

// Relationship holds the optional relationship facts between two
// parties. Mixed individual/company pairs carry no relationship.
type Relationship struct {
	Kind RelationshipKind

	// Ownership fields.
	OwnershipPct    float64
	VotingRightsPct float64
	BoardControl    bool

	// Family field.
	FamilyRelationship string
}

// NewOwnership validates and builds a company/company relationship.
func NewOwnership(ownershipPct, votingRightsPct float64, boardControl bool) (*Relationship, error) {
	if ownershipPct < 0 || ownershipPct > 100 {
		return nil, &ValidationError{Field: "ownership_percentage", Reason: "must be between 0 and 100"}
	}
	if votingRightsPct < 0 || votingRightsPct > 100 {
		return nil, &ValidationError{Field: "voting_rights_percentage", Reason: "must be between 0 and 100"}
	}
	return &Relationship{
		Kind:            Ownership,
		OwnershipPct:    ownershipPct,
		VotingRightsPct: votingRightsPct,
		BoardControl:    boardControl,
	}, nil
}

// NewFamily validates and builds an individual/individual relationship.
func NewFamily(relationship string) (*Relationship, error) {
	if !oneOf(relationship, familyRelationships) {
		return nil, &ValidationError{Field: "family_relationship", Reason: "must be one of " + join(familyRelationships)}
	}
	return &Relationship{Kind: Family, FamilyRelationship: relationship}, nil
}

// AppliesTo reports whether the relationship matches the given pair of
// party kinds. Ownership facts only make sense between two companies,
// family facts only between two individuals.
func (r *Relationship) AppliesTo(a, b Kind) error {
	switch r.Kind {
	case Ownership:
		if a != Company || b != Company {
			return &ValidationError{Field: "relationship", Reason: "ownership details require two companies"}
		}
	case Family:
		if a != Individual || b != Individual {
			return &ValidationError{Field: "relationship", Reason: "family details require two individuals"}
		}
	default:
		return &ValidationError{Field: "relationship", Reason: "unknown relationship kind"}
	}
	return nil
}

// Descriptor returns the relationship as an ordered key/value sequence
// for prompt serialization.
func (r *Relationship) Descriptor() []Field {
	if r.Kind == Family {
		return []Field{{Key: "family_relationship", Value: r.FamilyRelationship}}
	}
	return []Field{
		{Key: "ownership_percentage", Value: strconv.FormatFloat(r.OwnershipPct, 'f', -1, 64)},
		{Key: "voting_rights_percentage", Value: strconv.FormatFloat(r.VotingRightsPct, 'f', -1, 64)},
		{Key: "board_control", Value: strconv.FormatBool(r.BoardControl)},
	}
}
