// Package party models the two participants of a related-party
// assessment and the relationship facts collected about them.
package party

import (
	"strconv"
	"strings"
)

// Kind distinguishes the two profile variants.
type Kind string

const (
	Individual Kind = "Individual"
	Company    Kind = "Company"
)

// Residency statuses accepted for individuals.
const (
	ResidencyUAE = "UAE Resident"
	ResidencyNon = "Non-Resident"
)

var residencies = []string{ResidencyUAE, ResidencyNon}

// Company types accepted for companies.
var companyTypes = []string{"LLC", "Branch", "Free Zone Entity", "Other"}

// Profile is the validated description of one party. Construct via
// NewIndividual or NewCompany; a Profile obtained any other way carries
// no validation guarantees.
type Profile struct {
	Kind Kind
	Name string

	// Individual fields.
	Residency string

	// Company fields.
	CompanyType string
	Listed      bool
	Regulated   bool
}

// Field is one key/value pair of a profile or relationship descriptor.
type Field struct {
	Key   string
	Value string
}

// NewIndividual validates and builds an individual profile.
func NewIndividual(name, residency string) (*Profile, error) {
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if !oneOf(residency, residencies) {
		return nil, &ValidationError{Field: "residency", Reason: "must be one of " + join(residencies)}
	}
	return &Profile{Kind: Individual, Name: name, Residency: residency}, nil
}

// NewCompany validates and builds a company profile.
func NewCompany(name, companyType string, listed, regulated bool) (*Profile, error) {
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if !oneOf(companyType, companyTypes) {
		return nil, &ValidationError{Field: "company_type", Reason: "must be one of " + join(companyTypes)}
	}
	return &Profile{
		Kind:        Company,
		Name:        name,
		CompanyType: companyType,
		Listed:      listed,
		Regulated:   regulated,
	}, nil
}

// Descriptor returns the profile as an ordered key/value sequence for
// prompt serialization. The key order is fixed so that identical
// profiles always serialize identically.
func (p *Profile) Descriptor() []Field {
	fields := []Field{
		{Key: "type", Value: string(p.Kind)},
		{Key: "name", Value: p.Name},
	}
	switch p.Kind {
	case Individual:
		fields = append(fields, Field{Key: "residency", Value: p.Residency})
	case Company:
		fields = append(fields,
			Field{Key: "company_type", Value: p.CompanyType},
			Field{Key: "listed_status", Value: strconv.FormatBool(p.Listed)},
			Field{Key: "regulated", Value: strconv.FormatBool(p.Regulated)},
		)
	}
	return fields
}

func oneOf(value string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

func join(values []string) string {
	return strings.Join(values, ", ")
}
