package domain

import "errors"

// ErrRolesNotFound is returned by role registry lookups when the subject has
// no record. Distinct from an empty record: a subject can be on file with no
// entitlements.
var ErrRolesNotFound = errors.New("subject not found in role registry")

// RegistryRoles is the outcome of one role registry lookup by subject id.
type RegistryRoles struct {
	// InstitutionID is the institution the registry has on file for the
	// subject. Empty means no institution on file; such a result can never
	// contribute authorities (the institution-match guard rejects it).
	InstitutionID string `json:"institution_id,omitempty" yaml:"institution_id,omitempty"`

	// Entitlements are the role-indicating URNs granted to the subject.
	// Order and duplicates are preserved as reported.
	Entitlements []string `json:"entitlements,omitempty" yaml:"entitlements,omitempty"`
}
