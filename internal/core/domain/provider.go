package domain

import "errors"

// ErrProviderNotFound is returned by directory lookups when no provider is
// registered for the given entity id.
var ErrProviderNotFound = errors.New("identity provider not found")

// ProviderState is the lifecycle state of an identity provider in the
// federation registry.
type ProviderState string

const (
	// StateUnknown means the registry did not report a state.
	StateUnknown ProviderState = ""

	// StateTestAccepted means the provider is accepted on the test environment.
	StateTestAccepted ProviderState = "testaccepted"

	// StateProdAccepted means the provider is accepted on production.
	StateProdAccepted ProviderState = "prodaccepted"
)

// Provider is an identity provider record as reported by the provider
// directory. The engine never constructs one from header data alone.
type Provider struct {
	// EntityID is the SAML entity id of the provider.
	EntityID string `json:"entity_id" yaml:"entity_id"`

	// InstitutionID is the institution the provider belongs to. Empty when
	// the registry has no institution on file.
	InstitutionID string `json:"institution_id,omitempty" yaml:"institution_id,omitempty"`

	// Name is the display name of the provider.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// State is the lifecycle state of the provider.
	State ProviderState `json:"state,omitempty" yaml:"state,omitempty"`
}

// IsProdAccepted reports whether the provider is accepted on production.
func (p Provider) IsProdAccepted() bool {
	return p.State == StateProdAccepted
}
