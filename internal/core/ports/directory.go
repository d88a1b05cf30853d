package ports

import (
	"context"

	"github.com/teunfransen/OpenConext-dashboard/internal/core/domain"
)

// ProviderDirectory is the port interface for the federation provider
// registry (Manage). Implementations must be safe for concurrent use.
type ProviderDirectory interface {
	// LookupByEntityID returns the provider registered under the given SAML
	// entity id. Returns domain.ErrProviderNotFound when no provider is
	// registered; transport failures are returned as-is and callers degrade
	// to an absent result.
	LookupByEntityID(ctx context.Context, entityID string) (*domain.Provider, error)

	// ListByInstitutionID returns all providers belonging to the given
	// institution, in registry order. An unknown institution yields an empty
	// list, not an error.
	ListByInstitutionID(ctx context.Context, institutionID string) ([]domain.Provider, error)
}
