package manage

import (
	"context"
	"sync"

	"github.com/teunfransen/OpenConext-dashboard/internal/core/domain"
	"github.com/teunfransen/OpenConext-dashboard/internal/core/ports"
)

// InMemoryProviderDirectory is an in-memory implementation of
// ProviderDirectory. Suitable for testing and development.
type InMemoryProviderDirectory struct {
	mu        sync.RWMutex
	providers []domain.Provider
}

// NewInMemoryProviderDirectory creates a directory holding the given
// providers.
func NewInMemoryProviderDirectory(providers ...domain.Provider) *InMemoryProviderDirectory {
	return &InMemoryProviderDirectory{providers: providers}
}

// Add registers an additional provider.
// This is a test helper method - production adapters load from Manage.
func (d *InMemoryProviderDirectory) Add(p domain.Provider) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.providers = append(d.providers, p)
}

// LookupByEntityID returns the provider with the given entity id.
func (d *InMemoryProviderDirectory) LookupByEntityID(ctx context.Context, entityID string) (*domain.Provider, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for i := range d.providers {
		if d.providers[i].EntityID == entityID {
			p := d.providers[i]
			return &p, nil
		}
	}
	return nil, domain.ErrProviderNotFound
}

// ListByInstitutionID returns all providers of the given institution.
func (d *InMemoryProviderDirectory) ListByInstitutionID(ctx context.Context, institutionID string) ([]domain.Provider, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var result []domain.Provider
	if institutionID == "" {
		return result, nil
	}
	for _, p := range d.providers {
		if p.InstitutionID == institutionID {
			result = append(result, p)
		}
	}
	return result, nil
}

// Ensure InMemoryProviderDirectory implements ports.ProviderDirectory
var _ ports.ProviderDirectory = (*InMemoryProviderDirectory)(nil)
