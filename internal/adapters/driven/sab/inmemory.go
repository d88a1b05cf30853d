package sab

import (
	"context"
	"sync"

	"github.com/teunfransen/OpenConext-dashboard/internal/core/domain"
	"github.com/teunfransen/OpenConext-dashboard/internal/core/ports"
)

// InMemoryRoleRegistry is an in-memory implementation of RoleRegistry.
// Suitable for testing and development.
type InMemoryRoleRegistry struct {
	mu       sync.RWMutex
	subjects map[string]domain.RegistryRoles
}

// NewInMemoryRoleRegistry creates an empty in-memory role registry.
func NewInMemoryRoleRegistry() *InMemoryRoleRegistry {
	return &InMemoryRoleRegistry{
		subjects: make(map[string]domain.RegistryRoles),
	}
}

// Add puts a subject record in the registry.
// This is a test helper method - production adapters query SAB.
func (r *InMemoryRoleRegistry) Add(uid string, roles domain.RegistryRoles) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subjects[uid] = roles
}

// RolesBySubject returns the record for a subject.
func (r *InMemoryRoleRegistry) RolesBySubject(ctx context.Context, uid string) (*domain.RegistryRoles, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	roles, ok := r.subjects[uid]
	if !ok {
		return nil, domain.ErrRolesNotFound
	}
	return &roles, nil
}

// Ensure InMemoryRoleRegistry implements ports.RoleRegistry
var _ ports.RoleRegistry = (*InMemoryRoleRegistry)(nil)
