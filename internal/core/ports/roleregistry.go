package ports

import (
	"context"

	"github.com/teunfransen/OpenConext-dashboard/internal/core/domain"
)

// RoleRegistry is the port interface for the institution role registry
// (SAB). Implementations must be safe for concurrent use.
type RoleRegistry interface {
	// RolesBySubject returns the institution and role entitlements the
	// registry has on file for a subject id. Returns domain.ErrRolesNotFound
	// when the subject has no record; transport failures are returned as-is
	// and callers degrade to an absent result.
	RolesBySubject(ctx context.Context, uid string) (*domain.RegistryRoles, error)
}
