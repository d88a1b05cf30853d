//go:build unit

package sab

import (
	"context"
	"errors"
	"testing"

	"github.com/teunfransen/OpenConext-dashboard/internal/core/domain"
)

func TestInMemoryRoleRegistry_Lookup(t *testing.T) {
	reg := NewInMemoryRoleRegistry()
	reg.Add("urn:collab:person:surfnet.nl:jdoe", domain.RegistryRoles{
		InstitutionID: "SURFNET",
		Entitlements:  []string{"urn:mace:surfnet.nl:surfnet.nl:sab:SURFconextverantwoordelijke"},
	})

	roles, err := reg.RolesBySubject(context.Background(), "urn:collab:person:surfnet.nl:jdoe")
	if err != nil {
		t.Fatalf("RolesBySubject() error = %v", err)
	}
	if roles.InstitutionID != "SURFNET" {
		t.Errorf("InstitutionID = %q, want SURFNET", roles.InstitutionID)
	}
	if len(roles.Entitlements) != 1 {
		t.Errorf("Entitlements = %v", roles.Entitlements)
	}
}

func TestInMemoryRoleRegistry_NotFound(t *testing.T) {
	reg := NewInMemoryRoleRegistry()

	_, err := reg.RolesBySubject(context.Background(), "urn:collab:person:nowhere:jdoe")
	if !errors.Is(err, domain.ErrRolesNotFound) {
		t.Errorf("error = %v, want ErrRolesNotFound", err)
	}
}
