//go:build unit

package manage

import (
	"context"
	"errors"
	"testing"

	"github.com/teunfransen/OpenConext-dashboard/internal/core/domain"
)

func TestInMemoryProviderDirectory_Lookup(t *testing.T) {
	dir := NewInMemoryProviderDirectory(
		domain.Provider{EntityID: "https://idp.surfnet.nl", InstitutionID: "SURFNET"},
		domain.Provider{EntityID: "https://idp.example.edu", InstitutionID: "EXAMPLE"},
	)

	p, err := dir.LookupByEntityID(context.Background(), "https://idp.surfnet.nl")
	if err != nil {
		t.Fatalf("LookupByEntityID() error = %v", err)
	}
	if p.InstitutionID != "SURFNET" {
		t.Errorf("InstitutionID = %q, want SURFNET", p.InstitutionID)
	}
}

func TestInMemoryProviderDirectory_LookupNotFound(t *testing.T) {
	dir := NewInMemoryProviderDirectory()

	_, err := dir.LookupByEntityID(context.Background(), "https://unknown.example.org")
	if !errors.Is(err, domain.ErrProviderNotFound) {
		t.Errorf("error = %v, want ErrProviderNotFound", err)
	}
}

func TestInMemoryProviderDirectory_ListByInstitution(t *testing.T) {
	dir := NewInMemoryProviderDirectory(
		domain.Provider{EntityID: "https://idp1.surfnet.nl", InstitutionID: "SURFNET"},
		domain.Provider{EntityID: "https://idp2.surfnet.nl", InstitutionID: "SURFNET"},
		domain.Provider{EntityID: "https://idp.example.edu", InstitutionID: "EXAMPLE"},
	)

	siblings, err := dir.ListByInstitutionID(context.Background(), "SURFNET")
	if err != nil {
		t.Fatalf("ListByInstitutionID() error = %v", err)
	}
	if len(siblings) != 2 {
		t.Errorf("got %d siblings, want 2", len(siblings))
	}
}

func TestInMemoryProviderDirectory_ListEmptyInstitution(t *testing.T) {
	dir := NewInMemoryProviderDirectory(
		domain.Provider{EntityID: "https://idp.surfnet.nl", InstitutionID: "SURFNET"},
	)

	siblings, err := dir.ListByInstitutionID(context.Background(), "")
	if err != nil {
		t.Fatalf("ListByInstitutionID() error = %v", err)
	}
	if len(siblings) != 0 {
		t.Errorf("got %d siblings for empty institution id, want 0", len(siblings))
	}
}

func TestInMemoryProviderDirectory_Add(t *testing.T) {
	dir := NewInMemoryProviderDirectory()
	dir.Add(domain.Provider{EntityID: "https://idp.late.example.org", InstitutionID: "LATE"})

	p, err := dir.LookupByEntityID(context.Background(), "https://idp.late.example.org")
	if err != nil {
		t.Fatalf("LookupByEntityID() error = %v", err)
	}
	if p.InstitutionID != "LATE" {
		t.Errorf("InstitutionID = %q, want LATE", p.InstitutionID)
	}
}
