//go:build integration

package manage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/teunfransen/OpenConext-dashboard/internal/core/domain"
)

func writeProvidersFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "providers.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write providers file: %v", err)
	}
	return path
}

func TestFileProviderDirectory_Load(t *testing.T) {
	path := writeProvidersFile(t, `
providers:
  - entity_id: https://idp.surfnet.nl
    institution_id: SURFNET
    name: SURFnet
    state: prodaccepted
  - entity_id: https://idp2.surfnet.nl
    institution_id: SURFNET
    name: SURFnet secondary
    state: testaccepted
`)

	dir := NewFileProviderDirectory(path, nil)
	if err := dir.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	p, err := dir.LookupByEntityID(context.Background(), "https://idp.surfnet.nl")
	if err != nil {
		t.Fatalf("LookupByEntityID() error = %v", err)
	}
	if p.InstitutionID != "SURFNET" || p.State != domain.StateProdAccepted {
		t.Errorf("provider = %+v", p)
	}

	siblings, err := dir.ListByInstitutionID(context.Background(), "SURFNET")
	if err != nil {
		t.Fatalf("ListByInstitutionID() error = %v", err)
	}
	if len(siblings) != 2 {
		t.Errorf("got %d siblings, want 2", len(siblings))
	}
}

func TestFileProviderDirectory_MissingEntityID(t *testing.T) {
	path := writeProvidersFile(t, `
providers:
  - institution_id: SURFNET
    name: nameless
`)

	dir := NewFileProviderDirectory(path, nil)
	if err := dir.Refresh(context.Background()); err == nil {
		t.Fatal("expected error for provider without entity_id")
	}
}

func TestFileProviderDirectory_MissingFile(t *testing.T) {
	dir := NewFileProviderDirectory(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	if err := dir.Refresh(context.Background()); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFileProviderDirectory_MalformedYAML(t *testing.T) {
	path := writeProvidersFile(t, "providers: [unclosed")

	dir := NewFileProviderDirectory(path, nil)
	if err := dir.Refresh(context.Background()); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestFileProviderDirectory_RefreshPicksUpChanges(t *testing.T) {
	path := writeProvidersFile(t, `
providers:
  - entity_id: https://idp.surfnet.nl
    institution_id: SURFNET
`)

	dir := NewFileProviderDirectory(path, nil)
	if err := dir.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	if err := os.WriteFile(path, []byte(`
providers:
  - entity_id: https://idp.example.edu
    institution_id: EXAMPLE
`), 0o600); err != nil {
		t.Fatalf("rewrite providers file: %v", err)
	}
	if err := dir.Refresh(context.Background()); err != nil {
		t.Fatalf("second Refresh() error = %v", err)
	}

	if _, err := dir.LookupByEntityID(context.Background(), "https://idp.surfnet.nl"); !errors.Is(err, domain.ErrProviderNotFound) {
		t.Errorf("stale provider still resolvable after refresh: %v", err)
	}
	if _, err := dir.LookupByEntityID(context.Background(), "https://idp.example.edu"); err != nil {
		t.Errorf("new provider not resolvable after refresh: %v", err)
	}
}
