//go:build integration

package sab

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/teunfransen/OpenConext-dashboard/internal/core/domain"
)

const profileJSON = `{
  "organisation": {"schac_home": "SURFNET", "name": "SURFnet bv"},
  "authorisations": [
    {"role": "urn:mace:surfnet.nl:surfnet.nl:sab:SURFconextverantwoordelijke"},
    {"role": "urn:mace:surfnet.nl:surfnet.nl:sab:Infraverantwoordelijke"},
    {"role": ""}
  ]
}`

func TestURLRoleRegistry_Lookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/profile" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("uid"); got != "urn:collab:person:surfnet.nl:jdoe" {
			t.Errorf("uid = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(profileJSON))
	}))
	defer server.Close()

	reg := NewURLRoleRegistry(server.URL)

	roles, err := reg.RolesBySubject(context.Background(), "urn:collab:person:surfnet.nl:jdoe")
	if err != nil {
		t.Fatalf("RolesBySubject() error = %v", err)
	}
	if roles.InstitutionID != "SURFNET" {
		t.Errorf("InstitutionID = %q, want SURFNET", roles.InstitutionID)
	}
	// The empty role entry must be dropped.
	if len(roles.Entitlements) != 2 {
		t.Errorf("Entitlements = %v, want 2 entries", roles.Entitlements)
	}
}

func TestURLRoleRegistry_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	reg := NewURLRoleRegistry(server.URL)

	_, err := reg.RolesBySubject(context.Background(), "urn:collab:person:nowhere:jdoe")
	if !errors.Is(err, domain.ErrRolesNotFound) {
		t.Errorf("error = %v, want ErrRolesNotFound", err)
	}
}

func TestURLRoleRegistry_ServerErrorSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	reg := NewURLRoleRegistry(server.URL)

	_, err := reg.RolesBySubject(context.Background(), "urn:collab:person:surfnet.nl:jdoe")
	if err == nil {
		t.Fatal("expected error for 502 response")
	}
	if errors.Is(err, domain.ErrRolesNotFound) {
		t.Error("server failure must not be reported as not-found")
	}
}

func TestURLRoleRegistry_BasicAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "dashboard" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(profileJSON))
	}))
	defer server.Close()

	reg := NewURLRoleRegistry(server.URL, WithBasicAuth("dashboard", "secret"))

	if _, err := reg.RolesBySubject(context.Background(), "urn:collab:person:surfnet.nl:jdoe"); err != nil {
		t.Fatalf("RolesBySubject() error = %v", err)
	}
}

func TestURLRoleRegistry_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	reg := NewURLRoleRegistry(server.URL)

	if _, err := reg.RolesBySubject(context.Background(), "urn:collab:person:surfnet.nl:jdoe"); err == nil {
		t.Fatal("expected error for malformed response")
	}
}
