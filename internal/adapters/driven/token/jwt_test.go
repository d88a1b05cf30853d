//go:build unit

package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/teunfransen/OpenConext-dashboard/internal/core/domain"
	"github.com/teunfransen/OpenConext-dashboard/internal/core/ports"
)

func testPrincipal() *domain.Principal {
	return &domain.Principal{
		UID:           "urn:collab:person:surfnet.nl:jdoe",
		Email:         "jdoe@surfnet.nl",
		DisplayName:   "John Doe",
		InstitutionID: "SURFNET",
		IdPEntityID:   "https://idp.surfnet.nl",
		Authorities:   domain.NewAuthorities(domain.AuthorityDashboardAdmin),
	}
}

func TestJWTPrincipalCodec_Roundtrip(t *testing.T) {
	codec := NewJWTPrincipalCodec([]byte("test-secret"), 5*time.Minute)

	tok, err := codec.Encode(testPrincipal())
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	decoded, err := codec.Decode(tok)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if decoded.UID != "urn:collab:person:surfnet.nl:jdoe" {
		t.Errorf("UID = %q", decoded.UID)
	}
	if decoded.Email != "jdoe@surfnet.nl" || decoded.DisplayName != "John Doe" {
		t.Errorf("identity fields = %q/%q", decoded.Email, decoded.DisplayName)
	}
	if decoded.InstitutionID != "SURFNET" || decoded.IdPEntityID != "https://idp.surfnet.nl" {
		t.Errorf("provider fields = %q/%q", decoded.InstitutionID, decoded.IdPEntityID)
	}
	if !decoded.IsDashboardAdmin() {
		t.Errorf("Authorities = %v, want dashboard admin", decoded.Authorities)
	}
}

func TestJWTPrincipalCodec_ExcludesRawAttributes(t *testing.T) {
	codec := NewJWTPrincipalCodec([]byte("test-secret"), 5*time.Minute)

	principal := testPrincipal()
	principal.Attributes = domain.Assertion{
		domain.HeaderMemberOf: {"internal.group.name"},
	}

	tok, err := codec.Encode(principal)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if strings.Contains(tok, "internal.group.name") {
		t.Error("raw attribute values must not leak into the token")
	}

	decoded, err := codec.Decode(tok)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if decoded.Attributes != nil {
		t.Errorf("Attributes = %v, want nil after roundtrip", decoded.Attributes)
	}
}

func TestJWTPrincipalCodec_RejectsTampered(t *testing.T) {
	codec := NewJWTPrincipalCodec([]byte("test-secret"), 5*time.Minute)

	tok, err := codec.Encode(testPrincipal())
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	tampered := tok[:len(tok)-4] + "AAAA"
	if _, err := codec.Decode(tampered); !errors.Is(err, ports.ErrTokenInvalid) {
		t.Errorf("error = %v, want ErrTokenInvalid", err)
	}
}

func TestJWTPrincipalCodec_RejectsWrongSecret(t *testing.T) {
	encoder := NewJWTPrincipalCodec([]byte("secret-one"), 5*time.Minute)
	decoder := NewJWTPrincipalCodec([]byte("secret-two"), 5*time.Minute)

	tok, err := encoder.Encode(testPrincipal())
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if _, err := decoder.Decode(tok); !errors.Is(err, ports.ErrTokenInvalid) {
		t.Errorf("error = %v, want ErrTokenInvalid", err)
	}
}

func TestJWTPrincipalCodec_RejectsExpired(t *testing.T) {
	codec := NewJWTPrincipalCodec([]byte("test-secret"), 5*time.Minute)

	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	codec.now = func() time.Time { return issued }

	tok, err := codec.Encode(testPrincipal())
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	codec.now = func() time.Time { return issued.Add(10 * time.Minute) }
	if _, err := codec.Decode(tok); !errors.Is(err, ports.ErrTokenInvalid) {
		t.Errorf("error = %v, want ErrTokenInvalid", err)
	}
}

func TestJWTPrincipalCodec_RejectsGarbage(t *testing.T) {
	codec := NewJWTPrincipalCodec([]byte("test-secret"), 5*time.Minute)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := codec.Decode(tok); !errors.Is(err, ports.ErrTokenInvalid) {
			t.Errorf("Decode(%q) error = %v, want ErrTokenInvalid", tok, err)
		}
	}
}

func TestJWTPrincipalCodec_RejectsEmptyPrincipal(t *testing.T) {
	codec := NewJWTPrincipalCodec([]byte("test-secret"), 5*time.Minute)

	if _, err := codec.Encode(nil); err == nil {
		t.Error("expected error for nil principal")
	}
	if _, err := codec.Encode(&domain.Principal{}); err == nil {
		t.Error("expected error for principal without uid")
	}
}
