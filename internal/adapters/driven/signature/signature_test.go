//go:build unit

package signature

import (
	"testing"

	"github.com/teunfransen/OpenConext-dashboard/internal/core/ports"
)

// TestNoopVerifier_Verify verifies Verify returns input unchanged.
func TestNoopVerifier_Verify(t *testing.T) {
	verifier := NewNoopVerifier()

	testCases := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"simple", []byte("test data")},
		{"xml", []byte(`<?xml version="1.0"?><root><child>value</child></root>`)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := verifier.Verify(tc.data)
			if err != nil {
				t.Errorf("Verify() returned error: %v", err)
			}
			if string(result) != string(tc.data) {
				t.Errorf("Verify() = %q, want %q", result, tc.data)
			}
		})
	}
}

// TestXMLDsigVerifier_RejectsUnsigned verifies unsigned metadata is rejected.
func TestXMLDsigVerifier_RejectsUnsigned(t *testing.T) {
	verifier := NewXMLDsigVerifier(nil, nil)

	_, err := verifier.Verify([]byte(`<?xml version="1.0"?><EntitiesDescriptor/>`))
	if err == nil {
		t.Error("Verify() should reject unsigned metadata")
	}
}

// TestXMLDsigVerifier_RejectsMalformed verifies malformed XML is rejected.
func TestXMLDsigVerifier_RejectsMalformed(t *testing.T) {
	verifier := NewXMLDsigVerifier(nil, nil)

	_, err := verifier.Verify([]byte("not xml at all <"))
	if err == nil {
		t.Error("Verify() should reject malformed XML")
	}
}

var _ ports.SignatureVerifier = (*XMLDsigVerifier)(nil)
