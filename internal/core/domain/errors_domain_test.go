//go:build unit

package domain

import (
	"errors"
	"net/http"
	"testing"
)

// TestInvalidAssertionError tests the fatal missing-identifier error.
func TestInvalidAssertionError(t *testing.T) {
	err := InvalidAssertionError(HeaderNameID)

	if err.Code != ErrCodeInvalidAssertion {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidAssertion)
	}
	if err.Code.HTTPStatus() != http.StatusUnauthorized {
		t.Errorf("HTTPStatus = %d, want %d", err.Code.HTTPStatus(), http.StatusUnauthorized)
	}
}

// TestRegistryUnavailableError_Unwrap tests errors.Is support through the
// cause chain.
func TestRegistryUnavailableError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := RegistryUnavailableError("sab", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if err.Code.HTTPStatus() != http.StatusInternalServerError {
		t.Errorf("HTTPStatus = %d, want %d", err.Code.HTTPStatus(), http.StatusInternalServerError)
	}
}

// TestNewJSONErrorResponse tests the JSON envelope shape.
func TestNewJSONErrorResponse(t *testing.T) {
	resp := NewJSONErrorResponse(InvalidAssertionError(HeaderNameID))

	if resp.Error.Code != "invalid_assertion" {
		t.Errorf("Error.Code = %q, want %q", resp.Error.Code, "invalid_assertion")
	}
	if resp.Error.Message == "" {
		t.Error("Error.Message should not be empty")
	}
}
