//go:build unit

package domain

import (
	"reflect"
	"testing"
)

// TestSplitHeaderValue_MultiValue tests that semicolon-delimited values are
// split into an ordered sequence.
func TestSplitHeaderValue_MultiValue(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected []string
	}{
		{"two values", "a;b", []string{"a", "b"}},
		{"single value", "a", []string{"a"}},
		{"absent", "", nil},
		{"order preserved", "c;a;b", []string{"c", "a", "b"}},
		{"duplicates preserved", "a;a;b", []string{"a", "a", "b"}},
		{"whitespace trimmed", " a ; b ", []string{"a", "b"}},
		{"empty segments dropped", "a;;b;", []string{"a", "b"}},
		{"only separators", ";;;", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitHeaderValue(tc.raw)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("SplitHeaderValue(%q) = %v, want %v", tc.raw, got, tc.expected)
			}
		})
	}
}

// TestAssertionFromLookup_AllHeaders tests that every enumerated header is
// extracted and absent headers yield empty sequences.
func TestAssertionFromLookup_AllHeaders(t *testing.T) {
	headers := map[string]string{
		"name-id":                       "urn:collab:person:example.org:jdoe",
		"Shib-InetOrgPerson-mail":       "jdoe@example.org",
		"Shib-EduPersonEntitlement":     "urn:x:one;urn:x:two",
		"Shib-Authenticating-Authority": "https://idp.example.org",
	}
	lookup := func(name string) string { return headers[name] }

	a := AssertionFromLookup(lookup)

	if got := a.First(HeaderNameID); got != "urn:collab:person:example.org:jdoe" {
		t.Errorf("First(HeaderNameID) = %q, want %q", got, "urn:collab:person:example.org:jdoe")
	}
	if got := a.Values(HeaderEntitlement); !reflect.DeepEqual(got, []string{"urn:x:one", "urn:x:two"}) {
		t.Errorf("Values(HeaderEntitlement) = %v, want [urn:x:one urn:x:two]", got)
	}
	if got := a.Values(HeaderMemberOf); len(got) != 0 {
		t.Errorf("Values(HeaderMemberOf) = %v, want empty", got)
	}
	if got := a.First(HeaderDisplayName); got != "" {
		t.Errorf("First(HeaderDisplayName) = %q, want empty", got)
	}
}

// TestAssertionFromLookup_UIDNotComposite tests that the identifier header is
// only authoritative in its first element, even when semicolon-joined.
func TestAssertionFromLookup_UIDNotComposite(t *testing.T) {
	a := AssertionFromLookup(func(name string) string {
		if name == "name-id" {
			return "first;second"
		}
		return ""
	})

	if got := a.First(HeaderNameID); got != "first" {
		t.Errorf("First(HeaderNameID) = %q, want %q", got, "first")
	}
}
