package domain

import "strings"

// ShibbolethHeader identifies one of the request headers set by the upstream
// Shibboleth service provider. The enumeration is closed: headers outside this
// set are never consulted by the engine.
type ShibbolethHeader string

const (
	// HeaderNameID carries the subject identifier. It is the only mandatory
	// header; principal construction fails without it.
	HeaderNameID ShibbolethHeader = "name-id"

	// HeaderEmail carries the subject's mail address.
	HeaderEmail ShibbolethHeader = "Shib-InetOrgPerson-mail"

	// HeaderDisplayName carries the subject's display name.
	HeaderDisplayName ShibbolethHeader = "displayName"

	// HeaderAuthenticatingAuthority carries the ordered candidate entity ids
	// of the identity provider that authenticated the subject. Multi-valued.
	HeaderAuthenticatingAuthority ShibbolethHeader = "Shib-Authenticating-Authority"

	// HeaderMemberOf carries group memberships. Multi-valued.
	HeaderMemberOf ShibbolethHeader = "Shib-MemberOf"

	// HeaderEntitlement carries eduPersonEntitlement values. Multi-valued.
	HeaderEntitlement ShibbolethHeader = "Shib-EduPersonEntitlement"
)

// AssertionHeaders is the full enumerated header set, in extraction order.
var AssertionHeaders = []ShibbolethHeader{
	HeaderNameID,
	HeaderEmail,
	HeaderDisplayName,
	HeaderAuthenticatingAuthority,
	HeaderMemberOf,
	HeaderEntitlement,
}

// String returns the wire-level header name.
func (h ShibbolethHeader) String() string {
	return string(h)
}

// multiValueSeparator is the Shibboleth convention for joining multiple
// attribute values into a single header value.
const multiValueSeparator = ";"

// SplitHeaderValue splits a raw header value on ";" into an ordered sequence
// of trimmed, non-empty segments. A value without the separator yields a
// single-element sequence; an empty value yields nil. Duplicates are
// preserved verbatim - entitlement lists may legitimately repeat.
//
// This is a pure function with no side effects or I/O.
func SplitHeaderValue(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, multiValueSeparator)
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			values = append(values, p)
		}
	}
	if len(values) == 0 {
		return nil
	}
	return values
}

// Assertion is the typed attribute map captured from one request: header
// role to ordered value sequence. Absent headers map to an empty sequence.
// An Assertion is captured once per request and never mutated afterwards.
type Assertion map[ShibbolethHeader][]string

// AssertionFromLookup captures an Assertion using a header-lookup function
// (name to raw value, empty string meaning absent). Every header in the
// enumerated set is extracted; absence is not an error at this stage.
func AssertionFromLookup(lookup func(name string) string) Assertion {
	a := make(Assertion, len(AssertionHeaders))
	for _, h := range AssertionHeaders {
		a[h] = SplitHeaderValue(lookup(h.String()))
	}
	return a
}

// Values returns the ordered value sequence for a header. Never nil-panics;
// absent headers yield an empty sequence.
func (a Assertion) Values(h ShibbolethHeader) []string {
	return a[h]
}

// First returns the first value of a header, or the empty string if the
// header is absent.
func (a Assertion) First(h ShibbolethHeader) string {
	if vs := a[h]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}
