package domain

// Principal is the fully resolved authenticated user for one request.
// It is built exactly once per request and immutable after construction;
// ownership stays with the request, never shared across requests.
type Principal struct {
	// UID is the subject identifier. Mandatory and non-empty.
	UID string `json:"uid"`

	// Email is the subject's mail address, empty when the header was absent.
	Email string `json:"email,omitempty"`

	// DisplayName is the subject's display name, empty when absent.
	DisplayName string `json:"display_name,omitempty"`

	// InstitutionID is the institution of the resolved identity provider,
	// empty when no provider resolved.
	InstitutionID string `json:"institution_id,omitempty"`

	// IdPEntityID is the entity id of the resolved identity provider, empty
	// when no candidate resolved.
	IdPEntityID string `json:"idp_entity_id,omitempty"`

	// Attributes is the full raw assertion, multi-valued entries included,
	// exposed unchanged for consumers that need values beyond the derived
	// authorities.
	Attributes Assertion `json:"attributes,omitempty"`

	// Authorities is the derived authority set. Never empty: USER at minimum.
	Authorities Authorities `json:"authorities"`
}

// IsSuperUser reports whether the principal holds DASHBOARD_SUPER_USER.
func (p *Principal) IsSuperUser() bool {
	return p.Authorities.Contains(AuthorityDashboardSuperUser)
}

// IsDashboardAdmin reports whether the principal holds DASHBOARD_ADMIN.
func (p *Principal) IsDashboardAdmin() bool {
	return p.Authorities.Contains(AuthorityDashboardAdmin)
}

// IsDashboardViewer reports whether the principal holds DASHBOARD_VIEWER.
func (p *Principal) IsDashboardViewer() bool {
	return p.Authorities.Contains(AuthorityDashboardViewer)
}

// Attribute returns the first value of the given assertion header, or the
// empty string.
func (p *Principal) Attribute(h ShibbolethHeader) string {
	return p.Attributes.First(h)
}
