package domain

// FieldKey names a display field of a service that the scoping filter can
// hide for the duration of one response render.
type FieldKey string

const (
	FieldInstitutionDescriptionEN FieldKey = "institution_description_en"
	FieldInstitutionDescriptionNL FieldKey = "institution_description_nl"
	FieldTechnicalSupportMail     FieldKey = "technical_supportmail"
	FieldEnduserDescriptionEN     FieldKey = "enduser_description_en"
	FieldEnduserDescriptionNL     FieldKey = "enduser_description_nl"
)

// AttributeScopeConstraints records which display fields are hidden from the
// requester. Attached to a service for one response render; never persisted.
type AttributeScopeConstraints struct {
	hidden map[FieldKey]bool
}

// Hide marks the given fields as hidden. A field hidden once stays hidden.
func (c *AttributeScopeConstraints) Hide(keys ...FieldKey) {
	if c.hidden == nil {
		c.hidden = make(map[FieldKey]bool, len(keys))
	}
	for _, k := range keys {
		c.hidden[k] = true
	}
}

// IsHidden reports whether the field is hidden from the requester.
func (c *AttributeScopeConstraints) IsHidden(key FieldKey) bool {
	return c != nil && c.hidden[key]
}

// Service is a federation service as materialized for one response. The
// scoping filter only annotates and filters it; it never feeds back into the
// business logic that produced it.
type Service struct {
	// ID identifies the service.
	ID string `json:"id"`

	// SPEntityID is the entity id of the underlying service provider.
	SPEntityID string `json:"sp_entity_id,omitempty"`

	// Name is the display name of the service.
	Name string `json:"name,omitempty"`

	// Linked reports whether the underlying service provider is linked to
	// the requester's identity provider.
	Linked bool `json:"linked"`

	// ArticleAvailable reports whether a license article is available.
	ArticleAvailable bool `json:"article_available"`

	// QuestionAllowed, ApplyAllowed and FilterGridAllowed are visibility
	// flags computed by the scoping filter.
	QuestionAllowed   bool `json:"question_allowed"`
	ApplyAllowed      bool `json:"apply_allowed"`
	FilterGridAllowed bool `json:"filter_grid_allowed"`

	// Constraints holds the field-redaction decisions for the requester.
	Constraints *AttributeScopeConstraints `json:"-"`
}

// manageScopedTiers are the tiers allowed to raise questions and use the
// filter grid.
var manageScopedTiers = []Authority{
	AuthorityDistributionChannelAdmin,
	AuthorityIdPLicenseAdmin,
	AuthorityIdPSurfConextAdmin,
}

// ScopeService computes the visibility flags and attribute-redaction
// constraints of one service from the requester's authority set, in place.
//
// Redaction rules are independent and cumulative: plain users lose the
// institution description and technical support contact; license and
// SURFconext admins additionally lose the end-user descriptions.
func ScopeService(svc *Service, authorities Authorities) {
	isAdmin := authorities.ContainsAny(manageScopedTiers...)
	svc.QuestionAllowed = isAdmin
	svc.FilterGridAllowed = isAdmin
	svc.ApplyAllowed = authorities.ContainsAny(AuthorityDistributionChannelAdmin, AuthorityIdPSurfConextAdmin)

	constraints := &AttributeScopeConstraints{}
	if authorities.IsPlainUser() {
		constraints.Hide(FieldInstitutionDescriptionEN, FieldInstitutionDescriptionNL, FieldTechnicalSupportMail)
	}
	if authorities.ContainsAny(AuthorityIdPLicenseAdmin, AuthorityIdPSurfConextAdmin) {
		constraints.Hide(FieldEnduserDescriptionEN, FieldEnduserDescriptionNL)
	}
	svc.Constraints = constraints
}

// ReduceServices applies collection scoping: plain users only see services
// whose service provider is linked; license admins without a broader admin
// tier only see services with an article available; anyone else sees the
// collection unchanged. The input is never mutated - a new slice is returned
// with the surviving elements in their original order.
func ReduceServices(services []Service, authorities Authorities) []Service {
	switch {
	case authorities.IsPlainUser():
		out := make([]Service, 0, len(services))
		for _, svc := range services {
			if svc.Linked {
				out = append(out, svc)
			}
		}
		return out
	case isLicenseAdminOnly(authorities):
		out := make([]Service, 0, len(services))
		for _, svc := range services {
			if svc.ArticleAvailable {
				out = append(out, svc)
			}
		}
		return out
	default:
		return services
	}
}

// isLicenseAdminOnly reports whether the set holds IDP_LICENSE_ADMIN without
// either of the broader admin tiers.
func isLicenseAdminOnly(authorities Authorities) bool {
	return authorities.Contains(AuthorityIdPLicenseAdmin) &&
		!authorities.ContainsAny(AuthorityIdPSurfConextAdmin, AuthorityDistributionChannelAdmin)
}
