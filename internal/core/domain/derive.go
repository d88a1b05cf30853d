package domain

// RolePolicy is the static configuration of recognized group names and
// registry entitlement URNs. Zero values mean "not recognized"; use
// DefaultRolePolicy for the federation defaults.
type RolePolicy struct {
	// AdminGroup is the group whose members get DASHBOARD_ADMIN.
	AdminGroup string `json:"admin_group,omitempty" yaml:"admin_group,omitempty"`

	// ViewerGroup is the group whose members get DASHBOARD_VIEWER.
	ViewerGroup string `json:"viewer_group,omitempty" yaml:"viewer_group,omitempty"`

	// SuperUserGroups are the groups whose members get DASHBOARD_SUPER_USER.
	SuperUserGroups []string `json:"super_user_groups,omitempty" yaml:"super_user_groups,omitempty"`

	// AdminEntitlement is the registry URN that maps to DASHBOARD_ADMIN.
	AdminEntitlement string `json:"admin_entitlement,omitempty" yaml:"admin_entitlement,omitempty"`

	// ViewerEntitlement is the registry URN that maps to DASHBOARD_VIEWER.
	ViewerEntitlement string `json:"viewer_entitlement,omitempty" yaml:"viewer_entitlement,omitempty"`

	// RequireProdAccepted gates registry-derived authorities on the resolved
	// provider being prodaccepted. Off by default.
	RequireProdAccepted bool `json:"require_prodaccepted,omitempty" yaml:"require_prodaccepted,omitempty"`
}

// DefaultRolePolicy returns the federation's conventional group names and
// SAB entitlement URNs.
func DefaultRolePolicy() RolePolicy {
	return RolePolicy{
		AdminGroup:        "dashboard.admin",
		ViewerGroup:       "dashboard.viewer",
		SuperUserGroups:   []string{"dashboard.super.user"},
		AdminEntitlement:  "urn:mace:surfnet.nl:surfnet.nl:sab:SURFconextverantwoordelijke",
		ViewerEntitlement: "urn:mace:surfnet.nl:surfnet.nl:sab:SURFconextbeheerder",
	}
}

// RegistryOutcome classifies how the role registry path contributed to a
// derivation, for audit logging and metrics. It carries no privilege.
type RegistryOutcome string

const (
	// RegistryAbsent means there was no registry result to consider.
	RegistryAbsent RegistryOutcome = "absent"

	// RegistryMatched means the registry institution matched a sibling
	// provider and its entitlements were mapped.
	RegistryMatched RegistryOutcome = "matched"

	// RegistryMismatch means the registry institution did not match any
	// sibling provider; the result contributed nothing.
	RegistryMismatch RegistryOutcome = "mismatch"
)

// DerivationInput bundles everything authority derivation may consult.
type DerivationInput struct {
	// Groups is the group-membership header sequence, order preserved.
	Groups []string

	// Provider is the resolved authenticating identity provider, nil when no
	// candidate resolved.
	Provider *Provider

	// Siblings are the providers sharing the resolved provider's
	// institution id, including the provider itself.
	Siblings []Provider

	// Roles is the role registry result for the subject, nil when the lookup
	// was absent or failed.
	Roles *RegistryRoles
}

// DeriveAuthorities combines the group-membership path and the
// institution-registry path into a canonical authority set.
//
// Group path: each group value is compared against the policy's recognized
// names; matches add DASHBOARD_SUPER_USER / DASHBOARD_ADMIN /
// DASHBOARD_VIEWER. Registry path: the registry institution must equal the
// institution id of at least one sibling provider, otherwise the path
// contributes nothing (hard guard, not a fallback); on a match, entitlement
// URNs are mapped via the policy. When neither path contributes, the result
// is exactly {USER}.
//
// Deterministic: identical inputs yield an identical, canonically ordered
// set. Pure - no I/O, no clock.
func DeriveAuthorities(policy RolePolicy, in DerivationInput) (Authorities, RegistryOutcome) {
	var tiers []Authority

	for _, group := range in.Groups {
		if group == policy.AdminGroup && policy.AdminGroup != "" {
			tiers = append(tiers, AuthorityDashboardAdmin)
		}
		if group == policy.ViewerGroup && policy.ViewerGroup != "" {
			tiers = append(tiers, AuthorityDashboardViewer)
		}
		for _, super := range policy.SuperUserGroups {
			if group == super && super != "" {
				tiers = append(tiers, AuthorityDashboardSuperUser)
			}
		}
	}

	outcome := RegistryAbsent
	if in.Roles != nil {
		if registryInstitutionMatches(policy, in) {
			outcome = RegistryMatched
			for _, urn := range in.Roles.Entitlements {
				switch urn {
				case policy.AdminEntitlement:
					tiers = append(tiers, AuthorityDashboardAdmin)
				case policy.ViewerEntitlement:
					tiers = append(tiers, AuthorityDashboardViewer)
				}
			}
		} else {
			outcome = RegistryMismatch
		}
	}

	return NewAuthorities(tiers...), outcome
}

// registryInstitutionMatches applies the institution-match guard: the
// registry's institution id must be non-empty and equal the institution id of
// at least one sibling provider confirmed via the provider directory.
func registryInstitutionMatches(policy RolePolicy, in DerivationInput) bool {
	if in.Roles.InstitutionID == "" {
		return false
	}
	if policy.RequireProdAccepted && (in.Provider == nil || !in.Provider.IsProdAccepted()) {
		return false
	}
	for _, sibling := range in.Siblings {
		if sibling.InstitutionID == in.Roles.InstitutionID {
			return true
		}
	}
	return false
}
