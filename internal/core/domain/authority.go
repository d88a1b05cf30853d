package domain

import "sort"

// Authority is one named access tier granted to a principal. Tiers are
// additive, not mutually exclusive; a principal holds a set of them.
type Authority string

const (
	AuthorityUser                     Authority = "ROLE_USER"
	AuthorityDashboardViewer          Authority = "ROLE_DASHBOARD_VIEWER"
	AuthorityDashboardAdmin           Authority = "ROLE_DASHBOARD_ADMIN"
	AuthorityDashboardSuperUser       Authority = "ROLE_DASHBOARD_SUPER_USER"
	AuthorityIdPLicenseAdmin          Authority = "ROLE_IDP_LICENSE_ADMIN"
	AuthorityIdPSurfConextAdmin       Authority = "ROLE_IDP_SURFCONEXT_ADMIN"
	AuthorityDistributionChannelAdmin Authority = "ROLE_DISTRIBUTION_CHANNEL_ADMIN"
)

// String returns the authority as a string.
func (a Authority) String() string {
	return string(a)
}

// authorityRank fixes the canonical ordering of an authority set. The rank is
// an encoding detail, not a privilege comparison.
var authorityRank = map[Authority]int{
	AuthorityUser:                     0,
	AuthorityDashboardViewer:          1,
	AuthorityDashboardAdmin:           2,
	AuthorityDashboardSuperUser:       3,
	AuthorityIdPLicenseAdmin:          4,
	AuthorityIdPSurfConextAdmin:       5,
	AuthorityDistributionChannelAdmin: 6,
}

// Authorities is a canonical, deduplicated authority set. Build one through
// NewAuthorities (or DeriveAuthorities) so the canonical form holds.
type Authorities []Authority

// NewAuthorities returns the canonical form of the given tiers: duplicates
// removed, canonical order. USER is the implicit floor - it is added when the
// set is empty and suppressed when any higher tier is present.
func NewAuthorities(tiers ...Authority) Authorities {
	seen := make(map[Authority]bool, len(tiers))
	out := make(Authorities, 0, len(tiers))
	for _, t := range tiers {
		if t == AuthorityUser || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	if len(out) == 0 {
		return Authorities{AuthorityUser}
	}
	sort.Slice(out, func(i, j int) bool {
		return authorityRank[out[i]] < authorityRank[out[j]]
	})
	return out
}

// Contains reports whether the set contains the given tier.
func (a Authorities) Contains(tier Authority) bool {
	for _, t := range a {
		if t == tier {
			return true
		}
	}
	return false
}

// ContainsAny reports whether the set contains at least one of the given
// tiers.
func (a Authorities) ContainsAny(tiers ...Authority) bool {
	for _, t := range tiers {
		if a.Contains(t) {
			return true
		}
	}
	return false
}

// IsPlainUser reports whether the set grants nothing beyond the USER floor:
// the set is empty or exactly {USER}.
func (a Authorities) IsPlainUser() bool {
	return len(a) == 0 || (len(a) == 1 && a[0] == AuthorityUser)
}

// Strings returns the set as plain strings, preserving canonical order.
func (a Authorities) Strings() []string {
	out := make([]string, len(a))
	for i, t := range a {
		out[i] = string(t)
	}
	return out
}
