package conextaccess

import (
	"github.com/teunfransen/OpenConext-dashboard/internal/core/domain"
)

// Re-export assertion and principal types from the domain package so
// library consumers only need the root import.
type ShibbolethHeader = domain.ShibbolethHeader
type Assertion = domain.Assertion
type Principal = domain.Principal
type Authority = domain.Authority
type Authorities = domain.Authorities
type Provider = domain.Provider
type ProviderState = domain.ProviderState
type RegistryRoles = domain.RegistryRoles
type RolePolicy = domain.RolePolicy
type Service = domain.Service
type AttributeScopeConstraints = domain.AttributeScopeConstraints

// Re-export the assertion header names the upstream Shibboleth layer sets.
const (
	HeaderNameID                  = domain.HeaderNameID
	HeaderEmail                   = domain.HeaderEmail
	HeaderDisplayName             = domain.HeaderDisplayName
	HeaderAuthenticatingAuthority = domain.HeaderAuthenticatingAuthority
	HeaderMemberOf                = domain.HeaderMemberOf
	HeaderEntitlement             = domain.HeaderEntitlement
)

// Re-export the authority tiers.
const (
	AuthorityUser                     = domain.AuthorityUser
	AuthorityDashboardViewer          = domain.AuthorityDashboardViewer
	AuthorityDashboardAdmin           = domain.AuthorityDashboardAdmin
	AuthorityDashboardSuperUser       = domain.AuthorityDashboardSuperUser
	AuthorityIdPLicenseAdmin          = domain.AuthorityIdPLicenseAdmin
	AuthorityIdPSurfConextAdmin       = domain.AuthorityIdPSurfConextAdmin
	AuthorityDistributionChannelAdmin = domain.AuthorityDistributionChannelAdmin
)

// Re-export assertion helpers and the derivation entry points.
var (
	SplitHeaderValue    = domain.SplitHeaderValue
	AssertionFromLookup = domain.AssertionFromLookup
	NewAuthorities      = domain.NewAuthorities
	DefaultRolePolicy   = domain.DefaultRolePolicy
	DeriveAuthorities   = domain.DeriveAuthorities
	ScopeService        = domain.ScopeService
	ReduceServices      = domain.ReduceServices
)
