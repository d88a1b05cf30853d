package conextaccess

import (
	"github.com/teunfransen/OpenConext-dashboard/internal/core/domain"
)

// Config holds the configuration for the access handler.
type Config struct {
	// ManageURL is the base URL of the Manage provider registry.
	// Exactly one of ManageURL, ProvidersFile or MetadataFile must be set.
	ManageURL string `json:"manage_url,omitempty"`

	// ManageUser and ManagePassword are the basic-auth credentials for
	// Manage API calls.
	ManageUser     string `json:"manage_user,omitempty"`
	ManagePassword string `json:"manage_password,omitempty"`

	// ProvidersFile is the path to a local YAML provider registry.
	ProvidersFile string `json:"providers_file,omitempty"`

	// MetadataFile is the path to a SAML metadata aggregate to build the
	// provider registry from.
	MetadataFile string `json:"metadata_file,omitempty"`

	// VerifyMetadataSignature enables XML signature verification on
	// MetadataFile. Requires MetadataSigningCert.
	VerifyMetadataSignature bool `json:"verify_metadata_signature,omitempty"`

	// MetadataSigningCert is the path to the PEM trust anchor(s) for
	// metadata signature verification.
	MetadataSigningCert string `json:"metadata_signing_cert,omitempty"`

	// SabURL is the base URL of the SAB role registry. At most one of
	// SabURL and RolesFile may be set; with neither, the registry path is
	// disabled and only group membership grants tiers.
	SabURL string `json:"sab_url,omitempty"`

	// SabUser and SabPassword are the basic-auth credentials for SAB calls.
	SabUser     string `json:"sab_user,omitempty"`
	SabPassword string `json:"sab_password,omitempty"`

	// RolesFile is the path to a local YAML role registry.
	RolesFile string `json:"roles_file,omitempty"`

	// CacheTTL is how long Manage lookup results are cached (e.g. "1m").
	// Defaults to "1m".
	CacheTTL string `json:"cache_ttl,omitempty"`

	// AdminGroup, ViewerGroup and SuperUserGroups are the group names
	// recognized on the group-membership header. Defaults follow the
	// federation conventions.
	AdminGroup      string   `json:"admin_group,omitempty"`
	ViewerGroup     string   `json:"viewer_group,omitempty"`
	SuperUserGroups []string `json:"super_user_groups,omitempty"`

	// AdminEntitlement and ViewerEntitlement are the registry URNs mapped
	// to DASHBOARD_ADMIN / DASHBOARD_VIEWER.
	AdminEntitlement  string `json:"admin_entitlement,omitempty"`
	ViewerEntitlement string `json:"viewer_entitlement,omitempty"`

	// RequireProdAccepted gates registry-derived authorities on the
	// resolved provider being prodaccepted.
	RequireProdAccepted bool `json:"require_prodaccepted,omitempty"`

	// PrincipalHeader, when set, is the request header on which a signed
	// principal token is forwarded upstream. Requires TokenSecret.
	PrincipalHeader string `json:"principal_header,omitempty"`

	// TokenSecret signs the forwarded principal token.
	TokenSecret string `json:"token_secret,omitempty"`

	// TokenTTL is the forwarded token lifetime (e.g. "5m"). Defaults to "5m".
	TokenTTL string `json:"token_ttl,omitempty"`

	// MetricsEnabled registers Prometheus metrics for resolutions, registry
	// lookups and scope reductions.
	MetricsEnabled bool `json:"metrics_enabled,omitempty"`
}

// SetDefaults fills in default values for unset fields.
func (c *Config) SetDefaults() {
	if c.CacheTTL == "" {
		c.CacheTTL = "1m"
	}
	if c.TokenTTL == "" {
		c.TokenTTL = "5m"
	}

	defaults := domain.DefaultRolePolicy()
	if c.AdminGroup == "" {
		c.AdminGroup = defaults.AdminGroup
	}
	if c.ViewerGroup == "" {
		c.ViewerGroup = defaults.ViewerGroup
	}
	if len(c.SuperUserGroups) == 0 {
		c.SuperUserGroups = defaults.SuperUserGroups
	}
	if c.AdminEntitlement == "" {
		c.AdminEntitlement = defaults.AdminEntitlement
	}
	if c.ViewerEntitlement == "" {
		c.ViewerEntitlement = defaults.ViewerEntitlement
	}
}

// Validate ensures the configuration is complete and unambiguous.
func (c *Config) Validate() error {
	sources := 0
	for _, set := range []bool{c.ManageURL != "", c.ProvidersFile != "", c.MetadataFile != ""} {
		if set {
			sources++
		}
	}
	if sources == 0 {
		return domain.ConfigError("one of manage_url, providers_file or metadata_file is required")
	}
	if sources > 1 {
		return domain.ConfigError("manage_url, providers_file and metadata_file are mutually exclusive")
	}

	if c.SabURL != "" && c.RolesFile != "" {
		return domain.ConfigError("sab_url and roles_file are mutually exclusive")
	}

	if c.VerifyMetadataSignature && c.MetadataSigningCert == "" {
		return domain.ConfigError("verify_metadata_signature requires metadata_signing_cert")
	}
	if c.VerifyMetadataSignature && c.MetadataFile == "" {
		return domain.ConfigError("verify_metadata_signature requires metadata_file")
	}

	if c.PrincipalHeader != "" && c.TokenSecret == "" {
		return domain.ConfigError("principal_header requires token_secret")
	}

	return nil
}

// RolePolicy converts the configuration to the derivation policy.
func (c *Config) RolePolicy() domain.RolePolicy {
	return domain.RolePolicy{
		AdminGroup:          c.AdminGroup,
		ViewerGroup:         c.ViewerGroup,
		SuperUserGroups:     c.SuperUserGroups,
		AdminEntitlement:    c.AdminEntitlement,
		ViewerEntitlement:   c.ViewerEntitlement,
		RequireProdAccepted: c.RequireProdAccepted,
	}
}
