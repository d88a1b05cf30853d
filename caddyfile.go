package conextaccess

import (
	"github.com/caddyserver/caddy/v2/caddyconfig/caddyfile"
	"github.com/caddyserver/caddy/v2/caddyconfig/httpcaddyfile"
	"github.com/caddyserver/caddy/v2/modules/caddyhttp"
)

// parseCaddyfile sets up the handler from Caddyfile tokens.
//
// Syntax:
//
//	conext_access {
//	    manage_url <url>
//	    manage_credentials <user> <password>
//	    providers_file <path>
//	    metadata_file <path>
//	    verify_metadata_signature
//	    metadata_signing_cert <path>
//	    sab_url <url>
//	    sab_credentials <user> <password>
//	    roles_file <path>
//	    cache_ttl <duration>
//	    admin_group <urn>
//	    viewer_group <urn>
//	    super_user_groups <urn...>
//	    admin_entitlement <role>
//	    viewer_entitlement <role>
//	    require_prodaccepted
//	    principal_header <name>
//	    token_secret <secret>
//	    token_ttl <duration>
//	    metrics enabled|off
//	}
func parseCaddyfile(h httpcaddyfile.Helper) (caddyhttp.MiddlewareHandler, error) {
	var c ConextAccess
	err := c.UnmarshalCaddyfile(h.Dispenser)
	return &c, err
}

// UnmarshalCaddyfile implements caddyfile.Unmarshaler.
func (c *ConextAccess) UnmarshalCaddyfile(d *caddyfile.Dispenser) error {
	d.Next() // consume directive name

	for d.NextBlock(0) {
		switch d.Val() {
		case "manage_url":
			if !d.NextArg() {
				return d.ArgErr()
			}
			c.ManageURL = d.Val()

		case "manage_credentials":
			args := d.RemainingArgs()
			if len(args) != 2 {
				return d.ArgErr()
			}
			c.ManageUser = args[0]
			c.ManagePassword = args[1]

		case "providers_file":
			if !d.NextArg() {
				return d.ArgErr()
			}
			c.ProvidersFile = d.Val()

		case "metadata_file":
			if !d.NextArg() {
				return d.ArgErr()
			}
			c.MetadataFile = d.Val()

		case "verify_metadata_signature":
			c.VerifyMetadataSignature = true

		case "metadata_signing_cert":
			if !d.NextArg() {
				return d.ArgErr()
			}
			c.MetadataSigningCert = d.Val()

		case "sab_url":
			if !d.NextArg() {
				return d.ArgErr()
			}
			c.SabURL = d.Val()

		case "sab_credentials":
			args := d.RemainingArgs()
			if len(args) != 2 {
				return d.ArgErr()
			}
			c.SabUser = args[0]
			c.SabPassword = args[1]

		case "roles_file":
			if !d.NextArg() {
				return d.ArgErr()
			}
			c.RolesFile = d.Val()

		case "cache_ttl":
			if !d.NextArg() {
				return d.ArgErr()
			}
			c.CacheTTL = d.Val()

		case "admin_group":
			if !d.NextArg() {
				return d.ArgErr()
			}
			c.AdminGroup = d.Val()

		case "viewer_group":
			if !d.NextArg() {
				return d.ArgErr()
			}
			c.ViewerGroup = d.Val()

		case "super_user_groups":
			c.SuperUserGroups = d.RemainingArgs()
			if len(c.SuperUserGroups) == 0 {
				return d.ArgErr()
			}

		case "admin_entitlement":
			if !d.NextArg() {
				return d.ArgErr()
			}
			c.AdminEntitlement = d.Val()

		case "viewer_entitlement":
			if !d.NextArg() {
				return d.ArgErr()
			}
			c.ViewerEntitlement = d.Val()

		case "require_prodaccepted":
			c.RequireProdAccepted = true

		case "principal_header":
			if !d.NextArg() {
				return d.ArgErr()
			}
			c.PrincipalHeader = d.Val()

		case "token_secret":
			if !d.NextArg() {
				return d.ArgErr()
			}
			c.TokenSecret = d.Val()

		case "token_ttl":
			if !d.NextArg() {
				return d.ArgErr()
			}
			c.TokenTTL = d.Val()

		case "metrics":
			if !d.NextArg() {
				return d.ArgErr()
			}
			switch d.Val() {
			case "enabled", "on":
				c.MetricsEnabled = true
			case "disabled", "off":
				c.MetricsEnabled = false
			default:
				return d.Errf("metrics must be 'enabled' or 'off', got %q", d.Val())
			}

		default:
			return d.Errf("unrecognized subdirective: %s", d.Val())
		}
	}

	c.Config.SetDefaults()
	return nil
}
