package conextaccess

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/caddyserver/caddy/v2"
	"github.com/caddyserver/caddy/v2/caddyconfig/caddyfile"
	"github.com/caddyserver/caddy/v2/caddyconfig/httpcaddyfile"
	"github.com/caddyserver/caddy/v2/modules/caddyhttp"
	"go.uber.org/zap"

	"github.com/teunfransen/OpenConext-dashboard/internal/adapters/driven/manage"
	"github.com/teunfransen/OpenConext-dashboard/internal/adapters/driven/sab"
	"github.com/teunfransen/OpenConext-dashboard/internal/adapters/driven/signature"
	"github.com/teunfransen/OpenConext-dashboard/internal/adapters/driven/token"
	"github.com/teunfransen/OpenConext-dashboard/internal/core/domain"
	"github.com/teunfransen/OpenConext-dashboard/internal/core/ports"
)

const Version = "1.2.0"

func init() {
	caddy.RegisterModule(ConextAccess{})
	httpcaddyfile.RegisterHandlerDirective("conext_access", parseCaddyfile)
}

// ConextAccess is a Caddy HTTP handler module that resolves the principal
// behind Shibboleth assertion headers and attaches it to the request before
// passing control downstream.
type ConextAccess struct {
	// Configuration embedded directly
	Config

	// Runtime state (not serialized)
	directory ports.ProviderDirectory
	registry  ports.RoleRegistry
	resolver  *Resolver
	codec     ports.PrincipalCodec
	metrics   ports.MetricsRecorder
	logger    *zap.Logger
}

// principalContextKey is the context key under which the resolved principal
// is stored on the request.
type principalContextKey struct{}

// PrincipalFromContext returns the principal resolved for this request, or
// nil if resolution has not run.
func PrincipalFromContext(ctx context.Context) *domain.Principal {
	p, _ := ctx.Value(principalContextKey{}).(*domain.Principal)
	return p
}

// ContextWithPrincipal returns a context carrying the principal. Exported
// for tests of downstream handlers.
func ContextWithPrincipal(ctx context.Context, p *domain.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// CaddyModule returns the Caddy module information.
func (ConextAccess) CaddyModule() caddy.ModuleInfo {
	return caddy.ModuleInfo{
		ID:  "http.handlers.conext_access",
		New: func() caddy.Module { return new(ConextAccess) },
	}
}

// Provision sets up the module.
func (c *ConextAccess) Provision(ctx caddy.Context) error {
	c.logger = ctx.Logger()
	c.logger.Debug("provisioning conext access handler")

	c.Config.SetDefaults()

	cacheTTL, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return fmt.Errorf("parse cache ttl: %w", err)
	}

	if c.MetricsEnabled {
		c.metrics = defaultPrometheusRecorder()
	} else {
		c.metrics = NewNoopMetricsRecorder()
	}

	if err := c.provisionDirectory(cacheTTL); err != nil {
		return err
	}
	if err := c.provisionRegistry(); err != nil {
		return err
	}

	if c.PrincipalHeader != "" {
		tokenTTL, err := time.ParseDuration(c.TokenTTL)
		if err != nil {
			return fmt.Errorf("parse token ttl: %w", err)
		}
		c.codec = token.NewJWTPrincipalCodec([]byte(c.TokenSecret), tokenTTL)
	}

	c.resolver = NewResolver(c.directory, c.registry, c.Config.RolePolicy(), c.logger, c.metrics)

	c.logger.Info("conext access handler provisioned",
		zap.Bool("role_registry", c.registry != nil),
		zap.Bool("principal_header", c.PrincipalHeader != ""),
		zap.String("version", Version),
	)
	return nil
}

// provisionDirectory builds the provider directory from whichever source the
// configuration names. Validate guarantees exactly one is set.
func (c *ConextAccess) provisionDirectory(cacheTTL time.Duration) error {
	switch {
	case c.ManageURL != "":
		opts := []manage.Option{
			manage.WithCacheTTL(cacheTTL),
			manage.WithLogger(c.logger),
			manage.WithMetricsRecorder(c.metrics),
		}
		if c.ManageUser != "" {
			opts = append(opts, manage.WithBasicAuth(c.ManageUser, c.ManagePassword))
		}
		c.directory = manage.NewURLProviderDirectory(c.ManageURL, opts...)

	case c.ProvidersFile != "":
		dir := manage.NewFileProviderDirectory(c.ProvidersFile, c.logger)
		if err := dir.Refresh(context.Background()); err != nil {
			return fmt.Errorf("load providers from file: %w", err)
		}
		c.directory = dir

	case c.MetadataFile != "":
		opts := []manage.Option{manage.WithLogger(c.logger)}
		if c.VerifyMetadataSignature {
			certs, err := signature.LoadTrustAnchors(c.MetadataSigningCert)
			if err != nil {
				return fmt.Errorf("load metadata signing certificate: %w", err)
			}
			opts = append(opts, manage.WithSignatureVerifier(signature.NewXMLDsigVerifier(certs, c.logger)))
			c.logger.Info("metadata signature verification enabled",
				zap.String("cert_file", c.MetadataSigningCert),
				zap.Int("cert_count", len(certs)))
		}
		dir := manage.NewMetadataProviderDirectory(c.MetadataFile, opts...)
		if err := dir.Refresh(context.Background()); err != nil {
			return fmt.Errorf("load providers from metadata: %w", err)
		}
		c.directory = dir
	}
	return nil
}

// provisionRegistry builds the optional institution role registry.
func (c *ConextAccess) provisionRegistry() error {
	switch {
	case c.SabURL != "":
		opts := []sab.URLOption{
			sab.WithLogger(c.logger),
			sab.WithMetricsRecorder(c.metrics),
		}
		if c.SabUser != "" {
			opts = append(opts, sab.WithBasicAuth(c.SabUser, c.SabPassword))
		}
		c.registry = sab.NewURLRoleRegistry(c.SabURL, opts...)

	case c.RolesFile != "":
		reg := sab.NewFileRoleRegistry(c.RolesFile, c.logger)
		if err := reg.Refresh(context.Background()); err != nil {
			return fmt.Errorf("load roles from file: %w", err)
		}
		c.registry = reg
	}
	return nil
}

// Validate ensures the module's configuration is valid.
func (c *ConextAccess) Validate() error {
	return c.Config.Validate()
}

// ServeHTTP implements caddyhttp.MiddlewareHandler. Every request passing
// through is resolved to a principal; only a missing identifier header
// rejects the request.
func (c *ConextAccess) ServeHTTP(w http.ResponseWriter, r *http.Request, next caddyhttp.Handler) error {
	principal, err := c.resolver.ResolveFromRequest(r.Context(), r)
	if err != nil {
		c.getLogger().Warn("principal resolution rejected request",
			zap.Error(err),
			zap.String("remote_addr", r.RemoteAddr),
		)
		c.renderAppError(w, err)
		return nil
	}

	r = r.WithContext(ContextWithPrincipal(r.Context(), principal))

	// Expose the resolved identity as placeholders ({http.vars.conext.uid}).
	caddyhttp.SetVar(r.Context(), "conext.uid", principal.UID)
	caddyhttp.SetVar(r.Context(), "conext.institution_id", principal.InstitutionID)
	caddyhttp.SetVar(r.Context(), "conext.idp_entity_id", principal.IdPEntityID)

	// Propagate the principal to downstream services as a signed token.
	if c.codec != nil {
		tok, err := c.codec.Encode(principal)
		if err != nil {
			c.getLogger().Error("principal token encoding failed", zap.Error(err))
			c.renderAppError(w, ServiceError("Failed to encode principal token"))
			return nil
		}
		r.Header.Set(c.PrincipalHeader, tok)
	}

	if r.URL.Path == "/conext/api/me" && r.Method == http.MethodGet {
		return c.handleMe(w, principal)
	}

	return next.ServeHTTP(w, r)
}

// meResponse is the JSON response for GET /conext/api/me.
type meResponse struct {
	UID           string   `json:"uid"`
	Email         string   `json:"email,omitempty"`
	DisplayName   string   `json:"display_name,omitempty"`
	InstitutionID string   `json:"institution_id,omitempty"`
	IdPEntityID   string   `json:"idp_entity_id,omitempty"`
	Authorities   []string `json:"authorities"`
	SuperUser     bool     `json:"super_user"`
}

// handleMe returns the resolved principal as JSON. Useful for frontends and
// for verifying a deployment end to end.
func (c *ConextAccess) handleMe(w http.ResponseWriter, principal *domain.Principal) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(meResponse{
		UID:           principal.UID,
		Email:         principal.Email,
		DisplayName:   principal.DisplayName,
		InstitutionID: principal.InstitutionID,
		IdPEntityID:   principal.IdPEntityID,
		Authorities:   principal.Authorities.Strings(),
		SuperUser:     principal.IsSuperUser(),
	})
}

// renderAppError renders an error as the JSON envelope, mapping unknown
// errors to a generic service failure.
func (c *ConextAccess) renderAppError(w http.ResponseWriter, err error) {
	appErr, ok := err.(*AppError)
	if !ok {
		appErr = ServiceError("Request could not be processed")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Code.HTTPStatus())
	json.NewEncoder(w).Encode(NewJSONErrorResponse(appErr))
}

// getLogger returns the logger, or a no-op logger if not set.
// This allows tests to run without calling Provision().
func (c *ConextAccess) getLogger() *zap.Logger {
	if c.logger != nil {
		return c.logger
	}
	return zap.NewNop()
}

// SetResolver sets the resolver. For testing purposes.
func (c *ConextAccess) SetResolver(r *Resolver) {
	c.resolver = r
}

// SetPrincipalCodec sets the principal codec. For testing purposes.
func (c *ConextAccess) SetPrincipalCodec(codec ports.PrincipalCodec) {
	c.codec = codec
}

// Interface guards
var (
	_ caddy.Module                = (*ConextAccess)(nil)
	_ caddy.Provisioner           = (*ConextAccess)(nil)
	_ caddy.Validator             = (*ConextAccess)(nil)
	_ caddyhttp.MiddlewareHandler = (*ConextAccess)(nil)
	_ caddyfile.Unmarshaler       = (*ConextAccess)(nil)
)
