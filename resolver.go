// Package conextaccess turns federated-identity assertion headers set by an
// upstream Shibboleth layer into a resolved dashboard principal with a
// deterministic authority set, and scopes response payloads by that set.
// It ships as a Caddy v2 handler module plus a plain library API.
package conextaccess

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/teunfransen/OpenConext-dashboard/internal/core/domain"
	"github.com/teunfransen/OpenConext-dashboard/internal/core/ports"
)

// Resolver performs principal resolution: it extracts the assertion, picks
// the authenticating identity provider, queries both registries, derives the
// authority set and builds the principal. One Resolver serves many requests
// concurrently; all per-request state lives on the stack.
type Resolver struct {
	directory ports.ProviderDirectory
	registry  ports.RoleRegistry
	policy    domain.RolePolicy
	logger    *zap.Logger
	metrics   ports.MetricsRecorder
}

// NewResolver creates a resolver over the given registries. A nil registry
// disables the institution-role path; logger and metrics may be nil.
func NewResolver(directory ports.ProviderDirectory, registry ports.RoleRegistry, policy domain.RolePolicy, logger *zap.Logger, metrics ports.MetricsRecorder) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		directory: directory,
		registry:  registry,
		policy:    policy,
		logger:    logger,
		metrics:   metrics,
	}
}

// ResolveFromRequest resolves a principal from an HTTP request's headers.
func (r *Resolver) ResolveFromRequest(ctx context.Context, req *http.Request) (*domain.Principal, error) {
	return r.Resolve(ctx, req.Header.Get)
}

// Resolve resolves a principal from a header-lookup function (name to raw
// value, empty string meaning absent).
//
// Only a missing identifier header aborts resolution. Every registry
// failure degrades toward the least-privileged authority set; the caller is
// never told why elevated authorities were not granted.
func (r *Resolver) Resolve(ctx context.Context, lookup func(name string) string) (*domain.Principal, error) {
	assertion := domain.AssertionFromLookup(lookup)

	uid := assertion.First(domain.HeaderNameID)
	if uid == "" {
		r.recordResolution("", false)
		return nil, domain.InvalidAssertionError(domain.HeaderNameID)
	}

	// The role registry lookup is independent of provider resolution until
	// the institution-match guard joins both, so the two run concurrently.
	rolesCh := make(chan *domain.RegistryRoles, 1)
	go func() {
		rolesCh <- r.lookupRoles(ctx, uid)
	}()

	provider, siblings := r.resolveProvider(ctx, assertion.Values(domain.HeaderAuthenticatingAuthority))
	roles := <-rolesCh

	authorities, outcome := domain.DeriveAuthorities(r.policy, domain.DerivationInput{
		Groups:   assertion.Values(domain.HeaderMemberOf),
		Provider: provider,
		Siblings: siblings,
		Roles:    roles,
	})
	if outcome == domain.RegistryMismatch {
		r.logger.Debug("role registry institution mismatch, no registry authorities granted",
			zap.String("uid", uid),
			zap.String("registry_institution_id", roles.InstitutionID))
	}

	principal := &domain.Principal{
		UID:         uid,
		Email:       assertion.First(domain.HeaderEmail),
		DisplayName: assertion.First(domain.HeaderDisplayName),
		Attributes:  assertion,
		Authorities: authorities,
	}
	if provider != nil {
		principal.InstitutionID = provider.InstitutionID
		principal.IdPEntityID = provider.EntityID
	}

	r.recordResolution(principal.IdPEntityID, true)
	return principal, nil
}

// resolveProvider walks the ordered candidate entity ids and returns the
// first one the directory knows, together with the providers sharing its
// institution. First match wins; later candidates are not queried.
func (r *Resolver) resolveProvider(ctx context.Context, candidates []string) (*domain.Provider, []domain.Provider) {
	if r.directory == nil {
		return nil, nil
	}

	for _, entityID := range candidates {
		provider, err := r.directory.LookupByEntityID(ctx, entityID)
		if err != nil {
			if !errors.Is(err, domain.ErrProviderNotFound) {
				r.logger.Warn("provider directory lookup failed",
					zap.String("entity_id", entityID),
					zap.Error(err))
			}
			continue
		}

		siblings := r.listSiblings(ctx, provider)
		return provider, siblings
	}

	r.logger.Debug("no candidate authenticating authority resolved",
		zap.Strings("candidates", candidates))
	return nil, nil
}

func (r *Resolver) listSiblings(ctx context.Context, provider *domain.Provider) []domain.Provider {
	if provider.InstitutionID == "" {
		return []domain.Provider{*provider}
	}
	siblings, err := r.directory.ListByInstitutionID(ctx, provider.InstitutionID)
	if err != nil {
		r.logger.Warn("sibling provider lookup failed",
			zap.String("institution_id", provider.InstitutionID),
			zap.Error(err))
		return []domain.Provider{*provider}
	}
	if len(siblings) == 0 {
		return []domain.Provider{*provider}
	}
	return siblings
}

// lookupRoles queries the role registry, degrading every failure to an
// absent result.
func (r *Resolver) lookupRoles(ctx context.Context, uid string) *domain.RegistryRoles {
	if r.registry == nil {
		return nil
	}

	roles, err := r.registry.RolesBySubject(ctx, uid)
	if err != nil {
		if !errors.Is(err, domain.ErrRolesNotFound) {
			r.logger.Warn("role registry lookup failed",
				zap.String("uid", uid),
				zap.Error(err))
		}
		return nil
	}
	return roles
}

func (r *Resolver) recordResolution(idpEntityID string, success bool) {
	if r.metrics != nil {
		r.metrics.RecordResolution(idpEntityID, success)
	}
}
