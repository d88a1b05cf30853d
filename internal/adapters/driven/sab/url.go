package sab

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/teunfransen/OpenConext-dashboard/internal/core/domain"
	"github.com/teunfransen/OpenConext-dashboard/internal/core/ports"
)

// profilePath is the SAB REST endpoint for role profiles by subject id.
const profilePath = "/api/profile"

// URLRoleRegistry resolves subject roles against a remote SAB instance.
type URLRoleRegistry struct {
	baseURL           string
	httpClient        *http.Client
	basicAuthUser     string
	basicAuthPassword string
	logger            *zap.Logger
	metricsRecorder   ports.MetricsRecorder
}

// URLOption is a functional option for configuring the URL role registry.
type URLOption func(*URLRoleRegistry)

// WithHTTPClient sets the HTTP client used for registry calls.
func WithHTTPClient(client *http.Client) URLOption {
	return func(r *URLRoleRegistry) {
		r.httpClient = client
	}
}

// WithBasicAuth sets the basic-auth credentials sent on registry calls.
func WithBasicAuth(user, password string) URLOption {
	return func(r *URLRoleRegistry) {
		r.basicAuthUser = user
		r.basicAuthPassword = password
	}
}

// WithLogger sets the logger for the registry client.
func WithLogger(logger *zap.Logger) URLOption {
	return func(r *URLRoleRegistry) {
		r.logger = logger
	}
}

// WithMetricsRecorder sets the metrics recorder for the registry client.
func WithMetricsRecorder(recorder ports.MetricsRecorder) URLOption {
	return func(r *URLRoleRegistry) {
		r.metricsRecorder = recorder
	}
}

// NewURLRoleRegistry creates a registry client for the SAB REST API at
// baseURL.
func NewURLRoleRegistry(baseURL string, opts ...URLOption) *URLRoleRegistry {
	r := &URLRoleRegistry{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// profileResponse mirrors the relevant slice of a SAB profile response.
type profileResponse struct {
	Organisation struct {
		InstitutionID string `json:"schac_home"`
	} `json:"organisation"`
	Authorisations []struct {
		Role string `json:"role"`
	} `json:"authorisations"`
}

// RolesBySubject queries SAB for the institution and role entitlements of a
// subject.
func (r *URLRoleRegistry) RolesBySubject(ctx context.Context, uid string) (*domain.RegistryRoles, error) {
	endpoint := r.baseURL + profilePath + "?uid=" + url.QueryEscape(uid)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build sab request: %w", err)
	}
	if r.basicAuthUser != "" {
		req.SetBasicAuth(r.basicAuthUser, r.basicAuthPassword)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.recordLookup(false)
		return nil, fmt.Errorf("sab profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		r.recordLookup(false)
		return nil, domain.ErrRolesNotFound
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		r.recordLookup(false)
		return nil, fmt.Errorf("sab profile: unexpected status %d", resp.StatusCode)
	}

	var profile profileResponse
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		r.recordLookup(false)
		return nil, fmt.Errorf("decode sab response: %w", err)
	}

	roles := &domain.RegistryRoles{
		InstitutionID: profile.Organisation.InstitutionID,
	}
	for _, a := range profile.Authorisations {
		if a.Role != "" {
			roles.Entitlements = append(roles.Entitlements, a.Role)
		}
	}

	r.recordLookup(true)
	if r.logger != nil {
		r.logger.Debug("sab profile resolved",
			zap.String("uid", uid),
			zap.String("institution_id", roles.InstitutionID),
			zap.Int("entitlements", len(roles.Entitlements)))
	}
	return roles, nil
}

func (r *URLRoleRegistry) recordLookup(found bool) {
	if r.metricsRecorder != nil {
		r.metricsRecorder.RecordRegistryLookup("sab", found)
	}
}

// Ensure URLRoleRegistry implements ports.RoleRegistry
var _ ports.RoleRegistry = (*URLRoleRegistry)(nil)
