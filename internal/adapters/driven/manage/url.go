package manage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/teunfransen/OpenConext-dashboard/internal/core/domain"
	"github.com/teunfransen/OpenConext-dashboard/internal/core/ports"
)

// searchPath is the Manage internal search endpoint for identity providers.
const searchPath = "/manage/api/internal/search/saml20_idp"

// URLProviderDirectory resolves providers against a remote Manage instance
// with short-lived response caching.
type URLProviderDirectory struct {
	baseURL           string
	httpClient        *http.Client
	basicAuthUser     string
	basicAuthPassword string
	cacheTTL          time.Duration
	logger            *zap.Logger
	metricsRecorder   ports.MetricsRecorder
	clock             Clock

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	providers []domain.Provider
	fetchedAt time.Time
}

// NewURLProviderDirectory creates a directory backed by the Manage search
// API at baseURL.
func NewURLProviderDirectory(baseURL string, opts ...Option) *URLProviderDirectory {
	o := applyOptions(opts)
	return &URLProviderDirectory{
		baseURL:           baseURL,
		httpClient:        o.httpClient,
		basicAuthUser:     o.basicAuthUser,
		basicAuthPassword: o.basicAuthPassword,
		cacheTTL:          o.cacheTTL,
		logger:            o.logger,
		metricsRecorder:   o.metricsRecorder,
		clock:             o.clock,
		cache:             make(map[string]cacheEntry),
	}
}

// manageEntity mirrors the relevant slice of a Manage search result item.
type manageEntity struct {
	Data struct {
		EntityID       string `json:"entityid"`
		State          string `json:"state"`
		MetaDataFields struct {
			InstitutionID string `json:"coin:institution_id"`
			NameEN        string `json:"name:en"`
		} `json:"metaDataFields"`
	} `json:"data"`
}

func (e manageEntity) toProvider() domain.Provider {
	return domain.Provider{
		EntityID:      e.Data.EntityID,
		InstitutionID: e.Data.MetaDataFields.InstitutionID,
		Name:          e.Data.MetaDataFields.NameEN,
		State:         domain.ProviderState(e.Data.State),
	}
}

// LookupByEntityID queries Manage for the provider registered under the
// given entity id.
func (d *URLProviderDirectory) LookupByEntityID(ctx context.Context, entityID string) (*domain.Provider, error) {
	providers, err := d.search(ctx, map[string]any{
		"entityid":       entityID,
		"ALL_ATTRIBUTES": true,
	})
	if err != nil {
		d.recordLookup(false)
		return nil, err
	}
	if len(providers) == 0 {
		d.recordLookup(false)
		return nil, domain.ErrProviderNotFound
	}
	d.recordLookup(true)
	p := providers[0]
	return &p, nil
}

// ListByInstitutionID queries Manage for all providers carrying the given
// institution id.
func (d *URLProviderDirectory) ListByInstitutionID(ctx context.Context, institutionID string) ([]domain.Provider, error) {
	if institutionID == "" {
		return nil, nil
	}
	return d.search(ctx, map[string]any{
		"metaDataFields.coin:institution_id": institutionID,
		"ALL_ATTRIBUTES":                     true,
	})
}

func (d *URLProviderDirectory) search(ctx context.Context, query map[string]any) ([]domain.Provider, error) {
	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("encode manage query: %w", err)
	}
	key := string(body)

	if cached, ok := d.fromCache(key); ok {
		return cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+searchPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build manage request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if d.basicAuthUser != "" {
		req.SetBasicAuth(d.basicAuthUser, d.basicAuthPassword)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("manage search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("manage search: unexpected status %d", resp.StatusCode)
	}

	var entities []manageEntity
	if err := json.NewDecoder(resp.Body).Decode(&entities); err != nil {
		return nil, fmt.Errorf("decode manage response: %w", err)
	}

	providers := make([]domain.Provider, 0, len(entities))
	for _, e := range entities {
		providers = append(providers, e.toProvider())
	}

	d.store(key, providers)
	if d.logger != nil {
		d.logger.Debug("manage search completed",
			zap.String("query", key),
			zap.Int("providers", len(providers)))
	}
	return providers, nil
}

func (d *URLProviderDirectory) fromCache(key string) ([]domain.Provider, bool) {
	if d.cacheTTL <= 0 {
		return nil, false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	entry, ok := d.cache[key]
	if !ok || d.clock.Now().Sub(entry.fetchedAt) > d.cacheTTL {
		return nil, false
	}
	return entry.providers, true
}

func (d *URLProviderDirectory) store(key string, providers []domain.Provider) {
	if d.cacheTTL <= 0 {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cache[key] = cacheEntry{providers: providers, fetchedAt: d.clock.Now()}
}

func (d *URLProviderDirectory) recordLookup(found bool) {
	if d.metricsRecorder != nil {
		d.metricsRecorder.RecordRegistryLookup("manage", found)
	}
}

// Ensure URLProviderDirectory implements ports.ProviderDirectory
var _ ports.ProviderDirectory = (*URLProviderDirectory)(nil)
