package manage

import (
	"context"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/teunfransen/OpenConext-dashboard/internal/core/domain"
	"github.com/teunfransen/OpenConext-dashboard/internal/core/ports"
)

// FileProviderDirectory loads provider records from a local YAML file.
// Intended for development and air-gapped deployments; call Refresh to pick
// up file changes.
type FileProviderDirectory struct {
	path   string
	logger *zap.Logger

	mu        sync.RWMutex
	providers []domain.Provider
}

// ProvidersFile represents the structure of the providers file.
type ProvidersFile struct {
	Providers []domain.Provider `yaml:"providers"`
}

// NewFileProviderDirectory creates a file-backed directory. The file is not
// read until Refresh is called.
func NewFileProviderDirectory(path string, logger *zap.Logger) *FileProviderDirectory {
	return &FileProviderDirectory{path: path, logger: logger}
}

// Refresh reloads providers from the file.
func (d *FileProviderDirectory) Refresh(ctx context.Context) error {
	data, err := os.ReadFile(d.path)
	if err != nil {
		return fmt.Errorf("read providers file: %w", err)
	}

	var file ProvidersFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse providers file: %w", err)
	}

	for _, p := range file.Providers {
		if p.EntityID == "" {
			return fmt.Errorf("provider without entity_id in %s", d.path)
		}
	}

	d.mu.Lock()
	d.providers = file.Providers
	d.mu.Unlock()

	if d.logger != nil {
		d.logger.Info("provider directory reloaded",
			zap.String("path", d.path),
			zap.Int("providers", len(file.Providers)))
	}
	return nil
}

// LookupByEntityID returns the provider with the given entity id.
func (d *FileProviderDirectory) LookupByEntityID(ctx context.Context, entityID string) (*domain.Provider, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for i := range d.providers {
		if d.providers[i].EntityID == entityID {
			p := d.providers[i]
			return &p, nil
		}
	}
	return nil, domain.ErrProviderNotFound
}

// ListByInstitutionID returns all providers of the given institution.
func (d *FileProviderDirectory) ListByInstitutionID(ctx context.Context, institutionID string) ([]domain.Provider, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var result []domain.Provider
	if institutionID == "" {
		return result, nil
	}
	for _, p := range d.providers {
		if p.InstitutionID == institutionID {
			result = append(result, p)
		}
	}
	return result, nil
}

// Ensure FileProviderDirectory implements ports.ProviderDirectory
var _ ports.ProviderDirectory = (*FileProviderDirectory)(nil)
