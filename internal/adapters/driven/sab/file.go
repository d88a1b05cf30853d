package sab

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

// FileRoleRegistry loads subject roles from a local YAML file. Intended for
// development and for deployments without a SAB endpoint; call Refresh to
// pick up file changes.
type FileRoleRegistry struct {
	path   string
	logger *zap.Logger

	mu       sync.RWMutex
	subjects map[string]domain.RegistryRoles
}

// RolesFile represents the structure of the roles file.
type RolesFile struct {
	Subjects map[string]domain.RegistryRoles `yaml:"subjects"`
}

// NewFileRoleRegistry creates a file-backed role registry. The file is not
// read until Refresh is called.
func NewFileRoleRegistry(path string, logger *zap.Logger) *FileRoleRegistry {
	return &FileRoleRegistry{
		path:     path,
		logger:   logger,
		subjects: make(map[string]domain.RegistryRoles),
	}
}

// Refresh reloads subject roles from the file.
func (r *FileRoleRegistry) Refresh(ctx context.Context) error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return fmt.Errorf("read roles file: %w", err)
	}

	var file RolesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse roles file: %w", err)
	}
	if file.Subjects == nil {
		file.Subjects = make(map[string]domain.RegistryRoles)
	}

	r.mu.Lock()
	r.subjects = file.Subjects
	r.mu.Unlock()

	if r.logger != nil {
		r.logger.Info("role registry reloaded",
			zap.String("path", r.path),
			zap.Int("subjects", len(file.Subjects)))
	}
	return nil
}

// RolesBySubject returns the record for a subject.
func (r *FileRoleRegistry) RolesBySubject(ctx context.Context, uid string) (*domain.RegistryRoles, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	roles, ok := r.subjects[uid]
	if !ok {
		return nil, domain.ErrRolesNotFound
	}
	return &roles, nil
}

// Ensure FileRoleRegistry implements ports.RoleRegistry
var _ ports.RoleRegistry = (*FileRoleRegistry)(nil)
