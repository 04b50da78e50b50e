package core

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/DonovanMods/bundle-mod-manager/internal/domain"
	"github.com/DonovanMods/bundle-mod-manager/internal/logger"
	"github.com/DonovanMods/bundle-mod-manager/internal/storage/library"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ImportError records why one source file was not imported
type ImportError struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// ImportResult contains the outcome of importing a batch of files
type ImportResult struct {
	Mods   []domain.ModEntry `json:"mods"`   // Registry after the import
	Added  []domain.ModEntry `json:"added"`  // Entries created by this import
	Errors []ImportError     `json:"errors"` // Per-file failures; duplicates are not listed
}

// Importer copies user-supplied files into the library and registers them
type Importer struct {
	registry *Registry
	library  *library.Library
	log      *zap.Logger
	now      func() time.Time
}

// NewImporter creates a new Importer
func NewImporter(registry *Registry, lib *library.Library, log *zap.Logger) *Importer {
	return &Importer{
		registry: registry,
		library:  lib,
		log:      logger.OrNop(log),
		now:      time.Now,
	}
}

// Import copies each path into the library and registers it.
// A file whose name is already registered (or appeared earlier in the batch)
// is skipped silently. A missing or uncopyable source is recorded in Errors
// and the rest of the batch still proceeds. The registry is saved once.
func (i *Importer) Import(paths []string) (*ImportResult, error) {
	mods, err := i.registry.List()
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Added: []domain.ModEntry{}, Errors: []ImportError{}}

	for _, p := range paths {
		fileName := filepath.Base(p)

		// Check before copying so a duplicate never overwrites the registered payload
		if FindByFileName(mods, fileName) >= 0 {
			i.log.Info("skipping duplicate import", zap.String("file", fileName), zap.String("source", p))
			continue
		}

		storagePath, err := i.library.Import(p)
		if err != nil {
			i.log.Warn("import failed", zap.String("source", p), zap.Error(err))
			result.Errors = append(result.Errors, ImportError{Path: p, Error: err.Error()})
			continue
		}

		entry := domain.ModEntry{
			ID:          uuid.New().String(),
			FileName:    fileName,
			DisplayName: domain.DisplayNameFor(fileName),
			Enabled:     true,
			StoragePath: storagePath,
			ImportedAt:  i.now().UTC(),
		}
		mods = append(mods, entry)
		result.Added = append(result.Added, entry)
		i.log.Info("imported mod", zap.String("id", entry.ID), zap.String("file", fileName))
	}

	if len(result.Added) > 0 {
		if err := i.registry.Save(mods); err != nil {
			return nil, fmt.Errorf("registering imported mods: %w", err)
		}
	}

	result.Mods = mods
	return result, nil
}
