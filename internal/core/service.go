package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/DonovanMods/bundle-mod-manager/internal/discovery"
	"github.com/DonovanMods/bundle-mod-manager/internal/domain"
	"github.com/DonovanMods/bundle-mod-manager/internal/linker"
	"github.com/DonovanMods/bundle-mod-manager/internal/logger"
	"github.com/DonovanMods/bundle-mod-manager/internal/storage/config"
	"github.com/DonovanMods/bundle-mod-manager/internal/storage/db"
	"github.com/DonovanMods/bundle-mod-manager/internal/storage/library"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// ServiceConfig holds configuration for the core service
type ServiceConfig struct {
	ConfigDir string      // Directory for configuration files
	DataDir   string      // Directory for database, library and log
	Logger    *zap.Logger // Optional
}

// Deps are the collaborators of a Service. Tests supply in-memory versions.
type Deps struct {
	Fs        afero.Fs
	Store     SettingsStore
	Config    *config.Config
	ConfigDir string
	DataDir   string
	Logger    *zap.Logger
	Launch    func(executablePath string) error // Optional; defaults to starting the process detached
	Closer    func() error                      // Optional; called by Close
}

// Service is the entry point for mod management operations
type Service struct {
	fs       afero.Fs
	store    SettingsStore
	config   *config.Config
	library  *library.Library
	registry *Registry
	importer *Importer
	orch     *Orchestrator
	log      *zap.Logger
	launch   func(string) error
	closer   func() error

	configDir string
	dataDir   string
}

// NewService opens the database and wires a Service over the real filesystem
func NewService(cfg ServiceConfig) (*Service, error) {
	appConfig, err := config.Load(cfg.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	database, err := db.New(filepath.Join(cfg.DataDir, "bmm.db"))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return New(Deps{
		Fs:        afero.NewOsFs(),
		Store:     database,
		Config:    appConfig,
		ConfigDir: cfg.ConfigDir,
		DataDir:   cfg.DataDir,
		Logger:    cfg.Logger,
		Closer:    database.Close,
	}), nil
}

// New wires a Service from explicit dependencies
func New(d Deps) *Service {
	log := logger.OrNop(d.Logger)
	cfg := d.Config
	if cfg == nil {
		cfg = &config.Config{Keybindings: "vim", LogLevel: "info", ScanDepth: 4}
	}

	s := &Service{
		fs:        d.Fs,
		store:     d.Store,
		config:    cfg,
		log:       log,
		launch:    d.Launch,
		closer:    d.Closer,
		configDir: d.ConfigDir,
		dataDir:   d.DataDir,
	}
	if s.launch == nil {
		s.launch = startDetached
	}

	s.library = library.New(d.Fs, cfg.ResolveLibraryDir(d.DataDir))
	s.registry = NewRegistry(d.Store)
	s.importer = NewImporter(s.registry, s.library, log.Named("import"))
	s.orch = NewOrchestrator(
		d.Fs,
		s.registry,
		s,
		NewResolver(d.Fs, log.Named("resolve")),
		NewSwapper(d.Fs, linker.New(d.Fs, cfg.LinkMethod), log.Named("swap")),
		log.Named("batch"),
	)
	return s
}

// Close releases resources held by the service
func (s *Service) Close() error {
	if s.closer != nil {
		return s.closer()
	}
	return nil
}

// Config returns the loaded application config
func (s *Service) Config() *config.Config {
	return s.config
}

// ConfigDir returns the configuration directory
func (s *Service) ConfigDir() string {
	return s.configDir
}

// DataDir returns the data directory
func (s *Service) DataDir() string {
	return s.dataDir
}

// Library returns the mod library store
func (s *Service) Library() *library.Library {
	return s.library
}

// ImportMods copies files into the library and registers them
func (s *Service) ImportMods(paths []string) (*ImportResult, error) {
	return s.importer.Import(paths)
}

// ListMods returns all registered mods in registry order
func (s *Service) ListMods() ([]domain.ModEntry, error) {
	return s.registry.List()
}

// UpdateMod merges upd into the mod with the given id and returns the updated list
func (s *Service) UpdateMod(id string, upd domain.ModUpdate) ([]domain.ModEntry, error) {
	if upd.DisplayName != nil {
		name := strings.TrimSpace(*upd.DisplayName)
		upd.DisplayName = &name
	}
	mods, err := s.registry.Update(id, upd)
	if err != nil {
		return nil, err
	}
	s.log.Info("updated mod", zap.String("id", id))
	return mods, nil
}

// DeleteMod removes a mod from the registry and deletes its payload.
// Payload deletion is best-effort: a failure is logged and does not undo the removal.
// Game files are not touched; a mod deleted while applied leaves its payload in the
// game and the original at <target>.bak.
func (s *Service) DeleteMod(id string) ([]domain.ModEntry, error) {
	removed, mods, err := s.registry.Delete(id)
	if err != nil {
		return nil, err
	}

	switch {
	case !s.library.Contains(removed.StoragePath):
		s.log.Warn("payload outside library, not deleted", zap.String("path", removed.StoragePath))
	default:
		if err := s.library.Remove(filepath.Base(removed.StoragePath)); err != nil {
			s.log.Warn("deleting payload", zap.String("path", removed.StoragePath), zap.Error(err))
		}
	}

	if backup, ok := s.AppliedBackup(&removed); ok {
		s.log.Warn("deleted mod is still applied, original left at backup",
			zap.String("file", removed.FileName), zap.String("backup", backup))
	}

	s.log.Info("deleted mod", zap.String("id", id), zap.String("file", removed.FileName))
	return mods, nil
}

// AppliedBackup returns the backup beside the mod's recorded target when one exists,
// meaning the game still holds the mod's payload in place of the original.
func (s *Service) AppliedBackup(mod *domain.ModEntry) (string, bool) {
	if mod.TargetPath == "" {
		return "", false
	}
	backup := domain.BackupPath(mod.TargetPath)
	ok, err := linker.Exists(s.fs, backup)
	if err != nil || !ok {
		return "", false
	}
	return backup, true
}

// FindMod looks a mod up by id, unique id prefix, file name or display name.
// Name matching is case-insensitive.
func (s *Service) FindMod(ref string) (*domain.ModEntry, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("%w: empty reference", domain.ErrModNotFound)
	}

	mod, err := s.registry.Get(ref)
	if err == nil {
		return mod, nil
	}
	if !errors.Is(err, domain.ErrModNotFound) {
		return nil, err
	}

	mods, err := s.registry.List()
	if err != nil {
		return nil, err
	}
	if i := FindByFileName(mods, ref); i >= 0 {
		return &mods[i], nil
	}

	var matches []int
	for i := range mods {
		if strings.HasPrefix(mods[i].ID, ref) || strings.EqualFold(mods[i].DisplayName, ref) {
			matches = append(matches, i)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", domain.ErrModNotFound, ref)
	case 1:
		return &mods[matches[0]], nil
	default:
		return nil, fmt.Errorf("%q matches %d mods, use the mod id", ref, len(matches))
	}
}

// ApplyEnabledMods applies every enabled mod to the configured installation
func (s *Service) ApplyEnabledMods(status domain.StatusFunc) *domain.BatchResult {
	return s.orch.ApplyEnabledMods(status)
}

// UninstallDisabledMods reverts every disabled mod
func (s *Service) UninstallDisabledMods(status domain.StatusFunc) *domain.BatchResult {
	return s.orch.UninstallDisabledMods(status)
}

// DetectGame searches Steam libraries and the configured scan roots for the game executable
func (s *Service) DetectGame(ctx context.Context) ([]discovery.Candidate, error) {
	home, _ := os.UserHomeDir()
	opts := discovery.Options{
		ExecutableName: s.config.Game.ExecutableName,
		SteamAppID:     s.config.Game.SteamAppID,
		SteamRoots:     discovery.SteamRoots(s.fs, home, os.Getenv("STEAM_ROOT")),
		ScanRoots:      s.config.ResolveScanRoots(),
		ScanDepth:      s.config.ScanDepth,
	}
	return discovery.Detect(ctx, s.fs, opts, s.log.Named("discovery"))
}

func startDetached(executablePath string) error {
	cmd := exec.Command(executablePath)
	cmd.Dir = filepath.Dir(executablePath)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
