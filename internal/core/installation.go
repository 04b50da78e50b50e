package core

import (
	"fmt"

	"github.com/DonovanMods/bundle-mod-manager/internal/domain"
	"github.com/DonovanMods/bundle-mod-manager/internal/storage/config"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// SetGamePath validates the executable, derives its data root and persists both
func (s *Service) SetGamePath(executablePath string) (*domain.Installation, error) {
	exe, err := config.ParseExecutablePath(s.fs, executablePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPath, err)
	}

	inst := domain.NewInstallation(exe)
	if err := s.store.SetSetting(domain.KeyGamePath, inst.ExecutablePath); err != nil {
		return nil, fmt.Errorf("saving game path: %w", err)
	}
	if err := s.store.SetSetting(domain.KeyGameBundlePath, inst.DataRoot); err != nil {
		return nil, fmt.Errorf("saving game data path: %w", err)
	}

	if ok, _ := afero.DirExists(s.fs, inst.DataRoot); !ok {
		s.log.Warn("game data directory does not exist", zap.String("path", inst.DataRoot))
	}
	s.log.Info("game path set", zap.String("executable", inst.ExecutablePath), zap.String("dataRoot", inst.DataRoot))
	return inst, nil
}

// ClearGamePath forgets the configured installation. Game files are not touched.
func (s *Service) ClearGamePath() error {
	for _, key := range []string{domain.KeyGamePath, domain.KeyGameBundlePath} {
		if err := s.store.DeleteSetting(key); err != nil {
			return fmt.Errorf("clearing game path: %w", err)
		}
	}
	s.log.Info("game path cleared")
	return nil
}

// ResolveInstallation returns the configured installation, or nil when none is set
func (s *Service) ResolveInstallation() (*domain.Installation, error) {
	var exe, dataRoot string
	ok, err := s.store.GetSetting(domain.KeyGamePath, &exe)
	if err != nil {
		return nil, fmt.Errorf("reading game path: %w", err)
	}
	if !ok || exe == "" {
		return nil, nil
	}

	if _, err := s.store.GetSetting(domain.KeyGameBundlePath, &dataRoot); err != nil {
		return nil, fmt.Errorf("reading game data path: %w", err)
	}
	if dataRoot == "" {
		dataRoot = domain.DataRootFor(exe)
	}
	return &domain.Installation{ExecutablePath: exe, DataRoot: dataRoot}, nil
}

// LaunchGame starts the game executable from its own directory without waiting for it
func (s *Service) LaunchGame() error {
	inst, err := s.ResolveInstallation()
	if err != nil {
		return err
	}
	if inst == nil {
		return domain.ErrNoInstallation
	}
	if err := s.launch(inst.ExecutablePath); err != nil {
		return fmt.Errorf("launching game: %w", err)
	}
	s.log.Info("launched game", zap.String("executable", inst.ExecutablePath))
	return nil
}

// ModStatus describes where a mod would be applied and the state of that target
type ModStatus struct {
	Mod    domain.ModEntry    `json:"mod"`
	Target string             `json:"target,omitempty"`
	Found  bool               `json:"found"`
	State  domain.TargetState `json:"state"`
}

// ModStatus resolves every mod's target without changing anything on disk
func (s *Service) ModStatus() ([]ModStatus, error) {
	inst, err := s.ResolveInstallation()
	if err != nil {
		return nil, err
	}
	if inst == nil {
		return nil, domain.ErrNoInstallation
	}

	mods, err := s.registry.List()
	if err != nil {
		return nil, err
	}

	out := make([]ModStatus, 0, len(mods))
	for i := range mods {
		kind := batchApply
		if !mods[i].Enabled {
			kind = batchUninstall
		}
		st := ModStatus{Mod: mods[i]}
		if target, ok := s.orch.resolveTarget(inst.DataRoot, &mods[i], kind); ok {
			st.Target = target
			st.Found = true
			state, err := DeriveState(s.fs, target)
			if err != nil {
				return nil, err
			}
			st.State = state
		}
		out = append(out, st)
	}
	return out, nil
}
