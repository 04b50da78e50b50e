package core

import (
	"fmt"

	"github.com/DonovanMods/bundle-mod-manager/internal/domain"
	"github.com/DonovanMods/bundle-mod-manager/internal/linker"
	"github.com/DonovanMods/bundle-mod-manager/internal/logger"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// DeriveState reads a target's state from file presence.
// A backup wins over the live file: once the original is captured the target is BackedUp.
func DeriveState(fs afero.Fs, target string) (domain.TargetState, error) {
	hasBackup, err := linker.Exists(fs, domain.BackupPath(target))
	if err != nil {
		return domain.StateMissing, fmt.Errorf("checking backup: %w", err)
	}
	if hasBackup {
		return domain.StateBackedUp, nil
	}

	hasTarget, err := linker.Exists(fs, target)
	if err != nil {
		return domain.StateMissing, fmt.Errorf("checking target: %w", err)
	}
	if hasTarget {
		return domain.StateNoBackup, nil
	}
	return domain.StateMissing, nil
}

// Swapper applies and reverts one mod against one resolved target
type Swapper struct {
	fs     afero.Fs
	linker linker.Linker
	log    *zap.Logger
}

// NewSwapper creates a swapper that places payloads with lnk
func NewSwapper(fs afero.Fs, lnk linker.Linker, log *zap.Logger) *Swapper {
	return &Swapper{fs: fs, linker: lnk, log: logger.OrNop(log)}
}

// Apply captures the original at <target>.bak (first apply only) and then
// places payload at target. A failed step is not rolled back.
func (s *Swapper) Apply(target, payload string) error {
	state, err := DeriveState(s.fs, target)
	if err != nil {
		return err
	}

	if state == domain.StateNoBackup {
		backup := domain.BackupPath(target)
		if err := s.fs.Rename(target, backup); err != nil {
			return fmt.Errorf("backing up original: %w", err)
		}
		s.log.Debug("captured original", zap.String("backup", backup))
	}

	if err := s.linker.Deploy(payload, target); err != nil {
		return fmt.Errorf("placing mod: %w", err)
	}
	s.log.Debug("placed mod", zap.String("target", target), zap.Stringer("method", s.linker.Method()))
	return nil
}

// Revert removes the applied file and renames <target>.bak back into place.
// With no backup there is nothing to restore and the target is left untouched;
// that is not an error.
func (s *Swapper) Revert(target string) (restored bool, err error) {
	backup := domain.BackupPath(target)
	hasBackup, err := linker.Exists(s.fs, backup)
	if err != nil {
		return false, fmt.Errorf("checking backup: %w", err)
	}
	if !hasBackup {
		return false, nil
	}

	exists, err := linker.Exists(s.fs, target)
	if err != nil {
		return false, fmt.Errorf("checking target: %w", err)
	}
	if exists {
		if err := s.removeApplied(target); err != nil {
			return false, fmt.Errorf("removing applied mod: %w", err)
		}
	}

	if err := s.fs.Rename(backup, target); err != nil {
		return false, fmt.Errorf("restoring original: %w", err)
	}
	s.log.Debug("restored original", zap.String("target", target))
	return true, nil
}

// removeApplied undeploys target through the linker. A file the current
// linker did not place (the link method changed since apply) is removed directly.
func (s *Swapper) removeApplied(target string) error {
	deployed, err := s.linker.IsDeployed(target)
	if err != nil {
		return err
	}
	if deployed {
		return s.linker.Undeploy(target)
	}
	return s.fs.Remove(target)
}
