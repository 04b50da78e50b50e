package core

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/DonovanMods/bundle-mod-manager/internal/domain"
	"github.com/DonovanMods/bundle-mod-manager/internal/logger"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// InstallationSource supplies the configured game installation, or nil when none is set
type InstallationSource interface {
	ResolveInstallation() (*domain.Installation, error)
}

// Orchestrator runs apply and uninstall batches over the registry.
// Mods are processed strictly one after another in registry order.
type Orchestrator struct {
	fs       afero.Fs
	registry *Registry
	install  InstallationSource
	resolver *Resolver
	swapper  *Swapper
	log      *zap.Logger

	mu sync.Mutex // held for the duration of a batch
}

// NewOrchestrator creates an orchestrator
func NewOrchestrator(fs afero.Fs, registry *Registry, install InstallationSource, resolver *Resolver, swapper *Swapper, log *zap.Logger) *Orchestrator {
	return &Orchestrator{
		fs:       fs,
		registry: registry,
		install:  install,
		resolver: resolver,
		swapper:  swapper,
		log:      logger.OrNop(log),
	}
}

type batchKind int

const (
	batchApply batchKind = iota
	batchUninstall
)

// ApplyEnabledMods applies every enabled mod. A target that cannot be found is
// logged and skipped; a filesystem failure aborts the rest of the batch.
// The caller is expected to have obtained user confirmation.
func (o *Orchestrator) ApplyEnabledMods(status domain.StatusFunc) *domain.BatchResult {
	return o.run(batchApply, status)
}

// UninstallDisabledMods reverts every disabled mod with the same skip/abort policy
func (o *Orchestrator) UninstallDisabledMods(status domain.StatusFunc) *domain.BatchResult {
	return o.run(batchUninstall, status)
}

func (o *Orchestrator) run(kind batchKind, status domain.StatusFunc) *domain.BatchResult {
	if !o.mu.TryLock() {
		return failure(domain.CodeBusy, domain.ErrBusy.Error())
	}
	defer o.mu.Unlock()

	inst, err := o.install.ResolveInstallation()
	if err != nil {
		if errors.Is(err, domain.ErrNoInstallation) {
			return failure(domain.CodeNoInstallation, domain.ErrNoInstallation.Error())
		}
		return failure(domain.CodeRegistryError, fmt.Sprintf("reading installation: %v", err))
	}
	if inst == nil || inst.DataRoot == "" {
		return failure(domain.CodeNoInstallation, domain.ErrNoInstallation.Error())
	}

	mods, err := o.registry.List()
	if err != nil {
		return failure(domain.CodeRegistryError, err.Error())
	}

	wantEnabled := kind == batchApply
	var batch []int
	for i := range mods {
		if mods[i].Enabled == wantEnabled {
			batch = append(batch, i)
		}
	}

	result := &domain.BatchResult{Log: []domain.LogEntry{}}
	if len(batch) == 0 {
		result.Success = true
		result.Code = domain.CodeNothingToDo
		if wantEnabled {
			result.Message = "no enabled mods to apply"
		} else {
			result.Message = "no disabled mods to uninstall"
		}
		return result
	}

	log := o.log.With(zap.String("batch", kind.String()), zap.String("dataRoot", inst.DataRoot))
	log.Info("batch started", zap.Int("mods", len(batch)))
	status.Emit(domain.StatusEvent{Key: domain.StatusStart, Total: len(batch)})

	recorded := make(map[string]string)
	aborted := false
	for n, idx := range batch {
		mod := &mods[idx]
		ev := domain.StatusEvent{Mod: mod.FileName, Index: n + 1, Total: len(batch)}

		ev.Key = domain.StatusResolving
		status.Emit(ev)
		target, found := o.resolveTarget(inst.DataRoot, mod, kind)

		entry := domain.LogEntry{
			ModID:       mod.ID,
			FileName:    mod.FileName,
			DisplayName: mod.DisplayName,
			Target:      target,
		}

		if !found {
			entry.Outcome = domain.OutcomeNotFound
			result.Log = append(result.Log, entry)
			ev.Key = domain.StatusNotFound
			status.Emit(ev)
			log.Info("target not found", zap.String("mod", mod.FileName))
			continue
		}

		var opErr error
		if kind == batchApply {
			ev.Key = domain.StatusApplying
			status.Emit(ev)
			opErr = o.swapper.Apply(target, mod.StoragePath)
			if opErr == nil {
				entry.Outcome = domain.OutcomeApplied
				if mod.TargetPath != target {
					mod.TargetPath = target
					recorded[mod.ID] = target
				}
			}
		} else {
			ev.Key = domain.StatusReverting
			status.Emit(ev)
			var restored bool
			restored, opErr = o.swapper.Revert(target)
			if opErr == nil {
				entry.Outcome = domain.OutcomeNoBackup
				if restored {
					entry.Outcome = domain.OutcomeReverted
				}
			}
		}

		if opErr != nil {
			entry.Outcome = domain.OutcomeFailed
			entry.Error = opErr.Error()
			result.Log = append(result.Log, entry)
			ev.Key = domain.StatusFailed
			status.Emit(ev)
			log.Error("aborting batch", zap.String("mod", mod.FileName), zap.String("target", target), zap.Error(opErr))
			aborted = true
			break
		}

		result.Log = append(result.Log, entry)
		log.Info(string(entry.Outcome), zap.String("mod", mod.FileName), zap.String("target", target))
	}

	if len(recorded) > 0 {
		if err := o.registry.RecordTargets(recorded); err != nil {
			log.Error("saving recorded targets", zap.Error(err))
			if !aborted {
				result.Code = domain.CodeRegistryError
				result.Message = fmt.Sprintf("mods were processed but the registry could not be saved: %v", err)
				status.Emit(domain.StatusEvent{Key: domain.StatusDone, Total: len(batch)})
				return result
			}
		}
	}

	result.Success = !aborted
	result.Code, result.Message = summarize(kind, result)
	status.Emit(domain.StatusEvent{Key: domain.StatusDone, Total: len(batch)})
	log.Info("batch finished", zap.Bool("success", result.Success), zap.String("summary", result.Message))
	return result
}

// resolveTarget prefers the target recorded at first apply, then searches by
// name. Uninstall also looks for an orphaned backup so it can still be restored.
func (o *Orchestrator) resolveTarget(dataRoot string, mod *domain.ModEntry, kind batchKind) (string, bool) {
	if mod.TargetPath != "" && within(dataRoot, mod.TargetPath) {
		if state, err := DeriveState(o.fs, mod.TargetPath); err == nil && state != domain.StateMissing {
			return mod.TargetPath, true
		}
	}

	if target, ok := o.resolver.Resolve(dataRoot, mod.FileName); ok {
		return target, true
	}

	if kind == batchUninstall {
		if backup, ok := o.resolver.Resolve(dataRoot, domain.BackupPath(mod.FileName)); ok {
			return strings.TrimSuffix(backup, filepath.Ext(backup)), true
		}
	}
	return "", false
}

// within reports whether path lies under root
func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func summarize(kind batchKind, r *domain.BatchResult) (string, string) {
	notFound := r.Count(domain.OutcomeNotFound)
	if kind == batchApply {
		applied := r.Count(domain.OutcomeApplied)
		if !r.Success {
			return domain.CodeApplyFailed, fmt.Sprintf("apply aborted after %d applied: %s", applied, lastError(r))
		}
		return domain.CodeApplied, fmt.Sprintf("applied %s, %d not found", plural(applied, "mod"), notFound)
	}

	reverted := r.Count(domain.OutcomeReverted)
	untouched := r.Count(domain.OutcomeNoBackup)
	if !r.Success {
		return domain.CodeUninstallFail, fmt.Sprintf("uninstall aborted after %d restored: %s", reverted, lastError(r))
	}
	return domain.CodeUninstalled, fmt.Sprintf("restored %s, %d without backup, %d not found", plural(reverted, "original"), untouched, notFound)
}

func lastError(r *domain.BatchResult) string {
	for i := len(r.Log) - 1; i >= 0; i-- {
		if r.Log[i].Outcome == domain.OutcomeFailed {
			return r.Log[i].String()
		}
	}
	return "unknown error"
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func (k batchKind) String() string {
	if k == batchUninstall {
		return "uninstall"
	}
	return "apply"
}

func failure(code, message string) *domain.BatchResult {
	return &domain.BatchResult{Success: false, Code: code, Message: message, Log: []domain.LogEntry{}}
}
