package linker

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/DonovanMods/bundle-mod-manager/internal/domain"

	"github.com/spf13/afero"
)

// SymlinkLinker deploys payloads as symbolic links into the mod library
type SymlinkLinker struct {
	fs afero.Fs
}

// NewSymlink creates a new symlink linker
func NewSymlink(fs afero.Fs) *SymlinkLinker {
	return &SymlinkLinker{fs: fs}
}

// Deploy creates a symlink at dst pointing to src
func (l *SymlinkLinker) Deploy(src, dst string) error {
	lfs, ok := l.fs.(afero.Linker)
	if !ok {
		return fmt.Errorf("%w: filesystem %s does not support symlinks", domain.ErrLinkFailed, l.fs.Name())
	}

	if err := l.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("creating destination dir: %w", err)
	}

	if err := l.fs.Remove(dst); err != nil && !isNotExist(err) {
		return fmt.Errorf("removing existing file: %w", err)
	}

	if err := lfs.SymlinkIfPossible(src, dst); err != nil {
		return fmt.Errorf("creating symlink: %w", err)
	}

	return nil
}

// Undeploy removes the symlink at dst. Regular files are left alone.
func (l *SymlinkLinker) Undeploy(dst string) error {
	deployed, err := l.IsDeployed(dst)
	if err != nil {
		return fmt.Errorf("checking file: %w", err)
	}
	if !deployed {
		if exists, _ := Exists(l.fs, dst); exists {
			return fmt.Errorf("not a symlink: %s", dst)
		}
		return nil
	}

	if err := l.fs.Remove(dst); err != nil {
		return fmt.Errorf("removing symlink: %w", err)
	}
	return nil
}

// IsDeployed checks if dst is a symlink
func (l *SymlinkLinker) IsDeployed(dst string) (bool, error) {
	ls, ok := l.fs.(afero.Lstater)
	if !ok {
		return false, nil
	}
	info, lstatCalled, err := ls.LstatIfPossible(dst)
	if err != nil {
		if isNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return lstatCalled && info.Mode()&os.ModeSymlink != 0, nil
}

// Method returns the link method
func (l *SymlinkLinker) Method() domain.LinkMethod {
	return domain.LinkSymlink
}
