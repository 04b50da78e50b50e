// Package linker places mod payloads at their targets inside the game tree.
package linker

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/DonovanMods/bundle-mod-manager/internal/domain"

	"github.com/spf13/afero"
)

// Linker places and removes payload files at target paths
type Linker interface {
	Deploy(src, dst string) error
	Undeploy(dst string) error
	IsDeployed(dst string) (bool, error)
	Method() domain.LinkMethod
}

// New creates a linker for the given method operating on fs
func New(fs afero.Fs, method domain.LinkMethod) Linker {
	switch method {
	case domain.LinkSymlink:
		return NewSymlink(fs)
	default:
		return NewCopy(fs)
	}
}

// Exists reports whether path exists without following a trailing symlink
func Exists(fs afero.Fs, path string) (bool, error) {
	var err error
	if ls, ok := fs.(afero.Lstater); ok {
		_, _, err = ls.LstatIfPossible(path)
	} else {
		_, err = fs.Stat(path)
	}
	if err != nil {
		if isNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// maxLinkHops bounds symlink chains followed by EvalSymlinks
const maxLinkHops = 40

// EvalSymlinks follows symlinks at the final component of path and returns the
// path they lead to. Filesystems without symlink support return path unchanged.
// A missing path is returned as is; callers see the error when they open it.
func EvalSymlinks(fs afero.Fs, path string) (string, error) {
	ls, ok := fs.(afero.Lstater)
	if !ok {
		return path, nil
	}
	lr, ok := fs.(afero.LinkReader)
	if !ok {
		return path, nil
	}

	for range maxLinkHops {
		info, lstatCalled, err := ls.LstatIfPossible(path)
		if err != nil {
			if isNotExist(err) {
				return path, nil
			}
			return "", err
		}
		if !lstatCalled || info.Mode()&os.ModeSymlink == 0 {
			return path, nil
		}

		dest, err := lr.ReadlinkIfPossible(path)
		if err != nil {
			return "", fmt.Errorf("reading link: %w", err)
		}
		if !filepath.IsAbs(dest) {
			dest = filepath.Join(filepath.Dir(path), dest)
		}
		path = filepath.Clean(dest)
	}
	return "", fmt.Errorf("%w: too many levels of symbolic links: %s", domain.ErrLinkFailed, path)
}
