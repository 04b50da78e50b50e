// Package library manages the directory of imported mod payload copies.
package library

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/DonovanMods/bundle-mod-manager/internal/domain"
	"github.com/DonovanMods/bundle-mod-manager/internal/linker"

	"github.com/spf13/afero"
)

// Library owns the mod library directory. One payload file per registry entry,
// named identically to the entry's file name.
type Library struct {
	fs      afero.Fs
	baseDir string
}

// New creates a library rooted at baseDir
func New(fs afero.Fs, baseDir string) *Library {
	return &Library{fs: fs, baseDir: filepath.Clean(baseDir)}
}

// Dir returns the library directory
func (l *Library) Dir() string {
	return l.baseDir
}

// Path returns where a payload with the given file name is stored.
// Names that are empty, relative references or contain separators are rejected.
func (l *Library) Path(fileName string) (string, error) {
	if fileName == "" || fileName == "." || fileName == ".." ||
		strings.ContainsAny(fileName, `/\`) || filepath.Base(fileName) != fileName {
		return "", fmt.Errorf("%w: payload name %q", domain.ErrInvalidPath, fileName)
	}
	return filepath.Join(l.baseDir, fileName), nil
}

// Contains reports whether path lies directly inside the library directory
func (l *Library) Contains(path string) bool {
	return filepath.Dir(filepath.Clean(path)) == l.baseDir
}

// Exists checks if a payload is stored
func (l *Library) Exists(fileName string) bool {
	p, err := l.Path(fileName)
	if err != nil {
		return false
	}
	info, err := l.fs.Stat(p)
	return err == nil && !info.IsDir()
}

// Import copies srcPath into the library and returns the stored path.
// A missing source yields domain.ErrImportSourceMissing.
func (l *Library) Import(srcPath string) (string, error) {
	info, err := l.fs.Stat(srcPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", domain.ErrImportSourceMissing, srcPath)
		}
		return "", fmt.Errorf("checking source: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", domain.ErrInvalidPath, srcPath)
	}

	dst, err := l.Path(filepath.Base(srcPath))
	if err != nil {
		return "", err
	}

	if err := l.fs.MkdirAll(l.baseDir, 0755); err != nil {
		return "", fmt.Errorf("creating library dir: %w", err)
	}

	if err := linker.CopyFile(l.fs, srcPath, dst); err != nil {
		return "", fmt.Errorf("copying to library: %w", err)
	}

	return dst, nil
}

// Remove deletes a stored payload. Removing a payload that is already gone is not an error.
func (l *Library) Remove(fileName string) error {
	p, err := l.Path(fileName)
	if err != nil {
		return err
	}
	if err := l.fs.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing payload: %w", err)
	}
	return nil
}

// List returns the stored payload file names, sorted
func (l *Library) List() ([]string, error) {
	entries, err := afero.ReadDir(l.fs, l.baseDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing library: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)
	return files, nil
}

// Size returns the total size of stored payloads in bytes
func (l *Library) Size() (int64, error) {
	entries, err := afero.ReadDir(l.fs, l.baseDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("calculating library size: %w", err)
	}

	var total int64
	for _, e := range entries {
		if !e.IsDir() {
			total += e.Size()
		}
	}
	return total, nil
}
