package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ParseExecutablePath validates a game executable path and returns the cleaned path if valid.
// It returns an error if:
//   - The path is empty
//   - The path is not absolute
//   - The path contains parent directory traversal (..)
//   - The file does not exist
//   - The path points to a directory instead of a file
func ParseExecutablePath(fs afero.Fs, path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("executable path cannot be empty")
	}

	if !filepath.IsAbs(path) {
		return "", errors.New("executable path must be absolute")
	}

	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == ".." {
			return "", errors.New("executable path contains invalid traversal")
		}
	}

	info, err := fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.New("executable does not exist")
		}
		return "", err
	}

	if info.IsDir() {
		return "", errors.New("executable path is a directory, not a file")
	}

	return filepath.Clean(path), nil
}
