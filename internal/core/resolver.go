package core

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/DonovanMods/bundle-mod-manager/internal/linker"
	"github.com/DonovanMods/bundle-mod-manager/internal/logger"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// errFound stops the walk at the first match
var errFound = errors.New("found")

// Resolver locates a mod's target file inside the game data tree
type Resolver struct {
	fs  afero.Fs
	log *zap.Logger
}

// NewResolver creates a resolver over fs
func NewResolver(fs afero.Fs, log *zap.Logger) *Resolver {
	return &Resolver{fs: fs, log: logger.OrNop(log)}
}

// Resolve walks dataRoot depth-first and returns the first file whose name
// matches fileName case-insensitively. Unreadable directories are skipped.
// A missing root or no match returns false; it is never an error.
// A symlinked root is followed; matches are reported under dataRoot.
func (r *Resolver) Resolve(dataRoot, fileName string) (string, bool) {
	if dataRoot == "" || fileName == "" {
		return "", false
	}

	walkRoot, err := linker.EvalSymlinks(r.fs, dataRoot)
	if err != nil {
		r.log.Debug("data root not searchable", zap.String("root", dataRoot), zap.Error(err))
		return "", false
	}

	var match string
	err = afero.Walk(r.fs, walkRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == walkRoot && info == nil {
				return err
			}
			r.log.Debug("skipping unreadable path", zap.String("path", path), zap.Error(err))
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if strings.EqualFold(info.Name(), fileName) {
			match = underRoot(dataRoot, walkRoot, path)
			return errFound
		}
		return nil
	})

	switch {
	case errors.Is(err, errFound):
		return match, true
	case err != nil && !errors.Is(err, filepath.SkipDir):
		r.log.Debug("data root not searchable", zap.String("root", dataRoot), zap.Error(err))
	}
	return "", false
}

// underRoot maps path found below walkRoot back below root
func underRoot(root, walkRoot, path string) string {
	if root == walkRoot {
		return path
	}
	rel, err := filepath.Rel(walkRoot, path)
	if err != nil {
		return path
	}
	return filepath.Join(root, rel)
}
