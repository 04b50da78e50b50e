package discovery

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/DonovanMods/bundle-mod-manager/internal/domain"
	"github.com/DonovanMods/bundle-mod-manager/internal/logger"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Candidate sources
const (
	SourceSteam = "steam"
	SourceScan  = "scan"
)

// steamInstallDepth bounds the search for the executable inside a Steam install dir
const steamInstallDepth = 2

// Options configures Detect
type Options struct {
	ExecutableName string   // File name of the game binary, e.g. "Game.exe"
	SteamAppID     string   // Empty skips the Steam lookup
	SteamRoots     []string // Steam installation roots to consult
	ScanRoots      []string // Directories walked when Steam has no match
	ScanDepth      int      // Maximum directory depth below each scan root
}

// Candidate is a located game executable
type Candidate struct {
	ExecutablePath string `json:"executablePath"`
	DataRoot       string `json:"dataRoot"`
	Source         string `json:"source"`
}

// Detect looks up the game in Steam libraries first, then scans ScanRoots.
// Candidates are returned in discovery order without duplicates.
func Detect(ctx context.Context, fsys afero.Fs, opts Options, log *zap.Logger) ([]Candidate, error) {
	log = logger.OrNop(log)
	if opts.ExecutableName == "" {
		return nil, fmt.Errorf("%w: game executable name is not set", domain.ErrInvalidConfig)
	}

	var out []Candidate
	seen := make(map[string]bool)
	add := func(path, source string) {
		path = filepath.Clean(path)
		if seen[path] {
			return
		}
		seen[path] = true
		out = append(out, Candidate{
			ExecutablePath: path,
			DataRoot:       domain.DataRootFor(path),
			Source:         source,
		})
	}

	if opts.SteamAppID != "" {
		for _, root := range opts.SteamRoots {
			libraries, err := SteamLibraries(fsys, root)
			if err != nil {
				log.Debug("skipping steam root", zap.String("root", root), zap.Error(err))
				continue
			}
			for _, lib := range libraries {
				installPath, ok := FindSteamApp(fsys, lib, opts.SteamAppID)
				if !ok {
					continue
				}
				log.Debug("found steam install", zap.String("path", installPath))
				matches, err := Scan(ctx, fsys, []string{installPath}, opts.ExecutableName, steamInstallDepth)
				if err != nil {
					return out, err
				}
				for _, m := range matches {
					add(m, SourceSteam)
				}
			}
		}
	}

	if len(out) > 0 || len(opts.ScanRoots) == 0 {
		return out, nil
	}

	matches, err := Scan(ctx, fsys, opts.ScanRoots, opts.ExecutableName, opts.ScanDepth)
	for _, m := range matches {
		add(m, SourceScan)
	}
	if err != nil {
		return out, err
	}
	log.Debug("scan finished", zap.Int("candidates", len(out)))
	return out, nil
}
