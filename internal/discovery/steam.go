// Package discovery locates a game executable on disk, from Steam libraries
// or by a depth-bounded scan of configured directories.
package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

// SteamRoots returns candidate Steam installation roots under home, in search
// order, keeping only those that exist. envRoot (usually $STEAM_ROOT) comes first when set.
func SteamRoots(fsys afero.Fs, home, envRoot string) []string {
	var candidates []string
	if envRoot != "" {
		candidates = append(candidates, envRoot)
	}
	if home != "" {
		candidates = append(candidates,
			filepath.Join(home, ".steam", "steam"),
			filepath.Join(home, ".local", "share", "Steam"),
			filepath.Join(home, ".var", "app", "com.valvesoftware.Steam", ".local", "share", "Steam"),
		)
	}

	seen := make(map[string]bool)
	var out []string
	for _, p := range candidates {
		p = filepath.Clean(p)
		if seen[p] {
			continue
		}
		seen[p] = true
		if ok, _ := afero.DirExists(fsys, p); ok {
			out = append(out, p)
		}
	}
	return out
}

// SteamLibraries returns the library directories registered with a Steam root.
// Without a libraryfolders.vdf the root itself is the only library.
func SteamLibraries(fsys afero.Fs, steamRoot string) ([]string, error) {
	vdfPath := filepath.Join(steamRoot, "steamapps", "libraryfolders.vdf")
	f, err := fsys.Open(vdfPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{steamRoot}, nil
		}
		return nil, fmt.Errorf("opening libraryfolders: %w", err)
	}
	defer f.Close()

	root, err := ParseKeyValues(f)
	if err != nil {
		return nil, fmt.Errorf("parsing libraryfolders: %w", err)
	}
	paths := LibraryPaths(root)
	if len(paths) == 0 {
		return []string{steamRoot}, nil
	}
	return paths, nil
}

// FindSteamApp returns the install directory of appID inside library, or false
// when the app is not installed there.
func FindSteamApp(fsys afero.Fs, library, appID string) (string, bool) {
	manifestPath := filepath.Join(library, "steamapps", "appmanifest_"+appID+".acf")
	f, err := fsys.Open(manifestPath)
	if err != nil {
		return "", false
	}
	defer f.Close()

	m, err := ParseAppManifest(f)
	if err != nil || m.InstallDir == "" {
		return "", false
	}

	installPath := filepath.Join(library, "steamapps", "common", m.InstallDir)
	if ok, _ := afero.DirExists(fsys, installPath); !ok {
		return "", false
	}
	return installPath, true
}
