package domain

import (
	"path/filepath"
	"strings"
)

// LinkMethod determines how a mod payload is placed at its target
type LinkMethod int

const (
	LinkCopy    LinkMethod = iota // Default: copy (the game sees a regular file)
	LinkSymlink                   // Symlink into the mod library
)

func (m LinkMethod) String() string {
	switch m {
	case LinkCopy:
		return "copy"
	case LinkSymlink:
		return "symlink"
	default:
		return "unknown"
	}
}

// ParseLinkMethod converts a string to LinkMethod
func ParseLinkMethod(s string) LinkMethod {
	switch strings.ToLower(s) {
	case "symlink":
		return LinkSymlink
	default:
		return LinkCopy
	}
}

// DataDirSuffix is appended to the executable's stem to form the data root,
// e.g. "Game.exe" -> "Game_Data".
const DataDirSuffix = "_Data"

// Installation is a located game: the executable and the data tree mods are applied to
type Installation struct {
	ExecutablePath string `json:"executablePath"`
	DataRoot       string `json:"dataRoot"`
}

// NewInstallation derives the data root from the executable path
func NewInstallation(executablePath string) *Installation {
	return &Installation{
		ExecutablePath: executablePath,
		DataRoot:       DataRootFor(executablePath),
	}
}

// DataRootFor returns <executable-dir>/<executable-stem>_Data
func DataRootFor(executablePath string) string {
	base := filepath.Base(executablePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(executablePath), stem+DataDirSuffix)
}

// Settings keys read and written through the persisted key-value store.
const (
	KeyGamePath       = "gamePath"
	KeyGameBundlePath = "gameBundlePath"
	KeyMods           = "mods"
)
