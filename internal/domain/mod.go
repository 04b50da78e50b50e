package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// ModEntry is a mod known to the registry
type ModEntry struct {
	ID          string    `json:"id"`                   // uuid assigned at import, never changes
	FileName    string    `json:"fileName"`             // Payload file name, unique in the registry
	DisplayName string    `json:"displayName"`          // User-editable label
	Enabled     bool      `json:"enabled"`              // true = apply, false = uninstall
	StoragePath string    `json:"storagePath"`          // Payload copy inside the mod library
	TargetPath  string    `json:"targetPath,omitempty"` // Target recorded at first successful apply
	ImportedAt  time.Time `json:"importedAt"`
}

// ModUpdate holds the user-editable fields of a ModEntry. Nil fields are left unchanged.
type ModUpdate struct {
	DisplayName *string `json:"displayName,omitempty"`
	Enabled     *bool   `json:"enabled,omitempty"`
}

// IsEmpty returns true if the update changes nothing
func (u ModUpdate) IsEmpty() bool {
	return u.DisplayName == nil && u.Enabled == nil
}

// Apply merges the update into the entry
func (u ModUpdate) Apply(m *ModEntry) {
	if u.DisplayName != nil {
		m.DisplayName = *u.DisplayName
	}
	if u.Enabled != nil {
		m.Enabled = *u.Enabled
	}
}

// DisplayNameFor returns the default display name for a payload file: its name without extension
func DisplayNameFor(fileName string) string {
	name := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	if name == "" {
		return fileName
	}
	return name
}

// SameFileName reports whether two payload names refer to the same target.
// Targets are matched case-insensitively, so registry names are too.
func SameFileName(a, b string) bool {
	return strings.EqualFold(a, b)
}

// TargetState is the on-disk state of a mod's target, derived from file presence
type TargetState int

const (
	StateMissing  TargetState = iota // Neither the target nor a backup exists
	StateNoBackup                    // Live file present, original not yet captured
	StateBackedUp                    // <target>.bak holds the captured original
)

func (s TargetState) String() string {
	switch s {
	case StateNoBackup:
		return "no-backup"
	case StateBackedUp:
		return "backed-up"
	default:
		return "missing"
	}
}

// MarshalText encodes the state by name
func (s TargetState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// BackupSuffix marks the captured original next to a target
const BackupSuffix = ".bak"

// BackupPath returns the backup location for a target
func BackupPath(target string) string {
	return target + BackupSuffix
}
