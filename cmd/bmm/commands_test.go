package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/DonovanMods/bundle-mod-manager/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportAndList(t *testing.T) {
	d := newTestDirs(t)
	src := writeModFile(t, "skin.bundle", "MOD")

	out, err := d.run(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No mods in library.")

	out, err = d.run(t, "", "import", src)
	require.NoError(t, err)
	assert.Contains(t, out, "+ skin.bundle")
	assert.Contains(t, out, "Imported 1 file(s)")

	// Importing the same name again is skipped
	out, err = d.run(t, "", "import", src)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 0 file(s), 1 already in library")

	out, err = d.run(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "skin.bundle")
	assert.Contains(t, out, "yes")

	out, err = d.run(t, "", "--json", "list")
	require.NoError(t, err)
	var mods []domain.ModEntry
	require.NoError(t, json.Unmarshal([]byte(out), &mods))
	require.Len(t, mods, 1)
	assert.Equal(t, "skin", mods[0].DisplayName)
	assert.FileExists(t, mods[0].StoragePath)
}

func TestImport_MissingFileFails(t *testing.T) {
	d := newTestDirs(t)

	out, err := d.run(t, "", "import", filepath.Join(t.TempDir(), "gone.bundle"))
	assert.Error(t, err)
	assert.Contains(t, out, "gone.bundle")
}

func TestModCommands(t *testing.T) {
	d := newTestDirs(t)
	_, err := d.run(t, "", "import", writeModFile(t, "skin.bundle", "MOD"))
	require.NoError(t, err)

	out, err := d.run(t, "", "mod", "disable", "skin.bundle")
	require.NoError(t, err)
	assert.Contains(t, out, "skin.bundle disabled")

	out, err = d.run(t, "", "mod", "rename", "skin", "  Red cape ")
	require.NoError(t, err)
	assert.Contains(t, out, `Renamed skin.bundle to "Red cape"`)

	out, err = d.run(t, "", "--json", "list")
	require.NoError(t, err)
	var mods []domain.ModEntry
	require.NoError(t, json.Unmarshal([]byte(out), &mods))
	require.Len(t, mods, 1)
	assert.False(t, mods[0].Enabled)
	assert.Equal(t, "Red cape", mods[0].DisplayName)

	_, err = d.run(t, "n\n", "mod", "delete", "skin.bundle")
	assert.ErrorIs(t, err, ErrCancelled)

	out, err = d.run(t, "", "--yes", "mod", "delete", "Red cape")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted skin.bundle")
	assert.NoFileExists(t, mods[0].StoragePath)

	_, err = d.run(t, "", "mod", "enable", "skin.bundle")
	assert.ErrorIs(t, err, domain.ErrModNotFound)
}

func TestApply_NoInstallation(t *testing.T) {
	d := newTestDirs(t)
	_, err := d.run(t, "", "import", writeModFile(t, "skin.bundle", "MOD"))
	require.NoError(t, err)

	out, err := d.run(t, "", "--yes", "apply")
	assert.ErrorIs(t, err, errBatchFailed)
	assert.Contains(t, out, domain.ErrNoInstallation.Error())
}

func TestApply_DeclinedIsCancelled(t *testing.T) {
	d := newTestDirs(t)
	_, err := d.run(t, "", "import", writeModFile(t, "skin.bundle", "MOD"))
	require.NoError(t, err)

	_, err = d.run(t, "no\n", "apply")
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestApplyAndUninstall_OnDisk(t *testing.T) {
	d := newTestDirs(t)
	exe, target := writeGame(t, t.TempDir())

	out, err := d.run(t, "", "game", "set-path", exe)
	require.NoError(t, err)
	assert.Contains(t, out, "Heroes_Data")

	_, err = d.run(t, "", "import",
		writeModFile(t, "skin.bundle", "MOD"),
		writeModFile(t, "absent.bundle", "X"))
	require.NoError(t, err)

	out, err = d.run(t, "y\n", "apply")
	require.NoError(t, err)
	assert.Contains(t, out, "applied 1 mod, 1 not found")
	assert.Contains(t, out, "absent.bundle: target not found, skipped")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "MOD", string(data))
	bak, err := os.ReadFile(target + ".bak")
	require.NoError(t, err)
	assert.Equal(t, "ORIGINAL", string(bak))

	out, err = d.run(t, "", "--json", "status")
	require.NoError(t, err)
	var statuses []struct {
		Mod   domain.ModEntry `json:"mod"`
		Found bool            `json:"found"`
		State string          `json:"state"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &statuses))
	require.Len(t, statuses, 2)
	assert.Equal(t, "backed-up", statuses[0].State)
	assert.False(t, statuses[1].Found)

	_, err = d.run(t, "", "mod", "disable", "skin.bundle")
	require.NoError(t, err)

	out, err = d.run(t, "", "--yes", "--json", "uninstall")
	require.NoError(t, err)
	var res domain.BatchResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Success)
	assert.Equal(t, domain.CodeUninstalled, res.Code)

	data, err = os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "ORIGINAL", string(data))
	assert.NoFileExists(t, target+".bak")
}

func TestStatus_NoGame(t *testing.T) {
	d := newTestDirs(t)

	out, err := d.run(t, "", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "No game configured.")

	_, err = d.run(t, "", "--json", "status")
	assert.ErrorIs(t, err, domain.ErrNoInstallation)
}

func TestGameSetPath_Invalid(t *testing.T) {
	d := newTestDirs(t)

	_, err := d.run(t, "", "game", "set-path", filepath.Join(t.TempDir(), "nope.exe"))
	assert.ErrorIs(t, err, domain.ErrInvalidPath)

	out, err := d.run(t, "", "game", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "No game configured.")
}

func TestGameDetect_ScanRoots(t *testing.T) {
	d := newTestDirs(t)
	games := t.TempDir()
	exe, _ := writeGame(t, games)

	cfg := "game:\n  executable: Heroes.exe\nscan_roots:\n  - " + games + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(d.config, "config.yaml"), []byte(cfg), 0644))

	out, err := d.run(t, "none\n", "game", "detect")
	require.NoError(t, err)
	assert.Contains(t, out, "1. "+exe+" (scan)")
	assert.Contains(t, out, "No game set.")

	out, err = d.run(t, "", "--yes", "game", "detect")
	require.NoError(t, err)
	assert.Contains(t, out, "Game set to "+exe)

	out, err = d.run(t, "", "--json", "game", "show")
	require.NoError(t, err)
	var inst domain.Installation
	require.NoError(t, json.Unmarshal([]byte(out), &inst))
	assert.Equal(t, exe, inst.ExecutablePath)
	assert.Equal(t, filepath.Join(games, "Heroes", "Heroes_Data"), inst.DataRoot)
}

func TestGameDetect_InvalidSelection(t *testing.T) {
	d := newTestDirs(t)
	games := t.TempDir()
	writeGame(t, games)

	cfg := "game:\n  executable: Heroes.exe\nscan_roots:\n  - " + games + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(d.config, "config.yaml"), []byte(cfg), 0644))

	_, err := d.run(t, "7\n", "game", "detect")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid selection")
}

func TestList_PayloadAndLibraryDetails(t *testing.T) {
	d := newTestDirs(t)
	_, err := d.run(t, "", "import",
		writeModFile(t, "skin.bundle", "MOD"),
		writeModFile(t, "hat.bundle", "HAT"))
	require.NoError(t, err)

	libDir := filepath.Join(d.data, "library")
	require.NoError(t, os.Remove(filepath.Join(libDir, "hat.bundle")))
	require.NoError(t, os.WriteFile(filepath.Join(libDir, "stray.bundle"), []byte("STRAY"), 0644))

	out, err := d.run(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "PAYLOAD")
	assert.Contains(t, out, "missing")
	assert.Contains(t, out, "1 mod(s) have no library copy")
	assert.NotContains(t, out, "Untracked")

	out, err = d.run(t, "", "--verbose", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Library: "+libDir)
	assert.Contains(t, out, "Total: 2 mod(s), 8 B")
	assert.Contains(t, out, "Untracked: stray.bundle")
}

func TestModDelete_WarnsWhenApplied(t *testing.T) {
	d := newTestDirs(t)
	exe, target := writeGame(t, t.TempDir())
	_, err := d.run(t, "", "game", "set-path", exe)
	require.NoError(t, err)
	_, err = d.run(t, "", "import", writeModFile(t, "skin.bundle", "MOD"))
	require.NoError(t, err)
	_, err = d.run(t, "", "--yes", "apply")
	require.NoError(t, err)

	out, err := d.run(t, "", "--yes", "mod", "delete", "skin.bundle")
	require.NoError(t, err)
	assert.Contains(t, out, "Warning: skin.bundle is still applied; the original stays at "+target+".bak")
	assert.Contains(t, out, "Deleted skin.bundle")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "MOD", string(data), "game files are not touched")
	assert.FileExists(t, target+".bak")
}

func TestGameClear(t *testing.T) {
	d := newTestDirs(t)
	exe, _ := writeGame(t, t.TempDir())
	_, err := d.run(t, "", "game", "set-path", exe)
	require.NoError(t, err)

	out, err := d.run(t, "", "game", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Game path cleared.")
	assert.FileExists(t, exe)

	out, err = d.run(t, "", "game", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "No game configured.")
}
