package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DonovanMods/bundle-mod-manager/internal/domain"
	"github.com/DonovanMods/bundle-mod-manager/internal/storage/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultValues(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, domain.LinkCopy, cfg.LinkMethod)
	assert.Equal(t, "vim", cfg.Keybindings)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 4, cfg.ScanDepth)
	assert.Empty(t, cfg.ScanRoots)
	assert.Empty(t, cfg.Game.ExecutableName)
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	content := `
link_method: symlink
keybindings: standard
log_level: debug
scan_depth: 2
scan_roots:
  - /mnt/games
game:
  name: Heroes
  executable: Heroes.exe
  steam_app_id: "123450"
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, domain.LinkSymlink, cfg.LinkMethod)
	assert.Equal(t, "standard", cfg.Keybindings)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2, cfg.ScanDepth)
	assert.Equal(t, []string{"/mnt/games"}, cfg.ScanRoots)
	assert.Equal(t, "Heroes", cfg.Game.Name)
	assert.Equal(t, "Heroes.exe", cfg.Game.ExecutableName)
	assert.Equal(t, "123450", cfg.Game.SteamAppID)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("link_method: copy\n"), 0644))

	t.Setenv("BMM_LINK_METHOD", "symlink")
	t.Setenv("BMM_GAME_EXECUTABLE", "Other.exe")

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, domain.LinkSymlink, cfg.LinkMethod)
	assert.Equal(t, "Other.exe", cfg.Game.ExecutableName)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("link_method: [unclosed\n"), 0644))

	_, err := config.Load(dir)
	assert.Error(t, err)
}

func TestLoadConfig_NegativeScanDepth(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("scan_depth: -1\n"), 0644))

	_, err := config.Load(dir)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	cfg.LinkMethod = domain.LinkSymlink
	cfg.Game.ExecutableName = "Heroes.exe"
	require.NoError(t, cfg.Save(dir))

	loaded, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.LinkSymlink, loaded.LinkMethod)
	assert.Equal(t, "Heroes.exe", loaded.Game.ExecutableName)
	assert.Equal(t, "vim", loaded.Keybindings)
}

func TestResolveLibraryDir(t *testing.T) {
	cfg := &config.Config{}
	assert.Equal(t, filepath.Join("/data", "library"), cfg.ResolveLibraryDir("/data"))

	cfg.LibraryDir = "/mods/library"
	assert.Equal(t, "/mods/library", cfg.ResolveLibraryDir("/data"))
}

func TestResolveScanRoots(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg := &config.Config{ScanRoots: []string{"~/Games", " ", "/mnt/games"}}
	assert.Equal(t, []string{filepath.Join(home, "Games"), "/mnt/games"}, cfg.ResolveScanRoots())
}
