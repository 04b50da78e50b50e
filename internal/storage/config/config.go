// Package config loads and saves the application settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/DonovanMods/bundle-mod-manager/internal/domain"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileName is the settings file inside the config directory
const FileName = "config.yaml"

// EnvPrefix prefixes environment overrides, e.g. BMM_LINK_METHOD
const EnvPrefix = "BMM"

// GameConfig describes the game whose installation mods are applied to
type GameConfig struct {
	Name           string `mapstructure:"name" yaml:"name,omitempty"`
	ExecutableName string `mapstructure:"executable" yaml:"executable,omitempty"`
	SteamAppID     string `mapstructure:"steam_app_id" yaml:"steam_app_id,omitempty"`
}

// Config holds global application settings
type Config struct {
	LibraryDir  string            `mapstructure:"library_dir" yaml:"library_dir,omitempty"`
	LinkMethod  domain.LinkMethod `mapstructure:"-" yaml:"-"`
	LinkMethodS string            `mapstructure:"link_method" yaml:"link_method"`
	Keybindings string            `mapstructure:"keybindings" yaml:"keybindings"`
	LogLevel    string            `mapstructure:"log_level" yaml:"log_level"`
	ScanDepth   int               `mapstructure:"scan_depth" yaml:"scan_depth"`
	ScanRoots   []string          `mapstructure:"scan_roots" yaml:"scan_roots,omitempty"`
	Game        GameConfig        `mapstructure:"game" yaml:"game"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("library_dir", "")
	v.SetDefault("link_method", domain.LinkCopy.String())
	v.SetDefault("keybindings", "vim")
	v.SetDefault("log_level", "info")
	v.SetDefault("scan_depth", 4)
	v.SetDefault("scan_roots", []string{})
	v.SetDefault("game.name", "")
	v.SetDefault("game.executable", "")
	v.SetDefault("game.steam_app_id", "")
}

// Load reads configuration from the given directory.
// A missing file yields defaults; BMM_* environment variables override both.
func Load(configDir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath := filepath.Join(configDir, FileName)
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	if _, err := os.Stat(configPath); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	cfg.LinkMethod = domain.ParseLinkMethod(cfg.LinkMethodS)
	if cfg.ScanDepth < 0 {
		return nil, fmt.Errorf("%w: scan_depth must not be negative", domain.ErrInvalidConfig)
	}

	return cfg, nil
}

// Save writes configuration to the given directory
func (c *Config) Save(configDir string) error {
	c.LinkMethodS = c.LinkMethod.String()

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	configPath := filepath.Join(configDir, FileName)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ResolveLibraryDir returns the library directory, defaulting to <dataDir>/library
func (c *Config) ResolveLibraryDir(dataDir string) string {
	if c.LibraryDir != "" {
		return expandHome(c.LibraryDir)
	}
	return filepath.Join(dataDir, "library")
}

// ResolveScanRoots expands ~ in the configured scan roots
func (c *Config) ResolveScanRoots() []string {
	roots := make([]string, 0, len(c.ScanRoots))
	for _, r := range c.ScanRoots {
		if r = strings.TrimSpace(r); r != "" {
			roots = append(roots, expandHome(r))
		}
	}
	return roots
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
