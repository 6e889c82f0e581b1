package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"
)

// CatalogConfig configures the reference catalog client.
type CatalogConfig struct {
	BaseURL           string  `toml:"base_url" json:"base_url"`
	VehicleType       string  `toml:"vehicle_type" json:"vehicle_type"`
	ProbeTimeoutMs    int     `toml:"probe_timeout_ms" json:"probe_timeout_ms"`
	Locale            string  `toml:"locale" json:"locale"`
	RequestsPerSecond float64 `toml:"requests_per_second" json:"requests_per_second"`
}

// ProbeTimeout returns the availability check bound.
func (c CatalogConfig) ProbeTimeout() time.Duration {
	return time.Duration(c.ProbeTimeoutMs) * time.Millisecond
}

// LocaleTag returns the collation locale. Invalid tags fall back to the
// root locale; Load rejects them before they get here.
func (c CatalogConfig) LocaleTag() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Und
	}
	return tag
}

// ThemeConfig selects the form colors.
type ThemeConfig struct {
	Name string `toml:"name" json:"name"`
	Mode string `toml:"mode" json:"mode"`
}

// Config holds the garage configuration.
type Config struct {
	DataDir string        `toml:"data_dir" json:"data_dir"`
	Catalog CatalogConfig `toml:"catalog" json:"catalog"`
	Theme   ThemeConfig   `toml:"theme" json:"theme"`
}

// Defaults for empty settings.
const (
	DefaultBaseURL           = "https://parallelum.com.br/fipe/api/v1"
	DefaultVehicleType       = "carros"
	DefaultProbeTimeoutMs    = 3000
	DefaultLocale            = "pt-BR"
	DefaultRequestsPerSecond = 5
	defaultDataDir           = "~/.garage"
)

// CacheDir is where catalog lists are cached.
func (c *Config) CacheDir() string {
	return filepath.Join(c.DataDir, "cache")
}

// RegistryPath is the vehicle registry file.
func (c *Config) RegistryPath() string {
	return filepath.Join(c.DataDir, "vehicles.json")
}

// Default returns the default configuration.
func Default() Config {
	dataDir, err := expandPath(defaultDataDir)
	if err != nil {
		dataDir = defaultDataDir
	}
	return Config{
		DataDir: dataDir,
		Catalog: CatalogConfig{
			BaseURL:           DefaultBaseURL,
			VehicleType:       DefaultVehicleType,
			ProbeTimeoutMs:    DefaultProbeTimeoutMs,
			Locale:            DefaultLocale,
			RequestsPerSecond: DefaultRequestsPerSecond,
		},
		Theme: ThemeConfig{Name: "default", Mode: "auto"},
	}
}

// ValidatePath checks that path is absolute or starts with ~.
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// Path returns the config file location.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "garage", "config.toml"), nil
}

// Load reads config from ~/.config/garage/config.toml.
// Returns Default() if file doesn't exist (no error).
// Returns error only if file exists but is invalid.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		cfg := Default()
		return cfg, applyEnvOverrides(&cfg)
	}
	return LoadFile(path)
}

// LoadFile reads config from path, applying defaults and env overrides.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return cfg, applyEnvOverrides(&cfg)
	case err != nil:
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	var raw Config
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}
	mergeDefaults(&raw, cfg)
	// Zero is meaningful here (no pacing), so only an absent key gets the default.
	if !md.IsDefined("catalog", "requests_per_second") {
		raw.Catalog.RequestsPerSecond = cfg.Catalog.RequestsPerSecond
	}

	if err := applyEnvOverrides(&raw); err != nil {
		return Default(), err
	}
	return raw, nil
}

// mergeDefaults fills empty fields of cfg from def.
func mergeDefaults(cfg *Config, def Config) {
	if cfg.DataDir == "" {
		cfg.DataDir = def.DataDir
	}
	if cfg.Catalog.BaseURL == "" {
		cfg.Catalog.BaseURL = def.Catalog.BaseURL
	}
	if cfg.Catalog.VehicleType == "" {
		cfg.Catalog.VehicleType = def.Catalog.VehicleType
	}
	if cfg.Catalog.ProbeTimeoutMs == 0 {
		cfg.Catalog.ProbeTimeoutMs = def.Catalog.ProbeTimeoutMs
	}
	if cfg.Catalog.Locale == "" {
		cfg.Catalog.Locale = def.Catalog.Locale
	}
	if cfg.Theme.Name == "" {
		cfg.Theme.Name = def.Theme.Name
	}
	if cfg.Theme.Mode == "" {
		cfg.Theme.Mode = def.Theme.Mode
	}
}

// applyEnvOverrides applies GARAGE_* environment variables, then validates
// and expands the result.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("GARAGE_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("GARAGE_CATALOG_URL"); v != "" {
		cfg.Catalog.BaseURL = v
	}

	if err := cfg.validate(); err != nil {
		return err
	}

	expanded, err := expandPath(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("expand data_dir: %w", err)
	}
	cfg.DataDir = expanded
	return nil
}

const defaultConfig = `# garage configuration

# Where vehicles.json and the catalog cache live.
# Must be an absolute path or start with ~
# data_dir = "~/.garage"

[catalog]
# FIPE-compatible API root
# base_url = "https://parallelum.com.br/fipe/api/v1"

# Which catalog to browse: "carros", "motos" or "caminhoes"
# vehicle_type = "carros"

# How long the availability check may take before the form falls back to
# manual entry
# probe_timeout_ms = 3000

# Locale used to sort brand and model names (BCP 47)
# locale = "pt-BR"

# Client-side pacing of catalog requests, 0 disables it
# requests_per_second = 5

[theme]
# "none", "default", "nord" or "gruvbox"
# name = "default"

# "auto", "light" or "dark"
# mode = "auto"
`

// DefaultConfig returns the commented config template written by Init.
func DefaultConfig() string {
	return defaultConfig
}

// Init writes the default config file and returns its path.
// An existing file is only replaced when force is set.
func Init(force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}
	return path, initFile(path, force)
}

func initFile(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New("config file already exists: " + path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfig), 0o644)
}
