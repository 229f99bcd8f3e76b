// Package config handles global configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents configuration stored in ~/.config/refmd/config.yml.
// Every field is optional; flags override config values.
type Config struct {
	Template        string `yaml:"template,omitempty"`         // Markdown page template path
	HTMLTemplate    string `yaml:"html_template,omitempty"`    // Listing page template path
	OutputDir       string `yaml:"output_dir,omitempty"`       // Markdown output directory
	IncludeAbstract bool   `yaml:"include_abstract,omitempty"` // Bind abstract/URL into pages
	DBPath          string `yaml:"db_path,omitempty"`          // Search index location
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "refmd"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
	// DefaultDBFile is the index file used when db_path is not configured.
	DefaultDBFile = "refmd.db"
)

// Environment overrides, applied after the config file.
const (
	EnvTemplate = "REFMD_TEMPLATE"
	EnvOutput   = "REFMD_OUTPUT"
	EnvDB       = "REFMD_DB"
)

// configCache caches the loaded config.
var configCache *Config

// Path returns the path to the config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/refmd/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// Load loads the configuration file.
// Returns a zero config (not an error) if the file doesn't exist.
func Load() (*Config, error) {
	if configCache != nil {
		return configCache, nil
	}

	cfg := &Config{}

	path := Path()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
		}
	}

	cfg.applyEnv()

	cfg.Template = ExpandPath(cfg.Template)
	cfg.HTMLTemplate = ExpandPath(cfg.HTMLTemplate)
	cfg.OutputDir = ExpandPath(cfg.OutputDir)
	cfg.DBPath = ExpandPath(cfg.DBPath)

	configCache = cfg
	return cfg, nil
}

// ResetCache clears the cached config. Useful for testing.
func ResetCache() {
	configCache = nil
}

// Save writes the configuration to the user config file, creating the
// directory on first use. The cache is dropped so the next Load sees the
// saved values.
func (c *Config) Save() error {
	path := Path()
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	configCache = nil
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvTemplate); v != "" {
		c.Template = v
	}
	if v := os.Getenv(EnvOutput); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv(EnvDB); v != "" {
		c.DBPath = v
	}
}

// ResolveDBPath returns the index path to use: the explicit flag value,
// then the configured db_path, then DefaultDBFile.
func (c *Config) ResolveDBPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if c.DBPath != "" {
		return c.DBPath
	}
	return DefaultDBFile
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}

// ValidateTemplatePath checks that a configured template file exists.
func ValidateTemplatePath(path string) error {
	if path == "" {
		return nil // Empty is allowed (not yet configured)
	}

	info, err := os.Stat(ExpandPath(path))
	if err != nil {
		return fmt.Errorf("template does not exist: %s", path)
	}
	if info.IsDir() {
		return fmt.Errorf("template is a directory: %s", path)
	}

	return nil
}
