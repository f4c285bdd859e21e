package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// ErrNotFound is returned by LoadFromPath when the file does not exist
var ErrNotFound = errors.New("config file not found")

// Config represents the application configuration
type Config struct {
	Version int             `toml:"version"`
	Source  SourceSettings  `toml:"source"`
	UI      UISettings      `toml:"ui"`
	Log     LogSettings     `toml:"log"`
	Metrics MetricsSettings `toml:"metrics"`
}

// SourceSettings describes where pages live and how they are discovered
type SourceSettings struct {
	PathPattern    string `toml:"path_pattern"` // printf pattern, one %d for the page number
	Manifest       string `toml:"manifest"`     // page count manifest, relative to the site root
	UseManifest    bool   `toml:"use_manifest"`
	ProbeLimit     int    `toml:"probe_limit"`
	PageParam      string `toml:"page_param"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowBottomControl bool   `toml:"show_bottom_control"`
	Style             string `toml:"style"` // glamour standard style: dark, light, notty, ascii
	Mouse             bool   `toml:"mouse"`
}

// LogSettings configures the log file
type LogSettings struct {
	Level  string `toml:"level"`
	File   string `toml:"file"`
	Pretty bool   `toml:"pretty"`
}

// MetricsSettings configures the optional Prometheus listener
type MetricsSettings struct {
	Addr string `toml:"addr"`
}

// Timeout returns the per-request timeout
func (s SourceSettings) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service rooted in the user config dir
func NewConfigService() ConfigService {
	return &configService{filePath: DefaultPath()}
}

// NewConfigServiceAt creates a config service for an explicit file
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

// DefaultPath returns $XDG_CONFIG_HOME/newsdeck/config.toml or a fallback
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "newsdeck", "config.toml")
}

// Path returns the file this service reads and writes
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration, returning defaults when no file exists
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, ErrNotFound) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Missing keys keep
// their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.normalize()

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// normalize replaces zero or invalid values with defaults
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Version == 0 {
		c.Version = def.Version
	}
	if c.Source.PathPattern == "" {
		c.Source.PathPattern = def.Source.PathPattern
	}
	if c.Source.Manifest == "" {
		c.Source.Manifest = def.Source.Manifest
	}
	if c.Source.ProbeLimit <= 0 {
		c.Source.ProbeLimit = def.Source.ProbeLimit
	}
	if c.Source.PageParam == "" {
		c.Source.PageParam = def.Source.PageParam
	}
	if c.Source.TimeoutSeconds <= 0 {
		c.Source.TimeoutSeconds = def.Source.TimeoutSeconds
	}
	if c.UI.Style == "" {
		c.UI.Style = def.UI.Style
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.File == "" {
		c.Log.File = def.Log.File
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Source: SourceSettings{
			PathPattern:    "posts/page%d.html",
			Manifest:       "posts/page-count.json",
			UseManifest:    true,
			ProbeLimit:     300,
			PageParam:      "page",
			TimeoutSeconds: 15,
		},
		UI: UISettings{
			ShowBottomControl: true,
			Style:             "dark",
			Mouse:             true,
		},
		Log: LogSettings{
			Level: "info",
			File:  defaultLogFile(),
		},
	}
}

func defaultLogFile() string {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "newsdeck.log"
	}
	return filepath.Join(cacheDir, "newsdeck", "newsdeck.log")
}
