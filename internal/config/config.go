package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"treenav/internal/eventbus"
)

// Config represents the application configuration
type Config struct {
	Version    int            `toml:"version"`
	Source     string         `toml:"source"` // outline file or directory opened by default
	UISettings UISettings     `toml:"ui"`
	Engine     EngineSettings `toml:"engine"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	SelectMode       string   `toml:"select_mode"` // "single" or "multi"
	RowHeight        int      `toml:"row_height"`
	ShowHidden       bool     `toml:"show_hidden"`
	ShowDescriptions bool     `toml:"show_descriptions"`
	Skip             []string `toml:"skip"` // directory names never listed
	AutosaveOnExit   bool     `toml:"autosave_on_exit"`
}

// EngineSettings tunes the navigation engine
type EngineSettings struct {
	InitialDepth int `toml:"initial_depth"`
	DepthCeiling int `toml:"depth_ceiling"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string

	mu      sync.Mutex
	current *Config
}

// DefaultPath returns where the config file lives
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "treenav", "config.toml")
}

// NewConfigService creates a new config service
func NewConfigService() ConfigService {
	return NewConfigServiceAt(DefaultPath())
}

// NewConfigServiceAt creates a config service backed by a specific file
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support.
// A ConfigChanged event updates the last loaded config and saves it.
func NewConfigServiceWithBus(bus eventbus.EventBus, path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	cs := &configService{bus: bus, filePath: path}
	bus.Subscribe(eventbus.EventConfigChanged, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigChangedEvent); ok {
			cs.applyChange(event)
		}
	})
	return cs
}

// Load loads the configuration from file
func (cs *configService) Load() (*Config, error) {
	var cfg *Config
	if _, err := os.Stat(cs.filePath); errors.Is(err, os.ErrNotExist) {
		// Return default config if file doesn't exist
		cfg = DefaultConfig()
	} else {
		loaded, err := cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cs.mu.Lock()
	cs.current = cfg
	cs.mu.Unlock()

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			Source:     cfg.Source,
			SelectMode: cfg.UISettings.SelectMode,
		})
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	cs.mu.Lock()
	cs.current = config
	cs.mu.Unlock()

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config file not found: %s", path)
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
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(config); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (cs *configService) applyChange(event eventbus.ConfigChangedEvent) {
	cs.mu.Lock()
	cfg := cs.current
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if event.SelectMode != "" {
		cfg.UISettings.SelectMode = event.SelectMode
	}
	cfg.UISettings.ShowHidden = event.ShowHidden
	cs.current = cfg
	cs.mu.Unlock()

	if !cfg.UISettings.AutosaveOnExit {
		return
	}
	if err := cs.Save(cfg); err != nil {
		cs.bus.Publish(eventbus.ErrorEvent{Message: "Failed to autosave config", Err: err})
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Source:  ".",
		UISettings: UISettings{
			SelectMode:       "single",
			RowHeight:        1,
			ShowDescriptions: true,
			Skip:             []string{"node_modules", "vendor", "__pycache__"},
			AutosaveOnExit:   true,
		},
		Engine: EngineSettings{
			InitialDepth: 8,
			DepthCeiling: 1024,
		},
	}
}

// normalize replaces out-of-range values with defaults
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Version == 0 {
		c.Version = def.Version
	}
	if c.UISettings.RowHeight < 1 {
		c.UISettings.RowHeight = def.UISettings.RowHeight
	}
	if c.Engine.InitialDepth < 1 {
		c.Engine.InitialDepth = def.Engine.InitialDepth
	}
	if c.Engine.DepthCeiling < c.Engine.InitialDepth {
		c.Engine.DepthCeiling = def.Engine.DepthCeiling
	}
}
