// Package config provides a unified configuration system for the node
// selector: default selection behavior, graph/state file locations, and
// logging, loaded from YAML with environment-variable and hot-reload
// overlays (mirroring graft's internal/config package).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the complete selector configuration.
type Config struct {
	// Selection configuration
	Selection SelectionConfig `yaml:"selection" json:"selection"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`

	// Feature flags
	Features map[string]bool `yaml:"features" json:"features"`

	// Metadata
	Version string `yaml:"version" json:"version"`
	Profile string `yaml:"profile" json:"profile"`
}

// SelectionConfig contains the node selector's own behavioral settings.
type SelectionConfig struct {
	// DefaultIndirectSelection is the indirect_selection mode a plain
	// (non-YAML-map) criterion inherits when it specifies none of its own.
	DefaultIndirectSelection string `yaml:"default_indirect_selection" json:"default_indirect_selection" default:"eager" env:"NODESELECT_INDIRECT_SELECTION"`

	// DefaultResourceTypes restricts the default resource_type filter. An
	// empty list means "all" (spec.md §4.8).
	DefaultResourceTypes []string `yaml:"default_resource_types" json:"default_resource_types"`

	// PreviousStateFile points at a serialized prior ParsedGraph snapshot
	// consumed by state: criteria (spec.md §4.6). Empty disables state:.
	PreviousStateFile string `yaml:"previous_state_file" json:"previous_state_file" env:"NODESELECT_STATE_FILE"`

	// SelectorsFile points at a named selector-definition document
	// (SPEC_FULL.md §11.1, yamlselector.go).
	SelectorsFile string `yaml:"selectors_file" json:"selectors_file" env:"NODESELECT_SELECTORS_FILE"`

	// GlobCaseSensitive is loaded and merged with the rest of the config but
	// is not passed to the selector: path: matching is always case-sensitive
	// and file: matching always lower-cases both sides.
	GlobCaseSensitive bool `yaml:"glob_case_sensitive" json:"glob_case_sensitive" default:"true"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level       string `yaml:"level" json:"level" default:"info" env:"NODESELECT_LOG_LEVEL"`
	Format      string `yaml:"format" json:"format" default:"text"`
	Output      string `yaml:"output" json:"output" default:"stderr"`
	EnableColor bool   `yaml:"enable_color" json:"enable_color" default:"true"`
}

// Manager manages configuration loading, validation, and hot-reloading.
type Manager struct {
	config      *Config
	configPath  string
	mu          sync.RWMutex
	changeHooks []func(*Config)
	watcher     *FileWatcher
}

// NewManager creates a new configuration manager.
func NewManager() *Manager {
	return &Manager{
		config:      DefaultConfig(),
		changeHooks: make([]func(*Config), 0),
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Selection: SelectionConfig{
			DefaultIndirectSelection: "eager",
			DefaultResourceTypes:     nil,
			GlobCaseSensitive:        true,
		},
		Logging: LoggingConfig{
			Level:       "info",
			Format:      "text",
			Output:      "stderr",
			EnableColor: true,
		},
		Features: make(map[string]bool),
		Version:  "1.0",
		Profile:  "default",
	}
}

// Load loads configuration from a file, applies environment overrides, and
// validates the result.
func (m *Manager) Load(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	expandedPath, err := expandPath(path)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	data, err := os.ReadFile(expandedPath)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	if err := applyEnvOverrides(config); err != nil {
		return fmt.Errorf("applying environment overrides: %w", err)
	}

	if err := Validate(config); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	m.config = config
	m.configPath = expandedPath

	m.notifyChangeHooks(config)

	return nil
}

// LoadProfile loads a named configuration profile.
func (m *Manager) LoadProfile(profileName string) error {
	profile, err := LoadProfile(profileName)
	if err != nil {
		return fmt.Errorf("loading profile %s: %w", profileName, err)
	}

	m.mu.Lock()
	profile.Profile = profileName
	if err := Validate(profile); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("validating profile %s: %w", profileName, err)
	}
	m.config = profile
	m.mu.Unlock()

	m.notifyChangeHooks(profile)
	return nil
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	configCopy := *m.config
	return &configCopy
}

// Update updates the configuration and notifies hooks.
func (m *Manager) Update(updateFunc func(*Config)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	configCopy := *m.config
	updateFunc(&configCopy)

	if err := Validate(&configCopy); err != nil {
		return fmt.Errorf("validating updated configuration: %w", err)
	}

	m.config = &configCopy

	m.notifyChangeHooks(&configCopy)

	return nil
}

// OnChange registers a callback for configuration changes.
func (m *Manager) OnChange(hook func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.changeHooks = append(m.changeHooks, hook)
}

// Watch starts watching the configuration file for changes via fsnotify,
// reloading and re-validating on every write.
func (m *Manager) Watch() error {
	m.mu.Lock()
	configPath := m.configPath
	if configPath == "" {
		m.mu.Unlock()
		return fmt.Errorf("no configuration file loaded")
	}
	if m.watcher != nil {
		m.mu.Unlock()
		return fmt.Errorf("already watching")
	}
	w, err := NewFileWatcher(configPath, DefaultLogger{})
	if err != nil {
		m.mu.Unlock()
		return fmt.Errorf("starting config watcher: %w", err)
	}
	m.watcher = w
	m.mu.Unlock()

	w.OnChange(func(ev ConfigChangeEvent) {
		if ev.Type != ChangeTypeModified && ev.Type != ChangeTypeCreated {
			return
		}
		if err := m.Load(configPath); err != nil {
			w.logger.Errorf("reloading config after change: %v", err)
		}
	})

	return w.Start()
}

// StopWatch stops watching the configuration file.
func (m *Manager) StopWatch() {
	m.mu.Lock()
	w := m.watcher
	m.watcher = nil
	m.mu.Unlock()

	if w != nil {
		w.Stop()
	}
}

// notifyChangeHooks calls all registered change hooks.
func (m *Manager) notifyChangeHooks(config *Config) {
	for _, hook := range m.changeHooks {
		go hook(config)
	}
}

// expandPath expands ~ and environment variables in paths.
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}

	path = os.ExpandEnv(path)

	return path, nil
}

// applyEnvOverrides layers environment variables over config using viper,
// keyed by each field's `env` struct tag.
func applyEnvOverrides(config *Config) error {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bind := func(key, env string) {
		if env == "" {
			return
		}
		_ = v.BindEnv(key, env)
	}
	bind("selection.default_indirect_selection", "NODESELECT_INDIRECT_SELECTION")
	bind("selection.previous_state_file", "NODESELECT_STATE_FILE")
	bind("selection.selectors_file", "NODESELECT_SELECTORS_FILE")
	bind("logging.level", "NODESELECT_LOG_LEVEL")

	if s := v.GetString("selection.default_indirect_selection"); s != "" {
		config.Selection.DefaultIndirectSelection = s
	}
	if s := v.GetString("selection.previous_state_file"); s != "" {
		config.Selection.PreviousStateFile = s
	}
	if s := v.GetString("selection.selectors_file"); s != "" {
		config.Selection.SelectorsFile = s
	}
	if s := v.GetString("logging.level"); s != "" {
		config.Logging.Level = s
	}
	return nil
}
