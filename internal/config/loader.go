package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Loader handles configuration loading from various sources via viper,
// replacing ad-hoc reflection-based environment scanning with a real
// env/flag/file overlay layer.
type Loader struct {
	envPrefix string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return &Loader{
		envPrefix: "NODESELECT",
	}
}

// LoadFromEnvironment loads configuration from environment variables,
// overriding any field the corresponding NODESELECT_* variable sets.
func (l *Loader) LoadFromEnvironment(cfg *Config) error {
	v := viper.New()
	v.SetEnvPrefix(l.envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, key := range []string{
		"selection.default_indirect_selection",
		"selection.previous_state_file",
		"selection.selectors_file",
		"selection.glob_case_sensitive",
		"logging.level",
		"logging.format",
		"logging.output",
	} {
		_ = v.BindEnv(key)
	}

	if s := v.GetString("selection.default_indirect_selection"); s != "" {
		cfg.Selection.DefaultIndirectSelection = s
	}
	if s := v.GetString("selection.previous_state_file"); s != "" {
		cfg.Selection.PreviousStateFile = s
	}
	if s := v.GetString("selection.selectors_file"); s != "" {
		cfg.Selection.SelectorsFile = s
	}
	if v.IsSet("selection.glob_case_sensitive") {
		cfg.Selection.GlobCaseSensitive = v.GetBool("selection.glob_case_sensitive")
	}
	if s := v.GetString("logging.level"); s != "" {
		cfg.Logging.Level = s
	}
	if s := v.GetString("logging.format"); s != "" {
		cfg.Logging.Format = s
	}
	if s := v.GetString("logging.output"); s != "" {
		cfg.Logging.Output = s
	}

	l.loadFeaturesFromEnv(cfg)

	return nil
}

// loadFeaturesFromEnv scans the process environment for
// NODESELECT_FEATURES_<NAME>=true/false entries.
func (l *Loader) loadFeaturesFromEnv(cfg *Config) {
	prefix := l.envPrefix + "_FEATURES_"
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, prefix) {
			continue
		}
		parts := strings.SplitN(env, "=", 2)
		if len(parts) != 2 {
			continue
		}
		name := strings.ToLower(strings.TrimPrefix(parts[0], prefix))
		if value, err := strconv.ParseBool(parts[1]); err == nil {
			if cfg.Features == nil {
				cfg.Features = make(map[string]bool)
			}
			cfg.Features[name] = value
		}
	}
}

// MergeConfigs merges multiple configurations, with later configs taking
// precedence over earlier ones and over base.
func MergeConfigs(base *Config, overlays ...*Config) *Config {
	result := *base

	for _, overlay := range overlays {
		if overlay == nil {
			continue
		}

		mergeSelection(&result.Selection, &overlay.Selection)
		mergeLogging(&result.Logging, &overlay.Logging)

		if overlay.Features != nil {
			if result.Features == nil {
				result.Features = make(map[string]bool)
			}
			for k, v := range overlay.Features {
				result.Features[k] = v
			}
		}

		if overlay.Version != "" {
			result.Version = overlay.Version
		}
		if overlay.Profile != "" {
			result.Profile = overlay.Profile
		}
	}

	return &result
}

// mergeSelection merges selection configurations.
func mergeSelection(base, overlay *SelectionConfig) {
	if overlay.DefaultIndirectSelection != "" {
		base.DefaultIndirectSelection = overlay.DefaultIndirectSelection
	}
	if len(overlay.DefaultResourceTypes) > 0 {
		base.DefaultResourceTypes = overlay.DefaultResourceTypes
	}
	if overlay.PreviousStateFile != "" {
		base.PreviousStateFile = overlay.PreviousStateFile
	}
	if overlay.SelectorsFile != "" {
		base.SelectorsFile = overlay.SelectorsFile
	}
	base.GlobCaseSensitive = overlay.GlobCaseSensitive
}

// mergeLogging merges logging configurations.
func mergeLogging(base, overlay *LoggingConfig) {
	if overlay.Level != "" {
		base.Level = overlay.Level
	}
	if overlay.Format != "" {
		base.Format = overlay.Format
	}
	if overlay.Output != "" {
		base.Output = overlay.Output
	}
	base.EnableColor = overlay.EnableColor
}

// stringSliceEqual reports element-wise equality of two string slices.
func stringSliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
