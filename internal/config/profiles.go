package config

import (
	"embed"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed profiles/*.yaml
var profilesFS embed.FS

// LoadProfile loads a named profile, applying it over DefaultConfig.
func LoadProfile(profileName string) (*Config, error) {
	profilePath := filepath.Join("profiles", profileName+".yaml")

	data, err := profilesFS.ReadFile(profilePath)
	if err != nil {
		return nil, fmt.Errorf("reading profile %s: %w", profileName, err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing profile %s: %w", profileName, err)
	}
	config.Profile = profileName

	if err := Validate(config); err != nil {
		return nil, fmt.Errorf("validating profile %s: %w", profileName, err)
	}

	return config, nil
}

// ProfileManager manages configuration profiles against a live Manager.
type ProfileManager struct {
	manager *Manager
}

// NewProfileManager creates a new profile manager.
func NewProfileManager(manager *Manager) *ProfileManager {
	return &ProfileManager{manager: manager}
}

// ListProfiles returns all available profile names.
func (pm *ProfileManager) ListProfiles() ([]string, error) {
	entries, err := profilesFS.ReadDir("profiles")
	if err != nil {
		return nil, fmt.Errorf("reading profiles directory: %w", err)
	}

	var profiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".yaml") {
			profiles = append(profiles, strings.TrimSuffix(entry.Name(), ".yaml"))
		}
	}

	return profiles, nil
}

// LoadProfile loads a profile by name.
func (pm *ProfileManager) LoadProfile(profileName string) (*Config, error) {
	return LoadProfile(profileName)
}

// ApplyProfile applies a named profile over the current configuration.
func (pm *ProfileManager) ApplyProfile(profileName string) error {
	profile, err := LoadProfile(profileName)
	if err != nil {
		return err
	}

	current := pm.manager.Get()
	merged := MergeConfigs(current, profile)

	return pm.manager.Update(func(cfg *Config) {
		*cfg = *merged
	})
}

// CompareProfiles compares two profiles and returns their differences.
func (pm *ProfileManager) CompareProfiles(profile1, profile2 string) (map[string]interface{}, error) {
	cfg1, err := LoadProfile(profile1)
	if err != nil {
		return nil, fmt.Errorf("loading profile %s: %w", profile1, err)
	}

	cfg2, err := LoadProfile(profile2)
	if err != nil {
		return nil, fmt.Errorf("loading profile %s: %w", profile2, err)
	}

	differences := make(map[string]interface{})

	if cfg1.Selection.DefaultIndirectSelection != cfg2.Selection.DefaultIndirectSelection {
		differences["selection.default_indirect_selection"] = map[string]string{
			profile1: cfg1.Selection.DefaultIndirectSelection,
			profile2: cfg2.Selection.DefaultIndirectSelection,
		}
	}

	if !stringSliceEqual(cfg1.Selection.DefaultResourceTypes, cfg2.Selection.DefaultResourceTypes) {
		differences["selection.default_resource_types"] = map[string][]string{
			profile1: cfg1.Selection.DefaultResourceTypes,
			profile2: cfg2.Selection.DefaultResourceTypes,
		}
	}

	if cfg1.Selection.GlobCaseSensitive != cfg2.Selection.GlobCaseSensitive {
		differences["selection.glob_case_sensitive"] = map[string]bool{
			profile1: cfg1.Selection.GlobCaseSensitive,
			profile2: cfg2.Selection.GlobCaseSensitive,
		}
	}

	if cfg1.Logging.Level != cfg2.Logging.Level {
		differences["logging.level"] = map[string]string{
			profile1: cfg1.Logging.Level,
			profile2: cfg2.Logging.Level,
		}
	}

	return differences, nil
}

// RecommendProfile recommends a profile based on run characteristics.
func (pm *ProfileManager) RecommendProfile(characteristics ProfileCharacteristics) (string, error) {
	profiles, err := pm.ListProfiles()
	if err != nil {
		return "", err
	}

	bestProfile := "default"
	bestScore := 0

	for _, profile := range profiles {
		score := scoreProfile(profile, characteristics)
		if score > bestScore {
			bestScore = score
			bestProfile = profile
		}
	}

	return bestProfile, nil
}

// ProfileCharacteristics describes the run a profile is being picked for:
// a build/test invocation in a dbt-like project has a far smaller
// "workload" shape than graft's document-size/concurrency axes, so the
// selector domain's characteristics are graph size, state availability,
// and whether the run is unattended CI.
type ProfileCharacteristics struct {
	GraphSize       GraphSize
	StateAvailable  bool
	CI              bool
	FrequentReloads bool
}

// GraphSize buckets the number of nodes in the parsed graph.
type GraphSize string

const (
	GraphSizeSmall GraphSize = "small" // < 100 nodes
	GraphSizeLarge GraphSize = "large" // >= 100 nodes
)

// scoreProfile scores how well a profile matches the characteristics.
func scoreProfile(profileName string, c ProfileCharacteristics) int {
	score := 0

	switch profileName {
	case "ci":
		if c.CI {
			score += 3
		}
		if c.StateAvailable {
			score += 2
		}
		if c.GraphSize == GraphSizeLarge {
			score += 1
		}

	case "incremental":
		if c.StateAvailable && !c.CI {
			score += 3
		}
		if c.FrequentReloads {
			score += 2
		}

	case "preview":
		if c.FrequentReloads && !c.CI {
			score += 2
		}
		if c.GraphSize == GraphSizeSmall {
			score += 1
		}

	case "default":
		score = 1
	}

	return score
}

// GetCurrentProfile returns the name of the currently active profile.
func (pm *ProfileManager) GetCurrentProfile() string {
	return pm.manager.Get().Profile
}

// CreateCustomProfile creates a custom profile based on the current
// configuration.
func (pm *ProfileManager) CreateCustomProfile(name string) (*Config, error) {
	current := pm.manager.Get()

	custom := *current
	custom.Profile = name
	custom.Version = "custom"

	return &custom, nil
}

// GetDefaultProfiles returns the built-in profiles in Go form, with the same
// values as the embedded profiles/*.yaml files; LoadProfile reads the
// embedded files, not this map.
func GetDefaultProfiles() map[string]*Config {
	return map[string]*Config{
		"default": {
			Version: "1.0",
			Profile: "default",
			Selection: SelectionConfig{
				DefaultIndirectSelection: "eager",
				GlobCaseSensitive:        true,
			},
			Logging: LoggingConfig{
				Level:       "info",
				Format:      "text",
				Output:      "stderr",
				EnableColor: true,
			},
			Features: make(map[string]bool),
		},

		"ci": {
			Version: "1.0",
			Profile: "ci",
			Selection: SelectionConfig{
				DefaultIndirectSelection: "buildable",
				GlobCaseSensitive:        true,
			},
			Logging: LoggingConfig{
				Level:       "info",
				Format:      "json",
				Output:      "stdout",
				EnableColor: false,
			},
			Features: make(map[string]bool),
		},

		"incremental": {
			Version: "1.0",
			Profile: "incremental",
			Selection: SelectionConfig{
				DefaultIndirectSelection: "cautious",
				PreviousStateFile:        "target/previous_graph.json",
				GlobCaseSensitive:        true,
			},
			Logging: LoggingConfig{
				Level:       "info",
				Format:      "text",
				Output:      "stderr",
				EnableColor: true,
			},
			Features: make(map[string]bool),
		},

		"preview": {
			Version: "1.0",
			Profile: "preview",
			Selection: SelectionConfig{
				DefaultIndirectSelection: "empty",
				GlobCaseSensitive:        true,
			},
			Logging: LoggingConfig{
				Level:       "warn",
				Format:      "text",
				Output:      "stderr",
				EnableColor: true,
			},
			Features: make(map[string]bool),
		},
	}
}
