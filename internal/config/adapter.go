package config

import (
	"github.com/wayneeseguin/nodeselect/pkg/selector"
)

// ToDefaultIndirectSelection resolves the configured default indirect-
// selection mode, used to build a selector.NodeSelector via
// selector.BuildWithDefaultIndirect.
func (c *Config) ToDefaultIndirectSelection() selector.IndirectSelection {
	mode, ok := selector.ParseIndirectSelection(c.Selection.DefaultIndirectSelection)
	if !ok {
		return selector.IndirectEager
	}
	return mode
}

// ToResourceTypeFilter resolves the configured default resource-type
// filter. An empty DefaultResourceTypes list means "all" (spec.md §4.8).
func (c *Config) ToResourceTypeFilter() (selector.ResourceTypeFilter, error) {
	if len(c.Selection.DefaultResourceTypes) == 0 {
		return selector.AllResourceTypes(), nil
	}
	return selector.SomeResourceTypes(c.Selection.DefaultResourceTypes...)
}

// FromSelectorParams creates a Config from selector runtime parameters, the
// inverse of ToDefaultIndirectSelection/ToResourceTypeFilter.
func FromSelectorParams(mode selector.IndirectSelection, resourceTypes []string) *Config {
	cfg := DefaultConfig()
	cfg.Selection.DefaultIndirectSelection = indirectSelectionName(mode)
	cfg.Selection.DefaultResourceTypes = resourceTypes
	return cfg
}

func indirectSelectionName(mode selector.IndirectSelection) string {
	switch mode {
	case selector.IndirectEager:
		return "eager"
	case selector.IndirectCautious:
		return "cautious"
	case selector.IndirectBuildable:
		return "buildable"
	case selector.IndirectEmpty:
		return "empty"
	}
	return "eager"
}

// GetFeature returns whether a feature is enabled.
func (c *Config) GetFeature(name string) bool {
	if c.Features == nil {
		return false
	}
	return c.Features[name]
}

// SetFeature sets a feature flag.
func (c *Config) SetFeature(name string, enabled bool) {
	if c.Features == nil {
		c.Features = make(map[string]bool)
	}
	c.Features[name] = enabled
}
