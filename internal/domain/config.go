package domain

import (
	"errors"
	"fmt"
)

// ErrMissingDirective is returned at setup when require-directive is enabled
// without a directive to insert.
var ErrMissingDirective = errors.New("missing required directive")

// ValidModes enumerates blank-line modes accepted in configuration.
var ValidModes = []string{"always", "never"}

// ProjectConfig holds configuration loaded from .usedirective.yaml.
type ProjectConfig struct {
	RequireDirective RequireDirectiveConfig `yaml:"require_directive"          json:"require_directive"`
	BlankLine        BlankLineConfig        `yaml:"blank_line_after_directive" json:"blank_line_after_directive"`

	// Dir is the directory of the file the config was loaded from, empty for
	// defaults. Ignore patterns are relative to it.
	Dir string `yaml:"-" json:"-"`
}

// RequireDirectiveConfig configures the require-directive rule.
// Enabled is a pointer so an absent key keeps the rule on.
type RequireDirectiveConfig struct {
	Enabled            *bool    `yaml:"enabled,omitempty"              json:"enabled,omitempty"`
	Directive          string   `yaml:"directive"                      json:"directive"`
	Ignore             []string `yaml:"ignore,omitempty"               json:"ignore,omitempty"`
	IgnoredDirectives  []string `yaml:"ignored_directives,omitempty"   json:"ignored_directives,omitempty"`
	RequireExact       bool     `yaml:"require_exact,omitempty"        json:"require_exact,omitempty"`
	RequireOneOf       []string `yaml:"require_one_of,omitempty"       json:"require_one_of,omitempty"`
	Extensions         []string `yaml:"extensions,omitempty"           json:"extensions,omitempty"`
	IncludeNodeModules bool     `yaml:"include_node_modules,omitempty" json:"include_node_modules,omitempty"`
}

// BlankLineConfig configures the blank-line-after-directive rule.
type BlankLineConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	Mode    string `yaml:"mode,omitempty"    json:"mode,omitempty"`
}

// DefaultConfig returns a config with both rules enabled and no directive set.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{}
}

// IsEnabled reports whether the rule is on; absent means on.
func (c RequireDirectiveConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// IsEnabled reports whether the rule is on; absent means on.
func (c BlankLineConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// Validate checks the config for invalid values and returns a descriptive error.
// A missing directive is reported separately when rules are built so that a
// --directive flag can still supply it.
func (c ProjectConfig) Validate() error {
	// 1. mode must be known or empty
	if m := c.BlankLine.Mode; m != "" && !isValidMode(m) {
		return fmt.Errorf("unknown mode %q in blank_line_after_directive (valid: always, never)", m)
	}

	// 2. list entries must not be empty strings
	lists := map[string][]string{
		"ignore":             c.RequireDirective.Ignore,
		"ignored_directives": c.RequireDirective.IgnoredDirectives,
		"require_one_of":     c.RequireDirective.RequireOneOf,
		"extensions":         c.RequireDirective.Extensions,
	}
	for name, values := range lists {
		for i, v := range values {
			if v == "" {
				return fmt.Errorf("require_directive.%s[%d] must not be empty", name, i)
			}
		}
	}

	return nil
}

// ConfigOverrides holds command-line values layered on top of the file.
type ConfigOverrides struct {
	Directive string `json:"directive,omitempty"`
	Mode      string `json:"mode,omitempty"`
}

// WithOverrides returns a copy of c with non-empty overrides applied.
func (c ProjectConfig) WithOverrides(o ConfigOverrides) ProjectConfig {
	if o.Directive != "" {
		c.RequireDirective.Directive = o.Directive
	}
	if o.Mode != "" {
		c.BlankLine.Mode = o.Mode
	}
	return c
}

func isValidMode(m string) bool {
	for _, v := range ValidModes {
		if v == m {
			return true
		}
	}
	return false
}
