package core

// LintConfig holds lint rule configuration as it appears in leaplint.yaml.
type LintConfig struct {
	// Disabled contains rule IDs to disable
	Disabled []string `koanf:"disabled" yaml:"disabled,omitempty" toml:"disabled,omitempty"`

	// Severity maps rule ID to severity override (error, warning, info, hint, off)
	Severity map[string]string `koanf:"severity" yaml:"severity,omitempty" toml:"severity,omitempty"`

	// Rules contains rule-specific options
	Rules map[string]RuleOptions `koanf:"rules" yaml:"rules,omitempty" toml:"rules,omitempty"`
}

// RuleOptions holds rule-specific configuration options.
type RuleOptions map[string]any

// CacheConfig controls the on-disk result cache.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled" yaml:"enabled" toml:"enabled"`
	Path    string `koanf:"path" yaml:"path" toml:"path"`
}
