package lint

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/cespare/xxhash/v2"

	"github.com/leapstack-labs/leaplint/pkg/core"
)

// Configuration errors.
var (
	ErrUnknownRule   = errors.New("unknown rule")
	ErrUnknownOption = errors.New("unknown rule option")
)

// Config controls which rules are enabled, their severity and their options.
type Config struct {
	// DisabledRules contains rule IDs to skip
	DisabledRules map[string]bool

	// SeverityOverrides changes the default severity of rules
	SeverityOverrides map[string]core.Severity

	// RuleOptions holds per-rule options keyed by rule ID
	RuleOptions map[string]map[string]any
}

// NewConfig creates a default configuration with all rules enabled.
func NewConfig() *Config {
	return &Config{
		DisabledRules:     make(map[string]bool),
		SeverityOverrides: make(map[string]core.Severity),
		RuleOptions:       make(map[string]map[string]any),
	}
}

// IsDisabled returns true if the rule should be skipped.
func (c *Config) IsDisabled(ruleID string) bool {
	if c == nil {
		return false
	}
	return c.DisabledRules[ruleID]
}

// GetSeverity returns the severity for a rule, applying any override.
func (c *Config) GetSeverity(ruleID string, defaultSeverity core.Severity) core.Severity {
	if c != nil {
		if sev, ok := c.SeverityOverrides[ruleID]; ok {
			return sev
		}
	}
	return defaultSeverity
}

// GetRuleOptions returns the options configured for a rule, or nil.
func (c *Config) GetRuleOptions(ruleID string) map[string]any {
	if c == nil {
		return nil
	}
	return c.RuleOptions[ruleID]
}

// Disable disables a rule by ID.
func (c *Config) Disable(ruleID string) *Config {
	c.DisabledRules[ruleID] = true
	return c
}

// SetSeverity overrides the severity for a rule.
func (c *Config) SetSeverity(ruleID string, severity core.Severity) *Config {
	c.SeverityOverrides[ruleID] = severity
	return c
}

// SetRuleOptions replaces the options for a rule.
func (c *Config) SetRuleOptions(ruleID string, opts map[string]any) *Config {
	c.RuleOptions[ruleID] = opts
	return c
}

// ValidateRuleOptions checks every configured option against the keys its
// rule declares. A rule with no ConfigKeys accepts no options at all.
func (c *Config) ValidateRuleOptions(rules []NodeRule) error {
	if c == nil {
		return nil
	}

	byID := make(map[string]NodeRule, len(rules))
	for _, r := range rules {
		byID[r.ID()] = r
	}

	var errs []error
	for _, id := range sortedKeys(c.RuleOptions) {
		rule, ok := byID[id]
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrUnknownRule, id))
			continue
		}
		allowed := rule.ConfigKeys()
		for _, key := range sortedKeys(c.RuleOptions[id]) {
			if !slices.Contains(allowed, key) {
				errs = append(errs, fmt.Errorf("%s: %w %q", id, ErrUnknownOption, key))
			}
		}
	}
	return errors.Join(errs...)
}

// Fingerprint returns a stable hash of the configuration together with the
// IDs of rules. Cached results are only reused while the fingerprint matches.
func (c *Config) Fingerprint(rules []NodeRule) string {
	d := xxhash.New()

	ids := make([]string, 0, len(rules))
	for _, r := range rules {
		ids = append(ids, r.ID())
	}
	sort.Strings(ids)
	for _, id := range ids {
		_, _ = fmt.Fprintf(d, "rule:%s\n", id)
	}

	if c != nil {
		for _, id := range sortedKeys(c.DisabledRules) {
			if c.DisabledRules[id] {
				_, _ = fmt.Fprintf(d, "off:%s\n", id)
			}
		}
		for _, id := range sortedKeys(c.SeverityOverrides) {
			_, _ = fmt.Fprintf(d, "sev:%s=%s\n", id, c.SeverityOverrides[id])
		}
		for _, id := range sortedKeys(c.RuleOptions) {
			opts := c.RuleOptions[id]
			for _, key := range sortedKeys(opts) {
				_, _ = fmt.Fprintf(d, "opt:%s.%s=%v\n", id, key, opts[key])
			}
		}
	}

	return fmt.Sprintf("%016x", d.Sum64())
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
