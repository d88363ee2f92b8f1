package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/core"
	"github.com/leapstack-labs/leaplint/pkg/lint"
)

var validOutputs = []string{"auto", "text", "markdown", "json"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if !isValidOutput(c.OutputFormat) {
		errs = append(errs, fmt.Errorf("invalid output %q (expected one of %s)",
			c.OutputFormat, strings.Join(validOutputs, ", ")))
	}
	if _, ok := parseLogLevel(c.LogLevel); !ok {
		errs = append(errs, fmt.Errorf("invalid log_level %q (expected debug, info, warn or error)", c.LogLevel))
	}
	if c.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency))
	}
	if c.Lint != nil {
		for id, sev := range c.Lint.Severity {
			if strings.EqualFold(strings.TrimSpace(sev), "off") {
				continue
			}
			if _, ok := core.ParseSeverity(sev); !ok {
				errs = append(errs, fmt.Errorf("lint.severity.%s: unknown severity %q", id, sev))
			}
		}
	}

	return errors.Join(errs...)
}

// ValidateRules checks lint rule references and options against the given rules.
// Unknown rule IDs in lint.rules are rejected, as are option keys a rule does
// not declare.
func (c *Config) ValidateRules(rules []lint.NodeRule) error {
	return c.LintSettings().ValidateRuleOptions(rules)
}

// LintSettings converts the lint section into an analyzer configuration.
// A severity of "off" disables the rule.
func (c *Config) LintSettings() *lint.Config {
	lc := lint.NewConfig()
	if c == nil || c.Lint == nil {
		return lc
	}

	for _, id := range c.Lint.Disabled {
		lc.Disable(strings.TrimSpace(id))
	}
	for id, sev := range c.Lint.Severity {
		if strings.EqualFold(strings.TrimSpace(sev), "off") {
			lc.Disable(id)
			continue
		}
		if s, ok := core.ParseSeverity(sev); ok {
			lc.SetSeverity(id, s)
		}
	}
	for id, opts := range c.Lint.Rules {
		lc.SetRuleOptions(id, opts)
	}
	return lc
}

func isValidOutput(mode string) bool {
	for _, m := range validOutputs {
		if strings.EqualFold(mode, m) {
			return true
		}
	}
	return false
}
