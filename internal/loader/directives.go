package loader

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leaplint/pkg/core"
)

// Directives are per-file lint settings declared in a leading
// /*--- ... ---*/ block comment:
//
//	/*---
//	disable: [no-control-regex]
//	severity:
//	  some-rule: warning
//	---*/
type Directives struct {
	Disable  []string          `yaml:"disable"`
	Severity map[string]string `yaml:"severity"`
}

// IsEmpty reports whether the directives change nothing.
func (d *Directives) IsEmpty() bool {
	return d == nil || (len(d.Disable) == 0 && len(d.Severity) == 0)
}

// directivePattern matches a /*--- ... ---*/ block at the top of a file.
var directivePattern = regexp.MustCompile(`(?s)^(?:#![^\n]*\n)?\s*/\*---\s*\n(.*?)\s*---\*/`)

var knownDirectiveFields = map[string]bool{
	"disable":  true,
	"severity": true,
}

// ExtractDirectives parses the directive block of content, if any.
// The block is a comment, so content itself is left untouched.
func ExtractDirectives(content string) (*Directives, bool, error) {
	matches := directivePattern.FindStringSubmatch(content)
	if len(matches) < 2 {
		return &Directives{}, false, nil
	}
	yamlContent := matches[1]
	line := strings.Count(content[:strings.Index(content, "/*---")], "\n") + 1

	var rawMap map[string]any
	if err := yaml.Unmarshal([]byte(yamlContent), &rawMap); err != nil {
		return nil, true, &DirectiveParseError{Line: line, Message: fmt.Sprintf("invalid YAML: %v", err)}
	}
	for field := range rawMap {
		if !knownDirectiveFields[field] {
			return nil, true, &UnknownFieldError{Field: field}
		}
	}

	var d Directives
	if err := yaml.Unmarshal([]byte(yamlContent), &d); err != nil {
		return nil, true, &DirectiveParseError{Line: line, Message: fmt.Sprintf("failed to parse directives: %v", err)}
	}

	for rule, level := range d.Severity {
		if strings.EqualFold(level, "off") {
			continue
		}
		if _, ok := core.ParseSeverity(level); !ok {
			return nil, true, &DirectiveParseError{
				Line:    line,
				Message: fmt.Sprintf("invalid severity %q for %s, must be one of: error, warning, info, hint, off", level, rule),
			}
		}
	}

	return &d, true, nil
}

// DirectiveParseError represents a malformed directive block.
type DirectiveParseError struct {
	File    string
	Line    int
	Message string
}

func (e *DirectiveParseError) Error() string {
	if e.File != "" {
		if e.Line > 0 {
			return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
		}
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	return e.Message
}

// UnknownFieldError represents an error for unknown directive fields.
type UnknownFieldError struct {
	File  string
	Field string
}

func (e *UnknownFieldError) Error() string {
	msg := fmt.Sprintf("unknown field %q in directives, expected \"disable\" or \"severity\"", e.Field)
	if e.File != "" {
		return fmt.Sprintf("%s: %s", e.File, msg)
	}
	return msg
}
