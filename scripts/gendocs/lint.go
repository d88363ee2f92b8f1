package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/leaplint/pkg/core"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	_ "github.com/leapstack-labs/leaplint/pkg/lint/rules"
)

// groupDescriptions provides human-readable descriptions for rule groups.
var groupDescriptions = map[string]string{
	"possible-errors": "Code that is very likely a mistake or will behave unexpectedly at runtime.",
}

// generateLintDocs writes the rule index and one page per rule.
func generateLintDocs(outDir string) error {
	log.Printf("Generating lint docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	rules := lint.AllRules()

	if err := generateLintIndex(outDir, rules); err != nil {
		return err
	}
	log.Printf("  Generated index.md")

	for i := range rules {
		if err := generateRulePage(outDir, &rules[i]); err != nil {
			return fmt.Errorf("failed to generate page for %s: %w", rules[i].ID, err)
		}
		log.Printf("  Generated %s.md", rules[i].ID)
	}

	return nil
}

// generateLintIndex generates the rules overview page.
func generateLintIndex(outDir string, rules []core.RuleInfo) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Rules", "Lint rules for JavaScript and TypeScript")
	w.GeneratedMarker()

	w.Header(1, "Rules")
	w.Paragraph(fmt.Sprintf("leaplint ships **%d rules**. Every rule can be disabled or re-graded in `leaplint.yaml`.", len(rules)))

	w.Header(2, "Severity Levels")
	w.Table(
		[]string{"Severity", "Description"},
		[][]string{
			{InlineCode("error"), "Fails the run"},
			{InlineCode("warning"), "Reported; fails only past --max-warnings"},
			{InlineCode("info"), "Informational feedback"},
			{InlineCode("hint"), "Suggestion for improvement"},
			{InlineCode("off"), "Rule is disabled"},
		},
	)

	w.Header(2, "Configuration")
	w.Paragraph("Rules can be configured in `leaplint.yaml`:")
	w.CodeBlock("yaml", `lint:
  disabled:
    - no-control-regex
  severity:
    no-control-regex: warning`)
	w.Paragraph("A single file can override its settings with a leading directive block:")
	w.CodeBlock("js", `/*---
disable: [no-control-regex]
---*/`)

	grouped := groupRules(rules)
	groups := make([]string, 0, len(grouped))
	for g := range grouped {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	for _, group := range groups {
		w.Line(fmt.Sprintf("## %s {#%s}", titleCase(group), group))
		w.Newline()
		if desc, ok := groupDescriptions[group]; ok {
			w.Paragraph(desc)
		}

		var rows [][]string
		for _, ri := range grouped[group] {
			rows = append(rows, []string{
				fmt.Sprintf("[%s](/rules/%s)", InlineCode(ri.ID), ri.ID),
				InlineCode(ri.DefaultSeverity.String()),
				cleanDescription(ri.Description),
			})
		}
		w.Table([]string{"Rule", "Severity", "Description"}, rows)
	}

	return os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600)
}

// generateRulePage writes the documentation page of one rule.
func generateRulePage(outDir string, ri *core.RuleInfo) error {
	w := NewMarkdownWriter()

	w.Frontmatter(ri.ID, ri.Description)
	w.GeneratedMarker()
	writeRuleDoc(w, ri)

	return os.WriteFile(filepath.Join(outDir, ri.ID+".md"), w.Bytes(), 0600)
}

// groupRules organizes rules by their Group field, sorted by ID.
func groupRules(rules []core.RuleInfo) map[string][]core.RuleInfo {
	grouped := make(map[string][]core.RuleInfo)
	for _, r := range rules {
		grouped[r.Group] = append(grouped[r.Group], r)
	}
	for group := range grouped {
		sort.Slice(grouped[group], func(i, j int) bool {
			return grouped[group][i].ID < grouped[group][j].ID
		})
	}
	return grouped
}

// titleCase turns "possible-errors" into "Possible Errors".
func titleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '_' })
	return cases.Title(language.English).String(strings.Join(words, " "))
}

// writeRuleDoc writes detailed documentation for a single rule.
func writeRuleDoc(w *MarkdownWriter, ri *core.RuleInfo) {
	w.Header(1, ri.ID)

	w.Line(fmt.Sprintf("**Group:** %s | **Severity:** %s | **Name:** %s",
		ri.Group, InlineCode(ri.DefaultSeverity.String()), InlineCode(ri.Name)))
	w.Newline()

	w.Paragraph(cleanDescription(ri.Description))

	if len(ri.NodeKinds) > 0 {
		w.Paragraph("Checks: " + InlineCode(strings.Join(ri.NodeKinds, ", ")))
	}

	if ri.Rationale != "" {
		w.Header(2, "Why This Matters")
		w.Paragraph(ri.Rationale)
	}

	if ri.BadExample != "" {
		w.Header(2, "Bad")
		w.CodeBlock("js", ri.BadExample)
	}

	if ri.GoodExample != "" {
		w.Header(2, "Good")
		w.CodeBlock("js", ri.GoodExample)
	}

	if ri.Fix != "" {
		w.Header(2, "How to Fix")
		w.Paragraph(ri.Fix)
	}

	if len(ri.ConfigKeys) > 0 {
		w.Header(2, "Configuration")
		w.Paragraph(fmt.Sprintf("This rule accepts the following configuration options: %s",
			InlineCode(strings.Join(ri.ConfigKeys, ", "))))
	}
}
