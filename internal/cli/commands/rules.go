package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leaplint/internal/cli/output"
	"github.com/leapstack-labs/leaplint/pkg/core"
	"github.com/leapstack-labs/leaplint/pkg/lint"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Group   string // Filter by group
	Verbose bool   // Show full documentation
	Format  string // Output format
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List available lint rules",
		Long: `List all available lint rules with their documentation.

Rules are organized by group (e.g., possible-errors).
Use --verbose to include rationale in the listing.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # List all rules
  leaplint rules

  # Show details for a specific rule
  leaplint rules no-control-regex

  # List rules in the possible-errors group
  leaplint rules --group possible-errors

  # Output as JSON
  leaplint rules --format json`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return completeRuleIDs(cmd, args, toComplete)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by group")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "V", false, "Show full documentation")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")

	return cmd
}

func rulesRenderer(cmd *cobra.Command, opts *RulesOptions) *output.Renderer {
	r := NewCommandContextWithoutEngine(cmd).Renderer
	if opts.Format != "" {
		r = newRenderer(cmd, opts.Format)
	}
	return r
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	r := rulesRenderer(cmd, opts)

	// AllRules is sorted by ID
	rules := lint.AllRules()
	if opts.Group != "" {
		var filtered []core.RuleInfo
		for _, ri := range rules {
			if ri.Group == opts.Group {
				filtered = append(filtered, ri)
			}
		}
		rules = filtered
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return listRulesJSON(r, rules)
	case output.ModeMarkdown:
		return listRulesMarkdown(r, rules, opts.Verbose)
	default:
		return listRulesText(r, rules, opts.Verbose)
	}
}

func showRule(cmd *cobra.Command, ruleID string, opts *RulesOptions) error {
	r := rulesRenderer(cmd, opts)

	rule, ok := lint.GetRuleByID(ruleID)
	if !ok {
		return fmt.Errorf("rule %q not found", ruleID)
	}
	info := lint.GetRuleInfo(rule)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(info)
	case output.ModeMarkdown:
		return showRuleMarkdown(r, &info)
	default:
		return showRuleText(r, &info)
	}
}

// rulesTable builds the listing table shared by text and markdown output.
func rulesTable(rules []core.RuleInfo, verbose bool) table.Writer {
	t := table.NewWriter()
	header := table.Row{"Rule", "Group", "Severity", "Description"}
	if verbose {
		header = append(header, "Rationale")
	}
	t.AppendHeader(header)

	for _, ri := range rules {
		row := table.Row{ri.ID, ri.Group, ri.DefaultSeverity.String(), ri.Description}
		if verbose {
			row = append(row, truncateOneLine(ri.Rationale, 80))
		}
		t.AppendRow(row)
	}
	return t
}

// listRulesText outputs rules as a styled table.
func listRulesText(r *output.Renderer, rules []core.RuleInfo, verbose bool) error {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("Lint Rules (%d)", len(rules))))
	r.Println("")

	t := rulesTable(rules, verbose)
	t.SetStyle(table.StyleLight)
	if !r.IsTTY() {
		t.Style().Format.Header = text.FormatDefault
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Transformer: func(val interface{}) string {
			sev, _ := core.ParseSeverity(fmt.Sprint(val))
			return severityStyle(styles, sev).Render(fmt.Sprint(val))
		}},
		{Number: 4, WidthMax: 60},
	})
	r.Println(t.Render())

	r.Println("")
	r.Println(styles.Muted.Render("Use 'leaplint rules <rule-id>' for detailed documentation"))
	r.Println("")

	return nil
}

// listRulesMarkdown outputs rules as a markdown table.
func listRulesMarkdown(r *output.Renderer, rules []core.RuleInfo, verbose bool) error {
	r.Println("# Lint Rules")
	r.Println("")
	r.Println(rulesTable(rules, verbose).RenderMarkdown())
	r.Println("")
	return nil
}

// RulesJSONOutput is the JSON output structure for rules listing.
type RulesJSONOutput struct {
	Rules []core.RuleInfo `json:"rules"`
	Count int             `json:"count"`
}

// listRulesJSON outputs rules in JSON format.
func listRulesJSON(r *output.Renderer, rules []core.RuleInfo) error {
	if rules == nil {
		rules = []core.RuleInfo{}
	}
	return r.JSON(RulesJSONOutput{Rules: rules, Count: len(rules)})
}

// showRuleText displays detailed rule info in text format.
func showRuleText(r *output.Renderer, rule *core.RuleInfo) error {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("%s - %s", rule.ID, rule.Name)))
	r.Println("")

	r.Printf("  %s: %s\n", styles.Bold.Render("Group"), rule.Group)
	r.Printf("  %s: %s\n", styles.Bold.Render("Severity"), severityStyle(styles, rule.DefaultSeverity).Render(rule.DefaultSeverity.String()))
	if len(rule.NodeKinds) > 0 {
		r.Printf("  %s: %s\n", styles.Bold.Render("Checks"), strings.Join(rule.NodeKinds, ", "))
	}
	r.Printf("  %s: %s\n", styles.Bold.Render("Docs"), lint.BuildDocURL(rule.ID))
	r.Println("")

	r.Println(styles.Bold.Render("Description"))
	r.Println("  " + rule.Description)
	r.Println("")

	if rule.Rationale != "" {
		r.Println(styles.Bold.Render("Why This Matters"))
		r.Println("  " + rule.Rationale)
		r.Println("")
	}

	if rule.BadExample != "" {
		r.Println(styles.Bold.Render("Bad Example"))
		for _, line := range strings.Split(rule.BadExample, "\n") {
			r.Println(styles.Muted.Render("  " + line))
		}
		r.Println("")
	}

	if rule.GoodExample != "" {
		r.Println(styles.Bold.Render("Good Example"))
		for _, line := range strings.Split(rule.GoodExample, "\n") {
			r.Println(styles.Success.Render("  " + line))
		}
		r.Println("")
	}

	if rule.Fix != "" {
		r.Println(styles.Bold.Render("How to Fix"))
		r.Println("  " + rule.Fix)
		r.Println("")
	}

	if len(rule.ConfigKeys) > 0 {
		r.Println(styles.Bold.Render("Configuration"))
		r.Printf("  Options: %s\n", strings.Join(rule.ConfigKeys, ", "))
		r.Println("")
	}

	return nil
}

// showRuleMarkdown displays detailed rule info in markdown format.
func showRuleMarkdown(r *output.Renderer, rule *core.RuleInfo) error {
	r.Printf("# %s - %s\n\n", rule.ID, rule.Name)
	r.Printf("**Group:** %s | **Severity:** `%s`\n\n", rule.Group, rule.DefaultSeverity.String())
	r.Println(rule.Description)
	r.Println("")

	if rule.Rationale != "" {
		r.Println("## Why This Matters")
		r.Println("")
		r.Println(rule.Rationale)
		r.Println("")
	}

	if rule.BadExample != "" {
		r.Println("## Bad Example")
		r.Println("")
		r.Println("```js")
		r.Println(rule.BadExample)
		r.Println("```")
		r.Println("")
	}

	if rule.GoodExample != "" {
		r.Println("## Good Example")
		r.Println("")
		r.Println("```js")
		r.Println(rule.GoodExample)
		r.Println("```")
		r.Println("")
	}

	if rule.Fix != "" {
		r.Println("## How to Fix")
		r.Println("")
		r.Println(rule.Fix)
		r.Println("")
	}

	if len(rule.ConfigKeys) > 0 {
		r.Println("## Configuration")
		r.Println("")
		r.Printf("Options: `%s`\n", strings.Join(rule.ConfigKeys, "`, `"))
		r.Println("")
	}

	return nil
}

func severityStyle(styles *output.Styles, sev core.Severity) lipgloss.Style {
	switch sev {
	case core.SeverityError:
		return styles.Error
	case core.SeverityWarning:
		return styles.Warning
	case core.SeverityInfo:
		return styles.Info
	default:
		return styles.Muted
	}
}

func truncateOneLine(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
