package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/leaplint/internal/cli"
)

// envKeys are the configuration keys listed on the CLI overview page.
var envKeys = []string{"output", "log_level", "concurrency", "cache.enabled"}

// exitCodes mirrors exitCode in cmd/leaplint.
var exitCodes = [][]string{
	{"0", "Every file linted without error-severity diagnostics"},
	{"1", "Error-severity diagnostics were reported, or warnings exceeded `--max-warnings`"},
	{"2", "leaplint could not run: bad flags, bad configuration, no files matched"},
}

// generateCLIDocs writes an overview page plus one page per command.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	root := cli.NewRootCmd()
	pages := map[string]*MarkdownWriter{"index": cliOverview(root)}
	for _, cmd := range documentedCommands(root) {
		pages[cmd.Name()] = commandPage(cmd)
	}

	for name, page := range pages {
		if err := os.WriteFile(filepath.Join(outDir, name+".md"), page.Bytes(), 0600); err != nil {
			return fmt.Errorf("failed to write %s.md: %w", name, err)
		}
		log.Printf("  Generated %s.md", name)
	}
	return nil
}

// documentedCommands returns the user-facing subcommands of parent.
func documentedCommands(parent *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, cmd := range parent.Commands() {
		if !cmd.IsAvailableCommand() || cmd.Name() == "help" {
			continue
		}
		out = append(out, cmd)
	}
	return out
}

func cliOverview(root *cobra.Command) *MarkdownWriter {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", root.Short)
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph("leaplint checks JavaScript and TypeScript for suspicious regular expressions. " +
		"Paths may be files, directories or glob patterns; " +
		"directories are searched for " + InlineCode(".js") + ", " + InlineCode(".jsx") + ", " +
		InlineCode(".ts") + " and " + InlineCode(".tsx") + " sources.")
	w.CodeBlock("bash", "go install github.com/leapstack-labs/leaplint/cmd/leaplint@latest\nleaplint lint src/")

	w.Header(2, "Commands")
	var rows [][]string
	for _, cmd := range documentedCommands(root) {
		rows = append(rows, []string{
			fmt.Sprintf("[%s](/cli/%s)", InlineCode(cmd.Name()), cmd.Name()),
			cleanDescription(cmd.Short),
		})
	}
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Global Flags")
	flagTable(w, root.PersistentFlags())

	w.Header(2, "Configuration Sources")
	w.Paragraph("Later sources override earlier ones:")
	w.BulletList([]string{
		"Built-in defaults",
		"The nearest " + InlineCode("leaplint.yaml") + " or " + InlineCode("leaplint.toml") + ", or the file given by " + InlineCode("--config"),
		"Environment variables",
		"Command-line flags",
	})

	var envRows [][]string
	for _, key := range envKeys {
		envRows = append(envRows, []string{InlineCode(envVar(key)), fieldDescriptions[key]})
	}
	envRows = append(envRows, []string{InlineCode("NO_COLOR"), "Disable colored text output"})
	w.Table([]string{"Variable", "Effect"}, envRows)

	w.Header(2, "Exit Codes")
	var codeRows [][]string
	for _, row := range exitCodes {
		codeRows = append(codeRows, []string{InlineCode(row[0]), row[1]})
	}
	w.Table([]string{"Code", "Meaning"}, codeRows)

	return w
}

func commandPage(cmd *cobra.Command) *MarkdownWriter {
	w := NewMarkdownWriter()
	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, "leaplint "+cmd.Name())
	desc := cmd.Long
	if desc == "" {
		desc = cmd.Short
	}
	w.Paragraph(desc)

	w.CodeBlock("bash", usageLine(cmd))

	if len(cmd.Aliases) > 0 {
		aliases := make([]string, len(cmd.Aliases))
		for i, a := range cmd.Aliases {
			aliases[i] = InlineCode(a)
		}
		w.Paragraph("Aliases: " + strings.Join(aliases, ", "))
	}

	if subs := documentedCommands(cmd); len(subs) > 0 {
		w.Header(2, "Subcommands")
		for _, sub := range subs {
			w.Header(3, cmd.Name()+" "+sub.Name())
			w.Paragraph(cleanDescription(sub.Short))
			w.CodeBlock("bash", usageLine(sub))
			if sub.HasLocalFlags() {
				flagTable(w, sub.LocalFlags())
			}
		}
	}

	if cmd.HasLocalFlags() {
		w.Header(2, "Flags")
		flagTable(w, cmd.LocalFlags())
	}
	if cmd.HasInheritedFlags() {
		w.Paragraph("Global flags are listed in the [CLI reference](/cli/).")
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", cleanExample(cmd.Example))
	}
	return w
}

// usageLine renders the invocation of cmd from the binary name down.
func usageLine(cmd *cobra.Command) string {
	line := cmd.CommandPath()
	if cmd.HasAvailableSubCommands() {
		return line + " <subcommand>"
	}
	if _, args, ok := strings.Cut(cmd.Use, " "); ok {
		line += " " + args
	}
	if cmd.HasAvailableFlags() {
		line += " [flags]"
	}
	return line
}

func flagTable(w *MarkdownWriter, flags *pflag.FlagSet) {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		name := InlineCode("--" + f.Name)
		if f.Shorthand != "" {
			name = InlineCode("-"+f.Shorthand) + ", " + name
		}
		def := ""
		if f.DefValue != "" && f.DefValue != "[]" && f.DefValue != "false" {
			def = InlineCode(f.DefValue)
		}
		rows = append(rows, []string{name, f.Value.Type(), def, cleanDescription(f.Usage)})
	})
	w.Table([]string{"Flag", "Type", "Default", "Description"}, rows)
}

// cleanExample strips the indentation shared by every non-blank line.
func cleanExample(example string) string {
	lines := strings.Split(strings.Trim(example, "\n"), "\n")

	prefix := ""
	first := true
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first || len(indent) < len(prefix) {
			prefix, first = indent, false
		}
	}

	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, prefix)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
