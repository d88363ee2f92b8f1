package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/leapstack-labs/leaplint/internal/cli/config"
)

// generateSchemaDocs generates the configuration reference.
func generateSchemaDocs(outDir string) error {
	log.Printf("Generating schema docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := generateConfigurationDoc(outDir); err != nil {
		return fmt.Errorf("failed to generate configuration.md: %w", err)
	}
	log.Printf("  Generated configuration.md")

	return nil
}

// ConfigField represents a configuration key.
type ConfigField struct {
	Key         string
	Type        string
	Default     string
	Description string
}

var fieldDescriptions = map[string]string{
	"include":       "Glob patterns of files to lint",
	"exclude":       "Glob patterns of files and directories to skip",
	"output":        "Output format: auto, text, markdown, json",
	"verbose":       "Enable debug logging",
	"log_level":     "Log level: debug, info, warn, error",
	"concurrency":   "Files linted in parallel (0 = number of CPUs)",
	"cache.enabled": "Reuse results of unchanged files",
	"cache.path":    "Cache database, relative to the project root",
	"lint.disabled": "Rule IDs to disable",
	"lint.severity": "Per-rule severity: error, warning, info, hint, off",
	"lint.rules":    "Per-rule options",
}

var fieldDefaults = map[string]string{
	"output":      config.DefaultOutput,
	"log_level":   config.DefaultLogLevel,
	"concurrency": "0",
	"cache.path":  config.DefaultCacheFile,
}

// envVar returns the environment variable that sets a configuration key.
func envVar(key string) string {
	return "LEAPLINT_" + strings.ToUpper(strings.ReplaceAll(key, ".", "__"))
}

// getConfigSchema walks the koanf tags of config.Config.
func getConfigSchema() []ConfigField {
	var fields []ConfigField
	collectFields(reflect.TypeOf(config.Config{}), "", &fields)
	return fields
}

func collectFields(t reflect.Type, prefix string, out *[]ConfigField) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("koanf")
		if tag == "" || tag == "-" {
			continue
		}
		key := prefix + tag

		ft := f.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct {
			collectFields(ft, key+".", out)
			continue
		}

		*out = append(*out, ConfigField{
			Key:         key,
			Type:        typeName(ft),
			Default:     fieldDefaults[key],
			Description: fieldDescriptions[key],
		})
	}
}

func typeName(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Slice:
		return "[]" + typeName(t.Elem())
	case reflect.Map:
		return "map[" + typeName(t.Key()) + "]" + typeName(t.Elem())
	case reflect.Interface:
		return "any"
	default:
		return t.Kind().String()
	}
}

// generateConfigurationDoc generates the configuration reference page.
func generateConfigurationDoc(outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Configuration", "leaplint configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph("leaplint reads `leaplint.yaml`, `leaplint.yml` or `leaplint.toml` from the working directory or the closest parent directory (up to 10 levels). Relative paths are resolved against the directory holding the file.")

	w.Header(2, "Keys")
	var rows [][]string
	for _, f := range getConfigSchema() {
		def := "-"
		if f.Default != "" {
			def = InlineCode(f.Default)
		}
		rows = append(rows, []string{InlineCode(f.Key), f.Type, def, f.Description})
	}
	w.Table([]string{"Key", "Type", "Default", "Description"}, rows)

	w.Header(2, "Precedence")
	w.BulletList([]string{
		"Built-in defaults",
		"Configuration file",
		"Environment variables (" + InlineCode("LEAPLINT_") + " prefix, " + InlineCode("__") + " for nesting)",
		"Command-line flags",
	})

	w.Header(2, "Environment Variables")
	var envRows [][]string
	for _, f := range getConfigSchema() {
		if strings.HasPrefix(f.Key, "lint.") {
			continue
		}
		envRows = append(envRows, []string{InlineCode(envVar(f.Key)), InlineCode(f.Key)})
	}
	w.Table([]string{"Variable", "Key"}, envRows)

	w.Header(2, "Full Example")
	w.CodeBlock("yaml", `# leaplint.yaml
include:
  - "src/**/*.{js,ts,tsx}"
exclude:
  - "**/node_modules/**"
  - "**/dist/**"
output: auto
concurrency: 4

cache:
  enabled: true
  path: .leaplint/cache.db

lint:
  severity:
    no-control-regex: error`)

	w.Paragraph("The same settings in TOML:")
	w.CodeBlock("toml", `include = ["src/**/*.{js,ts,tsx}"]
output = "auto"

[cache]
enabled = true

[lint.severity]
no-control-regex = "error"`)

	return os.WriteFile(filepath.Join(outDir, "configuration.md"), w.Bytes(), 0600)
}
