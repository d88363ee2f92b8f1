package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leaplint/internal/cli/config"
	"github.com/leapstack-labs/leaplint/internal/cli/output"
	"github.com/leapstack-labs/leaplint/internal/loader"
	"github.com/leapstack-labs/leaplint/pkg/core"
	"github.com/leapstack-labs/leaplint/pkg/lint"
)

// ErrConfigExists is returned by init when a config file is already present.
var ErrConfigExists = errors.New("config file already exists")

const configHeader = `# leaplint configuration
# Run 'leaplint rules' to list the available rules.
`

// projectFile is the layout written by `leaplint init`.
type projectFile struct {
	Include []string         `yaml:"include" toml:"include"`
	Exclude []string         `yaml:"exclude" toml:"exclude"`
	Output  string           `yaml:"output" toml:"output"`
	Cache   core.CacheConfig `yaml:"cache" toml:"cache"`
	Lint    core.LintConfig  `yaml:"lint" toml:"lint"`
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force, asTOML bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a leaplint configuration file",
		Long: `Create a leaplint.yaml with the default file globs and every
registered rule at its default severity.

Use --toml to write leaplint.toml instead.`,
		Example: `  # Initialize in current directory
  leaplint init

  # Initialize in another directory
  leaplint init web/

  # Write TOML instead of YAML
  leaplint init --toml

  # Overwrite an existing config
  leaplint init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			r := newRenderer(cmd, getConfig().OutputFormat)
			return runInit(r, dir, force, asTOML)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")
	cmd.Flags().BoolVar(&asTOML, "toml", false, "Write leaplint.toml instead of leaplint.yaml")

	return cmd
}

func runInit(r *output.Renderer, dir string, force, asTOML bool) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if !force {
		for _, name := range []string{"leaplint.yaml", "leaplint.yml", "leaplint.toml"} {
			if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
				return fmt.Errorf("%w: %s. Use --force to overwrite", ErrConfigExists, name)
			}
		}
	}

	name := "leaplint.yaml"
	content, err := marshalProjectFile(defaultProjectFile(), asTOML)
	if asTOML {
		name = "leaplint.toml"
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	r.StatusLine(path, "success", "")
	r.Println("")
	r.Success("leaplint project initialized!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  leaplint lint     Lint every JavaScript and TypeScript file")
	r.Println("  leaplint rules    List the available rules")

	return nil
}

func defaultProjectFile() projectFile {
	severity := make(map[string]string)
	for _, rule := range lint.GetAllRules() {
		severity[rule.ID()] = rule.DefaultSeverity().String()
	}

	return projectFile{
		Include: loader.DefaultInclude,
		Exclude: loader.DefaultExclude,
		Output:  config.DefaultOutput,
		Cache:   core.CacheConfig{Enabled: false, Path: config.DefaultCacheFile},
		Lint:    core.LintConfig{Severity: severity},
	}
}

func marshalProjectFile(pf projectFile, asTOML bool) ([]byte, error) {
	var (
		body []byte
		err  error
	)
	if asTOML {
		body, err = toml.Marshal(pf)
	} else {
		body, err = yaml.Marshal(pf)
	}
	if err != nil {
		return nil, err
	}
	return append([]byte(configHeader+"\n"), body...), nil
}
