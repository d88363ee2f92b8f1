package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// BuildInfo carries the values stamped into the binary at build time.
type BuildInfo struct {
	Version   string
	GitCommit string
	BuildDate string
}

// NewVersionCommand creates the version command.
func NewVersionCommand(info BuildInfo) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display leaplint version and build information.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			if short {
				_, _ = fmt.Fprintln(out, info.Version)
				return
			}
			_, _ = fmt.Fprintf(out, "leaplint v%s\n", info.Version)
			_, _ = fmt.Fprintln(out, "JavaScript and TypeScript linter built with Go")
			if info.GitCommit != "" && info.GitCommit != "unknown" {
				_, _ = fmt.Fprintf(out, "  commit: %s\n", info.GitCommit)
			}
			if info.BuildDate != "" && info.BuildDate != "unknown" {
				_, _ = fmt.Fprintf(out, "  built:  %s\n", info.BuildDate)
			}
			_, _ = fmt.Fprintf(out, "  go:     %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")

	return cmd
}
