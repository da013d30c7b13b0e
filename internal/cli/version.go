package cli

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdxlint/internal/logging"
	"github.com/yaklabco/mdxlint/pkg/lint"
)

// newVersionCommand reports the build stamped in by ldflags along with the
// component rules compiled into this binary, so a bug report names both.
// --short prints the bare version for scripts.
func newVersionCommand(info BuildInfo) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the mdxlint build and its built-in rules",
		Long: `Print the mdxlint version, commit and build date, the Go toolchain it was
built with, and the IDs of the component rules it checks.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if short {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), info.Version)
				return err
			}

			logger := log.NewWithOptions(cmd.OutOrStdout(), log.Options{Level: log.InfoLevel})
			logger.Info("mdxlint",
				logging.FieldVersion, info.Version,
				logging.FieldCommit, info.Commit,
				logging.FieldBuilt, info.Date,
				logging.FieldGo, runtime.Version(),
				logging.FieldRules, strings.Join(lint.DefaultRegistry.IDs(), ","),
			)
			return nil
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "print only the version")
	return cmd
}
