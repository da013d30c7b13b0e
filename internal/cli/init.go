package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdxlint/internal/logging"
	"github.com/yaklabco/mdxlint/pkg/config"
	"github.com/yaklabco/mdxlint/pkg/fsutil"
	"github.com/yaklabco/mdxlint/pkg/lint/rules"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

type initFlags struct {
	force  bool
	full   bool
	format string
	pack   string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new mdxlint configuration file",
		Long: `Create a new .mdxlint.yml configuration file in the current directory.

Examples:
  mdxlint init                      Create a minimal .mdxlint.yml
  mdxlint init --full               Document every rule in the file
  mdxlint init --pack relaxed       Start from the relaxed rule pack
  mdxlint init --format toml        Create .mdxlint.toml instead
  mdxlint init -o docs/.mdxlint.yml Write to a custom path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "document every rule in the generated file")
	cmd.Flags().StringVar(&flags.format, "format", config.TemplateYAML, "file format: yaml or toml")
	cmd.Flags().StringVar(&flags.pack, "pack", "",
		"rule pack to start from: "+strings.Join(rules.PackNames(), ", "))
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output path (default .mdxlint.yml or .mdxlint.toml)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()

	if flags.format != config.TemplateYAML && flags.format != config.TemplateTOML {
		return fmt.Errorf("invalid format %q: must be %s or %s", flags.format, config.TemplateYAML, config.TemplateTOML)
	}

	opts := config.TemplateOptions{Full: flags.full, Format: flags.format}
	if flags.pack != "" {
		pack := rules.PackByName(flags.pack)
		if pack == nil {
			return fmt.Errorf("unknown pack %q; available packs: %s", flags.pack, strings.Join(rules.PackNames(), ", "))
		}
		opts.Rules = pack.Rules
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".mdxlint.yml"
		if flags.format == config.TemplateTOML {
			outputPath = ".mdxlint.toml"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(opts)
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	written, err := fsutil.WriteAtomicIfChanged(cmd.Context(), absPath, content, configFilePermissions)
	if err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if !written {
		logger.Info("configuration file already up to date", logging.FieldPath, outputPath)
		return nil
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath, logging.FieldPack, flags.pack)
	logger.Info("run 'mdxlint rules' to see all available rules")

	return nil
}
