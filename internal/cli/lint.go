package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/mdxlint/internal/configloader"
	"github.com/yaklabco/mdxlint/internal/logging"
	"github.com/yaklabco/mdxlint/pkg/analysis"
	"github.com/yaklabco/mdxlint/pkg/config"
	"github.com/yaklabco/mdxlint/pkg/lint"
	_ "github.com/yaklabco/mdxlint/pkg/lint/rules" // register built-in rules
	"github.com/yaklabco/mdxlint/pkg/parser/mdx"
	"github.com/yaklabco/mdxlint/pkg/reporter"
	"github.com/yaklabco/mdxlint/pkg/runner"
)

type lintFlags struct {
	format     string
	flavor     string
	ruleFormat string
	sort       string
	jobs       int
	ignore     []string
	enable     []string
	disable    []string
	strict     bool
	noContext  bool
	compact    bool
	watch      bool
}

func newLintCommand(info BuildInfo) *cobra.Command {
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint MDX files",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, flags, info)
		},
	}

	addLintFlags(cmd, flags)

	return cmd
}

const lintLongDescription = `Lint MDX files for component structure issues.

By default, lints all .mdx, .md and .markdown files in the current directory
and subdirectories. Specify paths to lint specific files or directories.

Examples:
  mdxlint lint                    # Lint current directory
  mdxlint lint docs/              # Lint docs directory
  mdxlint lint guide.mdx          # Lint single file
  mdxlint lint --format sarif     # Output SARIF for code scanning
  mdxlint lint --format summary   # Counts per rule and per file
  mdxlint lint --strict           # Fail on warnings too
  mdxlint lint --watch docs/      # Re-lint docs on every save`

func addLintFlags(cmd *cobra.Command, flags *lintFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, sarif, summary")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rule IDs, names or aliases to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule IDs, names or aliases to disable")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "gfm", "Markdown flavor between components: commonmark, gfm")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "one line per diagnostic; minified JSON")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.sort, "sort", string(analysis.SortByCount),
		"order of the summary format tables: "+analysis.SortFieldList())
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "re-lint when files change until interrupted")
}

// cliConfig builds the highest-precedence config layer. Only flags given on
// the command line are set so that files and environment still apply.
func (f *lintFlags) cliConfig(set *pflag.FlagSet) *config.Config {
	cfg := &config.Config{
		Ignore:       f.ignore,
		EnableRules:  f.enable,
		DisableRules: f.disable,
		Strict:       f.strict,
	}

	if set.Changed("format") {
		cfg.Format = config.OutputFormat(f.format)
	}
	if set.Changed("flavor") {
		cfg.Flavor = config.Flavor(f.flavor)
	}
	if set.Changed("rule-format") {
		cfg.RuleFormat = config.RuleFormat(f.ruleFormat)
	}
	if set.Changed("jobs") {
		cfg.Jobs = f.jobs
	}

	return cfg
}

func runLint(cmd *cobra.Command, args []string, flags *lintFlags, info BuildInfo) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger := logging.Default()
	ctx = logging.WithLogger(ctx, logger)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	sortBy := analysis.SortField(flags.sort)
	if !sortBy.IsValid() {
		return fmt.Errorf("invalid sort %q; must be one of: %s", flags.sort, analysis.SortFieldList())
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    flags.cliConfig(cmd.Flags()),
	})
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldFiles, loadResult.LoadedFrom,
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldExtensions, cfg.Extensions,
	)

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      cfg.Format,
		Color:       colorMode,
		ShowContext: !flags.noContext,
		ShowSummary: true,
		Compact:     flags.compact,
		RuleFormat:  cfg.RuleFormat,
		WorkingDir:  workDir,
		ToolVersion: info.Version,
		Registry:    lint.DefaultRegistry,
		SortBy:      sortBy,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	runOpts := runner.OptionsFromConfig(cfg, args)
	runOpts.WorkingDir = workDir

	session := &lintSession{
		runner: runner.New(lint.NewPipeline(lint.NewEngine(mdx.New(string(cfg.Flavor)), lint.DefaultRegistry))),
		opts:   runOpts,
		report: rep,
	}

	if flags.watch {
		watchCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		return watch(watchCtx, runOpts, session.lintOnce, logging.NewInteractive())
	}

	result, err := session.lintOnce(ctx)
	if err != nil {
		return err
	}

	if code := ExitCodeFromResult(result, cfg.Strict); code != ExitSuccess {
		return &lintExitError{code: code}
	}

	return nil
}

// lintSession runs and reports one lint pass. Watch mode reuses it for every
// change.
type lintSession struct {
	runner *runner.Runner
	opts   runner.Options
	report reporter.Reporter
	runs   int
}

func (s *lintSession) lintOnce(ctx context.Context) (*runner.Result, error) {
	s.runs++
	ctx = logging.WithFields(ctx, logging.FieldRun, s.runs)
	logger := logging.FromContext(ctx)

	logger.Debug("starting lint run",
		logging.FieldPaths, s.opts.Paths,
		logging.FieldWorkingDir, s.opts.WorkingDir,
		logging.FieldJobs, s.opts.Jobs,
	)

	result, err := s.runner.Run(ctx, s.opts)
	if err != nil {
		return nil, errors.Join(errors.New("lint run failed"), err)
	}

	logger.Debug("lint run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldDuration, result.Stats.Duration,
	)

	for _, failed := range result.FileErrors() {
		logger.Debug("file not linted", logging.FieldPath, failed.Path, logging.FieldError, failed.Error)
	}

	if _, err := s.report.Report(ctx, result); err != nil {
		return nil, fmt.Errorf("report results: %w", err)
	}

	return result, nil
}
