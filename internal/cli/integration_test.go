package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdxlint/internal/cli"
	"github.com/yaklabco/mdxlint/internal/configloader"
	"github.com/yaklabco/mdxlint/pkg/reporter"
)

const (
	cleanDoc = "# Guide\n\n<Steps>\n<Step>\nOne\n</Step>\n</Steps>\n"

	// stepsDoc has a <Note> directly inside <Steps> on line 5.
	stepsDoc = "<Steps>\n<Step>\nOne\n</Step>\n<Note>\nstray\n</Note>\n</Steps>\n"

	unbalancedDoc = "<Steps>\n<Step>\n"
)

// lintFixture holds a document and a config file in a fresh directory.
type lintFixture struct {
	dir    string
	doc    string
	config string
}

func newLintFixture(t *testing.T, content, configContent string) lintFixture {
	t.Helper()

	dir := t.TempDir()
	fixture := lintFixture{
		dir:    dir,
		doc:    filepath.Join(dir, "guide.mdx"),
		config: filepath.Join(dir, "mdxlint.yml"),
	}
	require.NoError(t, os.WriteFile(fixture.doc, []byte(content), 0o600))
	require.NoError(t, os.WriteFile(fixture.config, []byte(configContent), 0o600))
	return fixture
}

// execute runs the root command and returns stdout and the exit code.
func execute(t *testing.T, args ...string) (string, int) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), cli.ExitCode(err)
}

func TestIntegration_ExitCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		config  string
		extra   []string
		want    int
	}{
		{name: "clean document", content: cleanDoc, config: "flavor: gfm\n", want: cli.ExitSuccess},
		{name: "steps violation", content: stepsDoc, config: "flavor: gfm\n", want: cli.ExitLintErrors},
		{
			name:    "downgraded to warning",
			content: stepsDoc,
			config:  "rules:\n  steps:\n    severity: warning\n",
			want:    cli.ExitSuccess,
		},
		{
			name:    "warning with strict",
			content: stepsDoc,
			config:  "rules:\n  steps:\n    severity: warning\n",
			extra:   []string{"--strict"},
			want:    cli.ExitLintWarnings,
		},
		{
			name:    "rule disabled by name",
			content: stepsDoc,
			config:  "rules:\n  steps-children:\n    enabled: false\n",
			want:    cli.ExitSuccess,
		},
		{
			name:    "rule disabled by flag alias",
			content: stepsDoc,
			config:  "flavor: gfm\n",
			extra:   []string{"--disable", "steps"},
			want:    cli.ExitSuccess,
		},
		{name: "unbalanced tags", content: unbalancedDoc, config: "flavor: gfm\n", want: cli.ExitLintErrors},
		{name: "invalid config", content: cleanDoc, config: "flavor: markdown-it\n", want: cli.ExitInternalError},
		{name: "unknown config key", content: cleanDoc, config: "fix: true\n", want: cli.ExitInternalError},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			fixture := newLintFixture(t, testCase.content, testCase.config)

			args := []string{"lint", "--config", fixture.config, "--color", "never"}
			args = append(args, testCase.extra...)
			args = append(args, fixture.doc)

			_, code := execute(t, args...)
			assert.Equal(t, testCase.want, code)
		})
	}
}

func TestIntegration_RuleFormatFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ruleFormat     string
		wantContains   string
		wantNotContain string
	}{
		{ruleFormat: "name", wantContains: "steps-children", wantNotContain: "MDX001"},
		{ruleFormat: "id", wantContains: "MDX001", wantNotContain: "steps-children"},
		{ruleFormat: "combined", wantContains: "MDX001/steps-children"},
	}

	for _, testCase := range tests {
		t.Run(testCase.ruleFormat, func(t *testing.T) {
			t.Parallel()

			fixture := newLintFixture(t, stepsDoc, "flavor: gfm\n")

			out, code := execute(t, "lint",
				"--config", fixture.config,
				"--rule-format", testCase.ruleFormat,
				"--no-context",
				"--color", "never",
				fixture.doc,
			)
			assert.Equal(t, cli.ExitLintErrors, code)
			assert.Contains(t, out, testCase.wantContains)
			if testCase.wantNotContain != "" {
				assert.NotContains(t, out, testCase.wantNotContain)
			}
		})
	}
}

func TestIntegration_TextOutput(t *testing.T) {
	t.Parallel()

	fixture := newLintFixture(t, stepsDoc, "flavor: gfm\n")

	out, _ := execute(t, "lint", "--config", fixture.config, "--color", "never", fixture.doc)

	assert.Contains(t, out, "guide.mdx (1 issue)")
	assert.Contains(t, out, "5:1  error  <Steps> component must only contain <Step> components as immediate children")
	assert.Contains(t, out, "    5 | <Note>\n")
	assert.Contains(t, out, "1 issue (1 error) in 1 file")
}

func TestIntegration_CompactOutput(t *testing.T) {
	t.Parallel()

	fixture := newLintFixture(t, stepsDoc, "flavor: gfm\n")

	out, _ := execute(t, "lint", "--config", fixture.config, "--color", "never", "--compact", fixture.doc)

	assert.Contains(t, out, "guide.mdx:5:1: error ")
	assert.NotContains(t, out, " | ")
}

func TestIntegration_JSONOutput(t *testing.T) {
	t.Parallel()

	fixture := newLintFixture(t, stepsDoc, "flavor: gfm\n")

	out, code := execute(t, "lint", "--config", fixture.config, "--format", "json", fixture.doc)
	assert.Equal(t, cli.ExitLintErrors, code)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &output))

	require.Len(t, output.Files, 1)
	require.Len(t, output.Files[0].Diagnostics, 1)
	diag := output.Files[0].Diagnostics[0]
	assert.Equal(t, "MDX001", diag.RuleID)
	assert.Equal(t, 5, diag.Line)
	assert.Equal(t, 1, output.Summary.TotalIssues)
}

func TestIntegration_SARIFOutput(t *testing.T) {
	t.Parallel()

	fixture := newLintFixture(t, stepsDoc, "flavor: gfm\n")

	out, _ := execute(t, "lint", "--config", fixture.config, "--format", "sarif", fixture.doc)

	var output reporter.SARIFOutput
	require.NoError(t, json.Unmarshal([]byte(out), &output))
	require.Len(t, output.Runs, 1)
	assert.Equal(t, "test-version", output.Runs[0].Tool.Driver.Version)
	require.Len(t, output.Runs[0].Results, 1)
	assert.Equal(t, "MDX001", output.Runs[0].Results[0].RuleID)
}

func TestIntegration_DirectoryWithIgnore(t *testing.T) {
	t.Parallel()

	fixture := newLintFixture(t, cleanDoc, "ignore:\n  - \"**/drafts/**\"\n")
	drafts := filepath.Join(fixture.dir, "drafts")
	require.NoError(t, os.MkdirAll(drafts, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(drafts, "wip.mdx"), []byte(stepsDoc), 0o600))

	_, code := execute(t, "lint", "--config", fixture.config, "--color", "never", fixture.dir)
	assert.Equal(t, cli.ExitSuccess, code)
}

func TestIntegration_RulesJSON(t *testing.T) {
	t.Parallel()

	out, code := execute(t, "rules", "--format", "json")
	require.Equal(t, cli.ExitSuccess, code)

	var rules []struct {
		ID       string   `json:"id"`
		Name     string   `json:"name"`
		Severity string   `json:"severity"`
		Aliases  []string `json:"aliases"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rules))
	require.Len(t, rules, 2)

	assert.Equal(t, "MDX001", rules[0].ID)
	assert.Equal(t, "steps-children", rules[0].Name)
	assert.Equal(t, "error", rules[0].Severity)
	assert.Equal(t, []string{"steps"}, rules[0].Aliases)
	assert.Equal(t, "MDX002", rules[1].ID)
	assert.Equal(t, []string{"tabs"}, rules[1].Aliases)
}

func TestIntegration_RulesText(t *testing.T) {
	t.Parallel()

	out, code := execute(t, "rules", "--color", "never", "--rule-format", "combined")
	require.Equal(t, cli.ExitSuccess, code)

	assert.Contains(t, out, "MDX001/steps-children  error\n")
	assert.Contains(t, out, "MDX002/tabs-structure  error\n")
	assert.Contains(t, out, "aliases: tabs")
}

func TestIntegration_RulesInvalidFormat(t *testing.T) {
	t.Parallel()

	_, code := execute(t, "rules", "--format", "sarif")
	assert.Equal(t, cli.ExitInternalError, code)
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	output := filepath.Join(dir, ".mdxlint.yml")

	_, code := execute(t, "init", "--output", output)
	require.Equal(t, cli.ExitSuccess, code)

	cfg, err := configloader.LoadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "gfm", string(cfg.Flavor))

	_, code = execute(t, "init", "--output", output)
	assert.Equal(t, cli.ExitInternalError, code, "existing file needs --force")

	_, code = execute(t, "init", "--output", output, "--force")
	assert.Equal(t, cli.ExitSuccess, code)
}

func TestIntegration_InitPackTOML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	output := filepath.Join(dir, ".mdxlint.toml")

	_, code := execute(t, "init", "--output", output, "--format", "toml", "--pack", "relaxed")
	require.Equal(t, cli.ExitSuccess, code)

	cfg, err := configloader.LoadFile(output)
	require.NoError(t, err)

	require.Contains(t, cfg.Rules, "MDX001")
	require.NotNil(t, cfg.Rules["MDX001"].Severity)
	assert.Equal(t, "warning", *cfg.Rules["MDX001"].Severity)
}

func TestIntegration_InitErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, code := execute(t, "init", "--output", filepath.Join(dir, "a.yml"), "--pack", "strictest")
	assert.Equal(t, cli.ExitInternalError, code)

	_, code = execute(t, "init", "--output", filepath.Join(dir, "a.json"), "--format", "json")
	assert.Equal(t, cli.ExitInternalError, code)
}

func TestIntegration_SummaryOutput(t *testing.T) {
	t.Parallel()

	fixture := newLintFixture(t, stepsDoc, "flavor: gfm\n")

	out, code := execute(t, "lint", "--config", fixture.config, "--color", "never",
		"--format", "summary", "--rule-format", "id", fixture.doc)
	assert.Equal(t, cli.ExitLintErrors, code)

	assert.Contains(t, out, "Issues by rule\n  MDX001  1 issue (1 error) in 1 file\n")
	assert.Contains(t, out, "Issues by file\n")
	assert.Contains(t, out, "Lint failed")
	assert.NotContains(t, out, "<Note>")
}

func TestIntegration_InvalidSort(t *testing.T) {
	t.Parallel()

	fixture := newLintFixture(t, cleanDoc, "flavor: gfm\n")

	_, code := execute(t, "lint", "--config", fixture.config, "--sort", "random", fixture.doc)
	assert.Equal(t, cli.ExitInternalError, code)
}
