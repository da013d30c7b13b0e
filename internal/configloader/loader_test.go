package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdxlint/pkg/config"
	_ "github.com/yaklabco/mdxlint/pkg/lint/rules" // Register rules
)

func isolatedOptions(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755))

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	assert.Equal(t, config.FlavorGFM, result.Config.Flavor)
	assert.Equal(t, config.FormatText, result.Config.Format)
	assert.Equal(t, config.DefaultExtensions(), result.Config.Extensions)
	assert.Empty(t, result.LoadedFrom)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".mdxlint.yml"), `
flavor: commonmark
rules:
  steps-children:
    enabled: false
`)

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	require.NoError(t, err)

	assert.Equal(t, config.FlavorCommonMark, result.Config.Flavor)
	require.Contains(t, result.Config.Rules, "MDX001")
	require.NotNil(t, result.Config.Rules["MDX001"].Enabled)
	assert.False(t, *result.Config.Rules["MDX001"].Enabled)
	assert.Len(t, result.LoadedFrom, 1)
}

func TestLoad_TOMLProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".mdxlint.toml"), `
severity_default = "warning"
extensions = [".mdx"]

[rules.tabs]
severity = "error"
`)

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	require.NoError(t, err)

	assert.Equal(t, "warning", result.Config.SeverityDefault)
	assert.Equal(t, []string{".mdx"}, result.Config.Extensions)
	require.NotNil(t, result.Config.Rules["MDX002"].Severity)
	assert.Equal(t, "error", *result.Config.Rules["MDX002"].Severity)
}

func TestLoad_UpwardSearch(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "mdxlint.yaml"), "flavor: commonmark\n")
	nested := filepath.Join(tmpDir, "docs", "guides")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	result, err := Load(context.Background(), isolatedOptions(nested))
	require.NoError(t, err)

	assert.Equal(t, config.FlavorCommonMark, result.Config.Flavor)
	assert.Equal(t, filepath.Join(tmpDir, "mdxlint.yaml"), result.Paths.Project)
}

func TestLoad_ExplicitOverridesProject(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".mdxlint.yml"), `
flavor: commonmark
ignore: ["vendor/**"]
`)
	explicit := filepath.Join(tmpDir, "ci", "strict.yml")
	writeFile(t, explicit, "flavor: gfm\n")

	opts := isolatedOptions(tmpDir)
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, config.FlavorGFM, result.Config.Flavor)
	assert.Equal(t, []string{"vendor/**"}, result.Config.Ignore)
	assert.Equal(t, []string{filepath.Join(tmpDir, ".mdxlint.yml"), explicit}, result.LoadedFrom)
}

func TestLoad_CLIOverridesFiles(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".mdxlint.yml"), "flavor: commonmark\n")

	opts := isolatedOptions(tmpDir)
	opts.CLIConfig = &config.Config{
		Flavor:       config.FlavorGFM,
		Format:       config.FormatJSON,
		Jobs:         3,
		DisableRules: []string{"tabs"},
	}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, config.FlavorGFM, result.Config.Flavor)
	assert.Equal(t, config.FormatJSON, result.Config.Format)
	assert.Equal(t, 3, result.Config.Jobs)
	assert.Equal(t, []string{"tabs"}, result.Config.DisableRules)
}

func TestLoad_EnvOverridesFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".mdxlint.yml"), "flavor: gfm\n")

	t.Setenv("MDXLINT_FLAVOR", "commonmark")
	t.Setenv("MDXLINT_JOBS", "2")

	opts := isolatedOptions(tmpDir)
	opts.IgnoreEnv = false

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, config.FlavorCommonMark, result.Config.Flavor)
	assert.Equal(t, 2, result.Config.Jobs)
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		file     string
		content  string
		errorMsg string
	}{
		{
			name:     "bad flavor",
			file:     ".mdxlint.yml",
			content:  "flavor: rst\n",
			errorMsg: "invalid flavor",
		},
		{
			name:     "bad rule severity",
			file:     ".mdxlint.yml",
			content:  "rules:\n  MDX001:\n    severity: fatal\n",
			errorMsg: "invalid severity",
		},
		{
			name:     "unknown key",
			file:     ".mdxlint.yml",
			content:  "flavour: gfm\n",
			errorMsg: "flavour",
		},
		{
			name:     "malformed TOML",
			file:     ".mdxlint.toml",
			content:  "flavor = \n",
			errorMsg: "load project config",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			writeFile(t, filepath.Join(tmpDir, testCase.file), testCase.content)

			_, err := Load(context.Background(), isolatedOptions(tmpDir))
			require.Error(t, err)
			assert.Contains(t, err.Error(), testCase.errorMsg)
		})
	}
}

func TestLoad_UnknownRuleWarns(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".mdxlint.yml"), "rules:\n  accordion-items:\n    enabled: false\n")

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "accordion-items")
}

func TestLoad_AliasAndIDInOneFile(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".mdxlint.yml"), `
rules:
  MDX002:
    severity: warning
    options:
      max_distance: 1
  tabs:
    enabled: false
    options:
      max_distance: 3
`)

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	require.NoError(t, err)

	require.Contains(t, result.Config.Rules, "MDX002")
	assert.NotContains(t, result.Config.Rules, "tabs")

	tabs := result.Config.Rules["MDX002"]
	require.NotNil(t, tabs.Severity)
	require.NotNil(t, tabs.Enabled)
	assert.Equal(t, "warning", *tabs.Severity)
	assert.False(t, *tabs.Enabled)
	assert.Equal(t, 3, tabs.Options["max_distance"])

	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], `"MDX002" and "tabs" both refer to MDX002`)
}

func TestMergeRuleConfig(t *testing.T) {
	t.Parallel()

	off := false
	errorSev := "error"
	base := config.RuleConfig{Severity: &errorSev, Options: map[string]any{"max_distance": 2}}
	override := config.RuleConfig{Enabled: &off, Options: map[string]any{"max_distance": 1}}

	merged := mergeRuleConfig(base, override)

	assert.Same(t, &errorSev, merged.Severity)
	assert.Same(t, &off, merged.Enabled)
	assert.Equal(t, map[string]any{"max_distance": 1}, merged.Options)
	assert.Equal(t, 2, base.Options["max_distance"], "base options untouched")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	opts := isolatedOptions(t.TempDir())
	opts.ExplicitPath = filepath.Join(opts.WorkingDir, "nope.yml")

	_, err := Load(context.Background(), opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNormalizeRuleKeys(t *testing.T) {
	t.Parallel()

	off := false
	warning := "warning"
	cfg := &config.Config{Rules: map[string]config.RuleConfig{
		"MDX002":         {Severity: &warning},
		"tabs":           {Enabled: &off},
		"steps-children": {Options: map[string]any{"max_distance": 1}},
		"mystery":        {},
	}}
	result := &LoadResult{}

	opts := isolatedOptions("")
	normalizeRuleKeys(cfg, registryOrDefault(opts), result)

	assert.Len(t, cfg.Rules, 3)
	assert.Contains(t, cfg.Rules, "MDX001")
	assert.Contains(t, cfg.Rules, "mystery")

	tabs := cfg.Rules["MDX002"]
	require.NotNil(t, tabs.Severity)
	require.NotNil(t, tabs.Enabled)
	assert.Equal(t, "warning", *tabs.Severity)
	assert.False(t, *tabs.Enabled)

	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "MDX002")
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".mdxlint.yml"), "flavor: gfm\n")
	repo := filepath.Join(tmpDir, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))
	nested := filepath.Join(repo, "docs")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	path, err := FindProjectConfig(context.Background(), nested)
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestFindProjectConfig_Preference(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "mdxlint.yml"), "")
	writeFile(t, filepath.Join(tmpDir, ".mdxlint.toml"), "")

	path, err := FindProjectConfig(context.Background(), tmpDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, ".mdxlint.toml"), path)
}

func TestDiscoverPaths_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := DiscoverPaths(ctx, t.TempDir())
	require.ErrorIs(t, err, context.Canceled)
}
