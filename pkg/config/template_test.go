package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdxlint/pkg/config"
)

func TestGenerateTemplate_MinimalYAMLParses(t *testing.T) {
	t.Parallel()

	data, err := config.GenerateTemplate(config.TemplateOptions{})
	require.NoError(t, err)
	assert.Contains(t, string(data), "# mdxlint configuration")

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, config.FlavorGFM, cfg.Flavor)
	assert.Equal(t, config.DefaultExtensions(), cfg.Extensions)
}

func TestGenerateTemplate_WithRules(t *testing.T) {
	t.Parallel()

	on, off := true, false
	severity := "warning"
	rules := map[string]config.RuleConfig{
		"MDX002": {Enabled: &on, Severity: &severity},
		"MDX001": {Enabled: &off},
	}

	for _, format := range []string{config.TemplateYAML, config.TemplateTOML} {
		t.Run(format, func(t *testing.T) {
			t.Parallel()

			data, err := config.GenerateTemplate(config.TemplateOptions{Format: format, Rules: rules})
			require.NoError(t, err)

			var cfg *config.Config
			if format == config.TemplateTOML {
				cfg, err = config.FromTOML(data)
			} else {
				cfg, err = config.FromYAML(data)
			}
			require.NoError(t, err)

			assert.False(t, *cfg.Rules["MDX001"].Enabled)
			assert.Nil(t, cfg.Rules["MDX001"].Severity)
			assert.True(t, *cfg.Rules["MDX002"].Enabled)
			assert.Equal(t, "warning", *cfg.Rules["MDX002"].Severity)
		})
	}
}

func TestGenerateTemplate_MinimalTOMLParses(t *testing.T) {
	t.Parallel()

	data, err := config.GenerateTemplate(config.TemplateOptions{Format: config.TemplateTOML})
	require.NoError(t, err)

	cfg, err := config.FromTOML(data)
	require.NoError(t, err)
	assert.Equal(t, config.FlavorGFM, cfg.Flavor)
}

func TestGenerateTemplate_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := config.GenerateTemplate(config.TemplateOptions{Format: "json"})
	require.ErrorContains(t, err, `unknown template format "json"`)
}
