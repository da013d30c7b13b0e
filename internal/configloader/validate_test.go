package configloader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdxlint/pkg/config"
	_ "github.com/yaklabco/mdxlint/pkg/lint/rules" // Register rules
)

func TestValidate(t *testing.T) {
	t.Parallel()

	fatal := "fatal"
	tests := []struct {
		name      string
		mutate    func(cfg *config.Config)
		wantField string
	}{
		{"bad flavor", func(c *config.Config) { c.Flavor = "rst" }, "flavor"},
		{"bad severity default", func(c *config.Config) { c.SeverityDefault = "loud" }, "severity_default"},
		{"bad format", func(c *config.Config) { c.Format = "xml" }, "format"},
		{"bad rule format", func(c *config.Config) { c.RuleFormat = "short" }, "rule_format"},
		{"negative jobs", func(c *config.Config) { c.Jobs = -1 }, "jobs"},
		{"bad glob", func(c *config.Config) { c.Ignore = []string{"[abc"} }, "ignore[0]"},
		{"extension without dot", func(c *config.Config) { c.Extensions = []string{"mdx"} }, "extensions[0]"},
		{"extension with path", func(c *config.Config) { c.Extensions = []string{".mdx", "./x"} }, "extensions[1]"},
		{"bad rule severity", func(c *config.Config) {
			c.Rules["MDX001"] = config.RuleConfig{Severity: &fatal}
		}, "rules.MDX001.severity"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			testCase.mutate(cfg)

			result := Validate(cfg)
			require.False(t, result.Valid())
			assert.Equal(t, testCase.wantField, result.Errors[0].Field)
		})
	}
}

func TestValidate_Defaults(t *testing.T) {
	t.Parallel()

	result := Validate(config.NewConfig())
	assert.True(t, result.Valid())
	assert.False(t, result.HasWarnings())
	assert.Empty(t, result.AllMessages())
}

func TestValidate_UnknownRuleIsWarning(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Rules["MDX999"] = config.RuleConfig{}

	result := ValidateWithFile(cfg, ".mdxlint.yml")
	assert.True(t, result.Valid())
	require.True(t, result.HasWarnings())
	assert.Equal(t,
		[]string{`warning: .mdxlint.yml: rules.MDX999: unknown rule "MDX999"; it will be ignored`},
		result.AllMessages())
}

func TestValidate_UnknownRuleSuggestion(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Rules["steps-childern"] = config.RuleConfig{}
	cfg.Rules["tabs"] = config.RuleConfig{}

	result := Validate(cfg)
	require.Len(t, result.Warnings, 1, "aliases resolve")
	assert.Equal(t,
		`unknown rule "steps-childern"; it will be ignored (did you mean "steps-children"?)`,
		result.Warnings[0].Message)
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	err := &ValidationError{Field: "flavor", Message: "invalid"}
	assert.Equal(t, "flavor: invalid", err.Error())

	err.FilePath = "cfg.toml"
	assert.Equal(t, "cfg.toml: flavor: invalid", err.Error())
}

func TestValidate_Nil(t *testing.T) {
	t.Parallel()

	assert.True(t, Validate(nil).Valid())
}
