package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yaklabco/mdxlint/pkg/config"
	"github.com/yaklabco/mdxlint/pkg/lint"
)

func TestBaseRule(t *testing.T) {
	t.Parallel()

	rule := lint.NewBaseRule("MDX001", "steps-children", "desc", []string{"components"}, config.SeverityError)

	assert.Equal(t, "MDX001", rule.ID())
	assert.Equal(t, "steps-children", rule.Name())
	assert.Equal(t, "desc", rule.Description())
	assert.Equal(t, []string{"components"}, rule.Tags())
	assert.True(t, rule.DefaultEnabled())
	assert.Equal(t, config.SeverityError, rule.DefaultSeverity())

	diags, err := rule.Apply(nil)
	assert.NoError(t, err)
	assert.Empty(t, diags)
}

func TestBaseRule_DefaultSeverityFallback(t *testing.T) {
	t.Parallel()

	rule := lint.NewBaseRule("MDX009", "x", "", nil, "")
	assert.Equal(t, config.SeverityWarning, rule.DefaultSeverity())
}
