package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdxlint/pkg/config"
	"github.com/yaklabco/mdxlint/pkg/lint"
	"github.com/yaklabco/mdxlint/pkg/parser/mdx"
)

// applyRule parses src and runs rule against it with an optional rule
// config.
func applyRule(t *testing.T, rule lint.Rule, src string, ruleCfg *config.RuleConfig) []lint.Diagnostic {
	t.Helper()

	snapshot, err := mdx.New(mdx.FlavorGFM).Parse(context.Background(), "doc.mdx", []byte(src))
	require.NoError(t, err)

	ctx := lint.NewRuleContext(context.Background(), snapshot, config.NewConfig(), ruleCfg)
	diags, err := rule.Apply(ctx)
	require.NoError(t, err)

	return diags
}

func startLines(diags []lint.Diagnostic) []int {
	out := make([]int, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.StartLine)
	}
	return out
}
