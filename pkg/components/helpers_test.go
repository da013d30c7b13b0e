package components_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdxlint/pkg/components"
	"github.com/yaklabco/mdxlint/pkg/mdast"
	"github.com/yaklabco/mdxlint/pkg/parser/mdx"
)

func parse(t *testing.T, src string) *mdast.Node {
	t.Helper()

	snap, err := mdx.New(mdx.FlavorGFM).Parse(context.Background(), "test.mdx", []byte(src))
	require.NoError(t, err)

	return snap.Root
}

func lines(diags []components.Diagnostic) []int {
	out := make([]int, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Line)
	}
	return out
}
