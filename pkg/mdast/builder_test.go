package mdast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdxlint/pkg/mdast"
)

func TestAppendChild_Reparents(t *testing.T) {
	t.Parallel()

	first := mdast.NewElement("Steps")
	second := mdast.NewElement("Steps")
	step := mdast.NewElement("Step")

	mdast.AppendChild(first, step)
	mdast.AppendChild(second, step)

	assert.False(t, first.HasChildren())
	assert.Same(t, second, step.Parent)
	assert.Same(t, step, second.FirstChild)
	assert.Same(t, step, second.LastChild)
}

func TestRemoveChild(t *testing.T) {
	t.Parallel()

	parent := mdast.NewElement("Steps")
	a := mdast.NewElement("Step")
	b := mdast.NewElement("Step")
	c := mdast.NewElement("Step")
	mdast.AppendChild(parent, a)
	mdast.AppendChild(parent, b)
	mdast.AppendChild(parent, c)

	mdast.RemoveChild(parent, b)
	assert.Equal(t, []*mdast.Node{a, c}, parent.Children())
	assert.Same(t, c, a.Next)
	assert.Same(t, a, c.Prev)
	assert.Nil(t, b.Parent)

	mdast.RemoveChild(mdast.NewDocument(), a)
	assert.Same(t, parent, a.Parent)
}

func TestSetFile(t *testing.T) {
	t.Parallel()

	doc, nodes := buildTabsTree()
	snap := mdast.NewFileSnapshot("x.mdx", nil)

	mdast.SetFile(doc, snap)
	for _, n := range nodes {
		assert.Same(t, snap, n.File)
	}
}

func TestValidateTokens(t *testing.T) {
	t.Parallel()

	tokens := []mdast.Token{
		{Kind: mdast.TokTagOpen, StartOffset: 0, EndOffset: 7},
		{Kind: mdast.TokNewline, StartOffset: 7, EndOffset: 8},
	}

	assert.True(t, mdast.ValidateTokens(tokens, 8))
	assert.False(t, mdast.ValidateTokens(tokens, 9))
	assert.False(t, mdast.ValidateTokens(tokens[1:], 8))
	assert.True(t, mdast.ValidateTokens(nil, 0))
	assert.False(t, mdast.ValidateTokens([]mdast.Token{
		{StartOffset: 0, EndOffset: 2}, {StartOffset: 3, EndOffset: 4},
	}, 4))
	assert.Equal(t, "TagOpen", mdast.TokTagOpen.String())
	assert.Equal(t, "<Steps>", string(mdast.Token{StartOffset: 0, EndOffset: 7}.Text([]byte("<Steps>\n"))))
}
