package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yaklabco/mdxlint/pkg/mdast"
)

func TestNodeCache_Build(t *testing.T) {
	t.Parallel()

	root := mdast.NewDocument()
	tabs := mdast.NewElement("Tabs")
	bar := mdast.NewElement("TabsBar")
	mdast.AppendChild(root, tabs)
	mdast.AppendChild(tabs, bar)
	mdast.AppendChild(bar, mdast.NewElement("TabsBarItem"))
	mdast.AppendChild(bar, mdast.NewElement("TabsBarItem"))
	mdast.AppendChild(root, mdast.NewText("trailing"))

	nc := newNodeCache()
	nc.build(root)

	assert.Equal(t, 4, nc.Count())
	assert.Len(t, nc.Elements("TabsBarItem"), 2)
	assert.Equal(t, []*mdast.Node{tabs}, nc.Elements("Tabs"))
	assert.ElementsMatch(t, []string{"Tabs", "TabsBar", "TabsBarItem"}, nc.Names())

	// A second build is a no-op.
	mdast.AppendChild(root, mdast.NewElement("Tabs"))
	nc.build(root)
	assert.Len(t, nc.Elements("Tabs"), 1)
}

func TestNodeCache_NilRoot(t *testing.T) {
	t.Parallel()

	nc := newNodeCache()
	nc.build(nil)

	assert.Equal(t, 0, nc.Count())
	assert.Nil(t, nc.Elements("Tabs"))
}
