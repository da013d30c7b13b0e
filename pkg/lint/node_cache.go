package lint

import "github.com/yaklabco/mdxlint/pkg/mdast"

// NodeCache indexes component elements by tag name so that every rule run
// against a file shares a single walk of its tree.
//
// The slices it hands out are shared. Copy before sorting or filtering.
//
// NodeCache is not safe for concurrent use; each file gets its own.
type NodeCache struct {
	elements map[string][]*mdast.Node
	count    int
	built    bool
}

func newNodeCache() *NodeCache {
	return &NodeCache{}
}

// build walks the tree once. Later calls are no-ops.
func (nc *NodeCache) build(root *mdast.Node) {
	if nc.built || root == nil {
		return
	}

	nc.elements = make(map[string][]*mdast.Node)

	//nolint:errcheck // visitor never fails
	mdast.Walk(root, func(node *mdast.Node) error {
		if node.Kind != mdast.NodeElement {
			return nil
		}
		name := node.ElementName()
		nc.elements[name] = append(nc.elements[name], node)
		nc.count++
		return nil
	})

	nc.built = true
}

// Elements returns the elements named name in document order.
func (nc *NodeCache) Elements(name string) []*mdast.Node {
	return nc.elements[name]
}

// Count returns the number of indexed elements.
func (nc *NodeCache) Count() int {
	return nc.count
}

// Names returns the distinct element names seen, unordered.
func (nc *NodeCache) Names() []string {
	names := make([]string, 0, len(nc.elements))
	for name := range nc.elements {
		names = append(names, name)
	}
	return names
}
