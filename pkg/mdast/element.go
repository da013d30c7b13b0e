package mdast

// IsElement reports whether n is a component element named name.
func (n *Node) IsElement(name string) bool {
	return n != nil && n.Kind == NodeElement && n.Element != nil && n.Element.Name == name
}

// ElementName returns the tag name of an element node, or "".
func (n *Node) ElementName() string {
	if n == nil || n.Kind != NodeElement || n.Element == nil {
		return ""
	}
	return n.Element.Name
}

// Attr returns the value of attribute name on an element node.
func (n *Node) Attr(name string) (string, bool) {
	if n == nil || n.Element == nil {
		return "", false
	}
	return n.Element.Attr(name)
}

// ChildElements returns the direct children of n that are elements named
// name, in document order.
func (n *Node) ChildElements(name string) []*Node {
	var out []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		if child.IsElement(name) {
			out = append(out, child)
		}
	}
	return out
}
