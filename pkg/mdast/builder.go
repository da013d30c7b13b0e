package mdast

// NewNode returns a detached node of kind with no source position.
func NewNode(kind NodeKind) *Node {
	return &Node{
		Kind:       kind,
		FirstToken: -1,
		LastToken:  -1,
	}
}

// NewDocument returns an empty document root.
func NewDocument() *Node {
	return NewNode(NodeDocument)
}

// NewElement returns a detached element node.
func NewElement(name string, attrs ...Attribute) *Node {
	n := NewNode(NodeElement)
	n.Element = &ElementAttrs{Name: name, Attributes: attrs}
	return n
}

// NewText returns a detached text node holding text.
func NewText(text string) *Node {
	n := NewNode(NodeText)
	n.Inline = &InlineAttrs{Text: []byte(text)}
	return n
}

// AppendChild makes child the last child of parent, detaching it from any
// previous parent first.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}

	if child.Parent != nil {
		RemoveChild(child.Parent, child)
	}

	child.Parent = parent
	child.Prev = parent.LastChild
	child.Next = nil

	if parent.LastChild != nil {
		parent.LastChild.Next = child
	} else {
		parent.FirstChild = child
	}
	parent.LastChild = child
}

// RemoveChild unlinks child from parent. It is a no-op when child belongs to
// another parent.
func RemoveChild(parent, child *Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}

	if child.Prev != nil {
		child.Prev.Next = child.Next
	} else {
		parent.FirstChild = child.Next
	}

	if child.Next != nil {
		child.Next.Prev = child.Prev
	} else {
		parent.LastChild = child.Prev
	}

	child.Parent = nil
	child.Prev = nil
	child.Next = nil
}

// SetTokenRange sets the inclusive token span of n.
func SetTokenRange(n *Node, first, last int) {
	if n == nil {
		return
	}
	n.FirstToken = first
	n.LastToken = last
}

// SetFile points node and all its descendants at file.
func SetFile(node *Node, file *FileSnapshot) {
	//nolint:errcheck // the callback never fails
	Walk(node, func(n *Node) error {
		n.File = file
		return nil
	})
}
