package mdast

// NodeKind classifies an AST node.
type NodeKind uint16

// Node kinds. Markdown blocks come from the CommonMark parser; elements and
// ESM come from the MDX layer around it.
const (
	NodeDocument NodeKind = iota

	NodeParagraph
	NodeHeading
	NodeList
	NodeListItem
	NodeBlockquote
	NodeCodeBlock
	NodeThematicBreak
	NodeHTMLBlock
	NodeTable

	// NodeElement is a component written as a JSX tag on its own line.
	NodeElement

	// NodeExpression is a {...} JavaScript expression on its own line.
	NodeExpression

	// NodeESM is a top-level import or export block.
	NodeESM

	// NodeText is literal text. The parser only produces it for synthetic
	// trees; real documents carry text inside paragraphs.
	NodeText

	NodeRaw
)

var nodeKindNames = [...]string{
	NodeDocument:      "Document",
	NodeParagraph:     "Paragraph",
	NodeHeading:       "Heading",
	NodeList:          "List",
	NodeListItem:      "ListItem",
	NodeBlockquote:    "Blockquote",
	NodeCodeBlock:     "CodeBlock",
	NodeThematicBreak: "ThematicBreak",
	NodeHTMLBlock:     "HTMLBlock",
	NodeTable:         "Table",
	NodeElement:       "Element",
	NodeExpression:    "Expression",
	NodeESM:           "ESM",
	NodeText:          "Text",
	NodeRaw:           "Raw",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "Unknown"
}

// Node is one node of the document tree.
type Node struct {
	Kind NodeKind

	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// FirstToken and LastToken index into File.Tokens, inclusive.
	// Both are -1 for nodes without a source position.
	FirstToken int
	LastToken  int

	// File is the snapshot this node was parsed from.
	File *FileSnapshot

	// Block holds Markdown block attributes.
	Block *BlockAttrs

	// Inline holds literal text for NodeText.
	Inline *InlineAttrs

	// Element holds the tag name and attributes for NodeElement.
	Element *ElementAttrs
}

// IsBlock reports whether n is a Markdown block.
func (n *Node) IsBlock() bool {
	switch n.Kind {
	case NodeDocument, NodeParagraph, NodeHeading, NodeList, NodeListItem,
		NodeBlockquote, NodeCodeBlock, NodeThematicBreak, NodeHTMLBlock, NodeTable:
		return true
	default:
		return false
	}
}

// HasChildren reports whether n has at least one child.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns the direct children in order.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}
