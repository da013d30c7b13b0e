package mdast

// BlockAttrs holds attributes for Markdown block nodes.
type BlockAttrs struct {
	// HeadingLevel is 1-6 for NodeHeading.
	HeadingLevel int

	List      *ListAttrs
	CodeBlock *CodeBlockAttrs
}

// ListAttrs describes a NodeList.
type ListAttrs struct {
	Ordered      bool
	BulletMarker string
	StartNumber  int
	Tight        bool
}

// CodeBlockAttrs describes a fenced NodeCodeBlock.
type CodeBlockAttrs struct {
	// FenceChar is '`' or '~'.
	FenceChar byte

	// Info is the info string after the opening fence.
	Info string
}

// InlineAttrs holds literal text for NodeText.
type InlineAttrs struct {
	Text []byte
}

// ElementAttrs describes a component tag.
type ElementAttrs struct {
	// Name is the tag name as written, e.g. "TabsBarItem" or "Docs.Note".
	Name string

	// Attributes are in source order. Duplicates are kept.
	Attributes []Attribute

	// SelfClosing is true for <Name />.
	SelfClosing bool
}

// Attribute is one attribute of a component tag.
type Attribute struct {
	// Name is empty for spread attributes ({...props}).
	Name string

	// Value is the unquoted string value, or the raw expression source
	// without braces when Expression is set. A single string literal inside
	// braces is unwrapped to its contents.
	Value string

	// Expression is true for {...} values that are not a plain literal.
	Expression bool

	// Boolean is true for a bare attribute with no value.
	Boolean bool
}

// Attr returns the value of the first attribute named name.
func (a *ElementAttrs) Attr(name string) (string, bool) {
	if a == nil {
		return "", false
	}
	for _, attr := range a.Attributes {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}
