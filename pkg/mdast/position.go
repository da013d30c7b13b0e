package mdast

// SourceRange is a half-open byte range in the source.
type SourceRange struct {
	StartOffset int
	EndOffset   int
}

// Len returns the length of the range in bytes.
func (r SourceRange) Len() int {
	return r.EndOffset - r.StartOffset
}

// IsEmpty reports whether the range spans no bytes.
func (r SourceRange) IsEmpty() bool {
	return r.StartOffset == r.EndOffset
}

// Contains reports whether offset falls inside the range.
func (r SourceRange) Contains(offset int) bool {
	return offset >= r.StartOffset && offset < r.EndOffset
}

// Position is a 1-based line and column.
type Position struct {
	Line   int
	Column int
}

// IsValid reports whether both components are positive.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// SourcePosition is a line/column range.
type SourcePosition struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// Start returns the start position.
func (sp SourcePosition) Start() Position {
	return Position{Line: sp.StartLine, Column: sp.StartColumn}
}

// End returns the end position.
func (sp SourcePosition) End() Position {
	return Position{Line: sp.EndLine, Column: sp.EndColumn}
}

// IsValid reports whether both ends are valid positions.
func (sp SourcePosition) IsValid() bool {
	return sp.Start().IsValid() && sp.End().IsValid()
}

// IsSingleLine reports whether the range starts and ends on one line.
func (sp SourcePosition) IsSingleLine() bool {
	return sp.StartLine == sp.EndLine
}

// HasPosition reports whether n is attached to a snapshot and spans a valid
// token range within it.
func (n *Node) HasPosition() bool {
	if n == nil || n.File == nil || n.FirstToken < 0 || n.LastToken < n.FirstToken {
		return false
	}
	return n.LastToken < len(n.File.Tokens)
}

// SourceRange returns the byte range n spans, or an empty range when n has
// no position.
func (n *Node) SourceRange() SourceRange {
	if !n.HasPosition() {
		return SourceRange{}
	}

	tokens := n.File.Tokens
	return SourceRange{
		StartOffset: tokens[n.FirstToken].StartOffset,
		EndOffset:   tokens[n.LastToken].EndOffset,
	}
}

// SourcePosition returns the line/column range of n, or the zero value when
// n has no position.
func (n *Node) SourcePosition() SourcePosition {
	if !n.HasPosition() {
		return SourcePosition{}
	}

	r := n.SourceRange()
	startLine, startCol := n.File.LineAt(r.StartOffset)
	endLine, endCol := n.File.LineAt(r.EndOffset)

	return SourcePosition{
		StartLine:   startLine,
		StartColumn: startCol,
		EndLine:     endLine,
		EndColumn:   endCol,
	}
}

// Text returns the source bytes n spans. Synthetic text nodes return their
// literal instead.
func (n *Node) Text() []byte {
	if n == nil {
		return nil
	}
	if !n.HasPosition() {
		if n.Inline != nil {
			return n.Inline.Text
		}
		return nil
	}

	r := n.SourceRange()
	return n.File.Content[r.StartOffset:r.EndOffset]
}
