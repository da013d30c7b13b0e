package mdast

// TokenKind classifies a span of source bytes.
type TokenKind uint16

// Token kinds. Markdown between component tags is only split into words,
// spaces and line breaks; structure lives in the node tree.
const (
	TokText TokenKind = iota
	TokWhitespace
	TokNewline
	TokTagOpen  // <Name ...> or <Name ... />
	TokTagClose // </Name>
	TokExpression
	TokESM      // top-level import/export block
)

var tokenKindNames = [...]string{
	TokText:       "Text",
	TokWhitespace: "Whitespace",
	TokNewline:    "Newline",
	TokTagOpen:    "TagOpen",
	TokTagClose:   "TagClose",
	TokExpression: "Expression",
	TokESM:        "ESM",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return "Unknown"
}

// Token is a classified, half-open byte span [StartOffset, EndOffset).
type Token struct {
	Kind        TokenKind
	StartOffset int
	EndOffset   int

	// Meta is parser-specific. Tag tokens carry the tag name as a string.
	Meta any
}

// Text returns the bytes of t within content.
func (t Token) Text(content []byte) []byte {
	if t.StartOffset < 0 || t.EndOffset > len(content) || t.StartOffset > t.EndOffset {
		return nil
	}
	return content[t.StartOffset:t.EndOffset]
}

// Len returns the token length in bytes.
func (t Token) Len() int {
	return t.EndOffset - t.StartOffset
}

// IsEmpty reports whether the token spans no bytes.
func (t Token) IsEmpty() bool {
	return t.StartOffset == t.EndOffset
}

// ValidateTokens reports whether tokens are contiguous, non-overlapping and
// cover exactly [0, contentLen).
func ValidateTokens(tokens []Token, contentLen int) bool {
	if len(tokens) == 0 {
		return contentLen == 0
	}

	if tokens[0].StartOffset != 0 || tokens[len(tokens)-1].EndOffset != contentLen {
		return false
	}

	for i := 1; i < len(tokens); i++ {
		if tokens[i].StartOffset != tokens[i-1].EndOffset {
			return false
		}
	}

	return true
}
