package mdx

import (
	"strings"

	"github.com/yaklabco/mdxlint/pkg/mdast"
)

// rawTag is a component tag recognised in the source.
type rawTag struct {
	name        string
	attrs       []mdast.Attribute
	closing     bool
	selfClosing bool
	start       int // offset of '<'
	end         int // offset just past '>'
}

// scanTag tries to read a component tag starting at src[pos] == '<'.
// Only capitalised names are components; anything else is left to Markdown.
func scanTag(src []byte, pos int) (rawTag, bool) {
	tag := rawTag{start: pos}
	i := pos + 1

	if i < len(src) && src[i] == '/' {
		tag.closing = true
		i++
	}

	name, next := scanName(src, i)
	if name == "" {
		return rawTag{}, false
	}
	tag.name = name
	i = next

	if tag.closing {
		i = skipSpace(src, i)
		if i >= len(src) || src[i] != '>' {
			return rawTag{}, false
		}
		tag.end = i + 1
		return tag, true
	}

	for {
		before := i
		i = skipSpace(src, i)
		if i >= len(src) {
			return rawTag{}, false
		}

		switch src[i] {
		case '>':
			tag.end = i + 1
			return tag, true

		case '/':
			i = skipSpace(src, i+1)
			if i >= len(src) || src[i] != '>' {
				return rawTag{}, false
			}
			tag.selfClosing = true
			tag.end = i + 1
			return tag, true

		case '{':
			body, next, ok := scanBraces(src, i)
			if !ok {
				return rawTag{}, false
			}
			tag.attrs = append(tag.attrs, mdast.Attribute{Value: body, Expression: true})
			i = next

		default:
			if i == before {
				// Attributes must be separated from the name and each other.
				return rawTag{}, false
			}
			attr, next, ok := scanAttribute(src, i)
			if !ok {
				return rawTag{}, false
			}
			tag.attrs = append(tag.attrs, attr)
			i = next
		}
	}
}

func scanName(src []byte, i int) (string, int) {
	if i >= len(src) || src[i] < 'A' || src[i] > 'Z' {
		return "", i
	}

	start := i
	for i < len(src) && isNameByte(src[i]) {
		i++
	}

	name := string(src[start:i])
	if strings.HasSuffix(name, ".") || strings.Contains(name, "..") {
		return "", start
	}

	return name, i
}

func isNameByte(c byte) bool {
	return c == '_' || c == '.' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isAttrNameByte(c byte) bool {
	return isNameByte(c) || c == '-' || c == ':'
}

func scanAttribute(src []byte, i int) (mdast.Attribute, int, bool) {
	start := i
	for i < len(src) && isAttrNameByte(src[i]) {
		i++
	}
	if i == start {
		return mdast.Attribute{}, i, false
	}

	attr := mdast.Attribute{Name: string(src[start:i])}

	j := skipSpace(src, i)
	if j >= len(src) || src[j] != '=' {
		attr.Boolean = true
		return attr, i, true
	}

	j = skipSpace(src, j+1)
	if j >= len(src) {
		return mdast.Attribute{}, j, false
	}

	switch quote := src[j]; quote {
	case '"', '\'':
		closeIdx := strings.IndexByte(string(src[j+1:]), quote)
		if closeIdx < 0 {
			return mdast.Attribute{}, j, false
		}
		attr.Value = string(src[j+1 : j+1+closeIdx])
		return attr, j + closeIdx + 2, true

	case '{':
		body, next, ok := scanBraces(src, j)
		if !ok {
			return mdast.Attribute{}, j, false
		}
		if lit, isLit := stringLiteral(body); isLit {
			attr.Value = lit
		} else {
			attr.Value = body
			attr.Expression = true
		}
		return attr, next, true

	default:
		return mdast.Attribute{}, j, false
	}
}

// scanBraces reads a balanced {...} expression starting at src[i] == '{'.
// It returns the trimmed body and the offset past the closing brace.
func scanBraces(src []byte, i int) (string, int, bool) {
	depth := 0
	start := i

	for i < len(src) {
		switch c := src[i]; c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return strings.TrimSpace(string(src[start+1 : i])), i + 1, true
			}
		case '"', '\'', '`':
			end := skipJSString(src, i)
			if end < 0 {
				return "", i, false
			}
			i = end
			continue
		}
		i++
	}

	return "", i, false
}

// skipJSString returns the offset past the string literal opening at src[i],
// or -1 when it is unterminated.
func skipJSString(src []byte, i int) int {
	quote := src[i]
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case quote:
			return j + 1
		case '\n':
			if quote != '`' {
				return -1
			}
		}
	}
	return -1
}

// stringLiteral unwraps an expression that is exactly one string literal.
func stringLiteral(expr string) (string, bool) {
	if len(expr) < 2 {
		return "", false
	}

	quote := expr[0]
	if quote != '"' && quote != '\'' && quote != '`' {
		return "", false
	}
	if skipJSString([]byte(expr), 0) != len(expr) {
		return "", false
	}

	body := expr[1 : len(expr)-1]
	if quote == '`' && strings.Contains(body, "${") {
		return "", false
	}
	if strings.Contains(body, "\\") {
		return "", false
	}

	return body, true
}

func skipSpace(src []byte, i int) int {
	for i < len(src) {
		switch src[i] {
		case ' ', '\t', '\n', '\r':
			i++
		default:
			return i
		}
	}
	return i
}
