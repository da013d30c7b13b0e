package components

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/mdxlint/pkg/mdast"
)

// ErrorType is the kind of a diagnostic.
type ErrorType string

const (
	// ValidationError marks a violated component contract. It is the only
	// kind the validators in this package emit.
	ValidationError ErrorType = "VALIDATION_ERROR"

	// ParseError marks a file whose markup could not be turned into a tree.
	// It is produced by hosts, never by the validators.
	ParseError ErrorType = "PARSE_ERROR"
)

// Problem identifies which check produced a diagnostic.
type Problem int

const (
	// UnexpectedChild is a direct child outside a container's allowed set.
	UnexpectedChild Problem = iota
	// DuplicateID is a repeated id within one side of a Tabs container.
	DuplicateID
	// UnmatchedID is an id present on one side of a Tabs container only.
	UnmatchedID
)

func (p Problem) String() string {
	switch p {
	case UnexpectedChild:
		return "unexpected-child"
	case DuplicateID:
		return "duplicate-id"
	case UnmatchedID:
		return "unmatched-id"
	default:
		return "unknown"
	}
}

// Diagnostic is one violation.
type Diagnostic struct {
	Type ErrorType `json:"type"`

	// Line is the 1-based line of the offending node.
	Line int `json:"line"`

	Reason string `json:"reason"`

	Problem Problem `json:"-"`

	// Subject is the offending tag name, text or id, without decoration.
	Subject string `json:"-"`

	// Node is the offending node. It is not owned by the diagnostic.
	Node *mdast.Node `json:"-"`
}

// ErrNoPosition is returned when a node that must be reported carries no
// source position. Parsed trees never trigger it.
var ErrNoPosition = errors.New("node has no source position")

// Line returns the 1-based source line a node starts on.
func Line(n *mdast.Node) (int, error) {
	if !n.HasPosition() {
		return 0, fmt.Errorf("%s node: %w", n.Kind, ErrNoPosition)
	}

	line := n.SourcePosition().StartLine
	if line <= 0 {
		return 0, fmt.Errorf("%s node: %w", n.Kind, ErrNoPosition)
	}

	return line, nil
}

func newDiagnostic(n *mdast.Node, problem Problem, subject, reason string) (Diagnostic, error) {
	line, err := Line(n)
	if err != nil {
		return Diagnostic{}, err
	}

	return Diagnostic{
		Type:    ValidationError,
		Line:    line,
		Reason:  reason,
		Problem: problem,
		Subject: subject,
		Node:    n,
	}, nil
}

// describe renders a child for a reason sentence: elements as <Tag>, anything
// else as its quoted text.
func describe(n *mdast.Node) string {
	if n.Kind == mdast.NodeElement {
		return "<" + n.ElementName() + ">"
	}
	return `"` + nodeText(n) + `"`
}

// nodeText returns the text of a node with every line trimmed.
func nodeText(n *mdast.Node) string {
	lines := strings.Split(strings.TrimSpace(string(n.Text())), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}

// insignificant reports whether a non-element child carries nothing worth
// reporting: blank text, or an expression holding only a comment.
func insignificant(n *mdast.Node) bool {
	text := strings.TrimSpace(string(n.Text()))
	if text == "" {
		return true
	}
	if n.Kind != mdast.NodeExpression {
		return false
	}

	body := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(text, "{"), "}"))
	return len(body) >= 4 && strings.HasPrefix(body, "/*") && strings.HasSuffix(body, "*/") &&
		!strings.Contains(body[2:len(body)-2], "*/")
}
