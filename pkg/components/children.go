package components

import (
	"slices"

	"github.com/yaklabco/mdxlint/pkg/mdast"
)

// childContract describes which direct children a container accepts.
type childContract struct {
	allowed []string
	reason  func(found string) string
}

// check reports every direct child of container outside the contract, in
// document order.
func (c childContract) check(container *mdast.Node) ([]Diagnostic, error) {
	var diags []Diagnostic

	for child := container.FirstChild; child != nil; child = child.Next {
		if child.Kind == mdast.NodeElement {
			if slices.Contains(c.allowed, child.ElementName()) {
				continue
			}
		} else if insignificant(child) {
			continue
		}

		subject := child.ElementName()
		if child.Kind != mdast.NodeElement {
			subject = nodeText(child)
		}

		diag, err := newDiagnostic(child, UnexpectedChild, subject, c.reason(describe(child)))
		if err != nil {
			return nil, err
		}
		diags = append(diags, diag)
	}

	return diags, nil
}

// eachContainer runs check on every element named name under root, in
// document order, and concatenates the results.
func eachContainer(root *mdast.Node, name string, check func(*mdast.Node) ([]Diagnostic, error)) ([]Diagnostic, error) {
	var diags []Diagnostic

	for _, container := range mdast.FindElements(root, name) {
		found, err := check(container)
		if err != nil {
			return nil, err
		}
		diags = append(diags, found...)
	}

	return diags, nil
}
