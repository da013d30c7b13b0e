package mdast

import "errors"

// WalkFunc is called for each visited node. A non-nil error stops the walk.
type WalkFunc func(n *Node) error

// Walk visits root and its descendants in pre-order (document order).
func Walk(root *Node, walkFunc WalkFunc) error {
	if root == nil {
		return nil
	}

	if err := walkFunc(root); err != nil {
		return err
	}

	for child := root.FirstChild; child != nil; child = child.Next {
		if err := Walk(child, walkFunc); err != nil {
			return err
		}
	}

	return nil
}

// WalkWithContext calls enter before and leave after visiting the children
// of each node. Either callback may be nil.
func WalkWithContext(root *Node, enter, leave WalkFunc) error {
	if root == nil {
		return nil
	}

	if enter != nil {
		if err := enter(root); err != nil {
			return err
		}
	}

	for child := root.FirstChild; child != nil; child = child.Next {
		if err := WalkWithContext(child, enter, leave); err != nil {
			return err
		}
	}

	if leave != nil {
		return leave(root)
	}

	return nil
}

// FindAll returns every node matching predicate in document order.
func FindAll(root *Node, predicate func(n *Node) bool) []*Node {
	var result []*Node

	//nolint:errcheck // the callback never fails
	Walk(root, func(n *Node) error {
		if predicate(n) {
			result = append(result, n)
		}
		return nil
	})

	return result
}

var errStopWalk = errors.New("stop walk")

// FindFirst returns the first node matching predicate, or nil.
func FindFirst(root *Node, predicate func(n *Node) bool) *Node {
	var found *Node

	//nolint:errcheck // errStopWalk only ends the walk early
	Walk(root, func(n *Node) error {
		if predicate(n) {
			found = n
			return errStopWalk
		}
		return nil
	})

	return found
}

// FindByKind returns all nodes of kind.
func FindByKind(root *Node, kind NodeKind) []*Node {
	return FindAll(root, func(n *Node) bool {
		return n.Kind == kind
	})
}

// FindElements returns every element named name at any depth, in document
// order. Elements nested inside a match are included.
func FindElements(root *Node, name string) []*Node {
	return FindAll(root, func(n *Node) bool {
		return n.IsElement(name)
	})
}
