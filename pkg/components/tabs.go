package components

import (
	"fmt"

	"github.com/yaklabco/mdxlint/pkg/mdast"
)

// Tag names of the tabbed content component.
const (
	TabsTag         = "Tabs"
	TabsBarTag      = "TabsBar"
	TabsPagesTag    = "TabsPages"
	TabsBarItemTag  = "TabsBarItem"
	TabsPageItemTag = "TabsPageItem"
)

// IDAttribute pairs bar items with page items.
const IDAttribute = "id"

var tabsContract = childContract{
	allowed: []string{TabsBarTag, TabsPagesTag},
	reason: func(found string) string {
		return "<Tabs> component must only contain <TabsBar> and <TabsPages> components as immediate children but found " + found
	},
}

// ValidateTabs checks every <Tabs> element in the tree, at any depth.
//
// For each container the direct children are checked first. Then the ids of
// the bar items and page items are checked for duplicates within a side and
// for ids present on one side only. Bar-side diagnostics precede page-side
// ones. The only error is ErrNoPosition.
func ValidateTabs(root *mdast.Node) ([]Diagnostic, error) {
	return eachContainer(root, TabsTag, CheckTabs)
}

// CheckTabs checks a single <Tabs> element.
func CheckTabs(tabs *mdast.Node) ([]Diagnostic, error) {
	diags, err := tabsContract.check(tabs)
	if err != nil {
		return nil, err
	}

	barItems := sideItems(tabs, TabsBarTag, TabsBarItemTag)
	pageItems := sideItems(tabs, TabsPagesTag, TabsPageItemTag)
	bar := indexIDs(barItems)
	pages := indexIDs(pageItems)

	barDiags, err := checkSide(barItems, pages, TabsBarItemTag, TabsPageItemTag)
	if err != nil {
		return nil, err
	}
	pageDiags, err := checkSide(pageItems, bar, TabsPageItemTag, TabsBarItemTag)
	if err != nil {
		return nil, err
	}

	diags = append(diags, barDiags...)
	return append(diags, pageDiags...), nil
}

// ItemIDs returns the distinct bar and page ids of a <Tabs> element in
// first-seen order.
func ItemIDs(tabs *mdast.Node) ([]string, []string) {
	bar := indexIDs(sideItems(tabs, TabsBarTag, TabsBarItemTag))
	pages := indexIDs(sideItems(tabs, TabsPagesTag, TabsPageItemTag))
	return bar.ids, pages.ids
}

// ItemID returns the id of a bar or page item. A missing attribute is the
// empty string, which pairs and collides like any other id.
func ItemID(item *mdast.Node) string {
	id, _ := item.Attr(IDAttribute)
	return id
}

// idIndex maps each id to its first occurrence and remembers the order in
// which ids were first seen.
type idIndex struct {
	ids   []string
	first map[string]*mdast.Node
}

func indexIDs(items []*mdast.Node) idIndex {
	idx := idIndex{first: make(map[string]*mdast.Node, len(items))}
	for _, item := range items {
		id := ItemID(item)
		if _, ok := idx.first[id]; ok {
			continue
		}
		idx.first[id] = item
		idx.ids = append(idx.ids, id)
	}
	return idx
}

func (idx idIndex) has(id string) bool {
	_, ok := idx.first[id]
	return ok
}

// sideItems collects the item elements directly inside every side container
// of tabs, in document order.
func sideItems(tabs *mdast.Node, sideTag, itemTag string) []*mdast.Node {
	var items []*mdast.Node
	for _, side := range tabs.ChildElements(sideTag) {
		items = append(items, side.ChildElements(itemTag)...)
	}
	return items
}

// checkSide reports repeats within items and ids missing from other. A
// repeated id is reported once, as a duplicate.
func checkSide(items []*mdast.Node, other idIndex, itemTag, otherTag string) ([]Diagnostic, error) {
	var diags []Diagnostic
	seen := make(map[string]struct{}, len(items))

	for _, item := range items {
		id := ItemID(item)

		var (
			diag Diagnostic
			err  error
		)
		switch _, dup := seen[id]; {
		case dup:
			diag, err = newDiagnostic(item, DuplicateID, id,
				fmt.Sprintf("<%s> components must have unique ids but found duplicate id %q", itemTag, id))
		case !other.has(id):
			diag, err = newDiagnostic(item, UnmatchedID, id,
				fmt.Sprintf("<%s> with id %q has no matching <%s>", itemTag, id, otherTag))
		default:
			seen[id] = struct{}{}
			continue
		}
		if err != nil {
			return nil, err
		}

		seen[id] = struct{}{}
		diags = append(diags, diag)
	}

	return diags, nil
}
