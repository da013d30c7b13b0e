package rules

import (
	"fmt"

	"github.com/yaklabco/mdxlint/pkg/components"
	"github.com/yaklabco/mdxlint/pkg/config"
	"github.com/yaklabco/mdxlint/pkg/lint"
	"github.com/yaklabco/mdxlint/pkg/mdast"
)

// TabsStructureRule checks the children of <Tabs> and that bar and page item
// ids are unique and paired.
type TabsStructureRule struct {
	lint.BaseRule
}

// NewTabsStructureRule creates the MDX002 rule.
func NewTabsStructureRule() *TabsStructureRule {
	return &TabsStructureRule{
		BaseRule: lint.NewBaseRule(
			"MDX002",
			"tabs-structure",
			"<Tabs> components must contain <TabsBar> and <TabsPages> with unique, paired item ids",
			[]string{"components", "tabs"},
			config.SeverityError,
		),
	}
}

// Apply checks every <Tabs> element in the file.
func (r *TabsStructureRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.Root == nil {
		return nil, nil
	}

	limit := maxDistance(ctx)
	var diags []lint.Diagnostic

	for _, tabs := range ctx.Elements(components.TabsTag) {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}

		found, err := components.CheckTabs(tabs)
		if err != nil {
			return nil, fmt.Errorf("check <Tabs>: %w", err)
		}

		hints := newTabsHints(tabs, limit)
		for _, d := range found {
			diags = append(diags, lint.FromComponent(r.ID(), d).
				WithRuleName(r.Name()).
				WithSuggestion(hints.suggest(d)).
				Build())
		}
	}

	return diags, nil
}

// tabsHints holds the ids of one <Tabs> so unmatched ids can be compared
// with the unmatched ids of the other side.
type tabsHints struct {
	limit     int
	barOnly   []string
	pagesOnly []string
}

func newTabsHints(tabs *mdast.Node, limit int) tabsHints {
	bar, pages := components.ItemIDs(tabs)
	return tabsHints{
		limit:     limit,
		barOnly:   missingFrom(bar, pages),
		pagesOnly: missingFrom(pages, bar),
	}
}

// missingFrom returns the ids of a absent from b, in order.
func missingFrom(a, b []string) []string {
	in := make(map[string]struct{}, len(b))
	for _, id := range b {
		in[id] = struct{}{}
	}

	var out []string
	for _, id := range a {
		if _, ok := in[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

func (h tabsHints) suggest(d components.Diagnostic) string {
	switch d.Problem {
	case components.UnexpectedChild:
		return h.unexpectedChild(d)
	case components.DuplicateID:
		return "Give every item on this side a distinct id"
	case components.UnmatchedID:
		return h.unmatched(d)
	default:
		return ""
	}
}

func (h tabsHints) unexpectedChild(d components.Diagnostic) string {
	if d.Node.Kind != mdast.NodeElement {
		return "Move the content into a <TabsPageItem>"
	}

	switch d.Subject {
	case components.TabsBarItemTag:
		return "Move it into <TabsBar>"
	case components.TabsPageItemTag:
		return "Move it into <TabsPages>"
	}

	if tag, ok := closest(d.Subject, []string{components.TabsBarTag, components.TabsPagesTag}, h.limit); ok {
		return fmt.Sprintf("Did you mean <%s>?", tag)
	}
	return fmt.Sprintf("Move <%s> into a <TabsPageItem>", d.Subject)
}

func (h tabsHints) unmatched(d components.Diagnostic) string {
	candidates, otherTag := h.pagesOnly, components.TabsPageItemTag
	if d.Node.ElementName() == components.TabsPageItemTag {
		candidates, otherTag = h.barOnly, components.TabsBarItemTag
	}

	if id, ok := closest(d.Subject, candidates, h.limit); ok {
		return fmt.Sprintf("Did you mean %q? The <%s> uses that id", id, otherTag)
	}
	return fmt.Sprintf("Add a <%s id=%q> or remove this item", otherTag, d.Subject)
}
