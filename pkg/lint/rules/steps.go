package rules

import (
	"fmt"

	"github.com/yaklabco/mdxlint/pkg/components"
	"github.com/yaklabco/mdxlint/pkg/config"
	"github.com/yaklabco/mdxlint/pkg/lint"
	"github.com/yaklabco/mdxlint/pkg/mdast"
)

// StepsChildrenRule reports anything other than <Step> directly inside
// <Steps>.
type StepsChildrenRule struct {
	lint.BaseRule
}

// NewStepsChildrenRule creates the MDX001 rule.
func NewStepsChildrenRule() *StepsChildrenRule {
	return &StepsChildrenRule{
		BaseRule: lint.NewBaseRule(
			"MDX001",
			"steps-children",
			"<Steps> components must only contain <Step> components as immediate children",
			[]string{"components", "steps"},
			config.SeverityError,
		),
	}
}

// Apply checks every <Steps> element in the file.
func (r *StepsChildrenRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.Root == nil {
		return nil, nil
	}

	limit := maxDistance(ctx)
	var diags []lint.Diagnostic

	for _, steps := range ctx.Elements(components.StepsTag) {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}

		found, err := components.CheckSteps(steps)
		if err != nil {
			return nil, fmt.Errorf("check <Steps>: %w", err)
		}

		for _, d := range found {
			diags = append(diags, lint.FromComponent(r.ID(), d).
				WithRuleName(r.Name()).
				WithSuggestion(stepsSuggestion(d, limit)).
				Build())
		}
	}

	return diags, nil
}

func stepsSuggestion(d components.Diagnostic, limit int) string {
	if d.Node.Kind != mdast.NodeElement {
		return "Wrap the content in a <Step>"
	}
	if tag, ok := closest(d.Subject, []string{components.StepTag}, limit); ok {
		return fmt.Sprintf("Did you mean <%s>?", tag)
	}
	return fmt.Sprintf("Move <%s> into a <Step> or outside <Steps>", d.Subject)
}
