package components

import "github.com/yaklabco/mdxlint/pkg/mdast"

// Tag names of the stepped list.
const (
	StepsTag = "Steps"
	StepTag  = "Step"
)

var stepsContract = childContract{
	allowed: []string{StepTag},
	reason: func(found string) string {
		return "<Steps> component must only contain <Step> components as immediate children but found " + found
	},
}

// ValidateSteps checks every <Steps> element in the tree, at any depth.
// Each direct child that is not a <Step> element and not blank text yields
// one diagnostic. The only error is ErrNoPosition.
func ValidateSteps(root *mdast.Node) ([]Diagnostic, error) {
	return eachContainer(root, StepsTag, CheckSteps)
}

// CheckSteps checks the direct children of a single <Steps> element.
func CheckSteps(steps *mdast.Node) ([]Diagnostic, error) {
	return stepsContract.check(steps)
}
