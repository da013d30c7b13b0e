package lint

import "github.com/yaklabco/mdxlint/pkg/config"

// BaseRule carries the static metadata of a rule. Embed it and implement
// Apply.
type BaseRule struct {
	id       string
	name     string
	desc     string
	tags     []string
	severity config.Severity
}

// NewBaseRule returns rule metadata with the given default severity.
func NewBaseRule(id, name, desc string, tags []string, severity config.Severity) BaseRule {
	return BaseRule{
		id:       id,
		name:     name,
		desc:     desc,
		tags:     tags,
		severity: severity,
	}
}

// ID returns the rule identifier.
func (r *BaseRule) ID() string {
	return r.id
}

// Name returns the kebab-case rule name.
func (r *BaseRule) Name() string {
	return r.name
}

// Description returns what the rule checks.
func (r *BaseRule) Description() string {
	return r.desc
}

// DefaultEnabled returns true; every built-in rule is on unless configured
// otherwise.
func (r *BaseRule) DefaultEnabled() bool {
	return true
}

// DefaultSeverity returns the severity given at construction, or warning.
func (r *BaseRule) DefaultSeverity() config.Severity {
	if r.severity == "" {
		return config.SeverityWarning
	}
	return r.severity
}

// Tags returns the rule's categories.
func (r *BaseRule) Tags() []string {
	return r.tags
}

// Apply reports nothing. Concrete rules override it.
func (r *BaseRule) Apply(_ *RuleContext) ([]Diagnostic, error) {
	return nil, nil
}
