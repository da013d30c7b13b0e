package rules

import (
	"github.com/yaklabco/mdxlint/pkg/config"
	"github.com/yaklabco/mdxlint/pkg/lint"
)

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	registry.Register(NewStepsChildrenRule()) // MDX001
	registry.Register(NewTabsStructureRule()) // MDX002
}

// RegisterAliases registers the short names accepted wherever a rule key is.
func RegisterAliases(registry *lint.Registry) {
	registry.RegisterAlias("steps", "MDX001")
	registry.RegisterAlias("tabs", "MDX002")
}

// RuleInfos describes the rules of registry for config templates.
func RuleInfos(registry *lint.Registry) []config.RuleInfo {
	rules := registry.Rules()
	infos := make([]config.RuleInfo, 0, len(rules))
	for _, r := range rules {
		infos = append(infos, config.RuleInfo{
			ID:          r.ID(),
			Name:        r.Name(),
			Description: r.Description(),
			Enabled:     r.DefaultEnabled(),
			Severity:    r.DefaultSeverity(),
			Tags:        r.Tags(),
		})
	}
	return infos
}

//nolint:gochecknoinits // automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
	RegisterAliases(lint.DefaultRegistry)

	config.DefaultRuleInfoProvider = func() []config.RuleInfo {
		return RuleInfos(lint.DefaultRegistry)
	}
}
