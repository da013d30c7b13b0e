package lint

import "github.com/yaklabco/mdxlint/pkg/config"

// ResolvedRule pairs a Rule with its effective configuration.
type ResolvedRule struct {
	Rule     Rule
	Enabled  bool
	Severity config.Severity

	// Config is the rule's config file entry (may be nil).
	Config *config.RuleConfig
}

// ResolveRules returns the enabled rules in ID order.
//
// Precedence, lowest first: rule defaults, severity_default, the config
// file's rules: entry, then --enable and --disable. Keys in either list may be IDs, names or
// aliases.
func ResolveRules(registry *Registry, cfg *config.Config) []ResolvedRule {
	var resolved []ResolvedRule

	for _, rule := range registry.Rules() {
		rr := resolveRule(registry, rule, cfg)
		if rr.Enabled {
			resolved = append(resolved, rr)
		}
	}

	return resolved
}

func resolveRule(registry *Registry, rule Rule, cfg *config.Config) ResolvedRule {
	rr := ResolvedRule{
		Rule:     rule,
		Enabled:  rule.DefaultEnabled(),
		Severity: rule.DefaultSeverity(),
	}

	if cfg == nil {
		return rr
	}

	if cfg.SeverityDefault != "" {
		rr.Severity = config.Severity(cfg.SeverityDefault)
	}

	if ruleCfg, ok := cfg.Rules[rule.ID()]; ok {
		rr.Config = &ruleCfg

		if ruleCfg.Enabled != nil {
			rr.Enabled = *ruleCfg.Enabled
		}
		if ruleCfg.Severity != nil {
			rr.Severity = config.Severity(*ruleCfg.Severity)
		}
	}

	if matchesAny(registry, rule, cfg.EnableRules) {
		rr.Enabled = true
	}
	if matchesAny(registry, rule, cfg.DisableRules) {
		rr.Enabled = false
	}

	return rr
}

func matchesAny(registry *Registry, rule Rule, keys []string) bool {
	for _, key := range keys {
		if key == rule.ID() {
			return true
		}
		if id, _, ok := registry.Resolve(key); ok && id == rule.ID() {
			return true
		}
	}
	return false
}
