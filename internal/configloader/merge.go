package configloader

import (
	"maps"

	"github.com/yaklabco/mdxlint/pkg/config"
)

// MergeAll folds layers left to right, so later layers win. Nil layers are
// skipped.
func MergeAll(layers ...*config.Config) *config.Config {
	var result *config.Config
	for _, layer := range layers {
		result = merge(result, layer)
	}
	return result
}

// merge overlays override on base. Non-zero scalars replace, non-nil slices
// replace whole, rule maps merge per rule and per option.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	setIfSet(&result.Flavor, override.Flavor)
	setIfSet(&result.SeverityDefault, override.SeverityDefault)
	setIfSet(&result.Format, override.Format)
	setIfSet(&result.RuleFormat, override.RuleFormat)
	setIfSet(&result.Jobs, override.Jobs)
	// Strict can be switched on by a layer but never back off.
	setIfSet(&result.Strict, override.Strict)

	replaceIfSet(&result.Ignore, override.Ignore)
	replaceIfSet(&result.Extensions, override.Extensions)
	replaceIfSet(&result.EnableRules, override.EnableRules)
	replaceIfSet(&result.DisableRules, override.DisableRules)

	result.Rules = mergeRules(base.Rules, override.Rules)

	return &result
}

func setIfSet[T comparable](dst *T, value T) {
	var zero T
	if value != zero {
		*dst = value
	}
}

func replaceIfSet[T any](dst *[]T, value []T) {
	if value != nil {
		*dst = value
	}
}

func mergeRules(base, override map[string]config.RuleConfig) map[string]config.RuleConfig {
	if base == nil && override == nil {
		return nil
	}

	result := maps.Clone(base)
	if result == nil {
		result = make(map[string]config.RuleConfig, len(override))
	}

	for id, rc := range override {
		result[id] = mergeRuleConfig(result[id], rc)
	}

	return result
}

// mergeRuleConfig overlays the set fields of override on base. Options merge
// key by key without touching either input map.
func mergeRuleConfig(base, override config.RuleConfig) config.RuleConfig {
	result := base
	if override.Enabled != nil {
		result.Enabled = override.Enabled
	}
	if override.Severity != nil {
		result.Severity = override.Severity
	}
	if override.Options != nil {
		options := maps.Clone(base.Options)
		if options == nil {
			options = make(map[string]any, len(override.Options))
		}
		maps.Copy(options, override.Options)
		result.Options = options
	}
	return result
}
