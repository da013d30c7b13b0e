package lint

import (
	"context"

	"github.com/yaklabco/mdxlint/pkg/config"
	"github.com/yaklabco/mdxlint/pkg/mdast"
)

// RuleContext is what a rule sees while it runs against one file.
//
// It carries a context.Context as a field because it is a short-lived,
// per-invocation parameter object; rules poll Cancelled() between containers.
type RuleContext struct {
	Ctx context.Context

	File *mdast.FileSnapshot

	// Root is File.Root.
	Root *mdast.Node

	Config *config.Config

	// RuleConfig is the rule's entry from the config file, or nil.
	RuleConfig *config.RuleConfig

	// Registry is used for rule name lookups.
	Registry *Registry

	cache *NodeCache
}

// NewRuleContext creates a RuleContext for the given file and configuration.
func NewRuleContext(
	ctx context.Context,
	file *mdast.FileSnapshot,
	cfg *config.Config,
	ruleCfg *config.RuleConfig,
) *RuleContext {
	var root *mdast.Node
	if file != nil {
		root = file.Root
	}

	return &RuleContext{
		Ctx:        ctx,
		File:       file,
		Root:       root,
		Config:     cfg,
		RuleConfig: ruleCfg,
	}
}

// withCache shares an already built NodeCache between the rules of one file.
func (rc *RuleContext) withCache(cache *NodeCache) *RuleContext {
	rc.cache = cache
	return rc
}

// Cancelled returns true if the context has been cancelled.
func (rc *RuleContext) Cancelled() bool {
	if rc.Ctx == nil {
		return false
	}
	select {
	case <-rc.Ctx.Done():
		return true
	default:
		return false
	}
}

// Elements returns every component element named name, in document order.
// The slice is shared with other rules and must not be mutated.
func (rc *RuleContext) Elements(name string) []*mdast.Node {
	if rc.cache == nil {
		rc.cache = newNodeCache()
	}
	rc.cache.build(rc.Root)
	return rc.cache.Elements(name)
}

// Option returns a rule-specific option value, or the default if not set.
func (rc *RuleContext) Option(key string, defaultValue any) any {
	if rc.RuleConfig == nil || rc.RuleConfig.Options == nil {
		return defaultValue
	}
	if v, ok := rc.RuleConfig.Options[key]; ok {
		return v
	}
	return defaultValue
}

// OptionInt returns a rule-specific integer option, or the default.
func (rc *RuleContext) OptionInt(key string, defaultValue int) int {
	switch val := rc.Option(key, defaultValue).(type) {
	case int:
		return val
	case int64:
		// TOML decodes integers as int64.
		return int(val)
	case float64:
		return int(val)
	default:
		return defaultValue
	}
}

// OptionBool returns a rule-specific boolean option, or the default.
func (rc *RuleContext) OptionBool(key string, defaultValue bool) bool {
	if b, ok := rc.Option(key, defaultValue).(bool); ok {
		return b
	}
	return defaultValue
}

// OptionStringSlice returns a rule-specific string slice option, or the default.
func (rc *RuleContext) OptionStringSlice(key string, defaultValue []string) []string {
	v := rc.Option(key, defaultValue)
	if slice, ok := v.([]string); ok {
		return slice
	}
	// YAML and TOML both decode lists as []any.
	if iface, ok := v.([]any); ok {
		result := make([]string, 0, len(iface))
		for _, item := range iface {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
