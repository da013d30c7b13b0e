package rules

import (
	"slices"

	"github.com/yaklabco/mdxlint/pkg/config"
)

// Pack is a named set of rule defaults that `mdxlint init --pack` writes
// into a new config file.
type Pack struct {
	Name        string
	Description string

	// Rules is keyed by rule ID.
	Rules map[string]config.RuleConfig
}

// RecommendedPack treats every structural violation as an error.
func RecommendedPack() Pack {
	return Pack{
		Name:        "recommended",
		Description: "Every component rule as an error",
		Rules: map[string]config.RuleConfig{
			"MDX001": enabled("error"), // steps-children
			"MDX002": enabled("error"), // tabs-structure
		},
	}
}

// RelaxedPack reports violations as warnings so they do not fail a build
// unless --strict is given.
func RelaxedPack() Pack {
	return Pack{
		Name:        "relaxed",
		Description: "Every component rule as a warning",
		Rules: map[string]config.RuleConfig{
			"MDX001": enabled("warning"), // steps-children
			"MDX002": enabled("warning"), // tabs-structure
		},
	}
}

// TabsOnlyPack checks <Tabs> and leaves <Steps> alone.
func TabsOnlyPack() Pack {
	return Pack{
		Name:        "tabs-only",
		Description: "Only the <Tabs> rule, as an error",
		Rules: map[string]config.RuleConfig{
			"MDX001": disabled(),       // steps-children
			"MDX002": enabled("error"), // tabs-structure
		},
	}
}

// Packs returns every built-in pack.
func Packs() []Pack {
	return []Pack{
		RecommendedPack(),
		RelaxedPack(),
		TabsOnlyPack(),
	}
}

// PackByName returns a pack by name, or nil if not found.
func PackByName(name string) *Pack {
	for _, p := range Packs() {
		if p.Name == name {
			return &p
		}
	}
	return nil
}

// PackNames returns the sorted pack names.
func PackNames() []string {
	packs := Packs()
	names := make([]string, 0, len(packs))
	for _, p := range packs {
		names = append(names, p.Name)
	}
	slices.Sort(names)
	return names
}

func enabled(sev string) config.RuleConfig {
	on := true
	return config.RuleConfig{Enabled: &on, Severity: &sev}
}

func disabled() config.RuleConfig {
	off := false
	return config.RuleConfig{Enabled: &off}
}
