package config

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// Template formats.
const (
	TemplateYAML = "yaml"
	TemplateTOML = "toml"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every rule. Otherwise a short commented file is made.
	Full bool

	// Format is TemplateYAML (default) or TemplateTOML.
	Format string

	// Rules, when set, are written as active rules: entries, e.g. from a
	// rule pack.
	Rules map[string]RuleConfig
}

// RuleInfo is the rule metadata shown in templates.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Enabled     bool
	Severity    Severity
	Tags        []string
}

// RuleInfoProvider lists the registered rules without config importing the
// lint package.
type RuleInfoProvider func() []RuleInfo

// DefaultRuleInfoProvider is installed by the rules package in init.
//
//nolint:gochecknoglobals // extension point for rule info
var DefaultRuleInfoProvider RuleInfoProvider

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch opts.Format {
	case "", TemplateYAML:
		return generateYAMLTemplate(opts), nil
	case TemplateTOML:
		return generateTOMLTemplate(opts), nil
	default:
		return nil, fmt.Errorf("unknown template format %q (want %s or %s)", opts.Format, TemplateYAML, TemplateTOML)
	}
}

func generateYAMLTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Markdown flavor between component tags: commonmark or gfm
flavor: gfm

# Replace every rule's built-in severity: error, warning, or info
# severity_default: warning

# File extensions to lint
extensions:
  - .mdx
  - .md
  - .markdown

# Glob patterns for paths to skip
# ignore:
#   - "node_modules/**"
#   - "dist/**"
`)

	switch {
	case len(opts.Rules) > 0:
		buf.WriteString("\nrules:\n")
		for _, id := range sortedKeys(opts.Rules) {
			writeYAMLRule(&buf, id, opts.Rules[id])
		}
	case opts.Full:
		buf.WriteString("\n# Rule-specific configuration\nrules:\n")
		for _, rule := range ruleInfos() {
			fmt.Fprintf(&buf, "\n  # %s: %s\n", rule.ID, rule.Name)
			fmt.Fprintf(&buf, "  # %s\n", wrapComment(rule.Description, commentWrapWidth, "  # "))
			if len(rule.Tags) > 0 {
				fmt.Fprintf(&buf, "  # Tags: %s\n", strings.Join(rule.Tags, ", "))
			}
			fmt.Fprintf(&buf, "  %s:\n", rule.ID)
			fmt.Fprintf(&buf, "    enabled: %t\n", rule.Enabled)
			fmt.Fprintf(&buf, "    severity: %s\n", rule.Severity)
			buf.WriteString("    # options:\n")
			buf.WriteString("    #   max_distance: 2\n")
		}
	default:
		buf.WriteString(`
# Rule-specific configuration, keyed by ID, name or alias
# rules:
#   MDX001:
#     enabled: true
#     severity: error
#   tabs:
#     options:
#       max_distance: 1
`)
	}

	return buf.Bytes()
}

func writeYAMLRule(buf *bytes.Buffer, id string, rc RuleConfig) {
	fmt.Fprintf(buf, "  %s:\n", id)
	if rc.Enabled != nil {
		fmt.Fprintf(buf, "    enabled: %t\n", *rc.Enabled)
	}
	if rc.Severity != nil {
		fmt.Fprintf(buf, "    severity: %s\n", *rc.Severity)
	}
}

func generateTOMLTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Markdown flavor between component tags: commonmark or gfm
flavor = "gfm"

# Replace every rule's built-in severity: error, warning, or info
# severity_default = "warning"

# File extensions to lint
extensions = [".mdx", ".md", ".markdown"]

# Glob patterns for paths to skip
# ignore = ["node_modules/**", "dist/**"]
`)

	rules := opts.Rules
	if len(rules) == 0 && opts.Full {
		rules = make(map[string]RuleConfig)
		for _, rule := range ruleInfos() {
			enabled := rule.Enabled
			severity := string(rule.Severity)
			rules[rule.ID] = RuleConfig{Enabled: &enabled, Severity: &severity}
		}
	}

	if len(rules) == 0 {
		buf.WriteString(`
# Rule-specific configuration, keyed by ID, name or alias
# [rules.MDX001]
# enabled = true
# severity = "error"
`)
		return buf.Bytes()
	}

	names := make(map[string]string)
	for _, rule := range ruleInfos() {
		names[rule.ID] = rule.Name
	}

	for _, id := range sortedKeys(rules) {
		rc := rules[id]
		buf.WriteByte('\n')
		if name := names[id]; name != "" {
			fmt.Fprintf(&buf, "# %s\n", name)
		}
		fmt.Fprintf(&buf, "[rules.%s]\n", id)
		if rc.Enabled != nil {
			fmt.Fprintf(&buf, "enabled = %t\n", *rc.Enabled)
		}
		if rc.Severity != nil {
			fmt.Fprintf(&buf, "severity = %q\n", *rc.Severity)
		}
	}

	return buf.Bytes()
}

// ruleInfos returns the registered rules sorted by ID.
func ruleInfos() []RuleInfo {
	if DefaultRuleInfoProvider == nil {
		return nil
	}

	rules := DefaultRuleInfoProvider()
	slices.SortFunc(rules, func(a, b RuleInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return rules
}

func sortedKeys(rules map[string]RuleConfig) []string {
	keys := make([]string, 0, len(rules))
	for k := range rules {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// wrapComment wraps text to maxWidth, continuing lines with prefix.
func wrapComment(text string, maxWidth int, prefix string) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	current := ""

	for _, word := range strings.Fields(text) {
		switch {
		case current == "":
			current = word
		case len(current)+1+len(word) <= maxWidth:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}

	return strings.Join(lines, "\n"+prefix)
}

// DefaultTemplateHeader returns the header comment of generated configs.
func DefaultTemplateHeader() string {
	return `# mdxlint configuration
# See: https://github.com/yaklabco/mdxlint`
}
