package configloader

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/mdxlint/pkg/config"
	"github.com/yaklabco/mdxlint/pkg/lint"
)

// ValidationError is one problem found in a configuration.
type ValidationError struct {
	// Field is the dotted path of the offending key, like
	// "rules.MDX001.severity".
	Field    string
	Value    any
	Message  string
	FilePath string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, 3)
	for _, part := range []string{e.FilePath, e.Field} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(append(parts, e.Message), ": ")
}

// ValidationResult collects the problems found in one configuration.
// Errors stop loading; warnings such as unknown rules are only logged.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings reports whether there are warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages renders errors then warnings, each prefixed with its level.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks cfg against the rules in lint.DefaultRegistry.
func Validate(cfg *config.Config) *ValidationResult {
	return ValidateWithRegistry(cfg, lint.DefaultRegistry)
}

// ValidateWithRegistry checks cfg, looking rule keys up in registry. A nil
// registry skips the unknown-rule check.
func ValidateWithRegistry(cfg *config.Config, registry *lint.Registry) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Flavor != "" && !IsValidFlavor(cfg.Flavor) {
		result.fail("flavor", cfg.Flavor, "invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor)
	}
	if cfg.SeverityDefault != "" && !IsValidSeverity(cfg.SeverityDefault) {
		result.fail("severity_default", cfg.SeverityDefault, "invalid severity %q; %s", cfg.SeverityDefault, severityChoices)
	}
	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.fail("format", cfg.Format, "invalid format %q; must be one of: text, json, sarif, summary", cfg.Format)
	}
	if cfg.RuleFormat != "" && !cfg.RuleFormat.IsValid() {
		result.fail("rule_format", cfg.RuleFormat, "invalid rule format %q; must be one of: name, id, combined", cfg.RuleFormat)
	}
	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	for _, ruleKey := range slices.Sorted(maps.Keys(cfg.Rules)) {
		validateRule(ruleKey, cfg.Rules[ruleKey], registry, result)
	}

	for i, pattern := range cfg.Ignore {
		// filepath.Match only errors on malformed patterns.
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}

	for i, ext := range cfg.Extensions {
		if len(ext) < 2 || ext[0] != '.' || strings.ContainsAny(ext[1:], `./\`) {
			result.fail(fmt.Sprintf("extensions[%d]", i), ext, "invalid extension %q; must look like .mdx", ext)
		}
	}

	return result
}

const severityChoices = "must be one of: error, warning, info"

func validateRule(key string, rc config.RuleConfig, registry *lint.Registry, result *ValidationResult) {
	field := "rules." + key

	if registry != nil {
		if _, _, ok := registry.Resolve(key); !ok {
			if near, found := registry.Suggest(key); found {
				result.warn(field, key, "unknown rule %q; it will be ignored (did you mean %q?)", key, near)
			} else {
				result.warn(field, key, "unknown rule %q; it will be ignored", key)
			}
		}
	}

	if rc.Severity != nil && !IsValidSeverity(*rc.Severity) {
		result.fail(field+".severity", *rc.Severity, "invalid severity %q; %s", *rc.Severity, severityChoices)
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidSeverity returns true if the severity string is valid.
func IsValidSeverity(s string) bool {
	return config.Severity(s).IsValid()
}

// IsValidFlavor returns true if the flavor is valid.
func IsValidFlavor(f config.Flavor) bool {
	return f == config.FlavorCommonMark || f == config.FlavorGFM
}
