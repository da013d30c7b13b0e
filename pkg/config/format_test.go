package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdxlint/pkg/config"
)

func TestFormatRuleID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		format   config.RuleFormat
		ruleID   string
		ruleName string
		want     string
	}{
		{"name format", config.RuleFormatName, "MDX002", "tabs-structure", "tabs-structure"},
		{"id format", config.RuleFormatID, "MDX002", "tabs-structure", "MDX002"},
		{"combined format", config.RuleFormatCombined, "MDX002", "tabs-structure", "MDX002/tabs-structure"},
		{"empty name falls back to id", config.RuleFormatName, "MDX002", "", "MDX002"},
		{"default to name", config.RuleFormat(""), "MDX001", "steps-children", "steps-children"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, config.FormatRuleID(tt.format, tt.ruleID, tt.ruleName))
		})
	}
}

func TestFormatValidity(t *testing.T) {
	t.Parallel()

	for _, f := range config.OutputFormats() {
		assert.True(t, f.IsValid(), f)
	}
	assert.False(t, config.OutputFormat("table").IsValid())

	assert.True(t, config.RuleFormatCombined.IsValid())
	assert.False(t, config.RuleFormat("short").IsValid())
}
