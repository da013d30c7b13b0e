package analysis

import "strings"

// SortField orders the per-rule and per-file tables of a Report. Whatever
// the field, ties fall back to the rule ID or path.
type SortField string

const (
	// SortByCount lists the noisiest rules and files first.
	SortByCount SortField = "count"
	// SortByAlpha lists rules by ID and files by path.
	SortByAlpha SortField = "alpha"
	// SortBySeverity ranks by errors, then warnings, then total issues.
	SortBySeverity SortField = "severity"
)

// SortFields returns the accepted values of the --sort flag in help order.
func SortFields() []SortField {
	return []SortField{SortByCount, SortByAlpha, SortBySeverity}
}

// SortFieldList joins SortFields for help and error text.
func SortFieldList() string {
	names := make([]string, 0, len(SortFields()))
	for _, f := range SortFields() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// IsValid reports whether s is one of SortFields.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCount, SortByAlpha, SortBySeverity:
		return true
	default:
		return false
	}
}

// Options controls how Analyze groups and orders a lint run.
type Options struct {
	// SortBy orders both tables. Empty behaves as SortByCount.
	SortBy SortField

	// WorkingDir makes file paths relative for display. When it is empty, or
	// a path cannot be made relative, the path is only slash-normalised.
	WorkingDir string
}

// DefaultOptions ranks by issue count with paths left as linted.
func DefaultOptions() Options {
	return Options{SortBy: SortByCount}
}
