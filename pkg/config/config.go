// Package config defines the configuration types for mdxlint. They are plain
// data with YAML and TOML tags; discovery and merging live in
// internal/configloader.
package config

// Severity represents the severity level of a lint diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IsValid reports whether s is a known severity.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// RuleConfig holds per-rule configuration.
type RuleConfig struct {
	Enabled  *bool          `yaml:"enabled,omitempty" toml:"enabled,omitempty"`
	Severity *string        `yaml:"severity,omitempty" toml:"severity,omitempty"`
	Options  map[string]any `yaml:"options,omitempty" toml:"options,omitempty"`
}

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatJSON  OutputFormat = "json"
	FormatSARIF OutputFormat = "sarif"

	// FormatSummary prints per-rule and per-file counts instead of each
	// diagnostic.
	FormatSummary OutputFormat = "summary"
)

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "tabs-structure"
	RuleFormatID       RuleFormat = "id"       // "MDX002"
	RuleFormatCombined RuleFormat = "combined" // "MDX002/tabs-structure"
)

// Flavor selects the Markdown dialect used between component tags.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// DefaultExtensions are the file extensions linted when none are configured.
func DefaultExtensions() []string {
	return []string{".mdx", ".md", ".markdown"}
}

// Config is the root configuration structure.
type Config struct {
	Flavor Flavor `yaml:"flavor,omitempty" toml:"flavor,omitempty"`

	// SeverityDefault, when set, replaces every rule's built-in severity.
	// A rules: entry still wins over it.
	SeverityDefault string `yaml:"severity_default,omitempty" toml:"severity_default,omitempty"`

	// Rules is keyed by rule ID. Names and aliases are normalised to IDs by
	// the loader.
	Rules map[string]RuleConfig `yaml:"rules,omitempty" toml:"rules,omitempty"`

	// Ignore holds glob patterns for paths to skip.
	Ignore []string `yaml:"ignore,omitempty" toml:"ignore,omitempty"`

	// Extensions lists the file extensions to lint, with leading dots.
	Extensions []string `yaml:"extensions,omitempty" toml:"extensions,omitempty"`

	// CLI-level options, never read from or written to files.

	Format       OutputFormat `yaml:"-" toml:"-"`
	RuleFormat   RuleFormat   `yaml:"-" toml:"-"`
	Jobs         int          `yaml:"-" toml:"-"`
	EnableRules  []string     `yaml:"-" toml:"-"`
	DisableRules []string     `yaml:"-" toml:"-"`

	// Strict turns warnings into a failing exit code.
	Strict bool `yaml:"-" toml:"-"`
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Flavor:     FlavorGFM,
		Rules:      make(map[string]RuleConfig),
		Extensions: DefaultExtensions(),
		Format:     FormatText,
		RuleFormat: RuleFormatName,
		Jobs:       0, // 0 means runtime.NumCPU
	}
}
