package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdxlint/internal/ui/pretty"
	"github.com/yaklabco/mdxlint/pkg/config"
	"github.com/yaklabco/mdxlint/pkg/lint"
)

type rulesFlags struct {
	ruleFormat string
	format     string
}

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Enabled     bool     `json:"enabled"`
	Aliases     []string `json:"aliases,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Long: `List all available lint rules with their IDs, names, aliases,
default severity and description.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry := lint.DefaultRegistry

			switch config.OutputFormat(flags.format) {
			case config.FormatJSON:
				return writeRulesJSON(cmd.OutOrStdout(), registry)
			case config.FormatText:
				colorMode, err := cmd.Flags().GetString("color")
				if err != nil {
					colorMode = "auto"
				}
				styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.OutOrStdout()))
				return writeRulesText(cmd.OutOrStdout(), registry, styles, config.RuleFormat(flags.ruleFormat))
			default:
				return fmt.Errorf("unsupported format %q; valid formats: text, json", flags.format)
			}
		},
	}

	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")

	return cmd
}

func writeRulesText(w io.Writer, registry *lint.Registry, styles *pretty.Styles, format config.RuleFormat) error {
	rules := registry.Rules()
	if len(rules) == 0 {
		_, err := fmt.Fprintln(w, styles.Dim.Render("No rules registered."))
		return err
	}

	var builder strings.Builder
	for i, rule := range rules {
		if i > 0 {
			builder.WriteString("\n")
		}

		builder.WriteString(styles.Heading.Render(config.FormatRuleID(format, rule.ID(), rule.Name())))
		builder.WriteString("  " + styles.FormatSeverity(rule.DefaultSeverity()))
		if !rule.DefaultEnabled() {
			builder.WriteString(styles.Dim.Render("  (disabled by default)"))
		}
		builder.WriteString("\n  " + rule.Description() + "\n")

		if aliases := registry.Aliases(rule.ID()); len(aliases) > 0 {
			builder.WriteString(styles.Dim.Render("  aliases: ") + strings.Join(aliases, ", ") + "\n")
		}
		if tags := rule.Tags(); len(tags) > 0 {
			builder.WriteString(styles.Dim.Render("  tags: ") + styles.Tag.Render(strings.Join(tags, ", ")) + "\n")
		}
	}

	_, err := io.WriteString(w, builder.String())
	return err
}

func writeRulesJSON(w io.Writer, registry *lint.Registry) error {
	rules := registry.Rules()

	infos := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, ruleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Severity:    string(rule.DefaultSeverity()),
			Enabled:     rule.DefaultEnabled(),
			Aliases:     registry.Aliases(rule.ID()),
			Tags:        rule.Tags(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
