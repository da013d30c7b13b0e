package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/yaklabco/mdxlint/pkg/config"
	"github.com/yaklabco/mdxlint/pkg/runner"
)

const (
	sarifVersion   = "2.1.0"
	sarifSchemaURI = "https://json.schemastore.org/sarif-2.1.0.json"
	toolName       = "mdxlint"
	toolInfoURI    = "https://github.com/yaklabco/mdxlint"
)

// SARIFOutput represents the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single analysis run.
type SARIFRun struct {
	Tool              SARIFTool              `json:"tool"`
	AutomationDetails SARIFAutomationDetails `json:"automationDetails"`
	Invocations       []SARIFInvocation      `json:"invocations"`
	Results           []SARIFResult          `json:"results"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver contains tool metadata and rules.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes a rule.
type SARIFRule struct {
	ID               string           `json:"id"`
	Name             string           `json:"name,omitempty"`
	ShortDescription SARIFMessage     `json:"shortDescription"`
	DefaultConfig    *SARIFRuleConfig `json:"defaultConfiguration,omitempty"`
	Properties       map[string]any   `json:"properties,omitempty"`
}

// SARIFRuleConfig contains rule configuration.
type SARIFRuleConfig struct {
	Level string `json:"level"`
}

// SARIFAutomationDetails identifies this run to SARIF consumers.
type SARIFAutomationDetails struct {
	GUID string `json:"guid"`
}

// SARIFInvocation records how the run ended.
type SARIFInvocation struct {
	ExecutionSuccessful        bool                `json:"executionSuccessful"`
	ToolExecutionNotifications []SARIFNotification `json:"toolExecutionNotifications,omitempty"`
}

// SARIFNotification reports a file that could not be linted.
type SARIFNotification struct {
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations,omitempty"`
}

// SARIFResult represents a single diagnostic result.
type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations"`
}

// SARIFMessage contains plain text.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation describes a code location.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation contains file path and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           *SARIFRegion          `json:"region,omitempty"`
}

// SARIFArtifactLocation contains the file URI.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion describes the affected text region.
type SARIFRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
	EndLine     int `json:"endLine,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
}

// SARIFReporter formats results as SARIF.
type SARIFReporter struct {
	opts  Options
	bw    *bufio.Writer
	runID func() string
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{
		opts:  opts,
		bw:    bufio.NewWriterSize(opts.Writer, bufWriterSize),
		runID: func() string { return uuid.NewString() },
	}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}

	return len(output.Runs[0].Results), nil
}

func (r *SARIFReporter) buildOutput(result *runner.Result) *SARIFOutput {
	run := SARIFRun{
		Tool: SARIFTool{Driver: SARIFDriver{
			Name:           toolName,
			Version:        r.opts.ToolVersion,
			InformationURI: toolInfoURI,
			Rules:          []SARIFRule{},
		}},
		AutomationDetails: SARIFAutomationDetails{GUID: r.runID()},
		Results:           []SARIFResult{},
	}

	invocation := SARIFInvocation{ExecutionSuccessful: true}
	ruleIndex := make(map[string]int)

	if result != nil {
		for _, file := range result.Files {
			uri := r.opts.displayPath(file.Path)

			if file.Error != nil {
				invocation.ExecutionSuccessful = false
				invocation.ToolExecutionNotifications = append(invocation.ToolExecutionNotifications, SARIFNotification{
					Level:   "error",
					Message: SARIFMessage{Text: file.Error.Error()},
					Locations: []SARIFLocation{{
						PhysicalLocation: SARIFPhysicalLocation{ArtifactLocation: SARIFArtifactLocation{URI: uri}},
					}},
				})
				continue
			}

			if file.Result == nil || file.Result.FileResult == nil {
				continue
			}

			for _, diag := range file.Result.Diagnostics {
				idx, seen := ruleIndex[diag.RuleID]
				if !seen {
					idx = len(run.Tool.Driver.Rules)
					ruleIndex[diag.RuleID] = idx
					run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, r.describeRule(diag.RuleID, diag.RuleName))
				}

				text := diag.Message
				if diag.Suggestion != "" {
					text = strings.TrimSuffix(text, ".") + ". " + diag.Suggestion
				}

				run.Results = append(run.Results, SARIFResult{
					RuleID:    diag.RuleID,
					RuleIndex: idx,
					Level:     severityToSARIFLevel(diag.Severity),
					Message:   SARIFMessage{Text: text},
					Locations: []SARIFLocation{{
						PhysicalLocation: SARIFPhysicalLocation{
							ArtifactLocation: SARIFArtifactLocation{URI: uri},
							Region: &SARIFRegion{
								StartLine:   diag.StartLine,
								StartColumn: diag.StartColumn,
								EndLine:     diag.EndLine,
								EndColumn:   diag.EndColumn,
							},
						},
					}},
				})
			}
		}
	}

	run.Invocations = []SARIFInvocation{invocation}

	return &SARIFOutput{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs:    []SARIFRun{run},
	}
}

// describeRule builds rule metadata from the registry, falling back to the
// identifiers carried by the diagnostic.
func (r *SARIFReporter) describeRule(ruleID, ruleName string) SARIFRule {
	rule := SARIFRule{ID: ruleID, Name: ruleName, ShortDescription: SARIFMessage{Text: ruleName}}

	registered, ok := r.opts.registry().GetByID(ruleID)
	if !ok {
		return rule
	}

	rule.Name = registered.Name()
	rule.ShortDescription = SARIFMessage{Text: registered.Description()}
	rule.DefaultConfig = &SARIFRuleConfig{Level: severityToSARIFLevel(registered.DefaultSeverity())}
	if tags := registered.Tags(); len(tags) > 0 {
		rule.Properties = map[string]any{"tags": tags}
	}
	return rule
}

func severityToSARIFLevel(severity config.Severity) string {
	switch severity {
	case config.SeverityError:
		return "error"
	case config.SeverityInfo:
		return "note"
	default:
		return "warning"
	}
}
