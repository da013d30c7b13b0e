package logging

// Field name constants for structured logging.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldEvent      = "event"
	FieldRun        = "run"

	// Configuration fields.
	FieldConfig     = "config"
	FieldFlavor     = "flavor"
	FieldJobs       = "jobs"
	FieldExtensions = "extensions"
	FieldPack       = "pack"

	// Statistics fields.
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesProcessed   = "files_processed"
	FieldFilesWithIssues  = "files_with_issues"
	FieldFilesErrored     = "files_errored"
	FieldDiagnosticsTotal = "diagnostics_total"
	FieldDuration         = "duration"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
	FieldGo      = "go"
	FieldRules   = "rules"

	// Rule fields.
	FieldRule     = "rule"
	FieldName     = "name"
	FieldSeverity = "severity"
)
