package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldDir        = "dir"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldConfig    = "config"
	FieldDryRun    = "dry_run"
	FieldJobs      = "jobs"
	FieldStrict    = "strict"
	FieldFormat    = "format"
	FieldNested    = "nested_blocks"
	FieldOverwrite = "overwrite"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesErrored    = "files_errored"
	FieldStagesWritten   = "stages_written"
	FieldNotes           = "notes"

	// Shader fields.
	FieldStage      = "stage"
	FieldParameters = "parameters"

	// Version fields.
	FieldVersion  = "version"
	FieldCommit   = "commit"
	FieldBuilt    = "built"
	FieldGo       = "go"
	FieldPlatform = "platform"
)
