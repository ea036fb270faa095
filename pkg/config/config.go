// Package config defines the configuration types for shadersplit.
// These are plain data structures; discovery and merging live in
// internal/configloader.
package config

import (
	"github.com/yaklabco/shadersplit/pkg/output"
	"github.com/yaklabco/shadersplit/pkg/runner"
	"github.com/yaklabco/shadersplit/pkg/shader"
)

// OutputFormat specifies the report format.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
)

// Log levels accepted by log_level.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// Config is the root configuration structure.
type Config struct {
	// OutputDir receives the stage files. Empty writes next to each source.
	OutputDir string `yaml:"output_dir,omitempty" toml:"output_dir,omitempty"`

	// Extensions selects combined shader files.
	Extensions []string `yaml:"extensions,omitempty" toml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty" toml:"ignore,omitempty"`

	// Overwrite is "always" or "if-changed".
	Overwrite output.OverwritePolicy `yaml:"overwrite,omitempty" toml:"overwrite,omitempty"`

	// NestedBlocks is "reject" or "overwrite".
	NestedBlocks shader.NestedPolicy `yaml:"nested_blocks,omitempty" toml:"nested_blocks,omitempty"`

	// Strict treats parse notes as failures.
	Strict *bool `yaml:"strict,omitempty" toml:"strict,omitempty"`

	// Backup copies an existing stage file aside before replacing it.
	Backup *bool `yaml:"backup,omitempty" toml:"backup,omitempty"`

	// CheckLanguage warns about stage bodies that do not look like GLSL.
	CheckLanguage *bool `yaml:"check_language,omitempty" toml:"check_language,omitempty"`

	// FollowSymlinks traverses directory symlinks during discovery.
	FollowSymlinks *bool `yaml:"follow_symlinks,omitempty" toml:"follow_symlinks,omitempty"`

	// LogLevel is debug, info, warn or error.
	LogLevel string `yaml:"log_level,omitempty" toml:"log_level,omitempty"`

	// CLI-level options (not persisted to config files).

	// Jobs bounds parallel parses. 0 means GOMAXPROCS.
	Jobs int `yaml:"-" toml:"-"`

	// Format is the report format.
	Format OutputFormat `yaml:"-" toml:"-"`

	// DryRun reports what would be written without writing.
	DryRun bool `yaml:"-" toml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Extensions:    runner.DefaultExtensions(),
		Overwrite:     output.OverwriteAlways,
		NestedBlocks:  shader.NestedReject,
		Strict:        Bool(false),
		Backup:        Bool(false),
		CheckLanguage: Bool(true),
		LogLevel:      LogLevelWarn,
		Format:        FormatText,
	}
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// IsStrict reports whether notes fail a file.
func (c *Config) IsStrict() bool {
	return boolValue(c.Strict, false)
}

// BackupEnabled reports whether stage files are backed up before replacement.
func (c *Config) BackupEnabled() bool {
	return boolValue(c.Backup, false)
}

// CheckLanguageEnabled reports whether stage bodies are classified.
func (c *Config) CheckLanguageEnabled() bool {
	return boolValue(c.CheckLanguage, true)
}

// FollowSymlinksEnabled reports whether directory symlinks are walked.
func (c *Config) FollowSymlinksEnabled() bool {
	return boolValue(c.FollowSymlinks, false)
}

// RunnerOptions translates the configuration into build options for paths.
func (c *Config) RunnerOptions(workDir string, paths []string) runner.Options {
	return runner.Options{
		Paths:          paths,
		WorkingDir:     workDir,
		Extensions:     c.Extensions,
		ExcludeGlobs:   c.Ignore,
		FollowSymlinks: c.FollowSymlinksEnabled(),
		Jobs:           c.Jobs,
		OutputDir:      c.OutputDir,
		Write: output.Options{
			Overwrite: c.Overwrite,
			DryRun:    c.DryRun,
			Backup:    c.BackupEnabled(),
		},
		NestedPolicy:  c.NestedBlocks,
		Strict:        c.IsStrict(),
		CheckLanguage: c.CheckLanguageEnabled(),
	}
}

func boolValue(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
