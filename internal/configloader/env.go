package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/shadersplit/pkg/config"
	"github.com/yaklabco/shadersplit/pkg/output"
	"github.com/yaklabco/shadersplit/pkg/shader"
)

// envVarPrefix is the prefix for all shadersplit environment variables.
const envVarPrefix = "SHADERSPLIT_"

// envMapping binds one environment variable to the config field it sets.
type envMapping struct {
	suffix string
	field  string
	help   string
	set    func(cfg *config.Config, raw string) error
}

// envMappings lists the supported variables in application order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = []envMapping{
	{"OUTPUT_DIR", "output_dir", "Directory receiving the stage files",
		func(cfg *config.Config, raw string) error { cfg.OutputDir = raw; return nil }},
	{"EXTENSIONS", "extensions", "Comma-separated combined shader extensions",
		func(cfg *config.Config, raw string) error { cfg.Extensions = splitList(raw); return nil }},
	{"IGNORE", "ignore", "Comma-separated list of ignore patterns",
		func(cfg *config.Config, raw string) error { cfg.Ignore = splitList(raw); return nil }},
	{"OVERWRITE", "overwrite", "When to replace stage files: always or if-changed",
		func(cfg *config.Config, raw string) error { cfg.Overwrite = output.OverwritePolicy(raw); return nil }},
	{"NESTED_BLOCKS", "nested_blocks", "Nested region or shader blocks: reject or overwrite",
		func(cfg *config.Config, raw string) error { cfg.NestedBlocks = shader.NestedPolicy(raw); return nil }},
	{"STRICT", "strict", "Treat notes as failures: true or false",
		boolSetter(func(cfg *config.Config, b bool) { cfg.Strict = config.Bool(b) })},
	{"BACKUP", "backup", "Back up stage files before replacing them: true or false",
		boolSetter(func(cfg *config.Config, b bool) { cfg.Backup = config.Bool(b) })},
	{"CHECK_LANGUAGE", "check_language", "Warn about non-GLSL stage bodies: true or false",
		boolSetter(func(cfg *config.Config, b bool) { cfg.CheckLanguage = config.Bool(b) })},
	{"FOLLOW_SYMLINKS", "follow_symlinks", "Walk symlinked directories: true or false",
		boolSetter(func(cfg *config.Config, b bool) { cfg.FollowSymlinks = config.Bool(b) })},
	{"LOG_LEVEL", "log_level", "Log level: debug, info, warn or error",
		func(cfg *config.Config, raw string) error { cfg.LogLevel = raw; return nil }},
	{"JOBS", "jobs", "Number of parallel workers (0 = auto)",
		func(cfg *config.Config, raw string) error {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("not an integer: %q", raw)
			}
			cfg.Jobs = n
			return nil
		}},
	{"FORMAT", "format", "Output format: text, table or json",
		func(cfg *config.Config, raw string) error { cfg.Format = config.OutputFormat(raw); return nil }},
	{"DRY_RUN", "dry_run", "Dry-run mode: true or false",
		boolSetter(func(cfg *config.Config, b bool) { cfg.DryRun = b })},
}

func boolSetter(assign func(cfg *config.Config, b bool)) func(*config.Config, string) error {
	return func(cfg *config.Config, raw string) error {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("not a boolean: %q (expected true/false/1/0)", raw)
		}
		assign(cfg, b)
		return nil
	}
}

// LoadFromEnv applies SHADERSPLIT_* overrides to cfg. Unset or empty
// variables leave the field alone.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, m := range envMappings {
		name := envVarPrefix + m.suffix
		raw := os.Getenv(name)
		if raw == "" {
			continue
		}
		if err := m.set(cfg, raw); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}
	return nil
}

// splitList splits a comma-separated value, dropping empty elements.
func splitList(raw string) []string {
	var items []string
	for part := range strings.SplitSeq(raw, ",") {
		if item := strings.TrimSpace(part); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// GetEnvVarName returns the environment variable that sets field, or "".
func GetEnvVarName(field string) string {
	for _, m := range envMappings {
		if m.field == field {
			return envVarPrefix + m.suffix
		}
	}
	return ""
}

// EnvVar describes one supported environment variable.
type EnvVar struct {
	Name        string
	Description string
}

// ListEnvVars returns the supported environment variables sorted by name.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(envMappings))
	for _, m := range envMappings {
		vars = append(vars, EnvVar{Name: envVarPrefix + m.suffix, Description: m.help})
	}
	slices.SortFunc(vars, func(a, b EnvVar) int { return strings.Compare(a.Name, b.Name) })
	return vars
}
