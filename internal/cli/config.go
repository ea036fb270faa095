package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/shadersplit/internal/configloader"
	"github.com/yaklabco/shadersplit/internal/logging"
	"github.com/yaklabco/shadersplit/pkg/config"
	"github.com/yaklabco/shadersplit/pkg/output"
	"github.com/yaklabco/shadersplit/pkg/shader"
)

// session is the resolved configuration of one command invocation.
type session struct {
	cfg     *config.Config
	workDir string
	logger  *log.Logger
	color   string
}

// loadSession resolves the layered configuration with cliCfg on top and
// builds the logger the command runs with.
func loadSession(ctx context.Context, cmd *cobra.Command, cliCfg *config.Config) (*session, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, ioError(fmt.Errorf("get working directory: %w", err))
	}

	flags := cmd.Root().PersistentFlags()
	explicit, _ := flags.GetString("config")
	debug, _ := flags.GetBool("debug")
	color, _ := flags.GetString("color")

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: explicit,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, err
	}

	level := result.Config.LogLevel
	if debug {
		level = config.LogLevelDebug
	}
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)

	for _, path := range result.LoadedFrom {
		logger.Debug("loaded config", logging.FieldConfig, path)
	}
	for _, warning := range result.Warnings {
		logger.Warn("config warning", logging.FieldError, warning)
	}

	return &session{
		cfg:     result.Config,
		workDir: workDir,
		logger:  logger,
		color:   color,
	}, nil
}

// attach returns ctx carrying the session logger.
func (s *session) attach(ctx context.Context) context.Context {
	return logging.WithLogger(ctx, s.logger)
}

// buildFlags are the flags shared by build and watch.
type buildFlags struct {
	outputDir      string
	jobs           int
	dryRun         bool
	ifChanged      bool
	strict         bool
	backup         bool
	ignore         []string
	extensions     []string
	nested         string
	noLanguage     bool
	followSymlinks bool
}

func (f *buildFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.outputDir, "output-dir", "o", "", "directory receiving the stage files (default: next to each source)")
	cmd.Flags().IntVarP(&f.jobs, "jobs", "j", 0, "number of parallel parses (0 = auto)")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "parse and report without writing stage files")
	cmd.Flags().BoolVar(&f.ifChanged, "if-changed", false, "only rewrite stage files whose content changed")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "treat missing version or parameters as failures")
	cmd.Flags().BoolVar(&f.backup, "backup", false, "keep a .bak copy of replaced stage files")
	cmd.Flags().StringSliceVar(&f.ignore, "ignore", nil, "glob patterns for files to skip")
	cmd.Flags().StringSliceVar(&f.extensions, "ext", nil, "combined shader extensions (default: .glshader,.shader)")
	cmd.Flags().StringVar(&f.nested, "nested-blocks", "", "nested block policy: reject or overwrite")
	cmd.Flags().BoolVar(&f.noLanguage, "no-language-check", false, "skip the GLSL sanity check of stage bodies")
	cmd.Flags().BoolVar(&f.followSymlinks, "follow-symlinks", false, "follow directory symlinks during discovery")
}

// toConfig returns a config holding only the flags set on the command line.
func (f *buildFlags) toConfig(cmd *cobra.Command) *config.Config {
	cfg := &config.Config{}
	changed := cmd.Flags().Changed

	if changed("output-dir") {
		cfg.OutputDir = f.outputDir
	}
	if changed("jobs") {
		cfg.Jobs = f.jobs
	}
	cfg.DryRun = f.dryRun
	if changed("if-changed") {
		if f.ifChanged {
			cfg.Overwrite = output.OverwriteIfChanged
		} else {
			cfg.Overwrite = output.OverwriteAlways
		}
	}
	if changed("strict") {
		cfg.Strict = config.Bool(f.strict)
	}
	if changed("backup") {
		cfg.Backup = config.Bool(f.backup)
	}
	if changed("ignore") {
		cfg.Ignore = f.ignore
	}
	if changed("ext") {
		cfg.Extensions = f.extensions
	}
	if changed("nested-blocks") {
		cfg.NestedBlocks = shader.NestedPolicy(f.nested)
	}
	if changed("no-language-check") {
		cfg.CheckLanguage = config.Bool(!f.noLanguage)
	}
	if changed("follow-symlinks") {
		cfg.FollowSymlinks = config.Bool(f.followSymlinks)
	}

	return cfg
}
