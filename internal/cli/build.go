package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/shadersplit/internal/logging"
	"github.com/yaklabco/shadersplit/internal/ui/pretty"
	"github.com/yaklabco/shadersplit/pkg/config"
	"github.com/yaklabco/shadersplit/pkg/output"
	"github.com/yaklabco/shadersplit/pkg/reporter"
	"github.com/yaklabco/shadersplit/pkg/runner"
	"github.com/yaklabco/shadersplit/pkg/shader"
)

// reportFlags hold the output options of build.
type reportFlags struct {
	format  string
	verbose bool
	compact bool
	quiet   bool
	diff    bool
}

func newBuildCommand() *cobra.Command {
	flags := &buildFlags{}
	report := &reportFlags{}

	cmd := &cobra.Command{
		Use:   "build [paths...]",
		Short: "Split combined shaders into vertex and fragment sources",
		Long: `Build discovers combined shader files under the given paths (default: the
current directory), splits each into its stages and writes name.vert and
name.frag next to the source or into --output-dir.

Every file is parsed independently. A file that fails to parse is reported
and the remaining files are still built.`,
		Example: `  shadersplit build
  shadersplit build shaders/ -o build/shaders
  shadersplit build --dry-run --format table
  shadersplit build lit.glshader --strict --if-changed
  shadersplit build --diff`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd.Context(), cmd, args, flags, report)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&report.format, "format", "f", "", "output format: text, table, json")
	cmd.Flags().BoolVarP(&report.verbose, "verbose", "v", false, "list every stage file, not only problems")
	cmd.Flags().BoolVar(&report.compact, "compact", false, "compact JSON output")
	cmd.Flags().BoolVarP(&report.quiet, "quiet", "q", false, "suppress the summary line")
	cmd.Flags().BoolVar(&report.diff, "diff", false, "show how the stage files would change (implies --dry-run)")

	return cmd
}

func runBuild(ctx context.Context, cmd *cobra.Command, args []string, flags *buildFlags, report *reportFlags) error {
	cliCfg, err := buildConfig(cmd, flags, report)
	if err != nil {
		return err
	}

	sess, err := loadSession(ctx, cmd, cliCfg)
	if err != nil {
		return err
	}
	cfg := sess.cfg

	opts := cfg.RunnerOptions(sess.workDir, args)
	opts.Logger = sess.logger

	sess.logger.Debug("starting build",
		logging.FieldPaths, args,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldStrict, cfg.IsStrict(),
		logging.FieldOverwrite, cfg.Overwrite,
	)

	result, err := runner.New(opts).Run(ctx)
	if err != nil {
		return ioError(fmt.Errorf("build: %w", err))
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      reporter.Format(cfg.Format),
		Color:       sess.color,
		ShowSummary: !report.quiet,
		Verbose:     report.verbose,
		Compact:     report.compact,
		DryRun:      cfg.DryRun,
		WorkingDir:  sess.workDir,
	})
	if err != nil {
		return usageError(err)
	}

	if report.diff {
		// JSON owns stdout; diffs move to stderr so the document stays parseable.
		diffOut := cmd.OutOrStdout()
		if cfg.Format == config.FormatJSON {
			diffOut = cmd.ErrOrStderr()
		}
		if err := writeDiffs(ctx, diffOut, sess, result); err != nil {
			return err
		}
	}

	failed, err := rep.Report(ctx, result)
	if err != nil {
		return ioError(fmt.Errorf("write report: %w", err))
	}

	sess.logger.Debug("build finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
	)

	return buildError(failed)
}

// buildConfig validates the flags and turns the ones set into a CLI layer.
func buildConfig(cmd *cobra.Command, flags *buildFlags, report *reportFlags) (*config.Config, error) {
	cliCfg := flags.toConfig(cmd)
	if report.diff {
		cliCfg.DryRun = true
	}

	if cmd.Flags().Changed("format") {
		format, err := reporter.ParseFormat(report.format)
		if err != nil {
			return nil, usageError(err)
		}
		cliCfg.Format = config.OutputFormat(format)
	}
	if cliCfg.NestedBlocks != "" && !cliCfg.NestedBlocks.IsValid() {
		return nil, usageError(fmt.Errorf("invalid --nested-blocks %q: must be %s or %s",
			cliCfg.NestedBlocks, shader.NestedReject, shader.NestedOverwrite))
	}
	if cliCfg.Jobs < 0 {
		return nil, usageError(fmt.Errorf("invalid --jobs %d: must be >= 0", cliCfg.Jobs))
	}

	return cliCfg, nil
}

// writeDiffs prints the pending change of every planned stage file.
func writeDiffs(ctx context.Context, w io.Writer, sess *session, result *runner.Result) error {
	styles := pretty.NewStyles(pretty.IsColorEnabled(sess.color, w))

	for _, file := range result.Files {
		if file.Result == nil {
			continue
		}
		diffs, err := output.DiffStages(ctx, file.Files, file.Result)
		if err != nil {
			return ioError(fmt.Errorf("diff %s: %w", file.Path, err))
		}
		for _, d := range diffs {
			if _, err := io.WriteString(w, styles.FormatDiff(displayPath(sess.workDir, d.Path), d)); err != nil {
				return ioError(fmt.Errorf("write diff: %w", err))
			}
		}
	}
	return nil
}

// displayPath shortens path relative to workDir when it lies below it.
func displayPath(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
