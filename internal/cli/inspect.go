package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/shadersplit/internal/logging"
	"github.com/yaklabco/shadersplit/pkg/config"
	"github.com/yaklabco/shadersplit/pkg/reporter"
	"github.com/yaklabco/shadersplit/pkg/shader"
)

type inspectFlags struct {
	format  string
	nested  string
	compact bool
}

func newInspectCommand() *cobra.Command {
	flags := &inspectFlags{}

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show the regions, stages and uniforms of a combined shader",
		Long: `Inspect parses one combined shader without writing anything and prints the
version directive, the uniforms of the parameters region with their GL types,
the stage blocks and any notes.`,
		Example: `  shadersplit inspect lit.glshader
  shadersplit inspect lit.glshader --format json`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "output format: text, table, json")
	cmd.Flags().StringVar(&flags.nested, "nested-blocks", "", "nested block policy: reject or overwrite")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "compact JSON output")

	return cmd
}

func runInspect(ctx context.Context, cmd *cobra.Command, path string, flags *inspectFlags) error {
	cliCfg := &config.Config{}
	if cmd.Flags().Changed("format") {
		format, err := reporter.ParseFormat(flags.format)
		if err != nil {
			return usageError(err)
		}
		cliCfg.Format = config.OutputFormat(format)
	}
	if cmd.Flags().Changed("nested-blocks") {
		policy := shader.NestedPolicy(flags.nested)
		if !policy.IsValid() {
			return usageError(fmt.Errorf("invalid --nested-blocks %q: must be %s or %s",
				flags.nested, shader.NestedReject, shader.NestedOverwrite))
		}
		cliCfg.NestedBlocks = policy
	}

	sess, err := loadSession(ctx, cmd, cliCfg)
	if err != nil {
		return err
	}

	res, err := parseOne(sess.attach(ctx), sess.cfg.NestedBlocks, path)
	if err != nil {
		return err
	}

	rep, err := reporter.New(reporter.Options{
		Writer:     cmd.OutOrStdout(),
		Format:     reporter.Format(sess.cfg.Format),
		Color:      sess.color,
		Compact:    flags.compact,
		WorkingDir: sess.workDir,
	})
	if err != nil {
		return usageError(err)
	}

	if err := rep.Inspect(ctx, reporter.NewInspection(res)); err != nil {
		return ioError(fmt.Errorf("write inspection: %w", err))
	}
	return nil
}

// parseOne parses a single combined shader, logging to the logger carried by ctx.
func parseOne(ctx context.Context, policy shader.NestedPolicy, path string) (*shader.ParseResult, error) {
	engine := shader.New(
		shader.WithLogger(logging.FromContext(ctx)),
		shader.WithNestedPolicy(policy),
	)
	return engine.Parse(ctx, path)
}
