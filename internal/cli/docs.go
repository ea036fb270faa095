package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/shadersplit/internal/logging"
	"github.com/yaklabco/shadersplit/pkg/config"
	"github.com/yaklabco/shadersplit/pkg/docgen"
	"github.com/yaklabco/shadersplit/pkg/fsutil"
	"github.com/yaklabco/shadersplit/pkg/output"
)

type docsFlags struct {
	html       bool
	standalone bool
	title      string
	output     string
	omitStages bool
	omitNotes  bool
}

func newDocsCommand() *cobra.Command {
	flags := &docsFlags{}

	cmd := &cobra.Command{
		Use:   "docs <file>",
		Short: "Generate a parameter reference for a combined shader",
		Long: `Docs parses one combined shader and renders a reference of its uniforms and
stages as Markdown. With --html the reference is converted to HTML, and
--standalone wraps it in a complete page.`,
		Example: `  shadersplit docs lit.glshader
  shadersplit docs lit.glshader --html --standalone -o lit.html`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDocs(cmd.Context(), cmd, args[0], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.html, "html", false, "render HTML instead of Markdown")
	cmd.Flags().BoolVar(&flags.standalone, "standalone", false, "wrap HTML output in a full page (implies --html)")
	cmd.Flags().StringVar(&flags.title, "title", "", "document title (default: shader name)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&flags.omitStages, "no-stages", false, "omit the stage table")
	cmd.Flags().BoolVar(&flags.omitNotes, "no-notes", false, "omit parse notes")

	return cmd
}

func runDocs(ctx context.Context, cmd *cobra.Command, path string, flags *docsFlags) error {
	sess, err := loadSession(ctx, cmd, &config.Config{})
	if err != nil {
		return err
	}

	res, err := parseOne(sess.attach(ctx), sess.cfg.NestedBlocks, path)
	if err != nil {
		return err
	}

	content, err := docgen.Markdown(ctx, res, docgen.Options{
		Title:      flags.title,
		OmitStages: flags.omitStages,
		OmitNotes:  flags.omitNotes,
	})
	if err != nil {
		return fmt.Errorf("generate reference: %w", err)
	}

	if flags.html || flags.standalone {
		content, err = docgen.NewHTMLRenderer().Render(ctx, content)
		if err != nil {
			return err
		}
		if flags.standalone {
			title := flags.title
			if title == "" {
				title = output.BaseName(path)
			}
			content = docgen.Page(title, content)
		}
	} else {
		content = append(content, '\n')
	}

	if flags.output == "" {
		if _, err := cmd.OutOrStdout().Write(content); err != nil {
			return ioError(fmt.Errorf("write reference: %w", err))
		}
		return nil
	}

	if err := fsutil.WriteAtomic(ctx, flags.output, content, fsutil.DefaultFileMode); err != nil {
		return ioError(fmt.Errorf("write reference: %w", err))
	}
	sess.logger.Info("wrote reference", logging.FieldOutput, flags.output)
	return nil
}
