package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/shadersplit/internal/logging"
	"github.com/yaklabco/shadersplit/pkg/runner"
	"github.com/yaklabco/shadersplit/pkg/watch"
)

func newWatchCommand() *cobra.Command {
	flags := &buildFlags{}
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Rebuild combined shaders whenever they change",
		Long: `Watch builds every combined shader under the given paths once, then keeps
watching the directories and rebuilds a shader as soon as it is saved.
Saves that leave the file content unchanged are ignored.

Press Ctrl+C to stop.`,
		Example: `  shadersplit watch
  shadersplit watch shaders/ -o build/shaders --if-changed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), cmd, args, flags, debounce)
		},
	}

	flags.register(cmd)
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before a changed file is rebuilt")

	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, args []string, flags *buildFlags, debounce time.Duration) error {
	cliCfg, err := buildConfig(cmd, flags, &reportFlags{})
	if err != nil {
		return err
	}
	if debounce <= 0 {
		return usageError(fmt.Errorf("invalid --debounce %s: must be positive", debounce))
	}

	sess, err := loadSession(ctx, cmd, cliCfg)
	if err != nil {
		return err
	}

	opts := sess.cfg.RunnerOptions(sess.workDir, args)
	opts.Logger = sess.logger

	console := logging.NewInteractive()
	console.SetOutput(cmd.ErrOrStderr())

	watcher, err := watch.New(watch.Options{
		Build:    opts,
		Debounce: debounce,
		Logger:   sess.logger,
		OnBuild: func(outcome runner.FileOutcome) {
			logOutcome(console, outcome, opts.Strict)
		},
	})
	if err != nil {
		return ioError(err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case <-watcher.Ready():
			console.Info("watching for changes", logging.FieldPaths, args)
		case <-ctx.Done():
		}
	}()

	if err := watcher.Run(ctx); err != nil {
		return ioError(err)
	}
	console.Info("stopped watching")
	return nil
}

// logOutcome prints one rebuild to the console.
func logOutcome(logger *log.Logger, outcome runner.FileOutcome, strict bool) {
	if outcome.Error != nil {
		logger.Error("build failed", logging.FieldPath, outcome.Path, logging.FieldError, outcome.Error)
		return
	}

	written := 0
	for _, f := range outcome.Files {
		if f.Written {
			written++
		}
	}

	for _, note := range outcome.Result.Notes {
		logger.Warn(note.Message, logging.FieldPath, outcome.Path)
	}
	for _, lang := range outcome.Languages {
		logger.Warn("stage body does not look like GLSL",
			logging.FieldPath, outcome.Path,
			logging.FieldStage, lang.Stage,
			"detected", lang.Detected,
		)
	}

	if outcome.Failed(strict) {
		logger.Error("build failed in strict mode", logging.FieldPath, outcome.Path)
		return
	}
	logger.Info("built",
		logging.FieldPath, outcome.Path,
		logging.FieldStagesWritten, written,
		logging.FieldParameters, len(outcome.Result.Parameters),
	)
}
