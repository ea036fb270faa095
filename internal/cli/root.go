// Package cli provides the Cobra command structure for shadersplit.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/shadersplit/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Values accepted by --color.
const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

// NewRootCommand creates the root shadersplit command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var color string

	rootCmd := &cobra.Command{
		Use:   "shadersplit",
		Short: "Split combined GLSL shaders into per-stage sources",
		Long: `shadersplit reads combined shader files that hold a vertex and a fragment
stage side by side, marked with #shader/#endshader blocks, a shared
#region parameters block of uniforms and a #pragma version directive.

Each file is split into .vert and .frag sources that start with the version
line and the shared uniforms, ready to hand to the GL compiler.`,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			switch color {
			case colorAuto, colorAlways, colorNever:
			default:
				return usageError(fmt.Errorf("invalid --color %q: must be %s, %s or %s",
					color, colorAuto, colorAlways, colorNever))
			}
			if debug {
				logging.SetLevel("debug")
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", colorAuto,
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	rootCmd.AddCommand(newBuildCommand())
	rootCmd.AddCommand(newInspectCommand())
	rootCmd.AddCommand(newDocsCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newTypesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
