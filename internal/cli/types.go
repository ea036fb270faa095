package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/shadersplit/internal/ui/pretty"
	"github.com/yaklabco/shadersplit/pkg/shader"
)

// typeInfo is one row of `types --format json`.
type typeInfo struct {
	Keyword string `json:"keyword"`
	Type    string `json:"type"`
	GLEnum  string `json:"gl_enum"`
}

func newTypesCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "types",
		Short: "List the uniform types shadersplit recognizes",
		Long: `List every GLSL type keyword accepted in a #region parameters block,
with the data type it resolves to and its OpenGL type enum.

Any other keyword in a uniform declaration fails the parse.`,
		Example: `  shadersplit types
  shadersplit types --format json`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			infos, err := typeInfos()
			if err != nil {
				return err
			}

			switch format {
			case "", "text":
				return writeTypesTable(cmd, infos)
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(infos); err != nil {
					return ioError(fmt.Errorf("write types: %w", err))
				}
				return nil
			default:
				return usageError(fmt.Errorf("invalid --format %q: must be text or json", format))
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json")

	return cmd
}

func typeInfos() ([]typeInfo, error) {
	keywords := shader.TypeKeywords()
	infos := make([]typeInfo, 0, len(keywords))
	for _, keyword := range keywords {
		dt, err := shader.LookupType(keyword)
		if err != nil {
			return nil, fmt.Errorf("type table: %w", err)
		}
		infos = append(infos, typeInfo{
			Keyword: keyword,
			Type:    dt.String(),
			GLEnum:  fmt.Sprintf("0x%04X", dt.GLEnum()),
		})
	}
	return infos, nil
}

func writeTypesTable(cmd *cobra.Command, infos []typeInfo) error {
	out := cmd.OutOrStdout()
	color, _ := cmd.Root().PersistentFlags().GetString("color")
	styles := pretty.NewStyles(pretty.IsColorEnabled(color, out))

	table := pretty.Table{Headers: []string{"KEYWORD", "TYPE", "GL ENUM"}}
	for _, info := range infos {
		table.Rows = append(table.Rows, []string{info.Keyword, info.Type, info.GLEnum})
	}

	if _, err := fmt.Fprint(out, pretty.NewTableFormatter(styles, pretty.TerminalWidth(out)).Format(table)); err != nil {
		return ioError(fmt.Errorf("write types: %w", err))
	}
	return nil
}
