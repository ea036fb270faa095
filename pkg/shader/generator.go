package shader

import "strings"

// Preamble returns the shared header of every generated stage: the version
// line, every declaration line as written, then one blank line.
func Preamble(cfg Config, params []Parameter) string {
	var sb strings.Builder
	sb.WriteString("#")
	sb.WriteString(cfg.Version)
	sb.WriteString("\n")
	for _, p := range params {
		sb.WriteString(p.Raw)
	}
	sb.WriteString("\n")
	return sb.String()
}

// Generate builds the source text of every block. The output depends only
// on its arguments, so repeated calls return identical text.
func Generate(cfg Config, params []Parameter, blocks []ShaderBlock) map[StageType]string {
	preamble := Preamble(cfg, params)

	stages := make(map[StageType]string, len(blocks))
	for _, b := range blocks {
		stages[b.Stage] = preamble + b.Body
	}
	return stages
}

// Regenerate rebuilds the stage map of an existing result.
func (r *ParseResult) Regenerate() map[StageType]string {
	return Generate(r.Config, r.Parameters, r.Blocks)
}
