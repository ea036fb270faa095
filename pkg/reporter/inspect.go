package reporter

import (
	"strings"

	"github.com/yaklabco/shadersplit/pkg/langdetect"
	"github.com/yaklabco/shadersplit/pkg/shader"
)

// Inspection is the reportable structure of one combined shader.
type Inspection struct {
	Path       string               `json:"path"`
	Version    string               `json:"version"`
	Lines      int                  `json:"lines"`
	Parameters []InspectedParameter `json:"parameters"`
	Stages     []InspectedStage     `json:"stages"`
	Notes      []string             `json:"notes,omitempty"`
}

// InspectedParameter describes one uniform.
type InspectedParameter struct {
	Name    string          `json:"name"`
	Keyword string          `json:"keyword"`
	Type    shader.DataType `json:"type"`
	GLEnum  uint32          `json:"glEnum"`
	Line    int             `json:"line"`
}

// InspectedStage describes one shader block.
type InspectedStage struct {
	Stage     string              `json:"stage"`
	StartLine int                 `json:"startLine"`
	EndLine   int                 `json:"endLine"`
	BodyLines int                 `json:"bodyLines"`
	Language  langdetect.Language `json:"language"`
}

// NewInspection summarizes a parse result.
func NewInspection(res *shader.ParseResult) *Inspection {
	in := &Inspection{
		Path:       res.Path,
		Version:    res.Config.Version,
		Lines:      res.LineCount,
		Parameters: make([]InspectedParameter, 0, len(res.Parameters)),
		Stages:     make([]InspectedStage, 0, len(res.Blocks)),
	}

	for _, p := range res.Parameters {
		in.Parameters = append(in.Parameters, InspectedParameter{
			Name:    p.Name,
			Keyword: p.Type.Keyword(),
			Type:    p.Type,
			GLEnum:  p.Type.GLEnum(),
			Line:    p.Line,
		})
	}

	for _, b := range res.Blocks {
		in.Stages = append(in.Stages, InspectedStage{
			Stage:     b.Stage.String(),
			StartLine: b.StartLine,
			EndLine:   b.EndLine,
			BodyLines: strings.Count(b.Body, "\n"),
			Language:  langdetect.Detect([]byte(b.Body)),
		})
	}

	for _, n := range res.Notes {
		in.Notes = append(in.Notes, n.Message)
	}

	return in
}
