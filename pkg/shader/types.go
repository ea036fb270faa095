package shader

import "strings"

// StageType identifies a shader pipeline stage.
// The declaration order is the order stages are generated in.
type StageType int

const (
	StageInvalid StageType = iota
	StageVertex
	StageFragment
	StageGeometry
)

// Stages lists the valid stage types in generation order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var Stages = []StageType{StageVertex, StageFragment, StageGeometry}

// StageTypeFromString resolves a shader block kind, ignoring case.
// Unknown kinds return StageInvalid.
func StageTypeFromString(kind string) StageType {
	switch strings.ToLower(kind) {
	case "vertex":
		return StageVertex
	case "fragment":
		return StageFragment
	case "geometry":
		return StageGeometry
	default:
		return StageInvalid
	}
}

// String returns the lower-case stage name used in #shader markers.
func (s StageType) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageGeometry:
		return "geometry"
	default:
		return "invalid"
	}
}

// Extension returns the conventional file extension for the stage.
func (s StageType) Extension() string {
	switch s {
	case StageVertex:
		return ".vert"
	case StageFragment:
		return ".frag"
	case StageGeometry:
		return ".geom"
	default:
		return ""
	}
}

// ParserState is the scanner's current interpretation mode.
type ParserState int

const (
	StateNone ParserState = iota
	StateParameters
	StateVaryings
	StateVertexShader
	StateFragmentShader
)

// String returns a readable state name.
func (s ParserState) String() string {
	switch s {
	case StateNone:
		return "none"
	case StateParameters:
		return "parameters"
	case StateVaryings:
		return "varyings"
	case StateVertexShader:
		return "vertex-shader"
	case StateFragmentShader:
		return "fragment-shader"
	default:
		return "unknown"
	}
}

// Region kinds processed by the parser.
const (
	RegionParameters = "parameters"
	RegionVaryings   = "varyings"
)

// Directive is one #pragma line.
type Directive struct {
	// Line is the 1-based line number.
	Line int

	// Content is the text after "#pragma ", up to the end of the line.
	Content string
}

// Region is a closed #region ... #endregion span.
type Region struct {
	Kind      string
	StartLine int
	EndLine   int
}

// ShaderBlock is a closed #shader ... #endshader span.
type ShaderBlock struct {
	// Kind is the raw kind text following the #shader marker.
	Kind string

	// Stage is Kind resolved to a stage type.
	Stage StageType

	StartLine int
	EndLine   int

	// Body is filled in by the processor.
	Body string
}

// Parameter is one parsed uniform declaration.
type Parameter struct {
	Type DataType
	Name string

	// Raw is the declaration line exactly as it appeared in the source,
	// including its line terminator. Generated stages reuse it verbatim.
	Raw string

	// Line is the 1-based source line of the declaration.
	Line int
}

// Config holds settings resolved from directives.
type Config struct {
	// Version is the content of the last #pragma directive mentioning
	// "version", e.g. "version 330 core".
	Version string
}

// ParseResult is the output of a successful parse. The caller owns it.
type ParseResult struct {
	// Path is the source name the result was parsed from.
	Path string

	// Vertex and Fragment hold the generated sources. Empty when the input
	// had no block for the stage.
	Vertex   string
	Fragment string

	// Stages holds every generated stage, geometry included.
	Stages map[StageType]string

	// Parameters lists the uniform declarations in source order.
	Parameters []Parameter

	// Config is the resolved directive configuration.
	Config Config

	// Blocks lists the closed shader blocks in generation order.
	Blocks []ShaderBlock

	// LineCount is the number of lines in the source.
	LineCount int

	// Notes holds non-fatal diagnostics.
	Notes []Note
}

// HasStage reports whether the result contains generated text for stage.
func (r *ParseResult) HasStage(stage StageType) bool {
	if r == nil {
		return false
	}
	_, ok := r.Stages[stage]
	return ok
}

// Parameter returns the parameter with the given name.
func (r *ParseResult) Parameter(name string) (Parameter, bool) {
	if r == nil {
		return Parameter{}, false
	}
	for _, p := range r.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}
