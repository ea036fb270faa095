package shader

import (
	"fmt"
	"strings"
)

// Markers recognized by the scanner.
const (
	markerPragma    = "#pragma"
	markerRegion    = "#region"
	markerEndRegion = "#endregion"
	markerShader    = "#shader"
	markerEndShader = "#endshader"
	markerComment   = "//"
)

// NestedPolicy decides what happens when a region or shader block opens
// while another one is still open.
type NestedPolicy string

const (
	// NestedReject fails the parse with ErrNestedBlock.
	NestedReject NestedPolicy = "reject"

	// NestedOverwrite silently replaces the open block, dropping the earlier one.
	NestedOverwrite NestedPolicy = "overwrite"
)

// IsValid returns true if the policy is known.
func (p NestedPolicy) IsValid() bool {
	switch p {
	case NestedReject, NestedOverwrite:
		return true
	default:
		return false
	}
}

// ScanResult is the output of a single scanner pass.
type ScanResult struct {
	// Lines holds every raw line, terminator included. Lines[0] is line 1.
	Lines []string

	// Directives lists #pragma lines in encounter order.
	Directives []Directive

	// Regions lists closed regions in closing order.
	Regions []Region

	// Blocks holds closed shader blocks keyed by stage. A later block of the
	// same stage replaces an earlier one.
	Blocks map[StageType]ShaderBlock

	// LineCount is the number of the last line seen.
	LineCount int

	// State is the parser state after the last line.
	State ParserState

	// UnclosedRegion and UnclosedBlock are set when the input ended inside a
	// region or shader block. Such spans are not part of Regions or Blocks.
	UnclosedRegion *Region
	UnclosedBlock  *ShaderBlock
}

// Line returns the raw text of a 1-based line, or "" when out of range.
func (r *ScanResult) Line(n int) string {
	if n < 1 || n > len(r.Lines) {
		return ""
	}
	return r.Lines[n-1]
}

// Span concatenates the raw lines strictly between start and end.
func (r *ScanResult) Span(start, end int) string {
	var sb strings.Builder
	for n := start + 1; n < end; n++ {
		sb.WriteString(r.Line(n))
	}
	return sb.String()
}

// markerKind is the structural event detected on a line.
type markerKind int

const (
	markerKindNone markerKind = iota
	markerKindRegionOpen
	markerKindRegionClose
	markerKindShaderOpen
	markerKindShaderClose
	markerKindDirective
)

// Scanner runs the line-oriented state machine over a combined shader.
// A Scanner holds only settings; each Scan call works on fresh state.
type Scanner struct {
	// Path labels errors. Optional.
	Path string

	// Nested selects the nested-open policy. Empty means NestedReject.
	Nested NestedPolicy
}

// scanState is the mutable state of one Scan call.
type scanState struct {
	result *ScanResult
	state  ParserState
	region *Region
	block  *ShaderBlock
}

// Scan walks src line by line and returns the structural scan.
// The only failures are an unresolvable stage kind at #endshader and, under
// NestedReject, an open marker inside an open region or block.
func (s *Scanner) Scan(src string) (*ScanResult, error) {
	st := &scanState{
		result: &ScanResult{
			Blocks: make(map[StageType]ShaderBlock),
		},
		state: StateNone,
	}

	lineNr := 0
	for rest := src; rest != ""; {
		var line string
		if idx := strings.IndexByte(rest, '\n'); idx >= 0 {
			line, rest = rest[:idx+1], rest[idx+1:]
		} else {
			line, rest = rest, ""
		}
		lineNr++

		if err := s.step(st, lineNr, line); err != nil {
			return nil, err
		}
	}

	st.result.LineCount = lineNr
	st.result.State = st.state
	st.result.UnclosedRegion = st.region
	st.result.UnclosedBlock = st.block
	return st.result, nil
}

// step processes one line. Every line is stored, then at most one marker
// action runs for it.
func (s *Scanner) step(st *scanState, lineNr int, line string) error {
	st.result.Lines = append(st.result.Lines, line)

	view := searchView(line)
	kind, pos := detect(st, view)

	switch kind {
	case markerKindRegionOpen:
		if err := s.checkNested(st, lineNr); err != nil {
			return err
		}
		regionKind := markerArgument(view, pos, markerRegion)
		st.state = regionState(regionKind, st.state)
		st.region = &Region{Kind: regionKind, StartLine: lineNr}

	case markerKindRegionClose:
		st.state = StateNone
		if st.block != nil {
			st.state = blockState(st.block.Kind, StateNone)
		}
		st.region.EndLine = lineNr
		st.result.Regions = append(st.result.Regions, *st.region)
		st.region = nil

	case markerKindShaderOpen:
		if err := s.checkNested(st, lineNr); err != nil {
			return err
		}
		blockKind := markerArgument(view, pos, markerShader)
		st.state = blockState(blockKind, st.state)
		st.block = &ShaderBlock{Kind: blockKind, StartLine: lineNr}

	case markerKindShaderClose:
		stage := StageTypeFromString(st.block.Kind)
		if stage == StageInvalid {
			return &ParseError{
				Path: s.Path,
				Line: lineNr,
				Kind: ErrUnresolvedStageKind,
				Msg:  fmt.Sprintf("%q (opened on line %d)", st.block.Kind, st.block.StartLine),
			}
		}
		st.state = StateNone
		if st.region != nil {
			st.state = regionState(st.region.Kind, StateNone)
		}
		st.block.EndLine = lineNr
		st.block.Stage = stage
		st.result.Blocks[stage] = *st.block
		st.block = nil

	case markerKindDirective:
		st.result.Directives = append(st.result.Directives, Directive{
			Line:    lineNr,
			Content: lineArgument(view, pos+len(markerPragma)+1),
		})

	case markerKindNone:
	}

	return nil
}

// regionState is the state a region of kind puts the scanner in. Kinds
// without a state of their own keep current.
func regionState(kind string, current ParserState) ParserState {
	switch kind {
	case RegionParameters:
		return StateParameters
	case RegionVaryings:
		return StateVaryings
	default:
		return current
	}
}

// blockState is the state a shader block of kind puts the scanner in.
func blockState(kind string, current ParserState) ParserState {
	switch kind {
	case "vertex":
		return StateVertexShader
	case "fragment":
		return StateFragmentShader
	default:
		return current
	}
}

// detect finds the structural marker on a search view. Checks run in a fixed
// order and the first hit wins, so a line is never both a structural marker
// and a directive. Close markers only count while something is open.
func detect(st *scanState, view string) (markerKind, int) {
	if pos := strings.Index(view, markerRegion); pos >= 0 {
		return markerKindRegionOpen, pos
	}
	if st.region != nil {
		if pos := strings.Index(view, markerEndRegion); pos >= 0 {
			return markerKindRegionClose, pos
		}
	}
	if pos := strings.Index(view, markerShader); pos >= 0 {
		return markerKindShaderOpen, pos
	}
	if st.block != nil {
		if pos := strings.Index(view, markerEndShader); pos >= 0 {
			return markerKindShaderClose, pos
		}
	}
	if pos := strings.Index(view, markerPragma); pos >= 0 {
		return markerKindDirective, pos
	}
	return markerKindNone, -1
}

// checkNested enforces the nested-open policy.
func (s *Scanner) checkNested(st *scanState, lineNr int) error {
	if s.Nested == NestedOverwrite {
		return nil
	}

	switch {
	case st.region != nil:
		return &ParseError{
			Path: s.Path,
			Line: lineNr,
			Kind: ErrNestedBlock,
			Msg:  fmt.Sprintf("region %q opened on line %d is still open", st.region.Kind, st.region.StartLine),
		}
	case st.block != nil:
		return &ParseError{
			Path: s.Path,
			Line: lineNr,
			Kind: ErrNestedBlock,
			Msg:  fmt.Sprintf("shader %q opened on line %d is still open", st.block.Kind, st.block.StartLine),
		}
	default:
		return nil
	}
}

// searchView returns the part of line before any single-line comment.
func searchView(line string) string {
	if idx := strings.Index(line, markerComment); idx >= 0 {
		return line[:idx]
	}
	return line
}

// markerArgument extracts a region or shader kind following a marker found
// at pos. Trailing blanks are dropped so "#region parameters  " still counts.
func markerArgument(view string, pos int, marker string) string {
	return strings.TrimRight(lineArgument(view, pos+len(marker)+1), " \t")
}

// lineArgument returns view from begin up to the first line terminator.
// The character right after a marker is assumed to be the separating space.
func lineArgument(view string, begin int) string {
	if begin >= len(view) {
		return ""
	}
	rest := view[begin:]
	if idx := strings.IndexAny(rest, "\r\n"); idx >= 0 {
		rest = rest[:idx]
	}
	return rest
}
