package shader

import (
	"fmt"
	"strings"
)

// versionKeyword selects the directive that becomes the version line.
const versionKeyword = "version"

// uniformKeyword marks a parameters-region line as a declaration candidate.
const uniformKeyword = "uniform"

// Processed is the output of the processing phase.
type Processed struct {
	Config     Config
	Parameters []Parameter

	// Blocks holds every closed block with its Body filled, in stage order.
	Blocks []ShaderBlock

	Notes []Note
}

// Process resolves directives, extracts parameters and assembles block
// bodies from a scan. Missing version or parameters produce notes; a
// malformed uniform line is fatal.
func Process(path string, scan *ScanResult) (*Processed, error) {
	out := &Processed{}

	version, ok := ResolveVersion(scan.Directives)
	out.Config.Version = version
	if !ok {
		out.Notes = append(out.Notes, Note{
			Kind:     ErrMissingVersion,
			Severity: SeverityWarning,
			Message:  "no #pragma version directive; generated stages start with a bare '#'",
		})
	}

	params, found, err := ExtractParameters(path, scan)
	if err != nil {
		return nil, err
	}
	if !found {
		out.Notes = append(out.Notes, Note{
			Kind:     ErrMissingParameters,
			Severity: SeverityInfo,
			Message:  "no parameters region; stages are generated without uniforms",
		})
	}
	out.Parameters = params

	out.Blocks = AssembleBodies(scan)
	return out, nil
}

// ResolveVersion returns the content of the last directive mentioning
// "version". The boolean is false when no directive matched.
func ResolveVersion(directives []Directive) (string, bool) {
	var (
		version string
		found   bool
	)
	for _, d := range directives {
		if strings.Contains(d.Content, versionKeyword) {
			version = d.Content
			found = true
		}
	}
	return version, found
}

// ExtractParameters parses the uniform lines of the first parameters region.
// The boolean is false when the scan has no parameters region.
func ExtractParameters(path string, scan *ScanResult) ([]Parameter, bool, error) {
	region, ok := firstRegion(scan.Regions, RegionParameters)
	if !ok {
		return nil, false, nil
	}

	var params []Parameter
	for n := region.StartLine + 1; n < region.EndLine; n++ {
		raw := scan.Line(n)
		if !strings.Contains(raw, uniformKeyword) {
			continue
		}

		param, err := ParseUniform(raw)
		if err != nil {
			return nil, true, &ParseError{
				Path: path,
				Line: n,
				Kind: ErrMalformedUniform,
				Err:  err,
			}
		}
		param.Line = n
		params = append(params, param)
	}

	return params, true, nil
}

// AssembleBodies fills each closed block's Body and returns the blocks in
// stage order. The raw lines between the markers are joined as stored and a
// newline is added only if the result does not already end with one.
func AssembleBodies(scan *ScanResult) []ShaderBlock {
	blocks := make([]ShaderBlock, 0, len(scan.Blocks))
	for _, stage := range Stages {
		block, ok := scan.Blocks[stage]
		if !ok {
			continue
		}
		body := scan.Span(block.StartLine, block.EndLine)
		if !strings.HasSuffix(body, "\n") {
			body += "\n"
		}
		block.Body = body
		blocks = append(blocks, block)
	}
	return blocks
}

func firstRegion(regions []Region, kind string) (Region, bool) {
	for _, r := range regions {
		if r.Kind == kind {
			return r, true
		}
	}
	return Region{}, false
}

// describeBlocks is used in debug logging.
func describeBlocks(blocks []ShaderBlock) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts = append(parts, fmt.Sprintf("%s:%d-%d", b.Stage, b.StartLine, b.EndLine))
	}
	return strings.Join(parts, ",")
}
