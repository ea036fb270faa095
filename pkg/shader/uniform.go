package shader

import (
	"fmt"
	"regexp"
	"strings"
)

// uniformPattern matches a whole declaration line such as
// "  uniform vec3 u_Color; // tint". Default values are not supported.
//
//nolint:gochecknoglobals // Compiled once, read-only.
var uniformPattern = regexp.MustCompile(`^\s*uniform\s+(\w+)\s+(\w+)\s*;.*$`)

// ParseUniform parses one uniform declaration line.
//
// The line may carry its terminator; trailing "\r" and "\n" are ignored for
// matching but kept in Parameter.Raw. A line that does not match the grammar
// returns an error wrapping ErrMalformedUniform; a line whose type keyword is
// unknown additionally wraps ErrUnknownType.
func ParseUniform(raw string) (Parameter, error) {
	line := strings.TrimRight(raw, "\r\n")

	matches := uniformPattern.FindStringSubmatch(line)
	if matches == nil {
		return Parameter{}, fmt.Errorf("%w: %q", ErrMalformedUniform, line)
	}

	dt, err := LookupType(matches[1])
	if err != nil {
		return Parameter{}, fmt.Errorf("%w: %w", ErrMalformedUniform, err)
	}

	return Parameter{
		Type: dt,
		Name: matches[2],
		Raw:  raw,
	}, nil
}
