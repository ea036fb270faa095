package shader

import (
	"errors"
	"fmt"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrIO indicates the combined shader source could not be read.
	ErrIO = errors.New("cannot read shader source")

	// ErrUnresolvedStageKind indicates a closed shader block whose kind is not
	// vertex, fragment or geometry.
	ErrUnresolvedStageKind = errors.New("unresolved shader stage kind")

	// ErrMalformedUniform indicates a parameters-region line that mentions
	// "uniform" but is not a valid declaration.
	ErrMalformedUniform = errors.New("malformed uniform declaration")

	// ErrUnknownType indicates a uniform type keyword missing from the type table.
	ErrUnknownType = errors.New("unknown uniform type")

	// ErrNestedBlock indicates a region or shader block opened while another
	// one was still open.
	ErrNestedBlock = errors.New("nested region or shader block")

	// ErrMissingParameters is reported through a Note when the source has no
	// parameters region. It never fails a parse.
	ErrMissingParameters = errors.New("no parameters region")

	// ErrMissingVersion is reported through a Note when no version directive
	// was found. It never fails a parse.
	ErrMissingVersion = errors.New("no version directive")
)

// ParseError is a fatal parse failure tied to a source location.
type ParseError struct {
	// Path is the source name given to the engine (may be empty).
	Path string

	// Line is the 1-based line number, or 0 when the error has no line.
	Line int

	// Kind is the sentinel error describing the failure category.
	Kind error

	// Msg carries detail about the failure.
	Msg string

	// Err is an optional underlying cause.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var loc string
	switch {
	case e.Path != "" && e.Line > 0:
		loc = fmt.Sprintf("%s:%d: ", e.Path, e.Line)
	case e.Path != "":
		loc = e.Path + ": "
	case e.Line > 0:
		loc = fmt.Sprintf("line %d: ", e.Line)
	}

	// A cause that already carries the category speaks for itself.
	if e.Err != nil && errors.Is(e.Err, e.Kind) {
		return loc + e.Err.Error()
	}

	msg := loc + e.Kind.Error()
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns both the category and the cause so errors.Is matches either.
func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Severity classifies a Note.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Note is a non-fatal diagnostic produced while parsing.
type Note struct {
	// Kind is ErrMissingParameters or ErrMissingVersion.
	Kind error

	// Severity is the suggested reporting level.
	Severity Severity

	// Message is a human-readable description.
	Message string
}

// String returns the note message.
func (n Note) String() string {
	return n.Message
}
