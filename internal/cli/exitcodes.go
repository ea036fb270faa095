package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/shadersplit/internal/configloader"
	"github.com/yaklabco/shadersplit/pkg/shader"
)

// Exit codes for shadersplit.
const (
	// ExitSuccess indicates every shader was built.
	ExitSuccess = 0

	// ExitShaderErrors indicates at least one shader failed to build.
	ExitShaderErrors = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrBuildFailed is returned when at least one shader failed. The details
// have already been reported.
var ErrBuildFailed = errors.New("build failed")

// ExitError carries the exit code for an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(err error) error {
	return &ExitError{Code: ExitInvalidUsage, Err: err}
}

func ioError(err error) error {
	return &ExitError{Code: ExitIOError, Err: err}
}

// usageArgs marks argument validation failures as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var validationErr *configloader.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, ErrBuildFailed):
		return ExitShaderErrors
	case errors.Is(err, shader.ErrIO):
		return ExitIOError
	default:
		var parseErr *shader.ParseError
		if errors.As(err, &parseErr) {
			return ExitShaderErrors
		}
		return ExitInternalError
	}
}

// buildError turns a failed build result into ErrBuildFailed.
func buildError(failed int) error {
	if failed == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d shader(s) failed", ErrBuildFailed, failed)
}
