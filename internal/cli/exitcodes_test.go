package cli_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/shadersplit/internal/cli"
	"github.com/yaklabco/shadersplit/internal/configloader"
	"github.com/yaklabco/shadersplit/pkg/shader"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"explicit", &cli.ExitError{Code: cli.ExitInvalidUsage, Err: errors.New("bad flag")}, cli.ExitInvalidUsage},
		{"wrapped explicit", fmt.Errorf("run: %w", &cli.ExitError{Code: cli.ExitIOError, Err: errors.New("disk")}), cli.ExitIOError},
		{"config", fmt.Errorf("load project config: %w", &configloader.ValidationError{Field: "overwrite", Message: "bad"}), cli.ExitConfigError},
		{"build failed", fmt.Errorf("%w: 2 shader(s) failed", cli.ErrBuildFailed), cli.ExitShaderErrors},
		{"unreadable source", &shader.ParseError{Path: "a", Kind: shader.ErrIO}, cli.ExitIOError},
		{"parse failure", &shader.ParseError{Path: "a", Line: 3, Kind: shader.ErrUnknownType}, cli.ExitShaderErrors},
		{"anything else", errors.New("boom"), cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}
}

func TestExitError(t *testing.T) {
	t.Parallel()

	inner := errors.New("inner")
	err := &cli.ExitError{Code: cli.ExitIOError, Err: inner}

	assert.Equal(t, "inner", err.Error())
	assert.ErrorIs(t, err, inner)
}
