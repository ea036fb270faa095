package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/shadersplit/internal/logging"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	levels := map[string]log.Level{
		"debug":   log.DebugLevel,
		"DEBUG":   log.DebugLevel,
		"Info":    log.InfoLevel,
		"warn":    log.WarnLevel,
		"warning": log.WarnLevel,
		"error":   log.ErrorLevel,
		"":        log.InfoLevel,
		"verbose": log.InfoLevel,
	}

	for name, want := range levels {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, want, logging.ParseLevel(name))
			assert.Equal(t, want, logging.New(name).GetLevel())
		})
	}
}

func TestNewWithWriter_FiltersByLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, "warn")

	logger.Debug("parsed block")
	logger.Info("wrote stage")
	logger.Warn("missing parameters region", logging.FieldPath, "lit.glshader")

	out := buf.String()
	assert.NotContains(t, out, "parsed block")
	assert.NotContains(t, out, "wrote stage")
	assert.Contains(t, out, "missing parameters region")
	assert.Contains(t, out, "path=lit.glshader")
}

func TestNewInteractive(t *testing.T) {
	t.Parallel()

	logger := logging.NewInteractive()
	require.NotNil(t, logger)
	assert.Equal(t, log.InfoLevel, logger.GetLevel())
	assert.Equal(t, "shadersplit", logger.GetPrefix())
}

// The default logger is process-wide, so these subtests run sequentially.
func TestDefaultLogger(t *testing.T) {
	original := logging.Default()
	require.NotNil(t, original)
	t.Cleanup(func() { logging.SetDefault(original) })

	t.Run("set default", func(t *testing.T) {
		replacement := logging.New("error")
		logging.SetDefault(replacement)
		assert.Same(t, replacement, logging.Default())
	})

	t.Run("set level", func(t *testing.T) {
		logging.SetDefault(logging.New("info"))

		logging.SetLevel("debug")
		assert.Equal(t, log.DebugLevel, logging.Default().GetLevel())

		logging.SetLevel("error")
		assert.Equal(t, log.ErrorLevel, logging.Default().GetLevel())
	})
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	attached := logging.NewWithWriter(&buf, "debug")
	ctx := logging.WithLogger(context.Background(), attached)

	got := logging.FromContext(ctx)
	assert.Same(t, attached, got)

	got.Debug("scanned shader", logging.FieldFiles, 12)
	assert.Contains(t, buf.String(), "files=12")

	child, cancel := context.WithCancel(ctx)
	defer cancel()
	assert.Same(t, attached, logging.FromContext(child), "derived contexts keep the logger")

	assert.NotNil(t, logging.FromContext(context.Background()))
}
