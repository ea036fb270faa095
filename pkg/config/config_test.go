package config_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/shadersplit/pkg/config"
	"github.com/yaklabco/shadersplit/pkg/output"
	"github.com/yaklabco/shadersplit/pkg/shader"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()

	assert.Equal(t, []string{".glshader", ".shader"}, cfg.Extensions)
	assert.Equal(t, output.OverwriteAlways, cfg.Overwrite)
	assert.Equal(t, shader.NestedReject, cfg.NestedBlocks)
	assert.False(t, cfg.IsStrict())
	assert.False(t, cfg.BackupEnabled())
	assert.True(t, cfg.CheckLanguageEnabled())
	assert.False(t, cfg.FollowSymlinksEnabled())
	assert.Equal(t, config.LogLevelWarn, cfg.LogLevel)
	assert.Equal(t, config.FormatText, cfg.Format)
}

func TestConfig_UnsetBooleans(t *testing.T) {
	t.Parallel()

	var cfg config.Config
	assert.False(t, cfg.IsStrict())
	assert.True(t, cfg.CheckLanguageEnabled())
}

func TestConfig_RunnerOptions(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.OutputDir = "out"
	cfg.Ignore = []string{"vendor/**"}
	cfg.Strict = config.Bool(true)
	cfg.Overwrite = output.OverwriteIfChanged
	cfg.Jobs = 3
	cfg.DryRun = true

	opts := cfg.RunnerOptions("/work", []string{"shaders"})

	assert.Equal(t, "/work", opts.WorkingDir)
	assert.Equal(t, []string{"shaders"}, opts.Paths)
	assert.Equal(t, "out", opts.OutputDir)
	assert.Equal(t, []string{"vendor/**"}, opts.ExcludeGlobs)
	assert.True(t, opts.Strict)
	assert.True(t, opts.CheckLanguage)
	assert.Equal(t, 3, opts.Jobs)
	assert.Equal(t, output.OverwriteIfChanged, opts.Write.Overwrite)
	assert.True(t, opts.Write.DryRun)
	assert.Equal(t, shader.NestedReject, opts.NestedPolicy)
}

func TestConfig_Clone(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Ignore = []string{"a"}
	cfg.Jobs = 4

	clone := cfg.Clone()
	if diff := cmp.Diff(cfg, clone); diff != "" {
		t.Errorf("clone mismatch (-want +got):\n%s", diff)
	}

	clone.Ignore[0] = "b"
	*clone.Strict = true
	assert.Equal(t, "a", cfg.Ignore[0])
	assert.False(t, cfg.IsStrict())

	var nilCfg *config.Config
	assert.Nil(t, nilCfg.Clone())
}
