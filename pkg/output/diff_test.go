package output_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/shadersplit/pkg/output"
	"github.com/yaklabco/shadersplit/pkg/shader"
)

func numbered(from, to int) string {
	var b strings.Builder
	for i := from; i <= to; i++ {
		b.WriteString("line")
		b.WriteString(strings.Repeat("i", i))
		b.WriteByte('\n')
	}
	return b.String()
}

func TestNewDiff_Equal(t *testing.T) {
	t.Parallel()

	assert.Nil(t, output.NewDiff("a.vert", []byte("x\ny\n"), []byte("x\ny\n")))
	assert.Nil(t, output.NewDiff("a.vert", nil, nil))
	assert.Nil(t, output.NewDiff("a.vert", []byte("x\n"), []byte("x")), "a missing final newline is not a change")
	assert.Empty(t, (*output.Diff)(nil).String())
}

func TestNewDiff_NewFile(t *testing.T) {
	t.Parallel()

	d := output.NewDiff("a.vert", nil, []byte("#version 330\n\nvoid main(){}\n"))
	require.NotNil(t, d)

	assert.Equal(t, 3, d.Added)
	assert.Zero(t, d.Removed)
	assert.Equal(t,
		"--- a.vert\n+++ a.vert\n@@ -0,0 +1,3 @@\n+#version 330\n+\n+void main(){}\n",
		d.String())
}

func TestNewDiff_SingleChange(t *testing.T) {
	t.Parallel()

	before := "#version 330\nuniform vec3 u_A;\n\na\nb\nc\nd\ne\n"
	after := "#version 410\nuniform vec3 u_A;\n\na\nb\nc\nd\ne\n"

	d := output.NewDiff("lit.frag", []byte(before), []byte(after))
	require.NotNil(t, d)
	require.Len(t, d.Hunks, 1)

	h := d.Hunks[0]
	assert.Equal(t, 1, h.OldStart)
	assert.Equal(t, 4, h.OldLines)
	assert.Equal(t, 1, h.NewStart)
	assert.Equal(t, 4, h.NewLines)
	assert.Equal(t, []output.Line{
		{Op: output.OpRemove, Text: "#version 330"},
		{Op: output.OpAdd, Text: "#version 410"},
		{Op: output.OpKeep, Text: "uniform vec3 u_A;"},
		{Op: output.OpKeep, Text: ""},
		{Op: output.OpKeep, Text: "a"},
	}, h.Lines)
	assert.Equal(t, 1, d.Added)
	assert.Equal(t, 1, d.Removed)
}

func TestNewDiff_SeparateHunks(t *testing.T) {
	t.Parallel()

	before := numbered(1, 20)
	after := strings.Replace(strings.Replace(before, "linei\n", "first\n", 1),
		"line"+strings.Repeat("i", 20)+"\n", "last\n", 1)

	d := output.NewDiff("x", []byte(before), []byte(after))
	require.NotNil(t, d)
	require.Len(t, d.Hunks, 2)

	assert.Equal(t, 1, d.Hunks[0].OldStart)
	assert.Equal(t, 4, d.Hunks[0].OldLines)
	assert.Equal(t, 17, d.Hunks[1].OldStart)
	assert.Equal(t, 4, d.Hunks[1].OldLines)
	assert.Equal(t, 17, d.Hunks[1].NewStart)
}

func TestNewDiff_MergedHunks(t *testing.T) {
	t.Parallel()

	before := numbered(1, 10)
	after := strings.Replace(strings.Replace(before, "linei\n", "first\n", 1),
		"line"+strings.Repeat("i", 6)+"\n", "sixth\n", 1)

	d := output.NewDiff("x", []byte(before), []byte(after))
	require.NotNil(t, d)
	require.Len(t, d.Hunks, 1, "changes within twice the context share a hunk")
	assert.Equal(t, 9, d.Hunks[0].OldLines)
}

func TestDiffStages(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	res := &shader.ParseResult{Stages: map[shader.StageType]string{
		shader.StageVertex:   "#version 330\n\nv\n",
		shader.StageFragment: "#version 330\n\nf\n",
	}}
	files := []output.WrittenFile{
		{Stage: shader.StageVertex, Path: output.StagePath(dir, "lit", shader.StageVertex)},
		{Stage: shader.StageFragment, Path: output.StagePath(dir, "lit", shader.StageFragment)},
	}

	require.NoError(t, os.WriteFile(files[0].Path, []byte("#version 330\n\nv\n"), 0o644))

	diffs, err := output.DiffStages(context.Background(), files, res)
	require.NoError(t, err)
	require.Len(t, diffs, 1)
	assert.Equal(t, shader.StageFragment, diffs[0].Stage)
	assert.Equal(t, filepath.Join(dir, "lit.frag"), diffs[0].Path)
	assert.Equal(t, 3, diffs[0].Added)
}
