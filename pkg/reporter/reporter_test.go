package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/shadersplit/pkg/output"
	"github.com/yaklabco/shadersplit/pkg/reporter"
	"github.com/yaklabco/shadersplit/pkg/runner"
	"github.com/yaklabco/shadersplit/pkg/shader"
)

const litShader = `#pragma version 330 core
#region parameters
uniform vec3 u_Color;
uniform float u_Ambient;
#endregion
#shader vertex
void main() { gl_Position = vec4(0.0); }
#endshader
#shader fragment
out vec4 o_Color;
void main() { o_Color = vec4(u_Color * u_Ambient, 1.0); }
#endshader
`

func parse(t *testing.T, name, src string) *shader.ParseResult {
	t.Helper()

	res, err := shader.New().ParseSource(context.Background(), name, []byte(src))
	require.NoError(t, err)
	return res
}

func sampleResult(t *testing.T) *runner.Result {
	t.Helper()

	lit := parse(t, "/work/lit.glshader", litShader)
	bare := parse(t, "/work/bare.glshader", "#shader vertex\nvoid main(){}\n#endshader\n")

	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path:   "/work/lit.glshader",
				Result: lit,
				Files: []output.WrittenFile{
					{Stage: shader.StageVertex, Path: "/work/lit.vert", Written: true},
					{Stage: shader.StageFragment, Path: "/work/lit.frag", Written: false},
				},
			},
			{
				Path:   "/work/bare.glshader",
				Result: bare,
				Files:  []output.WrittenFile{{Stage: shader.StageVertex, Path: "/work/bare.vert", Written: true}},
			},
			{
				Path:  "/work/broken.glshader",
				Error: errors.New(`broken.glshader:3: unresolved shader stage kind: "foo"`),
			},
		},
		Stats: runner.Stats{
			FilesDiscovered: 3,
			FilesProcessed:  2,
			FilesErrored:    1,
			StagesGenerated: 3,
			StagesWritten:   2,
			StagesUnchanged: 1,
			Parameters:      2,
			Notes:           2,
		},
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{"", reporter.FormatText, false},
		{"text", reporter.FormatText, false},
		{"table", reporter.FormatTable, false},
		{"json", reporter.FormatJSON, false},
		{"sarif", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}
}

func TestNew_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := reporter.New(reporter.Options{Format: "xml", Writer: &bytes.Buffer{}})
	assert.Error(t, err)
}

func newReporter(t *testing.T, format reporter.Format, buf *bytes.Buffer) reporter.Reporter {
	t.Helper()

	rep, err := reporter.New(reporter.Options{
		Writer:      buf,
		Format:      format,
		Color:       "never",
		ShowSummary: true,
		WorkingDir:  "/work",
	})
	require.NoError(t, err)
	return rep
}

func TestTextReporter_Report(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	failed, err := newReporter(t, reporter.FormatText, &buf).Report(context.Background(), sampleResult(t))
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	out := buf.String()
	assert.NotContains(t, out, "lit.glshader", "clean files are quiet without verbose")
	assert.Contains(t, out, "bare.glshader (1 stage)")
	assert.Contains(t, out, "no #pragma version directive")
	assert.Contains(t, out, "broken.glshader: error")
	assert.Contains(t, out, "2 shaders built, 2 stages written, 1 unchanged, 2 notes, 1 failed")
}

func TestTextReporter_Verbose(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{Writer: &buf, Color: "never", Verbose: true, WorkingDir: "/work"})
	require.NoError(t, err)

	_, err = rep.Report(context.Background(), sampleResult(t))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "vertex lit.vert written")
	assert.Contains(t, out, "fragment lit.frag unchanged")
}

func TestTableReporter_Report(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	failed, err := newReporter(t, reporter.FormatTable, &buf).Report(context.Background(), sampleResult(t))
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	out := buf.String()
	assert.Contains(t, out, "SOURCE")
	assert.Contains(t, out, "lit.vert")
	assert.Contains(t, out, "unchanged")
	assert.Contains(t, out, "written (2 notes)")
}

func TestTableReporter_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	_, err := newReporter(t, reporter.FormatTable, &buf).Report(context.Background(), &runner.Result{})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No combined shaders found.")
}

func TestJSONReporter_Report(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	failed, err := newReporter(t, reporter.FormatJSON, &buf).Report(context.Background(), sampleResult(t))
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	var out reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	require.Len(t, out.Files, 3)
	assert.Equal(t, "lit.glshader", out.Files[0].Path)
	assert.Equal(t, 2, out.Files[0].Parameters)
	require.Len(t, out.Files[0].Stages, 2)
	assert.Equal(t, "vertex", out.Files[0].Stages[0].Stage)
	assert.True(t, out.Files[0].Stages[0].Written)
	assert.Len(t, out.Files[1].Notes, 2)
	assert.True(t, out.Files[2].Failed)
	assert.NotEmpty(t, out.Files[2].Error)
	assert.Equal(t, 1, out.Summary.FilesFailed)
	assert.Equal(t, 2, out.Summary.StagesWritten)
}

func TestReporter_Inspect(t *testing.T) {
	t.Parallel()

	in := reporter.NewInspection(parse(t, "/work/lit.glshader", litShader))

	require.Len(t, in.Parameters, 2)
	assert.Equal(t, "vec3", in.Parameters[0].Keyword)
	assert.Equal(t, shader.Float3, in.Parameters[0].Type)
	assert.Equal(t, uint32(0x8B51), in.Parameters[0].GLEnum)
	require.Len(t, in.Stages, 2)
	assert.Equal(t, "vertex", in.Stages[0].Stage)
	assert.Equal(t, 6, in.Stages[0].StartLine)

	t.Run("text", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, newReporter(t, reporter.FormatText, &buf).Inspect(context.Background(), in))
		out := buf.String()
		assert.Contains(t, out, "version: #version 330 core")
		assert.Contains(t, out, "vec3 u_Color (Float3, line 3)")
		assert.Contains(t, out, "vertex lines 6-8")
	})

	t.Run("table", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, newReporter(t, reporter.FormatTable, &buf).Inspect(context.Background(), in))
		out := buf.String()
		assert.Contains(t, out, "0x8B51")
		assert.True(t, strings.Contains(out, "fragment"))
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, newReporter(t, reporter.FormatJSON, &buf).Inspect(context.Background(), in))

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		params, ok := decoded["parameters"].([]any)
		require.True(t, ok)
		first, ok := params[0].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Float3", first["type"])
	})
}
