package shader_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/shadersplit/pkg/shader"
)

func scan(t *testing.T, src string) *shader.ScanResult {
	t.Helper()

	s := &shader.Scanner{Path: "test.glshader"}
	res, err := s.Scan(src)
	require.NoError(t, err)
	return res
}

func TestScanner_Structure(t *testing.T) {
	t.Parallel()

	src := strings.Join([]string{
		"#pragma version 450",
		"#region parameters",
		"uniform vec3 u_Color;",
		"#endregion",
		"#region varyings",
		"vec3 v_Normal;",
		"#endregion",
		"#shader vertex",
		"void main() {}",
		"#endshader",
		"#shader fragment",
		"void main() {}",
		"#endshader",
		"",
	}, "\n")

	res := scan(t, src)

	assert.Equal(t, 13, res.LineCount)
	assert.Equal(t, shader.StateNone, res.State)

	wantRegions := []shader.Region{
		{Kind: "parameters", StartLine: 2, EndLine: 4},
		{Kind: "varyings", StartLine: 5, EndLine: 7},
	}
	if diff := cmp.Diff(wantRegions, res.Regions); diff != "" {
		t.Errorf("regions mismatch (-want +got):\n%s", diff)
	}

	wantBlocks := map[shader.StageType]shader.ShaderBlock{
		shader.StageVertex:   {Kind: "vertex", Stage: shader.StageVertex, StartLine: 8, EndLine: 10},
		shader.StageFragment: {Kind: "fragment", Stage: shader.StageFragment, StartLine: 11, EndLine: 13},
	}
	if diff := cmp.Diff(wantBlocks, res.Blocks); diff != "" {
		t.Errorf("blocks mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, res.Directives, 1)
	assert.Equal(t, shader.Directive{Line: 1, Content: "version 450"}, res.Directives[0])

	assert.Equal(t, "uniform vec3 u_Color;\n", res.Line(3))
	assert.Empty(t, res.Line(0))
	assert.Empty(t, res.Line(14))
}

func TestScanner_CommentsHideMarkers(t *testing.T) {
	t.Parallel()

	src := "// #pragma version 100\n" +
		"#pragma version 330 // #region parameters\n" +
		"// #shader vertex\n"

	res := scan(t, src)

	require.Len(t, res.Directives, 1)
	assert.Equal(t, "version 330 ", res.Directives[0].Content)
	assert.Empty(t, res.Regions)
	assert.Empty(t, res.Blocks)
	assert.Nil(t, res.UnclosedRegion)
	assert.Nil(t, res.UnclosedBlock)
	assert.Equal(t, "// #pragma version 100\n", res.Line(1), "commented lines are still stored")
}

func TestScanner_SubstringMatch(t *testing.T) {
	t.Parallel()

	// Detection is substring based, so a marker inside other text still counts.
	res := scan(t, "xx#pragma version 300 es\n")

	require.Len(t, res.Directives, 1)
	assert.Equal(t, "version 300 es", res.Directives[0].Content)
}

func TestScanner_MarkerLineIsNotDirective(t *testing.T) {
	t.Parallel()

	res := scan(t, "#region parameters #pragma version 1\n#endregion\n")

	assert.Empty(t, res.Directives)
	require.Len(t, res.Regions, 1)
	assert.Equal(t, "parameters #pragma version 1", res.Regions[0].Kind)
}

func TestScanner_CRLF(t *testing.T) {
	t.Parallel()

	res := scan(t, "#pragma version 330 core\r\n#region parameters\r\n#endregion\r\n")

	require.Len(t, res.Directives, 1)
	assert.Equal(t, "version 330 core", res.Directives[0].Content)
	require.Len(t, res.Regions, 1)
	assert.Equal(t, shader.RegionParameters, res.Regions[0].Kind)
	assert.Equal(t, "#region parameters\r\n", res.Line(2))
}

func TestScanner_KindTrailingBlanks(t *testing.T) {
	t.Parallel()

	res := scan(t, "#shader vertex \t\nbody\n#endshader\n")

	require.Contains(t, res.Blocks, shader.StageVertex)
	assert.Equal(t, "vertex", res.Blocks[shader.StageVertex].Kind)
}

func TestScanner_StageKindCaseInsensitive(t *testing.T) {
	t.Parallel()

	res := scan(t, "#shader Fragment\nbody\n#endshader\n")

	require.Contains(t, res.Blocks, shader.StageFragment)
	assert.Equal(t, "Fragment", res.Blocks[shader.StageFragment].Kind)
}

func TestScanner_Geometry(t *testing.T) {
	t.Parallel()

	res := scan(t, "#shader geometry\nbody\n#endshader\n")

	require.Contains(t, res.Blocks, shader.StageGeometry)
	assert.Equal(t, 1, res.Blocks[shader.StageGeometry].StartLine)
	assert.Equal(t, 3, res.Blocks[shader.StageGeometry].EndLine)
}

func TestScanner_UnresolvedStageKind(t *testing.T) {
	t.Parallel()

	s := &shader.Scanner{Path: "bad.glshader"}
	res, err := s.Scan("#shader foo\nvoid main(){}\n#endshader\n")

	require.ErrorIs(t, err, shader.ErrUnresolvedStageKind)
	assert.Nil(t, res)

	var perr *shader.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 3, perr.Line)
	assert.Contains(t, err.Error(), "bad.glshader:3:")
	assert.Contains(t, err.Error(), `"foo"`)
}

func TestScanner_UnclosedDiscarded(t *testing.T) {
	t.Parallel()

	t.Run("region", func(t *testing.T) {
		t.Parallel()

		res := scan(t, "#region parameters\nuniform vec3 u_X;\n")

		assert.Empty(t, res.Regions)
		require.NotNil(t, res.UnclosedRegion)
		assert.Equal(t, 1, res.UnclosedRegion.StartLine)
		assert.Equal(t, shader.StateParameters, res.State)
	})

	t.Run("block", func(t *testing.T) {
		t.Parallel()

		res := scan(t, "#shader vertex\nvoid main(){}")

		assert.Empty(t, res.Blocks)
		require.NotNil(t, res.UnclosedBlock)
		assert.Equal(t, "vertex", res.UnclosedBlock.Kind)
		assert.Equal(t, 2, res.LineCount)
	})
}

func TestScanner_CloseWithoutOpenIgnored(t *testing.T) {
	t.Parallel()

	res := scan(t, "#endregion\n#endshader\n")

	assert.Empty(t, res.Regions)
	assert.Empty(t, res.Blocks)
	assert.Empty(t, res.Directives)
}

func TestScanner_NestedPolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{"region in region", "#region parameters\n#region varyings\n#endregion\n"},
		{"shader in region", "#region parameters\n#shader vertex\n#endshader\n"},
		{"region in shader", "#shader vertex\n#region parameters\n#endregion\n"},
		{"shader in shader", "#shader vertex\n#shader fragment\n#endshader\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			reject := &shader.Scanner{}
			_, err := reject.Scan(tt.src)
			require.ErrorIs(t, err, shader.ErrNestedBlock)

			var perr *shader.ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, 2, perr.Line)

			overwrite := &shader.Scanner{Nested: shader.NestedOverwrite}
			_, err = overwrite.Scan(tt.src)
			assert.NoError(t, err)
		})
	}
}

func TestScanner_NestedOverwriteKeepsLatest(t *testing.T) {
	t.Parallel()

	s := &shader.Scanner{Nested: shader.NestedOverwrite}
	res, err := s.Scan("#shader vertex\na\n#shader fragment\nb\n#endshader\n")
	require.NoError(t, err)

	assert.NotContains(t, res.Blocks, shader.StageVertex)
	require.Contains(t, res.Blocks, shader.StageFragment)
	assert.Equal(t, 3, res.Blocks[shader.StageFragment].StartLine)
}

func TestScanner_NestedOverwriteRestoresState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want shader.ParserState
	}{
		{"region closed inside vertex block", "#shader vertex\n#region parameters\n#endregion\n", shader.StateVertexShader},
		{"region closed inside fragment block", "#shader fragment\n#region varyings\n#endregion\n", shader.StateFragmentShader},
		{"block closed inside parameters region", "#region parameters\n#shader vertex\n#endshader\n", shader.StateParameters},
		{"both closed", "#shader vertex\n#region parameters\n#endregion\n#endshader\n", shader.StateNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := &shader.Scanner{Nested: shader.NestedOverwrite}
			res, err := s.Scan(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.State)
		})
	}
}

func TestNestedPolicy_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, shader.NestedReject.IsValid())
	assert.True(t, shader.NestedOverwrite.IsValid())
	assert.False(t, shader.NestedPolicy("merge").IsValid())
	assert.False(t, shader.NestedPolicy("").IsValid())
}
