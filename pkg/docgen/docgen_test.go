package docgen_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/shadersplit/pkg/docgen"
	"github.com/yaklabco/shadersplit/pkg/shader"
)

const litShader = `#pragma version 330 core
#region parameters
uniform vec3 u_Color;
uniform mat4 u_Model;
#endregion
#shader vertex
void main() { gl_Position = u_Model * vec4(0.0); }
#endshader
#shader fragment
out vec4 o_Color;
void main() { o_Color = vec4(u_Color, 1.0); }
#endshader
`

func parse(t *testing.T, name, src string) *shader.ParseResult {
	t.Helper()

	res, err := shader.New().ParseSource(context.Background(), name, []byte(src))
	require.NoError(t, err)
	return res
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	md, err := docgen.Markdown(context.Background(), parse(t, "shaders/lit.glshader", litShader), docgen.Options{})
	require.NoError(t, err)

	out := string(md)
	assert.True(t, strings.HasPrefix(out, "# lit\n\nVersion: `#version 330 core`\n"))
	assert.Contains(t, out, "| `u_Color` | `vec3` | Float3 | `0x8B51` | 3 |")
	assert.Contains(t, out, "| `u_Model` | `mat4` | Mat4 | `0x8B5C` | 4 |")
	assert.Contains(t, out, "| vertex | 6-8 | `lit.vert` |")
	assert.Contains(t, out, "| fragment | 9-12 | `lit.frag` |")
	assert.NotContains(t, out, "## Notes")
	assert.False(t, strings.HasSuffix(out, "\n"))
}

func TestMarkdown_ParsesAsTables(t *testing.T) {
	t.Parallel()

	md, err := docgen.Markdown(context.Background(), parse(t, "lit.glshader", litShader), docgen.Options{})
	require.NoError(t, err)

	doc := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(md))

	tables := 0
	rows := 0
	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case east.KindTable:
			tables++
		case east.KindTableRow:
			rows++
		}
		return ast.WalkContinue, nil
	})
	require.NoError(t, err)

	assert.Equal(t, 2, tables)
	assert.Equal(t, 4, rows, "two parameters and two stages")
}

func TestMarkdown_Degraded(t *testing.T) {
	t.Parallel()

	res := parse(t, "bare.glshader", "#shader geometry\ng\n#endshader\n")

	md, err := docgen.Markdown(context.Background(), res, docgen.Options{Title: "bare | raw"})
	require.NoError(t, err)

	out := string(md)
	assert.Contains(t, out, `# bare \| raw`)
	assert.Contains(t, out, "Version: _none_")
	assert.Contains(t, out, "_No parameters._")
	assert.Contains(t, out, "| geometry | 1-3 | - |")
	assert.Contains(t, out, "## Notes")
	assert.Contains(t, out, "- **warning**:")
	assert.Contains(t, out, "- **info**:")
}

func TestMarkdown_Omit(t *testing.T) {
	t.Parallel()

	res := parse(t, "bare.glshader", "#shader vertex\nv\n#endshader\n")

	md, err := docgen.Markdown(context.Background(), res, docgen.Options{OmitStages: true, OmitNotes: true})
	require.NoError(t, err)

	out := string(md)
	assert.NotContains(t, out, "## Stages")
	assert.NotContains(t, out, "## Notes")
	assert.Contains(t, out, "## Parameters")
}

func TestMarkdown_Errors(t *testing.T) {
	t.Parallel()

	_, err := docgen.Markdown(context.Background(), nil, docgen.Options{})
	require.ErrorIs(t, err, docgen.ErrNilResult)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = docgen.Markdown(ctx, parse(t, "lit.glshader", litShader), docgen.Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTMLRenderer(t *testing.T) {
	t.Parallel()

	md, err := docgen.Markdown(context.Background(), parse(t, "lit.glshader", litShader), docgen.Options{})
	require.NoError(t, err)

	html, err := docgen.NewHTMLRenderer().Render(context.Background(), md)
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, "<h1>lit</h1>")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<code>u_Color</code>")
	assert.Contains(t, out, "<code>#version 330 core</code>")

	page := string(docgen.Page("lit <shader>", html))
	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
	assert.Contains(t, page, "<title>lit &lt;shader&gt;</title>")
	assert.Contains(t, page, out)
}

func TestHTMLRenderer_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := docgen.NewHTMLRenderer().Render(ctx, []byte("# x"))
	assert.ErrorIs(t, err, context.Canceled)
}
