package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/shadersplit/internal/ui/pretty"
)

func TestTableFormatter_Format(t *testing.T) {
	t.Parallel()

	f := pretty.NewTableFormatter(pretty.NewStyles(false), 80)
	out := f.Format(pretty.Table{
		Headers: []string{"NAME", "TYPE", "GLSL"},
		Rows: [][]string{
			{"u_Color", "Float3", "vec3"},
			{"u_Ambient", "Float", "float"},
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "NAME       TYPE    GLSL", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "====="))
	assert.Equal(t, "u_Color    Float3  vec3", lines[2])
	assert.Equal(t, "u_Ambient  Float   float", lines[3])
}

func TestTableFormatter_Groups(t *testing.T) {
	t.Parallel()

	f := pretty.NewTableFormatter(pretty.NewStyles(false), 80)
	out := f.Format(pretty.Table{
		Headers: []string{"FILE", "STAGE"},
		Rows:    [][]string{{"a", "vertex"}, {"a", "fragment"}, {"b", "vertex"}},
		Groups:  []int{0, 2},
	})

	assert.Equal(t, 1, strings.Count(out, "\n-"))
}

func TestTableFormatter_TruncatesLastColumn(t *testing.T) {
	t.Parallel()

	f := pretty.NewTableFormatter(pretty.NewStyles(false), 20)
	out := f.Format(pretty.Table{
		Headers: []string{"ID", "MESSAGE"},
		Rows:    [][]string{{"1", strings.Repeat("x", 50)}},
	})

	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n")[2:3] {
		assert.LessOrEqual(t, len([]rune(line)), 20)
		assert.True(t, strings.HasSuffix(line, "…"))
	}
}

func TestTableFormatter_Empty(t *testing.T) {
	t.Parallel()

	f := pretty.NewTableFormatter(pretty.NewStyles(false), 0)
	assert.Empty(t, f.Format(pretty.Table{}))
}
