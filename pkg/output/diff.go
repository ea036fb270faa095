package output

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/yaklabco/shadersplit/pkg/shader"
)

// diffContext is the number of unchanged lines shown around a change.
const diffContext = 3

// Op marks a diff line as kept, added or removed.
type Op byte

const (
	OpKeep   Op = ' '
	OpAdd    Op = '+'
	OpRemove Op = '-'
)

// Line is one line of a hunk, without its trailing newline.
type Line struct {
	Op   Op
	Text string
}

// Hunk is a run of changes with surrounding context. Starts are 1-based.
type Hunk struct {
	OldStart, OldLines int
	NewStart, NewLines int
	Lines              []Line
}

// Diff is a unified diff between the stage file on disk and the stage
// about to be written.
type Diff struct {
	Path    string
	Stage   shader.StageType
	Hunks   []Hunk
	Added   int
	Removed int
}

// NewDiff compares before and after. It returns nil when they are equal.
func NewDiff(path string, before, after []byte) *Diff {
	a, b := lines(before), lines(after)
	if slicesEqual(a, b) {
		return nil
	}

	ops := editScript(a, b)
	d := &Diff{Path: path, Hunks: hunks(ops)}
	for _, op := range ops {
		switch op.Op {
		case OpAdd:
			d.Added++
		case OpRemove:
			d.Removed++
		}
	}
	return d
}

// String renders the diff in unified format.
func (d *Diff) String() string {
	if d == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- %s\n+++ %s\n", d.Path, d.Path)
	for _, h := range d.Hunks {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n", h.OldStart, h.OldLines, h.NewStart, h.NewLines)
		for _, l := range h.Lines {
			b.WriteByte(byte(l.Op))
			b.WriteString(l.Text)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// DiffStages compares each planned stage file with what is on disk. A
// missing file diffs against empty content. Unchanged stages are omitted.
func DiffStages(ctx context.Context, files []WrittenFile, result *shader.ParseResult) ([]*Diff, error) {
	var diffs []*Diff
	for _, f := range files {
		select {
		case <-ctx.Done():
			return diffs, ctx.Err()
		default:
		}

		current, err := os.ReadFile(f.Path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return diffs, fmt.Errorf("read %s: %w", f.Path, err)
		}

		if d := NewDiff(f.Path, current, []byte(result.Stages[f.Stage])); d != nil {
			d.Stage = f.Stage
			diffs = append(diffs, d)
		}
	}
	return diffs, nil
}

func lines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
}

func slicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// editScript turns a into b through a longest common subsequence table.
func editScript(a, b []string) []Line {
	// lcs[i][j] is the LCS length of a[i:] and b[j:].
	lcs := make([][]int, len(a)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	ops := make([]Line, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			ops = append(ops, Line{OpKeep, a[i]})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			ops = append(ops, Line{OpRemove, a[i]})
			i++
		default:
			ops = append(ops, Line{OpAdd, b[j]})
			j++
		}
	}
	for ; i < len(a); i++ {
		ops = append(ops, Line{OpRemove, a[i]})
	}
	for ; j < len(b); j++ {
		ops = append(ops, Line{OpAdd, b[j]})
	}
	return ops
}

// hunks groups an edit script into hunks, merging changes whose context
// would overlap.
func hunks(ops []Line) []Hunk {
	var out []Hunk
	oldLine, newLine := 1, 1

	for idx := 0; idx < len(ops); {
		if ops[idx].Op == OpKeep {
			oldLine++
			newLine++
			idx++
			continue
		}

		start := max(idx-diffContext, 0)
		h := Hunk{
			OldStart: oldLine - (idx - start),
			NewStart: newLine - (idx - start),
		}

		// Extend while the next change is within two contexts.
		end := idx
		for end < len(ops) {
			if ops[end].Op != OpKeep {
				end++
				continue
			}
			run := end
			for run < len(ops) && ops[run].Op == OpKeep {
				run++
			}
			if run == len(ops) || run-end > 2*diffContext {
				break
			}
			end = run
		}
		stop := min(end+diffContext, len(ops))

		for _, op := range ops[start:stop] {
			h.Lines = append(h.Lines, op)
			if op.Op != OpAdd {
				h.OldLines++
			}
			if op.Op != OpRemove {
				h.NewLines++
			}
		}
		for _, op := range ops[idx:stop] {
			if op.Op != OpAdd {
				oldLine++
			}
			if op.Op != OpRemove {
				newLine++
			}
		}

		// Unified diffs point an empty side at the line before it.
		if h.OldLines == 0 {
			h.OldStart--
		}
		if h.NewLines == 0 {
			h.NewStart--
		}

		out = append(out, h)
		idx = stop
	}
	return out
}
