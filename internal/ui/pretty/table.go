package pretty

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	tablePadding   = 2
	minColumnWidth = 4
	heavySeparator = "="
	lightSeparator = "-"
	ellipsis       = "…"
)

// Table is a simple column table. Rows may carry a style applied to the
// whole row.
type Table struct {
	Headers []string
	Rows    [][]string

	// RowStyles is indexed like Rows. Missing entries render plain.
	RowStyles []*lipgloss.Style

	// Groups splits Rows with a light separator before each listed index.
	Groups []int
}

// TableFormatter renders tables within a terminal width.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a formatter. A non-positive width means
// DefaultTermWidth.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = DefaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// Format renders t. The last column absorbs any width shortage and is
// truncated with an ellipsis.
func (f *TableFormatter) Format(t Table) string {
	if len(t.Headers) == 0 {
		return ""
	}

	widths := f.columnWidths(t)
	total := 0
	for _, w := range widths {
		total += w + tablePadding
	}

	var sb strings.Builder
	sb.WriteString(f.formatRow(t.Headers, widths, &f.styles.TableHeader))
	sb.WriteString(f.styles.TableSeparator.Render(strings.Repeat(heavySeparator, total)))
	sb.WriteString("\n")

	groupStarts := make(map[int]bool, len(t.Groups))
	for _, g := range t.Groups {
		groupStarts[g] = true
	}

	for i, row := range t.Rows {
		if i > 0 && groupStarts[i] {
			sb.WriteString(f.styles.TableSeparator.Render(strings.Repeat(lightSeparator, total)))
			sb.WriteString("\n")
		}
		var style *lipgloss.Style
		if i < len(t.RowStyles) {
			style = t.RowStyles[i]
		}
		sb.WriteString(f.formatRow(row, widths, style))
	}

	sb.WriteString(f.styles.TableSeparator.Render(strings.Repeat(heavySeparator, total)))
	sb.WriteString("\n")
	return sb.String()
}

func (f *TableFormatter) columnWidths(t Table) []int {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = max(lipgloss.Width(h), minColumnWidth)
	}
	for _, row := range t.Rows {
		for i := range widths {
			if i < len(row) {
				widths[i] = max(widths[i], lipgloss.Width(row[i]))
			}
		}
	}

	fixed := 0
	for _, w := range widths[:len(widths)-1] {
		fixed += w + tablePadding
	}
	last := len(widths) - 1
	if avail := f.termWidth - fixed - tablePadding; widths[last] > avail {
		widths[last] = max(avail, minColumnWidth)
	}
	return widths
}

func (f *TableFormatter) formatRow(cells []string, widths []int, style *lipgloss.Style) string {
	var sb strings.Builder
	for i, w := range widths {
		var cell string
		if i < len(cells) {
			cell = truncate(cells[i], w)
		}
		if style != nil {
			cell = style.Render(cell)
		}
		sb.WriteString(cell)
		if i < len(widths)-1 {
			sb.WriteString(strings.Repeat(" ", w-lipgloss.Width(cell)+tablePadding))
		}
	}
	sb.WriteString("\n")
	return strings.TrimRight(sb.String(), " \n") + "\n"
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if width <= 1 {
		return ellipsis
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + ellipsis
}
