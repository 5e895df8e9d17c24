package ui

import (
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
)

const (
	tableCellMaxWidth = 50
	tableCellEllipsis = "..."
	tableColumnGap    = 2
)

// Align controls how a column pads its cells.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// TableBuilder collects rows and renders a formatted table.
type TableBuilder struct {
	headers []string
	rows    [][]string
	footer  []string
	align   map[int]Align
}

// NewTableBuilder returns a builder with preallocated rows.
func NewTableBuilder(headers []string, capacity int) *TableBuilder {
	return &TableBuilder{headers: headers, rows: make([][]string, 0, capacity)}
}

// AddRow appends a row to the table.
func (builder *TableBuilder) AddRow(row []string) {
	builder.rows = append(builder.rows, row)
}

// AlignRight right-aligns the given columns. Durations and counts read
// better that way.
func (builder *TableBuilder) AlignRight(columns ...int) *TableBuilder {
	if builder.align == nil {
		builder.align = make(map[int]Align, len(columns))
	}
	for _, column := range columns {
		builder.align[column] = AlignRight
	}
	return builder
}

// SetFooter sets a summary row printed after the body. It shares the body's
// column widths.
func (builder *TableBuilder) SetFooter(row []string) {
	builder.footer = row
}

// String renders the table output.
func (builder *TableBuilder) String() string {
	body := builder.rows
	if builder.footer != nil {
		body = append(body[:len(body):len(body)], builder.footer)
	}
	return renderTable(builder.headers, body, builder.align)
}

// FormatTable renders headers and rows as a left-aligned table.
func FormatTable(headers []string, rows [][]string) string {
	return renderTable(headers, rows, nil)
}

func renderTable(headers []string, rows [][]string, align map[int]Align) string {
	lines := make([][]string, 0, len(rows)+1)
	lines = append(lines, normalizeRow(headers))
	for _, row := range rows {
		lines = append(lines, normalizeRow(row))
	}

	widths := columnWidths(lines, len(headers))

	var out strings.Builder
	for _, line := range lines {
		writeTableLine(&out, line, widths, align)
	}
	return out.String()
}

func normalizeRow(row []string) []string {
	normalized := make([]string, len(row))
	for i, cell := range row {
		normalized[i] = normalizeTableCell(cell)
	}
	return normalized
}

func columnWidths(lines [][]string, columns int) []int {
	widths := make([]int, columns)
	for _, line := range lines {
		for i, cell := range line {
			if i >= columns {
				break
			}
			widths[i] = max(widths[i], displayWidth(cell))
		}
	}
	return widths
}

func writeTableLine(out *strings.Builder, line []string, widths []int, align map[int]Align) {
	var row strings.Builder
	for i, cell := range line {
		last := i == len(line)-1
		pad := 0
		if i < len(widths) {
			pad = widths[i] - displayWidth(cell)
		}
		if align[i] == AlignRight {
			row.WriteString(strings.Repeat(" ", pad))
			row.WriteString(cell)
		} else {
			row.WriteString(cell)
			if !last {
				row.WriteString(strings.Repeat(" ", pad))
			}
		}
		if !last {
			row.WriteString(strings.Repeat(" ", tableColumnGap))
		}
	}
	out.WriteString(strings.TrimRight(row.String(), " "))
	out.WriteByte('\n')
}

// TruncateTableCell limits cell width while preserving escape sequences.
func TruncateTableCell(value string) string {
	value = normalizeTableCell(value)
	if displayWidth(value) <= tableCellMaxWidth {
		return value
	}
	return truncate.StringWithTail(value, tableCellMaxWidth, tableCellEllipsis)
}

func displayWidth(value string) int {
	return ansi.PrintableRuneWidth(value)
}

var tableCellReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

func normalizeTableCell(value string) string {
	return tableCellReplacer.Replace(value)
}
