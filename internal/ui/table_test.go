package ui

import (
	"strings"
	"testing"
)

func TestTruncateTableCellCountsRunes(t *testing.T) {
	value := strings.Repeat("a", tableCellMaxWidth-1) + "é"

	got := TruncateTableCell(value)

	if got != value {
		t.Fatalf("expected value to remain untruncated, got %q", got)
	}
}

func TestTruncateTableCellAddsEllipsis(t *testing.T) {
	value := strings.Repeat("a", tableCellMaxWidth+10)

	got := TruncateTableCell(value)

	if displayWidth(got) != tableCellMaxWidth {
		t.Fatalf("expected width %d, got %d", tableCellMaxWidth, displayWidth(got))
	}
	if !strings.HasSuffix(got, tableCellEllipsis) {
		t.Fatalf("expected ellipsis, got %q", got)
	}
}

func TestTruncateTableCellNormalizesLineBreaks(t *testing.T) {
	value := "Hello\nWorld\r\nAgain\tTab"

	got := TruncateTableCell(value)

	if got != "Hello World Again Tab" {
		t.Fatalf("expected line breaks to normalize, got %q", got)
	}
}

func TestTruncateTableCellIgnoresANSICodes(t *testing.T) {
	value := "\x1b[1m\x1b[36m" + strings.Repeat("a", tableCellMaxWidth) + "\x1b[0m"

	got := TruncateTableCell(value)

	if got != value {
		t.Fatalf("expected value to remain untruncated, got %q", got)
	}
}

func TestFormatTableNormalizesLineBreaks(t *testing.T) {
	headers := []string{"COL"}
	rows := [][]string{{"Hello\nWorld\r\nAgain\tTab"}}

	got := FormatTable(headers, rows)

	expected := "COL\nHello World Again Tab\n"
	if got != expected {
		t.Fatalf("expected normalized table output, got %q", got)
	}
}

func TestFormatTableAlignsColumns(t *testing.T) {
	builder := NewTableBuilder([]string{"ID", "TEXT"}, 2)
	builder.AddRow([]string{"\x1b[1mab\x1b[0mcd", "first"})
	builder.AddRow([]string{"x", "second"})

	got := builder.String()

	expected := "ID    TEXT\n\x1b[1mab\x1b[0mcd  first\nx     second\n"
	if got != expected {
		t.Fatalf("expected aligned table, got %q", got)
	}
}

func TestTableBuilderRightAlignsColumns(t *testing.T) {
	builder := NewTableBuilder([]string{"ID", "TIME", "TEXT"}, 2).AlignRight(1)
	builder.AddRow([]string{"a", "1h 5m", "first"})
	builder.AddRow([]string{"b", "9m", "second"})

	got := builder.String()

	expected := "ID   TIME  TEXT\na   1h 5m  first\nb      9m  second\n"
	if got != expected {
		t.Fatalf("expected right-aligned table, got %q", got)
	}
}

func TestTableBuilderFooterSharesWidths(t *testing.T) {
	builder := NewTableBuilder([]string{"ID", "TIME"}, 1).AlignRight(1)
	builder.AddRow([]string{"abc", "5m"})
	builder.SetFooter([]string{"", "1h 10m"})

	got := builder.String()

	expected := "ID     TIME\nabc      5m\n     1h 10m\n"
	if got != expected {
		t.Fatalf("expected footer aligned with body, got %q", got)
	}
}
