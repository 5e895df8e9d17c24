package main

import (
	"strings"
	"testing"
	"time"

	"github.com/amonks/focus/internal/ui"
	"github.com/amonks/focus/todo"
	"github.com/muesli/reflow/ansi"
)

func tableFixture(now time.Time) []todo.Todo {
	active := now.Add(-5 * time.Minute)
	completed := now.Add(-2 * time.Hour)
	return []todo.Todo{
		{
			ID:           "abc12345",
			Text:         "First item",
			CreatedAt:    now.Add(-24 * time.Hour),
			TimeSpent:    3600,
			LastActiveAt: &active,
			Subtasks: []todo.Subtask{
				{ID: "s1", Text: "one", Completed: true, CompletedAt: &completed, TimeSpent: 300},
				{ID: "s2", Text: "two"},
			},
		},
		{
			ID:          "abd67890",
			Text:        "Second item",
			Completed:   true,
			CompletedAt: &completed,
			CreatedAt:   now.Add(-48 * time.Hour),
			Subtasks:    []todo.Subtask{},
		},
	}
}

func TestFormatTodoTablePreservesAlignmentWithANSI(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	todos := tableFixture(now)

	prefixLengths := todoIDPrefixLengths(todos)
	plain := formatTodoTable(todos, prefixLengths, ui.PlainID, now)
	colored := formatTodoTable(todos, prefixLengths, func(id string, prefix int) string {
		if prefix <= 0 || prefix > len(id) {
			return id
		}
		return "\x1b[1m\x1b[36m" + id[:prefix] + "\x1b[0m" + id[prefix:]
	}, now)

	plainLines := strings.Split(plain, "\n")
	coloredLines := strings.Split(colored, "\n")
	if len(plainLines) != len(coloredLines) {
		t.Fatalf("expected matching line counts")
	}
	for i := range plainLines {
		if ansi.PrintableRuneWidth(coloredLines[i]) != ansi.PrintableRuneWidth(plainLines[i]) {
			t.Fatalf("expected ANSI output to align with plain output\nplain:\n%s\nansi:\n%s", plain, colored)
		}
	}
}

func TestFormatTodoTableColumns(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	got := formatTodoTable(tableFixture(now), nil, ui.PlainID, now)

	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, two rows and a footer, got:\n%s", got)
	}
	for _, field := range []string{"ID", "STATUS", "SUBTASKS", "TIME", "ACTIVE", "TEXT"} {
		if !strings.Contains(lines[0], field) {
			t.Fatalf("expected header %q in %q", field, lines[0])
		}
	}
	for _, want := range []string{"abc12345", "active", "1/2", "1h 5m", "5m ago", "First item"} {
		if !strings.Contains(lines[1], want) {
			t.Fatalf("expected %q in %q", want, lines[1])
		}
	}
	for _, want := range []string{"done", "-", "0m", "2h ago", "Second item"} {
		if !strings.Contains(lines[2], want) {
			t.Fatalf("expected %q in %q", want, lines[2])
		}
	}
	for _, want := range []string{"1h 5m", "2 todos"} {
		if !strings.Contains(lines[3], want) {
			t.Fatalf("expected %q in footer %q", want, lines[3])
		}
	}
}

func TestFormatTodoTableUsesProvidedPrefixLengths(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	todos := tableFixture(now)[:1]

	var seen int
	formatTodoTable(todos, map[string]int{"abc12345": 3}, func(id string, prefix int) string {
		seen = prefix
		return id
	}, now)

	if seen != 3 {
		t.Fatalf("expected provided prefix length 3, got %d", seen)
	}
}

func TestLogHighlighterUsesProvidedPrefixLengths(t *testing.T) {
	highlight := logHighlighter(map[string]int{"abc123": 4}, func(id string, prefix int) string {
		return id + ":" + string(rune('0'+prefix))
	})

	if got := highlight("ABC123"); got != "ABC123:4" {
		t.Fatalf("expected case-insensitive prefix lookup, got %q", got)
	}
	if got := highlight(""); got != "" {
		t.Fatalf("expected empty id to pass through, got %q", got)
	}
}
