package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/amonks/focus/internal/markdown"
	"github.com/amonks/focus/internal/ui"
	"github.com/amonks/focus/todo"
)

const todoDetailLineWidth = 80

const timestampLayout = "2006-01-02 15:04:05"

// printTodoDetail prints detailed information about a todo.
func printTodoDetail(w io.Writer, t todo.Todo, highlight func(string) string, now time.Time) {
	fmt.Fprintf(w, "ID:        %s\n", highlight(t.ID))
	fmt.Fprintf(w, "Text:      %s\n", markdown.Wrap(t.Text, todoDetailLineWidth-11))
	fmt.Fprintf(w, "Status:    %s\n", todoStatus(t))
	fmt.Fprintf(w, "Created:   %s\n", t.CreatedAt.Local().Format(timestampLayout))

	if t.CompletedAt != nil {
		fmt.Fprintf(w, "Completed: %s\n", t.CompletedAt.Local().Format(timestampLayout))
	}
	if t.LastActiveAt != nil {
		fmt.Fprintf(w, "Active:    %s (%s)\n", t.LastActiveAt.Local().Format(timestampLayout), ui.FormatTimeAgo(*t.LastActiveAt, now))
	}

	fmt.Fprintf(w, "Time:      %s\n", formatTimeBreakdown(t))

	if len(t.Subtasks) == 0 {
		return
	}
	done, total := t.SubtaskProgress()
	fmt.Fprintf(w, "\nSubtasks (%d/%d):\n%s\n", done, total, formatSubtaskList(t))
}

func formatTimeBreakdown(t todo.Todo) string {
	total := ui.FormatTotal(t.TotalTimeSpent())
	if len(t.Subtasks) == 0 {
		return total
	}
	subtaskTime := t.TotalTimeSpent() - t.TimeSpent
	return fmt.Sprintf("%s (todo %s, subtasks %s)", total, ui.FormatTotal(t.TimeSpent), ui.FormatTotal(subtaskTime))
}

// formatSubtaskList renders subtasks as a markdown task list.
func formatSubtaskList(t todo.Todo) string {
	var builder strings.Builder
	for _, subtask := range t.Subtasks {
		check := " "
		if subtask.Completed {
			check = "x"
		}
		fmt.Fprintf(&builder, "- [%s] %s (%s, %s)\n", check, escapeMarkdown(subtask.Text), subtask.ID, ui.FormatTotal(subtask.TimeSpent))
	}
	rendered := markdown.SafeRender(todoDetailLineWidth, 2, []byte(builder.String()))
	if len(rendered) == 0 {
		return "  -"
	}
	return string(rendered)
}

func escapeMarkdown(value string) string {
	return strings.NewReplacer(
		`\`, `\\`,
		"*", `\*`,
		"_", `\_`,
		"`", "\\`",
		"[", `\[`,
		"]", `\]`,
		"#", `\#`,
	).Replace(value)
}
