package main

import (
	"fmt"
	"io"
	"time"

	"github.com/amonks/focus/internal/ui"
	"github.com/amonks/focus/todo"
)

// printTodoTable prints todos in a table format.
func printTodoTable(w io.Writer, todos []todo.Todo, prefixLengths map[string]int, now time.Time) {
	if len(todos) == 0 {
		fmt.Fprintln(w, "No todos found.")
		return
	}

	fmt.Fprint(w, formatTodoTable(todos, prefixLengths, ui.HighlightID, now))
}

func formatTodoTable(todos []todo.Todo, prefixLengths map[string]int, highlight func(string, int) string, now time.Time) string {
	builder := ui.NewTableBuilder([]string{"ID", "STATUS", "SUBTASKS", "TIME", "ACTIVE", "TEXT"}, len(todos)).
		AlignRight(2, 3)

	if prefixLengths == nil {
		prefixLengths = todoIDPrefixLengths(todos)
	}

	total := 0
	for _, t := range todos {
		total += t.TotalTimeSpent()
		row := []string{
			highlight(t.ID, ui.PrefixLength(prefixLengths, t.ID)),
			todoStatus(t),
			subtaskProgress(t),
			ui.FormatTotal(t.TotalTimeSpent()),
			formatActivity(t, now),
			ui.TruncateTableCell(t.Text),
		}
		builder.AddRow(row)
	}
	builder.SetFooter([]string{"", "", "", ui.FormatTotal(total), "", countLabel(len(todos))})

	return builder.String()
}

func todoIDPrefixLengths(todos []todo.Todo) map[string]int {
	return todo.NewIDIndex(todos).PrefixLengths()
}

func todoStatus(item todo.Todo) string {
	if item.Completed {
		return "done"
	}
	return "active"
}

func subtaskProgress(item todo.Todo) string {
	done, total := item.SubtaskProgress()
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%d/%d", done, total)
}

// formatActivity shows how long ago the filter reference time was.
func formatActivity(item todo.Todo, now time.Time) string {
	return ui.FormatOptionalTimeAgo(todo.ReferenceTime(item), now)
}

func countLabel(n int) string {
	if n == 1 {
		return "1 todo"
	}
	return fmt.Sprintf("%d todos", n)
}
