package todo

import (
	"time"

	"github.com/amonks/focus/internal/ids"
)

// GenerateID creates an 8-character alphanumeric ID from text and a
// timestamp, skipping any ID for which taken reports true.
func GenerateID(text string, timestamp time.Time, taken func(string) bool) string {
	return ids.GenerateUnique(text, timestamp, ids.DefaultLength, taken)
}

func todoIDTaken(todos []Todo) func(string) bool {
	return func(id string) bool {
		return indexOfTodo(todos, id) >= 0
	}
}

func subtaskIDTaken(subtasks []Subtask) func(string) bool {
	return func(id string) bool {
		return indexOfSubtask(subtasks, id) >= 0
	}
}
