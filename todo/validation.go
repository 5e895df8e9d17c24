package todo

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyText is returned when a todo or subtask label is blank.
	ErrEmptyText = errors.New("text cannot be empty")

	// ErrTextTooLong is returned when a label exceeds MaxTextLength.
	ErrTextTooLong = errors.New("text exceeds maximum length")

	// ErrTodoNotFound is returned when a todo with the given ID doesn't exist.
	ErrTodoNotFound = errors.New("todo not found")

	// ErrSubtaskNotFound is returned when a subtask with the given ID doesn't
	// exist under the todo.
	ErrSubtaskNotFound = errors.New("subtask not found")

	// ErrAmbiguousTodoIDPrefix is returned when an ID prefix matches multiple todos.
	ErrAmbiguousTodoIDPrefix = errors.New("ambiguous todo ID prefix")

	// ErrAmbiguousSubtaskIDPrefix is returned when an ID prefix matches multiple subtasks.
	ErrAmbiguousSubtaskIDPrefix = errors.New("ambiguous subtask ID prefix")

	// ErrNegativeTime is returned when an accrual would decrease time spent.
	ErrNegativeTime = errors.New("time spent cannot decrease")

	// ErrTimeOverflow is returned when an accrual would exceed the largest
	// representable time spent.
	ErrTimeOverflow = errors.New("time spent would overflow")

	// ErrCompletedAtMismatch is returned when completed_at presence disagrees
	// with the completed flag.
	ErrCompletedAtMismatch = errors.New("completedAt must be set exactly when completed")

	// ErrInvalidStatusFilter is returned for an unknown --status value.
	ErrInvalidStatusFilter = errors.New("invalid status filter")

	// ErrInvalidRangeFilter is returned for an unknown --since value.
	ErrInvalidRangeFilter = errors.New("invalid range filter")
)

// ValidateText checks a label supplied by a caller. The store itself accepts
// any text; callers that take user input validate first.
func ValidateText(text string) error {
	if text == "" {
		return ErrEmptyText
	}
	if len(text) > MaxTextLength {
		return fmt.Errorf("%w: %d > %d", ErrTextTooLong, len(text), MaxTextLength)
	}
	return nil
}

// ValidateTodo checks the structural invariants of a stored todo.
func ValidateTodo(t *Todo) error {
	if t.ID == "" {
		return fmt.Errorf("todo id cannot be empty")
	}
	if t.TimeSpent < 0 {
		return fmt.Errorf("todo %s: %w", t.ID, ErrNegativeTime)
	}
	if t.Completed != (t.CompletedAt != nil) {
		return fmt.Errorf("todo %s: %w", t.ID, ErrCompletedAtMismatch)
	}

	seen := make(map[string]bool, len(t.Subtasks))
	for _, subtask := range t.Subtasks {
		if subtask.ID == "" {
			return fmt.Errorf("todo %s: subtask id cannot be empty", t.ID)
		}
		if seen[subtask.ID] {
			return fmt.Errorf("todo %s: duplicate subtask id %s", t.ID, subtask.ID)
		}
		seen[subtask.ID] = true
		if subtask.TimeSpent < 0 {
			return fmt.Errorf("subtask %s: %w", subtask.ID, ErrNegativeTime)
		}
		if subtask.Completed != (subtask.CompletedAt != nil) {
			return fmt.Errorf("subtask %s: %w", subtask.ID, ErrCompletedAtMismatch)
		}
	}
	return nil
}
