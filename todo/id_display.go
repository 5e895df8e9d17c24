package todo

import (
	"fmt"

	"github.com/amonks/focus/internal/ids"
)

// IDIndex indexes IDs for prefix matching and display.
type IDIndex struct {
	ids []string
}

// NewIDIndex builds an IDIndex from a slice of todos.
func NewIDIndex(todos []Todo) IDIndex {
	todoIDs := make([]string, 0, len(todos))
	for _, item := range todos {
		todoIDs = append(todoIDs, item.ID)
	}
	return IDIndex{ids: todoIDs}
}

// NewSubtaskIDIndex builds an IDIndex over a todo's subtasks.
func NewSubtaskIDIndex(item Todo) IDIndex {
	subtaskIDs := make([]string, 0, len(item.Subtasks))
	for _, subtask := range item.Subtasks {
		subtaskIDs = append(subtaskIDs, subtask.ID)
	}
	return IDIndex{ids: subtaskIDs}
}

// Resolve returns the full ID for a prefix.
func (index IDIndex) Resolve(prefix string) (string, bool, bool) {
	return ids.MatchPrefix(index.ids, prefix)
}

// PrefixLengths returns the shortest unique prefix length for each ID,
// keyed by lowercased ID.
func (index IDIndex) PrefixLengths() map[string]int {
	return ids.UniquePrefixLengths(index.ids)
}

// Resolve returns the full todo ID matching a unique prefix.
func (s *Store) Resolve(prefix string) (string, error) {
	index := NewIDIndex(s.Snapshot())
	match, found, ambiguous := index.Resolve(prefix)
	if !found {
		return "", fmt.Errorf("%w: %s", ErrTodoNotFound, prefix)
	}
	if ambiguous {
		return "", fmt.Errorf("%w: %s", ErrAmbiguousTodoIDPrefix, prefix)
	}
	return match, nil
}

// ResolveSubtask returns the full subtask ID under todoID matching a unique
// prefix.
func (s *Store) ResolveSubtask(todoID string, prefix string) (string, error) {
	item, ok := s.Get(todoID)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrTodoNotFound, todoID)
	}
	match, found, ambiguous := NewSubtaskIDIndex(item).Resolve(prefix)
	if !found {
		return "", fmt.Errorf("%w: %s", ErrSubtaskNotFound, prefix)
	}
	if ambiguous {
		return "", fmt.Errorf("%w: %s", ErrAmbiguousSubtaskIDPrefix, prefix)
	}
	return match, nil
}
