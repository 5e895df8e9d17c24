package todo

import (
	"fmt"
	"math"
	"time"
)

// Add appends a new todo with the given text. The text is stored verbatim;
// callers that take user input should run ValidateText first.
func (s *Store) Add(text string) (*Todo, error) {
	var created Todo
	err := s.mutate(func(todos []Todo, now time.Time) ([]Todo, error) {
		created = Todo{
			ID:        GenerateID(text, now, todoIDTaken(todos)),
			Text:      text,
			Subtasks:  []Subtask{},
			CreatedAt: now,
		}
		return append(todos, created), nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Toggle flips a todo's completion, stamping or clearing CompletedAt.
func (s *Store) Toggle(id string) (*Todo, error) {
	return s.updateTodo(id, func(item *Todo, now time.Time) error {
		item.Completed = !item.Completed
		if item.Completed {
			item.CompletedAt = timePtr(now)
		} else {
			item.CompletedAt = nil
		}
		return nil
	})
}

// UpdateText replaces a todo's text verbatim.
func (s *Store) UpdateText(id string, text string) (*Todo, error) {
	return s.updateTodo(id, func(item *Todo, now time.Time) error {
		item.Text = text
		return nil
	})
}

// Delete removes a todo together with all of its subtasks.
func (s *Store) Delete(id string) error {
	return s.mutate(func(todos []Todo, now time.Time) ([]Todo, error) {
		index := indexOfTodo(todos, id)
		if index < 0 {
			return nil, fmt.Errorf("%w: %s", ErrTodoNotFound, id)
		}
		return append(todos[:index:index], todos[index+1:]...), nil
	})
}

// AddSubtask appends a subtask to the named todo.
func (s *Store) AddSubtask(todoID string, text string) (*Subtask, error) {
	var created Subtask
	_, err := s.updateTodo(todoID, func(item *Todo, now time.Time) error {
		created = Subtask{
			ID:   GenerateID(text, now, subtaskIDTaken(item.Subtasks)),
			Text: text,
		}
		item.Subtasks = append(item.Subtasks, created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// ToggleSubtask flips a subtask's completion, stamping or clearing CompletedAt.
func (s *Store) ToggleSubtask(todoID string, subtaskID string) (*Subtask, error) {
	var toggled Subtask
	err := s.mutate(func(todos []Todo, now time.Time) ([]Todo, error) {
		subtask, err := findSubtask(todos, todoID, subtaskID)
		if err != nil {
			return nil, err
		}
		subtask.Completed = !subtask.Completed
		if subtask.Completed {
			subtask.CompletedAt = timePtr(now)
		} else {
			subtask.CompletedAt = nil
		}
		toggled = *subtask
		toggled.CompletedAt = cloneTime(subtask.CompletedAt)
		return todos, nil
	})
	if err != nil {
		return nil, err
	}
	return &toggled, nil
}

// DeleteSubtask removes a subtask from its todo.
func (s *Store) DeleteSubtask(todoID string, subtaskID string) error {
	return s.mutate(func(todos []Todo, now time.Time) ([]Todo, error) {
		index := indexOfTodo(todos, todoID)
		if index < 0 {
			return nil, fmt.Errorf("%w: %s", ErrTodoNotFound, todoID)
		}
		item := &todos[index]
		subIndex := indexOfSubtask(item.Subtasks, subtaskID)
		if subIndex < 0 {
			return nil, fmt.Errorf("%w: %s", ErrSubtaskNotFound, subtaskID)
		}
		item.Subtasks = append(item.Subtasks[:subIndex:subIndex], item.Subtasks[subIndex+1:]...)
		return todos, nil
	})
}

// UpdateTimeSpent accrues seconds of focus time.
//
// With an empty subtaskID the seconds go to the todo itself. Otherwise they go
// to the matching subtask only, never the parent. LastActiveAt on the todo is
// stamped either way.
//
// When subtaskID names a subtask that doesn't exist, LastActiveAt is still
// stamped and committed. The seconds then go to the todo if the store was
// opened with FallbackToTodo; otherwise they are dropped and the returned
// error wraps ErrSubtaskNotFound alongside the committed todo.
func (s *Store) UpdateTimeSpent(todoID string, subtaskID string, seconds int) (*Todo, error) {
	if seconds < 0 {
		return nil, fmt.Errorf("%w: %d seconds", ErrNegativeTime, seconds)
	}

	dropped := false
	updated, err := s.updateTodo(todoID, func(item *Todo, now time.Time) error {
		item.LastActiveAt = timePtr(now)
		if subtaskID == "" {
			return addSeconds(&item.TimeSpent, seconds, "todo "+item.ID)
		}
		subIndex := indexOfSubtask(item.Subtasks, subtaskID)
		if subIndex >= 0 {
			return addSeconds(&item.Subtasks[subIndex].TimeSpent, seconds, "subtask "+subtaskID)
		}
		if s.fallbackToTodo {
			return addSeconds(&item.TimeSpent, seconds, "todo "+item.ID)
		}
		dropped = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if dropped {
		return updated, fmt.Errorf("%w: %s (dropped %d seconds)", ErrSubtaskNotFound, subtaskID, seconds)
	}
	return updated, nil
}

// addSeconds adds seconds to total unless the sum would overflow.
func addSeconds(total *int, seconds int, owner string) error {
	if seconds > math.MaxInt-*total {
		return fmt.Errorf("%s: %w", owner, ErrTimeOverflow)
	}
	*total += seconds
	return nil
}

// Accrue records focus-timer time. It satisfies focus.Accruer.
func (s *Store) Accrue(todoID string, subtaskID string, seconds int) error {
	_, err := s.UpdateTimeSpent(todoID, subtaskID, seconds)
	return err
}

func (s *Store) updateTodo(id string, fn func(item *Todo, now time.Time) error) (*Todo, error) {
	var updated Todo
	err := s.mutate(func(todos []Todo, now time.Time) ([]Todo, error) {
		index := indexOfTodo(todos, id)
		if index < 0 {
			return nil, fmt.Errorf("%w: %s", ErrTodoNotFound, id)
		}
		if err := fn(&todos[index], now); err != nil {
			return nil, err
		}
		updated = todos[index].clone()
		return todos, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func findSubtask(todos []Todo, todoID string, subtaskID string) (*Subtask, error) {
	index := indexOfTodo(todos, todoID)
	if index < 0 {
		return nil, fmt.Errorf("%w: %s", ErrTodoNotFound, todoID)
	}
	item := &todos[index]
	subIndex := indexOfSubtask(item.Subtasks, subtaskID)
	if subIndex < 0 {
		return nil, fmt.Errorf("%w: %s", ErrSubtaskNotFound, subtaskID)
	}
	return &item.Subtasks[subIndex], nil
}

func indexOfTodo(todos []Todo, id string) int {
	for i := range todos {
		if todos[i].ID == id {
			return i
		}
	}
	return -1
}

func indexOfSubtask(subtasks []Subtask, id string) int {
	for i := range subtasks {
		if subtasks[i].ID == id {
			return i
		}
	}
	return -1
}
