// Package todo implements the task store: the single owner of the todo and
// subtask collection.
//
// Every mutation reloads the persisted collection under an exclusive file
// lock, applies the change, writes the result back, and only then publishes
// the new snapshot to subscribers. Observers never see a change that was not
// persisted.
//
// The public API mirrors the CLI commands:
//   - Add, Toggle, Delete, UpdateText for todos
//   - AddSubtask, ToggleSubtask, DeleteSubtask for subtasks
//   - UpdateTimeSpent (and Accrue, for the focus timer) for time accrual
//   - Snapshot, Get, Resolve and Subscribe for reading
package todo

import (
	"math"
	"time"
)

// Todo is a top-level task.
type Todo struct {
	// ID is an opaque identifier assigned at creation and never reused.
	ID string `json:"id"`

	// Text is the user-supplied label.
	Text string `json:"text"`

	// Completed reports whether the todo is done.
	Completed bool `json:"completed"`

	// Subtasks are kept in creation order.
	Subtasks []Subtask `json:"subtasks"`

	// CreatedAt is set once when the todo is added.
	CreatedAt time.Time `json:"createdAt"`

	// CompletedAt is present if and only if Completed is true.
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	// TimeSpent is focus time in seconds attributed to the todo itself.
	// Subtask time is not included.
	TimeSpent int `json:"timeSpent"`

	// LastActiveAt is stamped whenever time accrues to the todo or one of
	// its subtasks.
	LastActiveAt *time.Time `json:"lastActiveAt,omitempty"`
}

// Subtask is a child unit of work owned by exactly one todo.
type Subtask struct {
	// ID is unique within the parent todo's subtasks.
	ID string `json:"id"`

	Text        string     `json:"text"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	// TimeSpent is focus time in seconds attributed to this subtask.
	TimeSpent int `json:"timeSpent"`
}

// MaxTextLength is the longest label the CLI accepts.
const MaxTextLength = 500

// TotalTimeSpent returns the todo's own time plus all subtask time.
func (t Todo) TotalTimeSpent() int {
	total := t.TimeSpent
	for _, subtask := range t.Subtasks {
		if subtask.TimeSpent > math.MaxInt-total {
			return math.MaxInt
		}
		total += subtask.TimeSpent
	}
	return total
}

// SubtaskProgress returns the number of completed subtasks and the total.
func (t Todo) SubtaskProgress() (done int, total int) {
	for _, subtask := range t.Subtasks {
		if subtask.Completed {
			done++
		}
	}
	return done, len(t.Subtasks)
}

// Subtask returns the subtask with the given ID.
func (t Todo) Subtask(id string) (Subtask, bool) {
	for _, subtask := range t.Subtasks {
		if subtask.ID == id {
			return subtask, true
		}
	}
	return Subtask{}, false
}

func (t Todo) clone() Todo {
	out := t
	out.CompletedAt = cloneTime(t.CompletedAt)
	out.LastActiveAt = cloneTime(t.LastActiveAt)
	if t.Subtasks != nil {
		out.Subtasks = make([]Subtask, len(t.Subtasks))
		for i, subtask := range t.Subtasks {
			subtask.CompletedAt = cloneTime(subtask.CompletedAt)
			out.Subtasks[i] = subtask
		}
	}
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	return timePtr(*t)
}

func cloneTodos(todos []Todo) []Todo {
	out := make([]Todo, len(todos))
	for i, item := range todos {
		out[i] = item.clone()
	}
	return out
}

func timePtr(t time.Time) *time.Time {
	return &t
}
