package todo

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestTodoTotalsAndProgress(t *testing.T) {
	done := time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)
	item := Todo{
		TimeSpent: 60,
		Subtasks: []Subtask{
			{ID: "a", TimeSpent: 30, Completed: true, CompletedAt: &done},
			{ID: "b", TimeSpent: 15},
		},
	}

	if got := item.TotalTimeSpent(); got != 105 {
		t.Fatalf("expected 105, got %d", got)
	}
	doneCount, total := item.SubtaskProgress()
	if doneCount != 1 || total != 2 {
		t.Fatalf("expected 1/2, got %d/%d", doneCount, total)
	}
	if _, ok := item.Subtask("b"); !ok {
		t.Fatal("expected subtask b")
	}
	if _, ok := item.Subtask("c"); ok {
		t.Fatal("expected no subtask c")
	}
}

func TestValidateText(t *testing.T) {
	if err := ValidateText(""); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
	if err := ValidateText(strings.Repeat("x", MaxTextLength+1)); !errors.Is(err, ErrTextTooLong) {
		t.Fatalf("expected ErrTextTooLong, got %v", err)
	}
	if err := ValidateText("ok"); err != nil {
		t.Fatalf("expected valid text, got %v", err)
	}
}

func TestValidateTodo(t *testing.T) {
	now := time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		item    Todo
		wantErr error
	}{
		{name: "valid", item: Todo{ID: "a"}},
		{name: "completed with timestamp", item: Todo{ID: "a", Completed: true, CompletedAt: &now}},
		{name: "completed without timestamp", item: Todo{ID: "a", Completed: true}, wantErr: ErrCompletedAtMismatch},
		{name: "timestamp without completed", item: Todo{ID: "a", CompletedAt: &now}, wantErr: ErrCompletedAtMismatch},
		{name: "negative time", item: Todo{ID: "a", TimeSpent: -1}, wantErr: ErrNegativeTime},
		{
			name:    "subtask mismatch",
			item:    Todo{ID: "a", Subtasks: []Subtask{{ID: "s", Completed: true}}},
			wantErr: ErrCompletedAtMismatch,
		},
		{
			name:    "subtask negative time",
			item:    Todo{ID: "a", Subtasks: []Subtask{{ID: "s", TimeSpent: -3}}},
			wantErr: ErrNegativeTime,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateTodo(&tc.item)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestValidateTodoRejectsDuplicateSubtaskIDs(t *testing.T) {
	item := Todo{ID: "a", Subtasks: []Subtask{{ID: "s"}, {ID: "s"}}}
	if err := ValidateTodo(&item); err == nil {
		t.Fatal("expected duplicate subtask IDs to be rejected")
	}
}
