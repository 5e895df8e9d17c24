package todo

import (
	"errors"
	"testing"
	"time"
)

func TestParseStatusFilter(t *testing.T) {
	cases := []struct {
		input   string
		want    StatusFilter
		wantErr bool
	}{
		{input: "", want: StatusAll},
		{input: "all", want: StatusAll},
		{input: " Active ", want: StatusActive},
		{input: "COMPLETED", want: StatusCompleted},
		{input: "done", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseStatusFilter(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestParseRangeFilter(t *testing.T) {
	if got, err := ParseRangeFilter("Week"); err != nil || got != RangeWeek {
		t.Fatalf("expected week, got %q (%v)", got, err)
	}
	_, err := ParseRangeFilter("year")
	if !errors.Is(err, ErrInvalidRangeFilter) {
		t.Fatalf("expected ErrInvalidRangeFilter, got %v", err)
	}
	want := `invalid range filter: "year" (valid: all, today, week, month)`
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestFilterApply(t *testing.T) {
	// Wednesday.
	now := time.Date(2026, 3, 4, 15, 0, 0, 0, time.UTC)
	today := now.Add(-2 * time.Hour)
	sunday := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	lastSaturday := time.Date(2026, 2, 28, 23, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2026, 1, 20, 12, 0, 0, 0, time.UTC)

	todos := []Todo{
		{ID: "active-today", CreatedAt: lastMonth, LastActiveAt: &today},
		{ID: "active-old", CreatedAt: lastMonth},
		{ID: "done-sunday", Completed: true, CompletedAt: &sunday, CreatedAt: lastMonth},
		{ID: "done-saturday", Completed: true, CompletedAt: &lastSaturday, CreatedAt: lastMonth},
		{ID: "created-today", CreatedAt: today},
	}

	cases := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{
			name:   "all",
			filter: Filter{},
			want:   []string{"active-today", "active-old", "done-sunday", "done-saturday", "created-today"},
		},
		{
			name:   "active",
			filter: Filter{Status: StatusActive},
			want:   []string{"active-today", "active-old", "created-today"},
		},
		{
			name:   "completed",
			filter: Filter{Status: StatusCompleted},
			want:   []string{"done-sunday", "done-saturday"},
		},
		{
			name:   "today uses last activity",
			filter: Filter{Range: RangeToday},
			want:   []string{"active-today", "created-today"},
		},
		{
			name:   "week starts sunday",
			filter: Filter{Range: RangeWeek},
			want:   []string{"active-today", "done-sunday", "created-today"},
		},
		{
			name:   "month",
			filter: Filter{Range: RangeMonth},
			want:   []string{"active-today", "done-sunday", "created-today"},
		},
		{
			name:   "completed this month",
			filter: Filter{Status: StatusCompleted, Range: RangeMonth},
			want:   []string{"done-sunday"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.filter.Apply(todos, now)
			if len(got) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, todoIDs(got))
			}
			for i := range got {
				if got[i].ID != tc.want[i] {
					t.Fatalf("expected %v, got %v", tc.want, todoIDs(got))
				}
			}
		})
	}
}

func todoIDs(todos []Todo) []string {
	out := make([]string, 0, len(todos))
	for _, item := range todos {
		out = append(out, item.ID)
	}
	return out
}
