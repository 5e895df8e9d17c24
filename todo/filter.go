package todo

import (
	"time"

	internalstrings "github.com/amonks/focus/internal/strings"
	"github.com/amonks/focus/internal/validation"
)

// StatusFilter selects todos by completion.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusActive    StatusFilter = "active"
	StatusCompleted StatusFilter = "completed"
)

// ValidStatusFilters returns all valid status filter values.
func ValidStatusFilters() []StatusFilter {
	return []StatusFilter{StatusAll, StatusActive, StatusCompleted}
}

// RangeFilter selects todos by their most relevant timestamp.
type RangeFilter string

const (
	RangeAll   RangeFilter = "all"
	RangeToday RangeFilter = "today"
	RangeWeek  RangeFilter = "week"
	RangeMonth RangeFilter = "month"
)

// ValidRangeFilters returns all valid range filter values.
func ValidRangeFilters() []RangeFilter {
	return []RangeFilter{RangeAll, RangeToday, RangeWeek, RangeMonth}
}

// ParseStatusFilter normalizes and validates a status filter. Empty means all.
func ParseStatusFilter(value string) (StatusFilter, error) {
	value = internalstrings.NormalizeLowerTrimSpace(value)
	if value == "" {
		return StatusAll, nil
	}
	for _, valid := range ValidStatusFilters() {
		if StatusFilter(value) == valid {
			return valid, nil
		}
	}
	return "", validation.FormatInvalidValueError(ErrInvalidStatusFilter, StatusFilter(value), ValidStatusFilters())
}

// ParseRangeFilter normalizes and validates a range filter. Empty means all.
func ParseRangeFilter(value string) (RangeFilter, error) {
	value = internalstrings.NormalizeLowerTrimSpace(value)
	if value == "" {
		return RangeAll, nil
	}
	for _, valid := range ValidRangeFilters() {
		if RangeFilter(value) == valid {
			return valid, nil
		}
	}
	return "", validation.FormatInvalidValueError(ErrInvalidRangeFilter, RangeFilter(value), ValidRangeFilters())
}

// Filter narrows a todo list.
type Filter struct {
	Status StatusFilter
	Range  RangeFilter
}

// Apply returns the todos matching the filter, preserving order.
// now anchors the range boundaries in its own location.
func (f Filter) Apply(todos []Todo, now time.Time) []Todo {
	start, bounded := rangeStart(f.Range, now)

	matched := make([]Todo, 0, len(todos))
	for _, item := range todos {
		if !f.matchesStatus(item) {
			continue
		}
		if bounded {
			ref := ReferenceTime(item)
			if ref != nil && ref.Before(start) {
				continue
			}
		}
		matched = append(matched, item)
	}
	return matched
}

func (f Filter) matchesStatus(item Todo) bool {
	switch f.Status {
	case StatusActive:
		return !item.Completed
	case StatusCompleted:
		return item.Completed
	default:
		return true
	}
}

// ReferenceTime is the timestamp range filters compare against: completion
// time for completed todos, otherwise last activity falling back to creation.
func ReferenceTime(item Todo) *time.Time {
	if item.Completed {
		return item.CompletedAt
	}
	if item.LastActiveAt != nil {
		return item.LastActiveAt
	}
	if item.CreatedAt.IsZero() {
		return nil
	}
	return &item.CreatedAt
}

func rangeStart(r RangeFilter, now time.Time) (time.Time, bool) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch r {
	case RangeToday:
		return startOfDay, true
	case RangeWeek:
		return startOfDay.AddDate(0, 0, -int(now.Weekday())), true
	case RangeMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), true
	default:
		return time.Time{}, false
	}
}
