// Package focus implements the focus-session timer.
//
// A Timer counts down a session scoped to one todo, and optionally one of
// its subtasks. Whenever the countdown stops (pause, natural expiry, reset,
// target switch, or close) the seconds elapsed since the last report are
// handed to an Accruer exactly once. The timer never mutates todos itself.
package focus

import (
	"errors"
	"fmt"
	"strings"
)

// State is the timer's lifecycle state.
type State string

const (
	// StateIdle means the countdown is not running.
	StateIdle State = "idle"
	// StateRunning means the countdown is active.
	StateRunning State = "running"
	// StateExpired is reported on the expiry event; the timer settles back
	// to idle immediately after.
	StateExpired State = "expired"
)

// Duration limits, in minutes.
const (
	DefaultMinutes = 25
	MinMinutes     = 1
	MaxMinutes     = 120
)

// DefaultPresets are the quick-pick session lengths, in minutes.
var DefaultPresets = []int{15, 25, 30, 45, 60}

var (
	// ErrTimerClosed is returned by operations on a closed timer.
	ErrTimerClosed = errors.New("timer is closed")

	// ErrNoTarget is returned when a timer is created without a todo.
	ErrNoTarget = errors.New("timer needs a todo to target")

	// ErrNoAccruer is returned when a timer is created without an accruer.
	ErrNoAccruer = errors.New("timer needs an accruer")
)

// ClampMinutes limits a session length to [MinMinutes, MaxMinutes].
func ClampMinutes(minutes int) int {
	if minutes < MinMinutes {
		return MinMinutes
	}
	if minutes > MaxMinutes {
		return MaxMinutes
	}
	return minutes
}

// Accruer receives elapsed focus time. An empty subtaskID targets the todo.
type Accruer interface {
	Accrue(todoID string, subtaskID string, seconds int) error
}

// AccruerFunc adapts a function to Accruer.
type AccruerFunc func(todoID string, subtaskID string, seconds int) error

// Accrue implements Accruer.
func (fn AccruerFunc) Accrue(todoID string, subtaskID string, seconds int) error {
	return fn(todoID, subtaskID, seconds)
}

// Status is a point-in-time view of the timer for display.
type Status struct {
	State           State
	TodoID          string
	SubtaskID       string
	DurationMinutes int
	// TimeLeft is the remaining countdown in seconds.
	TimeLeft int
	// Elapsed is the number of seconds not yet reported.
	Elapsed int
}

// Running reports whether the countdown is active.
func (s Status) Running() bool {
	return s.State == StateRunning
}

// TotalSeconds is the full session length in seconds.
func (s Status) TotalSeconds() int {
	return s.DurationMinutes * 60
}

// Progress returns the completed fraction of the session in [0, 1].
func (s Status) Progress() float64 {
	total := s.TotalSeconds()
	if total <= 0 {
		return 0
	}
	progress := float64(total-s.TimeLeft) / float64(total)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

// EventKind identifies a timer transition.
type EventKind string

const (
	EventStarted         EventKind = "started"
	EventTick            EventKind = "tick"
	EventPaused          EventKind = "paused"
	EventExpired         EventKind = "expired"
	EventReset           EventKind = "reset"
	EventDurationChanged EventKind = "duration-changed"
	EventTargetChanged   EventKind = "target-changed"
	EventClosed          EventKind = "closed"
)

// Event describes a transition and the status right after it.
type Event struct {
	Kind   EventKind
	Status Status

	// Reported is the number of seconds handed to the accruer during this
	// transition.
	Reported int

	// Discarded is the number of seconds dropped during this transition.
	Discarded int

	// Err is the accruer's error, if reporting failed.
	Err error
}

// FormatClock renders seconds as MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// ParsePresets validates a list of preset lengths, clamping each one.
func ParsePresets(values []int) []int {
	if len(values) == 0 {
		return append([]int(nil), DefaultPresets...)
	}
	presets := make([]int, 0, len(values))
	seen := make(map[int]bool, len(values))
	for _, value := range values {
		value = ClampMinutes(value)
		if seen[value] {
			continue
		}
		seen[value] = true
		presets = append(presets, value)
	}
	return presets
}

// FormatPresets renders presets like "15m 25m 30m".
func FormatPresets(presets []int) string {
	parts := make([]string, 0, len(presets))
	for _, preset := range presets {
		parts = append(parts, fmt.Sprintf("%dm", preset))
	}
	return strings.Join(parts, " ")
}
