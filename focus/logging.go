package focus

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Logger captures timer log entries.
type Logger interface {
	Started(StartedLog)
	Paused(PausedLog)
	Expired(ExpiredLog)
	Reset(ResetLog)
	Accrued(AccrualLog)
	AccrualFailed(AccrualFailedLog)
}

// Target names the todo, and optionally the subtask, receiving time.
type Target struct {
	TodoID    string
	SubtaskID string
}

// String renders the target as "todo" or "todo/subtask".
func (target Target) String() string {
	if target.SubtaskID == "" {
		return target.TodoID
	}
	return target.TodoID + "/" + target.SubtaskID
}

// StartedLog captures a countdown start or resume.
type StartedLog struct {
	Target   Target
	TimeLeft int
}

// PausedLog captures a pause.
type PausedLog struct {
	Target   Target
	TimeLeft int
}

// ExpiredLog captures a natural expiry.
type ExpiredLog struct {
	Target          Target
	DurationMinutes int
}

// ResetLog captures a reset or a duration change.
type ResetLog struct {
	Target          Target
	DurationMinutes int
	Discarded       int
}

// AccrualLog captures seconds handed to the accruer.
type AccrualLog struct {
	Target  Target
	Seconds int
}

// AccrualFailedLog captures a failed accrual.
type AccrualFailedLog struct {
	Target  Target
	Seconds int
	Err     error
}

type noopLogger struct{}

func (noopLogger) Started(StartedLog)             {}
func (noopLogger) Paused(PausedLog)               {}
func (noopLogger) Expired(ExpiredLog)             {}
func (noopLogger) Reset(ResetLog)                 {}
func (noopLogger) Accrued(AccrualLog)             {}
func (noopLogger) AccrualFailed(AccrualFailedLog) {}

// ConsoleLogger writes one styled line per entry.
type ConsoleLogger struct {
	writer     io.Writer
	labelStyle lipgloss.Style
	errorStyle lipgloss.Style
	dimStyle   lipgloss.Style
}

// NewConsoleLogger builds a styled logger for headless sessions.
func NewConsoleLogger(writer io.Writer) *ConsoleLogger {
	if writer == nil {
		writer = io.Discard
	}
	return &ConsoleLogger{
		writer:     writer,
		labelStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")),
		errorStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("160")),
		dimStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// Started logs a start entry.
func (logger *ConsoleLogger) Started(entry StartedLog) {
	if logger == nil {
		return
	}
	logger.line(logger.labelStyle, "started", entry.Target, FormatClock(entry.TimeLeft)+" left")
}

// Paused logs a pause entry.
func (logger *ConsoleLogger) Paused(entry PausedLog) {
	if logger == nil {
		return
	}
	logger.line(logger.labelStyle, "paused", entry.Target, FormatClock(entry.TimeLeft)+" left")
}

// Expired logs an expiry entry.
func (logger *ConsoleLogger) Expired(entry ExpiredLog) {
	if logger == nil {
		return
	}
	logger.line(logger.labelStyle, "expired", entry.Target, fmt.Sprintf("%dm session complete", entry.DurationMinutes))
}

// Reset logs a reset entry.
func (logger *ConsoleLogger) Reset(entry ResetLog) {
	if logger == nil {
		return
	}
	detail := fmt.Sprintf("%dm", entry.DurationMinutes)
	if entry.Discarded > 0 {
		detail += fmt.Sprintf(", discarded %ds", entry.Discarded)
	}
	logger.line(logger.labelStyle, "reset", entry.Target, detail)
}

// Accrued logs an accrual entry.
func (logger *ConsoleLogger) Accrued(entry AccrualLog) {
	if logger == nil {
		return
	}
	logger.line(logger.dimStyle, "accrued", entry.Target, fmt.Sprintf("%ds", entry.Seconds))
}

// AccrualFailed logs a failed accrual.
func (logger *ConsoleLogger) AccrualFailed(entry AccrualFailedLog) {
	if logger == nil {
		return
	}
	detail := fmt.Sprintf("%ds", entry.Seconds)
	if entry.Err != nil {
		detail += ": " + entry.Err.Error()
	}
	logger.line(logger.errorStyle, "accrual failed", entry.Target, detail)
}

func (logger *ConsoleLogger) line(style lipgloss.Style, label string, target Target, detail string) {
	fmt.Fprintf(logger.writer, "%s %s %s\n", style.Render(label), target.String(), detail)
}
