package focustui

import (
	"fmt"
	"strings"

	"github.com/amonks/focus/focus"
	"github.com/amonks/focus/internal/ui"
	"github.com/charmbracelet/bubbles/key"
)

const progressBarWidth = 30

func (m model) View() string {
	var lines []string
	lines = append(lines, titleStyle.Render("Focus Session"), "")
	lines = append(lines, m.renderClock()...)
	lines = append(lines, "")

	switch m.mode {
	case modeSettings:
		lines = append(lines, m.renderPresets(), "")
	case modeCustom:
		lines = append(lines, m.renderPresets(), m.input.View(), "")
	}

	lines = append(lines, m.renderTask()...)
	lines = append(lines, "", m.renderStatusLine(), m.renderHelpLine())
	return strings.Join(lines, "\n")
}

func (m model) renderClock() []string {
	state := "paused"
	if m.status.Running() {
		state = "running"
	}
	clock := clockStyle.Render(focus.FormatClock(m.status.TimeLeft))
	summary := fmt.Sprintf("%s  %s  %s", clock, valueMuted.Render(fmt.Sprintf("%dm", m.status.DurationMinutes)), state)
	return []string{summary, renderProgressBar(m.status.Progress(), progressBarWidth)}
}

func renderProgressBar(progress float64, width int) string {
	if width < 1 {
		width = 1
	}
	filled := int(progress * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := barFilledStyle.Render(strings.Repeat("#", filled)) + barEmptyStyle.Render(strings.Repeat("-", width-filled))
	return fmt.Sprintf("[%s] %3d%%", bar, int(progress*100))
}

func (m model) renderPresets() string {
	parts := make([]string, 0, len(m.presets))
	for i, preset := range m.presets {
		label := fmt.Sprintf("%dm", preset)
		style := presetStyle
		if i == m.presetCursor {
			style = presetActive
			label = "[" + label + "]"
		}
		parts = append(parts, style.Render(label))
	}
	return strings.Join(parts, " ")
}

func (m model) renderTask() []string {
	lines := []string{labelStyle.Render("Current Task")}
	item := m.item
	text := item.Text
	if item.Completed {
		text = completedStyle.Render(text)
	}
	lines = append(lines, m.renderRow(0, item.Completed, m.status.SubtaskID == "", text,
		"total "+ui.FormatTotal(item.TimeSpent)))
	if len(item.Subtasks) == 0 {
		return lines
	}

	done, total := item.SubtaskProgress()
	lines = append(lines, labelStyle.Render(fmt.Sprintf("Subtasks %d/%d", done, total)))
	for i, subtask := range item.Subtasks {
		text := subtask.Text
		if subtask.Completed {
			text = completedStyle.Render(text)
		}
		lines = append(lines, m.renderRow(i+1, subtask.Completed, m.status.SubtaskID == subtask.ID, text,
			ui.FormatTotal(subtask.TimeSpent)))
	}
	return lines
}

func (m model) renderRow(row int, completed, target bool, text, detail string) string {
	cursor := "  "
	if row == m.cursor {
		cursor = "> "
	}
	check := "[ ]"
	if completed {
		check = "[x]"
	}
	marker := " "
	if target {
		marker = targetStyle.Render("*")
	}
	indent := ""
	if row > 0 {
		indent = "  "
	}
	return fmt.Sprintf("%s%s%s %s %s  %s", cursor, indent, marker, check, text, valueMuted.Render(detail))
}

func (m model) renderStatusLine() string {
	switch m.messageKind {
	case statusError:
		return statusErrStyle.Render(m.message)
	case statusInfo:
		return statusInfoStyle.Render(m.message)
	}
	return ""
}

func (m model) renderHelpLine() string {
	bindings := m.keys.mainHelp()
	if m.mode != modeTimer {
		bindings = m.keys.settingsHelp()
	}
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		parts = append(parts, helpEntry(binding))
	}
	return helpStyle.Render(strings.Join(parts, "  "))
}

func helpEntry(binding key.Binding) string {
	help := binding.Help()
	return help.Key + " " + help.Desc
}
