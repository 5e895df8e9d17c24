// Package focustui implements the interactive focus-session screen.
package focustui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/amonks/focus/focus"
	"github.com/amonks/focus/todo"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Options configures a session screen.
type Options struct {
	Timer   *focus.Timer
	Store   *todo.Store
	TodoID  string
	Presets []int
}

type statusLevel int

const (
	statusNone statusLevel = iota
	statusInfo
	statusError
)

type mode int

const (
	modeTimer mode = iota
	modeSettings
	modeCustom
)

type timerEventMsg struct {
	event focus.Event
}

type timerDoneMsg struct {
	status focus.Status
	err    error
}

type todosMsg struct {
	todos []todo.Todo
}

type storeDoneMsg struct {
	err error
}

// reloadInterval is how often the screen rereads the store to pick up
// writes from other focus processes.
const reloadInterval = 2 * time.Second

type reloadTickMsg struct{}

type reloadedMsg struct {
	todos []todo.Todo
	err   error
}

type model struct {
	timer   *focus.Timer
	store   *todo.Store
	keys    keyMap
	presets []int

	item    todo.Todo
	missing bool
	status  focus.Status

	mode         mode
	presetCursor int
	cursor       int
	input        textinput.Model

	width       int
	height      int
	message     string
	messageKind statusLevel
}

// Run shows the session screen until the user quits. The caller owns the
// timer and must close it afterwards.
func Run(ctx context.Context, opts Options) error {
	if opts.Timer == nil || opts.Store == nil {
		return fmt.Errorf("focus session needs a timer and a store")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	m, err := newModel(opts)
	if err != nil {
		return err
	}

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	stopTimer := opts.Timer.Subscribe(func(event focus.Event) {
		if event.Kind == focus.EventClosed {
			return
		}
		program.Send(timerEventMsg{event: event})
	})
	defer stopTimer()
	stopStore := opts.Store.Subscribe(func(todos []todo.Todo) {
		program.Send(todosMsg{todos: todos})
	})
	defer stopStore()

	_, err = program.Run()
	return err
}

func newModel(opts Options) (model, error) {
	item, ok := opts.Store.Get(opts.TodoID)
	if !ok {
		return model{}, fmt.Errorf("%w: %s", todo.ErrTodoNotFound, opts.TodoID)
	}
	input := textinput.New()
	input.Placeholder = "minutes"
	input.CharLimit = 3
	input.Prompt = "Custom: "

	m := model{
		timer:   opts.Timer,
		store:   opts.Store,
		keys:    defaultKeyMap(),
		presets: focus.ParsePresets(opts.Presets),
		item:    item,
		status:  opts.Timer.Status(),
		input:   input,
	}
	m.cursor = m.targetRow()
	m.presetCursor = m.presetIndex(m.status.DurationMinutes)
	return m, nil
}

func (m model) Init() tea.Cmd {
	return reloadTick()
}

func reloadTick() tea.Cmd {
	return tea.Tick(reloadInterval, func(time.Time) tea.Msg {
		return reloadTickMsg{}
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case timerEventMsg:
		return m.handleTimerEvent(msg.event), nil
	case timerDoneMsg:
		m.status = msg.status
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("Could not record time: %v", msg.err), statusError)
		}
		return m, nil
	case todosMsg:
		return m.handleTodos(msg.todos), nil
	case storeDoneMsg:
		if msg.err != nil {
			m.setStatus(msg.err.Error(), statusError)
		}
		return m, nil
	case reloadTickMsg:
		return m, m.reloadCmd()
	case reloadedMsg:
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("Could not reload todos: %v", msg.err), statusError)
			return m, reloadTick()
		}
		return m.handleTodos(msg.todos), reloadTick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.mode == modeCustom {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) handleTimerEvent(event focus.Event) model {
	m.status = event.Status
	if m.status.State == focus.StateExpired {
		m.status.State = focus.StateIdle
	}
	switch {
	case event.Err != nil:
		m.setStatus(fmt.Sprintf("Could not record time: %v", event.Err), statusError)
	case event.Kind == focus.EventExpired:
		m.setStatus(fmt.Sprintf("Session complete: %dm recorded", event.Reported/60), statusInfo)
	case event.Discarded > 0:
		m.setStatus(fmt.Sprintf("Duration changed; %ds not recorded", event.Discarded), statusInfo)
	}
	return m
}

func (m model) handleTodos(todos []todo.Todo) model {
	for _, item := range todos {
		if item.ID == m.item.ID {
			m.item = item
			m.missing = false
			if m.cursor > len(item.Subtasks) {
				m.cursor = len(item.Subtasks)
			}
			return m
		}
	}
	m.missing = true
	m.setStatus("This todo was deleted", statusError)
	return m
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeCustom:
		return m.handleCustomKey(msg)
	case modeSettings:
		return m.handleSettingsKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		return m, m.timerCmd(m.timer.Toggle)
	case key.Matches(msg, m.keys.Reset):
		return m, m.timerCmd(m.timer.Reset)
	case key.Matches(msg, m.keys.Settings):
		m.mode = modeSettings
		m.presetCursor = m.presetIndex(m.status.DurationMinutes)
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.item.Subtasks) {
			m.cursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.Target):
		subtaskID := m.cursorSubtaskID()
		return m, m.timerCmd(func() error { return m.timer.SelectSubtask(subtaskID) })
	case key.Matches(msg, m.keys.Complete):
		return m, m.completeCmd()
	}
	return m, nil
}

func (m model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Settings), key.Matches(msg, m.keys.Cancel):
		m.mode = modeTimer
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.PrevPre):
		if m.presetCursor > 0 {
			m.presetCursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.NextPre):
		if m.presetCursor < len(m.presets)-1 {
			m.presetCursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		if m.presetCursor >= 0 && m.presetCursor < len(m.presets) {
			return m.applyDuration(m.presets[m.presetCursor])
		}
		return m, nil
	case key.Matches(msg, m.keys.PresetNum):
		index, _ := strconv.Atoi(msg.String())
		if index >= 1 && index <= len(m.presets) {
			return m.applyDuration(m.presets[index-1])
		}
		return m, nil
	case key.Matches(msg, m.keys.Custom):
		m.mode = modeCustom
		m.input.SetValue(strconv.Itoa(m.status.DurationMinutes))
		m.input.CursorEnd()
		return m, m.input.Focus()
	}
	return m, nil
}

func (m model) handleCustomKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.input.Blur()
		m.mode = modeSettings
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		minutes, err := strconv.Atoi(strings.TrimSpace(m.input.Value()))
		if err != nil {
			minutes = focus.MinMinutes
		}
		m.input.Blur()
		return m.applyDuration(focus.ClampMinutes(minutes))
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) applyDuration(minutes int) (tea.Model, tea.Cmd) {
	m.mode = modeTimer
	m.presetCursor = m.presetIndex(minutes)
	return m, m.timerCmd(func() error { return m.timer.SetDuration(minutes) })
}

// timerCmd runs a timer operation off the event loop, since the timer
// delivers its events back through the program.
func (m model) timerCmd(fn func() error) tea.Cmd {
	timer := m.timer
	return func() tea.Msg {
		err := fn()
		return timerDoneMsg{status: timer.Status(), err: err}
	}
}

func (m model) completeCmd() tea.Cmd {
	store := m.store
	todoID := m.item.ID
	subtaskID := m.cursorSubtaskID()
	return func() tea.Msg {
		var err error
		if subtaskID == "" {
			_, err = store.Toggle(todoID)
		} else {
			_, err = store.ToggleSubtask(todoID, subtaskID)
		}
		if err != nil {
			return storeDoneMsg{err: err}
		}
		return todosMsg{todos: store.Snapshot()}
	}
}

func (m model) reloadCmd() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		if err := store.Reload(); err != nil {
			return reloadedMsg{err: err}
		}
		return reloadedMsg{todos: store.Snapshot()}
	}
}

func (m model) cursorSubtaskID() string {
	if m.cursor <= 0 || m.cursor > len(m.item.Subtasks) {
		return ""
	}
	return m.item.Subtasks[m.cursor-1].ID
}

func (m model) targetRow() int {
	if m.status.SubtaskID == "" {
		return 0
	}
	for i, subtask := range m.item.Subtasks {
		if subtask.ID == m.status.SubtaskID {
			return i + 1
		}
	}
	return 0
}

func (m model) presetIndex(minutes int) int {
	for i, preset := range m.presets {
		if preset == minutes {
			return i
		}
	}
	return 0
}

func (m *model) setStatus(message string, level statusLevel) {
	m.message = message
	m.messageKind = level
}
