package focus

import (
	"slices"
	"sync"
	"time"
)

// TickInterval is the countdown resolution.
const TickInterval = time.Second

// Options configures a Timer.
type Options struct {
	TodoID    string
	SubtaskID string

	// DurationMinutes defaults to DefaultMinutes and is clamped to
	// [MinMinutes, MaxMinutes].
	DurationMinutes int

	Accruer   Accruer
	Scheduler Scheduler
	Logger    Logger

	// BankOnDurationChange reports the in-progress interval when the
	// duration changes instead of discarding it.
	BankOnDurationChange bool
}

// Timer is a countdown bound to one todo, and optionally one subtask.
//
// All methods are safe for concurrent use. Subscribers are called in
// transition order and must not call back into the timer synchronously.
type Timer struct {
	mu sync.Mutex

	accruer              Accruer
	scheduler            Scheduler
	logger               Logger
	bankOnDurationChange bool

	target          Target
	durationMinutes int
	timeLeft        int
	elapsed         int
	running         bool
	closed          bool

	handle     Handle
	generation uint64

	emitMu      sync.Mutex
	subscribers map[int]func(Event)
	nextSubID   int
}

// New builds an idle timer with a full countdown.
func New(opts Options) (*Timer, error) {
	if opts.TodoID == "" {
		return nil, ErrNoTarget
	}
	if opts.Accruer == nil {
		return nil, ErrNoAccruer
	}
	minutes := opts.DurationMinutes
	if minutes == 0 {
		minutes = DefaultMinutes
	}
	minutes = ClampMinutes(minutes)
	scheduler := opts.Scheduler
	if scheduler == nil {
		scheduler = TickerScheduler{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = noopLogger{}
	}
	return &Timer{
		accruer:              opts.Accruer,
		scheduler:            scheduler,
		logger:               logger,
		bankOnDurationChange: opts.BankOnDurationChange,
		target:               Target{TodoID: opts.TodoID, SubtaskID: opts.SubtaskID},
		durationMinutes:      minutes,
		timeLeft:             minutes * 60,
		subscribers:          make(map[int]func(Event)),
	}, nil
}

// Status returns the current timer status.
func (t *Timer) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.statusLocked()
}

// Subscribe registers fn for every subsequent event and returns a function
// that removes it.
func (t *Timer) Subscribe(fn func(Event)) func() {
	t.emitMu.Lock()
	defer t.emitMu.Unlock()
	id := t.nextSubID
	t.nextSubID++
	t.subscribers[id] = fn
	var once sync.Once
	return func() {
		once.Do(func() {
			t.emitMu.Lock()
			defer t.emitMu.Unlock()
			delete(t.subscribers, id)
		})
	}
}

// Start begins or resumes the countdown. Starting a running timer does
// nothing. Starting after an expiry begins a fresh full countdown.
func (t *Timer) Start() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrTimerClosed
	}
	if t.running {
		t.mu.Unlock()
		return nil
	}
	if t.timeLeft <= 0 {
		t.timeLeft = t.durationMinutes * 60
	}
	t.running = true
	t.disarmLocked()
	generation := t.generation
	t.handle = t.scheduler.Every(TickInterval, func() { t.tick(generation) })
	return t.commit(transition{kind: EventStarted})
}

// Pause stops the countdown and reports the elapsed seconds. Pausing an
// idle timer does nothing.
func (t *Timer) Pause() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrTimerClosed
	}
	if !t.running {
		t.mu.Unlock()
		return nil
	}
	t.stopLocked()
	return t.commit(transition{kind: EventPaused, report: t.takeElapsedLocked(), target: t.target})
}

// Toggle pauses a running timer and starts an idle one.
func (t *Timer) Toggle() error {
	if t.Status().Running() {
		return t.Pause()
	}
	return t.Start()
}

// Reset reports any elapsed seconds, then restores a full idle countdown.
func (t *Timer) Reset() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrTimerClosed
	}
	t.stopLocked()
	report := t.takeElapsedLocked()
	t.timeLeft = t.durationMinutes * 60
	return t.commit(transition{kind: EventReset, report: report, target: t.target})
}

// SetDuration clamps minutes, restores a full idle countdown at the new
// length, and discards the in-progress interval unless the timer banks on
// duration changes.
func (t *Timer) SetDuration(minutes int) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrTimerClosed
	}
	t.stopLocked()
	elapsed := t.takeElapsedLocked()
	t.durationMinutes = ClampMinutes(minutes)
	t.timeLeft = t.durationMinutes * 60
	tr := transition{kind: EventDurationChanged, target: t.target}
	if t.bankOnDurationChange {
		tr.report = elapsed
	} else {
		tr.discard = elapsed
	}
	return t.commit(tr)
}

// SelectSubtask retargets the timer. An empty subtaskID targets the todo.
// Seconds elapsed so far are reported to the previous target first. A
// running countdown keeps running.
func (t *Timer) SelectSubtask(subtaskID string) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrTimerClosed
	}
	if t.target.SubtaskID == subtaskID {
		t.mu.Unlock()
		return nil
	}
	previous := t.target
	report := t.takeElapsedLocked()
	t.target.SubtaskID = subtaskID
	return t.commit(transition{kind: EventTargetChanged, report: report, target: previous})
}

// Close stops the countdown and reports any elapsed seconds before the
// timer's resources are released. Closing twice does nothing.
func (t *Timer) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.stopLocked()
	t.closed = true
	return t.commit(transition{kind: EventClosed, report: t.takeElapsedLocked(), target: t.target})
}

func (t *Timer) tick(generation uint64) {
	t.mu.Lock()
	if t.closed || !t.running || generation != t.generation {
		t.mu.Unlock()
		return
	}
	t.timeLeft--
	t.elapsed++
	if t.timeLeft > 0 {
		// Ticks report nothing, so commit cannot fail here.
		_ = t.commit(transition{kind: EventTick})
		return
	}
	t.timeLeft = 0
	t.stopLocked()
	// No caller waits on a tick. An accrual error reaches subscribers as
	// Event.Err and the logger as AccrualFailed.
	_ = t.commit(transition{kind: EventExpired, report: t.takeElapsedLocked(), target: t.target})
}

// stopLocked cancels the armed callback and leaves the timer idle.
func (t *Timer) stopLocked() {
	t.running = false
	t.disarmLocked()
}

func (t *Timer) disarmLocked() {
	if t.handle != nil {
		t.handle.Cancel()
		t.handle = nil
	}
	t.generation++
}

func (t *Timer) takeElapsedLocked() int {
	elapsed := t.elapsed
	t.elapsed = 0
	return elapsed
}

func (t *Timer) statusLocked() Status {
	state := StateIdle
	if t.running {
		state = StateRunning
	}
	return Status{
		State:           state,
		TodoID:          t.target.TodoID,
		SubtaskID:       t.target.SubtaskID,
		DurationMinutes: t.durationMinutes,
		TimeLeft:        t.timeLeft,
		Elapsed:         t.elapsed,
	}
}

type transition struct {
	kind    EventKind
	report  int
	discard int
	target  Target
}

// commit must be called with t.mu held; it releases it. Reporting and
// emission happen under emitMu so events reach subscribers in the order the
// transitions were applied.
func (t *Timer) commit(tr transition) error {
	status := t.statusLocked()
	t.emitMu.Lock()
	t.mu.Unlock()
	defer t.emitMu.Unlock()

	event := Event{Kind: tr.kind, Status: status, Discarded: tr.discard}
	if tr.report > 0 {
		if err := t.accruer.Accrue(tr.target.TodoID, tr.target.SubtaskID, tr.report); err != nil {
			event.Err = err
			t.logger.AccrualFailed(AccrualFailedLog{Target: tr.target, Seconds: tr.report, Err: err})
		} else {
			event.Reported = tr.report
			t.logger.Accrued(AccrualLog{Target: tr.target, Seconds: tr.report})
		}
	}

	current := Target{TodoID: status.TodoID, SubtaskID: status.SubtaskID}
	switch tr.kind {
	case EventStarted:
		t.logger.Started(StartedLog{Target: current, TimeLeft: status.TimeLeft})
	case EventPaused:
		t.logger.Paused(PausedLog{Target: current, TimeLeft: status.TimeLeft})
	case EventExpired:
		event.Status.State = StateExpired
		t.logger.Expired(ExpiredLog{Target: current, DurationMinutes: status.DurationMinutes})
	case EventReset, EventDurationChanged:
		t.logger.Reset(ResetLog{Target: current, DurationMinutes: status.DurationMinutes, Discarded: tr.discard})
	}

	for _, fn := range t.subscriberList() {
		fn(event)
	}
	if tr.kind == EventClosed {
		t.subscribers = make(map[int]func(Event))
	}
	return event.Err
}

func (t *Timer) subscriberList() []func(Event) {
	ids := make([]int, 0, len(t.subscribers))
	for id := range t.subscribers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(Event), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, t.subscribers[id])
	}
	return fns
}
