package focus

import (
	"sync"
	"time"
)

// Scheduler arms recurring callbacks.
type Scheduler interface {
	// Every calls fn once per interval until the returned handle is
	// canceled.
	Every(interval time.Duration, fn func()) Handle
}

// Handle is a single armed recurring callback.
type Handle interface {
	// Cancel stops future callbacks. It is safe to call more than once and
	// from inside the callback.
	Cancel()
}

// TickerScheduler drives callbacks from a time.Ticker goroutine.
type TickerScheduler struct {
	// Interval replaces the requested interval when set, which speeds up
	// or slows down a session's clock.
	Interval time.Duration
}

// Every implements Scheduler.
func (s TickerScheduler) Every(interval time.Duration, fn func()) Handle {
	if s.Interval > 0 {
		interval = s.Interval
	}
	handle := &tickerHandle{stop: make(chan struct{})}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-handle.stop:
				return
			case <-ticker.C:
				select {
				case <-handle.stop:
					return
				default:
				}
				fn()
			}
		}
	}()
	return handle
}

type tickerHandle struct {
	stop chan struct{}
	once sync.Once
}

func (h *tickerHandle) Cancel() {
	h.once.Do(func() { close(h.stop) })
}

// ManualScheduler fires callbacks only when Advance is called. It is meant
// for tests and for replaying a session without waiting on the wall clock.
type ManualScheduler struct {
	mu      sync.Mutex
	handles []*manualHandle
	armed   int
}

type manualHandle struct {
	scheduler *ManualScheduler
	fn        func()
	canceled  bool
}

// Every implements Scheduler.
func (s *ManualScheduler) Every(interval time.Duration, fn func()) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	handle := &manualHandle{scheduler: s, fn: fn}
	s.handles = append(s.handles, handle)
	s.armed++
	return handle
}

func (h *manualHandle) Cancel() {
	h.scheduler.mu.Lock()
	defer h.scheduler.mu.Unlock()
	h.canceled = true
}

// Advance fires every live callback n times, one interval at a time.
func (s *ManualScheduler) Advance(n int) {
	for i := 0; i < n; i++ {
		for _, fn := range s.live() {
			fn()
		}
	}
}

// Active returns how many callbacks are currently armed.
func (s *ManualScheduler) Active() int {
	return len(s.live())
}

// Armed returns how many callbacks were ever armed.
func (s *ManualScheduler) Armed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.armed
}

func (s *ManualScheduler) live() []func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.handles[:0]
	fns := make([]func(), 0, len(s.handles))
	for _, handle := range s.handles {
		if handle.canceled {
			continue
		}
		kept = append(kept, handle)
		fns = append(fns, handle.fn)
	}
	s.handles = kept
	return fns
}
