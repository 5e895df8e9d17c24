package focus

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestManualSchedulerCancelFromCallback(t *testing.T) {
	scheduler := &ManualScheduler{}
	count := 0
	var handle Handle
	handle = scheduler.Every(time.Second, func() {
		count++
		if count == 2 {
			handle.Cancel()
		}
	})
	scheduler.Advance(5)
	if count != 2 {
		t.Fatalf("expected 2 calls, got %d", count)
	}
	if scheduler.Active() != 0 {
		t.Fatalf("expected no active callbacks")
	}
	handle.Cancel()
}

func TestTickerSchedulerFiresUntilCanceled(t *testing.T) {
	var calls atomic.Int32
	fired := make(chan struct{}, 1)
	handle := TickerScheduler{}.Every(time.Millisecond, func() {
		calls.Add(1)
		select {
		case fired <- struct{}{}:
		default:
		}
	})
	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("ticker never fired")
	}
	handle.Cancel()
	handle.Cancel()

	time.Sleep(10 * time.Millisecond)
	settled := calls.Load()
	time.Sleep(20 * time.Millisecond)
	if calls.Load() != settled {
		t.Fatalf("ticker kept firing after cancel")
	}
}
