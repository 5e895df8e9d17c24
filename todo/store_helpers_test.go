package todo

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/amonks/focus/internal/state"
)

var testEpoch = time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)

// stepClock returns a time one second later on every call.
type stepClock struct {
	current time.Time
}

func (c *stepClock) Now() time.Time {
	c.current = c.current.Add(time.Second)
	return c.current
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return newTestStoreWithOptions(t, OpenOptions{})
}

func newTestStoreWithOptions(t *testing.T, opts OpenOptions) *Store {
	t.Helper()

	if opts.Path == "" && opts.Backend == nil {
		opts.Path = filepath.Join(t.TempDir(), state.StorageKey+".json")
	}
	if opts.Now == nil {
		clock := &stepClock{current: testEpoch}
		opts.Now = clock.Now
	}
	store, err := Open(opts)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	return store
}

func mustAdd(t *testing.T, store *Store, text string) *Todo {
	t.Helper()
	created, err := store.Add(text)
	if err != nil {
		t.Fatalf("failed to add %q: %v", text, err)
	}
	return created
}

func mustAddSubtask(t *testing.T, store *Store, todoID, text string) *Subtask {
	t.Helper()
	created, err := store.AddSubtask(todoID, text)
	if err != nil {
		t.Fatalf("failed to add subtask %q: %v", text, err)
	}
	return created
}

func mustGet(t *testing.T, store *Store, id string) Todo {
	t.Helper()
	item, ok := store.Get(id)
	if !ok {
		t.Fatalf("todo %s not found", id)
	}
	return item
}
