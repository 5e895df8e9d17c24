package todo

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/amonks/focus/internal/state"
)

func TestStore_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo-storage.json")

	store := newTestStoreWithOptions(t, OpenOptions{Path: path})
	created := mustAdd(t, store, "persist me")
	sub := mustAddSubtask(t, store, created.ID, "child")
	if _, err := store.UpdateTimeSpent(created.ID, sub.ID, 12); err != nil {
		t.Fatalf("update time: %v", err)
	}
	if _, err := store.Toggle(created.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	reopened := newTestStoreWithOptions(t, OpenOptions{Path: path})
	item := mustGet(t, reopened, created.ID)
	if item.Text != "persist me" || !item.Completed || item.CompletedAt == nil {
		t.Fatalf("unexpected reloaded todo %+v", item)
	}
	if len(item.Subtasks) != 1 || item.Subtasks[0].TimeSpent != 12 {
		t.Fatalf("unexpected reloaded subtasks %+v", item.Subtasks)
	}
	if item.LastActiveAt == nil {
		t.Fatal("expected LastActiveAt to persist")
	}
}

func TestStore_WritesVersionedEnvelope(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo-storage.json")
	store := newTestStoreWithOptions(t, OpenOptions{Path: path})
	mustAdd(t, store, "envelope")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read storage: %v", err)
	}
	content := string(data)
	for _, want := range []string{`"version": 1`, `"todos"`, `"createdAt"`, `"timeSpent": 0`, `"subtasks": []`} {
		if !strings.Contains(content, want) {
			t.Errorf("expected storage to contain %s, got:\n%s", want, content)
		}
	}
}

func TestStore_LoadsBrowserRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo-storage.json")
	legacy := `{"state":{"todos":[{"id":"1717171717171","text":"From the browser","completed":true,` +
		`"subtasks":[{"id":"1717171717999","text":"Step","completed":false,"timeSpent":60}],` +
		`"createdAt":"2024-05-31T12:00:00.000Z","completedAt":"2024-06-01T08:30:00.000Z","timeSpent":300}]},"version":0}`
	if err := os.WriteFile(path, []byte(legacy), 0644); err != nil {
		t.Fatalf("write legacy: %v", err)
	}

	store := newTestStoreWithOptions(t, OpenOptions{Path: path})
	item := mustGet(t, store, "1717171717171")
	if item.Text != "From the browser" || item.TimeSpent != 300 || item.TotalTimeSpent() != 360 {
		t.Fatalf("unexpected legacy todo %+v", item)
	}
	want := time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)
	if item.CompletedAt == nil || !item.CompletedAt.Equal(want) {
		t.Fatalf("expected completedAt %s, got %v", want, item.CompletedAt)
	}

	if _, err := store.UpdateTimeSpent(item.ID, "1717171717999", 5); err != nil {
		t.Fatalf("accrue on legacy subtask: %v", err)
	}

	doc, err := state.NewStoreAt(path).Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if doc.Version != state.CurrentVersion {
		t.Fatalf("expected upgraded version, got %d", doc.Version)
	}
}

func TestStore_RekeysDuplicateBrowserIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo-storage.json")
	legacy := `{"state":{"todos":[` +
		`{"id":"1700000000000","text":"First","completed":false,"createdAt":"2023-11-14T22:13:20.000Z","timeSpent":0,` +
		`"subtasks":[{"id":"1700000000001","text":"a","completed":false,"timeSpent":10},` +
		`{"id":"1700000000001","text":"b","completed":false,"timeSpent":20}]},` +
		`{"id":"1700000000000","text":"Second","completed":false,"createdAt":"2023-11-14T22:13:20.000Z","timeSpent":0,"subtasks":[]}` +
		`]},"version":0}`
	if err := os.WriteFile(path, []byte(legacy), 0644); err != nil {
		t.Fatalf("write legacy: %v", err)
	}

	store := newTestStoreWithOptions(t, OpenOptions{Path: path})

	first := mustGet(t, store, "1700000000000")
	if first.Text != "First" {
		t.Fatalf("expected first todo to keep its id, got %+v", first)
	}
	if got := []string{first.Subtasks[0].ID, first.Subtasks[1].ID}; got[0] != "1700000000001" || got[1] != "1700000000001-2" {
		t.Fatalf("unexpected subtask ids %v", got)
	}
	if first.TotalTimeSpent() != 30 {
		t.Fatalf("expected both subtasks kept, got %d seconds", first.TotalTimeSpent())
	}
	if second := mustGet(t, store, "1700000000000-2"); second.Text != "Second" {
		t.Fatalf("expected second todo under suffixed id, got %+v", second)
	}

	if _, err := store.UpdateTimeSpent(first.ID, "1700000000001-2", 5); err != nil {
		t.Fatalf("accrue on rekeyed subtask: %v", err)
	}
	reopened, err := Open(OpenOptions{Path: path})
	if err != nil {
		t.Fatalf("reopen upgraded record: %v", err)
	}
	if got := mustGet(t, reopened, first.ID).Subtasks[1].TimeSpent; got != 25 {
		t.Fatalf("expected 25 seconds on rekeyed subtask, got %d", got)
	}
}

func TestStore_RejectsDuplicateIDsInCurrentRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo-storage.json")
	bad := `{"state":{"todos":[{"id":"x","text":"t","completed":false,"createdAt":"2024-05-31T12:00:00Z","timeSpent":0,` +
		`"subtasks":[{"id":"s","text":"a","completed":false,"timeSpent":0},{"id":"s","text":"b","completed":false,"timeSpent":0}]}]},"version":1}`
	if err := os.WriteFile(path, []byte(bad), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := Open(OpenOptions{Path: path})
	if err == nil || !strings.Contains(err.Error(), "duplicate subtask id s") {
		t.Fatalf("expected duplicate subtask error, got %v", err)
	}
}

func TestStore_RejectsInconsistentRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo-storage.json")
	bad := `{"state":{"todos":[{"id":"x","text":"t","completed":true,"subtasks":[],"createdAt":"2024-05-31T12:00:00Z","timeSpent":0}]},"version":1}`
	if err := os.WriteFile(path, []byte(bad), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := Open(OpenOptions{Path: path})
	if !errors.Is(err, ErrCompletedAtMismatch) {
		t.Fatalf("expected ErrCompletedAtMismatch, got %v", err)
	}
}

func TestStore_SubscribeReceivesEachCommit(t *testing.T) {
	store := newTestStore(t)

	var snapshots [][]Todo
	unsubscribe := store.Subscribe(func(todos []Todo) {
		snapshots = append(snapshots, todos)
	})

	created := mustAdd(t, store, "observed")
	if _, err := store.Toggle(created.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, err := store.Toggle("missing"); err == nil {
		t.Fatal("expected missing toggle to fail")
	}

	if len(snapshots) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(snapshots))
	}
	if len(snapshots[0]) != 1 || snapshots[0][0].Completed {
		t.Fatalf("unexpected first snapshot %+v", snapshots[0])
	}
	if !snapshots[1][0].Completed {
		t.Fatalf("unexpected second snapshot %+v", snapshots[1])
	}

	unsubscribe()
	unsubscribe()
	mustAdd(t, store, "unobserved")
	if len(snapshots) != 2 {
		t.Fatalf("expected no notification after unsubscribe, got %d", len(snapshots))
	}
}

func TestStore_SnapshotIsIsolated(t *testing.T) {
	store := newTestStore(t)
	created := mustAdd(t, store, "isolated")
	mustAddSubtask(t, store, created.ID, "child")

	snapshot := store.Snapshot()
	snapshot[0].Text = "mutated"
	snapshot[0].Subtasks[0].Text = "mutated"

	item := mustGet(t, store, created.ID)
	if item.Text != "isolated" || item.Subtasks[0].Text != "child" {
		t.Fatalf("expected store to be unaffected by snapshot mutation, got %+v", item)
	}
}

func TestStore_SnapshotTimestampsAreIsolated(t *testing.T) {
	store := newTestStore(t)
	created := mustAdd(t, store, "isolated")
	child := mustAddSubtask(t, store, created.ID, "child")
	if _, err := store.Toggle(created.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, err := store.ToggleSubtask(created.ID, child.ID); err != nil {
		t.Fatalf("toggle subtask: %v", err)
	}
	if _, err := store.UpdateTimeSpent(created.ID, "", 5); err != nil {
		t.Fatalf("accrue: %v", err)
	}

	before := mustGet(t, store, created.ID)
	completedAt := *before.CompletedAt
	lastActiveAt := *before.LastActiveAt
	subtaskCompletedAt := *before.Subtasks[0].CompletedAt

	var notified []Todo
	unsubscribe := store.Subscribe(func(todos []Todo) {
		notified = todos
	})
	defer unsubscribe()
	mustAdd(t, store, "trigger")

	epoch := time.Unix(0, 0).UTC()
	snapshot := store.Snapshot()
	*snapshot[0].CompletedAt = epoch
	*snapshot[0].LastActiveAt = epoch
	*snapshot[0].Subtasks[0].CompletedAt = epoch
	*notified[0].CompletedAt = epoch
	*notified[0].Subtasks[0].CompletedAt = epoch
	*before.CompletedAt = epoch

	item := mustGet(t, store, created.ID)
	if !item.CompletedAt.Equal(completedAt) {
		t.Fatalf("expected completedAt %s, got %s", completedAt, item.CompletedAt)
	}
	if !item.LastActiveAt.Equal(lastActiveAt) {
		t.Fatalf("expected lastActiveAt %s, got %s", lastActiveAt, item.LastActiveAt)
	}
	if !item.Subtasks[0].CompletedAt.Equal(subtaskCompletedAt) {
		t.Fatalf("expected subtask completedAt %s, got %s", subtaskCompletedAt, item.Subtasks[0].CompletedAt)
	}
}

type failingBackend struct {
	inner *state.Store
	fail  bool
}

func (b *failingBackend) Load() (*state.Document, error) {
	return b.inner.Load()
}

func (b *failingBackend) Update(fn func(doc *state.Document) error) error {
	if b.fail {
		return errors.New("disk full")
	}
	return b.inner.Update(fn)
}

func TestStore_FailedPersistIsNotPublished(t *testing.T) {
	backend := &failingBackend{inner: state.NewStore(t.TempDir())}
	store := newTestStoreWithOptions(t, OpenOptions{Backend: backend})
	created := mustAdd(t, store, "stable")

	notified := 0
	store.Subscribe(func([]Todo) { notified++ })

	backend.fail = true
	if _, err := store.Toggle(created.ID); err == nil {
		t.Fatal("expected toggle to fail")
	}

	if notified != 0 {
		t.Fatalf("expected no notification, got %d", notified)
	}
	if mustGet(t, store, created.ID).Completed {
		t.Fatal("expected in-memory state to stay unchanged")
	}
}

func TestStore_MutationsSeeOtherWriters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo-storage.json")
	first := newTestStoreWithOptions(t, OpenOptions{Path: path})
	second := newTestStoreWithOptions(t, OpenOptions{Path: path})

	a := mustAdd(t, first, "from first")
	b := mustAdd(t, second, "from second")

	todos := second.Snapshot()
	if len(todos) != 2 || todos[0].ID != a.ID || todos[1].ID != b.ID {
		t.Fatalf("expected both writers' todos, got %+v", todos)
	}

	if err := first.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(first.Snapshot()) != 2 {
		t.Fatalf("expected reload to pick up second writer, got %+v", first.Snapshot())
	}
}

func TestStore_ConcurrentAccrual(t *testing.T) {
	store := newTestStoreWithOptions(t, OpenOptions{Now: time.Now})
	created := mustAdd(t, store, "busy")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := store.Accrue(created.ID, "", 3); err != nil {
				t.Errorf("accrue: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := mustGet(t, store, created.ID).TimeSpent; got != 60 {
		t.Fatalf("expected 60 seconds, got %d", got)
	}
}

func TestStore_Resolve(t *testing.T) {
	store := newTestStore(t)
	created := mustAdd(t, store, "resolve me")
	sub := mustAddSubtask(t, store, created.ID, "child")

	resolved, err := store.Resolve(created.ID[:5])
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved != created.ID {
		t.Fatalf("expected %s, got %s", created.ID, resolved)
	}

	if _, err := store.Resolve("zzzzzzzzz"); !errors.Is(err, ErrTodoNotFound) {
		t.Fatalf("expected ErrTodoNotFound, got %v", err)
	}

	subID, err := store.ResolveSubtask(created.ID, strings.ToUpper(sub.ID[:4]))
	if err != nil {
		t.Fatalf("resolve subtask: %v", err)
	}
	if subID != sub.ID {
		t.Fatalf("expected %s, got %s", sub.ID, subID)
	}
	if _, err := store.ResolveSubtask(created.ID, "zzzzzzzzz"); !errors.Is(err, ErrSubtaskNotFound) {
		t.Fatalf("expected ErrSubtaskNotFound, got %v", err)
	}
}
