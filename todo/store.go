package todo

import (
	"fmt"
	"sync"
	"time"

	"github.com/amonks/focus/internal/paths"
	"github.com/amonks/focus/internal/state"
)

// Backend is durable storage for the todo collection.
type Backend interface {
	// Load reads the stored envelope.
	Load() (*state.Document, error)

	// Update reads, modifies, and writes the envelope atomically.
	Update(fn func(doc *state.Document) error) error
}

// Store owns the todo collection.
type Store struct {
	backend        Backend
	now            func() time.Time
	fallbackToTodo bool

	mu    sync.Mutex
	todos []Todo

	// notifyMu is taken before mu is released so subscribers observe
	// commits in order.
	notifyMu    sync.Mutex
	subscribers map[int]func([]Todo)
	nextSubID   int
}

// OpenOptions configures how the store is opened.
type OpenOptions struct {
	// Backend overrides the storage backend. When nil, a file store is used.
	Backend Backend

	// Path is the storage file. When empty, the default state directory is
	// used with the fixed storage key.
	Path string

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// FallbackToTodo accrues time to the todo itself when an accrual names
	// a subtask that no longer exists. When false, those seconds are dropped.
	FallbackToTodo bool
}

type persistedState struct {
	Todos []Todo `json:"todos"`
}

// Open loads the todo collection from storage.
func Open(opts OpenOptions) (*Store, error) {
	backend := opts.Backend
	if backend == nil {
		if opts.Path != "" {
			backend = state.NewStoreAt(opts.Path)
		} else {
			dir, err := paths.DefaultStateDir()
			if err != nil {
				return nil, err
			}
			backend = state.NewStore(dir)
		}
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	s := &Store{
		backend:        backend,
		now:            now,
		fallbackToTodo: opts.FallbackToTodo,
		subscribers:    make(map[int]func([]Todo)),
	}

	todos, err := s.load()
	if err != nil {
		return nil, err
	}
	s.todos = todos
	return s, nil
}

// Snapshot returns a copy of the current collection in insertion order.
func (s *Store) Snapshot() []Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTodos(s.todos)
}

// Get returns a copy of the todo with the given ID.
func (s *Store) Get(id string) (Todo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.todos {
		if item.ID == id {
			return item.clone(), true
		}
	}
	return Todo{}, false
}

// Subscribe registers fn to receive a fresh snapshot after every committed
// mutation. fn runs on the mutating goroutine and must not call mutating
// store methods itself. The returned function unsubscribes.
func (s *Store) Subscribe(fn func([]Todo)) func() {
	s.notifyMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.notifyMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.notifyMu.Lock()
			delete(s.subscribers, id)
			s.notifyMu.Unlock()
		})
	}
}

// Reload rereads storage, picking up changes made by other processes, and
// notifies subscribers.
func (s *Store) Reload() error {
	s.mu.Lock()
	todos, err := s.load()
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.todos = todos
	s.publishLocked()
	return nil
}

func (s *Store) load() ([]Todo, error) {
	doc, err := s.backend.Load()
	if err != nil {
		return nil, fmt.Errorf("load todos: %w", err)
	}
	return decodeTodos(doc)
}

// mutate applies fn to the freshly loaded collection and commits the result.
// When fn returns an error, nothing is written or published.
func (s *Store) mutate(fn func(todos []Todo, now time.Time) ([]Todo, error)) error {
	s.mu.Lock()

	now := s.now()
	var next []Todo
	err := s.backend.Update(func(doc *state.Document) error {
		current, err := decodeTodos(doc)
		if err != nil {
			return err
		}
		next, err = fn(current, now)
		if err != nil {
			return err
		}
		return encodeTodos(doc, next)
	})
	if err != nil {
		s.mu.Unlock()
		return err
	}

	s.todos = next
	s.publishLocked()
	return nil
}

// publishLocked releases mu and notifies subscribers in commit order.
func (s *Store) publishLocked() {
	s.notifyMu.Lock()
	snapshot := s.todos
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	for _, fn := range s.subscribers {
		fn(cloneTodos(snapshot))
	}
}

func decodeTodos(doc *state.Document) ([]Todo, error) {
	var payload persistedState
	if err := doc.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode todos: %w", err)
	}
	todos := payload.Todos
	if todos == nil {
		todos = []Todo{}
	}
	for i := range todos {
		if todos[i].Subtasks == nil {
			todos[i].Subtasks = []Subtask{}
		}
	}
	if doc != nil && doc.Version < state.CurrentVersion {
		rekeyLegacyIDs(todos)
	}
	for i := range todos {
		if err := ValidateTodo(&todos[i]); err != nil {
			return nil, fmt.Errorf("invalid stored todo: %w", err)
		}
	}
	return todos, nil
}

// rekeyLegacyIDs gives colliding IDs from a browser record a numeric suffix.
// The browser build keyed items by millisecond timestamp, so two items
// created in the same millisecond share an ID. The first keeps it.
func rekeyLegacyIDs(todos []Todo) {
	todoIDs := make(map[string]bool, len(todos))
	for i := range todos {
		todos[i].ID = uniqueLegacyID(todos[i].ID, todoIDs)

		subtaskIDs := make(map[string]bool, len(todos[i].Subtasks))
		for j := range todos[i].Subtasks {
			todos[i].Subtasks[j].ID = uniqueLegacyID(todos[i].Subtasks[j].ID, subtaskIDs)
		}
	}
}

func uniqueLegacyID(id string, seen map[string]bool) string {
	candidate := id
	for n := 2; seen[candidate]; n++ {
		candidate = fmt.Sprintf("%s-%d", id, n)
	}
	seen[candidate] = true
	return candidate
}

func encodeTodos(doc *state.Document, todos []Todo) error {
	if todos == nil {
		todos = []Todo{}
	}
	if err := doc.Encode(persistedState{Todos: todos}); err != nil {
		return fmt.Errorf("encode todos: %w", err)
	}
	return nil
}
