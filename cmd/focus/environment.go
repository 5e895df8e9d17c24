package main

import (
	"time"

	"github.com/amonks/focus/internal/config"
	"github.com/amonks/focus/internal/paths"
	"github.com/amonks/focus/todo"
)

// environment is what every command needs: merged config and an open store.
type environment struct {
	dir    string
	config *config.Config
	store  *todo.Store
}

// nowFunc is swapped in tests.
var nowFunc = time.Now

func openEnvironment() (*environment, error) {
	dir, err := paths.WorkingDir()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	store, err := todo.Open(todo.OpenOptions{
		Path:           cfg.StorePath(dir),
		Now:            nowFunc,
		FallbackToTodo: cfg.Timer.FallbackToTodo,
	})
	if err != nil {
		return nil, err
	}
	return &environment{dir: dir, config: cfg, store: store}, nil
}

// resolveTodo resolves a todo ID prefix.
func (env *environment) resolveTodo(prefix string) (todo.Todo, error) {
	id, err := env.store.Resolve(prefix)
	if err != nil {
		return todo.Todo{}, err
	}
	item, ok := env.store.Get(id)
	if !ok {
		return todo.Todo{}, todo.ErrTodoNotFound
	}
	return item, nil
}

// resolveSubtask resolves a subtask ID prefix under todoID. An empty prefix
// resolves to the todo itself.
func (env *environment) resolveSubtask(todoID, prefix string) (string, error) {
	if prefix == "" {
		return "", nil
	}
	return env.store.ResolveSubtask(todoID, prefix)
}
