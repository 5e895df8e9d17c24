package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/amonks/focus/todo"
	"github.com/rogpeppe/go-internal/testscript"
)

var (
	buildOnce sync.Once
	focusPath string
	buildErr  error
)

// BuildFocus builds the focus binary once and returns its path.
func BuildFocus(t testing.TB) string {
	t.Helper()

	buildOnce.Do(func() {
		moduleRoot, err := findModuleRoot()
		if err != nil {
			buildErr = err
			return
		}

		binDir, err := os.MkdirTemp("", "focus-bin-")
		if err != nil {
			buildErr = err
			return
		}

		focusPath = filepath.Join(binDir, "focus")
		cmd := exec.Command("go", "build", "-o", focusPath, "./cmd/focus")
		cmd.Dir = moduleRoot
		output, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("build focus: %w: %s", err, strings.TrimSpace(string(output)))
		}
	})

	if buildErr != nil {
		t.Fatalf("%v", buildErr)
	}

	return focusPath
}

// SetupScriptEnv configures common environment variables for testscript.
func SetupScriptEnv(t testing.TB, env *testscript.Env) error {
	t.Helper()

	env.Setenv("FOCUS", BuildFocus(t))

	homeDir := filepath.Join(env.WorkDir, "home")
	if err := EnsureHomeDirs(homeDir); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)
	env.Setenv("FOCUS_STATE_DIR", filepath.Join(homeDir, ".local", "state", "focus"))
	env.Setenv("NO_COLOR", "1")
	return nil
}

// CmdEnvSet stores the trimmed contents of a file in an env var.
func CmdEnvSet(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("envset does not support negation")
	}
	if len(args) != 2 {
		ts.Fatalf("usage: envset VAR FILE")
	}

	value := strings.TrimSpace(ts.ReadFile(args[1]))
	ts.Setenv(args[0], value)
}

// CmdTodoID finds a todo by text in a JSON todo list and stores its ID in
// an env var.
func CmdTodoID(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("todoid does not support negation")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: todoid FILE TEXT VAR")
	}

	var items []todo.Todo
	data := ts.ReadFile(args[0])
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		ts.Fatalf("parse todo list: %v", err)
	}

	text := args[1]
	for _, item := range items {
		if item.Text == text {
			ts.Setenv(args[2], item.ID)
			return
		}
	}

	ts.Fatalf("todo with text %q not found", text)
}

// CmdSubtaskID finds a subtask by text in a JSON todo document and stores
// its ID in an env var.
func CmdSubtaskID(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("subtaskid does not support negation")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: subtaskid FILE TEXT VAR")
	}

	var item todo.Todo
	data := ts.ReadFile(args[0])
	if err := json.Unmarshal([]byte(data), &item); err != nil {
		ts.Fatalf("parse todo: %v", err)
	}

	text := args[1]
	for _, subtask := range item.Subtasks {
		if subtask.Text == text {
			ts.Setenv(args[2], subtask.ID)
			return
		}
	}

	ts.Fatalf("subtask with text %q not found", text)
}

func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find module root (go.mod)")
		}
		dir = parent
	}
}
