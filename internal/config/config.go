// Package config handles loading focus.toml configuration files.
package config

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/amonks/focus/internal/paths"
)

// ProjectFile is the name of the per-directory config file.
const ProjectFile = "focus.toml"

// Config represents the focus.toml configuration file.
type Config struct {
	Timer Timer `toml:"timer"`
	Store Store `toml:"store"`
}

// Timer contains focus-session configuration.
type Timer struct {
	// DefaultMinutes is the session length used when none is given.
	DefaultMinutes int `toml:"default-minutes"`

	// Presets are the quick-pick session lengths offered by the TUI.
	Presets []int `toml:"presets"`

	// FallbackToTodo accrues time to the todo when the targeted subtask no
	// longer exists.
	FallbackToTodo bool `toml:"fallback-to-todo"`

	// BankOnDurationChange reports the running interval when the session
	// length changes instead of discarding it.
	BankOnDurationChange bool `toml:"bank-on-duration-change"`

	// OnExpire is a script to run after a session expires naturally.
	// Can include a shebang line; defaults to bash if not specified.
	OnExpire string `toml:"on-expire"`
}

// Store contains persistence configuration.
type Store struct {
	// Path overrides the todo storage file.
	Path string `toml:"path"`
}

// Load loads configuration from dir and the global config file.
// Returns an empty config if no config files exist.
func Load(dir string) (*Config, error) {
	globalPath, err := globalConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(dir, ProjectFile))
	if err != nil {
		return nil, err
	}

	merged := mergeConfigs(globalCfg, projectCfg, globalMeta, projectMeta)
	return merged, nil
}

func globalConfigPath() (string, error) {
	configDir, err := paths.DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: unknown key %s", path, undecoded[0])
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{}
	merged.Timer.DefaultMinutes = mergeValue(projectMeta.IsDefined("timer", "default-minutes"), projectCfg.Timer.DefaultMinutes, globalCfg.Timer.DefaultMinutes)
	merged.Timer.FallbackToTodo = mergeValue(projectMeta.IsDefined("timer", "fallback-to-todo"), projectCfg.Timer.FallbackToTodo, globalCfg.Timer.FallbackToTodo)
	merged.Timer.BankOnDurationChange = mergeValue(projectMeta.IsDefined("timer", "bank-on-duration-change"), projectCfg.Timer.BankOnDurationChange, globalCfg.Timer.BankOnDurationChange)
	merged.Timer.OnExpire = mergeString(projectMeta.IsDefined("timer", "on-expire"), projectCfg.Timer.OnExpire, globalCfg.Timer.OnExpire)
	merged.Store.Path = mergeString(projectMeta.IsDefined("store", "path"), projectCfg.Store.Path, globalCfg.Store.Path)
	if projectMeta.IsDefined("timer", "presets") {
		merged.Timer.Presets = append([]int(nil), projectCfg.Timer.Presets...)
	} else if globalMeta.IsDefined("timer", "presets") {
		merged.Timer.Presets = append([]int(nil), globalCfg.Timer.Presets...)
	}

	return &merged
}

func mergeValue[T any](projectDefined bool, projectValue, globalValue T) T {
	if projectDefined {
		return projectValue
	}
	return globalValue
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	return strings.TrimSpace(mergeValue(projectDefined, projectValue, globalValue))
}

// StorePath returns the configured storage file, or "" to use the
// default. Relative paths resolve against dir.
func (cfg *Config) StorePath(dir string) string {
	if cfg == nil || cfg.Store.Path == "" {
		return ""
	}
	path := cfg.Store.Path
	if strings.HasPrefix(path, "~/") {
		if home, err := paths.HomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	return path
}

// ScriptOptions configures RunScript.
type ScriptOptions struct {
	Dir    string
	Script string
	// Env is appended to the current environment.
	Env    []string
	Stdout io.Writer
	Stderr io.Writer
}

// RunScript executes a script in opts.Dir.
// If the script starts with a shebang (#!), that interpreter is used.
// Otherwise, the script is run with /bin/bash.
func RunScript(ctx context.Context, opts ScriptOptions) error {
	script := strings.TrimSpace(opts.Script)
	if script == "" {
		return nil
	}

	interpreter := "/bin/bash"
	scriptBody := script
	if strings.HasPrefix(script, "#!") {
		shebang, body, _ := strings.Cut(script, "\n")
		interpreter = strings.TrimSpace(strings.TrimPrefix(shebang, "#!"))
		scriptBody = body
	}

	// "/usr/bin/env python3" or "/bin/bash -e"
	parts := strings.Fields(interpreter)
	if len(parts) == 0 {
		return fmt.Errorf("empty interpreter in shebang")
	}

	stdout := opts.Stdout
	if stdout == nil {
		stdout = io.Discard
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = io.Discard
	}

	cmd := exec.CommandContext(ctx, parts[0], parts[1:]...)
	cmd.Dir = opts.Dir
	cmd.Env = append(os.Environ(), opts.Env...)
	cmd.Stdin = strings.NewReader(scriptBody)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run script: %w", err)
	}
	return nil
}
