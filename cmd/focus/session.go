package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amonks/focus/focus"
	"github.com/amonks/focus/internal/config"
	"github.com/amonks/focus/internal/focustui"
	"github.com/amonks/focus/internal/ui"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session <todo-id>",
	Short: "Run a focus session on a todo",
	Long: `Run a focus session on a todo.

In a terminal this opens the interactive session screen. With --headless,
or when stdin or stdout is not a terminal, the countdown starts at once and
runs until it expires or the process is interrupted. Elapsed time is
recorded in both cases.`,
	Args: cobra.ExactArgs(1),
	RunE: runSession,
}

var (
	sessionSubtask      string
	sessionMinutes      int
	sessionHeadless     bool
	sessionTickInterval time.Duration
)

func init() {
	rootCmd.AddCommand(sessionCmd)
	addSessionFlagAliases(sessionCmd)
	sessionCmd.Flags().StringVarP(&sessionSubtask, "subtask", "s", "", "Subtask to credit")
	sessionCmd.Flags().IntVarP(&sessionMinutes, "minutes", "m", focus.DefaultMinutes, "Session length in minutes (1-120)")
	sessionCmd.Flags().BoolVar(&sessionHeadless, "headless", false, "Run without the interactive screen")
	sessionCmd.Flags().DurationVar(&sessionTickInterval, "tick-interval", 0, "Wall-clock length of one session second")
	_ = sessionCmd.Flags().MarkHidden("tick-interval")
}

func runSession(cmd *cobra.Command, args []string) error {
	env, err := openEnvironment()
	if err != nil {
		return err
	}
	item, err := env.resolveTodo(args[0])
	if err != nil {
		return err
	}
	subtaskID, err := env.resolveSubtask(item.ID, sessionSubtask)
	if err != nil {
		return err
	}

	headless := sessionHeadless || !ui.IsTerminal(os.Stdin) || !ui.IsTerminal(os.Stdout)
	var logger focus.Logger
	if headless {
		logger = focus.NewConsoleLogger(cmd.OutOrStdout())
	}

	timer, err := focus.New(focus.Options{
		TodoID:               item.ID,
		SubtaskID:            subtaskID,
		DurationMinutes:      sessionLength(cmd, env.config),
		Accruer:              env.store,
		Scheduler:            focus.TickerScheduler{Interval: sessionTickInterval},
		Logger:               logger,
		BankOnDurationChange: env.config.Timer.BankOnDurationChange,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hooks := newExpireHooks(ctx, env, item.ID, headless, cmd.OutOrStdout(), cmd.ErrOrStderr())
	unsubscribe := timer.Subscribe(hooks.observe)
	defer hooks.wait()
	defer unsubscribe()

	if headless {
		err = runHeadlessSession(ctx, timer, hooks.expired)
	} else {
		err = focustui.Run(ctx, focustui.Options{
			Timer:   timer,
			Store:   env.store,
			TodoID:  item.ID,
			Presets: env.config.Timer.Presets,
		})
	}

	if closeErr := timer.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}

	if updated, ok := env.store.Get(item.ID); ok {
		fmt.Fprintf(cmd.OutOrStdout(), "Total time on %s: %s\n", updated.Text, ui.FormatTotal(updated.TotalTimeSpent()))
	}
	return nil
}

// sessionLength prefers --minutes, then the configured default.
func sessionLength(cmd *cobra.Command, cfg *config.Config) int {
	if cmd.Flags().Changed("minutes") {
		return focus.ClampMinutes(sessionMinutes)
	}
	if cfg != nil && cfg.Timer.DefaultMinutes != 0 {
		return focus.ClampMinutes(cfg.Timer.DefaultMinutes)
	}
	return focus.DefaultMinutes
}

func runHeadlessSession(ctx context.Context, timer *focus.Timer, expired <-chan struct{}) error {
	if err := timer.Start(); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
	case <-expired:
	}
	return nil
}

// expireHooks runs the on-expire script after each natural expiry.
type expireHooks struct {
	ctx      context.Context
	env      *environment
	todoID   string
	headless bool
	stdout   io.Writer
	stderr   io.Writer

	expired chan struct{}
	done    chan struct{}
	pending chan focus.Status
}

func newExpireHooks(ctx context.Context, env *environment, todoID string, headless bool, stdout, stderr io.Writer) *expireHooks {
	hooks := &expireHooks{
		ctx:      ctx,
		env:      env,
		todoID:   todoID,
		headless: headless,
		stdout:   stdout,
		stderr:   stderr,
		expired:  make(chan struct{}, 1),
		done:     make(chan struct{}),
		pending:  make(chan focus.Status, 4),
	}
	go hooks.run()
	return hooks
}

func (hooks *expireHooks) observe(event focus.Event) {
	if event.Kind == focus.EventClosed {
		close(hooks.pending)
		return
	}
	if event.Kind != focus.EventExpired {
		return
	}
	select {
	case hooks.pending <- event.Status:
	default:
	}
}

func (hooks *expireHooks) run() {
	defer close(hooks.done)
	for status := range hooks.pending {
		hooks.runScript(status)
		select {
		case hooks.expired <- struct{}{}:
		default:
		}
	}
}

func (hooks *expireHooks) runScript(status focus.Status) {
	script := hooks.env.config.Timer.OnExpire
	if script == "" {
		return
	}
	opts := config.ScriptOptions{
		Dir:    hooks.env.dir,
		Script: script,
		Env: []string{
			"FOCUS_TODO_ID=" + status.TodoID,
			"FOCUS_SUBTASK_ID=" + status.SubtaskID,
			fmt.Sprintf("FOCUS_MINUTES=%d", status.DurationMinutes),
		},
	}
	if hooks.headless {
		opts.Stdout = hooks.stdout
		opts.Stderr = hooks.stderr
	}
	if err := config.RunScript(hooks.ctx, opts); err != nil && hooks.headless {
		fmt.Fprintf(hooks.stderr, "on-expire: %v\n", err)
	}
}

// wait blocks until queued hooks finish. It is only called after the
// timer is closed.
func (hooks *expireHooks) wait() {
	<-hooks.done
}
