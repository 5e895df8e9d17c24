package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/amonks/focus/internal/ui"
	"github.com/spf13/cobra"
)

var trackCmd = &cobra.Command{
	Use:   "track <todo-id> <duration>",
	Short: "Record focus time by hand",
	Long: `Record focus time by hand.

The duration is either a number of seconds ("90") or a Go duration
("25m", "1h30m"). Time goes to the todo unless --subtask names one of
its subtasks.`,
	Args: cobra.ExactArgs(2),
	RunE: runTrack,
}

var trackSubtask string

func init() {
	rootCmd.AddCommand(trackCmd)
	trackCmd.Flags().StringVarP(&trackSubtask, "subtask", "s", "", "Subtask to credit")
}

func runTrack(cmd *cobra.Command, args []string) error {
	seconds, err := parseTrackedSeconds(args[1])
	if err != nil {
		return err
	}
	env, err := openEnvironment()
	if err != nil {
		return err
	}
	item, err := env.resolveTodo(args[0])
	if err != nil {
		return err
	}
	subtaskID, err := env.resolveSubtask(item.ID, trackSubtask)
	if err != nil {
		return err
	}

	updated, err := env.store.UpdateTimeSpent(item.ID, subtaskID, seconds)
	if err != nil {
		return err
	}

	target := updated.Text
	if subtask, ok := updated.Subtask(subtaskID); ok && subtaskID != "" {
		target = subtask.Text
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Tracked %s on %s (total %s)\n",
		ui.FormatTotal(seconds), target, ui.FormatTotal(updated.TotalTimeSpent()))
	return nil
}

func parseTrackedSeconds(value string) (int, error) {
	value = strings.TrimSpace(value)
	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds < 0 {
			return 0, fmt.Errorf("duration must not be negative: %s", value)
		}
		return seconds, nil
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: use seconds or a value like 25m", value)
	}
	if duration < 0 {
		return 0, fmt.Errorf("duration must not be negative: %s", value)
	}
	return int(duration / time.Second), nil
}
