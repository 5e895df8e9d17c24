package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var subtaskCmd = &cobra.Command{
	Use:   "subtask",
	Short: "Manage a todo's subtasks",
}

var subtaskAddCmd = &cobra.Command{
	Use:   "add <todo-id> <text>",
	Short: "Add a subtask to a todo",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runSubtaskAdd,
}

var subtaskToggleCmd = &cobra.Command{
	Use:     "toggle <todo-id> <subtask-id>",
	Short:   "Mark a subtask done, or reopen it",
	Aliases: []string{"done"},
	Args:    cobra.ExactArgs(2),
	RunE:    runSubtaskToggle,
}

var subtaskDeleteCmd = &cobra.Command{
	Use:     "rm <todo-id> <subtask-id>",
	Short:   "Delete a subtask",
	Aliases: []string{"delete"},
	Args:    cobra.ExactArgs(2),
	RunE:    runSubtaskDelete,
}

func init() {
	rootCmd.AddCommand(subtaskCmd)
	subtaskCmd.AddCommand(subtaskAddCmd, subtaskToggleCmd, subtaskDeleteCmd)
}

func runSubtaskAdd(cmd *cobra.Command, args []string) error {
	text, err := textArg(args[1:])
	if err != nil {
		return err
	}
	env, err := openEnvironment()
	if err != nil {
		return err
	}
	todoID, err := env.store.Resolve(args[0])
	if err != nil {
		return err
	}

	created, err := env.store.AddSubtask(todoID, text)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created subtask %s: %s\n", created.ID, created.Text)
	return nil
}

func runSubtaskToggle(cmd *cobra.Command, args []string) error {
	env, err := openEnvironment()
	if err != nil {
		return err
	}
	todoID, err := env.store.Resolve(args[0])
	if err != nil {
		return err
	}
	subtaskID, err := env.store.ResolveSubtask(todoID, args[1])
	if err != nil {
		return err
	}

	subtask, err := env.store.ToggleSubtask(todoID, subtaskID)
	if err != nil {
		return err
	}
	verb := "Reopened"
	if subtask.Completed {
		verb = "Completed"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s subtask %s: %s\n", verb, subtask.ID, subtask.Text)
	return nil
}

func runSubtaskDelete(cmd *cobra.Command, args []string) error {
	env, err := openEnvironment()
	if err != nil {
		return err
	}
	item, err := env.resolveTodo(args[0])
	if err != nil {
		return err
	}
	subtaskID, err := env.store.ResolveSubtask(item.ID, args[1])
	if err != nil {
		return err
	}
	subtask, _ := item.Subtask(subtaskID)

	if err := env.store.DeleteSubtask(item.ID, subtaskID); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted subtask %s: %s\n", subtask.ID, subtask.Text)
	return nil
}
