package main

import (
	"fmt"
	"strings"

	"github.com/amonks/focus/internal/ui"
	"github.com/amonks/focus/internal/validation"
	"github.com/amonks/focus/todo"
	"github.com/spf13/cobra"
)

var todoCmd = &cobra.Command{
	Use:   "todo",
	Short: "Manage todos",
}

// todo add
var todoAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a todo",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTodoAdd,
}

// todo list
var todoListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List todos",
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE:    runTodoList,
}

var (
	todoListStatus string
	todoListSince  string
	todoListJSON   bool
)

// todo show
var todoShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a todo with its subtasks",
	Args:  cobra.ExactArgs(1),
	RunE:  runTodoShow,
}

var todoShowJSON bool

// todo toggle
var todoToggleCmd = &cobra.Command{
	Use:     "toggle <id>...",
	Short:   "Mark todos done, or reopen done todos",
	Aliases: []string{"done"},
	Args:    cobra.MinimumNArgs(1),
	RunE:    runTodoToggle,
}

// todo rename
var todoRenameCmd = &cobra.Command{
	Use:   "rename <id> <text>",
	Short: "Replace a todo's text",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runTodoRename,
}

// todo rm
var todoDeleteCmd = &cobra.Command{
	Use:     "rm <id>...",
	Short:   "Delete todos and their subtasks",
	Aliases: []string{"delete"},
	Args:    cobra.MinimumNArgs(1),
	RunE:    runTodoDelete,
}

func init() {
	rootCmd.AddCommand(todoCmd)
	todoCmd.AddCommand(todoAddCmd, todoListCmd, todoShowCmd, todoToggleCmd, todoRenameCmd, todoDeleteCmd)

	todoListCmd.Flags().StringVar(&todoListStatus, "status", string(todo.StatusAll), "Filter by status ("+validation.FormatValidValues(todo.ValidStatusFilters())+")")
	todoListCmd.Flags().StringVar(&todoListSince, "since", string(todo.RangeAll), "Filter by activity range ("+validation.FormatValidValues(todo.ValidRangeFilters())+")")
	todoListCmd.Flags().BoolVar(&todoListJSON, "json", false, "Output as JSON")

	todoShowCmd.Flags().BoolVar(&todoShowJSON, "json", false, "Output as JSON")
}

func runTodoAdd(cmd *cobra.Command, args []string) error {
	text, err := textArg(args)
	if err != nil {
		return err
	}
	env, err := openEnvironment()
	if err != nil {
		return err
	}

	created, err := env.store.Add(text)
	if err != nil {
		return err
	}

	highlight := todoHighlighter(env.store.Snapshot())
	fmt.Fprintf(cmd.OutOrStdout(), "Created todo %s: %s\n", highlight(created.ID), created.Text)
	return nil
}

func runTodoList(cmd *cobra.Command, args []string) error {
	status, err := todo.ParseStatusFilter(todoListStatus)
	if err != nil {
		return err
	}
	since, err := todo.ParseRangeFilter(todoListSince)
	if err != nil {
		return err
	}
	env, err := openEnvironment()
	if err != nil {
		return err
	}

	all := env.store.Snapshot()
	now := nowFunc()
	todos := todo.Filter{Status: status, Range: since}.Apply(all, now)

	if todoListJSON {
		return encodeJSON(cmd.OutOrStdout(), todos)
	}

	// Prefix lengths come from the full collection so highlighted prefixes
	// resolve even when the listing is filtered.
	printTodoTable(cmd.OutOrStdout(), todos, todoIDPrefixLengths(all), now)
	return nil
}

func runTodoShow(cmd *cobra.Command, args []string) error {
	env, err := openEnvironment()
	if err != nil {
		return err
	}
	item, err := env.resolveTodo(args[0])
	if err != nil {
		return err
	}

	if todoShowJSON {
		return encodeJSON(cmd.OutOrStdout(), item)
	}

	printTodoDetail(cmd.OutOrStdout(), item, todoHighlighter(env.store.Snapshot()), nowFunc())
	return nil
}

func runTodoToggle(cmd *cobra.Command, args []string) error {
	env, err := openEnvironment()
	if err != nil {
		return err
	}
	highlight := todoHighlighter(env.store.Snapshot())

	for _, arg := range args {
		id, err := env.store.Resolve(arg)
		if err != nil {
			return err
		}
		item, err := env.store.Toggle(id)
		if err != nil {
			return err
		}
		verb := "Reopened"
		if item.Completed {
			verb = "Completed"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", verb, highlight(item.ID), item.Text)
	}
	return nil
}

func runTodoRename(cmd *cobra.Command, args []string) error {
	text, err := textArg(args[1:])
	if err != nil {
		return err
	}
	env, err := openEnvironment()
	if err != nil {
		return err
	}

	id, err := env.store.Resolve(args[0])
	if err != nil {
		return err
	}
	item, err := env.store.UpdateText(id, text)
	if err != nil {
		return err
	}

	highlight := todoHighlighter(env.store.Snapshot())
	fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %s\n", highlight(item.ID), item.Text)
	return nil
}

func runTodoDelete(cmd *cobra.Command, args []string) error {
	env, err := openEnvironment()
	if err != nil {
		return err
	}
	highlight := todoHighlighter(env.store.Snapshot())

	for _, arg := range args {
		item, err := env.resolveTodo(arg)
		if err != nil {
			return err
		}
		if err := env.store.Delete(item.ID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s: %s\n", highlight(item.ID), item.Text)
	}
	return nil
}

// textArg joins positional words into a label and rejects blank or
// oversized text.
func textArg(args []string) (string, error) {
	text := strings.TrimSpace(strings.Join(args, " "))
	if err := todo.ValidateText(text); err != nil {
		return "", err
	}
	return text, nil
}

func todoHighlighter(todos []todo.Todo) func(string) string {
	return logHighlighter(todoIDPrefixLengths(todos), ui.HighlightID)
}

func logHighlighter(prefixLengths map[string]int, highlight func(string, int) string) func(string) string {
	return func(id string) string {
		if id == "" {
			return id
		}
		return highlight(id, ui.PrefixLength(prefixLengths, id))
	}
}
