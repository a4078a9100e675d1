package cmd

import (
	"context"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wexinc/todos/internal/app"
	"github.com/wexinc/todos/internal/errors"
	"github.com/wexinc/todos/internal/todo"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the todo list",
	Long: `Print the todo list with the number of items left.

Examples:
  todos list                      # All todos
  todos list --filter completed   # Only completed todos
  todos list -o json              # Structured output`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a todo",
	Long: `Add a todo. All arguments are joined into the title.

Examples:
  todos add Buy milk
  todos add "Call the plumber"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var toggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Mark a todo completed or not completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runToggle,
}

var renameCmd = &cobra.Command{
	Use:   "rename <id> <title>",
	Short: "Change a todo's title",
	Long: `Change a todo's title. An empty title deletes the todo.

Examples:
  todos rename 3 "Buy oat milk"
  todos rename 3 ""             # Deletes todo 3`,
	Args: cobra.MinimumNArgs(2),
	RunE: runRename,
}

var rmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a todo",
	Args:    cobra.ExactArgs(1),
	RunE:    runRemove,
}

var toggleAllCmd = &cobra.Command{
	Use:   "toggle-all",
	Short: "Complete every todo, or reopen them all if all are completed",
	Args:  cobra.NoArgs,
	RunE:  runToggleAll,
}

var clearCompletedCmd = &cobra.Command{
	Use:   "clear-completed",
	Short: "Delete every completed todo",
	Args:  cobra.NoArgs,
	RunE:  runClearCompleted,
}

func init() {
	listCmd.Flags().StringP("filter", "f", "", "Show all, active or completed todos")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(toggleAllCmd)
	rootCmd.AddCommand(clearCompletedCmd)
}

// operation acts on a loaded session and returns the todo it acted on, if any.
type operation func(ctx context.Context, s *app.Session) (*todo.Task, error)

// runHeadless loads the list, runs op and prints the resulting state.
func runHeadless(cmd *cobra.Command, op operation) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx, cancel := signalContext(cmd)
	defer cancel()

	verbose, _ := cmd.Flags().GetBool("verbose")
	out := app.NewHeadless(&app.HeadlessConfig{
		OutputFormat: format,
		Writer:       cmd.OutOrStdout(),
		ErrorWriter:  cmd.ErrOrStderr(),
		Verbose:      verbose,
	})
	unsubscribe := e.session.Subscribe(out.HandleEvent)
	defer unsubscribe()

	if err := e.session.Load(ctx); err != nil {
		return err
	}

	result, opErr := op(ctx, e.session)
	if opErr != nil && format == app.OutputFormatText {
		return opErr
	}
	if err := out.WriteState(e.session.Snapshot(), result); err != nil {
		return err
	}
	return opErr
}

func outputFormat(cmd *cobra.Command) (app.OutputFormat, error) {
	value, _ := cmd.Flags().GetString("output")
	format, err := app.ParseOutputFormat(value)
	if err != nil {
		return "", errors.ConfigValidationError("output", err.Error(), []string{"text", "json"})
	}
	return format, nil
}

// parseID parses a todo id argument.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(arg, "#"))
	if err != nil || id < 1 {
		return 0, errors.InvalidTodoID(arg)
	}
	return id, nil
}

// find returns the loaded todo with id.
func find(s *app.Session, id int) (*todo.Task, error) {
	st := s.Snapshot()
	i := todo.IndexOf(st.Tasks, id)
	if i < 0 {
		return nil, errors.TodoNotFound(id)
	}
	t := st.Tasks[i]
	return &t, nil
}

func runList(cmd *cobra.Command, args []string) error {
	var filter todo.Filter
	if f := cmd.Flags().Lookup("filter"); f != nil && f.Value.String() != "" {
		parsed, err := todo.ParseFilter(f.Value.String())
		if err != nil {
			return errors.ConfigValidationError("filter", err.Error(), []string{"all", "active", "completed"})
		}
		filter = parsed
	}

	return runHeadless(cmd, func(ctx context.Context, s *app.Session) (*todo.Task, error) {
		if filter != "" {
			if err := s.SetFilter(filter); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
}

func runAdd(cmd *cobra.Command, args []string) error {
	title := strings.Join(args, " ")
	return runHeadless(cmd, func(ctx context.Context, s *app.Session) (*todo.Task, error) {
		created, err := s.Add(ctx, title)
		if err != nil {
			return nil, err
		}
		return &created, nil
	})
}

func runToggle(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return runHeadless(cmd, func(ctx context.Context, s *app.Session) (*todo.Task, error) {
		if err := s.Toggle(ctx, id); err != nil {
			return nil, err
		}
		return find(s, id)
	})
}

func runRename(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	title := strings.Join(args[1:], " ")
	return runHeadless(cmd, func(ctx context.Context, s *app.Session) (*todo.Task, error) {
		if _, err := find(s, id); err != nil {
			return nil, err
		}
		if err := s.Rename(ctx, id, title); err != nil {
			return nil, err
		}
		// An empty title deleted it
		if t, err := find(s, id); err == nil {
			return t, nil
		}
		return nil, nil
	})
}

func runRemove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return runHeadless(cmd, func(ctx context.Context, s *app.Session) (*todo.Task, error) {
		if _, err := find(s, id); err != nil {
			return nil, err
		}
		return nil, s.Delete(ctx, id)
	})
}

func runToggleAll(cmd *cobra.Command, args []string) error {
	return runHeadless(cmd, func(ctx context.Context, s *app.Session) (*todo.Task, error) {
		return nil, s.ToggleAll(ctx)
	})
}

func runClearCompleted(cmd *cobra.Command, args []string) error {
	return runHeadless(cmd, func(ctx context.Context, s *app.Session) (*todo.Task, error) {
		return nil, s.ClearCompleted(ctx)
	})
}
