package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wexinc/todos/internal/api"
	"github.com/wexinc/todos/internal/app"
	"github.com/wexinc/todos/internal/config"
	"github.com/wexinc/todos/internal/errors"
)

// newTestRoot creates a fresh command hierarchy for testing.
// This is necessary because Cobra commands maintain state between runs.
func newTestRoot() *cobra.Command {
	root := &cobra.Command{
		Use:           "todos",
		RunE:          runRoot,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	addPersistentFlags(root)

	list := &cobra.Command{Use: "list", Args: cobra.NoArgs, RunE: runList}
	list.Flags().StringP("filter", "f", "", "Show all, active or completed todos")

	initC := &cobra.Command{Use: "init", Args: cobra.NoArgs, RunE: runInit}
	initC.Flags().BoolP("force", "f", false, "Overwrite existing configuration")

	root.AddCommand(
		list,
		initC,
		&cobra.Command{Use: "add", Args: cobra.MinimumNArgs(1), RunE: runAdd},
		&cobra.Command{Use: "toggle", Args: cobra.ExactArgs(1), RunE: runToggle},
		&cobra.Command{Use: "rename", Args: cobra.MinimumNArgs(2), RunE: runRename},
		&cobra.Command{Use: "rm", Args: cobra.ExactArgs(1), RunE: runRemove},
		&cobra.Command{Use: "toggle-all", Args: cobra.NoArgs, RunE: runToggleAll},
		&cobra.Command{Use: "clear-completed", Args: cobra.NoArgs, RunE: runClearCompleted},
		&cobra.Command{Use: "version", Args: cobra.NoArgs, RunE: runVersion},
	)
	return root
}

// execute runs args in a fresh temp working directory.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	return executeHere(t, args...)
}

// executeHere runs args in the current working directory.
func executeHere(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := newTestRoot()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

// useClient replaces the API client for one test.
func useClient(t *testing.T, client api.Client) {
	t.Helper()
	orig := newClient
	newClient = func(*config.Config, bool) (api.Client, error) { return client, nil }
	t.Cleanup(func() { newClient = orig })
}

func TestRootCommand(t *testing.T) {
	root := Root()

	assert.Equal(t, "todos", root.Use)
	for _, name := range []string{"list", "add", "toggle", "rename", "rm", "toggle-all", "clear-completed", "init", "version"} {
		c, _, err := root.Find([]string{name})
		if assert.NoError(t, err, name) {
			assert.Equal(t, name, c.Name())
		}
	}
	for _, flag := range []string{"config", "base-url", "user-id", "offline", "verbose", "output"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
}

func TestRootFallsBackToListWithoutTerminal(t *testing.T) {
	orig := stdoutIsTerminal
	stdoutIsTerminal = func() bool { return false }
	t.Cleanup(func() { stdoutIsTerminal = orig })

	out, err := execute(t, "--offline")
	require.NoError(t, err)
	assert.Contains(t, out, "Read the README")
	assert.Contains(t, out, "2 items left")
}

func TestListCommand(t *testing.T) {
	out, err := execute(t, "--offline", "list")
	require.NoError(t, err)

	assert.Contains(t, out, "[x]    1  Read the README")
	assert.Contains(t, out, "[ ]    2  Try editing a todo")
	assert.Contains(t, out, "2 items left · All · 1 completed")
}

func TestListFilter(t *testing.T) {
	out, err := execute(t, "--offline", "list", "--filter", "completed")
	require.NoError(t, err)

	assert.Contains(t, out, "Read the README")
	assert.NotContains(t, out, "Try editing a todo")
	assert.Contains(t, out, "Completed")
}

func TestListInvalidFilter(t *testing.T) {
	_, err := execute(t, "--offline", "list", "--filter", "done")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrConfig)
}

func TestListJSON(t *testing.T) {
	out, err := execute(t, "--offline", "-o", "json", "list")
	require.NoError(t, err)

	var doc app.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 3, doc.Total)
	assert.Equal(t, 2, doc.Remaining)
	assert.Equal(t, 1, doc.Completed)
	assert.Len(t, doc.Todos, 3)
}

func TestInvalidOutputFormat(t *testing.T) {
	_, err := execute(t, "--offline", "-o", "yaml", "list")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrConfig)
}

func TestAddCommand(t *testing.T) {
	out, err := execute(t, "--offline", "add", "Buy", "milk")
	require.NoError(t, err)
	assert.Equal(t, "[ ] #4 Buy milk\n", out)
}

func TestAddBlankTitle(t *testing.T) {
	_, err := execute(t, "--offline", "add", "   ")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrValidation)
}

func TestAddFailure(t *testing.T) {
	client := api.NewMemory(1)
	client.Fail(api.OpCreate, errors.NetworkUnavailable("test", nil))
	useClient(t, client)

	_, err := execute(t, "add", "Buy milk")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNetwork)
}

func TestToggleCommand(t *testing.T) {
	out, err := execute(t, "--offline", "toggle", "2")
	require.NoError(t, err)
	assert.Equal(t, "[x] #2 Try editing a todo\n", out)
}

func TestToggleInvalidID(t *testing.T) {
	tests := []struct {
		arg  string
		kind error
	}{
		{"abc", errors.ErrValidation},
		{"0", errors.ErrValidation},
		{"-3", errors.ErrValidation},
		{"99", errors.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			_, err := execute(t, "--offline", "toggle", "--", tt.arg)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestParseID(t *testing.T) {
	id, err := parseID("#12")
	require.NoError(t, err)
	assert.Equal(t, 12, id)

	_, err = parseID("1.5")
	assert.ErrorIs(t, err, errors.ErrValidation)
}

func TestRenameCommand(t *testing.T) {
	out, err := execute(t, "--offline", "rename", "2", "Edit", "me")
	require.NoError(t, err)
	assert.Equal(t, "[ ] #2 Edit me\n", out)
}

func TestRenameEmptyDeletes(t *testing.T) {
	out, err := execute(t, "--offline", "rename", "2", "")
	require.NoError(t, err)
	assert.NotContains(t, out, "Try editing a todo")
	assert.Contains(t, out, "1 item left")
}

func TestRemoveCommand(t *testing.T) {
	out, err := execute(t, "--offline", "rm", "1")
	require.NoError(t, err)
	assert.NotContains(t, out, "Read the README")
	assert.Contains(t, out, "2 items left · All\n")

	_, err = execute(t, "--offline", "rm", "42")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestToggleAllCommand(t *testing.T) {
	out, err := execute(t, "--offline", "toggle-all")
	require.NoError(t, err)
	assert.Contains(t, out, "0 items left · All · 3 completed")
}

func TestClearCompletedCommand(t *testing.T) {
	out, err := execute(t, "--offline", "clear-completed")
	require.NoError(t, err)
	assert.NotContains(t, out, "Read the README")
	assert.Contains(t, out, "Try editing a todo")
}

func TestClearCompletedPartialFailure(t *testing.T) {
	client := api.NewMemory(1, api.DemoTasks(1)...)
	client.FailID(api.OpDelete, 1, errors.NetworkUnavailable("test", nil))
	useClient(t, client)

	out, err := execute(t, "-o", "json", "clear-completed")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNetwork)

	var doc app.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 3, doc.Total, "failed delete stays in the list")
	assert.Equal(t, app.NoticeUnableToDelete.String(), doc.Notice)
}

func TestInitCommand(t *testing.T) {
	out, err := execute(t, "init", "--user-id", "42")
	require.NoError(t, err)
	assert.Contains(t, out, "Created .todos/config.yaml")

	cfg, err := config.Load(config.DefaultConfigPath)
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.API.UserID)

	// Refuses to overwrite without --force
	_, err = executeHere(t, "init")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrConfig)

	_, err = executeHere(t, "init", "--force")
	require.NoError(t, err)
	cfg, err = config.Load(config.DefaultConfigPath)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultUserID, cfg.API.UserID)
}

func TestConfigFileIsUsed(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join("custom", "todos.yaml")
	_, err := executeHere(t, "init", "--config", path, "--user-id", "5")
	require.NoError(t, err)

	var gotOwner int
	orig := newClient
	newClient = func(cfg *config.Config, offline bool) (api.Client, error) {
		gotOwner = cfg.API.UserID
		return orig(cfg, true)
	}
	t.Cleanup(func() { newClient = orig })

	_, err = executeHere(t, "--config", path, "list")
	require.NoError(t, err)
	assert.Equal(t, 5, gotOwner)
}

func TestInvalidBaseURL(t *testing.T) {
	_, err := execute(t, "--base-url", "not a url", "list")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrConfig)
}

func TestLogFileWritten(t *testing.T) {
	_, err := execute(t, "--offline", "list")
	require.NoError(t, err)

	entries, err := os.ReadDir(config.DefaultLogDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "todos_"))
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "todos dev")

	out, err = execute(t, "version", "-o", "json")
	require.NoError(t, err)
	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "dev", info["version"])
}
