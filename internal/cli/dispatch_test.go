package cli_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"

	"todo/internal/cli"
	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/store"
	"todo/internal/testutil"
)

const tasksFile = "/data/tasks.txt"

// testStores creates a store factory backed by fs with a fixed clock.
func testStores(fs afero.Fs) cli.StoreFactory {
	return func(cfg *config.Config, logger *slog.Logger) (service.Store, error) {
		return store.New(fs,
			store.WithClock(func() time.Time { return testutil.Now }),
			store.WithLogger(logger),
		), nil
	}
}

// testRemotes creates a remote factory that returns the given FakeRemote.
func testRemotes(remote *testutil.FakeRemote) cli.RemoteFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Remote, error) {
		return remote, nil
	}
}

// isolateEnv keeps the developer's own config and environment out of the test.
func isolateEnv(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(config.EnvTasksFile, "")
	t.Setenv(config.EnvNoColor, "")
	return dir
}

func run(t *testing.T, d *cli.Dispatcher, in io.Reader, args ...string) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer
	code = d.Run(context.Background(), args, in, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func newDispatcher(fs afero.Fs) *cli.Dispatcher {
	return cli.NewDispatcher(commands.DefaultRegistry, testStores(fs), testRemotes(testutil.NewFakeRemote()))
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	isolateEnv(t)
	_, stderr, code := run(t, newDispatcher(afero.NewMemMapFs()), nil, "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	isolateEnv(t)
	_, stderr, code := run(t, newDispatcher(afero.NewMemMapFs()), nil, "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	isolateEnv(t)
	stdout, stderr, code := run(t, newDispatcher(afero.NewMemMapFs()), nil, "help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	isolateEnv(t)
	stdout, stderr, code := run(t, newDispatcher(afero.NewMemMapFs()), nil, "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "todo 0.1.0\n" {
		t.Errorf("expected 'todo 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_FlagErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown flag", []string{"help", "--unknown"}, "error: unknown flag: -unknown\n"},
		{"missing value", []string{"add", "--due"}, "error: flag needs an argument: -due\n"},
		{"stray dash argument", []string{"list", "--", "-x"}, "error: unknown flag: -x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			_, stderr, code := run(t, newDispatcher(afero.NewMemMapFs()), nil, tt.args...)

			if code != exitcode.UserError {
				t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
			}
			if stderr != tt.want {
				t.Errorf("expected %q, got %q", tt.want, stderr)
			}
		})
	}
}

func TestDispatcher_NoArgsListsTasks(t *testing.T) {
	isolateEnv(t)
	stdout, stderr, code := run(t, newDispatcher(afero.NewMemMapFs()), nil)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "no tasks found\n" {
		t.Errorf("expected 'no tasks found', got %q", stdout)
	}
}

func TestDispatcher_AddThenList(t *testing.T) {
	dir := isolateEnv(t)
	fs := afero.NewMemMapFs()
	d := newDispatcher(fs)

	stdout, stderr, code := run(t, d, nil, "add", "--config", dir, "--file", tasksFile, "--due", "2026-10-25", "Buy", "bread")
	if code != exitcode.Success {
		t.Fatalf("add: expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "added 1\n" {
		t.Errorf("expected 'added 1', got %q", stdout)
	}

	data, err := afero.ReadFile(fs, tasksFile)
	if err != nil {
		t.Fatalf("tasks file not written: %v", err)
	}
	if string(data) != "1,Buy bread,2026-10-25,False\n" {
		t.Errorf("unexpected tasks file: %q", data)
	}

	stdout, _, code = run(t, d, nil, "ls", "--file", tasksFile)
	if code != exitcode.Success {
		t.Errorf("list: expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "   1  [ ] Buy bread  (due 2026-10-25)\n" {
		t.Errorf("unexpected list output: %q", stdout)
	}
}

func TestDispatcher_TasksFileFromConfig(t *testing.T) {
	dir := isolateEnv(t)
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte("tasks_file: mine.txt\n"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	fs := afero.NewMemMapFs()

	_, stderr, code := run(t, newDispatcher(fs), nil, "add", "--config", dir, "--due", "2026-10-25", "Configured")
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}

	if ok, _ := afero.Exists(fs, filepath.Join(dir, "mine.txt")); !ok {
		t.Error("expected tasks file at the configured path")
	}
}

func TestDispatcher_LoadError(t *testing.T) {
	isolateEnv(t)
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, tasksFile, []byte("x,Bad,2026-10-20,False\n"), 0644); err != nil {
		t.Fatalf("failed to write tasks file: %v", err)
	}

	stdout, stderr, code := run(t, newDispatcher(fs), nil, "list", "--file", tasksFile)

	if code != exitcode.StoreError {
		t.Errorf("expected exit code %d, got %d", exitcode.StoreError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	want := "error: failed to load tasks: " + tasksFile + ": line 1: invalid id \"x\"\n"
	if stderr != want {
		t.Errorf("expected %q, got %q", want, stderr)
	}
}

func TestDispatcher_OversizedLineIsSkipped(t *testing.T) {
	isolateEnv(t)
	fs := afero.NewMemMapFs()
	content := "1,Buy milk,2026-10-20,False\n" + strings.Repeat("x", 70*1024) + "\n"
	if err := afero.WriteFile(fs, tasksFile, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write tasks file: %v", err)
	}

	stdout, stderr, code := run(t, newDispatcher(fs), nil, "list", "--file", tasksFile)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "   1  [ ] Buy milk  (due 2026-10-20)\n" {
		t.Errorf("unexpected list output: %q", stdout)
	}
}

func TestDispatcher_StoreFactoryError(t *testing.T) {
	isolateEnv(t)
	stores := func(cfg *config.Config, logger *slog.Logger) (service.Store, error) {
		return nil, errors.New("permission denied")
	}
	d := cli.NewDispatcher(commands.DefaultRegistry, stores, nil)

	_, stderr, code := run(t, d, nil, "list")

	if code != exitcode.StoreError {
		t.Errorf("expected exit code %d, got %d", exitcode.StoreError, code)
	}
	if stderr != "error: failed to open tasks: permission denied\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestDispatcher_Shell(t *testing.T) {
	isolateEnv(t)
	fs := afero.NewMemMapFs()
	in := strings.NewReader("1\nPack bags\n2026-10-30\n6\n5\n")

	stdout, stderr, code := run(t, newDispatcher(fs), in, "menu", "--file", tasksFile)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Tasks saved to "+tasksFile+".\n") {
		t.Errorf("expected save confirmation, got %q", stdout)
	}
	data, _ := afero.ReadFile(fs, tasksFile)
	if string(data) != "1,Pack bags,2026-10-30,False\n" {
		t.Errorf("unexpected tasks file: %q", data)
	}
}

func TestDispatcher_Push(t *testing.T) {
	isolateEnv(t)
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, tasksFile, []byte("1,Buy milk,2026-10-20,False\n"), 0644); err != nil {
		t.Fatalf("failed to write tasks file: %v", err)
	}
	remote := testutil.NewFakeRemote()
	d := cli.NewDispatcher(commands.DefaultRegistry, testStores(fs), testRemotes(remote))

	stdout, stderr, code := run(t, d, nil, "push", "--file", tasksFile, "--list", "Groceries")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "pushed 1 tasks to Groceries\n" {
		t.Errorf("unexpected stdout: %q", stdout)
	}
	if got := remote.Pushed("groceries"); len(got) != 1 || got[0].Description != "Buy milk" {
		t.Errorf("unexpected pushed tasks: %+v", got)
	}
}

func TestDispatcher_RemoteFactoryErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		want     string
	}{
		{"auth", errors.New("token expired"), exitcode.AuthError, "error: auth error: token expired\n"},
		{"backend", errors.New("connection refused"), exitcode.BackendError, "error: backend error: connection refused\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			remotes := func(ctx context.Context, cfg *config.Config) (service.Remote, error) {
				return nil, tt.err
			}
			d := cli.NewDispatcher(commands.DefaultRegistry, testStores(afero.NewMemMapFs()), remotes)

			_, stderr, code := run(t, d, nil, "lists")

			if code != tt.wantCode {
				t.Errorf("expected exit code %d, got %d", tt.wantCode, code)
			}
			if stderr != tt.want {
				t.Errorf("expected %q, got %q", tt.want, stderr)
			}
		})
	}
}

func TestDispatcher_NoRemoteFactory(t *testing.T) {
	dir := isolateEnv(t)
	d := cli.NewDispatcher(commands.DefaultRegistry, testStores(afero.NewMemMapFs()), nil)

	_, stderr, code := run(t, d, nil, "lists", "--config", dir)
	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stderr != "error: oauth_client.json not found in "+dir+"\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}

	if err := os.WriteFile(filepath.Join(dir, config.OAuthClientFile), []byte("{}"), 0600); err != nil {
		t.Fatalf("failed to write oauth client: %v", err)
	}
	_, stderr, code = run(t, d, nil, "lists", "--config", dir)
	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stderr != "error: not logged in (run: todo login)\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestDispatcher_DebugLogging(t *testing.T) {
	isolateEnv(t)
	_, stderr, code := run(t, newDispatcher(afero.NewMemMapFs()), nil, "list", "--debug", "--file", tasksFile)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stderr, "level=DEBUG") || !strings.Contains(stderr, "command=list") {
		t.Errorf("expected debug log on stderr, got %q", stderr)
	}
}
