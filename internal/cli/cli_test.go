package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ouroboros-dev/ouroboros/internal/configstore"
	"github.com/ouroboros-dev/ouroboros/internal/document"
	"github.com/ouroboros-dev/ouroboros/internal/filesystem"
	"github.com/ouroboros-dev/ouroboros/internal/invoker"
	"github.com/ouroboros-dev/ouroboros/internal/workspace"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const testWorkspaceRoot = "/test-workspace"

func buildWorkspace(t *testing.T, setup func(*workspace.WorkspaceBuilder)) *filesystem.MockFileSystem {
	t.Helper()

	wb := workspace.NewWorkspaceBuilder(testWorkspaceRoot)
	if setup != nil {
		setup(wb)
	}

	return wb.Build()
}

// testOptions points the settings at a file that does not exist, so the
// user's own settings never leak into a test.
func testOptions(t *testing.T) *globalOptions {
	t.Helper()
	return &globalOptions{settingsPath: filepath.Join(t.TempDir(), "config.toml")}
}

// writeSettings creates a settings file and returns options reading it.
func writeSettings(t *testing.T, content string) *globalOptions {
	t.Helper()

	opts := testOptions(t)
	require.NoError(t, os.WriteFile(opts.settingsPath, []byte(content), 0644))
	return opts
}

// runCommand executes cmd with args and returns everything it printed.
func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

// runRoot executes the full command tree.
func runRoot(t *testing.T, fs filesystem.FileSystem, runner invoker.Runner, args ...string) (string, error) {
	t.Helper()

	settingsPath := filepath.Join(t.TempDir(), "config.toml")
	root := NewRootCommand(fs, runner)
	return runCommand(t, root, append([]string{"--settings", settingsPath}, args...)...)
}

func readDocument(t *testing.T, fs filesystem.FileSystem, path string) *document.Map {
	t.Helper()

	doc, err := configstore.New(fs).Load(path)
	require.NoError(t, err)
	return doc
}

func readFile(t *testing.T, fs filesystem.FileSystem, path string) string {
	t.Helper()

	data, err := fs.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
