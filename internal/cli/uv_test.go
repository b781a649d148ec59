package cli

import (
	"path/filepath"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/ouroboros-dev/ouroboros/internal/filesystem"
	"github.com/ouroboros-dev/ouroboros/internal/invoker"
	"github.com/ouroboros-dev/ouroboros/internal/models"
	"github.com/ouroboros-dev/ouroboros/internal/tui/forms"
	"github.com/ouroboros-dev/ouroboros/internal/workspace"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const uvPyproject = `[project]
name = "demo"
version = "0.2.0"
requires-python = ">=3.11"
dependencies = ["httpx>=0.27"]

[dependency-groups]
dev = ["pytest"]

[tool.uv]
package = false
`

var testPyprojectPath = filepath.Join(testWorkspaceRoot, models.PyprojectFileName)

func newUVCommand(fs filesystem.FileSystem, runner invoker.Runner, opts *globalOptions, fill func(*forms.UVState) error) *cobra.Command {
	if fill == nil {
		fill = func(*forms.UVState) error { return nil }
	}
	c := &UVCommand{fs: fs, runner: runner, opts: opts, fill: fill}
	return c.command()
}

func TestUVEdit_EmptyListsRemoveKeys(t *testing.T) {
	fs := buildWorkspace(t, func(wb *workspace.WorkspaceBuilder) {
		wb.WithPyproject(uvPyproject)
	})

	cmd := newUVCommand(fs, invoker.NewMockRunner(), testOptions(t), func(st *forms.UVState) error {
		require.Equal(t, "demo", st.Name)
		require.Equal(t, "httpx>=0.27", st.Dependencies)

		st.RequiresPython = "3.12"
		st.Dependencies = ""
		st.Dev = ""
		return nil
	})

	_, err := runCommand(t, cmd, "edit")
	require.NoError(t, err)

	doc := readDocument(t, fs, testPyprojectPath)
	project, ok := doc.Map("project")
	require.True(t, ok)
	require.False(t, project.Has("dependencies"))
	require.False(t, doc.Has("dependency-groups"))

	requires, _ := project.String("requires-python")
	require.Equal(t, ">=3.12", requires)

	tool, ok := doc.Map("tool")
	require.True(t, ok)
	require.True(t, tool.Has("uv"))

	snaps.MatchSnapshot(t, readFile(t, fs, testPyprojectPath))
}

func TestUVEdit_NewProjectUsesDirectoryName(t *testing.T) {
	fs := buildWorkspace(t, nil)

	cmd := newUVCommand(fs, invoker.NewMockRunner(), testOptions(t), func(st *forms.UVState) error {
		require.Equal(t, "test-workspace", st.Name)
		st.Dependencies = "rich\n"
		return nil
	})

	_, err := runCommand(t, cmd, "edit")
	require.NoError(t, err)

	cfg := models.UVFromDocument(readDocument(t, fs, testPyprojectPath))
	require.Equal(t, "test-workspace", cfg.Name)
	require.Equal(t, models.DefaultProjectVersion, cfg.Version)
	require.Equal(t, ">="+models.DefaultPythonVersion, cfg.RequiresPython)
	require.Equal(t, []string{"rich"}, cfg.Dependencies)
}

func TestUVSave_KeepsUnchangedFields(t *testing.T) {
	fs := buildWorkspace(t, func(wb *workspace.WorkspaceBuilder) {
		wb.WithPyproject(uvPyproject)
	})

	_, err := runRoot(t, fs, invoker.NewMockRunner(), "uv", "save", "--requires-python", ">=3.10,<3.13", "--dev", "ruff")
	require.NoError(t, err)

	cfg := models.UVFromDocument(readDocument(t, fs, testPyprojectPath))
	require.Equal(t, "demo", cfg.Name)
	require.Equal(t, "0.2.0", cfg.Version)
	require.Equal(t, ">=3.10,<3.13", cfg.RequiresPython)
	require.Equal(t, []string{"httpx>=0.27"}, cfg.Dependencies)
	require.Equal(t, []string{"ruff"}, cfg.DevDependencies)
}

func TestUVShow(t *testing.T) {
	fs := buildWorkspace(t, func(wb *workspace.WorkspaceBuilder) {
		wb.WithPyproject(uvPyproject)
	})

	out, err := runRoot(t, fs, invoker.NewMockRunner(), "uv", "show")
	require.NoError(t, err)

	snaps.MatchSnapshot(t, out)
}

func TestUVSync(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{name: "sync", args: []string{"uv", "sync"}, expected: []string{"uv", "sync"}},
		{name: "upgrade", args: []string{"uv", "upgrade"}, expected: []string{"uv", "sync", "--upgrade"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := buildWorkspace(t, func(wb *workspace.WorkspaceBuilder) {
				wb.WithPyproject(uvPyproject)
			})
			runner := invoker.NewMockRunner()

			_, err := runRoot(t, fs, runner, tt.args...)
			require.NoError(t, err)
			require.Equal(t, [][]string{tt.expected}, runner.Argvs())
			require.Equal(t, testWorkspaceRoot, runner.Calls()[0].Dir)
		})
	}
}

func TestUVSync_RequiresPyproject(t *testing.T) {
	fs := buildWorkspace(t, nil)
	runner := invoker.NewMockRunner()

	_, err := runRoot(t, fs, runner, "uv", "sync")
	require.Error(t, err)
	require.Empty(t, runner.Calls())
}

func TestUVSync_TerminalSettingWrapsCommand(t *testing.T) {
	fs := buildWorkspace(t, func(wb *workspace.WorkspaceBuilder) {
		wb.WithPyproject(uvPyproject)
	})
	runner := invoker.NewMockRunner()
	opts := writeSettings(t, `terminal = "x-terminal-emulator -e"
uv_executable = "/opt/uv/bin/uv"
`)

	_, err := runCommand(t, newUVCommand(fs, runner, opts, nil), "sync")
	require.NoError(t, err)
	require.Equal(t, [][]string{{"x-terminal-emulator", "-e", "/opt/uv/bin/uv", "sync"}}, runner.Argvs())
}

func TestUVFreeze(t *testing.T) {
	fs := buildWorkspace(t, func(wb *workspace.WorkspaceBuilder) {
		wb.WithPyproject(uvPyproject)
	})
	runner := invoker.NewMockRunner()
	runner.On([]string{"uv", "pip", "freeze"}, invoker.MockResponse{Stdout: "httpx==0.27.0\n"})

	_, err := runRoot(t, fs, runner, "uv", "freeze")
	require.NoError(t, err)
	require.Equal(t, "httpx==0.27.0\n", readFile(t, fs, filepath.Join(testWorkspaceRoot, requirementsFileName)))
}

func TestUVFreeze_DryRunWritesNothing(t *testing.T) {
	fs := buildWorkspace(t, func(wb *workspace.WorkspaceBuilder) {
		wb.WithPyproject(uvPyproject)
	})

	out, err := runRoot(t, fs, invoker.NewMockRunner(), "--dry-run", "uv", "freeze")
	require.NoError(t, err)
	require.Contains(t, out, "uv pip freeze")
	require.False(t, fs.Exists(filepath.Join(testWorkspaceRoot, requirementsFileName)))
}
