package workspace

import (
	"errors"
	"testing"

	"github.com/ouroboros-dev/ouroboros/internal/invoker"
	"github.com/stretchr/testify/require"
)

func TestWorkspaceDetect_ProjectFileInParent(t *testing.T) {
	fs := NewWorkspaceBuilder("/work/app").
		WithProjectFile("name: env\n").
		WithFile("src/pkg/__init__.py", "").
		Build()
	fs.SetCurrentDir("/work/app/src/pkg")

	ws := New(fs)
	require.NoError(t, ws.Detect())
	require.Equal(t, "/work/app", ws.RootPath)
	require.Equal(t, "/work/app/ouroboros.yml", ws.ConfigPath)
	require.Equal(t, "/work/app/pyproject.toml", ws.PyprojectPath)
	require.Equal(t, "app", ws.Name())
}

func TestWorkspaceDetect_PyprojectOnly(t *testing.T) {
	fs := NewWorkspaceBuilder("/work/MyTool").WithPyproject("[project]\n").Build()

	ws := New(fs)
	require.NoError(t, ws.Detect())
	require.Equal(t, "/work/MyTool", ws.RootPath)
}

func TestWorkspaceDetect_NoProjectUsesCwd(t *testing.T) {
	fs := NewWorkspaceBuilder("/work/fresh").Build()

	ws := New(fs)
	require.NoError(t, ws.Detect())
	require.Equal(t, "/work/fresh", ws.RootPath)
	require.False(t, fs.Exists(ws.ConfigPath))
}

func TestWorkspaceDetect_Overrides(t *testing.T) {
	fs := NewWorkspaceBuilder("/work/app").WithProjectFile("").Build()

	ws := New(fs, WithConfigPath("conf/env.yml"), WithPyprojectPath("/elsewhere/pyproject.toml"))
	require.NoError(t, ws.Detect())
	require.Equal(t, "/work/app/conf/env.yml", ws.ConfigPath)
	require.Equal(t, "/elsewhere/pyproject.toml", ws.PyprojectPath)
}

func TestWorkspace_Interpreter(t *testing.T) {
	fs := NewWorkspaceBuilder("/work/app").
		WithProjectFile("").
		WithEnv(".venv", "linux").
		WithEnv("winenv", "windows").
		Build()

	ws := New(fs)
	require.NoError(t, ws.Detect())

	python, err := ws.Interpreter("linux", "")
	require.NoError(t, err)
	require.Equal(t, "/work/app/.venv/bin/python", python)

	python, err = ws.Interpreter("windows", "winenv")
	require.NoError(t, err)
	require.Equal(t, "/work/app/winenv/python.exe", python)

	_, err = ws.Interpreter("linux", "missing")
	var notFound *invoker.ToolNotFoundError
	require.True(t, errors.As(err, &notFound))
}

func TestWorkspace_EnsureEnvIgnored(t *testing.T) {
	fs := NewWorkspaceBuilder("/work/app").
		WithProjectFile("").
		WithEnv("env", "linux").
		Build()

	ws := New(fs)
	require.NoError(t, ws.Detect())

	path, err := ws.EnsureEnvIgnored("env")
	require.NoError(t, err)
	require.Equal(t, "/work/app/env/.gitignore", path)

	data, err := fs.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "*", string(data))
}

func TestWorkspace_EnsureEnvIgnored_RootAlreadyIgnores(t *testing.T) {
	fs := NewWorkspaceBuilder("/work/app").
		WithProjectFile("").
		WithGitIgnore(".venv/\n__pycache__/\n").
		WithEnv(".venv", "linux").
		Build()

	ws := New(fs)
	require.NoError(t, ws.Detect())

	path, err := ws.EnsureEnvIgnored("")
	require.NoError(t, err)
	require.Empty(t, path)
	require.False(t, fs.Exists("/work/app/.venv/.gitignore"))
}

func TestWorkspace_EnsureEnvIgnored_MissingEnv(t *testing.T) {
	fs := NewWorkspaceBuilder("/work/app").WithProjectFile("").Build()

	ws := New(fs)
	require.NoError(t, ws.Detect())

	_, err := ws.EnsureEnvIgnored("env")
	require.Error(t, err)
}

func TestWorkspace_IsIgnored(t *testing.T) {
	fs := NewWorkspaceBuilder("/work/app").WithGitIgnore("build/\n*.pyc\n").Build()

	ws := New(fs)
	require.NoError(t, ws.Detect())

	ignored, err := ws.IsIgnored("/work/app/build", true)
	require.NoError(t, err)
	require.True(t, ignored)

	ignored, err = ws.IsIgnored("/work/app/main.py", false)
	require.NoError(t, err)
	require.False(t, ignored)
}
