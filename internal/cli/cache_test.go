package cli

import (
	"runtime"
	"testing"

	"github.com/ouroboros-dev/ouroboros/internal/invoker"
	"github.com/ouroboros-dev/ouroboros/internal/workspace"
	"github.com/stretchr/testify/require"
)

func TestCacheAndToolsCommands(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected [][]string
	}{
		{
			name:     "conda",
			args:     []string{"cache", "conda"},
			expected: [][]string{{"conda", "clean", "--all", "-y"}},
		},
		{
			name:     "uv prune",
			args:     []string{"cache", "uv-prune"},
			expected: [][]string{{"uv", "cache", "prune"}},
		},
		{
			name:     "uv clean",
			args:     []string{"cache", "uv-clean"},
			expected: [][]string{{"uv", "cache", "clean"}},
		},
		{
			name: "docker",
			args: []string{"cache", "docker"},
			expected: [][]string{
				{"docker", "system", "df"},
				{"docker", "builder", "prune", "--all", "--force"},
				{"docker", "system", "df"},
			},
		},
		{
			name:     "update uv",
			args:     []string{"tools", "update-uv"},
			expected: [][]string{{"uv", "self", "update"}},
		},
		{
			name:     "upgrade python",
			args:     []string{"tools", "upgrade-python"},
			expected: [][]string{{"uv", "python", "upgrade", "--preview-features", "python-upgrade"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := buildWorkspace(t, nil)
			runner := invoker.NewMockRunner()

			_, err := runRoot(t, fs, runner, tt.args...)
			require.NoError(t, err)
			require.Equal(t, tt.expected, runner.Argvs())
		})
	}
}

func TestCachePip(t *testing.T) {
	fs := buildWorkspace(t, func(wb *workspace.WorkspaceBuilder) {
		wb.WithProjectFile("name: env\n")
		wb.WithEnv("env", runtime.GOOS)
	})
	runner := invoker.NewMockRunner()

	_, err := runRoot(t, fs, runner, "cache", "pip")
	require.NoError(t, err)
	require.Equal(t, [][]string{{envPython(), "-m", "pip", "cache", "purge"}}, runner.Argvs())
}

func TestCacheDocker_StopsAtFirstFailure(t *testing.T) {
	fs := buildWorkspace(t, nil)
	runner := invoker.NewMockRunner()
	runner.Missing("docker")

	_, err := runRoot(t, fs, runner, "cache", "docker")
	require.Error(t, err)

	var nf *invoker.ToolNotFoundError
	require.ErrorAs(t, err, &nf)
	require.Len(t, runner.Calls(), 1)
}
