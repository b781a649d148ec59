package cli

import (
	"github.com/ouroboros-dev/ouroboros/internal/filesystem"
	"github.com/ouroboros-dev/ouroboros/internal/invoker"
	"github.com/spf13/cobra"
)

// NewToolsCommand creates the tools command group. It reuses the cache
// command runner since both only run fixed tool commands.
func NewToolsCommand(fs filesystem.FileSystem, runner invoker.Runner, opts *globalOptions) *cobra.Command {
	c := &CacheCommand{fs: fs, runner: runner, opts: opts}

	toolsCmd := &cobra.Command{
		Use:   "tools",
		Short: "Update uv and the interpreters it manages",
	}

	toolsCmd.AddCommand(
		c.toolCommand("update-uv", "Update uv to the latest release", "",
			func(s *session) ([][]string, error) {
				return [][]string{s.tools.UVSelfUpdate()}, nil
			}),
		c.toolCommand("upgrade-python", "Upgrade the Python versions installed by uv", "",
			func(s *session) ([][]string, error) {
				return [][]string{s.tools.UVPythonUpgrade()}, nil
			}),
	)

	return toolsCmd
}
