package cli

import (
	"fmt"

	"github.com/ouroboros-dev/ouroboros/internal/argbuilder"
	"github.com/ouroboros-dev/ouroboros/internal/filesystem"
	"github.com/ouroboros-dev/ouroboros/internal/invoker"
	"github.com/ouroboros-dev/ouroboros/internal/models"
	"github.com/ouroboros-dev/ouroboros/internal/tui"
	"github.com/spf13/cobra"
)

// CacheCommand handles the cache command group
type CacheCommand struct {
	fs     filesystem.FileSystem
	runner invoker.Runner
	opts   *globalOptions

	// yes skips the confirmation of commands deleting whole caches
	yes bool
}

// NewCacheCommand creates the cache command group
func NewCacheCommand(fs filesystem.FileSystem, runner invoker.Runner, opts *globalOptions) *cobra.Command {
	c := &CacheCommand{fs: fs, runner: runner, opts: opts}

	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Clear package and build caches",
	}
	cacheCmd.PersistentFlags().BoolVarP(&c.yes, "yes", "y", false, "Do not ask before removing a whole cache")

	cacheCmd.AddCommand(
		c.toolCommand("conda", "Remove unused conda packages and caches", "",
			func(s *session) ([][]string, error) {
				return [][]string{s.tools.CondaClean()}, nil
			}),
		c.toolCommand("pip", "Purge the pip cache of the project environment", "", c.pipPurge),
		c.toolCommand("uv-prune", "Remove unused entries from the uv cache", "",
			func(s *session) ([][]string, error) {
				return [][]string{s.tools.UVCachePrune()}, nil
			}),
		c.toolCommand("uv-clean", "Remove the whole uv cache", "Remove the whole uv cache?",
			func(s *session) ([][]string, error) {
				return [][]string{s.tools.UVCacheClean()}, nil
			}),
		c.toolCommand("docker", "Prune the Docker build cache", "Remove the whole Docker build cache?",
			func(s *session) ([][]string, error) {
				// disk usage before and after the prune
				return [][]string{
					s.tools.DockerSystemDF(),
					s.tools.DockerBuilderPrune(),
					s.tools.DockerSystemDF(),
				}, nil
			}),
	)

	return cacheCmd
}

// toolCommand creates a subcommand running the commands returned by plan in
// order, stopping at the first failure. A non-empty confirm is asked first
// on a terminal unless --yes was given.
func (c *CacheCommand) toolCommand(use, short, confirm string, plan func(*session) ([][]string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.opts.open(cmd, c.fs, c.runner)
			if err != nil {
				return err
			}

			argvs, err := plan(s)
			if err != nil {
				return err
			}

			if confirm != "" && !c.yes && !s.dryRun && s.interactive() {
				ok, err := tui.Confirm(cmd.InOrStdin(), s.out, confirm)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(s.out, tui.SubtleStyle.Render("cancelled"))
					return nil
				}
			}

			for _, argv := range argvs {
				if err := s.run(cmd.Context(), argv); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (c *CacheCommand) pipPurge(s *session) ([][]string, error) {
	doc, err := s.load(s.ws.ConfigPath)
	if err != nil {
		return nil, err
	}

	python, err := s.interpreter(models.ProjectFromDocument(doc).Name, "")
	if err != nil {
		return nil, fmt.Errorf("failed to find the environment interpreter, run `ouroboros env build` first: %w", err)
	}

	return [][]string{argbuilder.PipCachePurge(python)}, nil
}
