package cli

import (
	"github.com/ouroboros-dev/ouroboros/internal/filesystem"
	"github.com/ouroboros-dev/ouroboros/internal/invoker"
	"github.com/ouroboros-dev/ouroboros/internal/models"
	"github.com/ouroboros-dev/ouroboros/internal/probe"
	"github.com/ouroboros-dev/ouroboros/internal/tui"
	"github.com/spf13/cobra"
)

// VersionsCommand handles the versions command
type VersionsCommand struct {
	fs     filesystem.FileSystem
	runner invoker.Runner
	opts   *globalOptions
	python string
}

// NewVersionsCommand creates a new versions command
func NewVersionsCommand(fs filesystem.FileSystem, runner invoker.Runner, opts *globalOptions) *cobra.Command {
	cmd := &VersionsCommand{fs: fs, runner: runner, opts: opts}

	cobraCmd := &cobra.Command{
		Use:   "versions",
		Short: "Show the installed conda, uv, Docker and Nuitka versions",
		Long: `Query every tool once, concurrently, and print the versions found.
Nuitka is checked with the project environment's interpreter when one exists.`,
		Args: cobra.NoArgs,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().StringVar(&cmd.python, "python", "", "Interpreter to check Nuitka with")

	return cobraCmd
}

// Run executes the versions command
func (c *VersionsCommand) Run(cmd *cobra.Command, args []string) error {
	s, err := c.opts.open(cmd, c.fs, c.runner)
	if err != nil {
		return err
	}

	python := c.python
	if python == "" {
		doc, err := s.load(s.ws.ConfigPath)
		if err != nil {
			return err
		}
		// no interpreter leaves Nuitka out
		python, _ = s.ws.Interpreter(s.goos, models.ProjectFromDocument(doc).Name)
	}

	set := probe.NewSet(s.probeRunner, s.tools, python)

	var states []probe.State
	err = tui.RunWithSpinner(s.out, s.interactive(), "Checking tool versions", func() error {
		states = set.Resolve(cmd.Context())
		return nil
	})
	if err != nil {
		return err
	}

	rows := make([][2]string, 0, len(states))
	for i, cache := range set.Caches() {
		rows = append(rows, [2]string{cache.Name(), states[i].Display()})
	}
	renderTable(s.out, [2]string{"Tool", "Version"}, rows)
	return nil
}
