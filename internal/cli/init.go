package cli

import (
	"fmt"

	"github.com/ouroboros-dev/ouroboros/internal/filesystem"
	"github.com/ouroboros-dev/ouroboros/internal/models"
	"github.com/ouroboros-dev/ouroboros/internal/tui"
	"github.com/spf13/cobra"
)

// InitCommand handles the init command
type InitCommand struct {
	fs     filesystem.FileSystem
	opts   *globalOptions
	withUV bool
}

// NewInitCommand creates a new init command
func NewInitCommand(fs filesystem.FileSystem, opts *globalOptions) *cobra.Command {
	cmd := &InitCommand{fs: fs, opts: opts}

	cobraCmd := &cobra.Command{
		Use:   "init",
		Short: "Create the project files",
		Long: `Create ouroboros.yml with an empty environment definition in the current
directory. Existing files are left untouched.`,
		Args: cobra.NoArgs,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().BoolVar(&cmd.withUV, "uv", false, "Also create pyproject.toml for uv")

	return cobraCmd
}

// Run executes the init command
func (c *InitCommand) Run(cmd *cobra.Command, args []string) error {
	s, err := c.opts.open(cmd, c.fs, nil)
	if err != nil {
		return err
	}

	if err := c.create(s, s.ws.ConfigPath, func() error {
		return s.store.Save(models.DefaultProjectDocument(), s.ws.ConfigPath)
	}); err != nil {
		return err
	}

	if !c.withUV {
		return nil
	}

	return c.create(s, s.ws.PyprojectPath, func() error {
		return s.store.Save(models.NewPyprojectDocument(s.ws.Name()), s.ws.PyprojectPath)
	})
}

func (c *InitCommand) create(s *session, path string, write func() error) error {
	if c.fs.Exists(path) {
		fmt.Fprintln(s.out, tui.SubtleStyle.Render(path+" already exists"))
		return nil
	}

	if err := write(); err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	fmt.Fprintln(s.out, tui.Success("created "+path))
	return nil
}
