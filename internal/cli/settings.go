package cli

import (
	"fmt"

	"github.com/ouroboros-dev/ouroboros/internal/settings"
	"github.com/ouroboros-dev/ouroboros/internal/tui"
	"github.com/spf13/cobra"
)

// SettingsCommand handles the settings command group
type SettingsCommand struct {
	opts *globalOptions
}

// NewSettingsCommand creates the settings command group
func NewSettingsCommand(opts *globalOptions) *cobra.Command {
	c := &SettingsCommand{opts: opts}

	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect the user settings",
	}

	settingsCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective user settings",
		Long: `Show the settings in effect after applying the settings file and
OUROBOROS_* environment variables to the built-in defaults.`,
		Args: cobra.NoArgs,
		RunE: c.runShow,
	})

	return settingsCmd
}

func (c *SettingsCommand) runShow(cmd *cobra.Command, args []string) error {
	cfg, err := settings.Load(c.opts.settingsPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cfg.Path == "" {
		fmt.Fprintln(out, tui.SubtleStyle.Render("no settings file, using defaults"))
	} else {
		fmt.Fprintln(out, tui.SubtleStyle.Render("read "+cfg.Path))
	}

	renderTable(out, [2]string{"Key", "Value"}, cfg.Entries())
	return nil
}
