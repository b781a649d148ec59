package forms

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/ouroboros-dev/ouroboros/internal/tui"
)

// Run shows form full screen with the ouroboros theme. It returns
// huh.ErrUserAborted when the user cancels.
func Run(form *huh.Form) error {
	return form.
		WithTheme(tui.NewHuhTheme()).
		WithShowHelp(true).
		WithProgramOptions(tea.WithAltScreen()).
		Run()
}
