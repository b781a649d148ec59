package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// NewHuhTheme returns the form theme: the charm base with the blue/orange
// accents of the styles above.
func NewHuhTheme() *huh.Theme {
	t := huh.ThemeCharm()

	blue := lipgloss.Color("#3B82F6")
	orange := lipgloss.Color("#F59E0B")

	t.Focused.Title = t.Focused.Title.Foreground(blue).Bold(true)
	t.Focused.NoteTitle = t.Focused.NoteTitle.Foreground(blue).Bold(true)
	t.Focused.Base = t.Focused.Base.BorderForeground(blue)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(orange)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(orange)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Background(blue)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(orange)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(orange)

	t.Blurred.Title = t.Blurred.Title.Foreground(lipgloss.Color("#888888"))

	return t
}
