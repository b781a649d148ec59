package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Title styling
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6")).
			MarginBottom(1)

	// Section header in show output
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#3B82F6")).
			Padding(0, 1)

	// Command preview styling
	CommandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B"))

	// Help text styling
	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	// Error styling
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B")).
			Bold(true)

	// Success styling
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	// Subtle text styling
	SubtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// Success renders a one-line confirmation.
func Success(msg string) string {
	return SuccessStyle.Render("✓ " + msg)
}

// Warning renders a one-line warning.
func Warning(msg string) string {
	return WarningStyle.Render("! " + msg)
}

// Failure renders a one-line error.
func Failure(msg string) string {
	return ErrorStyle.Render("✗ " + msg)
}

// Command renders a quoted command line.
func Command(line string) string {
	return CommandStyle.Render("$ " + line)
}
