package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// confirmModel asks a yes/no question, defaulting to no.
type confirmModel struct {
	message   string
	yes       bool
	confirmed bool
	done      bool
}

func newConfirmModel(message string) confirmModel {
	return confirmModel{message: message}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "left", "h":
		m.yes = true
	case "right", "l":
		m.yes = false
	case "tab":
		m.yes = !m.yes
	case "enter", " ":
		m.confirmed = m.yes
		m.done = true
		return m, tea.Quit
	case "y":
		m.confirmed = true
		m.done = true
		return m, tea.Quit
	case "n", "ctrl+c", "esc":
		m.confirmed = false
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}

	yes, no := "  Yes", "  No"
	if m.yes {
		yes = CommandStyle.Render("> Yes")
	} else {
		no = CommandStyle.Render("> No")
	}

	return fmt.Sprintf("%s\n\n%s  %s\n\n%s\n",
		WarningStyle.Render(m.message),
		yes, no,
		HelpStyle.Render("←→ choose • enter confirm • y/n quick select"))
}

// Confirm asks message on out and reads the answer from in.
func Confirm(in io.Reader, out io.Writer, message string) (bool, error) {
	final, err := tea.NewProgram(newConfirmModel(message), tea.WithInput(in), tea.WithOutput(out)).Run()
	if err != nil {
		return false, err
	}
	return final.(confirmModel).confirmed, nil
}
