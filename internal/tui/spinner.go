package tui

import (
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type doneMsg struct{ err error }

// spinnerModel shows a spinner until its task finishes.
type spinnerModel struct {
	spinner spinner.Model
	title   string
	task    func() error
	err     error
	done    bool
}

func newSpinnerModel(title string, task func() error) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = CommandStyle

	return spinnerModel{spinner: s, title: title, task: task}
}

func (m spinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return doneMsg{err: m.task()}
	})
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.title + "\n"
}

// RunWithSpinner runs task while a spinner is drawn to out. When out is
// not a terminal the task simply runs.
func RunWithSpinner(out io.Writer, interactive bool, title string, task func() error) error {
	if !interactive {
		return task()
	}

	final, err := tea.NewProgram(newSpinnerModel(title, task), tea.WithOutput(out), tea.WithInput(nil)).Run()
	if err != nil {
		return err
	}
	m := final.(spinnerModel)
	if !m.done {
		return ErrInterrupted
	}
	return m.err
}
