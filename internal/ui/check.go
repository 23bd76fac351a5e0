package ui

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/heartmarshall/textcheck/internal/service/checker"
)

type outcomeMsg checker.Outcome

type checkModel struct {
	title     string
	outcomes  <-chan checker.Outcome
	cancel    context.CancelFunc
	spinner   spinner.Model
	outcome   checker.Outcome
	done      bool
	cancelled bool
}

// NewCheckModel returns a Bubble Tea model that shows a spinner until the
// checker delivers its outcome on outcomes. Ctrl+C calls cancel and keeps
// waiting for the (cancelled) outcome.
func NewCheckModel(title string, outcomes <-chan checker.Outcome, cancel context.CancelFunc) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	return &checkModel{
		title:    title,
		outcomes: outcomes,
		cancel:   cancel,
		spinner:  sp,
	}
}

func (m *checkModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForOutcome())
}

func (m *checkModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case outcomeMsg:
		m.outcome = checker.Outcome(msg)
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC && !m.cancelled {
			m.cancelled = true
			if m.cancel != nil {
				m.cancel()
			}
		}
		return m, nil
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *checkModel) View() string {
	if m.done {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	label := m.title
	if m.cancelled {
		label += " (cancelling)"
	}
	return fmt.Sprintf("%s %s\n", m.spinner.View(), titleStyle.Render(label))
}

func (m *checkModel) waitForOutcome() tea.Cmd {
	return func() tea.Msg {
		o, ok := <-m.outcomes
		if !ok {
			return outcomeMsg{Err: context.Canceled}
		}
		return outcomeMsg(o)
	}
}

// WaitWithSpinner renders the check model to out until the outcome arrives.
func WaitWithSpinner(title string, outcomes <-chan checker.Outcome, cancel context.CancelFunc, out io.Writer, opts ...tea.ProgramOption) (checker.Outcome, error) {
	model := NewCheckModel(title, outcomes, cancel)
	opts = append([]tea.ProgramOption{tea.WithOutput(out)}, opts...)
	program := tea.NewProgram(model, opts...)

	final, err := program.Run()
	if err != nil {
		return checker.Outcome{}, fmt.Errorf("ui: %w", err)
	}
	return final.(*checkModel).outcome, nil
}
