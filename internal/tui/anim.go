package tui

import (
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/gridstudy/loadflow/internal/tui/theme"
)

// Spinner wraps the bubbles spinner shown beside a running analysis.
type Spinner struct {
	model  spinner.Model
	active bool
}

// NewSpinner creates a spinner with the given style.
func NewSpinner(style spinner.Spinner) Spinner {
	t := theme.Current()
	s := spinner.New(
		spinner.WithSpinner(style),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(t.Primary))),
	)
	return Spinner{model: s}
}

// NewDefaultSpinner creates a spinner with MiniDot style.
func NewDefaultSpinner() Spinner {
	return NewSpinner(spinner.MiniDot)
}

// Start begins animating. It returns nil when the spinner already runs.
func (s *Spinner) Start() tea.Cmd {
	if s.active {
		return nil
	}
	s.active = true
	return s.model.Tick
}

// Stop freezes the spinner; the pending tick is dropped on arrival.
func (s *Spinner) Stop() {
	s.active = false
}

// Active reports whether the spinner is animating.
func (s *Spinner) Active() bool {
	return s.active
}

// Update handles spinner tick messages.
func (s *Spinner) Update(msg tea.Msg) tea.Cmd {
	if !s.active {
		return nil
	}
	var cmd tea.Cmd
	s.model, cmd = s.model.Update(msg)
	return cmd
}

// View renders the current frame, or nothing when stopped.
func (s *Spinner) View() string {
	if !s.active {
		return ""
	}
	return s.model.View()
}
