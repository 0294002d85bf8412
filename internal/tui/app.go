// Package tui renders the load flow wizard document as a full-screen
// Bubble Tea program and bridges Bubble Tea ticks to the event loop.
package tui

import (
	"context"
	"fmt"
	"slices"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/gridstudy/loadflow/internal/eventloop"
	"github.com/gridstudy/loadflow/internal/logger"
	"github.com/gridstudy/loadflow/internal/page"
	"github.com/gridstudy/loadflow/internal/wizard"
)

// TimerMsg asks the app to fire an event loop timer.
type TimerMsg struct {
	ID eventloop.TimerID
}

// App is the Bubble Tea model for the wizard.
type App struct {
	doc  *page.Document
	loop *eventloop.Loop
	ctrl *wizard.Controller

	focus    string // id of the focused button
	spin     Spinner
	width    int
	height   int
	quitting bool
}

// NewApp creates the wizard model for a document whose handlers were bound
// by wizard.Setup against the same loop.
func NewApp(doc *page.Document, loop *eventloop.Loop, ctrl *wizard.Controller) *App {
	a := &App{doc: doc, loop: loop, ctrl: ctrl, spin: NewDefaultSpinner()}
	a.ensureFocus()
	return a
}

// Run starts the full-screen program and blocks until the user quits.
func Run(ctx context.Context, app *App) error {
	p := tea.NewProgram(app, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("wizard failed: %w", err)
	}
	return nil
}

// Init initializes the model.
func (a *App) Init() tea.Cmd {
	a.ensureFocus()
	return a.scheduleArmed()
}

// Update handles messages for the wizard.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			a.quitting = true
			return a, tea.Quit
		case "tab", "right", "down", "l", "j":
			a.moveFocus(1)
		case "shift+tab", "left", "up", "h", "k":
			a.moveFocus(-1)
		case "enter", "space", " ":
			return a, tea.Batch(a.activate(), a.syncSpinner())
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case spinner.TickMsg:
		return a, a.spin.Update(msg)

	case TimerMsg:
		if !a.loop.Fire(msg.ID) {
			return a, a.syncSpinner()
		}
		interval, _ := a.loop.Interval(msg.ID)
		return a, tickCmd(msg.ID, interval)
	}

	return a, nil
}

// View renders the wizard UI.
func (a *App) View() tea.View {
	content := a.render()

	var view tea.View
	if a.width > 0 && a.height > 0 {
		canvas := uv.NewScreenBuffer(a.width, a.height)
		uv.NewStyledString(content).Draw(canvas, uv.Rectangle{
			Min: uv.Position{X: 0, Y: 0},
			Max: uv.Position{X: a.width, Y: a.height},
		})
		view = tea.NewView(canvas.Render())
	} else {
		view = tea.NewView(content)
	}
	view.AltScreen = true
	view.WindowTitle = "loadflow"

	if bar, ok := a.doc.ByID(wizard.ProgressBar); ok && a.doc.Shown(bar) {
		view.ProgressBar = &tea.ProgressBar{State: tea.ProgressBarDefault, Value: bar.Width()}
		if len(a.ctrl.Running()) == 0 {
			view.ProgressBar.State = tea.ProgressBarNone
		}
	}
	return view
}

// Focused returns the id of the focused button.
func (a *App) Focused() string { return a.focus }

// focusable returns the ids of shown buttons in document order.
func (a *App) focusable() []string {
	var ids []string
	for _, e := range a.doc.Elements() {
		if e.Kind == page.KindButton && a.doc.Shown(e) {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

func (a *App) ensureFocus() {
	ids := a.focusable()
	if len(ids) == 0 {
		a.focus = ""
		return
	}
	if !slices.Contains(ids, a.focus) {
		a.focus = ids[0]
	}
}

func (a *App) moveFocus(delta int) {
	ids := a.focusable()
	if len(ids) == 0 {
		return
	}
	i := slices.Index(ids, a.focus)
	if i < 0 {
		a.focus = ids[0]
		return
	}
	a.focus = ids[(i+delta+len(ids))%len(ids)]
}

// activate clicks the focused button, moves focus to the first button that
// the click revealed, and schedules any timers the click armed.
func (a *App) activate() tea.Cmd {
	btn, ok := a.doc.ByID(a.focus)
	if !ok || !a.doc.Shown(btn) {
		return nil
	}

	before := a.focusable()
	logger.Debug("click %s", btn.ID)
	btn.Click()

	for _, id := range a.focusable() {
		if !slices.Contains(before, id) {
			a.focus = id
			break
		}
	}
	a.ensureFocus()
	return a.scheduleArmed()
}

// syncSpinner runs the spinner exactly while an analysis run is active.
func (a *App) syncSpinner() tea.Cmd {
	if len(a.ctrl.Running()) > 0 {
		return a.spin.Start()
	}
	a.spin.Stop()
	return nil
}

func (a *App) scheduleArmed() tea.Cmd {
	var cmds []tea.Cmd
	for _, arm := range a.loop.Armed() {
		cmds = append(cmds, tickCmd(arm.ID, arm.Interval))
	}
	return tea.Batch(cmds...)
}

func tickCmd(id eventloop.TimerID, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return TimerMsg{ID: id}
	})
}
