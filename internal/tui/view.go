package tui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/progress"
	"charm.land/lipgloss/v2"
	"github.com/gridstudy/loadflow/internal/page"
	"github.com/gridstudy/loadflow/internal/tui/theme"
	"github.com/gridstudy/loadflow/internal/wizard"
)

const (
	minContentWidth = 40
	maxContentWidth = 100
)

func (a *App) contentWidth() int {
	w := a.width - 4
	return min(max(w, minContentWidth), maxContentWidth)
}

// render draws every shown top-level panel followed by the hint bar.
func (a *App) render() string {
	t := theme.Current()
	width := a.contentWidth()

	panels := a.panels()
	sections := []string{t.S().Title.Render("Load Flow Analysis"), ""}
	for i, p := range panels {
		if !p.Visible() {
			continue
		}
		sections = append(sections, a.renderPanel(p, i+1, len(panels), width))
	}
	sections = append(sections, "", renderHintBar(
		"tab/→", "next",
		"shift+tab/←", "previous",
		"enter", "select",
		"q", "quit",
	))
	return strings.Join(sections, "\n")
}

func (a *App) panels() []*page.Element {
	var out []*page.Element
	for _, e := range a.doc.Elements() {
		if e.Kind == page.KindPanel && e.Parent == "" {
			out = append(out, e)
		}
	}
	return out
}

func (a *App) renderPanel(p *page.Element, n, total, width int) string {
	s := theme.Current().S()
	inner := width - 4

	lines := []string{s.PanelTitle.Render(fmt.Sprintf("Step %d of %d: %s", n, total, p.Label))}
	var row []Button
	flush := func() {
		if len(row) > 0 {
			lines = append(lines, NewButtonBar(row).Render())
			row = nil
		}
	}

	for _, child := range a.doc.Children(p.ID) {
		if !child.Visible() {
			continue
		}
		if child.Kind != page.KindButton {
			flush()
		}
		switch child.Kind {
		case page.KindButton:
			row = append(row, a.button(child))
		case page.KindText:
			if child.Text() != "" {
				lines = append(lines, s.Text.Render(child.Text()))
			}
		case page.KindProgress:
			lines = append(lines, a.renderProgress(child, inner)...)
		case page.KindResults:
			if child.Label != "" {
				lines = append(lines, "", s.PanelTitle.Render(child.Label))
			}
			lines = append(lines, renderMarkdown(child.Text(), inner))
		case page.KindPanel:
			lines = append(lines, a.renderPanel(child, n, total, inner))
		}
	}
	flush()

	return s.Panel.Width(width).Render(strings.Join(lines, "\n"))
}

func (a *App) button(e *page.Element) Button {
	state := ButtonNormal
	switch {
	case !e.Clickable():
		state = ButtonDisabled
	case e.ID == a.focus:
		state = ButtonFocused
	}
	label := e.Label
	if label == "" {
		label = e.ID
	}
	return Button{Label: label, State: state}
}

// renderProgress draws each bar inside a progress container. The bar keeps
// its gradient while it carries the animated class and turns solid once the
// class is removed. A spinner precedes the label while any run is active.
func (a *App) renderProgress(container *page.Element, width int) []string {
	t := theme.Current()
	var lines []string
	for _, bar := range a.doc.Children(container.ID) {
		if bar.Kind != page.KindBar || !bar.Visible() {
			continue
		}
		opts := []progress.Option{
			progress.WithWidth(max(width-24, 10)),
			progress.WithoutPercentage(),
		}
		label := t.S().Text.Render(bar.Text())
		if bar.HasClass(wizard.ClassAnimated) {
			opts = append(opts, progress.WithColors(lipgloss.Color(t.Primary), lipgloss.Color(t.Secondary)))
		} else {
			opts = append(opts, progress.WithColors(lipgloss.Color(t.Success)))
			label = t.S().Success.Render(bar.Text())
		}
		if a.spin.Active() {
			label = a.spin.View() + " " + label
		}
		m := progress.New(opts...)
		lines = append(lines, m.ViewAs(float64(bar.Width())/100)+"  "+label)
	}
	return lines
}
