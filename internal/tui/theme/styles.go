package theme

import "charm.land/lipgloss/v2"

// Styles contains all pre-built lipgloss styles for the TUI.
type Styles struct {
	Title         lipgloss.Style
	Panel         lipgloss.Style
	PanelTitle    lipgloss.Style
	Text          lipgloss.Style
	Muted         lipgloss.Style
	Success       lipgloss.Style
	ButtonNormal  lipgloss.Style
	ButtonFocused lipgloss.Style
	HintKey       lipgloss.Style
	HintDesc      lipgloss.Style
}
