package command

import "github.com/charmbracelet/lipgloss"

// Styles formats command output. The scrolled text itself is never styled.
type Styles struct {
	Title   lipgloss.Style
	Command lipgloss.Style
	Info    lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
}

// NewStyles builds styles bound to r, so color is only emitted when r's
// output supports it.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title:   r.NewStyle().Bold(true),
		Command: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#005FAF", Dark: "#5FAFFF"}),
		Info:    r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#008700", Dark: "#87D787"}),
		Error:   r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}),
		Muted:   r.NewStyle().Faint(true),
	}
}

// PlainStyles returns styles that render text unchanged.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{Title: plain, Command: plain, Info: plain, Error: plain, Muted: plain}
}
