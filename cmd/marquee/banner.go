package main

import (
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/dkoosis/marquee/internal/version"
	"github.com/dkoosis/marquee/pkg/command"
)

func printBanner(w io.Writer, r *lipgloss.Renderer, styles command.Styles) {
	box := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 2)
	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.Title.Render("Welcome to marquee"),
		styles.Muted.Render("version "+version.String()),
		"Type 'help' to list commands.",
	)
	_, _ = io.WriteString(w, box.Render(body)+"\n")
}
