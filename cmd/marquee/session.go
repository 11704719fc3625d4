package main

import (
	"context"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/dkoosis/marquee/internal/config"
	"github.com/dkoosis/marquee/pkg/command"
	"github.com/dkoosis/marquee/pkg/marquee"
	"github.com/dkoosis/marquee/pkg/terminal"
)

const exitMessage = "Program exited."

// runSession drives one interactive session and returns once the render
// task has been joined.
func runSession(ctx context.Context, cfg *config.ResolvedConfig, stdin io.Reader, stdout io.Writer) error {
	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	logger.Info("session starting",
		"config", cfg.ConfigPath,
		"text_source", cfg.TextSource,
		"speed", cfg.Speed,
		"speed_source", cfg.SpeedSource)

	// Close stdin on cancel so a pipe read returns. A terminal read is not
	// interrupted by Close; the context reader below stops waiting on it.
	if c, ok := stdin.(io.Closer); ok {
		stopClose := context.AfterFunc(ctx, func() { _ = c.Close() })
		defer stopClose()
	}

	console := terminal.NewConsole(stdout, terminal.WithFallbackWidth(cfg.FallbackWidth))
	renderer := lipgloss.NewRenderer(stdout)
	styles := command.NewStyles(renderer)
	logger.Debug("console ready", "tty", console.IsTTY(), "width", console.Width())

	m := marquee.New(ctx, console, marquee.Options{
		Text:     cfg.Text,
		Speed:    cfg.Speed,
		MinSpeed: cfg.MinSpeed,
		IdlePoll: cfg.IdlePoll,
		Logger:   logger.With("component", "marquee"),
	})

	in := terminal.NewContextReader(ctx, terminal.NewLineReader(stdin))
	dispatcher := command.NewDispatcher(m, in, console, styles, logger.With("component", "command"))
	if !cfg.NoBanner {
		printBanner(console, renderer, styles)
		dispatcher.Help()
	}

	err = command.NewLoop(in, console, dispatcher, logger).Run(ctx)
	console.Println(styles.Muted.Render(exitMessage))
	logger.Info("session finished", "err", err)
	return err
}
