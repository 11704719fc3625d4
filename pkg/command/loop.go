package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/dkoosis/marquee/pkg/terminal"
)

// DefaultPrompt is printed before every command line.
const DefaultPrompt = "> "

// Loop is the foreground command loop. ReadLine is its only suspension
// point; end of input is treated as exit.
type Loop struct {
	in         Input
	out        Output
	dispatcher *Dispatcher
	prompt     string
	log        *slog.Logger
}

// NewLoop creates a loop reading from in and dispatching through d.
func NewLoop(in Input, out Output, d *Dispatcher, log *slog.Logger) *Loop {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Loop{in: in, out: out, dispatcher: d, prompt: DefaultPrompt, log: log}
}

// Run reads and dispatches commands until exit or end of input. The
// render task has been joined by the time Run returns.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.out.Prompt(l.prompt)
		line, err := l.in.ReadLine()
		if errors.Is(err, terminal.ErrLineTooLong) {
			l.log.Debug("skipped over-long command line")
			l.dispatcher.fail(MsgLineTooLong)
			continue
		}
		if err != nil {
			// Finish the prompt line before shutting down.
			l.out.Println("")
			l.dispatcher.Dispatch(ctx, Command{Name: CmdExit})
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				l.log.Debug("command input closed", "err", err)
				return nil
			}
			return fmt.Errorf("reading command: %w", err)
		}

		cmd, ok := Parse(line)
		if !ok {
			continue
		}
		if l.dispatcher.Dispatch(ctx, cmd) == Quit {
			return nil
		}
	}
}
