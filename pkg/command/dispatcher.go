package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/dkoosis/marquee/pkg/marquee"
	"github.com/dkoosis/marquee/pkg/terminal"
)

// Command names.
const (
	CmdHelp   = "help"
	CmdStart  = "start_marquee"
	CmdStop   = "stop_marquee"
	CmdText   = "set_text"
	CmdSpeed  = "set_speed"
	CmdStatus = "status"
	CmdExit   = "exit"
)

// User-facing messages.
const (
	MsgStarted        = "Marquee started."
	MsgAlreadyRunning = "Marquee is already running."
	MsgStopped        = "Marquee stopped."
	MsgNotRunning     = "Marquee is not running."
	MsgNoText         = "No text provided."
	MsgInvalidSpeed   = "Invalid speed value."
	MsgUnknown        = "Unknown command. Type 'help' to list commands."
	MsgLineTooLong    = "Input line too long."

	PromptText  = "Enter new marquee text: "
	PromptSpeed = "Enter speed in milliseconds: "
)

// shutdownTimeout bounds how long exit waits for the render task.
const shutdownTimeout = 5 * time.Second

const maxSpeedMillis = math.MaxInt64 / int64(time.Millisecond)

// Action tells the command loop whether to keep reading.
type Action int

const (
	Continue Action = iota
	Quit
)

// Controller is the marquee surface the dispatcher mutates.
type Controller interface {
	Start() bool
	Stop(ctx context.Context) (bool, error)
	SetText(text string) string
	SetSpeed(d time.Duration) time.Duration
	Status() marquee.Snapshot
	Shutdown(ctx context.Context) error
}

// Input is a blocking line source.
type Input interface {
	ReadLine() (string, error)
}

// Output receives command messages and prompts.
type Output interface {
	Println(msg string)
	Prompt(msg string)
}

type commandDef struct {
	name  string
	usage string
	desc  string
	run   func(ctx context.Context, arg string) Action
}

// Dispatcher maps command names to their effect on the marquee.
type Dispatcher struct {
	ctrl   Controller
	in     Input
	out    Output
	styles Styles
	log    *slog.Logger

	defs   []commandDef
	lookup map[string]commandDef
}

// NewDispatcher creates a dispatcher. in is used to prompt for missing
// arguments.
func NewDispatcher(ctrl Controller, in Input, out Output, styles Styles, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	d := &Dispatcher{ctrl: ctrl, in: in, out: out, styles: styles, log: log}
	d.defs = []commandDef{
		{CmdHelp, "help", "displays the commands and its description", d.help},
		{CmdStart, "start_marquee", "starts the marquee animation", d.start},
		{CmdStop, "stop_marquee", "stops the marquee animation", d.stop},
		{CmdText, "set_text <text>", "accepts a text input and displays it as a marquee", d.setText},
		{CmdSpeed, "set_speed <ms>", "sets the marquee animation refresh in milliseconds", d.setSpeed},
		{CmdStatus, "status", "shows the marquee state, speed and text", d.status},
		{CmdExit, "exit", "terminates the console", d.exit},
	}
	d.lookup = make(map[string]commandDef, len(d.defs))
	for _, def := range d.defs {
		d.lookup[def.name] = def
	}
	return d
}

// Dispatch runs cmd. Unknown commands are reported and never end the loop.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd Command) Action {
	def, ok := d.lookup[cmd.Name]
	if !ok {
		d.log.Debug("unknown command", "name", cmd.Name)
		d.fail(MsgUnknown)
		return Continue
	}
	d.log.Debug("dispatch", "command", cmd.Name, "arg", cmd.Arg)
	return def.run(ctx, cmd.Arg)
}

// Help writes the command list.
func (d *Dispatcher) Help() {
	d.help(context.Background(), "")
}

func (d *Dispatcher) help(_ context.Context, _ string) Action {
	width := 0
	for _, def := range d.defs {
		width = max(width, runewidth.StringWidth(def.usage))
	}

	var sb strings.Builder
	sb.WriteString(d.styles.Title.Render("Available commands:"))
	for _, def := range d.defs {
		sb.WriteString("\n  ")
		sb.WriteString(d.styles.Command.Render(runewidth.FillRight(def.usage, width)))
		sb.WriteString(" : ")
		sb.WriteString(d.styles.Muted.Render(def.desc))
	}
	d.out.Println(sb.String())
	return Continue
}

func (d *Dispatcher) start(_ context.Context, _ string) Action {
	if !d.ctrl.Start() {
		d.fail(MsgAlreadyRunning)
		return Continue
	}
	d.info(MsgStarted)
	return Continue
}

func (d *Dispatcher) stop(ctx context.Context, _ string) Action {
	stopped, err := d.ctrl.Stop(ctx)
	if err != nil {
		d.log.Warn("stop not acknowledged", "err", err)
	}
	if !stopped {
		d.fail(MsgNotRunning)
		return Continue
	}
	d.info(MsgStopped)
	return Continue
}

func (d *Dispatcher) setText(ctx context.Context, arg string) Action {
	if arg == "" {
		line, err := d.ask(PromptText)
		if errors.Is(err, terminal.ErrLineTooLong) {
			d.fail(MsgLineTooLong)
			return Continue
		}
		if err != nil {
			return d.exit(ctx, "")
		}
		arg = strings.TrimSpace(line)
	}
	if arg == "" {
		d.fail(MsgNoText)
		return Continue
	}
	stored := d.ctrl.SetText(arg)
	d.info(`Marquee text set to: "` + stored + `"`)
	return Continue
}

func (d *Dispatcher) setSpeed(ctx context.Context, arg string) Action {
	if arg == "" {
		line, err := d.ask(PromptSpeed)
		if errors.Is(err, terminal.ErrLineTooLong) {
			d.fail(MsgLineTooLong)
			return Continue
		}
		if err != nil {
			return d.exit(ctx, "")
		}
		arg = line
	}
	res := ParseSpeed(arg)
	if !res.OK() {
		d.log.Debug("rejected speed", "arg", arg, "err", res.Err)
		d.fail(MsgInvalidSpeed)
		return Continue
	}
	ms := min(int64(res.Millis), maxSpeedMillis)
	stored := d.ctrl.SetSpeed(time.Duration(ms) * time.Millisecond)
	d.info(fmt.Sprintf("Marquee speed set to %d ms", stored.Milliseconds()))
	return Continue
}

func (d *Dispatcher) status(_ context.Context, _ string) Action {
	snap := d.ctrl.Status()
	d.info(fmt.Sprintf(`Marquee is %s at %d ms: "%s"`, snap.State, snap.Speed.Milliseconds(), snap.Text))
	return Continue
}

func (d *Dispatcher) exit(ctx context.Context, _ string) Action {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := d.ctrl.Shutdown(ctx); err != nil && !errors.Is(err, context.Canceled) {
		d.log.Warn("render task did not stop cleanly", "err", err)
	}
	return Quit
}

// ask prompts for a follow-up line.
func (d *Dispatcher) ask(prompt string) (string, error) {
	d.out.Prompt(prompt)
	return d.in.ReadLine()
}

func (d *Dispatcher) info(msg string) {
	d.out.Println(d.styles.Info.Render(msg))
}

func (d *Dispatcher) fail(msg string) {
	d.out.Println(d.styles.Error.Render(msg))
}
