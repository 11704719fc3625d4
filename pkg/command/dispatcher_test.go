package command

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDispatcher(in Input) (*Dispatcher, *fakeController, *recordingOutput) {
	ctrl := newFakeController()
	out := &recordingOutput{}
	if in == nil {
		in = newScriptedInput()
	}
	return NewDispatcher(ctrl, in, out, PlainStyles(), nil), ctrl, out
}

func dispatchLine(t *testing.T, d *Dispatcher, line string) Action {
	t.Helper()
	cmd, ok := Parse(line)
	require.True(t, ok, "line %q did not parse", line)
	return d.Dispatch(context.Background(), cmd)
}

func TestDispatcher_Help_ListsEveryCommand(t *testing.T) {
	d, _, out := newTestDispatcher(nil)
	assert.Equal(t, Continue, dispatchLine(t, d, "help"))

	text := out.Text()
	assert.True(t, strings.HasPrefix(text, "Available commands:"))
	for _, name := range []string{CmdHelp, CmdStart, CmdStop, CmdText, CmdSpeed, CmdStatus, CmdExit} {
		assert.Contains(t, text, "  "+name, "help missing %s", name)
	}
}

func TestDispatcher_Help_AlignsDescriptions(t *testing.T) {
	d, _, out := newTestDispatcher(nil)
	d.Help()

	lines := strings.Split(out.Text(), "\n")[1:]
	col := strings.Index(lines[0], " : ")
	require.Positive(t, col)
	for _, line := range lines {
		assert.Equal(t, col, strings.Index(line, " : "), "misaligned: %q", line)
	}
}

func TestDispatcher_Start_When_AlreadyRunning(t *testing.T) {
	d, ctrl, out := newTestDispatcher(nil)
	dispatchLine(t, d, "set_speed 300")

	dispatchLine(t, d, "start_marquee")
	assert.Equal(t, MsgStarted, out.Last())
	dispatchLine(t, d, "start_marquee")
	assert.Equal(t, MsgAlreadyRunning, out.Last())

	assert.Equal(t, 1, ctrl.starts)
	assert.Equal(t, 300*time.Millisecond, ctrl.speed)
	assert.Equal(t, "Hello, Marquee!", ctrl.text)
}

func TestDispatcher_Stop_When_NotRunning(t *testing.T) {
	d, ctrl, out := newTestDispatcher(nil)
	dispatchLine(t, d, "stop_marquee")
	assert.Equal(t, MsgNotRunning, out.Last())
	assert.Zero(t, ctrl.stops)

	dispatchLine(t, d, "start_marquee")
	dispatchLine(t, d, "stop_marquee")
	assert.Equal(t, MsgStopped, out.Last())
	assert.Equal(t, 1, ctrl.stops)
}

func TestDispatcher_SetText_InlineArgument(t *testing.T) {
	d, ctrl, out := newTestDispatcher(nil)
	dispatchLine(t, d, "set_text Hello")

	assert.Equal(t, "Hello", ctrl.text)
	assert.Equal(t, `Marquee text set to: "Hello"`, out.Last())
}

func TestDispatcher_SetText_PromptsForMissingArgument(t *testing.T) {
	d, ctrl, out := newTestDispatcher(newScriptedInput("  Scrolling along  "))
	dispatchLine(t, d, "set_text")

	assert.Equal(t, []string{PromptText}, out.prompts)
	assert.Equal(t, "Scrolling along", ctrl.text)
}

func TestDispatcher_SetText_When_PromptAnswerEmpty(t *testing.T) {
	d, ctrl, out := newTestDispatcher(newScriptedInput("   "))
	assert.Equal(t, Continue, dispatchLine(t, d, "set_text"))

	assert.Equal(t, MsgNoText, out.Last())
	assert.Equal(t, "Hello, Marquee!", ctrl.text, "text unchanged")
}

func TestDispatcher_SetText_When_InputEndsDuringPrompt(t *testing.T) {
	d, ctrl, _ := newTestDispatcher(newScriptedInput())
	assert.Equal(t, Quit, dispatchLine(t, d, "set_text"))
	assert.Equal(t, 1, ctrl.shutdowns)
}

func TestDispatcher_SetText_When_PromptAnswerTooLong(t *testing.T) {
	d, ctrl, out := newTestDispatcher(newScriptedInput(overLongLine))
	assert.Equal(t, Continue, dispatchLine(t, d, "set_text"))

	assert.Equal(t, MsgLineTooLong, out.Last())
	assert.Equal(t, "Hello, Marquee!", ctrl.text, "text unchanged")
	assert.Zero(t, ctrl.shutdowns)
}

func TestDispatcher_SetSpeed_When_PromptAnswerTooLong(t *testing.T) {
	d, ctrl, out := newTestDispatcher(newScriptedInput(overLongLine))
	assert.Equal(t, Continue, dispatchLine(t, d, "set_speed"))

	assert.Equal(t, MsgLineTooLong, out.Last())
	assert.Equal(t, 150*time.Millisecond, ctrl.speed)
}

func TestDispatcher_SetSpeed(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    time.Duration
		wantMsg string
	}{
		{"at floor", "set_speed 10", 10 * time.Millisecond, "Marquee speed set to 10 ms"},
		{"above floor", "set_speed 250", 250 * time.Millisecond, "Marquee speed set to 250 ms"},
		{"below floor clamps", "set_speed 3", 10 * time.Millisecond, "Marquee speed set to 10 ms"},
		{"negative clamps", "set_speed -40", 10 * time.Millisecond, "Marquee speed set to 10 ms"},
		{"not an integer", "set_speed fast", 150 * time.Millisecond, MsgInvalidSpeed},
		{"unit suffix", "set_speed 20ms", 150 * time.Millisecond, MsgInvalidSpeed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ctrl, out := newTestDispatcher(nil)
			assert.Equal(t, Continue, dispatchLine(t, d, tt.line))
			assert.Equal(t, tt.want, ctrl.speed)
			assert.Equal(t, tt.wantMsg, out.Last())
		})
	}
}

func TestDispatcher_SetSpeed_PromptsForMissingArgument(t *testing.T) {
	d, ctrl, out := newTestDispatcher(newScriptedInput("75"))
	dispatchLine(t, d, "set_speed")

	assert.Equal(t, []string{PromptSpeed}, out.prompts)
	assert.Equal(t, 75*time.Millisecond, ctrl.speed)
}

func TestDispatcher_SetSpeed_When_PromptAnswerEmpty(t *testing.T) {
	d, ctrl, out := newTestDispatcher(newScriptedInput(""))
	dispatchLine(t, d, "set_speed")

	assert.Equal(t, MsgInvalidSpeed, out.Last())
	assert.Equal(t, 150*time.Millisecond, ctrl.speed)
}

func TestDispatcher_SetSpeed_When_HugeValue(t *testing.T) {
	d, ctrl, _ := newTestDispatcher(nil)
	dispatchLine(t, d, "set_speed 9223372036854775807")
	assert.Positive(t, ctrl.speed, "overflowing values must not wrap negative")
}

func TestDispatcher_Status(t *testing.T) {
	d, _, out := newTestDispatcher(nil)
	dispatchLine(t, d, "status")
	assert.Equal(t, `Marquee is stopped at 150 ms: "Hello, Marquee!"`, out.Last())

	dispatchLine(t, d, "start_marquee")
	dispatchLine(t, d, "status")
	assert.Equal(t, `Marquee is running at 150 ms: "Hello, Marquee!"`, out.Last())
}

func TestDispatcher_Unknown_When_AnyOtherName(t *testing.T) {
	for _, line := range []string{"Help", "start", "quit", "set_text_now hi"} {
		d, ctrl, out := newTestDispatcher(nil)
		assert.Equal(t, Continue, dispatchLine(t, d, line))
		assert.Equal(t, MsgUnknown, out.Last())
		assert.Zero(t, ctrl.shutdowns)
	}
}

func TestDispatcher_Exit_ShutsDown(t *testing.T) {
	d, ctrl, _ := newTestDispatcher(nil)
	dispatchLine(t, d, "start_marquee")

	assert.Equal(t, Quit, dispatchLine(t, d, "exit"))
	assert.Equal(t, 1, ctrl.shutdowns)
	assert.False(t, ctrl.running)
}
