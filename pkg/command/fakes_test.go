package command

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/dkoosis/marquee/pkg/marquee"
	"github.com/dkoosis/marquee/pkg/terminal"
)

// fakeController mirrors the marquee's observable contract without
// spawning a render task.
type fakeController struct {
	mu        sync.Mutex
	text      string
	speed     time.Duration
	floor     time.Duration
	running   bool
	shutdown  bool
	starts    int
	stops     int
	shutdowns int
}

func newFakeController() *fakeController {
	return &fakeController{text: "Hello, Marquee!", speed: 150 * time.Millisecond, floor: 10 * time.Millisecond}
}

func (f *fakeController) Start() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.running || f.shutdown {
		return false
	}
	f.running = true
	f.starts++
	return true
}

func (f *fakeController) Stop(context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.running {
		return false, nil
	}
	f.running = false
	f.stops++
	return true, nil
}

func (f *fakeController) SetText(text string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.text = text
	return text
}

func (f *fakeController) SetSpeed(d time.Duration) time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d < f.floor {
		d = f.floor
	}
	f.speed = d
	return d
}

func (f *fakeController) Status() marquee.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := marquee.Stopped
	if f.running {
		st = marquee.Running
	}
	return marquee.Snapshot{Text: f.text, Speed: f.speed, State: st}
}

func (f *fakeController) Shutdown(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.running = false
	f.shutdown = true
	f.shutdowns++
	return nil
}

// overLongLine makes scriptedInput fail that read with terminal.ErrLineTooLong.
const overLongLine = "\x00over-long"

// scriptedInput returns its lines in order, then io.EOF.
type scriptedInput struct {
	lines []string
}

func newScriptedInput(lines ...string) *scriptedInput {
	return &scriptedInput{lines: lines}
}

func (s *scriptedInput) ReadLine() (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	if line == overLongLine {
		return "", terminal.ErrLineTooLong
	}
	return line, nil
}

// recordingOutput keeps messages and prompts separately.
type recordingOutput struct {
	mu      sync.Mutex
	lines   []string
	prompts []string
}

func (o *recordingOutput) Println(msg string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lines = append(o.lines, msg)
}

func (o *recordingOutput) Prompt(msg string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.prompts = append(o.prompts, msg)
}

func (o *recordingOutput) Text() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return strings.Join(o.lines, "\n")
}

func (o *recordingOutput) Last() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.lines) == 0 {
		return ""
	}
	return o.lines[len(o.lines)-1]
}
