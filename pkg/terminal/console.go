// Package terminal is the single point of terminal I/O for the marquee.
// All output flows through Console so the scrolling line and command
// messages never interleave mid-line.
package terminal

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"
)

// DefaultWidth is used when the output is not a terminal or its size
// cannot be queried.
const DefaultWidth = 80

// rewind returns the cursor to column 0 and erases the whole line.
const rewind = "\r" + ansi.EraseEntireLine

// Console serializes every write to the terminal. The marquee owns the
// current line while it is dirty; any other write erases it first.
type Console struct {
	out           io.Writer
	fd            int // -1 when out is not a file
	isTTY         bool
	fallbackWidth int
	widthFunc     func() (int, error)

	mu    sync.Mutex
	dirty bool // current line holds in-place output
}

// Option configures a Console.
type Option func(*Console)

// WithFallbackWidth sets the width reported when the real width is unknown.
func WithFallbackWidth(n int) Option {
	return func(c *Console) {
		if n > 0 {
			c.fallbackWidth = n
		}
	}
}

// WithWidthFunc overrides the terminal size query.
func WithWidthFunc(fn func() (int, error)) Option {
	return func(c *Console) {
		c.widthFunc = fn
	}
}

// NewConsole creates a console writing to out.
// If out is a TTY its width is queried on every Width call.
func NewConsole(out io.Writer, opts ...Option) *Console {
	c := &Console{
		out:           out,
		fd:            -1,
		fallbackWidth: DefaultWidth,
	}
	if f, ok := out.(*os.File); ok {
		c.fd = int(f.Fd())
		c.isTTY = term.IsTerminal(c.fd)
	}
	if c.isTTY {
		c.widthFunc = func() (int, error) {
			w, _, err := term.GetSize(c.fd)
			return w, err
		}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsTTY returns whether the output is a terminal.
func (c *Console) IsTTY() bool {
	return c.isTTY
}

// Width returns the current column count, or the fallback width when
// the query fails or reports a non-positive size.
func (c *Console) Width() int {
	if c.widthFunc == nil {
		return c.fallbackWidth
	}
	w, err := c.widthFunc()
	if err != nil || w <= 0 {
		return c.fallbackWidth
	}
	return w
}

// WriteInPlace overwrites the current line with text.
func (c *Console) WriteInPlace(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, _ = io.WriteString(c.out, rewind+text)
	c.dirty = true
}

// ClearLine erases in-place output. No-op if the line is clean.
func (c *Console) ClearLine() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.dirty {
		return
	}
	_, _ = io.WriteString(c.out, rewind)
	c.dirty = false
}

// Println writes msg on its own line. Always appends \n.
func (c *Console) Println(msg string) {
	c.write(msg + "\n")
}

// Prompt writes msg without a trailing newline, leaving the cursor after it.
func (c *Console) Prompt(msg string) {
	c.write(msg)
}

// Write implements io.Writer so multi-line blocks (banner, help) go
// through the same lock.
func (c *Console) Write(p []byte) (int, error) {
	c.write(string(p))
	return len(p), nil
}

// write issues s as a single write, erasing dirty in-place output first.
func (c *Console) write(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.dirty {
		s = rewind + s
		c.dirty = false
	}
	_, _ = io.WriteString(c.out, s)
}
