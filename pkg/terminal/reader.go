package terminal

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
)

// MaxLineLength is the longest command line accepted, in bytes.
const MaxLineLength = 1024 * 1024

// ErrLineTooLong is returned for a line longer than the reader's limit.
// The rest of that line has been consumed; the next read starts on the
// following line.
var ErrLineTooLong = errors.New("input line too long")

// LineReader reads commands one line at a time.
type LineReader struct {
	r   *bufio.Reader
	max int
}

// NewLineReader wraps r. Lines up to MaxLineLength bytes are accepted.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReaderSize(r, 64*1024), max: MaxLineLength}
}

// ReadLine blocks until a full line is available. The trailing newline
// (and a Windows \r) is stripped. Returns io.EOF at end of input and
// ErrLineTooLong for an over-long line.
func (r *LineReader) ReadLine() (string, error) {
	var line []byte
	tooLong := false
	for {
		chunk, isPrefix, err := r.r.ReadLine()
		if err != nil {
			// An unterminated last line may end on a chunk boundary.
			if !errors.Is(err, io.EOF) || (len(line) == 0 && !tooLong) {
				return "", err
			}
			break
		}
		if !tooLong {
			if len(line)+len(chunk) > r.max {
				tooLong = true
				line = nil
			} else {
				line = append(line, chunk...)
			}
		}
		if !isPrefix {
			break
		}
	}
	if tooLong {
		return "", ErrLineTooLong
	}
	return strings.TrimSuffix(string(line), "\r"), nil
}

type lineSource interface {
	ReadLine() (string, error)
}

type readResult struct {
	line string
	err  error
}

// ContextReader returns from ReadLine as soon as its context is done,
// even while the underlying read is still blocked (a terminal stdin is
// not interrupted by Close). At most one underlying read is in flight.
type ContextReader struct {
	ctx     context.Context
	src     lineSource
	results chan readResult
	pending bool
}

// NewContextReader wraps src so reads give up when ctx is done.
func NewContextReader(ctx context.Context, src lineSource) *ContextReader {
	return &ContextReader{ctx: ctx, src: src, results: make(chan readResult, 1)}
}

// ReadLine returns the next line from the source, or ctx.Err() once the
// context is done. Not safe for concurrent use.
func (c *ContextReader) ReadLine() (string, error) {
	if err := c.ctx.Err(); err != nil {
		return "", err
	}
	if !c.pending {
		c.pending = true
		go func() {
			line, err := c.src.ReadLine()
			c.results <- readResult{line: line, err: err}
		}()
	}
	select {
	case res := <-c.results:
		c.pending = false
		return res.line, res.err
	case <-c.ctx.Done():
		return "", c.ctx.Err()
	}
}
