// Package command reads interactive command lines and applies them to a
// running marquee.
package command

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

// ErrInvalidSpeed is reported for a set_speed argument that is not an integer.
var ErrInvalidSpeed = errors.New("invalid speed value")

// Command is one parsed input line.
type Command struct {
	Name string
	Arg  string // may be empty
}

// Parse trims line and splits it on the first whitespace run into name
// and argument. Returns false for a blank line.
func Parse(line string) (Command, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{}, false
	}
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return Command{Name: line}, true
	}
	return Command{
		Name: line[:i],
		Arg:  strings.TrimSpace(line[i:]),
	}, true
}

// SpeedResult is the outcome of parsing a set_speed argument.
type SpeedResult struct {
	Millis int
	Err    error
}

// OK reports whether the argument parsed.
func (r SpeedResult) OK() bool {
	return r.Err == nil
}

// ParseSpeed parses a millisecond count. Range checks are left to the
// state, which clamps to its floor.
func ParseSpeed(arg string) SpeedResult {
	ms, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return SpeedResult{Err: ErrInvalidSpeed}
	}
	return SpeedResult{Millis: ms}
}
