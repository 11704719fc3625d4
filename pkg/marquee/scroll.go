package marquee

import "strings"

// FallbackWidth is used when the surface reports a non-positive width.
const FallbackWidth = 80

// ScrollBuffer is the long buffer a fixed-width window rotates over:
// text + pad(width) + text + pad(width). Positions are codepoints.
type ScrollBuffer struct {
	source string
	width  int
	runes  []rune
}

// NewScrollBuffer builds the long buffer for text at the given width.
// Empty text is treated as a single blank.
func NewScrollBuffer(text string, width int) *ScrollBuffer {
	if width <= 0 {
		width = FallbackWidth
	}
	src := text
	if src == "" {
		src = " "
	}
	pad := strings.Repeat(" ", width)
	return &ScrollBuffer{
		source: text,
		width:  width,
		runes:  []rune(src + pad + src + pad),
	}
}

// Source returns the text the buffer was built from.
func (b *ScrollBuffer) Source() string {
	return b.source
}

// Width returns the window width.
func (b *ScrollBuffer) Width() int {
	return b.width
}

// Len returns the long buffer length in codepoints.
func (b *ScrollBuffer) Len() int {
	return len(b.runes)
}

// Slice returns the width-long window starting at cursor, wrapping
// around the end of the buffer.
func (b *ScrollBuffer) Slice(cursor int) string {
	n := len(b.runes)
	cursor %= n
	if cursor < 0 {
		cursor += n
	}
	if cursor+b.width <= n {
		return string(b.runes[cursor : cursor+b.width])
	}
	tail := b.runes[cursor:]
	head := b.runes[:b.width-len(tail)]
	out := make([]rune, 0, b.width)
	out = append(out, tail...)
	return string(append(out, head...))
}
