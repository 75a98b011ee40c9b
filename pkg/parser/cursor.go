package parser

import (
	"strings"
	"unicode/utf8"
)

// Cursor is a position in the source text plus the grammar context.
// It is a value: rules return an advanced copy and leave their input untouched,
// so trying an alternative on the same cursor is a plain retry.
type Cursor[C any] struct {
	src string // whole document
	pos int
	end int // exclusive limit for sub-parses
	Ctx C
}

// NewCursor returns a cursor at the start of src.
func NewCursor[C any](src string, ctx C) Cursor[C] {
	return Cursor[C]{src: src, end: len(src), Ctx: ctx}
}

// Rest returns the unparsed text up to the cursor limit.
func (c Cursor[C]) Rest() string {
	return c.src[c.pos:c.end]
}

func (c Cursor[C]) Len() int {
	return c.end - c.pos
}

func (c Cursor[C]) Empty() bool {
	return c.pos >= c.end
}

// Offset is the byte offset from the start of the document.
func (c Cursor[C]) Offset() int {
	return c.pos
}

// Line is the 1-based line number of the cursor position.
func (c Cursor[C]) Line() int {
	return strings.Count(c.src[:c.pos], "\n") + 1
}

// AtLineStart reports whether the cursor is at the beginning of a physical line.
func (c Cursor[C]) AtLineStart() bool {
	return c.pos == 0 || c.src[c.pos-1] == '\n'
}

func (c Cursor[C]) HasPrefix(s string) bool {
	return strings.HasPrefix(c.Rest(), s)
}

// Advance moves the cursor n bytes forward, never past its limit.
func (c Cursor[C]) Advance(n int) Cursor[C] {
	c.pos = min(c.pos+n, c.end)
	return c
}

// Take splits off the next n bytes.
func (c Cursor[C]) Take(n int) (Cursor[C], string) {
	n = min(n, c.Len())
	s := c.src[c.pos : c.pos+n]
	c.pos += n
	return c, s
}

// Slice returns a cursor limited to the next n bytes. Offsets stay absolute.
func (c Cursor[C]) Slice(n int) Cursor[C] {
	c.end = min(c.pos+n, c.end)
	return c
}

// peekRune returns the next rune and its size, or utf8.RuneError and 0 at the end.
func (c Cursor[C]) peekRune() (rune, int) {
	if c.Empty() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(c.Rest())
}
