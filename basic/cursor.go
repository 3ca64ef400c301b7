// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package basic

import "unicode/utf8"

// A cursor is a position within a line of source text. Consuming text
// advances the position without copying the line.
type cursor struct {
	pos  int    // byte offset of the cursor within the line
	full string // the full line as originally read
}

func newCursor(line string) cursor {
	return cursor{full: line}
}

func (c cursor) String() string {
	return c.full[c.pos:]
}

func (c cursor) isEmpty() bool {
	return c.pos >= len(c.full)
}

func (c cursor) consume(n int) cursor {
	c.pos += n
	return c
}

// Return the first character at the cursor and its encoded size.
func (c cursor) peekRune() (rune, int) {
	return utf8.DecodeRuneInString(c.full[c.pos:])
}

func (c cursor) scanWhile(fn func(c byte) bool) int {
	i := c.pos
	for ; i < len(c.full) && fn(c.full[i]); i++ {
	}
	return i - c.pos
}

func (c cursor) consumeWhile(fn func(c byte) bool) (consumed string, remain cursor) {
	n := c.scanWhile(fn)
	return c.full[c.pos : c.pos+n], c.consume(n)
}

func (c cursor) consumeWhitespace() cursor {
	return c.consume(c.scanWhile(whitespace))
}

//
// character helper functions
//

func whitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\v' || c == '\f'
}

func decimal(c byte) bool {
	return c >= '0' && c <= '9'
}
