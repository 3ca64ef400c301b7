// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package basic

import "github.com/beevik/retrotype/petscii"

// A Scanner converts statement text, with canonical control mnemonics and
// without its line number, into the bytes stored for the line.
type Scanner struct {
	// Shorthand enables the shift/commodore-key mnemonic table.
	Shorthand bool
}

// scanState tracks the context of the scan position within a line.
type scanState struct {
	cur      cursor
	inQuotes bool // inside a string literal
	inRemark bool // after a REM token
	out      []byte
}

// Scan tokenizes the statement. Control mnemonics are recognized anywhere
// in the line. Keywords are recognized only outside string literals and
// before any REM token. Every other character is stored as its character
// code. The result always ends with a single zero byte.
func (s Scanner) Scan(stmt string) []byte {
	st := scanState{
		cur: newCursor(stmt),
		out: make([]byte, 0, len(stmt)+1),
	}
	for !st.cur.isEmpty() {
		b, n := s.next(st.cur, !(st.inQuotes || st.inRemark))
		st.out = append(st.out, b)
		st.cur = st.cur.consume(n)

		switch b {
		case petscii.Quote:
			st.inQuotes = !st.inQuotes
		case petscii.REM:
			st.inRemark = true
		}
	}
	return append(st.out, 0)
}

// Return the byte encoded at the cursor and the number of bytes of text it
// consumed.
func (s Scanner) next(c cursor, tokenize bool) (byte, int) {
	text := c.String()
	if tok, ok := petscii.Control.Match(text); ok {
		return tok.Value, len(tok.Text)
	}
	if b, n, ok := petscii.MatchHex(text); ok {
		return b, n
	}
	if s.Shorthand {
		if tok, ok := petscii.Shorthand.Match(text); ok {
			return tok.Value, len(tok.Text)
		}
	}
	if tokenize {
		if tok, ok := petscii.Keywords.Match(text); ok {
			return tok.Value, len(tok.Text)
		}
	}
	r, n := c.peekRune()
	return petscii.FromRune(r), n
}
