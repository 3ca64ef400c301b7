// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package listing implements a tokenized BASIC program lister.
//
// Lines are listed in the same lowercase, canonical-mnemonic form the
// converter accepts, so a listing can be converted back into an identical
// program image.
package listing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/retrotype/petscii"
)

var (
	// ErrSyntax is returned when a line contains a byte that is neither a
	// character nor a BASIC V2 token.
	ErrSyntax = errors.New("?SYNTAX  ERROR")

	// ErrTruncated is returned when a line runs past the end of the image.
	ErrTruncated = errors.New("program image truncated")

	// ErrLoop is returned when following line links does not reach the end
	// of the program.
	ErrLoop = errors.New("line links do not terminate")
)

// An Image is a program image as stored in a program file: a two-byte load
// address followed by the program.
type Image []byte

// Load returns the load address of the image.
func (m Image) Load() uint16 {
	if len(m) < 2 {
		return 0
	}
	return uint16(m[0]) | uint16(m[1])<<8
}

func (m Image) read(addr uint16) (byte, error) {
	i := int(addr-m.Load()) + 2
	if i < 2 || i >= len(m) {
		return 0, ErrTruncated
	}
	return m[i], nil
}

func (m Image) readAddr(addr uint16) (uint16, error) {
	lo, err := m.read(addr)
	if err != nil {
		return 0, err
	}
	hi, err := m.read(addr + 1)
	if err != nil {
		return 0, err
	}
	return uint16(lo) | uint16(hi)<<8, nil
}

// List decodes the BASIC line whose record starts at address 'addr'. It
// returns the listed 'line' and the address of the 'next' record. At the
// end of the program it returns an empty line and a next address of 0.
func List(m Image, addr uint16) (line string, next uint16, err error) {
	next, err = m.readAddr(addr)
	if err != nil || next == 0 {
		return "", 0, err
	}
	num, err := m.readAddr(addr + 2)
	if err != nil {
		return "", 0, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d ", num)

	inQuotes, inRemark := false, false
	for pc := addr + 4; ; pc++ {
		c, err := m.read(pc)
		if err != nil {
			return b.String(), 0, err
		}
		if c == 0 {
			break
		}

		if c >= 0x80 && !inQuotes && !inRemark && c != petscii.Pi {
			kw, ok := petscii.Keyword(c)
			if !ok {
				return b.String(), 0, ErrSyntax
			}
			b.WriteString(kw)
			inRemark = c == petscii.REM
			continue
		}

		if c == petscii.Quote {
			inQuotes = !inQuotes
		}
		b.WriteString(charString(c))
	}
	return b.String(), next, nil
}

// ListAll lists every line of the program image.
func ListAll(m Image) ([]string, error) {
	var lines []string
	addr := m.Load()
	for n := 0; n <= len(m); n++ {
		line, next, err := List(m, addr)
		if err != nil {
			return lines, err
		}
		if next == 0 {
			return lines, nil
		}
		lines = append(lines, line)
		addr = next
	}
	return lines, ErrLoop
}

// Return the source text of a byte that is not a keyword token.
func charString(c byte) string {
	switch {
	case c >= 'A' && c <= 'Z':
		return string(rune(c + 32))
	case c >= 0x20 && c < 0x5b:
		return string(rune(c))
	}
	for _, tok := range petscii.Control {
		if tok.Value == c {
			return tok.Text
		}
	}
	return petscii.HexText(c)
}
