// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package checksum implements the per-line verification codes printed
// alongside Ahoy! magazine type-in listings by its "Bug Repellent"
// programs. Three versions of the program were published, each computing
// the code differently.
//
// Every algorithm folds a line's tokenized bytes (and, for the last version,
// its line number) into an accumulator whose low byte is shown as two
// letters A through P, high nibble first.
package checksum

// A Code is a two-letter verification code.
type Code [2]byte

func (c Code) String() string {
	return string(c[:])
}

// A Result pairs a BASIC line number with its verification code.
type Result struct {
	Line uint16
	Code Code
}

// An Algorithm computes the verification code of one line from the line's
// number and tokenized bytes, including the zero terminator.
type Algorithm interface {
	Sum(line uint16, b []byte) Code
}

// A LineRecord is anything that has a line number and a byte record.
type LineRecord interface {
	LineNumber() uint16
	Record() []byte
}

// Lines computes the verification code of each line.
func Lines[T LineRecord](a Algorithm, lines []T) []Result {
	results := make([]Result, len(lines))
	for i, l := range lines {
		results[i] = Result{Line: l.LineNumber(), Code: a.Sum(l.LineNumber(), l.Record())}
	}
	return results
}

// Only the low byte of the accumulator contributes to the code, and the
// low byte of a sum, shift or exclusive-or depends only on the low bytes
// of its operands. Accumulators may therefore wrap freely.
func fold(v uint) Code {
	return Code{byte((v&0xf0)>>4) + 'A', byte(v&0x0f) + 'A'}
}

const (
	quote = 0x22
	space = 0x20
)

// Ahoy1 is the Bug Repellent of the March and April 1984 issues. Spaces
// are skipped everywhere, including inside string literals. Each remaining
// byte is added to the accumulator, which is then shifted left one bit.
type Ahoy1 struct{}

func (Ahoy1) Sum(line uint16, b []byte) Code {
	var v uint
	for _, c := range b {
		if c == space {
			continue
		}
		v = (v + uint(c)) << 1
	}
	return fold(v)
}

// Ahoy2 is the Bug Repellent used from May 1984 through April 1987. Spaces
// outside string literals are skipped. Each remaining byte is added to the
// accumulator along with the carry left by the magazine routine's compare
// against the quote character, and the sum is exclusive-ored with the
// byte's 1-based position among the bytes counted.
type Ahoy2 struct{}

func (Ahoy2) Sum(line uint16, b []byte) Code {
	var v uint
	pos := uint(1)
	inQuotes := false
	for _, c := range b {
		var carry uint
		if c >= quote {
			carry = 1
		}
		if c == quote {
			inQuotes = !inQuotes
		}
		if c == space && !inQuotes {
			continue
		}
		v = (uint(c) + v + carry) ^ pos
		pos++
	}
	return fold(v)
}

// Ahoy3 is the Bug Repellent introduced in May 1987. It works like Ahoy2
// without the carry, counts positions from 0, and includes the line
// number, low byte first, ahead of the line's bytes.
type Ahoy3 struct{}

func (Ahoy3) Sum(line uint16, b []byte) Code {
	var v, pos uint
	inQuotes := false
	add := func(c byte) {
		if c == quote {
			inQuotes = !inQuotes
		}
		if c == space && !inQuotes {
			return
		}
		v = (uint(c) + v) ^ pos
		pos++
	}

	add(byte(line % 256))
	add(byte(line / 256))
	for _, c := range b {
		add(c)
	}
	return fold(v)
}
