// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ahoy rewrites the control-character mnemonics printed in Ahoy!
// magazine type-in listings into canonical control mnemonics that the
// line scanner understands.
//
// Two mnemonic forms are recognized. A simple mnemonic is any text enclosed
// in a single pair of braces, such as {CD}. A counted mnemonic, such as
// {5"{CD}"} or {3" "}, repeats the quoted mnemonic (or, if the quoted text
// is not a known mnemonic, the quoted text itself) the requested number of
// times.
package ahoy

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/retrotype/petscii"
)

var (
	// ErrMalformed is returned when a line contains a brace (or bracket)
	// that does not belong to a complete mnemonic.
	ErrMalformed = errors.New("unmatched brace or bracket")

	// ErrUnknownMnemonic is returned when a simple mnemonic does not appear
	// in any mnemonic table.
	ErrUnknownMnemonic = errors.New("unknown mnemonic")

	// ErrCount is returned when a counted mnemonic repeats its text more
	// than MaxCount times.
	ErrCount = errors.New("repeat count too large")
)

// MaxCount is the largest repeat count accepted in a counted mnemonic. No
// BASIC line holds more than 255 bytes.
const MaxCount = 255

// A MnemonicError describes a line that could not be normalized.
type MnemonicError struct {
	Line     string // the offending line, as passed to Normalize
	Mnemonic string // the unknown mnemonic, if any
	Err      error  // ErrMalformed, ErrUnknownMnemonic or ErrCount
}

func (e *MnemonicError) Error() string {
	if e.Mnemonic != "" {
		return fmt.Sprintf("%v '%s' in line: %s", e.Err, e.Mnemonic, e.Line)
	}
	return fmt.Sprintf("%v in line: %s", e.Err, e.Line)
}

func (e *MnemonicError) Unwrap() error {
	return e.Err
}

// A Dialect describes the mnemonic conventions of one era of the magazine.
type Dialect struct {
	Brackets  bool // square brackets are accepted as mnemonic delimiters
	Counted   bool // counted mnemonics {N"X"} are recognized
	Shorthand bool // shift/commodore shorthand such as {s a} is recognized
}

// Normalize replaces every magazine mnemonic in the line with its canonical
// control mnemonic. Lines containing no mnemonics are returned unchanged.
func Normalize(line string, d Dialect) (string, error) {
	src := line
	if d.Brackets {
		src = strings.NewReplacer("[", "{", "]", "}").Replace(line)
	}

	var b strings.Builder
	remain := src
	for len(remain) > 0 {
		i := strings.IndexAny(remain, "{}")
		if i < 0 {
			b.WriteString(remain)
			break
		}
		b.WriteString(remain[:i])
		remain = remain[i:]

		if remain[0] == '}' {
			return "", &MnemonicError{Line: line, Err: ErrMalformed}
		}

		if d.Counted {
			if count, text, n, ok := scanCounted(remain); ok {
				if count > MaxCount {
					return "", &MnemonicError{Line: line, Mnemonic: remain[:n], Err: ErrCount}
				}
				code := text
				if c, ok := lookup(text, d); ok {
					code = c
				}
				b.WriteString(strings.Repeat(code, count))
				remain = remain[n:]
				continue
			}
		}

		n := scanSimple(remain)
		if n < 0 {
			return "", &MnemonicError{Line: line, Err: ErrMalformed}
		}
		code, ok := lookup(remain[:n], d)
		if !ok {
			return "", &MnemonicError{Line: line, Mnemonic: remain[:n], Err: ErrUnknownMnemonic}
		}
		b.WriteString(code)
		remain = remain[n:]
	}
	return b.String(), nil
}

// Look up the canonical form of a brace-delimited mnemonic. Mnemonics that
// are already canonical are returned as-is.
func lookup(m string, d Dialect) (string, bool) {
	if c, ok := petscii.Ahoy[strings.ToUpper(m)]; ok {
		return c, true
	}
	lower := strings.ToLower(m)
	if petscii.Control.Contains(lower) {
		return lower, true
	}
	if _, n, ok := petscii.MatchHex(lower); ok && n == len(lower) {
		return lower, true
	}
	if d.Shorthand && petscii.Shorthand.Contains(lower) {
		return lower, true
	}
	return "", false
}

// Return the length of the simple mnemonic at the start of s, or -1 if the
// opening brace is not closed before the next opening brace.
func scanSimple(s string) int {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '}':
			if i == 1 {
				return -1
			}
			return i + 1
		case '{':
			return -1
		}
	}
	return -1
}

// Scan a counted mnemonic of the form {N"X"} or {N "X"} at the start of s.
// The quoted text may not contain an opening brace after its first
// character, and it ends at the first closing quote-brace pair.
func scanCounted(s string) (count int, text string, n int, ok bool) {
	i := 1
	for i < len(s) && decimal(s[i]) {
		i++
	}
	if i == 1 {
		return 0, "", 0, false
	}
	count, err := strconv.Atoi(s[1:i])
	if err != nil {
		count = MaxCount + 1
	}
	if i < len(s) && whitespace(s[i]) {
		i++
	}
	if i >= len(s) || s[i] != '"' {
		return 0, "", 0, false
	}
	start := i + 1
	for j := start + 1; j+1 < len(s); j++ {
		if s[j] == '{' {
			return 0, "", 0, false
		}
		if s[j] == '"' && s[j+1] == '}' {
			return count, s[start:j], j + 2, true
		}
	}
	return 0, "", 0, false
}

func decimal(c byte) bool {
	return c >= '0' && c <= '9'
}

func whitespace(c byte) bool {
	return c == ' ' || c == '\t'
}
