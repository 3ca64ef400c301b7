// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package basic

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrLineNumber is returned when a line does not start with a line
	// number.
	ErrLineNumber = errors.New("each line should start with a line number")

	// ErrLineRange is returned when a line number does not fit in 16 bits.
	ErrLineRange = errors.New("line number out of range")

	// ErrSequence is returned when line numbers do not strictly increase.
	ErrSequence = errors.New("lines should be in sequential order")
)

// A SequenceError reports a line-numbering problem following the last
// correctly numbered line.
type SequenceError struct {
	After int   // the last correctly numbered line, or 0
	Err   error // ErrLineNumber, ErrLineRange or ErrSequence
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("Entry error after line %d - %v.", e.After, e.Err)
}

func (e *SequenceError) Unwrap() error {
	return e.Err
}

// SplitLineNumber separates the leading line number from the statement
// text that follows it. Whitespace before the number and before the
// statement is dropped.
func SplitLineNumber(line string) (number uint16, stmt string, err error) {
	c := newCursor(line).consumeWhitespace()
	digits, c := c.consumeWhile(decimal)
	if digits == "" {
		return 0, "", ErrLineNumber
	}
	n, err := strconv.ParseUint(digits, 10, 16)
	if err != nil {
		return 0, "", ErrLineRange
	}
	return uint16(n), c.consumeWhitespace().String(), nil
}

// CheckSequence verifies that every line starts with a line number and that
// the line numbers strictly increase.
func CheckSequence(lines []string) error {
	prev := -1
	for _, l := range lines {
		n, _, err := SplitLineNumber(l)
		if err != nil {
			return &SequenceError{After: max(prev, 0), Err: err}
		}
		if int(n) <= prev {
			return &SequenceError{After: prev, Err: ErrSequence}
		}
		prev = int(n)
	}
	return nil
}
