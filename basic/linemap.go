// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package basic

import (
	"encoding/json"
	"io"
)

// A LineMap describes where each BASIC line of a program is stored.
type LineMap struct {
	Load  uint16
	Lines []LineAddr
}

// A LineAddr represents the mapping between a BASIC line number and the
// address of its record.
type LineAddr struct {
	Line    uint16 // BASIC line number
	Address uint16 // Address of the line's record
	Next    uint16 // Address of the following record
	Row     int    // Source file row
}

// LineMap returns the line map of a converted program.
func (p *Program) LineMap() *LineMap {
	m := &LineMap{Load: p.Load, Lines: make([]LineAddr, 0, len(p.Lines))}
	for _, l := range p.Lines {
		m.Lines = append(m.Lines, LineAddr{
			Line:    l.Number,
			Address: l.Addr,
			Next:    l.Next,
			Row:     l.Row,
		})
	}
	return m
}

// ReadFrom reads the contents of an exported line map file.
func (m *LineMap) ReadFrom(r io.Reader) (n int64, err error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}

	err = json.Unmarshal(b, m)
	if err != nil {
		return 0, err
	}
	return int64(len(b)), nil
}

// WriteTo writes the contents of the line map to an output stream.
func (m *LineMap) WriteTo(w io.Writer) (n int64, err error) {
	b, err := json.Marshal(*m)
	if err != nil {
		return 0, err
	}

	nn, err := w.Write(b)
	return int64(nn), err
}
