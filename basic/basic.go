// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package basic converts Commodore BASIC type-in listings into tokenized
// program images.
//
// Each source line is normalized, split from its line number, and scanned
// into a byte record. The records are then linked into the standard
// Commodore program layout: a two-byte load address followed by one record
// per line, each holding the address of the next record, the line number
// and the tokenized statement, with a final zero link ending the program.
package basic

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/beevik/retrotype/ahoy"
)

// DefaultLoad is the BASIC start address of the Commodore 64.
const DefaultLoad = 0x0801

// A Line is one line of a converted program.
type Line struct {
	Row    int    // 1-based row of the line in the source file
	Number uint16 // BASIC line number
	Text   string // normalized statement text without the line number
	Addr   uint16 // address of the line's record
	Next   uint16 // address of the following record
	Bytes  []byte // tokenized statement, including the zero terminator
}

// LineNumber returns the BASIC line number of the line.
func (l Line) LineNumber() uint16 {
	return l.Number
}

// Record returns the tokenized bytes of the line.
func (l Line) Record() []byte {
	return l.Bytes
}

// A Program contains a converted program image and the lines used to
// produce it.
type Program struct {
	Load   uint16   // load address
	Lines  []Line   // converted lines in source order
	Code   []byte   // program image, starting with the load address
	Errors []string // errors encountered during conversion
}

// ReadFrom reads a program image from a binary input source. Only the load
// address and code are recovered.
func (p *Program) ReadFrom(r io.Reader) (n int64, err error) {
	p.Errors = []string{}
	p.Lines = nil
	p.Code, err = io.ReadAll(r)
	n = int64(len(p.Code))
	if err != nil {
		return n, err
	}
	switch {
	case n < 2:
		return n, fmt.Errorf("program image missing load address")
	case n > 0x10002:
		return n, fmt.Errorf("program image exceeded 64K size")
	}
	p.Load = uint16(p.Code[0]) | uint16(p.Code[1])<<8
	return n, nil
}

// WriteTo saves the program image into an output writer.
func (p *Program) WriteTo(w io.Writer) (n int64, err error) {
	nn, err := w.Write(p.Code)
	return int64(nn), err
}

// Option type used by the Assemble function.
type Option uint

// Options for the Assemble function.
const (
	Verbose Option = 1 << iota // verbose output during conversion
)

// A Config describes how source lines are interpreted.
type Config struct {
	Load    uint16       // load address of the program
	Dialect ahoy.Dialect // magazine mnemonic conventions
}

// An entryError is used to keep track of errors encountered during
// conversion.
type entryError struct {
	row int    // source row causing the error, or 0
	msg string // error message
}

// A sourceLine is a line as read from the source file.
type sourceLine struct {
	row  int
	text string
}

// The assembler is a state object used while converting a program.
type assembler struct {
	config   Config
	scanner  Scanner
	r        io.Reader
	filename string
	source   []sourceLine
	lines    []Line
	code     []byte
	out      io.Writer
	verbose  bool
	errors   []entryError
}

// Assemble reads a type-in listing from the provided stream and converts it
// into a program image. The first failing line stops the conversion.
func Assemble(r io.Reader, filename string, config Config, out io.Writer, options Option) (*Program, error) {
	if out == nil {
		out = os.Stdout
	}

	a := &assembler{
		config:   config,
		scanner:  Scanner{Shorthand: config.Dialect.Shorthand},
		r:        r,
		filename: filename,
		out:      out,
		verbose:  (options & Verbose) != 0,
	}

	// Conversion consists of the following steps
	steps := []func(a *assembler) error{
		(*assembler).read,          // Read and lowercase the source lines
		(*assembler).checkSequence, // Verify line numbering
		(*assembler).normalize,     // Rewrite magazine mnemonics
		(*assembler).tokenize,      // Scan each line into its byte record
		(*assembler).link,          // Assign addresses and build the image
	}

	var err error
	for _, step := range steps {
		err = step(a)
		if err != nil {
			break
		}
	}

	errs := make([]string, 0, len(a.errors))
	for _, e := range a.errors {
		errs = append(errs, a.errorString(e))
	}

	program := &Program{
		Load:   config.Load,
		Lines:  a.lines,
		Code:   a.code,
		Errors: errs,
	}
	return program, err
}

// Read the source, dropping blank lines. Lines are lowercased and trailing
// whitespace is removed.
func (a *assembler) read() error {
	a.logSection("Reading source")

	scanner := bufio.NewScanner(a.r)
	row := 0
	for scanner.Scan() {
		row++
		text := strings.TrimRightFunc(scanner.Text(), unicode.IsSpace)
		if strings.TrimSpace(text) == "" {
			continue
		}
		a.source = append(a.source, sourceLine{row: row, text: strings.ToLower(text)})
	}
	if err := scanner.Err(); err != nil {
		a.addError(0, "%v", err)
		return err
	}
	a.log("%d lines", len(a.source))
	return nil
}

func (a *assembler) checkSequence() error {
	a.logSection("Checking line numbers")

	text := make([]string, len(a.source))
	for i, s := range a.source {
		text[i] = s.text
	}

	err := CheckSequence(text)
	if err != nil {
		var se *SequenceError
		if errors.As(err, &se) {
			a.addError(0, "%v", se)
		}
		return err
	}
	return nil
}

func (a *assembler) normalize() error {
	a.logSection("Normalizing mnemonics")

	for i, s := range a.source {
		n, err := ahoy.Normalize(s.text, a.config.Dialect)
		if err != nil {
			num, _, _ := SplitLineNumber(s.text)
			switch {
			case errors.Is(err, ahoy.ErrMalformed):
				a.addError(s.row, "Loose brace/bracket error in line: %d", num)
			default:
				a.addError(s.row, "%v", err)
			}
			return err
		}
		if n != s.text {
			a.logLine(s.row, "normalized", n)
		}
		a.source[i].text = n
	}
	return nil
}

func (a *assembler) tokenize() error {
	a.logSection("Tokenizing lines")

	a.lines = make([]Line, 0, len(a.source))
	for _, s := range a.source {
		num, stmt, err := SplitLineNumber(s.text)
		if err != nil {
			a.addError(s.row, "%v", err)
			return err
		}
		b := a.scanner.Scan(stmt)
		a.logLine(s.row, fmt.Sprintf("line=%d len=%d", num, len(b)), stmt)
		a.lines = append(a.lines, Line{
			Row:    s.row,
			Number: num,
			Text:   stmt,
			Bytes:  b,
		})
	}
	return nil
}

func (a *assembler) link() error {
	a.logSection("Linking lines")

	a.code = Link(a.config.Load, a.lines)
	for _, l := range a.lines {
		a.log("%04X  Line:%-5d Next:%04X Len:%d", l.Addr, l.Number, l.Next, len(l.Bytes))
		a.logBytes(l.Addr+4, l.Bytes)
	}
	return nil
}

// Link assigns an address to each line, starting at the load address, and
// returns the program image. Each line's record occupies four bytes (next
// address and line number) plus its byte record. Addresses are 16-bit and
// wrap on overflow.
func Link(load uint16, lines []Line) []byte {
	if len(lines) == 0 {
		return []byte{0, 0}
	}

	code := toBytes(load)
	addr := load
	for i := range lines {
		l := &lines[i]
		l.Addr = addr
		addr += uint16(4 + len(l.Bytes))
		l.Next = addr

		code = append(code, toBytes(l.Next)...)
		code = append(code, toBytes(l.Number)...)
		code = append(code, l.Bytes...)
	}
	return append(code, 0, 0)
}

func (a *assembler) addError(row int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	e := entryError{row, msg}
	a.errors = append(a.errors, e)
	if a.verbose {
		fmt.Fprintln(a.out, a.errorString(e))
	}
}

func (a *assembler) errorString(e entryError) string {
	if e.row == 0 {
		return e.msg
	}
	return fmt.Sprintf("Entry error in '%s' line %d: %s", a.filename, e.row, e.msg)
}

// In verbose mode, log a string to the output.
func (a *assembler) log(format string, args ...any) {
	if a.verbose {
		fmt.Fprintf(a.out, format, args...)
		fmt.Fprintf(a.out, "\n")
	}
}

// In verbose mode, log a detail string and its associated source line.
func (a *assembler) logLine(row int, detail, text string) {
	if a.verbose {
		fmt.Fprintf(a.out, "%-4d | %-20s | %s\n", row, detail, text)
	}
}

// In verbose mode, log a series of bytes with starting address.
func (a *assembler) logBytes(addr uint16, b []byte) {
	if a.verbose {
		for i, n := 0, len(b); i < n; i += 8 {
			j := min(i+8, n)
			a.log("%04X-*  %s", addr+uint16(i), byteString(b[i:j]))
		}
	}
}

// In verbose mode, log a section header to the output.
func (a *assembler) logSection(name string) {
	if a.verbose {
		fmt.Fprintln(a.out, strings.Repeat("-", len(name)+6))
		fmt.Fprintf(a.out, "-- %s --\n", name)
		fmt.Fprintln(a.out, strings.Repeat("-", len(name)+6))
	}
}
