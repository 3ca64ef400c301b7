// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host allows you to create a "host" that converts type-in BASIC
// listings from Commodore magazines into program files.
//
// Within the host it is possible to convert listings into program files,
// display the verification codes the magazines printed beside each line,
// list the contents of program files, and change the conversion settings.
package host

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/beevik/cmd"
	"github.com/beevik/retrotype/basic"
	"github.com/beevik/retrotype/checksum"
	"github.com/beevik/retrotype/format"
	"github.com/beevik/retrotype/listing"
	"github.com/beevik/retrotype/report"
	"github.com/beevik/term"
)

var errQuit = errors.New("exiting program")

// A Host converts magazine listings and reports on the results.
type Host struct {
	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool
	settings    *settings
}

// New creates a new host with default settings.
func New() *Host {
	return &Host{
		settings: newSettings(),
	}
}

// Set changes the value of a configuration variable. The key may be any
// unique prefix of the variable's name.
func (h *Host) Set(key, value string) error {
	f, err := h.settings.Field(key)
	if err != nil {
		return err
	}

	var v any
	switch f.kind {
	case reflect.String:
		var fm *format.Format
		fm, err = format.Lookup(value)
		if err == nil {
			v = fm.Name
		}
	case reflect.Bool:
		v, err = stringToBool(value)
	case reflect.Uint16:
		v, err = format.ParseLoad(value)
	default:
		v, err = strconv.Atoi(value)
	}
	if err != nil {
		return err
	}
	return h.settings.Set(f.name, v)
}

// SetMachine sets the load address to the BASIC start address of the named
// machine. The name may be any unique prefix of a machine name.
func (h *Host) SetMachine(name string) error {
	m, err := format.LookupMachine(name)
	if err != nil {
		return err
	}
	h.settings.LoadAddress = m.Load
	return nil
}

// RunCommands accepts host commands from a reader and outputs the results
// to a writer. If the commands are interactive, a prompt is displayed while
// the host waits for the next command to be entered.
func (h *Host) RunCommands(r io.Reader, w io.Writer, interactive bool) {
	h.input = bufio.NewScanner(r)
	h.output = bufio.NewWriter(w)
	h.interactive = interactive
	defer h.flush()

	if interactive {
		h.println()
	}

	for {
		h.prompt()

		line, err := h.getLine()
		if err != nil {
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		c, err := cmds.Lookup(line)
		switch {
		case errors.Is(err, cmd.ErrNotFound):
			h.println("Command not found.")
			continue
		case errors.Is(err, cmd.ErrAmbiguous):
			h.println("Command is ambiguous.")
			continue
		case err != nil:
			h.printf("ERROR: %v.\n", err)
			continue
		}

		if c.Command == nil {
			continue
		}

		handler := c.Command.Data.(*command).handler
		err = handler(h, c)
		if err != nil {
			break
		}
	}
}

// ConvertFiles converts each source file in turn. Answers to overwrite
// prompts are read from r, and all messages are written to w. It stops at
// the first file that cannot be converted.
func (h *Host) ConvertFiles(r io.Reader, w io.Writer, filenames []string) error {
	h.input = bufio.NewScanner(r)
	h.output = bufio.NewWriter(w)
	defer h.flush()

	for _, filename := range filenames {
		if err := h.convert(filename); err != nil {
			return err
		}
	}
	return nil
}

func (h *Host) printf(format string, args ...any) {
	fmt.Fprintf(h.output, format, args...)
	h.flush()
}

func (h *Host) println(args ...any) {
	fmt.Fprintln(h.output, args...)
	h.flush()
}

func (h *Host) flush() {
	h.output.Flush()
}

func (h *Host) getLine() (string, error) {
	if h.input.Scan() {
		return h.input.Text(), nil
	}
	if h.input.Err() != nil {
		return "", h.input.Err()
	}
	return "", io.EOF
}

func (h *Host) prompt() {
	if h.interactive {
		h.printf("* ")
	}
}

func (h *Host) cmdChecksum(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c)
		return nil
	}

	_, results, err := h.assemble(c.Args[0])
	if err != nil {
		return nil
	}
	h.displayChecksums(results)
	return nil
}

func (h *Host) cmdConvert(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c)
		return nil
	}

	for _, filename := range c.Args {
		if err := h.convert(filename); err != nil {
			break
		}
	}
	return nil
}

func (h *Host) cmdFormats(c cmd.Selection) error {
	h.println("Source formats:")
	for _, f := range format.Formats() {
		h.printf("    %-18s %s\n", f.Name, f.Description)
	}
	h.println()
	h.println("Machines:")
	for _, m := range format.Machines() {
		h.printf("    %-18s $%04X  %s\n", m.Name, m.Load, m.Description)
	}
	return nil
}

func (h *Host) cmdHelp(c cmd.Selection) error {
	if len(c.Args) == 0 {
		h.displayCommands()
		return nil
	}

	s, err := cmds.Lookup(strings.Join(c.Args, " "))
	if err != nil || s.Command == nil {
		h.println("Command not found.")
		return nil
	}

	d := s.Command.Data.(*command)
	h.printf("Syntax: %s\n\n", d.usage)
	switch {
	case d.description != "":
		h.printf("Description:\n%s\n\n", indentWrap(3, d.description))
	case d.brief != "":
		h.printf("Description:\n%s.\n\n", indentWrap(3, d.brief))
	}
	return nil
}

func (h *Host) cmdList(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c)
		return nil
	}

	filename := c.Args[0]
	file, err := os.Open(filename)
	if err != nil {
		h.printf("Failed to open '%s': %v\n", filename, err)
		return nil
	}
	defer file.Close()

	var p basic.Program
	if _, err := p.ReadFrom(file); err != nil {
		h.printf("Failed to read '%s': %v\n", filename, err)
		return nil
	}

	lines, err := listing.ListAll(p.Code)
	for _, l := range lines {
		h.println(l)
	}
	if err != nil {
		h.printf("%v\n", err)
	}
	return nil
}

func (h *Host) cmdMachine(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c)
		return nil
	}

	if err := h.SetMachine(c.Args[0]); err != nil {
		h.printf("%v\n", err)
		return nil
	}
	h.printf("Load address set to $%04X.\n", h.settings.LoadAddress)
	return nil
}

func (h *Host) cmdQuit(c cmd.Selection) error {
	return errQuit
}

func (h *Host) cmdSet(c cmd.Selection) error {
	switch len(c.Args) {
	case 0:
		h.println("Variables:")
		h.settings.Display(h.output)
		h.flush()

	case 1:
		h.displayUsage(c)

	default:
		err := h.Set(c.Args[0], strings.Join(c.Args[1:], " "))
		if err == nil {
			h.println("Setting updated.")
		} else {
			h.printf("%v\n", err)
		}
	}
	return nil
}

// Convert a source file, write the program and checksum files, and display
// the line checksums.
func (h *Host) convert(filename string) error {
	program, results, err := h.assemble(filename)
	if err != nil {
		return err
	}

	err = h.writeProgram(withExt(filename, ".prg"), program)
	if err != nil {
		return err
	}

	h.displayChecksums(results)

	chkFilename := withExt(filename, ".chk")
	err = writeFile(chkFilename, func(w io.Writer) error {
		return report.Write(w, results)
	})
	if err != nil {
		h.printf("Failed to write '%s': %v\n", chkFilename, err)
		return err
	}

	if h.settings.LineMap {
		mapFilename := withExt(filename, ".map")
		err = writeFile(mapFilename, func(w io.Writer) error {
			_, err := program.LineMap().WriteTo(w)
			return err
		})
		if err != nil {
			h.printf("Failed to write '%s': %v\n", mapFilename, err)
			return err
		}
	}
	return nil
}

// Convert a source file and compute its line checksums.
func (h *Host) assemble(filename string) (*basic.Program, []checksum.Result, error) {
	f, err := format.Lookup(h.settings.SourceFormat)
	if err != nil {
		h.printf("%v\n", err)
		return nil, nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		h.println("File read failed - please check source file name and path.")
		return nil, nil, err
	}
	defer file.Close()

	var options basic.Option
	if h.settings.Verbose {
		options |= basic.Verbose
	}

	config := basic.Config{
		Load:    h.settings.LoadAddress,
		Dialect: f.Dialect,
	}
	program, err := basic.Assemble(file, filename, config, h.output, options)
	h.flush()
	if err != nil {
		for _, e := range program.Errors {
			h.println(e)
		}
		h.println()
		return nil, nil, err
	}

	return program, checksum.Lines(f.Checksum, program.Lines), nil
}

// Write the program image to a new file. An existing file is replaced only
// if the user agrees or the Overwrite setting is true.
func (h *Host) writeProgram(filename string, p *basic.Program) error {
	h.printf("Writing binary output file \"%s\"...\n\n", filename)

	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if h.settings.Overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}

	file, err := os.OpenFile(filename, flags, 0644)
	if errors.Is(err, fs.ErrExist) {
		if !h.confirmOverwrite(filename) {
			h.printf("File \"%s\" not overwritten.\n\n", filename)
			return nil
		}
		if err := os.Remove(filename); err != nil {
			h.printf("Failed to remove '%s': %v\n", filename, err)
			return err
		}
		return h.writeProgram(filename, p)
	}
	if err != nil {
		h.printf("Failed to create '%s': %v\n", filename, err)
		return err
	}

	_, err = p.WriteTo(file)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		h.printf("Failed to save '%s': %v\n", filename, err)
		return err
	}

	h.printf("File \"%s\" written successfully.\n\n", filename)
	return nil
}

func (h *Host) confirmOverwrite(filename string) bool {
	h.printf("Output file \"%s\" already exists. Overwrite? (Y = yes) ", filename)
	answer, err := h.getLine()
	if err != nil {
		h.println()
		return false
	}
	return strings.ToLower(strings.TrimSpace(answer)) == "y"
}

func (h *Host) displayChecksums(results []checksum.Result) {
	h.printf("Line Checksums:\n\n")
	report.Columns(h.output, results, h.width())
	h.flush()
}

// Return the width available for the checksum columns.
func (h *Host) width() int {
	if h.settings.Width > 0 {
		return h.settings.Width
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

func (h *Host) displayUsage(c cmd.Selection) {
	if d, ok := c.Command.Data.(*command); ok && d.usage != "" {
		h.printf("Syntax: %s\n", d.usage)
	} else {
		h.println("<no help text>")
	}
}

func (h *Host) displayCommands() {
	h.println("Commands:")
	for _, c := range commands {
		h.printf("    %-15s  %s\n", c.name, c.brief)
	}
}

// Create or truncate a file and fill it using the write function.
func writeFile(filename string, write func(w io.Writer) error) error {
	file, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	err = write(file)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return err
}
