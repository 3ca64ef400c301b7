// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/beevik/retrotype/host"
	"github.com/beevik/term"
)

var (
	loadAddr string
	machine  string
	source   string
	width    int
	verbose  bool
	yes      bool
)

func init() {
	for _, name := range []string{"l", "loadaddr"} {
		flag.StringVar(&loadAddr, name, "", "program load address in hex (default 0801)")
	}
	for _, name := range []string{"m", "machine"} {
		flag.StringVar(&machine, name, "", "target machine, sets the load address")
	}
	for _, name := range []string{"s", "source"} {
		flag.StringVar(&source, name, "", "magazine source format (default ahoy2)")
	}
	for _, name := range []string{"w", "width"} {
		flag.IntVar(&width, name, 0, "checksum display width, 0 = terminal width")
	}
	for _, name := range []string{"v", "verbose"} {
		flag.BoolVar(&verbose, name, false, "display conversion details")
	}
	for _, name := range []string{"y", "yes"} {
		flag.BoolVar(&yes, name, false, "overwrite output files without asking")
	}
	flag.CommandLine.Usage = func() {
		fmt.Println("Usage: retrotype [options] [file] ..\nOptions:")
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	h := host.New()
	applySettings(h)

	// Convert files named on the command line.
	args := flag.Args()
	if len(args) > 0 {
		if err := h.ConvertFiles(os.Stdin, os.Stdout, args); err != nil {
			os.Exit(1)
		}
		return
	}

	// Run commands interactively.
	h.RunCommands(os.Stdin, os.Stdout, term.IsTerminal(int(os.Stdin.Fd())))
}

func applySettings(h *host.Host) {
	if machine != "" {
		if err := h.SetMachine(machine); err != nil {
			exitOnError(err)
		}
	}

	settings := []struct {
		key, value string
		set        bool
	}{
		{"loadaddress", loadAddr, loadAddr != ""},
		{"sourceformat", source, source != ""},
		{"width", fmt.Sprint(width), width != 0},
		{"verbose", fmt.Sprint(verbose), verbose},
		{"overwrite", fmt.Sprint(yes), yes},
	}
	for _, s := range settings {
		if !s.set {
			continue
		}
		if err := h.Set(s.key, s.value); err != nil {
			exitOnError(err)
		}
	}
}

func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	os.Exit(1)
}
