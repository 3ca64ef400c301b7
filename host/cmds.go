// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import "github.com/beevik/cmd"

// A command describes a host command and the handler that runs it.
type command struct {
	name        string
	brief       string
	description string
	usage       string
	handler     func(*Host, cmd.Selection) error
}

var (
	cmds     *cmd.Tree
	commands []*command
)

func init() {
	commands = []*command{
		{
			name:        "help",
			brief:       "Display help for a command",
			description: "Display help for a command.",
			usage:       "help [<command>]",
			handler:     (*Host).cmdHelp,
		},
		{
			name:  "checksum",
			brief: "Display line checksums of a source file",
			description: "Tokenize a magazine listing and display the" +
				" verification code of each line, without writing any" +
				" output files.",
			usage:   "checksum <filename>",
			handler: (*Host).cmdChecksum,
		},
		{
			name:  "convert",
			brief: "Convert a source file to a program file",
			description: "Tokenize a magazine listing and save it as a" +
				" program file (.prg) loadable by a Commodore computer or" +
				" emulator. The line checksums are displayed and saved to a" +
				" checksum file (.chk). If the LineMap setting is true, a" +
				" line map file (.map) is saved too.",
			usage:   "convert <filename> [<filename> ...]",
			handler: (*Host).cmdConvert,
		},
		{
			name:        "formats",
			brief:       "List source formats and machines",
			description: "List the supported magazine source formats and the" +
				" machine names accepted by the machine command.",
			usage:   "formats",
			handler: (*Host).cmdFormats,
		},
		{
			name:  "list",
			brief: "List a program file",
			description: "Display the BASIC program stored in a program file" +
				" (.prg), one line at a time, in the form accepted by the" +
				" convert command.",
			usage:   "list <filename>",
			handler: (*Host).cmdList,
		},
		{
			name:  "machine",
			brief: "Set the load address for a machine",
			description: "Set the program load address to the BASIC start" +
				" address of the named machine. Any unique prefix of a" +
				" machine name is accepted.",
			usage:   "machine <name>",
			handler: (*Host).cmdMachine,
		},
		{
			name:        "quit",
			brief:       "Quit the program",
			description: "Quit the program.",
			usage:       "quit",
			handler:     (*Host).cmdQuit,
		},
		{
			name:  "set",
			brief: "Set a configuration variable",
			description: "Set the value of a configuration variable. To see" +
				" the current values of all configuration variables, type set" +
				" without any arguments.",
			usage:   "set [<var> <value>]",
			handler: (*Host).cmdSet,
		},
	}

	root := cmd.NewTree(cmd.TreeDescriptor{Name: "retrotype"})
	for _, c := range commands {
		root.AddCommand(cmd.CommandDescriptor{
			Name:        c.name,
			Brief:       c.brief,
			Description: c.description,
			Usage:       c.usage,
			Data:        c,
		})
	}

	root.AddShortcut("?", "help")
	root.AddShortcut("c", "convert")
	root.AddShortcut("cs", "checksum")
	root.AddShortcut("l", "list")
	root.AddShortcut("m", "machine")
	root.AddShortcut("q", "quit")

	cmds = root
}
