// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package format describes the magazine source formats and target machines
// supported by the converter. Names may be abbreviated to any unique
// prefix.
package format

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/prefixtree/v2"
	"github.com/beevik/retrotype/ahoy"
	"github.com/beevik/retrotype/checksum"
)

var (
	ErrUnknownFormat   = errors.New("unknown source format")
	ErrAmbiguousFormat = errors.New("ambiguous source format")
	ErrUnknownMachine  = errors.New("unknown machine")
	ErrAmbiguousName   = errors.New("ambiguous machine")
	ErrLoadAddress     = errors.New("invalid load address")
)

// A Format describes the listing conventions of a magazine era.
type Format struct {
	Name        string
	Description string
	Dialect     ahoy.Dialect
	Checksum    checksum.Algorithm
}

// DefaultFormat is the name of the format used when none is requested.
const DefaultFormat = "ahoy2"

var formats = []Format{
	{
		Name:        "ahoy1",
		Description: "Ahoy! magazine (Mar-Apr 1984)",
		Dialect:     ahoy.Dialect{Brackets: true, Shorthand: true},
		Checksum:    checksum.Ahoy1{},
	},
	{
		Name:        "ahoy2",
		Description: "Ahoy! magazine (May 1984-Apr 1987)",
		Dialect:     ahoy.Dialect{Brackets: true, Counted: true, Shorthand: true},
		Checksum:    checksum.Ahoy2{},
	},
	{
		Name:        "ahoy3",
		Description: "Ahoy! magazine (May 1987-)",
		Dialect:     ahoy.Dialect{Brackets: true, Counted: true},
		Checksum:    checksum.Ahoy3{},
	},
}

// A Machine is a target computer and the start of its BASIC program area.
type Machine struct {
	Name        string
	Description string
	Load        uint16
}

var machines = []Machine{
	{"c64", "Commodore 64", 0x0801},
	{"c128", "Commodore 128", 0x1c01},
	{"plus4", "Commodore 16/116/Plus4", 0x1001},
	{"pet", "PET/CBM", 0x0401},
	{"vic20-unexpanded", "VIC-20 unexpanded", 0x1001},
	{"vic20-3k", "VIC-20 with 3K expansion", 0x0401},
	{"vic20-8k", "VIC-20 with 8K or more expansion", 0x1201},
}

var (
	formatTree  = prefixtree.New[*Format]()
	machineTree = prefixtree.New[*Machine]()
)

func init() {
	for i := range formats {
		formatTree.Add(formats[i].Name, &formats[i])
	}
	for i := range machines {
		machineTree.Add(machines[i].Name, &machines[i])
	}
}

// Formats returns all supported source formats.
func Formats() []Format {
	return append([]Format(nil), formats...)
}

// Machines returns all known target machines.
func Machines() []Machine {
	return append([]Machine(nil), machines...)
}

// Lookup returns the source format with the given name or unique name
// prefix.
func Lookup(name string) (*Format, error) {
	f, err := formatTree.FindValue(strings.ToLower(name))
	switch {
	case errors.Is(err, prefixtree.ErrPrefixAmbiguous):
		return nil, fmt.Errorf("%w '%s'", ErrAmbiguousFormat, name)
	case err != nil:
		return nil, fmt.Errorf("%w '%s'", ErrUnknownFormat, name)
	}
	return f, nil
}

// LookupMachine returns the machine with the given name or unique name
// prefix.
func LookupMachine(name string) (*Machine, error) {
	m, err := machineTree.FindValue(strings.ToLower(name))
	switch {
	case errors.Is(err, prefixtree.ErrPrefixAmbiguous):
		return nil, fmt.Errorf("%w '%s'", ErrAmbiguousName, name)
	case err != nil:
		return nil, fmt.Errorf("%w '%s'", ErrUnknownMachine, name)
	}
	return m, nil
}

// ParseLoad parses a hexadecimal load address, with an optional "0x" or
// "$" prefix. Machine names are not accepted; use LookupMachine for those.
func ParseLoad(s string) (uint16, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(s, "0x"):
		s = s[2:]
	case strings.HasPrefix(s, "$"):
		s = s[1:]
	}
	return parseHex(s)
}

func parseHex(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("%w '%s'", ErrLoadAddress, s)
	}
	return uint16(v), nil
}
