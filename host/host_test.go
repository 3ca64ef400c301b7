// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beevik/retrotype/basic"
	"github.com/go-test/deep"
)

const example = "10 PRINT\"HELLO\"\n20 GOTO10\n"

func writeSource(t *testing.T, code string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "example.bas")
	if err := os.WriteFile(filename, []byte(code), 0644); err != nil {
		t.Fatal(err)
	}
	return filename
}

func newHost(t *testing.T, source string) *Host {
	t.Helper()
	h := New()
	for _, kv := range [][2]string{{"source", source}, {"width", "40"}} {
		if err := h.Set(kv[0], kv[1]); err != nil {
			t.Fatal(err)
		}
	}
	return h
}

func convert(t *testing.T, h *Host, filename, answer string) string {
	t.Helper()
	var out strings.Builder
	err := h.ConvertFiles(strings.NewReader(answer), &out, []string{filename})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return out.String()
}

func TestConvert(t *testing.T) {
	tests := []struct {
		source string
		table  string
	}{
		{"ahoy1", "    10 IA       20 NI   \n"},
		{"ahoy2", "    10 EO       20 PH   \n"},
		{"ahoy3", "    10 GC       20 PP   \n"},
	}

	for _, tt := range tests {
		filename := writeSource(t, example)
		prg := strings.TrimSuffix(filename, ".bas") + ".prg"

		got := convert(t, newHost(t, tt.source), filename, "")
		expected := fmt.Sprintf("Writing binary output file \"%s\"...\n\n"+
			"File \"%s\" written successfully.\n\n"+
			"Line Checksums:\n\n%s\nLines: 2\n\n", prg, prg, tt.table)
		if got != expected {
			t.Errorf("%s: output doesn't match expected", tt.source)
			t.Errorf("got: %q", got)
			t.Errorf("exp: %q", expected)
		}

		b, err := os.ReadFile(prg)
		if err != nil {
			t.Fatal(err)
		}
		if diff := deep.Equal(b, []byte{
			0x01, 0x08, 0x0e, 0x08, 0x0a, 0x00, 0x99, 0x22, 0x48, 0x45,
			0x4c, 0x4c, 0x4f, 0x22, 0x00, 0x16, 0x08, 0x14, 0x00, 0x89,
			0x31, 0x30, 0x00, 0x00, 0x00,
		}); diff != nil {
			t.Errorf("%s: %v", tt.source, diff)
		}

		chk, err := os.ReadFile(strings.TrimSuffix(filename, ".bas") + ".chk")
		if err != nil {
			t.Fatal(err)
		}
		lines := strings.Split(strings.TrimSpace(tt.table), " ")
		var codes []string
		for _, f := range lines {
			if f != "" {
				codes = append(codes, f)
			}
		}
		expectedChk := fmt.Sprintf("%s %s\n%s %s\n\nLines: 2\n", codes[0], codes[1], codes[2], codes[3])
		if string(chk) != expectedChk {
			t.Errorf("%s: checksum file got %q, expected %q", tt.source, chk, expectedChk)
		}
	}
}

func TestConvertOverwrite(t *testing.T) {
	tests := []struct {
		answer   string
		source   string
		replaced bool
		table    string
	}{
		{"y\n", "ahoy1", true, "    10 IA       20 NI   \n"},
		{"Y\n", "ahoy2", true, "    10 EO       20 PH   \n"},
		{"N\n", "ahoy2", false, "    10 EO       20 PH   \n"},
		{"no\n", "ahoy3", false, "    10 GC       20 PP   \n"},
		{"", "ahoy3", false, "    10 GC       20 PP   \n"},
	}

	for _, tt := range tests {
		filename := writeSource(t, example)
		prg := strings.TrimSuffix(filename, ".bas") + ".prg"
		if err := os.WriteFile(prg, []byte("old"), 0644); err != nil {
			t.Fatal(err)
		}

		got := convert(t, newHost(t, tt.source), filename, tt.answer)

		expected := fmt.Sprintf("Writing binary output file \"%s\"...\n\n"+
			"Output file \"%s\" already exists. Overwrite? (Y = yes) ", prg, prg)
		switch {
		case tt.replaced:
			expected += fmt.Sprintf("Writing binary output file \"%s\"...\n\n"+
				"File \"%s\" written successfully.\n\n", prg, prg)
		case tt.answer == "":
			expected += fmt.Sprintf("\nFile \"%s\" not overwritten.\n\n", prg)
		default:
			expected += fmt.Sprintf("File \"%s\" not overwritten.\n\n", prg)
		}
		expected += "Line Checksums:\n\n" + tt.table + "\nLines: 2\n\n"

		if got != expected {
			t.Errorf("%q: output doesn't match expected", tt.answer)
			t.Errorf("got: %q", got)
			t.Errorf("exp: %q", expected)
		}

		b, err := os.ReadFile(prg)
		if err != nil {
			t.Fatal(err)
		}
		if (string(b) == "old") == tt.replaced {
			t.Errorf("%q: program file replaced=%v, expected %v", tt.answer, string(b) != "old", tt.replaced)
		}
	}
}

func TestConvertOverwriteSetting(t *testing.T) {
	filename := writeSource(t, example)
	prg := strings.TrimSuffix(filename, ".bas") + ".prg"
	if err := os.WriteFile(prg, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	h := newHost(t, "ahoy2")
	if err := h.Set("overwrite", "true"); err != nil {
		t.Fatal(err)
	}
	got := convert(t, h, filename, "")
	if strings.Contains(got, "already exists") {
		t.Errorf("unexpected prompt: %q", got)
	}
	b, _ := os.ReadFile(prg)
	if string(b) == "old" {
		t.Error("program file not replaced")
	}
}

func TestConvertLineMap(t *testing.T) {
	filename := writeSource(t, example)
	h := newHost(t, "ahoy2")
	if err := h.Set("linemap", "on"); err != nil {
		t.Fatal(err)
	}
	convert(t, h, filename, "")

	file, err := os.Open(strings.TrimSuffix(filename, ".bas") + ".map")
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	var m basic.LineMap
	if _, err := m.ReadFrom(file); err != nil {
		t.Fatal(err)
	}
	if m.Load != 0x0801 || len(m.Lines) != 2 {
		t.Errorf("unexpected line map: %+v", m)
	}
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		code string
		msg  string
		err  error
	}{
		{"10 print\n5 goto10\n", "Entry error after line 10 - lines should be in sequential order.", basic.ErrSequence},
		{"10 print\ngoto10\n", "Entry error after line 10 - each line should start with a line number.", basic.ErrLineNumber},
	}

	for _, tt := range tests {
		filename := writeSource(t, tt.code)
		var out strings.Builder
		err := newHost(t, "ahoy2").ConvertFiles(strings.NewReader(""), &out, []string{filename})
		if !errors.Is(err, tt.err) {
			t.Errorf("%q: expected %v, got %v", tt.code, tt.err, err)
		}
		if !strings.Contains(out.String(), tt.msg) {
			t.Errorf("%q: output %q missing %q", tt.code, out.String(), tt.msg)
		}
		if _, err := os.Stat(strings.TrimSuffix(filename, ".bas") + ".prg"); err == nil {
			t.Errorf("%q: program file written", tt.code)
		}
	}
}

func TestConvertMissingFile(t *testing.T) {
	var out strings.Builder
	err := New().ConvertFiles(strings.NewReader(""), &out, []string{filepath.Join(t.TempDir(), "missing.bas")})
	if err == nil {
		t.Error("expected error")
	}
	if out.String() != "File read failed - please check source file name and path.\n" {
		t.Errorf("got %q", out.String())
	}
}

func TestSet(t *testing.T) {
	h := New()
	tests := []struct {
		key, value string
		check      func(s *settings) bool
	}{
		{"so", "ahoy3", func(s *settings) bool { return s.SourceFormat == "ahoy3" }},
		{"sourceformat", "AHOY1", func(s *settings) bool { return s.SourceFormat == "ahoy1" }},
		{"load", "$1001", func(s *settings) bool { return s.LoadAddress == 0x1001 }},
		{"load", "c1", func(s *settings) bool { return s.LoadAddress == 0x00c1 }},
		{"w", "132", func(s *settings) bool { return s.Width == 132 }},
		{"v", "true", func(s *settings) bool { return s.Verbose }},
		{"linemap", "1", func(s *settings) bool { return s.LineMap }},
	}
	for _, tt := range tests {
		if err := h.Set(tt.key, tt.value); err != nil {
			t.Errorf("set %s %s: %v", tt.key, tt.value, err)
			continue
		}
		if !tt.check(h.settings) {
			t.Errorf("set %s %s: setting not applied: %+v", tt.key, tt.value, *h.settings)
		}
	}

	for _, kv := range [][2]string{
		{"so", "ahoy"},
		{"so", "byte"},
		{"load", "xyz"},
		{"width", "wide"},
		{"verbose", "maybe"},
		{"nothing", "1"},
	} {
		if err := h.Set(kv[0], kv[1]); err == nil {
			t.Errorf("set %s %s: expected error", kv[0], kv[1])
		}
	}
}

func TestSetMachine(t *testing.T) {
	h := New()
	if err := h.SetMachine("c128"); err != nil || h.settings.LoadAddress != 0x1c01 {
		t.Errorf("SetMachine(c128): $%04X, %v", h.settings.LoadAddress, err)
	}
	if err := h.SetMachine("vic20"); err == nil {
		t.Error("SetMachine(vic20): expected ambiguous machine error")
	}
	if h.settings.LoadAddress != 0x1c01 {
		t.Errorf("failed SetMachine changed the load address to $%04X", h.settings.LoadAddress)
	}

	var out strings.Builder
	h.RunCommands(strings.NewReader("machine plus4\n"), &out, false)
	if out.String() != "Load address set to $1001.\n" {
		t.Errorf("got %q", out.String())
	}
}

func TestRunCommands(t *testing.T) {
	filename := writeSource(t, example)
	prg := strings.TrimSuffix(filename, ".bas") + ".prg"

	script := strings.Join([]string{
		"set width 40",
		"set so ahoy3",
		"set",
		"convert " + filename,
		"list " + prg,
		"bogus",
		"quit",
		"set so ahoy1",
	}, "\n")

	h := New()
	var out strings.Builder
	h.RunCommands(strings.NewReader(script), &out, false)
	got := out.String()

	for _, s := range []string{
		"Setting updated.\n",
		"    SourceFormat     \"ahoy3\"",
		"    LoadAddress      $0801",
		"    10 GC       20 PP   \n",
		"10 print\"hello\"\n20 goto10\n",
		"Command not found.\n",
	} {
		if !strings.Contains(got, s) {
			t.Errorf("output missing %q", s)
		}
	}
	if h.settings.SourceFormat != "ahoy3" {
		t.Error("commands ran after quit")
	}
}

func TestHelp(t *testing.T) {
	var out strings.Builder
	New().RunCommands(strings.NewReader("help\nhelp convert\n"), &out, false)
	got := out.String()
	for _, s := range []string{
		"Commands:\n",
		"    checksum         Display line checksums of a source file\n",
		"Syntax: convert <filename> [<filename> ...]\n",
	} {
		if !strings.Contains(got, s) {
			t.Errorf("output missing %q", s)
		}
	}
}

func TestIndentWrap(t *testing.T) {
	s := indentWrap(3, strings.Repeat("word ", 30))
	for _, l := range strings.Split(s, "\n") {
		if len(l) > 76 || !strings.HasPrefix(l, "   word") {
			t.Errorf("bad line %q", l)
		}
	}
}
