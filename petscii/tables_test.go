// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package petscii

import (
	"strings"
	"testing"
)

// A token whose text is a prefix of a later token's text would hide the
// later token from a first-match scan.
func checkShadowing(t *testing.T, name string, table Table) {
	for i, a := range table {
		for _, b := range table[i+1:] {
			if a.Text != b.Text && strings.HasPrefix(b.Text, a.Text) {
				t.Errorf("%s: '%s' shadows '%s'", name, a.Text, b.Text)
			}
		}
	}
}

func TestTableOrder(t *testing.T) {
	checkShadowing(t, "control", Control)
	checkShadowing(t, "shorthand", Shorthand)
	checkShadowing(t, "keywords", Keywords)
}

func TestKeywordValues(t *testing.T) {
	for i, k := range Keywords {
		if int(k.Value) != 0x80+i {
			t.Errorf("keyword '%s' has value $%02X, expected $%02X", k.Text, k.Value, 0x80+i)
		}
	}
	if len(Keywords) != 0xcb-0x80+1 {
		t.Errorf("got %d keywords", len(Keywords))
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		in    string
		table Table
		value byte
		ok    bool
	}{
		{"print#4,a", Keywords, 0x98, true},
		{"print a", Keywords, 0x99, true},
		{"goto10", Keywords, 0x89, true},
		{"gosub10", Keywords, 0x8d, true},
		{"go to10", Keywords, 0xcb, true},
		{"input#1", Keywords, 0x84, true},
		{"x=1", Keywords, 0, false},
		{"{clr}hello", Control, 147, true},
		{"{rvof}", Control, 146, true},
		{"{s up_arrow}", Shorthand, 222, true},
		{"{s u}", Shorthand, 213, true},
		{"{c q}", Shorthand, 171, true},
		{"{c 8}", Shorthand, 155, true},
		{"{clr", Control, 0, false},
	}

	for _, test := range tests {
		tok, ok := test.table.Match(test.in)
		if ok != test.ok || tok.Value != test.value {
			t.Errorf("Match(%q) = ($%02X, %v), expected ($%02X, %v)", test.in, tok.Value, ok, test.value, test.ok)
		}
	}
}

func TestKeyword(t *testing.T) {
	if s, ok := Keyword(REM); !ok || s != "rem" {
		t.Errorf("Keyword(REM) = %q, %v", s, ok)
	}
	if s, ok := Keyword(0xcb); !ok || s != "go" {
		t.Errorf("Keyword($CB) = %q, %v", s, ok)
	}
	if _, ok := Keyword(0xcc); ok {
		t.Error("Keyword($CC) should not exist")
	}
	if _, ok := Keyword('A'); ok {
		t.Error("Keyword('A') should not exist")
	}
}

func TestAhoyTargetsExist(t *testing.T) {
	for k, v := range Ahoy {
		if !Control.Contains(v) {
			t.Errorf("Ahoy mnemonic %s maps to unknown control mnemonic %s", k, v)
		}
	}
}

func TestFromRune(t *testing.T) {
	tests := []struct {
		r rune
		b byte
	}{
		{'a', 'A'}, {'z', 'Z'}, {'A', 'A'}, {'0', '0'}, {'"', Quote},
		{' ', Space}, {'£', 92}, {'π', Pi}, {'é', 0xe9}, {'世', '?'},
	}
	for _, test := range tests {
		if b := FromRune(test.r); b != test.b {
			t.Errorf("FromRune(%q) = %d, expected %d", test.r, b, test.b)
		}
	}
}

func TestMatchHex(t *testing.T) {
	tests := []struct {
		s  string
		b  byte
		n  int
		ok bool
	}{
		{"{$a0}", 0xa0, 5, true},
		{"{$0D}x", 0x0d, 5, true},
		{"{$g0}", 0, 0, false},
		{"{$a}", 0, 0, false},
		{"{clr}", 0, 0, false},
	}
	for _, tt := range tests {
		b, n, ok := MatchHex(tt.s)
		if b != tt.b || n != tt.n || ok != tt.ok {
			t.Errorf("MatchHex(%q) = %02x %d %v", tt.s, b, n, ok)
		}
	}
	for i := 0; i < 256; i++ {
		b, _, ok := MatchHex(HexText(byte(i)))
		if !ok || int(b) != i {
			t.Errorf("HexText(%d) did not match", i)
		}
	}
}
