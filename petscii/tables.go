// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package petscii holds the static lookup tables used to convert typed-in
// Commodore BASIC text into the byte values stored in a tokenized program.
//
// Tables are ordered. When one entry's text is a prefix of another's, the
// longer entry appears first so that a first-match scan selects it.
package petscii

// A Token associates a literal text prefix with the byte it encodes.
type Token struct {
	Text  string
	Value byte
}

// A Table is an ordered list of tokens.
type Table []Token

// Match returns the first token in the table whose text is a prefix of s.
func (t Table) Match(s string) (Token, bool) {
	for _, tok := range t {
		if len(s) >= len(tok.Text) && s[:len(tok.Text)] == tok.Text {
			return tok, true
		}
	}
	return Token{}, false
}

// Contains returns true if s exactly matches the text of a token.
func (t Table) Contains(s string) bool {
	for _, tok := range t {
		if tok.Text == s {
			return true
		}
	}
	return false
}

// Byte values with special meaning to the line scanner.
const (
	Quote byte = 0x22
	Space byte = 0x20
	REM   byte = 0x8f
	Pi    byte = 0xff
)

// Control holds the canonical (petcat-style) control-code mnemonics.
var Control = Table{
	{"{wht}", 5},
	{"{dish}", 8},
	{"{ensh}", 9},
	{"{swlc}", 14},
	{"{down}", 17},
	{"{rvon}", 18},
	{"{home}", 19},
	{"{del}", 20},
	{"{red}", 28},
	{"{rght}", 29},
	{"{grn}", 30},
	{"{blu}", 31},
	{"{pound}", 92},
	{"{uarr}", 94},
	{"{larr}", 95},
	{"{orng}", 129},
	{"{f1}", 133},
	{"{f3}", 134},
	{"{f5}", 135},
	{"{f7}", 136},
	{"{f2}", 137},
	{"{f4}", 138},
	{"{f6}", 139},
	{"{f8}", 140},
	{"{sret}", 141},
	{"{swuc}", 142},
	{"{blk}", 144},
	{"{up}", 145},
	{"{rvof}", 146},
	{"{clr}", 147},
	{"{inst}", 148},
	{"{brn}", 149},
	{"{lred}", 150},
	{"{gry1}", 151},
	{"{gry2}", 152},
	{"{lgrn}", 153},
	{"{lblu}", 154},
	{"{gry3}", 155},
	{"{pur}", 156},
	{"{left}", 157},
	{"{yel}", 158},
	{"{cyn}", 159},
	{"{$a0}", 160},
	{"{pi}", Pi},
}

// Shorthand holds the shift-key and commodore-key mnemonics used by
// magazines that printed underlined and overlined characters.
var Shorthand = Table{
	{"{s return}", 141},
	{"{s space}", 160},
	{"{s up_arrow}", 222},
	{"{s ep}", 169},
	{"{c ep}", 168},
	{"{s *}", 192},
	{"{s +}", 219},
	{"{s -}", 221},
	{"{s @}", 186},
	{"{c *}", 223},
	{"{c +}", 166},
	{"{c -}", 220},
	{"{c @}", 164},
	{"{c 1}", 129},
	{"{c 2}", 149},
	{"{c 3}", 150},
	{"{c 4}", 151},
	{"{c 5}", 152},
	{"{c 6}", 153},
	{"{c 7}", 154},
	{"{c 8}", 155},
}

// Commodore-key letters do not follow a pattern, so they are listed.
var commodoreLetters = [26]byte{
	176, 191, 188, 172, 177, 187, 165, 180, 162, 181, 161, 182, 167,
	170, 185, 175, 171, 178, 174, 163, 184, 190, 179, 189, 183, 173,
}

func init() {
	for i := 0; i < 26; i++ {
		c := string(rune('a' + i))
		Shorthand = append(Shorthand,
			Token{"{s " + c + "}", byte(193 + i)},
			Token{"{c " + c + "}", commodoreLetters[i]},
		)
	}
}

// Keywords holds the BASIC V2 keyword tokens in token order. The
// interpreter's own crunch routine scans in this order, which places
// "input#" before "input", "print#" before "print", and "go" last.
var Keywords = Table{
	{"end", 0x80},
	{"for", 0x81},
	{"next", 0x82},
	{"data", 0x83},
	{"input#", 0x84},
	{"input", 0x85},
	{"dim", 0x86},
	{"read", 0x87},
	{"let", 0x88},
	{"goto", 0x89},
	{"run", 0x8a},
	{"if", 0x8b},
	{"restore", 0x8c},
	{"gosub", 0x8d},
	{"return", 0x8e},
	{"rem", REM},
	{"stop", 0x90},
	{"on", 0x91},
	{"wait", 0x92},
	{"load", 0x93},
	{"save", 0x94},
	{"verify", 0x95},
	{"def", 0x96},
	{"poke", 0x97},
	{"print#", 0x98},
	{"print", 0x99},
	{"cont", 0x9a},
	{"list", 0x9b},
	{"clr", 0x9c},
	{"cmd", 0x9d},
	{"sys", 0x9e},
	{"open", 0x9f},
	{"close", 0xa0},
	{"get", 0xa1},
	{"new", 0xa2},
	{"tab(", 0xa3},
	{"to", 0xa4},
	{"fn", 0xa5},
	{"spc(", 0xa6},
	{"then", 0xa7},
	{"not", 0xa8},
	{"step", 0xa9},
	{"+", 0xaa},
	{"-", 0xab},
	{"*", 0xac},
	{"/", 0xad},
	{"^", 0xae},
	{"and", 0xaf},
	{"or", 0xb0},
	{">", 0xb1},
	{"=", 0xb2},
	{"<", 0xb3},
	{"sgn", 0xb4},
	{"int", 0xb5},
	{"abs", 0xb6},
	{"usr", 0xb7},
	{"fre", 0xb8},
	{"pos", 0xb9},
	{"sqr", 0xba},
	{"rnd", 0xbb},
	{"log", 0xbc},
	{"exp", 0xbd},
	{"cos", 0xbe},
	{"sin", 0xbf},
	{"tan", 0xc0},
	{"atn", 0xc1},
	{"peek", 0xc2},
	{"len", 0xc3},
	{"str$", 0xc4},
	{"val", 0xc5},
	{"asc", 0xc6},
	{"chr$", 0xc7},
	{"left$", 0xc8},
	{"right$", 0xc9},
	{"mid$", 0xca},
	{"go", 0xcb},
}

// Keyword returns the text of the keyword encoded by the token byte b.
func Keyword(b byte) (string, bool) {
	if b < 0x80 || int(b-0x80) >= len(Keywords) {
		return "", false
	}
	return Keywords[b-0x80].Text, true
}

// FromRune returns the byte a character is stored as when it matches no
// table entry. Lowercase letters move down to the unshifted letter range.
func FromRune(r rune) byte {
	switch {
	case r >= 'a' && r <= 'z':
		return byte(r - 32)
	case r == '£':
		return 92
	case r == '↑':
		return 94
	case r == '←':
		return 95
	case r == 'π':
		return Pi
	case r < 0x100:
		return byte(r)
	default:
		return '?'
	}
}

// MatchHex matches a raw byte mnemonic of the form {$hh} at the start of s.
// It returns the byte and the length of the mnemonic.
func MatchHex(s string) (byte, int, bool) {
	if len(s) < 5 || s[0] != '{' || s[1] != '$' || s[4] != '}' {
		return 0, 0, false
	}
	hi, ok1 := hexDigit(s[2])
	lo, ok2 := hexDigit(s[3])
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	return hi<<4 | lo, 5, true
}

// HexText returns the raw byte mnemonic for b.
func HexText(b byte) string {
	const digits = "0123456789abcdef"
	return "{$" + string(digits[b>>4]) + string(digits[b&0xf]) + "}"
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// Ahoy maps the mnemonics printed in Ahoy! magazine listings, uppercased
// and brace-delimited, to their canonical control mnemonic.
var Ahoy = map[string]string{
	"{SC}":         "{clr}",
	"{HM}":         "{home}",
	"{CU}":         "{up}",
	"{CD}":         "{down}",
	"{CL}":         "{left}",
	"{CR}":         "{rght}",
	"{SS}":         "{$a0}",
	"{IN}":         "{inst}",
	"{RV}":         "{rvon}",
	"{RO}":         "{rvof}",
	"{BK}":         "{blk}",
	"{WH}":         "{wht}",
	"{RD}":         "{red}",
	"{CY}":         "{cyn}",
	"{PU}":         "{pur}",
	"{GN}":         "{grn}",
	"{BU}":         "{blu}",
	"{YL}":         "{yel}",
	"{OR}":         "{orng}",
	"{BR}":         "{brn}",
	"{LR}":         "{lred}",
	"{G1}":         "{gry1}",
	"{G2}":         "{gry2}",
	"{LG}":         "{lgrn}",
	"{LB}":         "{lblu}",
	"{G3}":         "{gry3}",
	"{F1}":         "{f1}",
	"{F2}":         "{f2}",
	"{F3}":         "{f3}",
	"{F4}":         "{f4}",
	"{F5}":         "{f5}",
	"{F6}":         "{f6}",
	"{F7}":         "{f7}",
	"{F8}":         "{f8}",
	"{EP}":         "{pound}",
	"{UP_ARROW}":   "{uarr}",
	"{LEFT_ARROW}": "{larr}",
	"{PI}":         "{pi}",
}
