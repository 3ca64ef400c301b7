// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report renders line verification codes for the typist.
package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/retrotype/checksum"
)

// ColumnWidth is the number of terminal columns used by each entry.
const ColumnWidth = 12

// Columns writes the results in as many columns as fit in the given
// terminal width. Entries run down each column before moving to the next,
// as in the magazine's printed tables. A line count follows the table.
func Columns(w io.Writer, results []checksum.Result, width int) error {
	bw := bufio.NewWriter(w)

	columns := max(width/ColumnWidth, 1)
	rows := (len(results) + columns - 1) / columns

	for i := 0; i < rows; i++ {
		for j := 0; j < columns; j++ {
			index := i + j*rows
			if index >= len(results) {
				continue
			}
			line := strconv.Itoa(int(results[index].Line))
			code := results[index].Code.String()
			pad := max(7-len(line)-len(code), 0)
			fmt.Fprintf(bw, "%s %s %s   ", strings.Repeat(" ", pad), line, code)
		}
		bw.WriteString("\n")
	}

	fmt.Fprintf(bw, "\nLines: %d\n\n", len(results))
	return bw.Flush()
}

// Write writes the results one per line, followed by a blank line and a
// line count.
func Write(w io.Writer, results []checksum.Result) error {
	bw := bufio.NewWriter(w)
	for _, r := range results {
		fmt.Fprintf(bw, "%d %s\n", r.Line, r.Code)
	}
	fmt.Fprintf(bw, "\nLines: %d\n", len(results))
	return bw.Flush()
}
