// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/lassandro/gobca/pkg/assembler"
	"github.com/lassandro/gobca/pkg/encoding"
)

// Returns the source line starting at offset, without its line ending.
func sourceLine(source []byte, offset int64) string {
	if offset < 0 || offset > int64(len(source)) {
		return ""
	}

	line := source[offset:]

	if end := bytes.IndexByte(line, '\n'); end >= 0 {
		line = line[:end]
	}

	return strings.TrimSuffix(string(line), "\r")
}

// Builds the "^~~~" marker under a token. Tabs in the line are kept so the
// marker lines up however the terminal expands them.
func underline(line string, cursor assembler.Cursor) string {
	var builder strings.Builder

	column := int(cursor.Byte - cursor.LineByte)

	for i := 0; i < column && i < len(line); i++ {
		if line[i] == '\t' {
			builder.WriteByte('\t')
		} else {
			builder.WriteByte(' ')
		}
	}

	builder.WriteByte('^')

	if cursor.Size > 1 {
		builder.WriteString(strings.Repeat("~", int(cursor.Size)-1))
	}

	return builder.String()
}

func reportError(err error, source []byte) {
	tokenErr, ok := err.(assembler.TokenError)

	if !ok {
		log.Println(err)
		return
	}

	cursor := tokenErr.GetPosition()
	line := sourceLine(source, cursor.LineByte)

	log.Printf("%s\n%s\n%s", err, line, red(underline(line, cursor)))
}

func listingLine(image *assembler.Image, cell assembler.Cell, labels []string, source []byte) string {
	value, _ := encoding.ParseBinary(cell.Word)

	return fmt.Sprintf(
		"%s  %s  %s  %-8s %s",
		encoding.FormatHex(uint64(cell.Location), image.AddressBits),
		encoding.FormatHex(value, image.WordBits),
		cell.Word,
		strings.Join(labels, ","),
		strings.TrimSpace(sourceLine(source, cell.Position.LineByte)),
	)
}

func printListing(output io.Writer, image *assembler.Image, symtable *assembler.SymTable, source []byte) {
	var width int

	if file, ok := output.(*os.File); ok {
		width = terminalWidth(int(file.Fd()))
	}

	labels := assembler.NewDebugTable("", symtable, image).Labels

	for _, cell := range image.Cells {
		text := listingLine(image, cell, labels[cell.Location], source)

		if width > 0 && len(text) > width {
			text = text[:width]
		}

		fmt.Fprintln(output, text)
	}
}
