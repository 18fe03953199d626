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

// Package optable holds the three opcode tables of the Basic Computer:
// memory-reference, register-reference and input/output instructions.
package optable

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lassandro/gobca/pkg/encoding"
)

type Class uint

const (
	CLASS_NONE Class = iota
	CLASS_MRI
	CLASS_RRI
	CLASS_IOI
)

func (class Class) String() string {
	switch class {
	case CLASS_MRI:
		return "MRI"
	case CLASS_RRI:
		return "RRI"
	case CLASS_IOI:
		return "IOI"
	}

	return "<none>"
}

// Table maps a lowercase mnemonic to its binary code.
type Table map[string]string

type Tables struct {
	MRI Table
	RRI Table
	IOI Table
}

type InputFormatError struct {
	Source   string
	Line     int
	Received string
	Reason   string
}

func (err *InputFormatError) Error() string {
	if err.Line == 0 {
		if err.Received == "" {
			return fmt.Sprintf("%s: %s", err.Source, err.Reason)
		}

		return fmt.Sprintf(
			"%s: %s\n\thave:%s", err.Source, err.Reason, err.Received,
		)
	}

	return fmt.Sprintf(
		"%s:%02d: %s\n\thave:%s",
		err.Source,
		err.Line,
		err.Reason,
		err.Received,
	)
}

//go:embed tables/*.txt
var defaultTables embed.FS

// Reads a table in the format "<mnemonic> <binary-code>", one entry per line.
// The source name is only used for error reporting.
func LoadTable(input io.Reader, source string) (Table, error) {
	var table = make(Table)
	var scanner = bufio.NewScanner(input)
	var line int

	for scanner.Scan() {
		line++

		text := scanner.Text()
		fields := strings.Fields(strings.ToLower(text))

		if len(fields) != 2 {
			return nil, &InputFormatError{
				source, line, text, "Expected '<mnemonic> <code>'",
			}
		}

		mnemonic, code := fields[0], fields[1]

		if !encoding.IsBinary(code) {
			return nil, &InputFormatError{
				source, line, code, "Code is not a binary string",
			}
		}

		if _, exists := table[mnemonic]; exists {
			return nil, &InputFormatError{
				source, line, mnemonic, "Redeclaration of mnemonic",
			}
		}

		table[mnemonic] = code
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return table, nil
}

func LoadFile(path string) (Table, error) {
	file, err := os.Open(path)

	if err != nil {
		return nil, err
	}

	defer file.Close()

	return LoadTable(file, path)
}

func LoadFiles(mri, rri, ioi string) (*Tables, error) {
	var tables Tables
	var err error

	if tables.MRI, err = LoadFile(mri); err != nil {
		return nil, err
	}

	if tables.RRI, err = LoadFile(rri); err != nil {
		return nil, err
	}

	if tables.IOI, err = LoadFile(ioi); err != nil {
		return nil, err
	}

	return &tables, nil
}

// Default returns the instruction set of the Basic Computer.
func Default() *Tables {
	var tables Tables

	for _, entry := range []struct {
		name  string
		table *Table
	}{
		{"tables/mri.txt", &tables.MRI},
		{"tables/rri.txt", &tables.RRI},
		{"tables/ioi.txt", &tables.IOI},
	} {
		file, err := defaultTables.Open(entry.name)

		if err != nil {
			panic(err)
		}

		table, err := LoadTable(file, entry.name)
		file.Close()

		if err != nil {
			panic(err)
		}

		*entry.table = table
	}

	return &tables
}

func (tables *Tables) Lookup(mnemonic string) (Class, string) {
	if code, exists := tables.MRI[mnemonic]; exists {
		return CLASS_MRI, code
	} else if code, exists := tables.RRI[mnemonic]; exists {
		return CLASS_RRI, code
	} else if code, exists := tables.IOI[mnemonic]; exists {
		return CLASS_IOI, code
	}

	return CLASS_NONE, ""
}

// Validate checks that every code fits a machine with the given address and
// word widths and that no mnemonic belongs to more than one class.
func (tables *Tables) Validate(addressBits uint, wordBits uint) error {
	if addressBits+1 >= wordBits {
		return &InputFormatError{
			Source: "<tables>",
			Reason: fmt.Sprintf(
				"No room for an opcode in a %d-bit word with %d-bit addresses",
				wordBits, addressBits,
			),
		}
	}

	opcodeBits := int(wordBits - addressBits - 1)

	for _, entry := range []struct {
		class Class
		table Table
		bits  int
	}{
		{CLASS_MRI, tables.MRI, opcodeBits},
		{CLASS_RRI, tables.RRI, int(wordBits)},
		{CLASS_IOI, tables.IOI, int(wordBits)},
	} {
		for mnemonic, code := range entry.table {
			if len(code) != entry.bits {
				return &InputFormatError{
					Source:   "<" + strings.ToLower(entry.class.String()) + ">",
					Received: mnemonic + " " + code,
					Reason: fmt.Sprintf(
						"%s code must be %d bits", entry.class, entry.bits,
					),
				}
			}

			if class, _ := tables.Lookup(mnemonic); class != entry.class {
				return &InputFormatError{
					Source:   "<" + strings.ToLower(entry.class.String()) + ">",
					Received: mnemonic,
					Reason: fmt.Sprintf(
						"Mnemonic '%s' is both %s and %s",
						mnemonic, class, entry.class,
					),
				}
			}
		}
	}

	return nil
}
