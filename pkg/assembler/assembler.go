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

package assembler

import (
	"fmt"
	"io"

	"github.com/lassandro/gobca/pkg/encoding"
	"github.com/lassandro/gobca/pkg/optable"
)

type Config struct {
	AddressBits uint
	WordBits    uint
}

// The Basic Computer: 4096 words of 16 bits.
var DefaultConfig = Config{AddressBits: 12, WordBits: 16}

type Assembler struct {
	Config
	Tables *optable.Tables
}

func New(tables *optable.Tables, config Config) (*Assembler, error) {
	if tables == nil {
		return nil, &ConfigError{"no opcode tables"}
	}

	if config.AddressBits == 0 || config.AddressBits > 32 {
		return nil, &ConfigError{
			fmt.Sprintf("address width %d out of range", config.AddressBits),
		}
	}

	if config.WordBits > 64 {
		return nil, &ConfigError{
			fmt.Sprintf("word width %d out of range", config.WordBits),
		}
	}

	if err := tables.Validate(config.AddressBits, config.WordBits); err != nil {
		return nil, err
	}

	for _, table := range []optable.Table{tables.MRI, tables.RRI, tables.IOI} {
		for mnemonic := range table {
			if isReserved(mnemonic) {
				return nil, &optable.InputFormatError{
					Source:   "<tables>",
					Received: mnemonic,
					Reason:   "Mnemonic collides with a reserved word",
				}
			}
		}
	}

	return &Assembler{config, tables}, nil
}

// AssembleSource assembles input for the Basic Computer with the given
// tables.
func AssembleSource(input io.Reader, tables *optable.Tables) (*Image, []error) {
	asm, err := New(tables, DefaultConfig)

	if err != nil {
		return nil, []error{err}
	}

	image, _, errs := asm.Assemble(input)

	return image, errs
}

// Assemble runs both passes over input. A failed first pass returns no image.
// Otherwise the image holds every line that assembled, and errs lists the
// lines that did not, in source order.
func (asm *Assembler) Assemble(input io.Reader) (image *Image, symtable *SymTable, errs []error) {
	program, err := Parse(input)

	if err != nil {
		return nil, nil, []error{err}
	}

	symtable, errs = asm.FirstPass(program)

	if len(errs) > 0 {
		return nil, nil, errs
	}

	image, errs = asm.SecondPass(program, symtable)

	return image, symtable, errs
}

// Resolves the operand of an origin statement to an address.
func (asm *Assembler) origin(statement *Statement) (uint, error) {
	if count := len(statement.Operands); count != 1 {
		return 0, operandCountError(statement, 1)
	}

	operand := &statement.Operands[0]
	value, err := encoding.DecodeHex(operand.Value)

	if err != nil {
		return 0, positioned(err, operand, asm.AddressBits)
	}

	if value>>asm.AddressBits != 0 {
		return 0, &AddressOverflowError{
			operand.Position, asm.AddressBits, int64(value),
		}
	}

	return uint(value), nil
}

// Attaches a token position to an error from the encoding package.
func positioned(err error, token *Token, bits uint) error {
	switch err := err.(type) {
	case *encoding.OverflowError:
		return &AddressOverflowError{token.Position, bits, err.Value}
	case *encoding.UnsupportedFormatError:
		return &UnsupportedNumberFormatError{token.Position, err.Format}
	case *encoding.LiteralError:
		return &SyntaxError{
			token.Position, token.Value, "Invalid " + err.Format + " literal",
		}
	}

	return err
}

func operandCountError(statement *Statement, want int) error {
	have := len(statement.Operands)

	if have < want {
		position := statement.Keyword.Position

		if have > 0 {
			position = statement.Operands[have-1].Position
		}

		return &SyntaxError{position, statement.Keyword.Value, "Missing operand"}
	}

	return &SyntaxError{
		statement.Operands[want].Position,
		statement.Operands[want].Value,
		fmt.Sprintf("Expected %d operand(s), found %d", want, have),
	}
}
