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
	"github.com/golang/glog"

	"github.com/lassandro/gobca/pkg/encoding"
	"github.com/lassandro/gobca/pkg/optable"
)

// SecondPass encodes every statement against the symbol table built by
// FirstPass. A statement that fails to encode is reported and skipped but
// still occupies its address. An unknown mnemonic stops the pass.
func (asm *Assembler) SecondPass(program *Program, symtable *SymTable) (*Image, []error) {
	var image = NewImage(asm.Config)
	var errs []error
	var location uint = 0

	glog.V(1).Infof("Beginning pass 2 (%d lines)", len(program.Statements))

	for i := range program.Statements {
		statement := &program.Statements[i]

		if statement.Err != nil {
			errs = append(errs, statement.Err)

			if statement.Type == STATEMENT_INVALID {
				location++
				continue
			}
		}

		var word string
		var err error

		switch statement.Type {
		case STATEMENT_EMPTY:
			continue

		case STATEMENT_ORG:
			if origin, err := asm.origin(statement); err != nil {
				errs = append(errs, err)
			} else {
				location = origin
			}

			continue

		case STATEMENT_END:
			glog.V(1).Infof("Pass 2 stopped at line %d", statement.Position.Line)
			return image, errs

		case STATEMENT_HEX, STATEMENT_DEC:
			word, err = asm.encodeLiteral(statement)

		case STATEMENT_INSTRUCTION:
			class, code := asm.Tables.Lookup(statement.Keyword.Value)

			switch class {
			case optable.CLASS_MRI:
				word, err = asm.encodeMemoryReference(statement, code, symtable)
			case optable.CLASS_RRI, optable.CLASS_IOI:
				word, err = encodeFixed(statement, code)
			default:
				errs = append(errs, &SyntaxError{
					statement.Keyword.Position,
					statement.Keyword.Value,
					"Unknown identifier",
				})

				glog.V(1).Infof("Pass 2 halted at line %d", statement.Position.Line)
				return image, errs
			}
		}

		if err == nil {
			err = asm.emit(image, location, word, statement)
		}

		if err != nil {
			errs = append(errs, err)
		}

		location++
	}

	glog.V(1).Infof("Finished pass 2: %d words", image.Len())

	return image, errs
}

func (asm *Assembler) emit(image *Image, location uint, word string, statement *Statement) error {
	address, err := encoding.FormatBinary(uint64(location), asm.AddressBits)

	if err != nil {
		return positioned(err, statement.Keyword, asm.AddressBits)
	}

	cell := Cell{address, word, location, statement.Keyword.Position}

	if glog.V(2) {
		glog.Infof("Emit %s at %s (line %d)", word, address, cell.Position.Line)
	}

	if previous, replaced := image.put(cell); replaced {
		return &OverlappingWordError{cell.Position, address, previous.Position}
	}

	return nil
}

// hex <value> and dec <value>
func (asm *Assembler) encodeLiteral(statement *Statement) (string, error) {
	if len(statement.Operands) != 1 {
		return "", operandCountError(statement, 1)
	}

	operand := &statement.Operands[0]
	word, err := encoding.FormatLiteral(
		operand.Value, statement.Keyword.Value, asm.WordBits,
	)

	if err != nil {
		return "", positioned(err, operand, asm.WordBits)
	}

	return word, nil
}

// I |opcode|address            | Memory reference
// - [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (asm *Assembler) encodeMemoryReference(statement *Statement, opcode string, symtable *SymTable) (string, error) {
	var mode = MODE_DIRECT
	var addr uint64

	if statement.Indirect {
		mode = MODE_INDIRECT
	}

	if len(statement.Operands) == 0 {
		return "", operandCountError(statement, 1)
	}

	operand := &statement.Operands[0]

	if operand.Type == TOKEN_PSEUDO {
		if statement.Indirect {
			return "", &SyntaxError{
				operand.Position, operand.Value, "Indirect operand must be a label",
			}
		}

		if len(statement.Operands) != 2 {
			return "", operandCountError(statement, 2)
		}

		literal := &statement.Operands[1]
		value, err := encoding.DecodeLiteral(literal.Value, operand.Value)

		if err != nil {
			return "", positioned(err, literal, asm.AddressBits)
		}

		if value < 0 {
			return "", &AddressOverflowError{
				literal.Position, asm.AddressBits, value,
			}
		}

		addr = uint64(value)
	} else {
		if len(statement.Operands) != 1 {
			return "", operandCountError(statement, 1)
		}

		resolved, err := symtable.Resolve(operand)

		if err != nil {
			return "", err
		}

		addr = uint64(resolved)
	}

	address, err := encoding.FormatBinary(addr, asm.AddressBits)

	if err != nil {
		return "", positioned(err, operand, asm.AddressBits)
	}

	return mode + opcode + address, nil
}

// Register-reference and input/output instructions take no operand.
func encodeFixed(statement *Statement, code string) (string, error) {
	if len(statement.Operands) != 0 {
		return "", operandCountError(statement, 0)
	}

	if statement.Indirect {
		return "", &SyntaxError{
			statement.Keyword.Position,
			statement.Keyword.Value,
			"Indirect marker on an instruction without operand",
		}
	}

	return code, nil
}
