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
)

// FirstPass assigns an address to every label. Any error it returns is a
// redeclared label, and the symbol table must not be used in that case.
//
// The location counter advances exactly where SecondPass emits a word:
// once per instruction, literal or invalid statement. Empty and label-only
// statements occupy nothing, origin resets the counter and end stops the
// walk.
func (asm *Assembler) FirstPass(program *Program) (*SymTable, []error) {
	var symtable = NewSymTable()
	var errs []error
	var location uint = 0

	glog.V(1).Infof("Beginning pass 1 (%d lines)", len(program.Statements))

	for i := range program.Statements {
		statement := &program.Statements[i]

		if statement.Label != nil {
			if err := symtable.Define(statement.Label, location); err != nil {
				errs = append(errs, err)
			} else if glog.V(2) {
				glog.Infof("Defining %q at %#x", statement.Label.Value, location)
			}
		}

		switch statement.Type {
		case STATEMENT_EMPTY:

		case STATEMENT_ORG:
			// Malformed origins are reported by the second pass
			if origin, err := asm.origin(statement); err == nil {
				location = origin
			}

		case STATEMENT_END:
			glog.V(1).Infof("Pass 1 stopped at line %d", statement.Position.Line)
			return symtable, errs

		default:
			location++
		}
	}

	glog.V(1).Infof("Finished pass 1: %d labels", symtable.Len())

	return symtable, errs
}
