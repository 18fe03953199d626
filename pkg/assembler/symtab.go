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

type Symbol struct {
	Name     string
	Address  uint
	Position Cursor
}

// SymTable maps label names to the address they were defined at. It is
// filled by the first pass and only read afterwards.
type SymTable struct {
	Symbols []Symbol
	index   map[string]int
}

func NewSymTable() *SymTable {
	return &SymTable{index: make(map[string]int)}
}

func (symtable *SymTable) Define(label *Token, addr uint) error {
	if i, exists := symtable.index[label.Value]; exists {
		return &DuplicateLabelError{
			label.Position, label.Value, symtable.Symbols[i].Position,
		}
	}

	symtable.index[label.Value] = len(symtable.Symbols)
	symtable.Symbols = append(
		symtable.Symbols, Symbol{label.Value, addr, label.Position},
	)

	return nil
}

func (symtable *SymTable) Resolve(label *Token) (uint, error) {
	if i, exists := symtable.index[label.Value]; exists {
		return symtable.Symbols[i].Address, nil
	}

	return 0, &UnresolvedSymbolError{label.Position, label.Value}
}

func (symtable *SymTable) Lookup(name string) (Symbol, bool) {
	if i, exists := symtable.index[name]; exists {
		return symtable.Symbols[i], true
	}

	return Symbol{}, false
}

// Names lists the labels in the order they were defined.
func (symtable *SymTable) Names() []string {
	names := make([]string, 0, len(symtable.Symbols))

	for _, symbol := range symtable.Symbols {
		names = append(names, symbol.Name)
	}

	return names
}

func (symtable *SymTable) Len() int {
	return len(symtable.Symbols)
}

// DebugTable is the symbol information written next to an assembled image.
// Symbols maps an address to the byte offset of the source line that
// produced it, Labels maps an address to the labels defined there.
type DebugTable struct {
	Source  string
	Symbols map[uint]int64
	Labels  map[uint][]string
}

func NewDebugTable(source string, symtable *SymTable, image *Image) *DebugTable {
	var table = DebugTable{
		Source:  source,
		Symbols: make(map[uint]int64),
		Labels:  make(map[uint][]string),
	}

	if image != nil {
		for _, cell := range image.Cells {
			table.Symbols[cell.Location] = cell.Position.LineByte
		}
	}

	if symtable != nil {
		for _, symbol := range symtable.Symbols {
			table.Labels[symbol.Address] = append(
				table.Labels[symbol.Address], symbol.Name,
			)
		}
	}

	return &table
}
