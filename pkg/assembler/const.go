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

const (
	TOKEN_NONE TokenType = iota
	TOKEN_LABEL
	TOKEN_PSEUDO
	TOKEN_MNEMONIC
	TOKEN_SYMBOL
	TOKEN_LITERAL
	TOKEN_INDIRECT
)

const (
	STATEMENT_INVALID StatementType = iota
	STATEMENT_EMPTY
	STATEMENT_ORG
	STATEMENT_HEX
	STATEMENT_DEC
	STATEMENT_END
	STATEMENT_INSTRUCTION
)

const (
	PSEUDO_ORG = "org"
	PSEUDO_HEX = "hex"
	PSEUDO_DEC = "dec"
	PSEUDO_END = "end"
)

const (
	COMMENT_MARKER  = "/"
	LABEL_MARKER    = ","
	INDIRECT_MARKER = "i"
)

const (
	MODE_DIRECT   = "0"
	MODE_INDIRECT = "1"
)

// Words that can never name a label or an instruction
var reservedWords = []string{
	PSEUDO_ORG, PSEUDO_HEX, PSEUDO_DEC, PSEUDO_END, INDIRECT_MARKER,
}

func isReserved(word string) bool {
	for _, reserved := range reservedWords {
		if word == reserved {
			return true
		}
	}

	return false
}
