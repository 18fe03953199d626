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
	"bufio"
	"io"
	"strings"
	"unicode"
)

// Parse reads the whole source and turns every line into a Statement. Syntax
// problems are attached to their statement rather than returned; the error
// result only reports failures of the reader itself.
func Parse(input io.Reader) (*Program, error) {
	var program Program
	var reader = bufio.NewReader(input)
	var cursor = Cursor{Line: 1}

	for {
		// Read whole lines with their terminator so byte offsets stay exact
		// for CRLF input and no line length limit applies
		raw, err := reader.ReadString('\n')

		if err != nil && err != io.EOF {
			return nil, err
		}

		if raw == "" && err == io.EOF {
			break
		}

		line := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")

		cursor.Size = int64(len(line))
		cursor.Byte = cursor.LineByte

		program.Statements = append(
			program.Statements, parseStatement(tokenize(line, cursor), cursor),
		)

		cursor.Line++
		cursor.LineByte += int64(len(raw))

		if err == io.EOF {
			break
		}
	}

	return &program, nil
}

// Splits a line on whitespace and lowercases each word. Everything from the
// first word starting with the comment marker is dropped.
func tokenize(line string, cursor Cursor) []Token {
	var tokens = make([]Token, 0, 4)
	var tokenStart = -1

	for index, char := range line + " " {
		if !unicode.IsSpace(char) {
			if tokenStart < 0 {
				tokenStart = index
			}

			continue
		}

		if tokenStart < 0 {
			continue
		}

		value := strings.ToLower(line[tokenStart:index])

		if strings.HasPrefix(value, COMMENT_MARKER) {
			break
		}

		tokens = append(tokens, Token{
			Type:  TOKEN_NONE,
			Value: value,
			Position: Cursor{
				Line:     cursor.Line,
				Column:   tokenStart + 1,
				Byte:     cursor.LineByte + int64(tokenStart),
				Size:     int64(index - tokenStart),
				LineByte: cursor.LineByte,
			},
		})

		tokenStart = -1
	}

	return tokens
}

func isLabel(token *Token) bool {
	return strings.HasSuffix(token.Value, LABEL_MARKER)
}

func parseStatement(tokens []Token, cursor Cursor) Statement {
	var statement = Statement{Type: STATEMENT_EMPTY, Position: cursor}

	if len(tokens) == 0 {
		return statement
	}

	// Label definition
	if isLabel(&tokens[0]) {
		label := tokens[0]
		label.Type = TOKEN_LABEL
		label.Value = strings.TrimSuffix(label.Value, LABEL_MARKER)

		if label.Value == "" || isReserved(label.Value) {
			statement.Err = &SyntaxError{
				tokens[0].Position, tokens[0].Value, "Invalid label name",
			}

			// Lay out the line as if the label were valid
			if len(tokens) > 1 {
				statement.Type = STATEMENT_INVALID
			}

			return statement
		}

		statement.Label = &label
		tokens = tokens[1:]

		// Label-only statements define the label but occupy no address
		if len(tokens) == 0 {
			return statement
		}
	}

	for i := range tokens {
		if isLabel(&tokens[i]) {
			statement.Type = STATEMENT_INVALID
			statement.Err = &SyntaxError{
				tokens[i].Position, tokens[i].Value, "Unexpected label definition",
			}
			return statement
		}
	}

	keyword := tokens[0]
	operands := tokens[1:]
	statement.Keyword = &keyword

	switch keyword.Value {
	case PSEUDO_ORG:
		statement.Type = STATEMENT_ORG
	case PSEUDO_HEX:
		statement.Type = STATEMENT_HEX
	case PSEUDO_DEC:
		statement.Type = STATEMENT_DEC
	case PSEUDO_END:
		statement.Type = STATEMENT_END
	default:
		statement.Type = STATEMENT_INSTRUCTION
	}

	if statement.Type == STATEMENT_INSTRUCTION {
		statement.Keyword.Type = TOKEN_MNEMONIC
		statement.Operands = make([]Token, 0, len(operands))

		for _, operand := range operands {
			if operand.Value == INDIRECT_MARKER {
				statement.Indirect = true
				continue
			}

			statement.Operands = append(statement.Operands, operand)
		}

		// MRI operands are either a label or a literal "hex <v>" / "dec <v>"
		for i := range statement.Operands {
			operand := &statement.Operands[i]

			if i == 0 && (operand.Value == PSEUDO_HEX || operand.Value == PSEUDO_DEC) {
				operand.Type = TOKEN_PSEUDO
			} else if i == 1 && statement.Operands[0].Type == TOKEN_PSEUDO {
				operand.Type = TOKEN_LITERAL
			} else {
				operand.Type = TOKEN_SYMBOL
			}
		}

		return statement
	}

	statement.Keyword.Type = TOKEN_PSEUDO
	statement.Operands = operands

	for i := range statement.Operands {
		statement.Operands[i].Type = TOKEN_LITERAL
	}

	// Origin and end never occupy an address, so a label there would be
	// ambiguous. The directive itself is still honored.
	if statement.Label != nil && (statement.Type == STATEMENT_ORG || statement.Type == STATEMENT_END) {
		statement.Err = &SyntaxError{
			statement.Label.Position,
			statement.Label.Value + LABEL_MARKER,
			"Label not allowed on '" + keyword.Value + "'",
		}
		statement.Label = nil
	} else if statement.Type == STATEMENT_END && len(operands) != 0 {
		statement.Err = &SyntaxError{
			operands[0].Position, operands[0].Value, "Unexpected operand after 'end'",
		}
	}

	return statement
}
