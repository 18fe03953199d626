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
)

type TokenType uint
type StatementType uint

type Cursor struct {
	Line     int
	Column   int
	Byte     int64
	Size     int64
	LineByte int64
}

type Token struct {
	Type     TokenType
	Position Cursor
	Value    string
}

// Statement is one source line, parsed once and shared by both passes.
type Statement struct {
	Type     StatementType
	Position Cursor
	Label    *Token
	Keyword  *Token
	Operands []Token
	Indirect bool

	// Set when the line could not be parsed cleanly. Invalid statements still
	// occupy an address so that both passes keep the same layout.
	Err error
}

type Program struct {
	Statements []Statement
}

type TokenError interface {
	GetPosition() Cursor
}

type SyntaxError struct {
	Position Cursor
	Received string
	Reason   string
}

func (err *SyntaxError) GetPosition() Cursor {
	return err.Position
}

func (err *SyntaxError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Syntax error: %s\n\thave:%s",
		err.Position.Line,
		err.Position.Column,
		err.Reason,
		err.Received,
	)
}

type DuplicateLabelError struct {
	Position Cursor
	Received string
	Previous Cursor
}

func (err *DuplicateLabelError) GetPosition() Cursor {
	return err.Position
}

func (err *DuplicateLabelError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Redeclaration of label '%s'\n\tprevious:%02d:%02d",
		err.Position.Line,
		err.Position.Column,
		err.Received,
		err.Previous.Line,
		err.Previous.Column,
	)
}

type UnresolvedSymbolError struct {
	Position Cursor
	Received string
}

func (err *UnresolvedSymbolError) GetPosition() Cursor {
	return err.Position
}

func (err *UnresolvedSymbolError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Unknown label '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type UnsupportedNumberFormatError struct {
	Position Cursor
	Received string
}

func (err *UnsupportedNumberFormatError) GetPosition() Cursor {
	return err.Position
}

func (err *UnsupportedNumberFormatError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Unsupported number format\n\twant:hex or dec\n\thave:%s",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type AddressOverflowError struct {
	Position Cursor
	Required uint
	Received int64
}

func (err *AddressOverflowError) GetPosition() Cursor {
	return err.Position
}

func (err *AddressOverflowError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Value exceeds allowed width\n\twant:%d bits\n\thave:%d",
		err.Position.Line,
		err.Position.Column,
		err.Required,
		err.Received,
	)
}

type OverlappingWordError struct {
	Position Cursor
	Address  string
	Previous Cursor
}

func (err *OverlappingWordError) GetPosition() Cursor {
	return err.Position
}

func (err *OverlappingWordError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Address %s already assembled\n\tprevious:%02d:%02d",
		err.Position.Line,
		err.Position.Column,
		err.Address,
		err.Previous.Line,
		err.Previous.Column,
	)
}

type ConfigError struct {
	Reason string
}

func (err *ConfigError) Error() string {
	return "Invalid configuration: " + err.Reason
}
