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

package encoding

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	FORMAT_HEX = "hex"
	FORMAT_DEC = "dec"
)

type OverflowError struct {
	Bits  uint
	Value int64
}

func (err *OverflowError) Error() string {
	return fmt.Sprintf("value %d does not fit in %d bits", err.Value, err.Bits)
}

type UnsupportedFormatError struct {
	Format string
}

func (err *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported number format '%s'", err.Format)
}

type LiteralError struct {
	Format string
	Text   string
}

func (err *LiteralError) Error() string {
	return fmt.Sprintf("invalid %s literal '%s'", err.Format, err.Text)
}

// Decodes bare hexadecimal digits, e.g. 1F. Signs and prefixes are rejected.
func DecodeHex(s string) (uint64, error) {
	result, err := strconv.ParseUint(s, 16, 63)

	if err != nil {
		return 0, &LiteralError{FORMAT_HEX, s}
	}

	return result, nil
}

// Decodes an optionally signed base-10 string, e.g. -12 or 123
func DecodeDec(s string) (int64, error) {
	result, err := strconv.ParseInt(s, 10, 64)

	if err != nil {
		return 0, &LiteralError{FORMAT_DEC, s}
	}

	return result, nil
}

// DecodeLiteral reads text in the named base, either "hex" or "dec".
func DecodeLiteral(text string, format string) (int64, error) {
	switch format {
	case FORMAT_HEX:
		result, err := DecodeHex(text)
		return int64(result), err
	case FORMAT_DEC:
		return DecodeDec(text)
	}

	return 0, &UnsupportedFormatError{format}
}

// FormatBinary renders value as exactly bits binary digits, left-padded with
// zeros.
func FormatBinary(value uint64, bits uint) (string, error) {
	if bits == 0 || (bits < 64 && value>>bits != 0) {
		return "", &OverflowError{bits, int64(value)}
	}

	digits := strconv.FormatUint(value, 2)

	return strings.Repeat("0", int(bits)-len(digits)) + digits, nil
}

// FormatSigned is FormatBinary for values that may be negative. Negative
// values are written in two's complement and must be representable in bits.
func FormatSigned(value int64, bits uint) (string, error) {
	if value >= 0 {
		return FormatBinary(uint64(value), bits)
	}

	if bits == 0 || (bits < 64 && value < -(int64(1)<<(bits-1))) {
		return "", &OverflowError{bits, value}
	}

	mask := ^uint64(0)
	if bits < 64 {
		mask = (uint64(1) << bits) - 1
	}

	return FormatBinary(uint64(value)&mask, bits)
}

// FormatLiteral converts text from the named base into a bits-wide binary
// string.
func FormatLiteral(text string, format string, bits uint) (string, error) {
	value, err := DecodeLiteral(text, format)

	if err != nil {
		return "", err
	}

	return FormatSigned(value, bits)
}

func FormatHex(value uint64, bits uint) string {
	width := int(bits+3) / 4
	return fmt.Sprintf("%0*X", width, value)
}

// ParseBinary reads a string of binary digits back into its value.
func ParseBinary(s string) (uint64, error) {
	if len(s) == 0 || len(s) > 64 {
		return 0, &LiteralError{"binary", s}
	}

	result, err := strconv.ParseUint(s, 2, 64)

	if err != nil {
		return 0, &LiteralError{"binary", s}
	}

	return result, nil
}

func IsBinary(s string) bool {
	if len(s) == 0 {
		return false
	}

	for _, char := range s {
		if char != '0' && char != '1' {
			return false
		}
	}

	return true
}
