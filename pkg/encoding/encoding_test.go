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

package encoding_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lassandro/gobca/pkg/encoding"
)

func TestDecodeHex(t *testing.T) {
	testData := []struct {
		input string
		value uint64
	}{
		{"100", 0x100},
		{"1F", 0x1F},
		{"ffff", 0xFFFF},
		{"0", 0},
	}
	for _, data := range testData {
		value, err := encoding.DecodeHex(data.input)
		require.NoError(t, err, data.input)
		assert.Equal(t, data.value, value, data.input)
	}

	for _, input := range []string{"", "0x", "0x1f", "x1f", "+1", "12g", "-1", "lbl"} {
		_, err := encoding.DecodeHex(input)
		assert.IsType(t, &encoding.LiteralError{}, err, input)
	}
}

func TestDecodeDec(t *testing.T) {
	testData := []struct {
		input string
		value int64
	}{
		{"5", 5},
		{"42", 42},
		{"-23", -23},
		{"-1", -1},
	}
	for _, data := range testData {
		value, err := encoding.DecodeDec(data.input)
		require.NoError(t, err, data.input)
		assert.Equal(t, data.value, value, data.input)
	}

	for _, input := range []string{"", "1f", "#42", "#-1", "0x10"} {
		_, err := encoding.DecodeDec(input)
		assert.IsType(t, &encoding.LiteralError{}, err, input)
	}
}

func TestFormatBinary(t *testing.T) {
	testData := []struct {
		value uint64
		bits  uint
		code  string
	}{
		{0, 12, "000000000000"},
		{0x100, 12, "000100000000"},
		{0xFFF, 12, "111111111111"},
		{5, 16, "0000000000000101"},
		{1, 1, "1"},
	}
	for _, data := range testData {
		code, err := encoding.FormatBinary(data.value, data.bits)
		require.NoError(t, err)
		assert.Equal(t, data.code, code)
		assert.Len(t, code, int(data.bits))
	}

	_, err := encoding.FormatBinary(0x1000, 12)
	assert.IsType(t, &encoding.OverflowError{}, err)

	_, err = encoding.FormatBinary(0, 0)
	assert.IsType(t, &encoding.OverflowError{}, err)
}

func TestFormatSigned(t *testing.T) {
	testData := []struct {
		value int64
		code  string
	}{
		{-1, "1111111111111111"},
		{-2, "1111111111111110"},
		{-32768, "1000000000000000"},
		{65535, "1111111111111111"},
		{23, "0000000000010111"},
	}
	for _, data := range testData {
		code, err := encoding.FormatSigned(data.value, 16)
		require.NoError(t, err)
		assert.Equal(t, data.code, code)
	}

	_, err := encoding.FormatSigned(-32769, 16)
	assert.IsType(t, &encoding.OverflowError{}, err)

	_, err = encoding.FormatSigned(65536, 16)
	assert.IsType(t, &encoding.OverflowError{}, err)
}

func TestFormatLiteral(t *testing.T) {
	code, err := encoding.FormatLiteral("5", encoding.FORMAT_HEX, 16)
	require.NoError(t, err)
	assert.Equal(t, "0000000000000101", code)

	code, err = encoding.FormatLiteral("10", encoding.FORMAT_DEC, 16)
	require.NoError(t, err)
	assert.Equal(t, "0000000000001010", code)

	code, err = encoding.FormatLiteral("10", encoding.FORMAT_HEX, 16)
	require.NoError(t, err)
	assert.Equal(t, "0000000000010000", code)

	_, err = encoding.FormatLiteral("10", "oct", 16)
	assert.IsType(t, &encoding.UnsupportedFormatError{}, err)

	_, err = encoding.FormatLiteral("10000", encoding.FORMAT_HEX, 16)
	assert.IsType(t, &encoding.OverflowError{}, err)
}

func TestFormatHex(t *testing.T) {
	assert.Equal(t, "100", encoding.FormatHex(0x100, 12))
	assert.Equal(t, "0005", encoding.FormatHex(5, 16))
	assert.Equal(t, "F", encoding.FormatHex(15, 3))
}

func TestParseBinary(t *testing.T) {
	value, err := encoding.ParseBinary("0001000100000000")
	require.NoError(t, err)
	assert.Equal(t, uint64(0x1100), value)

	_, err = encoding.ParseBinary("")
	assert.Error(t, err)

	_, err = encoding.ParseBinary("0102")
	assert.Error(t, err)

	assert.True(t, encoding.IsBinary("0101"))
	assert.False(t, encoding.IsBinary("01a1"))
	assert.False(t, encoding.IsBinary(""))
}
