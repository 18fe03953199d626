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
	"encoding/binary"
	"fmt"
	"io"

	"github.com/lassandro/gobca/pkg/encoding"
)

// Cell is one assembled word. Address and Word are fixed-width binary
// strings; Location is the numeric address.
type Cell struct {
	Address  string
	Word     string
	Location uint
	Position Cursor
}

// Image is the assembled program in emission order. Each address appears at
// most once.
type Image struct {
	AddressBits uint
	WordBits    uint
	Cells       []Cell
	index       map[uint]int
}

func NewImage(config Config) *Image {
	return &Image{
		AddressBits: config.AddressBits,
		WordBits:    config.WordBits,
		index:       make(map[uint]int),
	}
}

func (image *Image) Len() int {
	return len(image.Cells)
}

func (image *Image) Lookup(addr uint) (Cell, bool) {
	if i, exists := image.index[addr]; exists {
		return image.Cells[i], true
	}

	return Cell{}, false
}

// Stores cell, replacing any word already at its address in place. The
// replaced cell is returned so the caller can report the overlap.
func (image *Image) put(cell Cell) (Cell, bool) {
	if i, exists := image.index[cell.Location]; exists {
		previous := image.Cells[i]
		image.Cells[i] = cell
		return previous, true
	}

	image.index[cell.Location] = len(image.Cells)
	image.Cells = append(image.Cells, cell)

	return Cell{}, false
}

// WriteTo writes one "<address> <word>" line per cell.
func (image *Image) WriteTo(output io.Writer) (int64, error) {
	var total int64
	var writer = bufio.NewWriter(output)

	for _, cell := range image.Cells {
		n, err := fmt.Fprintf(writer, "%s %s\n", cell.Address, cell.Word)
		total += int64(n)

		if err != nil {
			return total, err
		}
	}

	return total, writer.Flush()
}

// WriteRaw writes the whole address space as big-endian 16-bit words, with
// unassembled addresses left as zero.
func (image *Image) WriteRaw(output io.Writer) error {
	if image.WordBits > 16 || image.AddressBits > 16 {
		return &ConfigError{
			fmt.Sprintf(
				"raw images need 16-bit words and addresses, have %d/%d",
				image.WordBits, image.AddressBits,
			),
		}
	}

	memory := make([]uint16, 1<<image.AddressBits)

	for _, cell := range image.Cells {
		value, err := encoding.ParseBinary(cell.Word)

		if err != nil {
			return err
		}

		memory[cell.Location] = uint16(value)
	}

	return binary.Write(output, binary.BigEndian, memory)
}
