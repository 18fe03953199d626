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

package assembler_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/lassandro/gobca/pkg/assembler"
	"github.com/lassandro/gobca/pkg/optable"
)

const scenario = "org 100\nlbl, hex 5\nadd lbl\nend"

func TestImageWriteTo(t *testing.T) {
	image, errs := assembler.AssembleSource(strings.NewReader(scenario), optable.Default())

	if len(errs) > 0 {
		t.Fatal(errs[0])
	}

	var buffer bytes.Buffer

	n, err := image.WriteTo(&buffer)

	if err != nil {
		t.Fatal(err)
	}

	want := "000100000000 0000000000000101\n" +
		"000100000001 0001000100000000\n"

	if have := buffer.String(); have != want {
		t.Fatalf("Image text mismatch\nwant:%q\nhave:%q", want, have)
	}

	if n != int64(len(want)) {
		t.Fatalf("Byte count mismatch\nwant:%d\nhave:%d", len(want), n)
	}
}

func TestImageWriteRaw(t *testing.T) {
	image, errs := assembler.AssembleSource(strings.NewReader(scenario), optable.Default())

	if len(errs) > 0 {
		t.Fatal(errs[0])
	}

	var buffer bytes.Buffer

	if err := image.WriteRaw(&buffer); err != nil {
		t.Fatal(err)
	}

	raw := buffer.Bytes()

	if len(raw) != 2*4096 {
		t.Fatalf("Raw image size mismatch\nwant:%d\nhave:%d", 2*4096, len(raw))
	}

	if raw[0x200] != 0x00 || raw[0x201] != 0x05 || raw[0x202] != 0x11 || raw[0x203] != 0x00 {
		t.Fatalf("Raw words mismatch\nhave:% x", raw[0x200:0x204])
	}

	for i, b := range raw {
		if (i < 0x200 || i >= 0x204) && b != 0 {
			t.Fatalf("Unexpected byte %#02x at %#04x", b, i)
		}
	}

	wide := &assembler.Image{AddressBits: 12, WordBits: 24}

	if err := wide.WriteRaw(&buffer); err == nil {
		t.Fatal("Raw image accepted 24-bit words")
	}
}

func TestDebugTable(t *testing.T) {
	asm, err := assembler.New(optable.Default(), assembler.DefaultConfig)

	if err != nil {
		t.Fatal(err)
	}

	image, symtable, errs := asm.Assemble(strings.NewReader(scenario))

	if len(errs) > 0 {
		t.Fatal(errs[0])
	}

	table := assembler.NewDebugTable("/tmp/prog.asm", symtable, image)

	if table.Source != "/tmp/prog.asm" {
		t.Fatalf("Source mismatch\nhave:%s", table.Source)
	}

	// "org 100\n" is 8 bytes, "lbl, hex 5\n" is 11
	if want := map[uint]int64{0x100: 8, 0x101: 19}; !reflect.DeepEqual(table.Symbols, want) {
		t.Fatalf("Symbols mismatch\nwant:%v\nhave:%v", want, table.Symbols)
	}

	if want := map[uint][]string{0x100: {"lbl"}}; !reflect.DeepEqual(table.Labels, want) {
		t.Fatalf("Labels mismatch\nwant:%v\nhave:%v", want, table.Labels)
	}
}
