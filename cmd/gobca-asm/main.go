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

package main

import (
	"bytes"
	"encoding/gob"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/k0kubun/pp/v3"

	"github.com/lassandro/gobca/pkg/assembler"
	"github.com/lassandro/gobca/pkg/optable"
)

var helpvar bool
var debugvar bool
var rawvar bool
var listingvar bool
var dumpvar bool
var outvar string
var mrivar string
var rrivar string
var ioivar string

const usage = "gobca-asm [-mri file -rri file -ioi file] [-raw] [-listing] " +
	"[-debug] [-dump] [-out outfile] filename"

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
}

func init() {
	flag.BoolVar(&helpvar, "help", false, "Displays command usage")
	flag.BoolVar(
		&debugvar, "debug", false,
		"Specifies whether to generate debugging information as a symbol "+
			"table. The table will use the output filename with extension "+
			"'.bcadb'",
	)
	flag.BoolVar(
		&rawvar, "raw", false,
		"Writes the whole address space as big-endian 16-bit words instead "+
			"of '<address> <word>' text lines",
	)
	flag.BoolVar(
		&listingvar, "listing", false,
		"Prints an address/word/source listing to stdout",
	)
	flag.BoolVar(
		&dumpvar, "dump", false,
		"Prints the opcode tables, symbol table and image to stderr",
	)
	flag.StringVar(
		&outvar, "out", "",
		"Specifies a precise name for the output file, "+
			"overriding the default means of determining it",
	)
	flag.StringVar(
		&mrivar, "mri", "",
		"Memory-reference instruction table (default: built-in)",
	)
	flag.StringVar(
		&rrivar, "rri", "",
		"Register-reference instruction table (default: built-in)",
	)
	flag.StringVar(
		&ioivar, "ioi", "",
		"Input/output instruction table (default: built-in)",
	)

	// Pass tracing from -v goes to the terminal unless asked otherwise
	flag.Set("logtostderr", "true")
}

func loadTables() (*optable.Tables, error) {
	if mrivar == "" && rrivar == "" && ioivar == "" {
		return optable.Default(), nil
	}

	if mrivar == "" || rrivar == "" || ioivar == "" {
		return nil, &optable.InputFormatError{
			Source: "<flags>",
			Reason: "-mri, -rri and -ioi must be given together",
		}
	}

	return optable.LoadFiles(mrivar, rrivar, ioivar)
}

func checkExtension(filename string, allowed ...string) error {
	ext := filepath.Ext(filename)

	for _, want := range allowed {
		if ext == want {
			return nil
		}
	}

	return &optable.InputFormatError{
		Source:   filename,
		Received: ext,
		Reason:   "File must end with " + strings.Join(allowed, " or "),
	}
}

func gobca_asm() int {
	if helpvar {
		fmt.Println(usage)
		flag.PrintDefaults()
		return 0
	}

	args := flag.Args()

	var infile string
	var source []byte

	if len(args) == 0 && !stdinIsTerminal() {
		log.SetPrefix(bold("<stdin>:"))

		var err error
		if source, err = io.ReadAll(os.Stdin); err != nil {
			log.Println(err)
			return 1
		}

		if outvar == "" {
			outvar = "out.txt"
		}
	} else {
		if len(args) != 1 {
			log.Println(usage)
			return 1
		}

		filename := filepath.Base(args[0])
		log.SetPrefix(bold(filename + ":"))

		if err := checkExtension(filename, ".asm", ".S"); err != nil {
			log.Println(err)
			return 1
		}

		if stat, err := os.Stat(args[0]); err != nil {
			log.Println(err)
			return 1
		} else if stat.IsDir() {
			log.Printf("%s is not a valid assembly file", filename)
			return 1
		}

		var err error
		if source, err = os.ReadFile(args[0]); err != nil {
			log.Println(err)
			return 1
		}

		infile = args[0]

		if outvar == "" {
			outvar = strings.TrimSuffix(filename, filepath.Ext(filename)) + ".txt"
		}
	}

	if rawvar {
		outvar = strings.TrimSuffix(outvar, filepath.Ext(outvar)) + ".bin"
	} else if err := checkExtension(outvar, ".txt"); err != nil {
		log.Println(err)
		return 1
	}

	tables, err := loadTables()

	if err != nil {
		log.Println(err)
		return 1
	}

	asm, err := assembler.New(tables, assembler.DefaultConfig)

	if err != nil {
		log.Println(err)
		return 1
	}

	image, symtable, errs := asm.Assemble(bytes.NewReader(source))

	if dumpvar {
		pp.Default.SetColoringEnabled(stderrIsTerminal())
		pp.Fprintln(os.Stderr, tables)
		pp.Fprintln(os.Stderr, symtable)
		pp.Fprintln(os.Stderr, image)
	}

	if len(errs) > 0 {
		for _, err := range errs {
			reportError(err, source)
		}

		return 1
	}

	if listingvar {
		printListing(os.Stdout, image, symtable, source)
	}

	{
		buffer := new(bytes.Buffer)

		if rawvar {
			err = image.WriteRaw(buffer)
		} else {
			_, err = image.WriteTo(buffer)
		}

		if err != nil {
			log.Println("Error writing output file")
			log.Println(err)
			return 1
		}

		if err := os.WriteFile(outvar, buffer.Bytes(), 0666); err != nil {
			log.Println("Error writing output file")
			log.Println(err)
			return 1
		}
	}

	if debugvar {
		var table *assembler.DebugTable

		if infile != "" {
			abs, err := filepath.Abs(infile)

			if err != nil {
				log.Println(err)
				abs = ""
			}

			table = assembler.NewDebugTable(abs, symtable, image)
		} else {
			table = assembler.NewDebugTable("", symtable, image)
		}

		filename := filepath.Join(
			filepath.Dir(outvar),
			strings.TrimSuffix(filepath.Base(outvar), filepath.Ext(outvar))+".bcadb",
		)

		if file, err := os.OpenFile(
			filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666,
		); err == nil {
			if err := gob.NewEncoder(file).Encode(table); err != nil {
				file.Close()
				log.Println("Error writing symbol table")
				log.Println(err)
				return 1
			}

			file.Close()
		} else {
			log.Println("Error creating symbol table")
			log.Println(err)
			return 1
		}
	}

	return 0
}

func main() {
	flag.Parse()

	status := gobca_asm()
	glog.Flush()
	os.Exit(status)
}
