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
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func stderrIsTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

func bold(s string) string {
	if !stderrIsTerminal() {
		return s
	}

	return "\033[1m" + s + "\033[0m"
}

func red(s string) string {
	if !stderrIsTerminal() {
		return s
	}

	return "\033[31m" + s + "\033[0m"
}

// Column count of the terminal behind fd, or 0 if fd is not a terminal.
func terminalWidth(fd int) int {
	if !term.IsTerminal(fd) {
		return 0
	}

	winsize, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)

	if err != nil {
		return 0
	}

	return int(winsize.Col)
}
