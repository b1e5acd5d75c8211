// This file is part of GBprobe.
//
// GBprobe is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GBprobe is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GBprobe.  If not, see <https://www.gnu.org/licenses/>.

// Package term reads single keypresses from a posix terminal. Used by the
// interactive memory scanner, where samples are triggered by hand rather
// than on a frame interval.
//
// The terminal is placed in cbreak mode. input is delivered per keypress
// without echo suppression or any of the other alterations of full raw
// mode. Restore() must be called before the program exits or the user's
// shell is left in a confusing state.
package term

import (
	"os"

	"github.com/hexela/gbprobe/curated"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// KeyReader delivers single keypresses without waiting for a newline.
type KeyReader struct {
	input *os.File

	// terminal attributes on entry, restored by Restore()
	canAttr unix.Termios

	// C carries one value per keypress
	C chan byte
}

// NewKeyReader is the preferred method of initialisation for the KeyReader
// type. The input file must be a terminal.
func NewKeyReader(input *os.File) (*KeyReader, error) {
	kr := &KeyReader{
		input: input,
		C:     make(chan byte),
	}

	if err := termios.Tcgetattr(input.Fd(), &kr.canAttr); err != nil {
		return nil, curated.Errorf("term: %v", err)
	}

	cbreakAttr := kr.canAttr
	termios.Cfmakecbreak(&cbreakAttr)
	if err := termios.Tcsetattr(input.Fd(), termios.TCIFLUSH, &cbreakAttr); err != nil {
		return nil, curated.Errorf("term: %v", err)
	}

	go func() {
		buf := make([]byte, 1)
		for {
			n, err := kr.input.Read(buf)
			if err != nil {
				close(kr.C)
				return
			}
			if n == 1 {
				kr.C <- buf[0]
			}
		}
	}()

	return kr, nil
}

// Restore the terminal attributes found at initialisation.
func (kr *KeyReader) Restore() error {
	if err := termios.Tcsetattr(kr.input.Fd(), termios.TCIFLUSH, &kr.canAttr); err != nil {
		return curated.Errorf("term: %v", err)
	}
	return nil
}
