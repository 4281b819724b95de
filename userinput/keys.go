// This file is part of SoftVGA.
//
// SoftVGA is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// SoftVGA is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with SoftVGA.  If not, see <https://www.gnu.org/licenses/>.

// Package userinput reads single keypresses from the controlling terminal
// without waiting for a newline. It is how the headless run mode is
// controlled when there is no SDL window to receive key events.
package userinput

import (
	"github.com/pkg/term"

	"github.com/jetsetilly/softvga/curated"
)

// Keys reads raw keypresses from the terminal.
type Keys struct {
	tty *term.Term

	// keypresses are delivered on C. the channel is closed when the
	// reader ends
	C chan rune

	end chan bool
}

// NewKeys puts the terminal into raw mode and starts delivering
// keypresses. Close() must be called to restore the terminal.
func NewKeys() (*Keys, error) {
	tty, err := term.Open("/dev/tty")
	if err != nil {
		return nil, curated.Errorf(curated.TerminalInput, err)
	}

	if err := term.RawMode(tty); err != nil {
		tty.Close()
		return nil, curated.Errorf(curated.TerminalInput, err)
	}

	k := &Keys{
		tty: tty,
		C:   make(chan rune),
		end: make(chan bool),
	}

	go func() {
		defer close(k.C)
		buf := make([]byte, 1)
		for {
			n, err := k.tty.Read(buf)
			if err != nil || n == 0 {
				return
			}
			select {
			case k.C <- rune(buf[0]):
			case <-k.end:
				return
			}
		}
	}()

	return k, nil
}

// Close restores the terminal to cooked mode.
func (k *Keys) Close() {
	close(k.end)
	k.tty.Restore()
	k.tty.Close()
}
