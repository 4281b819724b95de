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

package test

import (
	"fmt"
	"strings"
	"testing"
)

// ExpectPanic runs f and fails the test unless f panics. The panic value,
// rendered as a string, is returned for further inspection.
//
// Several driver error conditions are specified to be fatal rather than
// recoverable, so many tests need to assert that a panic has happened.
func ExpectPanic(t *testing.T, f func()) string {
	t.Helper()

	var msg string

	func() {
		defer func() {
			if r := recover(); r != nil {
				msg = fmt.Sprintf("%v", r)
			}
		}()
		f()
	}()

	if msg == "" {
		t.Errorf("expected panic")
	}

	return msg
}

// ExpectPanicWith is like ExpectPanic but additionally requires the panic
// message to contain the fragment string.
func ExpectPanicWith(t *testing.T, fragment string, f func()) {
	t.Helper()

	msg := ExpectPanic(t, f)
	if msg != "" && !strings.Contains(msg, fragment) {
		t.Errorf("panic message does not mention %q (got %q)", fragment, msg)
	}
}

// ExpectNoPanic runs f and fails the test if f panics.
func ExpectNoPanic(t *testing.T, f func()) {
	t.Helper()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("unexpected panic (%v)", r)
		}
	}()
	f()
}
