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

package demo

import (
	"testing"

	"github.com/jetsetilly/softvga/curated"
	"github.com/jetsetilly/softvga/test"
)

func TestFind(t *testing.T) {
	// empty name selects the default demo
	d, err := Find("")
	test.ExpectedSuccess(t, err)
	test.Equate(t, d.Name, "stripes")

	// case insensitive
	d, err = Find("CONWAY")
	test.ExpectedSuccess(t, err)
	test.Equate(t, d.Name, "conway")

	_, err = Find("nosuchdemo")
	test.ExpectedSuccess(t, curated.Is(err, curated.UnknownDemo))
}

func TestLifeBlinker(t *testing.T) {
	// a horizontal blinker oscillates with period two
	a := newLifeWorld()
	b := newLifeWorld()

	a.set(10, 10, true)
	a.set(11, 10, true)
	a.set(12, 10, true)

	b.step(a)

	// vertical phase
	test.Equate(t, b.get(11, 9), 1)
	test.Equate(t, b.get(11, 10), 1)
	test.Equate(t, b.get(11, 11), 1)
	test.Equate(t, b.get(10, 10), 0)
	test.Equate(t, b.get(12, 10), 0)

	a.step(b)

	// back to the horizontal phase
	test.Equate(t, a.get(10, 10), 1)
	test.Equate(t, a.get(11, 10), 1)
	test.Equate(t, a.get(12, 10), 1)
	test.Equate(t, a.get(11, 9), 0)
	test.Equate(t, a.get(11, 11), 0)
}
