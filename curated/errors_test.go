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

package curated_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/softvga/curated"
	"github.com/jetsetilly/softvga/test"
)

func TestIdentity(t *testing.T) {
	e := curated.Errorf(curated.InvalidTiming, "zero back porch")
	test.ExpectedSuccess(t, curated.IsAny(e))
	test.ExpectedSuccess(t, curated.Is(e, curated.InvalidTiming))
	test.ExpectedFailure(t, curated.Is(e, curated.InvalidBandList))

	// plain errors are not curated errors
	p := errors.New("plain")
	test.ExpectedFailure(t, curated.IsAny(p))
	test.ExpectedFailure(t, curated.Is(p, curated.InvalidTiming))
}

func TestChain(t *testing.T) {
	inner := curated.Errorf(curated.InvalidTiming, "zero sync width")
	outer := curated.Errorf(curated.DriverError, inner)

	test.ExpectedSuccess(t, curated.Has(outer, curated.InvalidTiming))
	test.ExpectedSuccess(t, curated.Has(outer, curated.DriverError))
	test.ExpectedFailure(t, curated.Has(outer, curated.InvalidBandList))
}

func TestDeduplication(t *testing.T) {
	inner := curated.Errorf("vga: %v", "dma stall")
	outer := curated.Errorf("vga: %v", inner)

	// the duplicated "vga:" part should appear only once in the message
	test.Equate(t, outer.Error(), "vga: dma stall")
}
