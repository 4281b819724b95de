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

package vga

import (
	"testing"

	"github.com/jetsetilly/softvga/curated"
	"github.com/jetsetilly/softvga/test"
)

func noopRaster(_ int, _ *TargetBuffer, _ *RasterCtx) {
}

func TestBandValidation(t *testing.T) {
	// well formed
	test.ExpectedSuccess(t, validateBands([]Band{
		{Start: 0, End: 300, Rasterizer: noopRaster},
		{Start: 300, End: 600, Rasterizer: noopRaster},
	}, 600))

	// empty list
	test.ExpectedSuccess(t, curated.Is(validateBands(nil, 600), curated.InvalidBandList))

	// doesn't start at line 0
	test.ExpectedFailure(t, validateBands([]Band{
		{Start: 10, End: 600, Rasterizer: noopRaster},
	}, 600) == nil)

	// gap between bands
	test.ExpectedFailure(t, validateBands([]Band{
		{Start: 0, End: 200, Rasterizer: noopRaster},
		{Start: 300, End: 600, Rasterizer: noopRaster},
	}, 600) == nil)

	// overlapping bands
	test.ExpectedFailure(t, validateBands([]Band{
		{Start: 0, End: 400, Rasterizer: noopRaster},
		{Start: 300, End: 600, Rasterizer: noopRaster},
	}, 600) == nil)

	// short of the full frame
	test.ExpectedFailure(t, validateBands([]Band{
		{Start: 0, End: 599, Rasterizer: noopRaster},
	}, 600) == nil)

	// empty range
	test.ExpectedFailure(t, validateBands([]Band{
		{Start: 0, End: 0, Rasterizer: noopRaster},
		{Start: 0, End: 600, Rasterizer: noopRaster},
	}, 600) == nil)

	// missing rasterizer
	test.ExpectedFailure(t, validateBands([]Band{
		{Start: 0, End: 600},
	}, 600) == nil)
}

func TestBandLookup(t *testing.T) {
	tbl, err := newBandTable([]Band{
		{Start: 0, End: 100, Rasterizer: noopRaster},
		{Start: 100, End: 150, Rasterizer: noopRaster},
		{Start: 150, End: 600, Rasterizer: noopRaster},
	}, 600)
	test.ExpectedSuccess(t, err)
	defer tbl.revokeAll()

	// the pointer is monotone: it never moves backwards and lookup is a
	// walk, not a search
	idx := 0
	idx = tbl.entryFor(idx, 0)
	test.Equate(t, idx, 0)
	idx = tbl.entryFor(idx, 99)
	test.Equate(t, idx, 0)
	idx = tbl.entryFor(idx, 100)
	test.Equate(t, idx, 1)
	idx = tbl.entryFor(idx, 300)
	test.Equate(t, idx, 2)
	idx = tbl.entryFor(idx, 599)
	test.Equate(t, idx, 2)
}
