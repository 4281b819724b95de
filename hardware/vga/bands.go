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
	"fmt"

	"github.com/jetsetilly/softvga/curated"
)

// Band maps a contiguous range of visible scanlines to a rasterizer. The
// range is half-open.
type Band struct {
	Start      int
	End        int
	Rasterizer Rasterizer
}

func (b Band) String() string {
	return fmt.Sprintf("[%d,%d)", b.Start, b.End)
}

// a band entry pairs the line range with the slot its rasterizer is loaned
// through.
type bandEntry struct {
	start int
	end   int
	slot  *slot
}

// bandTable is the display list the scan-out engine walks. The table is
// immutable once built; replacing the display list builds a new table and
// stages it, to be latched by the engine at the next frame boundary.
type bandTable struct {
	entries []bandEntry
}

// validateBands checks a band list for the malformations that are rejected
// at publish time: empty lists, nil rasterizers, overlaps, gaps and ranges
// that do not jointly cover the visible frame.
func validateBands(bands []Band, videoLines int) error {
	if len(bands) == 0 {
		return curated.Errorf(curated.InvalidBandList, "empty band list")
	}

	if bands[0].Start != 0 {
		return curated.Errorf(curated.InvalidBandList,
			fmt.Sprintf("first band starts at line %d, not line 0", bands[0].Start))
	}

	for i, b := range bands {
		if b.Rasterizer == nil {
			return curated.Errorf(curated.InvalidBandList,
				fmt.Sprintf("band %s has no rasterizer", b))
		}
		if b.Start >= b.End {
			return curated.Errorf(curated.InvalidBandList,
				fmt.Sprintf("band %s is empty or inverted", b))
		}
		if i > 0 {
			prev := bands[i-1]
			if b.Start < prev.End {
				return curated.Errorf(curated.InvalidBandList,
					fmt.Sprintf("band %s overlaps band %s", b, prev))
			}
			if b.Start > prev.End {
				return curated.Errorf(curated.InvalidBandList,
					fmt.Sprintf("gap between band %s and band %s", prev, b))
			}
		}
	}

	if bands[len(bands)-1].End != videoLines {
		return curated.Errorf(curated.InvalidBandList,
			fmt.Sprintf("bands end at line %d, not line %d", bands[len(bands)-1].End, videoLines))
	}

	return nil
}

// newBandTable validates the band list, arms a slot for every band and
// returns the table. The caller owns the arm/revoke pairing: revokeAll must
// be called before the rasterizers' captured environments go out of scope.
func newBandTable(bands []Band, videoLines int) (*bandTable, error) {
	if err := validateBands(bands, videoLines); err != nil {
		return nil, err
	}

	tbl := &bandTable{
		entries: make([]bandEntry, len(bands)),
	}
	for i, b := range bands {
		tbl.entries[i] = bandEntry{
			start: b.Start,
			end:   b.End,
			slot:  &slot{},
		}
		tbl.entries[i].slot.arm(b.Rasterizer)
	}

	return tbl, nil
}

// revokeAll drains every slot in the table. See slot.revoke for the
// poisoning behaviour.
func (tbl *bandTable) revokeAll() {
	for i := range tbl.entries {
		tbl.entries[i].slot.revoke()
	}
}

// entryFor returns the index of the band covering the given visible line.
// idx is the caller's monotone pointer into the table: lookup never
// searches, it only ever steps the pointer forward.
func (tbl *bandTable) entryFor(idx int, line int) int {
	for idx < len(tbl.entries)-1 && line >= tbl.entries[idx].end {
		idx++
	}
	return idx
}
