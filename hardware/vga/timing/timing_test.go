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

package timing_test

import (
	"testing"

	"github.com/jetsetilly/softvga/curated"
	"github.com/jetsetilly/softvga/hardware/vga/timing"
	"github.com/jetsetilly/softvga/test"
)

func TestSVGADescriptor(t *testing.T) {
	tm := timing.SVGA
	test.ExpectedSuccess(t, tm.Validate())

	// the individual portions must sum to the stated totals
	test.Equate(t, tm.SyncPixels+tm.BackPorchPixels+tm.VideoPixels+tm.FrontPorchPixels, tm.LinePixels)
	test.Equate(t, tm.SyncLines+tm.BackPorchLines+tm.VideoLines+tm.FrontPorchLines, tm.FrameLines)

	test.Equate(t, tm.LinePixels, 1056)
	test.Equate(t, tm.FrameLines, 628)
	test.Equate(t, tm.VideoStartLine(), 28)
	test.Equate(t, tm.VideoEndLine(), 628)
	test.Equate(t, tm.VSyncStartLine(), 1)
	test.Equate(t, tm.VSyncEndLine(), 5)

	// pixel clock divided down the length of the frame gives the refresh
	// rate, within tolerance
	hz := tm.RefreshRate()
	if hz < 60.0 || hz > 60.7 {
		t.Errorf("svga refresh rate out of tolerance (%f)", hz)
	}
}

func TestValidateRefusals(t *testing.T) {
	// zero clocks-per-pixel
	tm := timing.SVGA
	tm.ClocksPerPixel = 0
	test.ExpectedSuccess(t, curated.Is(tm.Validate(), curated.InvalidTiming))

	// below the hardware minimum
	tm = timing.SVGA
	tm.ClocksPerPixel = 2
	test.ExpectedSuccess(t, curated.Is(tm.Validate(), curated.InvalidTiming))

	// zero-width porch
	tm = timing.SVGA
	tm.BackPorchPixels = 0
	test.ExpectedFailure(t, tm.Validate() == nil)

	tm = timing.SVGA
	tm.FrontPorchLines = 0
	test.ExpectedFailure(t, tm.Validate() == nil)

	// portions not summing to the total
	tm = timing.SVGA
	tm.LinePixels = 1000
	test.ExpectedFailure(t, tm.Validate() == nil)

	// period overflowing the 16-bit timer
	tm = timing.SVGA
	tm.ClocksPerPixel = 64
	test.ExpectedSuccess(t, curated.Is(tm.Validate(), curated.InvalidTiming))
}

func TestDerivedCycles(t *testing.T) {
	tm := timing.SVGA
	test.Equate(t, tm.CyclesPerLine(), 4224)
	test.Equate(t, tm.SAVPixel(), 128+88-20)
	test.Equate(t, tm.EAVPixel(), 128+88+800)
}
