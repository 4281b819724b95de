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

// Package timing contains the definitions of the video timings the driver
// can generate. A Timing value is immutable once constructed; the driver
// checks it once at configuration time and trusts it thereafter.
package timing

import (
	"fmt"

	"github.com/jetsetilly/softvga/curated"
	"github.com/jetsetilly/softvga/hardware/mcu"
)

// MinClocksPerPixel is the minimum number of AHB cycles needed to shift one
// pixel out of the GPIO port. This is a fundamental hardware limitation.
const MinClocksPerPixel = 4

// MaxPixelsPerLine is the maximum number of visible pixels in a scanline.
// Timing limitations mean modes above 800x600 aren't achievable, so this
// fact is used to size the scanline buffers.
const MaxPixelsPerLine = 800

// Polarity of a sync pulse and, by implication, the idle state of the sync
// signal.
type Polarity bool

// List of valid Polarity values.
const (
	Positive Polarity = true
	Negative Polarity = false
)

func (p Polarity) String() string {
	if p == Positive {
		return "positive"
	}
	return "negative"
}

// Timing defines the parameters of a video mode along both axes. The
// horizontal fields are measured in pixels and the vertical fields in
// scanlines.
//
// Scanlines are numbered from the top of the vertical blanking interval:
// line zero is the first line after active video ends, and active video
// spans [VideoStartLine, FrameLines).
type Timing struct {
	// the CPU clock this timing assumes, and the number of AHB cycles per
	// pixel clock. the pixel clock is the quotient of the two
	CPUClockHz     float32
	ClocksPerPixel int

	// horizontal. LinePixels is the whole line including blanking
	LinePixels       int
	SyncPixels       int
	BackPorchPixels  int
	VideoPixels      int
	FrontPorchPixels int

	// moves the start-of-video interrupt backwards in time, to compensate
	// for interrupt latency. measured in pixel clocks
	VideoLead int

	HSyncPolarity Polarity

	// vertical. FrameLines is the whole frame including blanking
	FrameLines      int
	SyncLines       int
	BackPorchLines  int
	VideoLines      int
	FrontPorchLines int

	VSyncPolarity Polarity
}

func (tm Timing) String() string {
	return fmt.Sprintf("%dx%d @ %.2fHz", tm.VideoPixels, tm.VideoLines, tm.RefreshRate())
}

// VSyncStartLine returns the scanline of the leading edge of the vertical
// sync pulse.
func (tm Timing) VSyncStartLine() int {
	return tm.FrontPorchLines
}

// VSyncEndLine returns the scanline of the trailing edge of the vertical
// sync pulse.
func (tm Timing) VSyncEndLine() int {
	return tm.FrontPorchLines + tm.SyncLines
}

// VideoStartLine returns the first scanline of active video.
func (tm Timing) VideoStartLine() int {
	return tm.FrontPorchLines + tm.SyncLines + tm.BackPorchLines
}

// VideoEndLine returns the scanline after the last line of active video.
// This is also the total number of lines per frame.
func (tm Timing) VideoEndLine() int {
	return tm.VideoStartLine() + tm.VideoLines
}

// CyclesPerLine returns the length of one scanline in AHB cycles.
func (tm Timing) CyclesPerLine() int64 {
	return int64(tm.ClocksPerPixel) * int64(tm.LinePixels)
}

// PixelClock returns the pixel shift rate in Hz.
func (tm Timing) PixelClock() float32 {
	return tm.CPUClockHz / float32(tm.ClocksPerPixel)
}

// RefreshRate returns the frame rate in Hz.
func (tm Timing) RefreshRate() float32 {
	return tm.PixelClock() / float32(tm.LinePixels) / float32(tm.FrameLines)
}

// SAVPixel returns the pixel position within the line of the
// start-of-active-video event, accounting for the video lead.
func (tm Timing) SAVPixel() int {
	return tm.SyncPixels + tm.BackPorchPixels - tm.VideoLead
}

// EAVPixel returns the pixel position within the line of the
// end-of-active-video event.
func (tm Timing) EAVPixel() int {
	return tm.SyncPixels + tm.BackPorchPixels + tm.VideoPixels
}

// Validate checks the descriptor for the error conditions that prevent the
// driver from being configured. The returned error is curated with the
// curated.InvalidTiming pattern.
func (tm Timing) Validate() error {
	if tm.ClocksPerPixel == 0 {
		return curated.Errorf(curated.InvalidTiming, "clocks-per-pixel is zero")
	}
	if tm.ClocksPerPixel < MinClocksPerPixel {
		return curated.Errorf(curated.InvalidTiming,
			fmt.Sprintf("clocks-per-pixel below hardware minimum of %d", MinClocksPerPixel))
	}

	// every portion of the line and of the frame must be present
	if tm.SyncPixels == 0 || tm.BackPorchPixels == 0 || tm.VideoPixels == 0 || tm.FrontPorchPixels == 0 {
		return curated.Errorf(curated.InvalidTiming, "zero-width horizontal portion")
	}
	if tm.SyncLines == 0 || tm.BackPorchLines == 0 || tm.VideoLines == 0 || tm.FrontPorchLines == 0 {
		return curated.Errorf(curated.InvalidTiming, "zero-height vertical portion")
	}

	if tm.SyncPixels+tm.BackPorchPixels+tm.VideoPixels+tm.FrontPorchPixels != tm.LinePixels {
		return curated.Errorf(curated.InvalidTiming, "horizontal portions do not sum to line length")
	}
	if tm.SyncLines+tm.BackPorchLines+tm.VideoLines+tm.FrontPorchLines != tm.FrameLines {
		return curated.Errorf(curated.InvalidTiming, "vertical portions do not sum to frame length")
	}

	if tm.VideoPixels > MaxPixelsPerLine {
		return curated.Errorf(curated.InvalidTiming,
			fmt.Sprintf("more than %d visible pixels per line", MaxPixelsPerLine))
	}

	// the line timer counts AHB cycles across the whole line
	if tm.CyclesPerLine()-1 > mcu.MaxTimerPeriod {
		return curated.Errorf(curated.InvalidTiming, "line period overflows the timer")
	}

	if tm.VideoLead < 0 || tm.VideoLead > tm.BackPorchPixels {
		return curated.Errorf(curated.InvalidTiming, "video lead outside the back porch")
	}

	return nil
}

// SVGA is the industry standard 800x600 60Hz timing. It assumes a 160MHz
// CPU clock for a 40MHz pixel clock.
var SVGA = Timing{
	CPUClockHz:     160000000,
	ClocksPerPixel: 4,

	LinePixels:       1056,
	SyncPixels:       128,
	BackPorchPixels:  88,
	VideoPixels:      800,
	FrontPorchPixels: 40,

	VideoLead: 20,

	HSyncPolarity: Positive,

	FrameLines:      628,
	SyncLines:       4,
	BackPorchLines:  23,
	VideoLines:      600,
	FrontPorchLines: 1,

	VSyncPolarity: Positive,
}
