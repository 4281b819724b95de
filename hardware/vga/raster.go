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

import "github.com/jetsetilly/softvga/hardware/vga/timing"

// Pixel is the representation of a pixel in memory. The driver consistently
// uses 8 bits per pixel; many rasterizers assume that only the bottom 6
// bits are significant (see ColourModel).
type Pixel = uint8

// the scanline buffers are a little wider than the widest visible line so
// that rasterizers can overshoot slightly without bounds checks in their
// inner loop.
const targetBufferSize = timing.MaxPixelsPerLine + 32

// TargetBuffer is the type given to rasterizers by reference, to fill with
// pixels.
type TargetBuffer [targetBufferSize]Pixel

// Range is a half-open range of pixel positions within a TargetBuffer.
type Range struct {
	Start int
	End   int
}

// Len returns the number of pixels in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// RasterCtx is passed to rasterizers. It arrives filled with default values
// for the current mode; rasterizers alter its contents to shape how their
// output is scanned out.
type RasterCtx struct {
	// Number of AHB cycles per pixel of output. Provided by the driver
	// based on the current mode; rasterizers can raise it to derive
	// horizontally subsampled modes. Values below the hardware minimum, or
	// too large for the timer period register, are a design error and the
	// driver will panic when it applies them.
	CyclesPerPixel int

	// The number of upcoming scanlines the rasterized output is valid for.
	// The driver provides 1; declaring a larger value skips the rasterizer
	// for that many lines and scans the same buffer out again, which is
	// how line-doubled modes save their compute.
	RepeatLines int

	// The range of valid pixels in the target buffer. The range is empty
	// when the rasterizer starts; to show any actual video the rasterizer
	// must replace it. Only this range is transferred to the video port;
	// the DMA start address is offset by Start, so a narrow range appears
	// at its buffer position with blanking either side.
	TargetRange Range
}

// Rasterizer is a function that produces the pixels for one scanline. The
// line number counts from zero at the top of the visible frame.
//
// Rasterizers are entered from the lowest priority interrupt routine and
// must follow interrupt discipline: no blocking, no allocation, no touching
// driver peripherals except through the context. A rasterizer can be
// preempted by the timing interrupts at any moment and its deadline is
// hard: taking longer than a line period is fatal.
type Rasterizer func(line int, target *TargetBuffer, ctx *RasterCtx)
