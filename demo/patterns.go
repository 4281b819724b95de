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
	"sync/atomic"

	"github.com/jetsetilly/softvga/hardware/vga"
)

// stripes is the calibration pattern: alternating full-white and black
// pixel columns at the full pixel clock. If the monitor locks onto this
// cleanly the timing is right.
func stripes(dr *vga.SyncDriver, quit <-chan bool) {
	width := dr.Timing().VideoPixels

	dr.WithRaster(func(_ int, target *vga.TargetBuffer, ctx *vga.RasterCtx) {
		for x := 0; x < width; x++ {
			if x&1 == 1 {
				target[x] = 0xff
			} else {
				target[x] = 0x00
			}
		}
		ctx.TargetRange = vga.Range{Start: 0, End: width}
	}, func(rd *vga.RasterDriver) {
		runScope(rd, quit, nil)
	})
}

// xorPattern is the classic xor texture, scrolled by one pixel each frame.
func xorPattern(dr *vga.SyncDriver, quit <-chan bool) {
	width := dr.Timing().VideoPixels

	// the rasterizer runs in interrupt context while thread-mode advances
	// the frame count, so the count crosses the boundary atomically
	var frame atomic.Int32

	dr.WithRaster(func(line int, target *vga.TargetBuffer, ctx *vga.RasterCtx) {
		f := int(frame.Load())
		for x := 0; x < width; x++ {
			target[x] = vga.Pixel((x + f) ^ (line + f))
		}
		ctx.TargetRange = vga.Range{Start: 0, End: width}
	}, func(rd *vga.RasterDriver) {
		runScope(rd, quit, func() {
			frame.Add(1)
		})
	})
}

// horizGradient sweeps each colour channel across the width of the
// screen, banded vertically. Useful for checking the resistor ladder.
func horizGradient(dr *vga.SyncDriver, quit <-chan bool) {
	width := dr.Timing().VideoPixels
	height := dr.Timing().VideoLines

	cm := vga.DefaultColourModel

	dr.WithRaster(func(line int, target *vga.TargetBuffer, ctx *vga.RasterCtx) {
		// three horizontal bands: red, green, blue
		band := line * 3 / height
		for x := 0; x < width; x++ {
			level := uint8(x * 4 / width)
			switch band {
			case 0:
				target[x] = cm.Pack(level, 0, 0)
			case 1:
				target[x] = cm.Pack(0, level, 0)
			default:
				target[x] = cm.Pack(0, 0, level)
			}
		}
		ctx.TargetRange = vga.Range{Start: 0, End: width}

		// the gradient only changes at band edges; repeating saves the
		// rasterizer call on every line in between
		next := (band + 1) * height / 3
		if next > line {
			ctx.RepeatLines = next - line
		}
	}, func(rd *vga.RasterDriver) {
		runScope(rd, quit, nil)
	})
}

// lineDouble scans out at 400x300 by emitting each output byte twice and
// declaring every line valid for two scanlines.
func lineDouble(dr *vga.SyncDriver, quit <-chan bool) {
	width := dr.Timing().VideoPixels
	cm := vga.DefaultColourModel

	var frame atomic.Int32

	dr.WithRaster(func(line int, target *vga.TargetBuffer, ctx *vga.RasterCtx) {
		f := int(frame.Load())
		y := line / 2
		for x := 0; x < width/2; x++ {
			p := cm.Pack(uint8((x+f)>>5), uint8(y>>5), uint8((x+y+f)>>6))
			target[x*2] = p
			target[x*2+1] = p
		}
		ctx.TargetRange = vga.Range{Start: 0, End: width}
		ctx.RepeatLines = 2
	}, func(rd *vga.RasterDriver) {
		runScope(rd, quit, func() {
			frame.Add(1)
		})
	})
}
