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

package rast

import "github.com/jetsetilly/softvga/hardware/vga"

// Direct scans out an 8bpp framebuffer at a fraction of the full
// resolution. With scale 2 a 400x300 framebuffer fills the 800x600 frame:
// horizontally by slowing the pixel clock, vertically by repeating lines.
//
// The framebuffer must hold width*height pixels. It is read from interrupt
// context for the lifetime of the loan; the owner must not write to it
// outside the display-list discipline.
func Direct(fb []vga.Pixel, width, height, scale int) vga.Rasterizer {
	return func(line int, target *vga.TargetBuffer, ctx *vga.RasterCtx) {
		y := line / scale
		if y >= height {
			y = height - 1
		}

		copy(target[:width], fb[y*width:(y+1)*width])

		ctx.TargetRange = vga.Range{Start: 0, End: width}
		ctx.CyclesPerPixel *= scale
		ctx.RepeatLines = scale
	}
}
