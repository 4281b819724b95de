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

// SolidColour fills scanlines with a single colour, nearly for free: one
// pixel is emitted and the pixel clock is slowed until that pixel covers
// the whole width of the line.
func SolidColour(colour vga.Pixel, width int) vga.Rasterizer {
	return func(line int, target *vga.TargetBuffer, ctx *vga.RasterCtx) {
		// one pixel, one colour, stretched across the whole line
		target[0] = colour
		ctx.TargetRange = vga.Range{Start: 0, End: 1}
		ctx.CyclesPerPixel *= width
	}
}
