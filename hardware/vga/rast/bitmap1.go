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

// WordBits is the number of pixels packed into each word of a 1bpp
// framebuffer.
const WordBits = 32

// Bitmap1 scans out a 1bpp framebuffer, mapping clear bits to the
// background colour and set bits to the foreground colour. Bit zero of
// each word is the leftmost pixel of its 32-pixel group.
//
// The framebuffer must hold widthWords*height words. The same lifetime
// rules as for Direct apply.
func Bitmap1(fb []uint32, widthWords, height int, fg, bg vga.Pixel) vga.Rasterizer {
	width := widthWords * WordBits

	return func(line int, target *vga.TargetBuffer, ctx *vga.RasterCtx) {
		if line >= height {
			line = height - 1
		}

		off := line * widthWords
		x := 0
		for w := 0; w < widthWords; w++ {
			word := fb[off+w]
			for b := 0; b < WordBits; b++ {
				if word&1 != 0 {
					target[x] = fg
				} else {
					target[x] = bg
				}
				word >>= 1
				x++
			}
		}

		ctx.TargetRange = vga.Range{Start: 0, End: width}
	}
}
