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
	"github.com/jetsetilly/softvga/hardware/vga"
	"github.com/jetsetilly/softvga/hardware/vga/rast"
)

// bandedScreen splits the frame into three independently rasterized
// bands: a solid sky, an xor texture and a solid ground. Mostly useful for
// exercising the display list but it also shows how cheap a solid band is.
func bandedScreen(dr *vga.SyncDriver, quit <-chan bool) {
	tm := dr.Timing()
	width := tm.VideoPixels
	height := tm.VideoLines

	cm := vga.DefaultColourModel
	sky := cm.Pack(0, 1, 3)
	ground := cm.Pack(1, 2, 0)

	texture := func(line int, target *vga.TargetBuffer, ctx *vga.RasterCtx) {
		for x := 0; x < width; x++ {
			target[x] = vga.Pixel(x ^ (line * 2))
		}
		ctx.TargetRange = vga.Range{Start: 0, End: width}
	}

	bands := []vga.Band{
		{Start: 0, End: height / 4, Rasterizer: rast.SolidColour(sky, width)},
		{Start: height / 4, End: height * 3 / 4, Rasterizer: texture},
		{Start: height * 3 / 4, End: height, Rasterizer: rast.SolidColour(ground, width)},
	}

	err := dr.WithBands(bands, func(rd *vga.RasterDriver) {
		runScope(rd, quit, nil)
	})
	if err != nil {
		panic(err)
	}
}
