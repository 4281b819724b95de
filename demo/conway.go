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
	"math/rand"

	"github.com/jetsetilly/softvga/hardware/vga"
	"github.com/jetsetilly/softvga/hardware/vga/rast"
)

// the life world is a 1bpp bitmap the size of the visible frame.
const (
	lifeWidthWords = 800 / rast.WordBits
	lifeHeight     = 600
)

// lifeWorld is one generation of the game of life.
type lifeWorld struct {
	bits []uint32
}

func newLifeWorld() *lifeWorld {
	return &lifeWorld{
		bits: make([]uint32, lifeWidthWords*lifeHeight),
	}
}

func (w *lifeWorld) get(x, y int) int {
	if x < 0 || x >= lifeWidthWords*rast.WordBits || y < 0 || y >= lifeHeight {
		return 0
	}
	word := w.bits[y*lifeWidthWords+x/rast.WordBits]
	return int(word>>(uint(x)%rast.WordBits)) & 1
}

func (w *lifeWorld) set(x, y int, alive bool) {
	i := y*lifeWidthWords + x/rast.WordBits
	mask := uint32(1) << (uint(x) % rast.WordBits)
	if alive {
		w.bits[i] |= mask
	} else {
		w.bits[i] &^= mask
	}
}

func (w *lifeWorld) randomise() {
	for i := range w.bits {
		w.bits[i] = rand.Uint32() & rand.Uint32()
	}
}

// step computes the next generation of src into dst.
func (dst *lifeWorld) step(src *lifeWorld) {
	width := lifeWidthWords * rast.WordBits
	for y := 0; y < lifeHeight; y++ {
		for x := 0; x < width; x++ {
			n := src.get(x-1, y-1) + src.get(x, y-1) + src.get(x+1, y-1) +
				src.get(x-1, y) + src.get(x+1, y) +
				src.get(x-1, y+1) + src.get(x, y+1) + src.get(x+1, y+1)

			alive := src.get(x, y) == 1
			dst.set(x, y, n == 3 || (alive && n == 2))
		}
	}
}

// conway runs the game of life. The generation step happens in thread-mode
// while the interrupt side scans out the previous generation; the display
// list swaps to the new generation at the frame boundary, so the two never
// share a buffer.
func conway(dr *vga.SyncDriver, quit <-chan bool) {
	front := newLifeWorld()
	back := newLifeWorld()
	front.randomise()

	cm := vga.DefaultColourModel
	fg := cm.Pack(0, 3, 0)
	bg := cm.Pack(0, 0, 1)

	bandsFor := func(w *lifeWorld) []vga.Band {
		return []vga.Band{{
			Start:      0,
			End:        lifeHeight,
			Rasterizer: rast.Bitmap1(w.bits, lifeWidthWords, lifeHeight, fg, bg),
		}}
	}

	err := dr.WithBands(bandsFor(front), func(rd *vga.RasterDriver) {
		runScope(rd, quit, func() {
			back.step(front)
			front, back = back, front

			// the new generation is staged now and adopted by the
			// scan-out engine at the next frame boundary
			if err := rd.ReplaceBands(bandsFor(front)); err != nil {
				panic(err)
			}
		})
	})
	if err != nil {
		panic(err)
	}
}
