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

package sdlscreen

import (
	"image"
	"image/png"
	"os"

	"golang.org/x/image/draw"

	"github.com/jetsetilly/softvga/curated"
	"github.com/jetsetilly/softvga/logger"
)

// SaveImage writes the most recent frame to a PNG file, upscaled by the
// given integer factor.
func (scr *Screen) SaveImage(path string, scale int) error {
	if scale < 1 {
		scale = 1
	}

	w := scr.tm.VideoPixels
	h := scr.tm.VideoLines

	src := image.NewRGBA(image.Rect(0, 0, w, h))
	scr.crit.Lock()
	copy(src.Pix, scr.pixels)
	scr.crit.Unlock()

	dst := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	f, err := os.Create(path)
	if err != nil {
		return curated.Errorf(curated.SDLScreen, err)
	}
	defer f.Close()

	if err := png.Encode(f, dst); err != nil {
		return curated.Errorf(curated.SDLScreen, err)
	}

	logger.Logf("sdl", "screenshot written to %s", path)

	return nil
}
