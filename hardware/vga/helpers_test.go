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

import (
	"github.com/jetsetilly/softvga/hardware/mcu"
	"github.com/jetsetilly/softvga/hardware/vga/timing"
)

// newTestMachine returns a configured machine that the test steps
// manually, with the video gate forced open so that renderers see pixels.
func newTestMachine() *machine {
	m := newMachine(mcu.NewPeripherals())
	m.configure(timing.SVGA)
	m.videoOn.Store(true)
	return m
}

// armRaster stages a single full-frame band on a manually stepped
// machine. The returned function drains the loan.
func armRaster(m *machine, r Rasterizer) func() {
	tbl, err := newBandTable([]Band{{Start: 0, End: m.tm.VideoLines, Rasterizer: r}}, m.tm.VideoLines)
	if err != nil {
		panic(err)
	}
	m.staged.Store(tbl)
	return func() {
		m.staged.Store(nil)
		tbl.revokeAll()
	}
}

// armBands is armRaster for a full display list.
func armBands(m *machine, bands []Band) func() {
	tbl, err := newBandTable(bands, m.tm.VideoLines)
	if err != nil {
		panic(err)
	}
	m.staged.Store(tbl)
	return func() {
		m.staged.Store(nil)
		tbl.revokeAll()
	}
}

// captureRenderer records every scanline of the most recent frame.
type captureRenderer struct {
	rows   [][]Pixel
	frames int
}

func newCaptureRenderer(tm timing.Timing) *captureRenderer {
	c := &captureRenderer{
		rows: make([][]Pixel, tm.VideoLines),
	}
	for i := range c.rows {
		c.rows[i] = make([]Pixel, tm.VideoPixels)
	}
	return c
}

func (c *captureRenderer) NewFrame(_ int) error {
	c.frames++
	return nil
}

func (c *captureRenderer) SetScanline(line int, pixels []Pixel) error {
	if line >= 0 && line < len(c.rows) {
		copy(c.rows[line], pixels)
	}
	return nil
}

func (c *captureRenderer) EndRendering() error {
	return nil
}

// resetDriverSingleton allows tests to create more than one driver in the
// same process. Test use only: the production rule is one driver, ever.
func resetDriverSingleton() {
	driverCreated.Store(false)
}
