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

// Package demo contains the demonstration programs that drive the VGA
// core. Each demo loans its rasterizers to the driver for the duration of
// its run and does all of its drawing work in thread-mode, synchronised to
// vblank.
package demo

import (
	"strings"

	"github.com/jetsetilly/softvga/curated"
	"github.com/jetsetilly/softvga/hardware/vga"
)

// Demo is a named entry in the demo list.
type Demo struct {
	Name        string
	Description string

	// Run blocks until the quit channel is closed. It is handed the
	// sync-generating driver and is responsible for the rasterizer loan
	// and the video gate.
	Run func(dr *vga.SyncDriver, quit <-chan bool)
}

// list of available demos. the first entry is the default.
var demos = []Demo{
	{Name: "stripes", Description: "vertical stripe calibration pattern", Run: stripes},
	{Name: "xor", Description: "animated xor texture", Run: xorPattern},
	{Name: "grad", Description: "horizontal gradient test pattern", Run: horizGradient},
	{Name: "double", Description: "line-doubled 400x300 direct colour", Run: lineDouble},
	{Name: "conway", Description: "game of life on a 1bpp framebuffer", Run: conway},
	{Name: "bands", Description: "split-screen display list", Run: bandedScreen},
}

// List returns the available demos in presentation order.
func List() []Demo {
	return demos
}

// Find returns the named demo. An empty name selects the default.
func Find(name string) (Demo, error) {
	if name == "" {
		return demos[0], nil
	}
	for _, d := range demos {
		if strings.EqualFold(d.Name, name) {
			return d, nil
		}
	}
	return Demo{}, curated.Errorf(curated.UnknownDemo, name)
}

// runScope is the common thread-mode loop: video on, wait out frames until
// quit, video off. perFrame may be nil; when present it runs once per
// frame, after the vblank edge.
func runScope(rd *vga.RasterDriver, quit <-chan bool, perFrame func()) {
	rd.VideoOn()
	defer rd.VideoOff()

	for {
		select {
		case <-quit:
			return
		default:
		}

		rd.SyncToVblank()

		if perFrame != nil {
			perFrame()
		}
	}
}
