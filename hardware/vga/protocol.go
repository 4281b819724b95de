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

// PixelRenderer implementations display, or otherwise work with, the
// byte-stream the driver shifts out of the video port. In the simulation
// they stand in for the monitor on the other end of the cable.
//
// The renderer functions are called from the machine goroutine, never from
// the goroutine that created the renderer. Implementations look after
// their own synchronisation.
type PixelRenderer interface {
	// NewFrame is called at the frame boundary, before the first visible
	// line of the new frame.
	NewFrame(frameNum int) error

	// SetScanline is called once for every visible scanline, with the line
	// number counting from zero at the top of the visible frame. The
	// pixels slice is the full width of the visible line; positions the
	// rasterizer did not cover are at blanking level. The slice is only
	// valid for the duration of the call.
	SetScanline(line int, pixels []Pixel) error

	// EndRendering is called when sync generation stops. The renderer
	// should be considered unusable afterwards.
	EndRendering() error
}

// FrameTrigger implementations listen for frame boundaries only.
// FrameTrigger is a subset of PixelRenderer.
type FrameTrigger interface {
	NewFrame(frameNum int) error
}
