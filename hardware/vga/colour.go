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

import "image/color"

// ColourModel describes how the red, green and blue resistor ladders are
// wired to the video port. Each channel occupies a two-bit field of the
// pixel byte at the given shift.
//
// The default wiring puts blue in the low bits, green in the middle and
// red at the top.
type ColourModel struct {
	RedShift   uint
	GreenShift uint
	BlueShift  uint
}

// DefaultColourModel is the wiring the demos and the reference hardware
// use.
var DefaultColourModel = ColourModel{
	RedShift:   4,
	GreenShift: 2,
	BlueShift:  0,
}

// two bits per channel, expanded to the full 8-bit range.
func expand(v uint8) uint8 {
	return (v & 0b11) * 85
}

// RGBA translates a pixel byte to a displayable colour.
func (cm ColourModel) RGBA(p Pixel) color.RGBA {
	return color.RGBA{
		R: expand(p >> cm.RedShift),
		G: expand(p >> cm.GreenShift),
		B: expand(p >> cm.BlueShift),
		A: 255,
	}
}

// Pack builds a pixel byte from two-bit channel intensities.
func (cm ColourModel) Pack(r, g, b uint8) Pixel {
	return (r&0b11)<<cm.RedShift | (g&0b11)<<cm.GreenShift | (b&0b11)<<cm.BlueShift
}
