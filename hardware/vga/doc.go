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

// Package vga generates an 800x600 60Hz SuperVGA signal entirely in
// software, in the manner of the bit-banged VGA drivers for video-less
// microcontrollers. There is no framebuffer: every scanline is rasterized
// just in time by a caller supplied function, double-buffered through a
// pair of scanline buffers and handed to a DMA stream that shifts the bytes
// out of a GPIO port at the pixel clock.
//
// Three interrupt routines run the signal, in strict priority order:
// start-of-active-video (highest; starts the DMA transfer), end-of-active
// video (middle; advances the line state machine, drives the sync pins and
// blanks the video port) and the rasterization trigger (lowest; enters the
// loaned rasterizer to fill the working buffer for an upcoming line).
//
// The driver's lifecycle is encoded structurally at the API surface: a
// Driver can only be configured, a SyncDriver can only generate sync and
// loan rasterizers, and the rasterizer loan itself is scoped so that a
// rasterizer (and anything it captures from the caller's stack) cannot
// outlive the loan.
//
// The hardware is the register-level model in the mcu package, driven by a
// machine that dispatches the interrupt routines at the cycle positions the
// driver programs into the timers. The interrupt routines are the same code
// they would be on silicon; only the dispatch is simulated.
package vga
