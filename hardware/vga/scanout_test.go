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
	"testing"

	"github.com/jetsetilly/softvga/hardware/mcu"
	"github.com/jetsetilly/softvga/test"
)

// the working and scanout roles must strictly alternate between the two
// scanline buffers while fresh content is being produced every line.
func TestBufferRoleAlternation(t *testing.T) {
	m := newTestMachine()

	var targets []*TargetBuffer
	release := armRaster(m, func(_ int, target *TargetBuffer, ctx *RasterCtx) {
		targets = append(targets, target)
		ctx.TargetRange = Range{Start: 0, End: m.tm.VideoPixels}
	})
	defer release()

	m.stepFrame()
	m.stepFrame()

	test.Equate(t, len(targets), m.tm.VideoLines)

	for i := 1; i < len(targets); i++ {
		if targets[i] == targets[i-1] {
			t.Fatalf("rasterizer given the same buffer twice in a row (invocation %d)", i)
		}
	}

	// only the two scanline buffers are ever handed out
	for _, tgt := range targets {
		if tgt != &m.buffers[0].pixels && tgt != &m.buffers[1].pixels {
			t.Fatal("rasterizer given a buffer outside the scanline pair")
		}
	}
}

// line numbers seen by the rasterizer are strictly monotone within a
// frame, starting at zero.
func TestMonotoneLineNumbers(t *testing.T) {
	m := newTestMachine()

	var lines []int
	release := armRaster(m, func(line int, _ *TargetBuffer, ctx *RasterCtx) {
		lines = append(lines, line)
		ctx.TargetRange = Range{Start: 0, End: m.tm.VideoPixels}
	})
	defer release()

	// the display list is latched at the first frame boundary, so the
	// first full frame of rasterization is the second stepped frame
	m.stepFrame()
	m.stepFrame()
	firstFrame := len(lines)
	m.stepFrame()

	test.Equate(t, firstFrame, m.tm.VideoLines)
	test.Equate(t, len(lines), m.tm.VideoLines*2)

	for f := 0; f < 2; f++ {
		off := f * m.tm.VideoLines
		for i := 0; i < m.tm.VideoLines; i++ {
			if lines[off+i] != i {
				t.Fatalf("frame %d invocation %d got line %d", f, i, lines[off+i])
			}
		}
	}
}

// a rasterizer declaring repeat lines is called once per group and the
// engine does not disturb the buffer in between.
func TestRepeatLines(t *testing.T) {
	m := newTestMachine()
	scr := newCaptureRenderer(m.tm)
	m.renderers = append(m.renderers, scr)

	const repeat = 4

	var lines []int
	release := armRaster(m, func(line int, target *TargetBuffer, ctx *RasterCtx) {
		lines = append(lines, line)
		for x := 0; x < m.tm.VideoPixels; x++ {
			target[x] = Pixel(line)
		}
		ctx.TargetRange = Range{Start: 0, End: m.tm.VideoPixels}
		ctx.RepeatLines = repeat
	})
	defer release()

	m.stepFrame()
	m.stepFrame()
	lines = lines[:0]
	m.stepFrame()

	// exactly ceil(videoLines/repeat) calls per frame
	test.Equate(t, len(lines), (m.tm.VideoLines+repeat-1)/repeat)

	// the group leader line for every call
	for i, l := range lines {
		test.Equate(t, l, i*repeat)
	}

	// each repeated line scans out the group leader's content unchanged
	for y := 0; y < m.tm.VideoLines; y++ {
		leader := (y / repeat) * repeat
		for x := 0; x < 8; x++ {
			if scr.rows[y][x] != Pixel(leader) {
				t.Fatalf("line %d scanned out %d, wanted group leader %d", y, scr.rows[y][x], leader)
			}
		}
	}
}

// the engine selects the correct band for every line and a repeat count
// never carries across a band boundary.
func TestBandSelection(t *testing.T) {
	m := newTestMachine()
	scr := newCaptureRenderer(m.tm)
	m.renderers = append(m.renderers, scr)

	var aLines, bLines []int

	// band A declares an absurd repeat count. the boundary must clamp it
	release := armBands(m, []Band{
		{Start: 0, End: 300, Rasterizer: func(line int, target *TargetBuffer, ctx *RasterCtx) {
			aLines = append(aLines, line)
			for x := range target {
				target[x] = 0xaa
			}
			ctx.TargetRange = Range{Start: 0, End: m.tm.VideoPixels}
			ctx.RepeatLines = 1000
		}},
		{Start: 300, End: 600, Rasterizer: func(line int, target *TargetBuffer, ctx *RasterCtx) {
			bLines = append(bLines, line)
			for x := range target {
				target[x] = 0xbb
			}
			ctx.TargetRange = Range{Start: 0, End: m.tm.VideoPixels}
		}},
	})
	defer release()

	m.stepFrame()
	m.stepFrame()
	aLines = aLines[:0]
	bLines = bLines[:0]
	m.stepFrame()

	// band A rasterized once (its repeat covers the whole band, clamped
	// at the boundary); band B rasterized for every one of its lines
	test.Equate(t, len(aLines), 1)
	test.Equate(t, aLines[0], 0)
	test.Equate(t, len(bLines), 300)
	test.Equate(t, bLines[0], 300)
	test.Equate(t, bLines[len(bLines)-1], 599)

	for y := 0; y < 600; y++ {
		want := Pixel(0xaa)
		if y >= 300 {
			want = 0xbb
		}
		if scr.rows[y][0] != want {
			t.Fatalf("line %d scanned out %#02x, wanted %#02x", y, scr.rows[y][0], want)
		}
	}
}

// only the declared target range is transferred; pixels either side stay
// at blanking level.
func TestTargetRange(t *testing.T) {
	m := newTestMachine()
	scr := newCaptureRenderer(m.tm)
	m.renderers = append(m.renderers, scr)

	release := armRaster(m, func(_ int, target *TargetBuffer, ctx *RasterCtx) {
		for x := 200; x < 600; x++ {
			target[x] = 0x3f
		}
		ctx.TargetRange = Range{Start: 200, End: 600}
	})
	defer release()

	m.stepFrame()
	m.stepFrame()

	row := scr.rows[100]
	test.Equate(t, row[199], 0x00)
	test.Equate(t, row[200], 0x3f)
	test.Equate(t, row[599], 0x3f)
	test.Equate(t, row[600], 0x00)
}

// the vertical stripes calibration scenario: after a frame, a mid-frame
// scanline is the 800-byte alternating pattern and the transfer length is
// the full width.
func TestVerticalStripes(t *testing.T) {
	m := newTestMachine()
	scr := newCaptureRenderer(m.tm)
	m.renderers = append(m.renderers, scr)

	release := armRaster(m, func(_ int, target *TargetBuffer, ctx *RasterCtx) {
		for x := 0; x < 800; x++ {
			if x&1 == 1 {
				target[x] = 0xff
			} else {
				target[x] = 0x00
			}
		}
		ctx.TargetRange = Range{Start: 0, End: 800}
		ctx.RepeatLines = 1
	})
	defer release()

	m.stepFrame()
	m.stepFrame()

	row := scr.rows[300]
	for x := 0; x < 800; x++ {
		want := Pixel(0x00)
		if x&1 == 1 {
			want = 0xff
		}
		if row[x] != want {
			t.Fatalf("stripe pattern wrong at x=%d (%#02x)", x, row[x])
		}
	}

	// the whole 800 byte range was transferred by the stream
	test.Equate(t, m.hw.DMA.LastTransfer(), 800)
}

// the line-doubled scenario: repeat two with doubled output bytes gives
// 400x300 on the full frame.
func TestLineDoubled(t *testing.T) {
	m := newTestMachine()
	scr := newCaptureRenderer(m.tm)
	m.renderers = append(m.renderers, scr)

	var calls int
	release := armRaster(m, func(line int, target *TargetBuffer, ctx *RasterCtx) {
		calls++
		y := line / 2
		for x := 0; x < 400; x++ {
			p := Pixel(x + y)
			target[x*2] = p
			target[x*2+1] = p
		}
		ctx.TargetRange = Range{Start: 0, End: 800}
		ctx.RepeatLines = 2
	})
	defer release()

	m.stepFrame()
	calls = 0
	m.stepFrame()

	test.Equate(t, calls, 300)

	// adjacent line pairs are identical; adjacent pixel pairs are
	// identical
	for y := 0; y < 600; y += 2 {
		for x := 0; x < 800; x += 16 {
			test.Equate(t, scr.rows[y][x], scr.rows[y+1][x])
			test.Equate(t, scr.rows[y][x], scr.rows[y][x+1])
		}
	}
}

// a cycles-per-pixel override stretches the emitted bytes across the line.
func TestPixelClockRetune(t *testing.T) {
	m := newTestMachine()
	scr := newCaptureRenderer(m.tm)
	m.renderers = append(m.renderers, scr)

	// one pixel stretched across the whole line, in the manner of the
	// solid colour fill
	release := armRaster(m, func(_ int, target *TargetBuffer, ctx *RasterCtx) {
		target[0] = 0x2a
		ctx.TargetRange = Range{Start: 0, End: 1}
		ctx.CyclesPerPixel *= 800
	})
	defer release()

	m.stepFrame()
	m.stepFrame()

	row := scr.rows[250]
	test.Equate(t, row[0], 0x2a)
	test.Equate(t, row[400], 0x2a)
	test.Equate(t, row[799], 0x2a)
}

// an out-of-range cycles-per-pixel override is a design error.
func TestPixelClockRetuneOutOfRange(t *testing.T) {
	m := newTestMachine()

	release := armRaster(m, func(_ int, target *TargetBuffer, ctx *RasterCtx) {
		target[0] = 0xff
		ctx.TargetRange = Range{Start: 0, End: 1}
		ctx.CyclesPerPixel = 2 // below the hardware minimum
	})
	defer release()

	test.ExpectPanicWith(t, "cycles-per-pixel out of range", func() {
		m.stepFrame()
		m.stepFrame()
	})
}

// a rasterizer that takes longer than a line period misses its deadline:
// one panic, video halted at blanking.
func TestDeadlineMissPanic(t *testing.T) {
	m := newTestMachine()
	clk := m.hw.Clock

	release := armRaster(m, func(_ int, target *TargetBuffer, ctx *RasterCtx) {
		// simulate a rasterizer sleeping for two line periods
		clk.Spend(2 * m.tm.CyclesPerLine())
		ctx.TargetRange = Range{Start: 0, End: m.tm.VideoPixels}
	})
	defer release()

	test.ExpectPanicWith(t, "deadline miss", func() {
		m.stepFrame()
		m.stepFrame()
	})

	// the panic path drove the video pins to blanking before reporting
	test.Equate(t, m.hw.VideoPort.ODR()&0xff, 0)
	for pin := 0; pin < numVideoPins; pin++ {
		if m.hw.VideoPort.Mode(pin) != mcu.InputPulledDown {
			t.Fatalf("video pin %d still driven after fatal error", pin)
		}
	}
}

// without a loaned rasterizer the engine scans out blanking and does not
// panic.
func TestNoRasterizer(t *testing.T) {
	m := newTestMachine()
	scr := newCaptureRenderer(m.tm)
	m.renderers = append(m.renderers, scr)

	test.ExpectNoPanic(t, func() {
		m.stepFrame()
		m.stepFrame()
	})

	test.Equate(t, scr.frames, 2)
	test.Equate(t, scr.rows[0][0], 0)
	test.Equate(t, scr.rows[599][799], 0)
}

// sync pulse edges appear on the sync port pins at the programmed lines.
func TestSyncPins(t *testing.T) {
	m := newTestMachine()

	// vsync is idle-low for positive polarity
	test.Equate(t, m.hw.SyncPort.Pin(vsyncPin), false)

	// step to just past the vsync start line
	for m.line < m.tm.VSyncStartLine() {
		m.stepLine()
	}
	test.Equate(t, m.hw.SyncPort.Pin(vsyncPin), true)

	for m.line < m.tm.VSyncEndLine() {
		m.stepLine()
	}
	test.Equate(t, m.hw.SyncPort.Pin(vsyncPin), false)
}
