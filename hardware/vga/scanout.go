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
	"fmt"

	"github.com/jetsetilly/softvga/hardware/mcu"
	"github.com/jetsetilly/softvga/hardware/vga/timing"
)

// vstate is the vertical state machine, maintained by the end-of-active
// video routine.
type vstate int32

const (
	// in the vertical blanking interval. no scan-out, no rasterization
	vstateBlank vstate = iota

	// one line before active video. rasterization starts so that the
	// first visible line is ready in time; no scan-out yet
	vstateStarting

	// visible portion of the frame. scan-out and rasterization both run
	vstateActive

	// the final visible line. scan-out continues from previously
	// rasterized data but no further rasterization happens
	vstateFinishing
)

// displayed reports whether scan-out is happening.
func (v vstate) displayed() bool {
	return v == vstateActive || v == vstateFinishing
}

// rendered reports whether rasterization is happening.
func (v vstate) rendered() bool {
	return v == vstateStarting || v == vstateActive
}

// scanBuffer is one of the pair of scanline buffers. Ownership alternates
// by role: the buffer being filled by the rasterizer is the working buffer
// and the buffer being emitted by the DMA is the scanout buffer. The roles
// swap at the start-of-active-video boundary, except while a repeat count
// keeps the same output on screen.
type scanBuffer struct {
	pixels TargetBuffer
	ctx    RasterCtx

	// the first visible line this content is for and the number of lines
	// it covers (the rasterizer's repeat declaration, clamped to its band)
	v      int
	covers int
}

// resetScanOut returns the engine to the top-of-frame state.
func (m *machine) resetScanOut() {
	m.fillIdx = 0
	m.emitIdx = 0
	m.queued = 0
	m.nextFill = 0
	m.bandIdx = 0
	m.lastCPP = m.tm.ClocksPerPixel
	m.pace = int64(m.tm.ClocksPerPixel)
}

// savISR is the start-of-active-video routine: the highest priority
// interrupt. It must start the DMA transfer with deterministic latency, so
// it does as little as possible: commit the buffer role swap prepared by
// the rasterization trigger, arm the stream with the scanout buffer's
// target range, start it.
func (m *machine) savISR() {
	m.mutex.acquireISR(classSAV)
	defer m.mutex.releaseISR(classSAV)

	if m.hw.DMA.Busy() {
		panic("vga: dma transfer missed its deadline (still busy at start of active video)")
	}

	pos := m.line - m.tm.VideoStartLine()

	// start from blanking level across the whole row
	for i := range m.rowBuf {
		m.rowBuf[i] = 0
	}

	// drop any content whose lines have already passed
	for m.queued > 0 {
		head := &m.buffers[m.emitIdx]
		if head.v+head.covers > pos {
			break
		}
		m.emitIdx ^= 1
		m.queued--
	}

	if m.queued == 0 {
		// nothing rasterized for this line. the monitor gets blanking;
		// this is the normal state before a rasterizer has been loaned
		return
	}

	head := &m.buffers[m.emitIdx]
	if head.v > pos {
		// content is for a future line (a rasterizer was loaned
		// mid-frame). blanking until its line comes up
		return
	}

	// the scanout role belongs to this buffer until its repeat count is
	// exhausted, at which point the roles swap
	rng := head.ctx.TargetRange
	if rng.Start < 0 || rng.End > targetBufferSize || rng.Start > rng.End {
		panic(fmt.Sprintf("vga: rasterizer declared target range outside the buffer (%d..%d)", rng.Start, rng.End))
	}

	if rng.Len() > 0 {
		stretch := int(m.pace) / m.tm.ClocksPerPixel
		if stretch < 1 {
			stretch = 1
		}
		m.rowX = rng.Start * stretch
		m.tapStretch = stretch
		m.tapActive = true
		m.hw.DMA.Arm(head.pixels[rng.Start:rng.End], m.hw.VideoPort, m.pace)
		m.hw.DMA.Start()
		m.tapActive = false
	}

	if pos == head.v+head.covers-1 {
		// last line covered by this content: swap roles for the next line
		m.emitIdx ^= 1
		m.queued--
	}
}

// eavISR is the end-of-active-video routine: the middle priority
// interrupt. It runs on every line, visible or not, because it maintains
// the vertical state machine. Returns true at the frame boundary.
func (m *machine) eavISR() bool {
	m.mutex.acquireISR(classEAV)
	defer m.mutex.releaseISR(classEAV)

	// stop the stream if it is somehow still running and return the video
	// port to blanking level between lines
	m.hw.DMA.Stop()
	m.hw.VideoPort.WriteByte(0)

	tm := m.tm
	nextLine := m.line + 1
	rollover := false

	// edges of the vertical sync pulse
	if nextLine == tm.VSyncStartLine() {
		m.hw.SyncPort.Set(vsyncPin, tm.VSyncPolarity == timing.Positive)
	} else if nextLine == tm.VSyncEndLine() {
		m.hw.SyncPort.Set(vsyncPin, tm.VSyncPolarity != timing.Positive)
	}

	// vertical state ladder
	switch {
	case nextLine+1 == tm.VideoStartLine():
		// one line before scan-out begins: start rasterizing
		m.setVstate(vstateStarting)
	case nextLine == tm.VideoStartLine():
		m.setVstate(vstateActive)
	case nextLine+1 == tm.VideoEndLine():
		// final visible line: scan out previously rasterized data but
		// suppress further rasterization
		m.setVstate(vstateFinishing)
	case nextLine == tm.VideoEndLine():
		m.setVstate(vstateBlank)
		rollover = true
	}

	if rollover {
		m.line = 0
		m.frameNum++

		// latch a staged display list and reset the engine for the new
		// frame. a band boundary, and certainly a frame boundary, never
		// carries a repeat count across
		m.table = m.staged.Load()
		m.latched.Store(m.table)
		m.resetScanOut()
	} else {
		m.line = nextLine
	}

	// apply a pixel-clock change requested by the rasterizer whose output
	// the next start-of-active-video will emit
	m.retune()

	// trigger the rasterization interrupt. lowest priority: it runs once
	// this routine (and any start-of-active-video) is out of the way
	if m.vstateNow().rendered() {
		m.rasterPend = true
	}

	return rollover
}

// retune reprograms the pixel-clock divisor when the upcoming line's
// rasterization context declared a cycles-per-pixel override. Out-of-range
// values are a design error in the rasterizer.
func (m *machine) retune() {
	if m.queued == 0 {
		return
	}

	pos := m.line - m.tm.VideoStartLine()
	head := &m.buffers[m.emitIdx]
	if head.v > pos || pos >= head.v+head.covers {
		return
	}

	cpp := head.ctx.CyclesPerPixel
	if cpp == m.lastCPP {
		return
	}
	if cpp < timing.MinClocksPerPixel || cpp-1 > mcu.MaxTimerPeriod {
		panic(fmt.Sprintf("vga: rasterizer declared cycles-per-pixel out of range (%d)", cpp))
	}

	m.lastCPP = cpp
	m.pace = int64(cpp)
}

// rasterISR is the rasterization trigger: the lowest priority interrupt,
// entered cooperatively after end-of-active-video. It prepares the next
// buffer role swap and enters the loaned rasterizer for the upcoming line.
// Its deadline is the next start-of-active-video; overrunning it is fatal
// (enforced by the machine).
func (m *machine) rasterISR() {
	m.mutex.acquireISR(classRaster)
	defer m.mutex.releaseISR(classRaster)

	tbl := m.table
	if tbl == nil {
		return
	}

	// the line to rasterize. one ahead of the line the next
	// start-of-active-video will emit
	v := m.line + 1 - m.tm.VideoStartLine()
	if v < 0 || v >= m.tm.VideoLines {
		return
	}

	if v < m.nextFill {
		// covered by an earlier output's repeat declaration
		return
	}

	if m.queued >= len(m.buffers) {
		// both buffers hold content awaiting scan-out. can only happen
		// transiently at the top of the frame
		return
	}

	// band lookup: the pointer only ever moves forward
	m.bandIdx = tbl.entryFor(m.bandIdx, v)
	entry := &tbl.entries[m.bandIdx]

	buf := &m.buffers[m.fillIdx]
	buf.ctx = RasterCtx{
		CyclesPerPixel: m.tm.ClocksPerPixel,
		RepeatLines:    1,
		TargetRange:    Range{},
	}

	ok := entry.slot.observe(func(r Rasterizer) {
		r(v, &buf.pixels, &buf.ctx)
	})
	if !ok {
		// no rasterizer loaned (or the loan is being revoked). blanking
		// until one arrives
		return
	}

	covers := buf.ctx.RepeatLines
	if covers < 1 {
		covers = 1
	}
	// a repeat declaration never crosses a band boundary or the end of
	// the frame
	if v+covers > entry.end {
		covers = entry.end - v
	}

	buf.v = v
	buf.covers = covers

	// the buffer roles are now prepared to swap: this buffer becomes the
	// scanout buffer when the start-of-active-video for its line arrives
	m.fillIdx ^= 1
	m.queued++
	m.nextFill = v + covers
}
