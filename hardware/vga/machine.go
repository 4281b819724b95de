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
	"sync/atomic"
	"time"

	"github.com/jetsetilly/softvga/hardware/mcu"
	"github.com/jetsetilly/softvga/hardware/vga/timing"
	"github.com/jetsetilly/softvga/logger"
)

// pin assignments on the sync port.
const (
	hsyncPin = 6
	vsyncPin = 7
)

// number of colour pins on the video port.
const numVideoPins = 8

// machine drives the interrupt routines at the cycle positions the driver
// has programmed into the timers. One machine step is one whole scanline;
// within the step, events happen in the order and at the simulated times
// they would on silicon.
//
// All interrupt routines run on the machine goroutine, one at a time,
// which is how a single-core CPU with strictly prioritised interrupts
// behaves. Everything the routines share with thread-mode goes through the
// hardware mutex, the rasterizer slots or the vblank signal.
type machine struct {
	hw mcu.Peripherals
	tm timing.Timing

	mutex  hwMutex
	vblank *vblank

	// vertical position. scanlines are numbered from the top of the
	// vertical blanking interval
	line      int
	vstate    atomic.Int32
	frameNum  int
	lineStart int64

	// scan-out engine state. see scanout.go
	buffers  [2]scanBuffer
	fillIdx  int
	emitIdx  int
	queued   int
	nextFill int
	pace     int64
	lastCPP  int

	// the display list. thread-mode stages a new table; the machine
	// latches it at the frame boundary. latched mirrors table so that
	// thread-mode can tell which superseded tables are safe to drain
	staged  atomic.Pointer[bandTable]
	table   *bandTable
	latched atomic.Pointer[bandTable]
	bandIdx int

	// the end-of-active-video routine pends the rasterization trigger
	rasterPend bool

	// the simulated monitor
	renderers []PixelRenderer
	triggers  []FrameTrigger

	// assembly area for the visible scanline as the DMA writes it to the
	// video port. tapActive gates out register writes that aren't pixels.
	// tapStretch is how many base pixel clocks each transferred byte
	// occupies on the wire (greater than one in subsampled modes)
	rowBuf     [timing.MaxPixelsPerLine]Pixel
	rowX       int
	tapActive  bool
	tapStretch int

	videoOn atomic.Bool

	// runner
	fpsCap  atomic.Bool
	stop    chan bool
	done    chan bool
	running bool
}

func newMachine(hw mcu.Peripherals) *machine {
	m := &machine{
		hw:     hw,
		vblank: newVblank(),
	}
	m.mutex.inVblank = func() bool {
		return m.vstateNow() == vstateBlank
	}
	m.fpsCap.Store(true)
	return m
}

func (m *machine) vstateNow() vstate {
	return vstate(m.vstate.Load())
}

func (m *machine) setVstate(v vstate) {
	m.vstate.Store(int32(v))
}

// configure programs the peripherals for the given timing and resets the
// machine to the top of a fresh frame. The timing is assumed to have been
// validated.
func (m *machine) configure(tm timing.Timing) {
	m.tm = tm

	// the h-sync timer ticks at the pixel clock and pulses channel one for
	// the duration of the sync pulse
	hs := m.hw.HSyncTimer
	hs.Reset()
	hs.SetPrescaler(uint32(tm.ClocksPerPixel - 1))
	hs.SetPeriod(uint32(tm.LinePixels - 1))
	hs.SetCompare(1, uint32(tm.SyncPixels))
	hs.EnablePWM(tm.HSyncPolarity == timing.Positive)
	hs.Enable()

	// the line timer counts AHB cycles across the whole line. channel two
	// is the start-of-active-video event and channel three the
	// end-of-active-video event
	lt := m.hw.LineTimer
	lt.Reset()
	lt.SetPrescaler(0)
	lt.SetPeriod(uint32(tm.CyclesPerLine() - 1))
	lt.SetCompare(2, uint32(tm.SAVPixel()*tm.ClocksPerPixel))
	lt.SetCompare(3, uint32(tm.EAVPixel()*tm.ClocksPerPixel))
	lt.Enable()

	// sync pins idle, video pins undriven until VideoOn()
	m.hw.SyncPort.SetMode(hsyncPin, mcu.Output)
	m.hw.SyncPort.SetMode(vsyncPin, mcu.Output)
	m.hw.SyncPort.Set(hsyncPin, tm.HSyncPolarity != timing.Positive)
	m.hw.SyncPort.Set(vsyncPin, tm.VSyncPolarity != timing.Positive)
	for pin := 0; pin < numVideoPins; pin++ {
		m.hw.VideoPort.SetMode(pin, mcu.InputPulledDown)
	}
	m.videoOn.Store(false)

	m.hw.VideoPort.Watch(m.videoTap)

	m.line = 0
	m.setVstate(vstateBlank)
	m.lineStart = m.hw.Clock.Elapsed()
	m.resetScanOut()

	logger.Logf("machine", "configured for %v", tm)
}

// videoTap is the video port register watcher. During a DMA transfer it
// assembles the bytes appearing on the port into the row buffer. A byte
// shifted out at a slower pixel clock occupies proportionally more of the
// line.
func (m *machine) videoTap(odr uint32) {
	if !m.tapActive {
		return
	}
	for i := 0; i < m.tapStretch && m.rowX < len(m.rowBuf); i++ {
		m.rowBuf[m.rowX] = Pixel(odr)
		m.rowX++
	}
}

// stepLine runs one whole scanline. Any panic raised by an interrupt
// routine or a rasterizer drives the video pins to blanking level before
// propagating; a corrupt line may already have been emitted but nothing
// more will be.
func (m *machine) stepLine() {
	defer func() {
		if r := recover(); r != nil {
			m.blankVideo()
			panic(r)
		}
	}()

	tm := m.tm
	clk := m.hw.Clock

	// horizontal sync pulse. the PWM timer drives the pin high (or low)
	// for the duration of the pulse at the start of every line
	if pwm, positive := m.hw.HSyncTimer.PWM(); pwm && m.hw.HSyncTimer.Enabled() {
		prescale := int64(m.hw.HSyncTimer.Prescaler() + 1)
		m.hw.SyncPort.Set(hsyncPin, positive)
		clk.Advance(m.lineStart + int64(m.hw.HSyncTimer.Compare(1))*prescale)
		m.hw.SyncPort.Set(hsyncPin, !positive)
	}

	// event positions come from the line timer's compare registers
	savAt := m.lineStart + int64(m.hw.LineTimer.Compare(2))
	eavAt := m.lineStart + int64(m.hw.LineTimer.Compare(3))

	if m.hw.LineTimer.Enabled() {
		if m.vstateNow().displayed() {
			pos := m.line - tm.VideoStartLine()
			clk.Advance(savAt)
			m.savISR()
			m.deliverRow(pos)
		}

		clk.Advance(eavAt)
		rollover := m.eavISR()

		if rollover {
			// the vblank signal is raised outside the mutex: raising it
			// holds the machine at the top of the blanking interval while
			// thread-mode operations use their window
			m.vblank.raise()
			m.notifyNewFrame()
		}

		if m.rasterPend {
			m.rasterPend = false
			t0 := clk.Elapsed()
			m.rasterISR()
			cost := clk.Elapsed() - t0
			if cost > tm.CyclesPerLine() {
				panic(fmt.Sprintf("vga: rasterizer deadline miss before scanline %d (%d cycles, budget %d)",
					m.line, cost, tm.CyclesPerLine()))
			}
		}
	}

	m.lineStart += tm.CyclesPerLine()
	clk.Advance(m.lineStart)
}

// stepFrame runs stepLine until the frame boundary has passed.
func (m *machine) stepFrame() {
	f := m.frameNum
	for m.frameNum == f {
		m.stepLine()
	}
}

// deliverRow hands the assembled scanline to the renderers. With the video
// pins undriven the monitor sees only blanking level.
func (m *machine) deliverRow(pos int) {
	if len(m.renderers) == 0 {
		return
	}

	row := m.rowBuf[:m.tm.VideoPixels]
	if !m.videoOn.Load() {
		for i := range row {
			row[i] = 0
		}
	}

	for _, r := range m.renderers {
		if err := r.SetScanline(pos, row); err != nil {
			logger.Logf("machine", "renderer: %v", err)
		}
	}
}

func (m *machine) notifyNewFrame() {
	for _, r := range m.renderers {
		if err := r.NewFrame(m.frameNum); err != nil {
			logger.Logf("machine", "renderer: %v", err)
		}
	}
	for _, t := range m.triggers {
		if err := t.NewFrame(m.frameNum); err != nil {
			logger.Logf("machine", "frame trigger: %v", err)
		}
	}
}

// blankVideo forces the video pins to blanking level. Called on the way
// out of any fatal condition, before the panic is reported.
func (m *machine) blankVideo() {
	m.videoOn.Store(false)
	m.hw.VideoPort.WriteByte(0)
	for pin := 0; pin < numVideoPins; pin++ {
		m.hw.VideoPort.SetMode(pin, mcu.InputPulledDown)
	}
}

// startRunner begins free-running scan-out on the machine goroutine.
func (m *machine) startRunner() {
	m.stop = make(chan bool)
	m.done = make(chan bool)
	m.running = true
	go m.run()
}

// stopRunner halts the machine goroutine and waits for it to finish the
// frame it is on.
func (m *machine) stopRunner() {
	if !m.running {
		return
	}
	close(m.stop)
	<-m.done
	m.running = false
}

func (m *machine) run() {
	defer func() {
		if r := recover(); r != nil {
			m.blankVideo()
			logger.Logf("machine", "fatal: %v", r)
			panic(r)
		}
	}()

	// pace scan-out to the descriptor's refresh rate. turning the fps cap
	// off lets the machine run as fast as the host allows
	frame := time.Duration(float64(time.Second) / float64(m.tm.RefreshRate()))
	tick := time.NewTicker(frame)
	defer tick.Stop()

	for {
		select {
		case <-m.stop:
			m.done <- true
			return
		default:
		}

		m.stepFrame()

		if m.fpsCap.Load() {
			<-tick.C
		}
	}
}
