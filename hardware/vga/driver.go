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
	"sync/atomic"

	"github.com/jetsetilly/softvga/curated"
	"github.com/jetsetilly/softvga/hardware/mcu"
	"github.com/jetsetilly/softvga/hardware/vga/timing"
	"github.com/jetsetilly/softvga/logger"
)

// the driver is process-wide state with a two-phase lifecycle: never
// created at reset, created exactly once by NewDriver, never torn down.
var driverCreated atomic.Bool

// Driver is the idle state of the VGA driver: it owns the peripherals and
// can be configured with a timing descriptor. The driver's lifecycle is
// encoded in the types themselves; an operation that is illegal in the
// current state is simply not offered.
//
//	Driver ──ConfigureTiming──► SyncDriver ──WithRaster──► RasterDriver
//	  ▲                            │                          │
//	  └──────── StopSync ──────────┘◄───── scope returns ─────┘
type Driver struct {
	m *machine
}

// NewDriver takes exclusive ownership of the peripherals and returns the
// driver in its idle state. The peripherals are never returned; the driver
// is a process-wide singleton and can only be created once.
func NewDriver(hw mcu.Peripherals) (*Driver, error) {
	if hw.Clock == nil || hw.HSyncTimer == nil || hw.LineTimer == nil ||
		hw.DMA == nil || hw.VideoPort == nil || hw.SyncPort == nil {
		return nil, curated.Errorf(curated.DriverError, "incomplete peripheral set")
	}

	if !driverCreated.CompareAndSwap(false, true) {
		return nil, curated.Errorf(curated.AlreadyInitialised)
	}

	return &Driver{m: newMachine(hw)}, nil
}

// AddPixelRenderer attaches a renderer to the driver. Renderers receive
// every visible scanline; in the simulation they are the monitor on the
// other end of the cable.
func (drv *Driver) AddPixelRenderer(r PixelRenderer) {
	drv.m.renderers = append(drv.m.renderers, r)
}

// AddFrameTrigger attaches a frame boundary listener to the driver.
func (drv *Driver) AddFrameTrigger(t FrameTrigger) {
	drv.m.triggers = append(drv.m.triggers, t)
}

// ConfigureTiming validates the timing descriptor, programs the timers and
// begins sync generation. On success the peripherals are loaned to the
// interrupt routines, guarded by the hardware mutex, and the returned
// SyncDriver is the only handle to the driver; the idle handle must not be
// used again until StopSync returns it.
//
// On failure the transition does not happen: the driver remains idle and
// usable.
func (drv *Driver) ConfigureTiming(tm timing.Timing) (*SyncDriver, error) {
	if err := tm.Validate(); err != nil {
		return nil, curated.Errorf(curated.DriverError, err)
	}

	drv.m.configure(tm)
	drv.m.startRunner()

	logger.Logf("vga", "sync generation started (%v)", tm)

	return &SyncDriver{m: drv.m, idle: drv}, nil
}

// SyncDriver is the sync-generating state of the driver: sync pulses are
// being emitted and the peripherals are loaned to the interrupt routines.
// No pixels are produced until a rasterizer is loaned with WithRaster or
// WithBands.
type SyncDriver struct {
	m    *machine
	idle *Driver
}

// StopSync masks the interrupt events, halts both timers, drives the sync
// pins to their idle levels and reclaims the peripherals. The returned
// handle is the idle driver.
func (dr *SyncDriver) StopSync() *Driver {
	m := dr.m

	m.stopRunner()

	m.hw.HSyncTimer.Disable()
	m.hw.HSyncTimer.DisablePWM()
	m.hw.LineTimer.Disable()

	m.hw.SyncPort.Set(hsyncPin, m.tm.HSyncPolarity != timing.Positive)
	m.hw.SyncPort.Set(vsyncPin, m.tm.VSyncPolarity != timing.Positive)
	m.blankVideo()

	for _, r := range m.renderers {
		if err := r.EndRendering(); err != nil {
			logger.Logf("vga", "renderer: %v", err)
		}
	}

	logger.Log("vga", "sync generation stopped")

	return dr.idle
}

// Timing returns the timing descriptor the driver was configured with.
func (dr *SyncDriver) Timing() timing.Timing {
	return dr.m.tm
}

// SetFPSCap pins the machine to the descriptor's refresh rate (the
// default) or lets it run as fast as the host allows.
func (dr *SyncDriver) SetFPSCap(enable bool) {
	dr.m.fpsCap.Store(enable)
}

// SyncToVblank blocks the caller until at least one end-of-frame boundary
// has passed after entry. The vblank counter is monotone: K calls return K
// times, in order.
func (dr *SyncDriver) SyncToVblank() {
	dr.m.vblank.wait(dr.m.vblank.count())
}

// VblankCount returns the number of frame boundaries since sync generation
// started.
func (dr *SyncDriver) VblankCount() int64 {
	return dr.m.vblank.count()
}

// VideoOn switches the video port pins from high-impedance to driven RGB.
// The reconfiguration only ever happens inside the vertical blanking
// interval, to suppress glitches: the call blocks until vblank begins,
// takes the hardware mutex for the duration of the pin mode changes and
// releases everything before vblank ends.
func (dr *SyncDriver) VideoOn() {
	m := dr.m

	m.vblank.enterWindow()
	m.mutex.acquireThread()
	for pin := 0; pin < numVideoPins; pin++ {
		m.hw.VideoPort.SetMode(pin, mcu.Output)
	}
	m.videoOn.Store(true)
	m.mutex.releaseThread()
	m.vblank.exitWindow()

	logger.Log("vga", "video output on")
}

// VideoOff switches the video port pins back to high-impedance,
// pulled-low. The same vblank discipline as VideoOn applies.
func (dr *SyncDriver) VideoOff() {
	m := dr.m

	m.vblank.enterWindow()
	m.mutex.acquireThread()
	for pin := 0; pin < numVideoPins; pin++ {
		m.hw.VideoPort.SetMode(pin, mcu.InputPulledDown)
	}
	m.videoOn.Store(false)
	m.mutex.releaseThread()
	m.vblank.exitWindow()

	logger.Log("vga", "video output off")
}

// WithRaster loans a rasterizer to the interrupt routines for the duration
// of scope. The rasterizer may capture state from the caller's stack: the
// loan is scoped, so WithRaster does not return until the interrupt side
// has finished with the rasterizer, however scope exits.
//
// scope runs on the calling goroutine and receives the RasterLoaded state
// of the driver, through which it is free to sync to vblank, gate the
// video output and replace the display list.
func (dr *SyncDriver) WithRaster(r Rasterizer, scope func(*RasterDriver)) {
	bands := []Band{{Start: 0, End: dr.m.tm.VideoLines, Rasterizer: r}}

	// a single full-frame band always validates
	err := dr.WithBands(bands, scope)
	if err != nil {
		panic(err)
	}
}

// WithBands is the display-list form of WithRaster: an ordered set of
// rasterizers keyed by visible line ranges. The list must be sorted,
// non-overlapping and jointly cover the visible frame; a malformed list is
// rejected before any loan happens.
func (dr *SyncDriver) WithBands(bands []Band, scope func(*RasterDriver)) error {
	m := dr.m

	tbl, err := newBandTable(bands, m.tm.VideoLines)
	if err != nil {
		return err
	}

	rd := &RasterDriver{
		SyncDriver: dr,
		tables:     []*bandTable{tbl},
	}

	// publish. the machine latches the table at the next frame boundary
	m.staged.Store(tbl)

	defer func() {
		// revoke before draining: once the staged pointer is cleared the
		// interrupt side stops selecting these slots at the next frame
		// boundary, and the slot drains guarantee no in-flight borrow
		// survives this function
		m.staged.Store(nil)
		for i := len(rd.tables) - 1; i >= 0; i-- {
			rd.tables[i].revokeAll()
		}
	}()

	scope(rd)

	return nil
}

// RasterDriver is the raster-loaded state of the driver: a scoped loan is
// in progress and the interrupt routines are producing pixels. It extends
// the sync-generating surface with display-list mutation.
type RasterDriver struct {
	*SyncDriver

	// every table donated during this scope. all of them are drained when
	// the scope ends
	tables []*bandTable
}

// ReplaceBands stages a new display list, which the scan-out engine adopts
// at the next frame boundary. The new rasterizers are loaned under the
// same scoped discipline as the original list: anything they capture must
// remain valid until the enclosing WithBands/WithRaster scope ends, or
// until a later ReplaceBands has retired them and a frame boundary has
// passed.
func (dr *RasterDriver) ReplaceBands(bands []Band) error {
	m := dr.m

	tbl, err := newBandTable(bands, m.tm.VideoLines)
	if err != nil {
		return err
	}

	dr.tables = append(dr.tables, tbl)
	m.staged.Store(tbl)

	// drain tables that can never be latched again: everything older than
	// the table the engine is currently scanning out from. without this a
	// display list that is replaced every frame would accumulate loans for
	// the lifetime of the scope
	if lat := m.latched.Load(); lat != nil {
		for i, t := range dr.tables {
			if t == lat {
				for _, old := range dr.tables[:i] {
					old.revokeAll()
				}
				dr.tables = append(dr.tables[:0], dr.tables[i:]...)
				break
			}
		}
	}

	return nil
}
