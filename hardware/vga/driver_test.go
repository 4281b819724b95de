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

	"github.com/jetsetilly/softvga/curated"
	"github.com/jetsetilly/softvga/hardware/mcu"
	"github.com/jetsetilly/softvga/hardware/vga/timing"
	"github.com/jetsetilly/softvga/test"
)

func TestDriverSingleton(t *testing.T) {
	resetDriverSingleton()

	drv, err := NewDriver(mcu.NewPeripherals())
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, drv != nil)

	// the driver is created exactly once per process
	_, err = NewDriver(mcu.NewPeripherals())
	test.ExpectedSuccess(t, curated.Is(err, curated.AlreadyInitialised))
}

func TestDriverIncompletePeripherals(t *testing.T) {
	resetDriverSingleton()

	hw := mcu.NewPeripherals()
	hw.DMA = nil
	_, err := NewDriver(hw)
	test.ExpectedSuccess(t, curated.Has(err, curated.DriverError))
}

func TestConfigurationRefusal(t *testing.T) {
	resetDriverSingleton()

	drv, err := NewDriver(mcu.NewPeripherals())
	test.ExpectedSuccess(t, err)

	// a bad descriptor fails at the transition boundary. the driver
	// remains idle and usable
	bad := timing.SVGA
	bad.BackPorchPixels = 0
	_, err = drv.ConfigureTiming(bad)
	test.ExpectedSuccess(t, curated.Has(err, curated.InvalidTiming))

	// the same handle configures successfully afterwards
	dr, err := drv.ConfigureTiming(timing.SVGA)
	test.ExpectedSuccess(t, err)
	dr.StopSync()
}

func TestSyncToVblank(t *testing.T) {
	resetDriverSingleton()

	drv, err := NewDriver(mcu.NewPeripherals())
	test.ExpectedSuccess(t, err)

	dr, err := drv.ConfigureTiming(timing.SVGA)
	test.ExpectedSuccess(t, err)
	defer dr.StopSync()

	dr.SetFPSCap(false)

	// every return is preceded by at least one frame boundary since its
	// entry
	for i := 0; i < 5; i++ {
		before := dr.VblankCount()
		dr.SyncToVblank()
		if dr.VblankCount() <= before {
			t.Fatalf("SyncToVblank returned without a frame boundary (iteration %d)", i)
		}
	}
}

// the scoped closure capture scenario: a rasterizer and a scope function
// capture a stack local; after the scope has counted 60 frames the local
// holds 60 and no reference to it survives the loan.
func TestScopedCapture(t *testing.T) {
	resetDriverSingleton()

	drv, err := NewDriver(mcu.NewPeripherals())
	test.ExpectedSuccess(t, err)

	dr, err := drv.ConfigureTiming(timing.SVGA)
	test.ExpectedSuccess(t, err)
	defer dr.StopSync()

	dr.SetFPSCap(false)

	frameCounter := 0

	dr.WithRaster(func(_ int, target *TargetBuffer, ctx *RasterCtx) {
		target[0] = 0xff
		ctx.TargetRange = Range{Start: 0, End: 1}
	}, func(rd *RasterDriver) {
		for frameCounter < 60 {
			rd.SyncToVblank()
			frameCounter++
		}
	})

	test.Equate(t, frameCounter, 60)
}

// thread-mode panics unwind through WithRaster, which still revokes the
// loan on the way out.
func TestScopePanicRevokes(t *testing.T) {
	resetDriverSingleton()

	drv, err := NewDriver(mcu.NewPeripherals())
	test.ExpectedSuccess(t, err)

	dr, err := drv.ConfigureTiming(timing.SVGA)
	test.ExpectedSuccess(t, err)
	defer dr.StopSync()

	dr.SetFPSCap(false)

	r := func(_ int, _ *TargetBuffer, _ *RasterCtx) {}

	test.ExpectPanicWith(t, "scope failure", func() {
		dr.WithRaster(r, func(rd *RasterDriver) {
			rd.SyncToVblank()
			panic("scope failure")
		})
	})

	// the loan was revoked: the same rasterizer can be loaned again
	dr.WithRaster(r, func(rd *RasterDriver) {
		rd.SyncToVblank()
	})
}

func TestWithBandsRejection(t *testing.T) {
	resetDriverSingleton()

	drv, err := NewDriver(mcu.NewPeripherals())
	test.ExpectedSuccess(t, err)

	dr, err := drv.ConfigureTiming(timing.SVGA)
	test.ExpectedSuccess(t, err)
	defer dr.StopSync()

	// a malformed list is rejected before the scope runs
	ran := false
	err = dr.WithBands([]Band{
		{Start: 0, End: 100, Rasterizer: noopRaster},
	}, func(_ *RasterDriver) {
		ran = true
	})
	test.ExpectedSuccess(t, curated.Is(err, curated.InvalidBandList))
	test.ExpectedFailure(t, ran)
}

func TestReplaceBands(t *testing.T) {
	resetDriverSingleton()

	drv, err := NewDriver(mcu.NewPeripherals())
	test.ExpectedSuccess(t, err)

	dr, err := drv.ConfigureTiming(timing.SVGA)
	test.ExpectedSuccess(t, err)
	defer dr.StopSync()

	dr.SetFPSCap(false)

	err = dr.WithBands([]Band{
		{Start: 0, End: 600, Rasterizer: noopRaster},
	}, func(rd *RasterDriver) {
		// replace the display list every frame for a while. superseded
		// loans are drained as the engine moves past them
		for i := 0; i < 10; i++ {
			rd.SyncToVblank()
			err := rd.ReplaceBands([]Band{
				{Start: 0, End: 300, Rasterizer: noopRaster},
				{Start: 300, End: 600, Rasterizer: noopRaster},
			})
			test.ExpectedSuccess(t, err)
		}

		// the loan session never holds more than the latched table, the
		// staged table and anything in between
		if len(rd.tables) > 3 {
			t.Errorf("superseded band tables not drained (%d tables held)", len(rd.tables))
		}

		// malformed replacement is rejected, current list unaffected
		err := rd.ReplaceBands([]Band{{Start: 5, End: 600, Rasterizer: noopRaster}})
		test.ExpectedSuccess(t, curated.Is(err, curated.InvalidBandList))

		rd.SyncToVblank()
	})
	test.ExpectedSuccess(t, err)
}

// the video gate scenario: pin modes on the video port are only ever
// changed inside a vblank window, every time, observed via the
// instrumented mutex.
func TestVideoGate(t *testing.T) {
	resetDriverSingleton()

	drv, err := NewDriver(mcu.NewPeripherals())
	test.ExpectedSuccess(t, err)

	violations := 0
	threadAcquires := 0
	drv.m.mutex.instrument = func(acquire bool, class lockClass, inVblank bool) {
		if class == classThread {
			if acquire {
				threadAcquires++
			}
			if !inVblank {
				violations++
			}
		}
	}

	dr, err := drv.ConfigureTiming(timing.SVGA)
	test.ExpectedSuccess(t, err)
	defer dr.StopSync()

	dr.SetFPSCap(false)

	for i := 0; i < 1000; i++ {
		if i&1 == 0 {
			dr.VideoOn()
		} else {
			dr.VideoOff()
		}
	}

	test.Equate(t, threadAcquires, 1000)
	test.Equate(t, violations, 0)
}

func TestStopSyncReturnsIdle(t *testing.T) {
	resetDriverSingleton()

	drv, err := NewDriver(mcu.NewPeripherals())
	test.ExpectedSuccess(t, err)

	dr, err := drv.ConfigureTiming(timing.SVGA)
	test.ExpectedSuccess(t, err)

	idle := dr.StopSync()
	test.ExpectedSuccess(t, idle == drv)

	// both timers halted, sync pins idle
	test.ExpectedFailure(t, drv.m.hw.HSyncTimer.Enabled())
	test.ExpectedFailure(t, drv.m.hw.LineTimer.Enabled())
	test.Equate(t, drv.m.hw.SyncPort.Pin(hsyncPin), false)
	test.Equate(t, drv.m.hw.SyncPort.Pin(vsyncPin), false)

	// the idle handle can be configured again
	dr, err = idle.ConfigureTiming(timing.SVGA)
	test.ExpectedSuccess(t, err)
	dr.StopSync()
}
