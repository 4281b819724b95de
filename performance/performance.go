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

// Package performance measures how fast the host can run the VGA machine.
// The machine is uncapped and a demo is run for a fixed duration; the
// achieved frame rate is compared against the 60Hz the signal would demand
// of real silicon.
package performance

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/jetsetilly/softvga/curated"
	"github.com/jetsetilly/softvga/demo"
	"github.com/jetsetilly/softvga/hardware/mcu"
	"github.com/jetsetilly/softvga/hardware/vga"
	"github.com/jetsetilly/softvga/hardware/vga/timing"
	"github.com/jetsetilly/softvga/statsview"
)

// frameCounter counts frame boundaries. implements vga.FrameTrigger.
type frameCounter struct {
	frames atomic.Int64
}

func (fc *frameCounter) NewFrame(_ int) error {
	fc.frames.Add(1)
	return nil
}

// Check runs the named demo with the frame cap off for the given duration
// and reports the achieved frame rate.
func Check(output io.Writer, duration time.Duration, demoName string, launchStatsview bool) error {
	d, err := demo.Find(demoName)
	if err != nil {
		return curated.Errorf(curated.PerformanceError, err)
	}

	if launchStatsview {
		statsview.Launch(output)
	}

	drv, err := vga.NewDriver(mcu.NewPeripherals())
	if err != nil {
		return curated.Errorf(curated.PerformanceError, err)
	}

	fc := &frameCounter{}
	drv.AddFrameTrigger(fc)

	dr, err := drv.ConfigureTiming(timing.SVGA)
	if err != nil {
		return curated.Errorf(curated.PerformanceError, err)
	}

	dr.SetFPSCap(false)

	quit := make(chan bool)
	go func() {
		<-time.After(duration)
		close(quit)
	}()

	start := time.Now()
	d.Run(dr, quit)
	elapsed := time.Since(start).Seconds()

	dr.StopSync()

	frames := fc.frames.Load()
	fps := float64(frames) / elapsed
	ideal := float64(timing.SVGA.RefreshRate())

	output.Write([]byte(fmt.Sprintf("%.2f fps (%d frames in %.2fs) %.1f%% of ideal %.2f fps\n",
		fps, frames, elapsed, fps/ideal*100, ideal)))

	return nil
}
