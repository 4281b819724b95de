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

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/jetsetilly/softvga/demo"
	"github.com/jetsetilly/softvga/diagnostics"
	"github.com/jetsetilly/softvga/gui/sdlscreen"
	"github.com/jetsetilly/softvga/hardware/mcu"
	"github.com/jetsetilly/softvga/hardware/vga"
	"github.com/jetsetilly/softvga/hardware/vga/timing"
	"github.com/jetsetilly/softvga/logger"
	"github.com/jetsetilly/softvga/performance"
	"github.com/jetsetilly/softvga/userinput"
	"github.com/jetsetilly/softvga/version"
)

func main() {
	// the first argument selects the sub-mode. no argument means RUN
	mode := "RUN"
	args := os.Args[1:]
	if len(args) > 0 {
		switch args[0] {
		case "run", "RUN":
			mode = "RUN"
			args = args[1:]
		case "perf", "PERF":
			mode = "PERF"
			args = args[1:]
		case "version", "VERSION":
			mode = "VERSION"
			args = args[1:]
		}
	}

	exitVal := 0

	switch mode {
	case "RUN":
		if err := run(args); err != nil {
			fmt.Fprintf(os.Stderr, "* %v\n", err)
			exitVal = 10
		}
	case "PERF":
		if err := perf(args); err != nil {
			fmt.Fprintf(os.Stderr, "* %v\n", err)
			exitVal = 10
		}
	case "VERSION":
		vrs, rev := version.Version()
		fmt.Printf("%s (%s)\n", vrs, rev)
	}

	os.Exit(exitVal)
}

func run(args []string) error {
	flgs := flag.NewFlagSet("run", flag.ExitOnError)
	demoName := flgs.String("demo", "", "name of demo to run")
	scale := flgs.Int("scale", 1, "window scale factor")
	headless := flgs.Bool("headless", false, "run without a window")
	dump := flgs.String("dump", "", "write driver structure graph to file")
	echoLog := flgs.Bool("log", false, "echo log entries to stderr")
	listDemos := flgs.Bool("list", false, "list available demos")
	flgs.Parse(args)

	if *echoLog {
		logger.SetEcho(os.Stderr)
	}

	if *listDemos {
		for _, d := range demo.List() {
			fmt.Printf("%-10s %s\n", d.Name, d.Description)
		}
		return nil
	}

	d, err := demo.Find(*demoName)
	if err != nil {
		return err
	}

	drv, err := vga.NewDriver(mcu.NewPeripherals())
	if err != nil {
		return err
	}

	if *headless {
		return runHeadless(drv, d, *dump)
	}

	return runWindowed(drv, d, *scale, *dump)
}

// SDL requires window handling to happen on the main thread. the driver
// and the demo run on a launch goroutine; this function owns the service
// loop.
//
// #mainthread
func runWindowed(drv *vga.Driver, d demo.Demo, scale int, dump string) error {
	scr, err := sdlscreen.NewScreen(timing.SVGA, scale)
	if err != nil {
		return err
	}
	defer scr.Destroy()

	drv.AddPixelRenderer(scr)

	done := make(chan error)
	go func() {
		dr, err := drv.ConfigureTiming(timing.SVGA)
		if err != nil {
			done <- err
			return
		}

		if dump != "" {
			if err := diagnostics.DumpToFile(dump, drv); err != nil {
				logger.Logf("diagnostics", "%v", err)
			}
		}

		d.Run(dr, scr.Quit())
		dr.StopSync()
		done <- nil
	}()

	// service loop. ends when the launch goroutine has wound the driver
	// down
	for {
		select {
		case err := <-done:
			return err
		default:
		}
		scr.Service()
	}
}

func runHeadless(drv *vga.Driver, d demo.Demo, dump string) error {
	dr, err := drv.ConfigureTiming(timing.SVGA)
	if err != nil {
		return err
	}

	if dump != "" {
		if err := diagnostics.DumpToFile(dump, drv); err != nil {
			logger.Logf("diagnostics", "%v", err)
		}
	}

	quit := make(chan bool)

	// quit on q or on interrupt
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	keys, keysErr := userinput.NewKeys()
	if keysErr == nil {
		defer keys.Close()
	} else {
		logger.Logf("userinput", "%v", keysErr)
	}

	go func() {
		defer close(quit)
		for {
			if keys != nil {
				select {
				case <-intChan:
					return
				case r := <-keys.C:
					if r == 'q' || r == 3 {
						return
					}
				}
			} else {
				<-intChan
				return
			}
		}
	}()

	fmt.Printf("running %s demo headless. press q to quit\n", d.Name)
	d.Run(dr, quit)
	dr.StopSync()

	return nil
}

func perf(args []string) error {
	flgs := flag.NewFlagSet("perf", flag.ExitOnError)
	demoName := flgs.String("demo", "", "name of demo to measure")
	duration := flgs.Duration("duration", 5*time.Second, "how long to run for")
	stats := flgs.Bool("statsview", false, "launch the runtime stats server")
	flgs.Parse(args)

	return performance.Check(os.Stdout, *duration, *demoName, *stats)
}
