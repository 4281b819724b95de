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
	"runtime"
	"sync/atomic"
)

// lockClass identifies who is holding the hardware mutex. The interrupt
// classes are ordered by CPU priority.
type lockClass int32

const (
	classFree lockClass = iota
	classThread
	classRaster
	classEAV
	classSAV
)

func (c lockClass) String() string {
	switch c {
	case classFree:
		return "free"
	case classThread:
		return "thread"
	case classRaster:
		return "rasterize"
	case classEAV:
		return "end-of-active-video"
	case classSAV:
		return "start-of-active-video"
	}
	return "unknown"
}

func (c lockClass) isInterrupt() bool {
	return c > classThread
}

// hwMutex guards the bundle of peripherals shared between the interrupt
// routines and thread-mode: both timers, the DMA stream and both GPIO
// ports.
//
// The uncontended acquire is a single compare-and-swap. Contention between
// interrupt classes is a priority-ordering bug and panics. Thread-mode may
// only acquire during vblank and must release before vblank ends;
// violating either rule panics. The only waiting the mutex ever performs
// is across the interrupt/thread boundary, on a legal, short critical
// section: an interrupt waiting out thread-mode during vblank, or
// thread-mode waiting out an interrupt routine's register writes.
type hwMutex struct {
	state atomic.Int32

	// reports whether the machine is inside the vertical blanking interval
	inVblank func() bool

	// test instrumentation. called on every acquire and release with the
	// acting class and the vblank state at that moment. may be nil
	instrument func(acquire bool, class lockClass, inVblank bool)
}

func (mx *hwMutex) note(acquire bool, class lockClass) {
	if mx.instrument != nil {
		mx.instrument(acquire, class, mx.inVblank())
	}
}

// acquireISR takes the mutex from interrupt context.
func (mx *hwMutex) acquireISR(class lockClass) {
	for {
		if mx.state.CompareAndSwap(int32(classFree), int32(class)) {
			mx.note(true, class)
			return
		}

		holder := lockClass(mx.state.Load())
		if holder.isInterrupt() {
			// two interrupt routines can never contend: the priority
			// ordering is supposed to make that impossible
			panic("vga: hardware mutex contention between interrupt priorities (" +
				class.String() + " preempted " + holder.String() + ")")
		}

		// held by thread-mode. that's only legal during vblank, where the
		// critical section is short; wait it out
		runtime.Gosched()
	}
}

// releaseISR releases the mutex from interrupt context.
func (mx *hwMutex) releaseISR(class lockClass) {
	mx.note(false, class)
	mx.state.Store(int32(classFree))
}

// acquireThread takes the mutex from thread-mode. Legal only inside the
// vertical blanking interval.
func (mx *hwMutex) acquireThread() {
	if !mx.inVblank() {
		panic("vga: hardware mutex acquired from thread-mode outside vblank")
	}

	for !mx.state.CompareAndSwap(int32(classFree), int32(classThread)) {
		// an interrupt routine holds the mutex. interrupt critical
		// sections are a handful of register writes
		runtime.Gosched()
	}
	mx.note(true, classThread)
}

// releaseThread releases the mutex from thread-mode. Still holding the
// peripherals when vblank ends is a fatal misuse.
func (mx *hwMutex) releaseThread() {
	if !mx.inVblank() {
		panic("vga: hardware mutex held past end of vblank")
	}
	mx.note(false, classThread)
	mx.state.Store(int32(classFree))
}
