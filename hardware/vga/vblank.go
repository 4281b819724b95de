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

import "sync"

// vblank is the one-way signal from the end-of-frame interrupt to thread
// mode. The counter is monotone and never wraps; a blocked waiter is only
// released by a strict advance past the value it sampled on entry.
//
// Thread-mode operations that need to touch peripherals during the
// blanking interval register a window request before waiting. The raising
// side then holds the frame at the top of the blanking interval until all
// registered requests have completed, which is the simulation's equivalent
// of the generous real-time budget a hardware vblank provides.
type vblank struct {
	crit sync.Mutex
	cond *sync.Cond

	counter int64

	// window requests registered for the next vblank, and requests
	// currently inside the window
	pending  int
	inWindow int
}

func newVblank() *vblank {
	vb := &vblank{}
	vb.cond = sync.NewCond(&vb.crit)
	return vb
}

// count samples the frame counter.
func (vb *vblank) count() int64 {
	vb.crit.Lock()
	defer vb.crit.Unlock()
	return vb.counter
}

// wait blocks until the frame counter strictly advances past from.
func (vb *vblank) wait(from int64) {
	vb.crit.Lock()
	defer vb.crit.Unlock()
	for vb.counter <= from {
		vb.cond.Wait()
	}
}

// raise is called by the end-of-frame interrupt. It advances the counter,
// wakes all waiters and then blocks the machine until every window request
// registered before this vblank has completed.
func (vb *vblank) raise() {
	vb.crit.Lock()
	defer vb.crit.Unlock()

	vb.counter++
	vb.inWindow += vb.pending
	vb.pending = 0
	vb.cond.Broadcast()

	for vb.inWindow > 0 {
		vb.cond.Wait()
	}
}

// enterWindow blocks until the start of the next vblank and guarantees the
// machine will not leave the blanking interval until exitWindow is called.
func (vb *vblank) enterWindow() {
	vb.crit.Lock()
	defer vb.crit.Unlock()

	vb.pending++
	from := vb.counter
	for vb.counter <= from {
		vb.cond.Wait()
	}
}

// exitWindow releases the hold placed by enterWindow.
func (vb *vblank) exitWindow() {
	vb.crit.Lock()
	defer vb.crit.Unlock()

	vb.inWindow--
	vb.cond.Broadcast()
}
