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

// slot states. the order matters: the state machine only ever moves
// empty -> loading -> loaded <-> locked, loaded -> empty, and
// locked -> revoking -> empty.
const (
	slotEmpty uint32 = iota
	slotLoading
	slotLoaded
	slotLocked
	slotRevoking
)

// slot is a mechanism for loaning a rasterizer to an interrupt handler.
//
// A slot is initially empty. A rasterizer is donated with donate(), which
// publishes it for the duration of a scope function and takes it back
// before returning; or armed with arm()/revoke() when several slots share
// one scope (band lists).
//
// The interrupt side reads the slot with observe(). If the slot is loaded,
// observe() locks it, runs the supplied body on the rasterizer, and
// returns it to loaded. observe() never busy-waits, making it safe for
// interrupt context; the waiting all happens on the donating side.
//
// The loaded tag is published with release ordering and read with acquire
// ordering, so an observer that sees the loaded state also sees the fully
// constructed rasterizer and everything it captured.
type slot struct {
	state    atomic.Uint32
	poisoned atomic.Bool

	// contents is only written while the slot is in the loading state and
	// only read while it is locked. the state transitions carry the
	// necessary ordering
	contents Rasterizer
}

// arm publishes a rasterizer to observers. The caller must pair arm with
// revoke before the rasterizer's captured environment goes out of scope.
//
// arm panics if the slot is not empty: a slot cannot be donated to
// concurrently or reentrantly.
func (s *slot) arm(r Rasterizer) {
	if !s.state.CompareAndSwap(slotEmpty, slotLoading) {
		panic("vga: concurrent donation to rasterizer slot")
	}

	// the loading state gives us exclusive control of the contents
	s.contents = r
	s.state.Store(slotLoaded)
}

// revoke takes the slot back to empty, waiting for any in-flight observer
// to finish with the rasterizer first. On return the caller has exclusive
// use of the rasterizer and its captured environment again.
//
// If an observer panicked while holding the rasterizer the slot is
// poisoned; revoke re-raises the panic on the donating side.
func (s *slot) revoke() {
	for {
		if s.poisoned.Load() {
			panic("vga: rasterizer slot poisoned by panic in rasterizer")
		}
		if s.state.CompareAndSwap(slotLoaded, slotEmpty) {
			break
		}
		// an observer holds the slot. mark the revocation so that the
		// observer empties the slot on its way out rather than returning it
		// to loaded
		s.state.CompareAndSwap(slotLocked, slotRevoking)
		if s.state.Load() == slotEmpty {
			// already revoked, or the observer has finished
			break
		}
		// the observer cannot block, so this wait is short
		runtime.Gosched()
	}
	s.contents = nil
}

// donate publishes rasterizer r to observers for the duration of scope.
// When scope returns, donate waits until any observer is done and then
// takes the slot back to empty, ensuring the caller regains exclusive use
// of r. The revoke/drain happens however scope exits, including by panic.
func (s *slot) donate(r Rasterizer, scope func()) {
	s.arm(r)
	defer s.revoke()
	scope()
}

// observe locks the slot and runs body on its contents, if the slot is
// loaded. If the slot is empty, still loading, already locked or being
// revoked, observe returns false without running body.
//
// observe never busy-waits. If body panics the slot is poisoned so that
// the donor finds out.
func (s *slot) observe(body func(Rasterizer)) bool {
	if !s.state.CompareAndSwap(slotLoaded, slotLocked) {
		return false
	}

	// having exchanged loaded for locked we have exclusive access to the
	// contents

	if s.poisoned.Load() {
		panic("vga: rasterizer slot poisoned by panic in rasterizer")
	}

	// a panic out of body leaves the slot locked and poisoned. a body that
	// is merely still running does not poison the slot, so a donor waiting
	// in revoke keeps waiting for it
	completed := false
	defer func() {
		if !completed {
			s.poisoned.Store(true)
		}
	}()
	body(s.contents)
	completed = true

	// a revoke that arrived while body ran takes the slot to empty
	if !s.state.CompareAndSwap(slotLocked, slotLoaded) {
		s.state.Store(slotEmpty)
	}
	return true
}
