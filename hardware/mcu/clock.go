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

package mcu

import "sync/atomic"

// Clock counts simulated AHB cycles. The machine advances it to the time of
// each peripheral event; code running in interrupt context can consume
// cycles from its budget with Spend().
type Clock struct {
	cycles atomic.Int64
}

// Elapsed returns the number of AHB cycles since reset.
func (clk *Clock) Elapsed() int64 {
	return clk.cycles.Load()
}

// Spend consumes simulated execution time. It is how interrupt handlers and
// rasterizers declare how long their work takes; the machine compares the
// spend against the handler's deadline.
func (clk *Clock) Spend(cycles int64) {
	if cycles < 0 {
		panic("mcu: negative cycle spend")
	}
	clk.cycles.Add(cycles)
}

// Advance moves the clock to an absolute cycle count. Time never moves
// backwards; an event timestamp that has already been passed (because a
// handler overspent) leaves the clock where it is.
func (clk *Clock) Advance(to int64) {
	for {
		now := clk.cycles.Load()
		if to <= now {
			return
		}
		if clk.cycles.CompareAndSwap(now, to) {
			return
		}
	}
}
