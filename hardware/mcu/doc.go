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

// Package mcu is a register-level model of the microcontroller peripherals
// the VGA driver needs: two general-purpose timers, a DMA stream and two
// GPIO ports, all ticking against a simulated AHB cycle clock.
//
// The model is deliberately shallow. Registers hold the values the driver
// programs into them and the vga package's machine derives event times from
// those values; the peripherals do not tick autonomously. This is enough
// for the driver to be exercised with the same register arithmetic it would
// use on real silicon.
package mcu
