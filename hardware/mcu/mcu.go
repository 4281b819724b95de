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

// Peripherals is the bundle of hardware the VGA driver requires. The driver
// takes the bundle by move at construction and never returns the individual
// handles except through its own stop/drop path.
type Peripherals struct {
	Clock *Clock

	// HSyncTimer drives the horizontal sync pin in PWM mode. LineTimer
	// carries the compare channels that delimit active video within the
	// line
	HSyncTimer *Timer
	LineTimer  *Timer

	// the scan-out stream and the port it writes pixels to
	DMA       *DMAStream
	VideoPort *Port

	// h-sync and v-sync pins live on the sync port
	SyncPort *Port
}

// NewPeripherals creates a fresh set of peripherals in their power-on
// state.
func NewPeripherals() Peripherals {
	return Peripherals{
		Clock:      &Clock{},
		HSyncTimer: NewTimer("TIM1"),
		LineTimer:  NewTimer("TIM4"),
		DMA:        NewDMAStream("DMA2_S5"),
		VideoPort:  NewPort("GPIOE"),
		SyncPort:   NewPort("GPIOB"),
	}
}
