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

import "fmt"

// DMAStream models a one-shot memory-to-peripheral DMA stream. The memory
// address and transfer count registers are modelled together as a byte
// slice; the peripheral address register is a GPIO port, each transferred
// byte landing in the low byte of the port's output data register.
type DMAStream struct {
	label string

	// the armed transfer. mem is the M0AR/NDTR pair
	mem  []uint8
	port *Port

	// cycles per transferred byte. the minimum beat rate is one byte every
	// Pace cycles; the driver programs this from the timing descriptor's
	// clocks-per-pixel value
	pace int64

	running     bool
	transferred int

	// byte count of the most recent completed transfer. survives Stop
	lastCount int
}

func NewDMAStream(label string) *DMAStream {
	return &DMAStream{label: label}
}

func (dma *DMAStream) String() string {
	return fmt.Sprintf("%s: ndtr=%d pace=%d running=%v", dma.label, len(dma.mem), dma.pace, dma.running)
}

// Label returns the name the stream was created with.
func (dma *DMAStream) Label() string {
	return dma.label
}

// Arm programs the stream for its next transfer but does not start it. The
// slice aliases driver memory; the stream reads from it when started.
func (dma *DMAStream) Arm(mem []uint8, port *Port, pace int64) {
	if dma.running {
		panic(fmt.Sprintf("%s: rearmed while transfer in progress", dma.label))
	}
	dma.mem = mem
	dma.port = port
	dma.pace = pace
	dma.transferred = 0
}

// Start performs the armed transfer. The whole transfer happens at the
// simulated instant Start is called; TransferCycles says how long the
// transfer would have occupied the bus.
func (dma *DMAStream) Start() {
	if dma.port == nil {
		panic(fmt.Sprintf("%s: started without being armed", dma.label))
	}

	dma.running = true
	for _, v := range dma.mem {
		dma.port.WriteByte(v)
		dma.transferred++
	}
	dma.lastCount = dma.transferred
	dma.running = false
}

// LastTransfer returns the byte count of the most recent completed
// transfer.
func (dma *DMAStream) LastTransfer() int {
	return dma.lastCount
}

// Stop halts the stream. Stopping an idle stream is harmless; the driver
// stops the stream defensively at the end of every line.
func (dma *DMAStream) Stop() {
	dma.running = false
	dma.mem = nil
	dma.port = nil
}

// Busy returns whether a transfer is in flight.
func (dma *DMAStream) Busy() bool {
	return dma.running
}

// Remaining returns the number of bytes left in the armed transfer.
func (dma *DMAStream) Remaining() int {
	return len(dma.mem) - dma.transferred
}

// TransferCycles returns the bus time, in AHB cycles, that the armed
// transfer occupies.
func (dma *DMAStream) TransferCycles() int64 {
	return int64(len(dma.mem)) * dma.pace
}

// Pace returns the programmed cycles-per-byte value.
func (dma *DMAStream) Pace() int64 {
	return dma.pace
}
