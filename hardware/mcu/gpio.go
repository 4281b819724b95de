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

import (
	"fmt"
	"sync"
)

// PinMode is the configuration of a single GPIO pin.
type PinMode int

// List of valid PinMode values. A pin that is not driven reads as low, so
// InputPulledDown is what the driver uses to blank the video pins without
// glitching.
const (
	Input PinMode = iota
	InputPulledDown
	Output
)

func (m PinMode) String() string {
	switch m {
	case Input:
		return "input"
	case InputPulledDown:
		return "input (pulled down)"
	case Output:
		return "output"
	}
	return "unknown"
}

// number of pins on a GPIO port.
const NumPins = 16

// Port models a GPIO port: an output data register, a per-pin mode register
// and an optional watcher that observes every write to the output register.
//
// The watcher is the simulation's stand-in for the physical pins: whatever
// would appear on the wires is delivered to the watcher instead.
type Port struct {
	label string

	crit  sync.Mutex
	moder [NumPins]PinMode
	odr   uint32

	watcher func(odr uint32)
}

func NewPort(label string) *Port {
	return &Port{label: label}
}

func (p *Port) String() string {
	return fmt.Sprintf("%s: odr=%#04x", p.label, p.odr)
}

// Label returns the name the port was created with.
func (p *Port) Label() string {
	return p.label
}

// SetMode configures a single pin.
func (p *Port) SetMode(pin int, mode PinMode) {
	if pin < 0 || pin >= NumPins {
		panic(fmt.Sprintf("%s: no such pin (%d)", p.label, pin))
	}
	p.crit.Lock()
	defer p.crit.Unlock()
	p.moder[pin] = mode
}

// Mode returns the configuration of a single pin.
func (p *Port) Mode(pin int) PinMode {
	p.crit.Lock()
	defer p.crit.Unlock()
	return p.moder[pin]
}

// Write replaces the output data register, notifying the watcher.
func (p *Port) Write(odr uint32) {
	p.crit.Lock()
	p.odr = odr
	w := p.watcher
	p.crit.Unlock()

	if w != nil {
		w(odr)
	}
}

// WriteByte replaces the low byte of the output data register, leaving the
// upper pins alone. This is the register access the DMA stream performs for
// every pixel.
func (p *Port) WriteByte(v uint8) {
	p.crit.Lock()
	p.odr = (p.odr &^ 0xff) | uint32(v)
	odr := p.odr
	w := p.watcher
	p.crit.Unlock()

	if w != nil {
		w(odr)
	}
}

// Set drives a single pin high or low, in the manner of the set/reset
// register.
func (p *Port) Set(pin int, high bool) {
	if pin < 0 || pin >= NumPins {
		panic(fmt.Sprintf("%s: no such pin (%d)", p.label, pin))
	}

	p.crit.Lock()
	if high {
		p.odr |= 1 << uint(pin)
	} else {
		p.odr &^= 1 << uint(pin)
	}
	odr := p.odr
	w := p.watcher
	p.crit.Unlock()

	if w != nil {
		w(odr)
	}
}

// Toggle inverts a single pin.
func (p *Port) Toggle(pin int) {
	p.crit.Lock()
	p.odr ^= 1 << uint(pin)
	odr := p.odr
	w := p.watcher
	p.crit.Unlock()

	if w != nil {
		w(odr)
	}
}

// Pin returns the current level of a single output pin.
func (p *Port) Pin(pin int) bool {
	p.crit.Lock()
	defer p.crit.Unlock()
	return p.odr&(1<<uint(pin)) != 0
}

// ODR returns the current value of the output data register.
func (p *Port) ODR() uint32 {
	p.crit.Lock()
	defer p.crit.Unlock()
	return p.odr
}

// Watch installs the register watcher. Only one watcher is supported.
func (p *Port) Watch(f func(odr uint32)) {
	p.crit.Lock()
	defer p.crit.Unlock()
	p.watcher = f
}
