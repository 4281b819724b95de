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

// MaxTimerPeriod is the largest value the 16-bit auto-reload register can
// hold.
const MaxTimerPeriod = 0xffff

// number of compare channels on a general purpose timer.
const numCompareChannels = 4

// Timer models a general purpose 16-bit timer with four compare channels.
// Channel one can be put into PWM mode, in which case the timer drives an
// output pin directly.
type Timer struct {
	label string

	// prescaler. the timer ticks once every PSC+1 AHB cycles
	psc uint32

	// auto reload register. the counter period is ARR+1 ticks
	arr uint32

	// compare channels, one-indexed like the datasheet. entry zero unused
	ccr [numCompareChannels + 1]uint32

	// whether compare channel one drives the output pin, and with which
	// polarity (true = pulse is high)
	pwm         bool
	pwmPositive bool

	enabled bool
}

func NewTimer(label string) *Timer {
	return &Timer{label: label}
}

func (tmr *Timer) String() string {
	return fmt.Sprintf("%s: psc=%d arr=%d enabled=%v", tmr.label, tmr.psc, tmr.arr, tmr.enabled)
}

// Label returns the name the timer was created with.
func (tmr *Timer) Label() string {
	return tmr.label
}

// SetPrescaler divides the AHB clock. A prescaler of n means one timer tick
// every n+1 AHB cycles.
func (tmr *Timer) SetPrescaler(psc uint32) {
	tmr.psc = psc
}

// SetPeriod sets the auto-reload register. The value must fit the 16-bit
// register; the driver is responsible for refusing timings that do not.
func (tmr *Timer) SetPeriod(arr uint32) {
	if arr > MaxTimerPeriod {
		panic(fmt.Sprintf("%s: period %d overflows timer", tmr.label, arr))
	}
	tmr.arr = arr
}

// SetCompare programs a compare channel. Channels are one-indexed.
func (tmr *Timer) SetCompare(channel int, value uint32) {
	if channel < 1 || channel > numCompareChannels {
		panic(fmt.Sprintf("%s: no such compare channel (%d)", tmr.label, channel))
	}
	tmr.ccr[channel] = value
}

// Compare returns the programmed value of a compare channel.
func (tmr *Timer) Compare(channel int) uint32 {
	if channel < 1 || channel > numCompareChannels {
		panic(fmt.Sprintf("%s: no such compare channel (%d)", tmr.label, channel))
	}
	return tmr.ccr[channel]
}

// EnablePWM puts compare channel one into PWM mode. The output is at pulse
// level from the start of the period until the compare value.
func (tmr *Timer) EnablePWM(positive bool) {
	tmr.pwm = true
	tmr.pwmPositive = positive
}

// DisablePWM takes compare channel one out of PWM mode.
func (tmr *Timer) DisablePWM() {
	tmr.pwm = false
}

// PWM returns whether PWM mode is active and the pulse polarity.
func (tmr *Timer) PWM() (active bool, positive bool) {
	return tmr.pwm, tmr.pwmPositive
}

// Enable starts the counter.
func (tmr *Timer) Enable() {
	tmr.enabled = true
}

// Disable stops the counter.
func (tmr *Timer) Disable() {
	tmr.enabled = false
}

// Enabled returns whether the counter is running.
func (tmr *Timer) Enabled() bool {
	return tmr.enabled
}

// Prescaler returns the programmed prescaler value.
func (tmr *Timer) Prescaler() uint32 {
	return tmr.psc
}

// Period returns the programmed auto-reload value.
func (tmr *Timer) Period() uint32 {
	return tmr.arr
}

// Reset returns all registers to their power-on values.
func (tmr *Timer) Reset() {
	*tmr = Timer{label: tmr.label}
}
