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

package curated

// error patterns used by more than one package. patterns private to a single
// package are declared in the package that uses them.
const (
	// driver
	DriverError       = "vga: %v"
	AlreadyInitialised = "vga: driver already initialised"

	// timing descriptors
	InvalidTiming = "timing: %v"

	// band lists
	InvalidBandList = "bands: %v"

	// demos
	UnknownDemo = "demo: unrecognised demo (%s)"

	// gui
	SDLScreen = "sdlscreen: %v"

	// performance
	PerformanceError = "performance: %v"

	// user input
	TerminalInput = "userinput: %v"
)
