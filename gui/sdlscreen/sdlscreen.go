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

// Package sdlscreen is the SDL implementation of the monitor on the other
// end of the VGA cable. It receives scanlines from the driver and presents
// a frame at a time through a streaming texture.
//
// SDL requires window handling to happen on the main thread. The driver
// calls the PixelRenderer functions from its own goroutine; Service() must
// be called in a loop from the main thread.
package sdlscreen

import (
	"sync"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/jetsetilly/softvga/curated"
	"github.com/jetsetilly/softvga/hardware/vga"
	"github.com/jetsetilly/softvga/hardware/vga/timing"
	"github.com/jetsetilly/softvga/version"
)

// the number of bytes per screen pixel. red, green, blue and alpha.
const scrDepth = 4

// Screen is an SDL window implementing vga.PixelRenderer.
type Screen struct {
	tm     timing.Timing
	colour vga.ColourModel

	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	// pixels is written by the driver goroutine and read by the main
	// thread in Service(). the critical section covers both
	crit     sync.Mutex
	pixels   []byte
	newFrame bool

	// closed on window quit events
	quit chan bool
}

// NewScreen creates the SDL window sized for the given timing.
func NewScreen(tm timing.Timing, scale int) (*Screen, error) {
	scr := &Screen{
		tm:     tm,
		colour: vga.DefaultColourModel,
		pixels: make([]byte, tm.VideoPixels*tm.VideoLines*scrDepth),
		quit:   make(chan bool),
	}

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, curated.Errorf(curated.SDLScreen, err)
	}

	var err error

	scr.window, err = sdl.CreateWindow(version.ApplicationName,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(tm.VideoPixels*scale), int32(tm.VideoLines*scale),
		sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, curated.Errorf(curated.SDLScreen, err)
	}

	scr.renderer, err = sdl.CreateRenderer(scr.window, -1,
		sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		return nil, curated.Errorf(curated.SDLScreen, err)
	}

	scr.texture, err = scr.renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888,
		sdl.TEXTUREACCESS_STREAMING,
		int32(tm.VideoPixels), int32(tm.VideoLines))
	if err != nil {
		return nil, curated.Errorf(curated.SDLScreen, err)
	}

	return scr, nil
}

// Quit returns a channel that is closed when the user closes the window.
func (scr *Screen) Quit() <-chan bool {
	return scr.quit
}

// NewFrame implements vga.PixelRenderer.
func (scr *Screen) NewFrame(_ int) error {
	scr.crit.Lock()
	defer scr.crit.Unlock()
	scr.newFrame = true
	return nil
}

// SetScanline implements vga.PixelRenderer.
func (scr *Screen) SetScanline(line int, pixels []vga.Pixel) error {
	if line < 0 || line >= scr.tm.VideoLines {
		return nil
	}

	scr.crit.Lock()
	defer scr.crit.Unlock()

	i := line * scr.tm.VideoPixels * scrDepth
	for _, p := range pixels {
		col := scr.colour.RGBA(p)
		scr.pixels[i] = col.R
		scr.pixels[i+1] = col.G
		scr.pixels[i+2] = col.B
		scr.pixels[i+3] = 255
		i += scrDepth
	}

	return nil
}

// EndRendering implements vga.PixelRenderer.
func (scr *Screen) EndRendering() error {
	return nil
}

// Service presents the most recent frame and handles window events. It
// MUST ONLY be called from the main thread, in a loop.
func (scr *Screen) Service() {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			scr.close()
			return
		case *sdl.KeyboardEvent:
			if ev.Type == sdl.KEYDOWN && ev.Keysym.Sym == sdl.K_ESCAPE {
				scr.close()
				return
			}
		}
	}

	scr.crit.Lock()
	if scr.newFrame {
		scr.newFrame = false
		scr.texture.Update(nil, scr.pixels, scr.tm.VideoPixels*scrDepth)
	}
	scr.crit.Unlock()

	scr.renderer.Clear()
	scr.renderer.Copy(scr.texture, nil, nil)
	scr.renderer.Present()
}

func (scr *Screen) close() {
	select {
	case <-scr.quit:
		// already closed
	default:
		close(scr.quit)
	}
}

// Destroy releases the SDL resources.
func (scr *Screen) Destroy() {
	scr.texture.Destroy()
	scr.renderer.Destroy()
	scr.window.Destroy()
	sdl.Quit()
}
