// This file is part of GBprobe.
//
// GBprobe is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GBprobe is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GBprobe.  If not, see <https://www.gnu.org/licenses/>.

package screen

import (
	"image"
	"image/color"
	"sync"

	"github.com/hexela/gbprobe/curated"
	"github.com/hexela/gbprobe/gameboy"

	xdraw "golang.org/x/image/draw"
)

// Palette maps the four DMG shades to display greys. Index zero is the
// lightest shade.
var Palette = [4]uint8{0xff, 0xcc, 0x44, 0x00}

// AudioSink receives the audio sample stream from the APU. The wavwriter
// package implements this interface.
type AudioSink interface {
	Write(buf []float32) error
}

// Capture implements the display interface of the emulation library
// without any real display. The most recent shade of every LCD pixel is
// retained.
//
// Capture is safe for concurrent use. The emulation goroutine writes
// scanlines while other goroutines read frames.
type Capture struct {
	crit sync.Mutex
	pix  [gameboy.LCDWidth * gameboy.LCDHeight]uint8

	// count of completed frames. the bottom scanline marks completion
	frame int

	audio AudioSink
}

// NewCapture is the preferred method of initialisation for the Capture
// type.
func NewCapture() *Capture {
	return &Capture{}
}

// AttachAudio directs the APU sample stream to snk. A nil value detaches.
func (cap *Capture) AttachAudio(snk AudioSink) {
	cap.crit.Lock()
	defer cap.crit.Unlock()
	cap.audio = snk
}

// DrawLine implements the display interface of the emulation library.
func (cap *Capture) DrawLine(ly int, scanline []uint8) error {
	if ly < 0 || ly >= gameboy.LCDHeight {
		return curated.Errorf("screen: scanline out of range (%d)", ly)
	}
	if len(scanline) != gameboy.LCDWidth {
		return curated.Errorf("screen: wrong scanline length (%d)", len(scanline))
	}

	cap.crit.Lock()
	defer cap.crit.Unlock()

	copy(cap.pix[ly*gameboy.LCDWidth:(ly+1)*gameboy.LCDWidth], scanline)
	if ly == gameboy.LCDHeight-1 {
		cap.frame++
	}

	return nil
}

// EnqueueAudioBuffer implements the display interface of the emulation
// library. Samples are dropped unless an AudioSink is attached.
func (cap *Capture) EnqueueAudioBuffer(buf []float32) error {
	cap.crit.Lock()
	snk := cap.audio
	cap.crit.Unlock()

	if snk == nil {
		return nil
	}
	return snk.Write(buf)
}

// Frame returns the number of frames fully drawn since initialisation.
func (cap *Capture) Frame() int {
	cap.crit.Lock()
	defer cap.crit.Unlock()
	return cap.frame
}

// Shades copies the current frame buffer as raw DMG shade values, one byte
// per pixel in row order. Used by the digest package.
func (cap *Capture) Shades() []uint8 {
	cap.crit.Lock()
	defer cap.crit.Unlock()

	s := make([]uint8, len(cap.pix))
	copy(s, cap.pix[:])
	return s
}

// Image converts the current frame buffer to an RGBA image at native LCD
// resolution.
func (cap *Capture) Image() *image.RGBA {
	cap.crit.Lock()
	defer cap.crit.Unlock()

	img := image.NewRGBA(image.Rect(0, 0, gameboy.LCDWidth, gameboy.LCDHeight))
	for i, shade := range cap.pix {
		grey := Palette[shade&0x03]
		img.SetRGBA(i%gameboy.LCDWidth, i/gameboy.LCDWidth,
			color.RGBA{R: grey, G: grey, B: grey, A: 0xff})
	}
	return img
}

// ScaledImage is like Image but with each LCD pixel rendered as a block of
// scale by scale image pixels. A scale of one or less is the same as
// Image().
func (cap *Capture) ScaledImage(scale int) *image.RGBA {
	src := cap.Image()
	if scale <= 1 {
		return src
	}

	img := image.NewRGBA(image.Rect(0, 0, gameboy.LCDWidth*scale, gameboy.LCDHeight*scale))
	xdraw.NearestNeighbor.Scale(img, img.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return img
}
