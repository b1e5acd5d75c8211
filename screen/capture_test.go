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

package screen_test

import (
	"testing"

	"github.com/hexela/gbprobe/digest"
	"github.com/hexela/gbprobe/gameboy"
	"github.com/hexela/gbprobe/screen"
	"github.com/hexela/gbprobe/test"
)

func TestCaptureDrawLine(t *testing.T) {
	cap := screen.NewCapture()

	scanline := make([]uint8, gameboy.LCDWidth)
	for i := range scanline {
		scanline[i] = uint8(i % 4)
	}
	test.ExpectedSuccess(t, cap.DrawLine(0, scanline))

	shades := cap.Shades()
	test.Equate(t, len(shades), gameboy.LCDWidth*gameboy.LCDHeight)
	test.Equate(t, shades[0], 0)
	test.Equate(t, shades[1], 1)
	test.Equate(t, shades[2], 2)
	test.Equate(t, shades[3], 3)

	// rest of frame buffer untouched
	test.Equate(t, shades[gameboy.LCDWidth], 0)
}

func TestCaptureDrawLineErrors(t *testing.T) {
	cap := screen.NewCapture()

	scanline := make([]uint8, gameboy.LCDWidth)
	test.ExpectedFailure(t, cap.DrawLine(-1, scanline))
	test.ExpectedFailure(t, cap.DrawLine(gameboy.LCDHeight, scanline))
	test.ExpectedFailure(t, cap.DrawLine(0, scanline[:10]))
}

func TestCaptureFrameCount(t *testing.T) {
	cap := screen.NewCapture()
	test.Equate(t, cap.Frame(), 0)

	scanline := make([]uint8, gameboy.LCDWidth)
	for f := 0; f < 2; f++ {
		for ly := 0; ly < gameboy.LCDHeight; ly++ {
			test.ExpectedSuccess(t, cap.DrawLine(ly, scanline))
		}
	}
	test.Equate(t, cap.Frame(), 2)
}

func TestCaptureImage(t *testing.T) {
	cap := screen.NewCapture()

	scanline := make([]uint8, gameboy.LCDWidth)
	scanline[0] = 3 // black
	scanline[1] = 1 // light grey
	test.ExpectedSuccess(t, cap.DrawLine(0, scanline))

	img := cap.Image()
	test.Equate(t, img.Bounds().Dx(), gameboy.LCDWidth)
	test.Equate(t, img.Bounds().Dy(), gameboy.LCDHeight)

	r, g, b, a := img.At(0, 0).RGBA()
	test.Equate(t, int(r>>8), 0x00)
	test.Equate(t, int(g>>8), 0x00)
	test.Equate(t, int(b>>8), 0x00)
	test.Equate(t, int(a>>8), 0xff)

	r, _, _, _ = img.At(1, 0).RGBA()
	test.Equate(t, int(r>>8), 0xcc)

	// undrawn pixels are shade zero, white
	r, _, _, _ = img.At(2, 1).RGBA()
	test.Equate(t, int(r>>8), 0xff)
}

func TestCaptureScaledImage(t *testing.T) {
	cap := screen.NewCapture()

	scanline := make([]uint8, gameboy.LCDWidth)
	scanline[0] = 3
	test.ExpectedSuccess(t, cap.DrawLine(0, scanline))

	img := cap.ScaledImage(3)
	test.Equate(t, img.Bounds().Dx(), gameboy.LCDWidth*3)
	test.Equate(t, img.Bounds().Dy(), gameboy.LCDHeight*3)

	// the single black LCD pixel covers a 3x3 block
	r, _, _, _ := img.At(2, 2).RGBA()
	test.Equate(t, int(r>>8), 0x00)
	r, _, _, _ = img.At(3, 2).RGBA()
	test.Equate(t, int(r>>8), 0xff)
}

type testSink struct {
	samples int
}

func (s *testSink) Write(buf []float32) error {
	s.samples += len(buf)
	return nil
}

func TestCaptureAudioSink(t *testing.T) {
	cap := screen.NewCapture()

	// no sink attached. samples dropped silently
	test.ExpectedSuccess(t, cap.EnqueueAudioBuffer(make([]float32, 16)))

	snk := &testSink{}
	cap.AttachAudio(snk)
	test.ExpectedSuccess(t, cap.EnqueueAudioBuffer(make([]float32, 16)))
	test.Equate(t, snk.samples, 16)
}

// the audio digest attaches to a capture the same way the wav writer does.
// the APU stream must reach it through EnqueueAudioBuffer.
func TestCaptureAudioDigest(t *testing.T) {
	cap := screen.NewCapture()

	dig := digest.NewAudio()
	cap.AttachAudio(dig)

	buf := make([]float32, 256)
	for i := range buf {
		buf[i] = float32(i) / 256.0
	}
	test.ExpectedSuccess(t, cap.EnqueueAudioBuffer(buf))

	dig.Flush()
	hash := dig.Hash()
	test.Equate(t, len(hash), 40)

	// a silent stream digests to a different value
	other := digest.NewAudio()
	cap.AttachAudio(other)
	test.ExpectedSuccess(t, cap.EnqueueAudioBuffer(make([]float32, 256)))
	other.Flush()
	if other.Hash() == hash {
		t.Errorf("different streams produced the same digest")
	}
}
