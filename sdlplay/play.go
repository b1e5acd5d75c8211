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

package sdlplay

import (
	"sync"
	"time"

	"github.com/hexela/gbprobe/curated"
	"github.com/hexela/gbprobe/gameboy"
	"github.com/hexela/gbprobe/performance"
	"github.com/hexela/gbprobe/screen"
	"github.com/ushitora-anqou/aqboy/constant"
	"github.com/ushitora-anqou/aqboy/window"
	"github.com/veandco/go-sdl2/sdl"
)

const windowTitle = "gbprobe"

// Player is an SDL window that implements window.Window. Scanlines arrive
// from the PPU through DrawLine and are presented once per frame.
type Player struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	srcPic    [gameboy.LCDWidth * gameboy.LCDHeight]uint8
	mtxSrcPic sync.Mutex

	prevDirection uint8
	prevAction    uint8

	audio screen.AudioSink
}

// NewPlayer initialises SDL and creates the display window. scale is the
// integer multiple of the Game Boy LCD size to use for the window.
//
// Must be called from the main goroutine.
func NewPlayer(scale int) (*Player, error) {
	if scale < 1 {
		scale = 1
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, curated.Errorf("sdlplay: %v", err)
	}

	wind, err := sdl.CreateWindow(
		windowTitle,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(gameboy.LCDWidth*scale),
		int32(gameboy.LCDHeight*scale),
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		return nil, curated.Errorf("sdlplay: %v", err)
	}

	renderer, err := sdl.CreateRenderer(wind, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return nil, curated.Errorf("sdlplay: %v", err)
	}

	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_ARGB8888,
		sdl.TEXTUREACCESS_STREAMING,
		gameboy.LCDWidth,
		gameboy.LCDHeight,
	)
	if err != nil {
		return nil, curated.Errorf("sdlplay: %v", err)
	}

	return &Player{
		window:   wind,
		renderer: renderer,
		texture:  texture,
	}, nil
}

// AttachAudio sets the destination for audio buffers produced by the APU.
// There is no audio output without an attached sink.
func (ply *Player) AttachAudio(sink screen.AudioSink) {
	ply.audio = sink
}

// Destroy the SDL resources held by the Player.
func (ply *Player) Destroy() {
	_ = ply.texture.Destroy()
	_ = ply.renderer.Destroy()
	_ = ply.window.Destroy()
	sdl.Quit()
}

// DrawLine implements the window.Window interface.
func (ply *Player) DrawLine(ly int, scanline []uint8) error {
	if ly < 0 || ly >= gameboy.LCDHeight {
		return curated.Errorf("sdlplay: scanline out of range (%d)", ly)
	}
	if len(scanline) != gameboy.LCDWidth {
		return curated.Errorf("sdlplay: wrong scanline length (%d)", len(scanline))
	}

	ply.mtxSrcPic.Lock()
	copy(ply.srcPic[ly*gameboy.LCDWidth:(ly+1)*gameboy.LCDWidth], scanline)
	ply.mtxSrcPic.Unlock()

	return nil
}

// EnqueueAudioBuffer implements the window.Window interface.
func (ply *Player) EnqueueAudioBuffer(buf []float32) error {
	if ply.audio == nil {
		return nil
	}
	return ply.audio.Write(buf)
}

// handleEvents drains the SDL event queue. The returned WindowEvent is the
// set of currently held joypad buttons. quit is true on a window close or
// the escape key.
func (ply *Player) handleEvents() (bool, window.WindowEvent) {
	we := window.WindowEvent{
		Direction: ply.prevDirection,
		Action:    ply.prevAction,
	}
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch ev := event.(type) {
		case *sdl.QuitEvent:
			quit = true

		case *sdl.KeyboardEvent:
			switch ev.Type {
			case sdl.KEYDOWN:
				switch ev.Keysym.Sym {
				case sdl.K_ESCAPE:
					quit = true
				case sdl.K_w:
					we.Direction |= 1 << constant.DIR_UP
				case sdl.K_a:
					we.Direction |= 1 << constant.DIR_LEFT
				case sdl.K_s:
					we.Direction |= 1 << constant.DIR_DOWN
				case sdl.K_d:
					we.Direction |= 1 << constant.DIR_RIGHT
				case sdl.K_k:
					we.Action |= 1 << constant.ACT_A
				case sdl.K_j:
					we.Action |= 1 << constant.ACT_B
				case sdl.K_RETURN:
					we.Action |= 1 << constant.ACT_START
				case sdl.K_SPACE:
					we.Action |= 1 << constant.ACT_SELECT
				}

			case sdl.KEYUP:
				switch ev.Keysym.Sym {
				case sdl.K_w:
					we.Direction &^= 1 << constant.DIR_UP
				case sdl.K_a:
					we.Direction &^= 1 << constant.DIR_LEFT
				case sdl.K_s:
					we.Direction &^= 1 << constant.DIR_DOWN
				case sdl.K_d:
					we.Direction &^= 1 << constant.DIR_RIGHT
				case sdl.K_k:
					we.Action &^= 1 << constant.ACT_A
				case sdl.K_j:
					we.Action &^= 1 << constant.ACT_B
				case sdl.K_RETURN:
					we.Action &^= 1 << constant.ACT_START
				case sdl.K_SPACE:
					we.Action &^= 1 << constant.ACT_SELECT
				}
			}
		}
	}

	ply.prevDirection = we.Direction
	ply.prevAction = we.Action

	return quit, we
}

// render presents the current frame.
func (ply *Player) render() error {
	pixels, _, err := ply.texture.Lock(nil)
	if err != nil {
		return curated.Errorf("sdlplay: %v", err)
	}

	ply.mtxSrcPic.Lock()
	for off := 0; off < gameboy.LCDWidth*gameboy.LCDHeight; off++ {
		grey := screen.Palette[ply.srcPic[off]]
		pixels[off*4+0] = grey // b
		pixels[off*4+1] = grey // g
		pixels[off*4+2] = grey // r
		pixels[off*4+3] = 0xff // a
	}
	ply.mtxSrcPic.Unlock()
	ply.texture.Unlock()

	_ = ply.renderer.Clear()
	_ = ply.renderer.Copy(ply.texture, nil, nil)
	ply.renderer.Present()

	return nil
}

// Play runs the machine until the window is closed or numFrames frames
// have been emulated. A numFrames of zero or less means no frame limit.
//
// Must be called from the main goroutine.
func (ply *Player) Play(mc *gameboy.Machine, numFrames int) error {
	sync := newSynchronizer(performance.RefreshRate)

	for {
		quit, we := ply.handleEvents()
		if quit {
			return nil
		}
		mc.Input(we)

		if err := mc.StepFrame(); err != nil {
			if curated.Is(err, gameboy.HaltRun) {
				return nil
			}
			return err
		}

		if err := ply.render(); err != nil {
			return err
		}

		if numFrames > 0 && mc.Frame() >= numFrames {
			return nil
		}

		sync.maySleep()
	}
}

// synchronizer paces the emulation to the DMG refresh rate.
type synchronizer struct {
	prevTime   time.Time
	usPerFrame int
}

func newSynchronizer(targetFPS float64) *synchronizer {
	return &synchronizer{
		prevTime:   time.Now(),
		usPerFrame: int(1000000.0 / targetFPS),
	}
}

func (ts *synchronizer) maySleep() {
	diff := ts.usPerFrame - int(time.Since(ts.prevTime).Microseconds())
	if diff > 0 {
		time.Sleep(time.Duration(diff) * time.Microsecond)
	}
	ts.prevTime = time.Now()
}
