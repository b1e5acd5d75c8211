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

package gameboy

import (
	"os"

	"github.com/hexela/gbprobe/curated"
	"github.com/hexela/gbprobe/romfile"

	"github.com/ushitora-anqou/aqboy/apu"
	"github.com/ushitora-anqou/aqboy/bus"
	"github.com/ushitora-anqou/aqboy/constant"
	"github.com/ushitora-anqou/aqboy/cpu"
	"github.com/ushitora-anqou/aqboy/joypad"
	"github.com/ushitora-anqou/aqboy/mmu"
	"github.com/ushitora-anqou/aqboy/ppu"
	"github.com/ushitora-anqou/aqboy/timer"
	"github.com/ushitora-anqou/aqboy/window"
)

// HaltRun is a sentinel error. a RunFrames() callback returns it to stop
// the run cleanly.
const HaltRun = "gameboy: halt"

// display geometry, re-exported so client packages do not need to import
// the emulation library directly.
const (
	LCDWidth  = constant.LCD_WIDTH
	LCDHeight = constant.LCD_HEIGHT
)

// Machine is the assembled Game Boy. All the emulation components hang off
// the bus in the manner the emulation library expects.
type Machine struct {
	ROM *romfile.Loader

	bus *bus.Bus
	cpu *cpu.CPU
	ppu *ppu.PPU
	mmu *mmu.MMU
	tmr *timer.Timer
	apu *apu.APU
	joy *joypad.Joypad

	wind window.Window

	// t-cycles carried over from the previous frame. a CPU instruction
	// can straddle the frame boundary.
	overflow int

	frame int
}

// NewMachine assembles the emulation components around a loaded ROM. The
// wind argument receives every rendered scanline and the audio stream. A
// nil wind is replaced with a discarding stub.
func NewMachine(wind window.Window, ld *romfile.Loader) (*Machine, error) {
	if !ld.HasLoaded() {
		if err := ld.Load(); err != nil {
			return nil, curated.Errorf("gameboy: %v", err)
		}
	}

	if wind == nil {
		wind = nullWindow{}
	}

	mc := &Machine{
		ROM:  ld,
		wind: wind,
	}

	mc.bus = bus.NewBus()
	mc.cpu = cpu.NewCPU(mc.bus)
	mc.ppu = ppu.NewPPU(mc.bus)

	// the MMU reads the ROM image from disk. the loader data may have come
	// from an archive or over HTTP so stage it in a scratch file.
	romPath, err := stageROM(ld)
	if err != nil {
		return nil, curated.Errorf("gameboy: %v", err)
	}
	defer os.Remove(romPath)

	romData, err := os.ReadFile(romPath)
	if err != nil {
		return nil, curated.Errorf("gameboy: %v", err)
	}

	mc.mmu, err = mmu.NewMMU(mc.bus, romData)
	if err != nil {
		return nil, curated.Errorf("gameboy: %v", err)
	}

	mc.tmr = timer.NewTimer(mc.bus)
	mc.apu = apu.NewAPU()
	mc.joy = joypad.NewJoypad()

	mc.bus.Register(mc.cpu, mc.mmu, mc.ppu, wind, mc.tmr, mc.apu, mc.joy)

	return mc, nil
}

// stageROM writes the loader's ROM image to a scratch file. The MMU
// constructor only accepts a file path.
func stageROM(ld *romfile.Loader) (string, error) {
	f, err := os.CreateTemp("", "gbprobe_rom_*.gb")
	if err != nil {
		return "", err
	}
	if _, err := f.Write(ld.Data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// Frame returns the number of completed frames since the machine was
// assembled.
func (mc *Machine) Frame() int {
	return mc.frame
}

// Input applies joypad state for subsequent frames. Direction and Action
// are bitmasks built from the Button values in this package.
func (mc *Machine) Input(event window.WindowEvent) {
	mc.joy.SetDirection(event.Direction)
	mc.joy.SetAction(event.Action)
}

// StepFrame runs the emulation for one frame. One frame is the number of
// clock ticks the LCD takes to scan all 154 lines, whether or not the LCD
// is enabled.
func (mc *Machine) StepFrame() error {
	for mc.overflow < constant.FRAME_TICKS {
		tick, err := mc.cpu.Step()
		if err != nil {
			return curated.Errorf("gameboy: %v", err)
		}
		mc.ppu.Update(tick)
		mc.tmr.Update(tick)
		if mc.apu.Update(tick) {
			if err := mc.wind.EnqueueAudioBuffer(mc.apu.GetAudioBuffer()); err != nil {
				return curated.Errorf("gameboy: %v", err)
			}
		}
		mc.overflow += int(tick)
	}
	mc.overflow -= constant.FRAME_TICKS
	mc.frame++

	return nil
}

// RunFrames calls StepFrame() numFrames times, invoking onFrame after each
// completed frame. A numFrames value of zero or less means run forever.
//
// An onFrame error aborts the run. The HaltRun sentinel stops the run
// without RunFrames treating it as an error.
func (mc *Machine) RunFrames(numFrames int, onFrame func(frame int) error) error {
	for i := 0; numFrames <= 0 || i < numFrames; i++ {
		if err := mc.StepFrame(); err != nil {
			return err
		}
		if onFrame != nil {
			if err := onFrame(mc.frame); err != nil {
				if curated.Is(err, HaltRun) {
					return nil
				}
				return err
			}
		}
	}
	return nil
}

// Peek reads one byte through the emulated MMU. The address space of the
// Game Boy is fully mapped so every address returns something.
func (mc *Machine) Peek(addr uint16) uint8 {
	return mc.mmu.Get8(addr)
}

// PeekRange reads the inclusive address range from..to through the MMU.
func (mc *Machine) PeekRange(from, to uint16) ([]uint8, error) {
	if from > to {
		return nil, curated.Errorf("gameboy: invalid range %#04x to %#04x", from, to)
	}
	data := make([]uint8, int(to)-int(from)+1)
	for i := range data {
		data[i] = mc.mmu.Get8(from + uint16(i))
	}
	return data, nil
}

// nullWindow discards scanlines and audio. used when the machine runs
// without any frame consumer at all.
type nullWindow struct{}

func (nullWindow) DrawLine(ly int, scanline []uint8) error { return nil }
func (nullWindow) EnqueueAudioBuffer(buf []float32) error  { return nil }
