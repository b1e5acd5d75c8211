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

package gameboy_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hexela/gbprobe/curated"
	"github.com/hexela/gbprobe/gameboy"
	"github.com/hexela/gbprobe/romfile"
	"github.com/hexela/gbprobe/test"
)

// newTestMachine assembles a machine around a ROM-only cartridge filled
// with NOP instructions.
func newTestMachine(t *testing.T) *gameboy.Machine {
	t.Helper()

	rom := make([]byte, 32*1024)
	copy(rom[0x0134:], "TEST")
	rom[0x0147] = 0x00
	rom[0x0148] = 0x00
	rom[0x0149] = 0x00

	var sum uint8
	for _, b := range rom[0x0134:0x014d] {
		sum = sum - b - 1
	}
	rom[0x014d] = sum

	fn := filepath.Join(t.TempDir(), "test.gb")
	err := os.WriteFile(fn, rom, 0o600)
	test.ExpectedSuccess(t, err)

	ld, err := romfile.NewLoader(fn)
	test.ExpectedSuccess(t, err)

	mc, err := gameboy.NewMachine(nil, ld)
	test.ExpectedSuccess(t, err)
	return mc
}

func TestMachinePeek(t *testing.T) {
	mc := newTestMachine(t)

	// cartridge header is visible through the MMU
	test.Equate(t, mc.Peek(0x0134), int('T'))
	test.Equate(t, mc.Peek(0x0135), int('E'))
	test.Equate(t, mc.Peek(0x0147), 0)
}

func TestMachinePeekRange(t *testing.T) {
	mc := newTestMachine(t)

	data, err := mc.PeekRange(0x0134, 0x0137)
	test.ExpectedSuccess(t, err)
	test.Equate(t, len(data), 4)
	test.Equate(t, string(data), "TEST")

	// reversed range is an error
	_, err = mc.PeekRange(0x0137, 0x0134)
	test.ExpectedFailure(t, err)

	// single byte range is fine
	data, err = mc.PeekRange(0x0134, 0x0134)
	test.ExpectedSuccess(t, err)
	test.Equate(t, len(data), 1)
}

func TestMachineRegisters(t *testing.T) {
	mc := newTestMachine(t)

	// execution begins at the cartridge entry point
	regs := mc.Registers()
	test.Equate(t, regs.PC, 0x0100)
	test.Equate(t, regs.SP, 0xfffe)
}

func TestMachineRunFrames(t *testing.T) {
	mc := newTestMachine(t)
	test.Equate(t, mc.Frame(), 0)

	frames := 0
	err := mc.RunFrames(3, func(frame int) error {
		frames++
		test.Equate(t, frame, frames)
		return nil
	})
	test.ExpectedSuccess(t, err)
	test.Equate(t, frames, 3)
	test.Equate(t, mc.Frame(), 3)
}

func TestMachineRunFramesHalt(t *testing.T) {
	mc := newTestMachine(t)

	// the halt sentinel ends the run without an error even when more
	// frames were requested
	frames := 0
	err := mc.RunFrames(100, func(frame int) error {
		frames++
		if frames == 2 {
			return curated.Errorf(gameboy.HaltRun)
		}
		return nil
	})
	test.ExpectedSuccess(t, err)
	test.Equate(t, frames, 2)
}

func TestButtonEvent(t *testing.T) {
	ev := gameboy.Event(gameboy.ButtonRight, gameboy.ButtonStart)
	test.Equate(t, ev.Direction, 0x01)
	test.Equate(t, ev.Action, 0x08)

	ev = gameboy.Event()
	test.Equate(t, ev.Direction, 0)
	test.Equate(t, ev.Action, 0)
}

func TestParseButton(t *testing.T) {
	b, err := gameboy.ParseButton("START")
	test.ExpectedSuccess(t, err)
	if b != gameboy.ButtonStart {
		t.Errorf("unexpected button (%s)", b)
	}

	_, err = gameboy.ParseButton("turbo")
	test.ExpectedFailure(t, err)
}

func TestParseEvent(t *testing.T) {
	// the -hold flag form: comma separated button names
	ev, err := gameboy.ParseEvent("start,right")
	test.ExpectedSuccess(t, err)
	test.Equate(t, ev.Direction, 0x01)
	test.Equate(t, ev.Action, 0x08)

	// spaces around names are tolerated
	ev, err = gameboy.ParseEvent(" a , b ")
	test.ExpectedSuccess(t, err)
	test.Equate(t, ev.Direction, 0x00)
	test.Equate(t, ev.Action, 0x03)

	// no buttons held
	ev, err = gameboy.ParseEvent("")
	test.ExpectedSuccess(t, err)
	test.Equate(t, ev.Direction, 0x00)
	test.Equate(t, ev.Action, 0x00)

	_, err = gameboy.ParseEvent("start,turbo")
	test.ExpectedFailure(t, err)
}
