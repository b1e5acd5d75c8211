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
	"fmt"
	"strings"

	"github.com/ushitora-anqou/aqboy/constant"
	"github.com/ushitora-anqou/aqboy/window"
)

// Registers is a copy of the CPU register file at the moment of the
// Registers() call.
type Registers struct {
	AF uint16
	BC uint16
	DE uint16
	HL uint16
	SP uint16
	PC uint16

	// flags unpacked from the F register
	Z bool
	N bool
	H bool
	C bool
}

// Registers copies the current CPU state.
func (mc *Machine) Registers() Registers {
	return Registers{
		AF: mc.cpu.AF(),
		BC: mc.cpu.BC(),
		DE: mc.cpu.DE(),
		HL: mc.cpu.HL(),
		SP: mc.cpu.SP(),
		PC: mc.cpu.PC(),
		Z:  mc.cpu.FlagZ(),
		N:  mc.cpu.FlagN(),
		H:  mc.cpu.FlagH(),
		C:  mc.cpu.FlagC(),
	}
}

// String implements the Stringer interface.
func (r Registers) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("af=%04x bc=%04x de=%04x hl=%04x sp=%04x pc=%04x",
		r.AF, r.BC, r.DE, r.HL, r.SP, r.PC))
	s.WriteString(" [")
	for _, f := range []struct {
		set bool
		c   string
	}{{r.Z, "Z"}, {r.N, "N"}, {r.H, "H"}, {r.C, "C"}} {
		if f.set {
			s.WriteString(f.c)
		} else {
			s.WriteString("-")
		}
	}
	s.WriteString("]")
	return s.String()
}

// Button identifies one of the eight Game Boy buttons.
type Button int

// List of valid Button values.
const (
	ButtonRight Button = iota
	ButtonLeft
	ButtonUp
	ButtonDown
	ButtonA
	ButtonB
	ButtonSelect
	ButtonStart
)

// Event converts a set of held buttons into the bitmask form the joypad
// hardware expects.
func Event(held ...Button) window.WindowEvent {
	var ev window.WindowEvent
	for _, b := range held {
		switch b {
		case ButtonRight:
			ev.Direction |= 1 << constant.DIR_RIGHT
		case ButtonLeft:
			ev.Direction |= 1 << constant.DIR_LEFT
		case ButtonUp:
			ev.Direction |= 1 << constant.DIR_UP
		case ButtonDown:
			ev.Direction |= 1 << constant.DIR_DOWN
		case ButtonA:
			ev.Action |= 1 << constant.ACT_A
		case ButtonB:
			ev.Action |= 1 << constant.ACT_B
		case ButtonSelect:
			ev.Action |= 1 << constant.ACT_SELECT
		case ButtonStart:
			ev.Action |= 1 << constant.ACT_START
		}
	}
	return ev
}

// String implements the Stringer interface.
func (b Button) String() string {
	switch b {
	case ButtonRight:
		return "right"
	case ButtonLeft:
		return "left"
	case ButtonUp:
		return "up"
	case ButtonDown:
		return "down"
	case ButtonA:
		return "a"
	case ButtonB:
		return "b"
	case ButtonSelect:
		return "select"
	case ButtonStart:
		return "start"
	}
	return "unknown"
}

// ParseButton converts a button name, as given on the command line, to a
// Button value.
func ParseButton(s string) (Button, error) {
	switch strings.ToLower(s) {
	case "right":
		return ButtonRight, nil
	case "left":
		return ButtonLeft, nil
	case "up":
		return ButtonUp, nil
	case "down":
		return ButtonDown, nil
	case "a":
		return ButtonA, nil
	case "b":
		return ButtonB, nil
	case "select":
		return ButtonSelect, nil
	case "start":
		return ButtonStart, nil
	}
	return 0, fmt.Errorf("unrecognised button (%s)", s)
}

// ParseEvent converts a comma separated list of button names into a
// joypad event holding all of them. An empty string is the event with no
// buttons held.
func ParseEvent(s string) (window.WindowEvent, error) {
	var held []Button

	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		b, err := ParseButton(name)
		if err != nil {
			return window.WindowEvent{}, err
		}
		held = append(held, b)
	}

	return Event(held...), nil
}
