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

// Package gameboy wraps the aqboy emulation components into a single
// Machine type. GBprobe never touches individual emulation components
// directly, everything goes through Machine.
//
// The Machine is driven in whole-frame units. StepFrame() runs the
// emulation for exactly one video frame's worth of clock ticks. RunFrames()
// repeats StepFrame() with a callback between frames, which is how the
// sampling loops in the snapshot and vision packages hook in.
//
// Memory is observed with Peek() and PeekRange(). These read through the
// emulated MMU and so see exactly what the running program sees, including
// memory mapped IO.
package gameboy
