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

// Package screen accumulates scanlines from the emulated PPU into a frame
// buffer that can be read back as a Go image. Capture is the headless
// display for all modes that do not open a real window.
//
// The PPU pushes one scanline at a time. A frame is whole once every LCD
// line has been drawn at least once since the last read, but readers are
// not required to wait for that. Image() simply returns whatever the frame
// buffer holds right now, which is the correct behaviour for interval
// sampling.
package screen
