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

// Package sdlplay presents the emulation in an SDL window with keyboard
// input mapped to the joypad. It exists so a ROM can be played while the
// probing facilities of the other packages are in effect.
//
// SDL requires window creation and event polling to happen on the main
// thread. The Player type must therefore only be created and run from the
// program's main goroutine.
package sdlplay
