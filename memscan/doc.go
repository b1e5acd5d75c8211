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

// Package memscan looks for plausible game-state values in a range of the
// emulated address bus. The scanner takes repeated snapshots of the range
// while the game runs and scores every address on how its value behaves
// over time.
//
// The heuristics are shallow and that is the point. Scores, health bars,
// timers and the like tend to stand out from noise with very simple tests:
// they change but not on every frame, they move in small steps, counters
// only ever go up, and scores on 8-bit machines are very often stored as
// binary coded decimal. An address that ticks several of those boxes is
// worth a look in a debugger.
//
// Reads go through the machine's Peek interface only. Scanning never
// mutates emulation state.
package memscan
