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

// Package digest produces a cryptographic hash of the emulation's video and
// audio output. The hash is chained over successive frames so a single value
// fingerprints an entire run. If a new hash differs from a previously
// recorded value then something in the emulation output has changed. The
// regression mode is built on this.
//
// SHA-1 is fine for this application because this is not a cryptographic
// task.
package digest

// Digest implementations return a hash of everything processed so far in
// response to a Hash() request.
type Digest interface {
	Hash() string
	ResetDigest()
}
