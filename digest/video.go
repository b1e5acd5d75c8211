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

package digest

import (
	"crypto/sha1"
	"fmt"

	"github.com/hexela/gbprobe/curated"
	"github.com/hexela/gbprobe/gameboy"
)

// Video fingerprints the sequence of frames handed to ProcessFrame(). The
// fingerprint is chained. The previous digest value is prepended to each
// frame's pixel data before hashing so the order of frames matters, not
// just their content.
type Video struct {
	digest [sha1.Size]byte
	pixels []byte
	frames int
}

// NewVideo is the preferred method of initialisation for the Video type.
func NewVideo() *Video {
	dig := &Video{}
	dig.pixels = make([]byte, sha1.Size+gameboy.LCDWidth*gameboy.LCDHeight)
	return dig
}

// Hash implements the Digest interface.
func (dig *Video) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *Video) ResetDigest() {
	for i := range dig.digest {
		dig.digest[i] = 0
	}
	dig.frames = 0
}

// Frames returns the number of frames hashed since the last reset.
func (dig *Video) Frames() int {
	return dig.frames
}

// ProcessFrame folds one frame of DMG shade values into the digest. The
// frame must be a full frame buffer as returned by screen.Capture.Shades().
func (dig *Video) ProcessFrame(shades []uint8) error {
	if len(shades) != gameboy.LCDWidth*gameboy.LCDHeight {
		return curated.Errorf("digest: wrong frame buffer length (%d)", len(shades))
	}

	copy(dig.pixels, dig.digest[:])
	copy(dig.pixels[sha1.Size:], shades)
	dig.digest = sha1.Sum(dig.pixels)
	dig.frames++

	return nil
}
