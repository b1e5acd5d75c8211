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
	"encoding/binary"
	"fmt"
	"math"
)

// length of the working buffer. the value isn't critical but it must be
// greater than sha1.Size.
const audioBufferLength = 4096 + sha1.Size

// Audio fingerprints the APU sample stream. It implements the
// screen.AudioSink interface so it can be attached directly to a Capture.
//
// As with Video the digest is chained. The previous digest value sits at
// the head of the working buffer when each block is hashed.
type Audio struct {
	digest   [sha1.Size]byte
	buffer   []uint8
	bufferCt int
}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio() *Audio {
	dig := &Audio{}
	dig.buffer = make([]uint8, audioBufferLength)
	dig.bufferCt = sha1.Size
	return dig
}

// Hash implements the Digest interface.
func (dig *Audio) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *Audio) ResetDigest() {
	for i := range dig.digest {
		dig.digest[i] = 0
	}
	dig.bufferCt = sha1.Size
}

// Write implements the screen.AudioSink interface.
func (dig *Audio) Write(buf []float32) error {
	for _, sample := range buf {
		var b [4]uint8
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(sample))
		for _, v := range b {
			dig.buffer[dig.bufferCt] = v
			dig.bufferCt++
			if dig.bufferCt >= audioBufferLength {
				dig.flush()
			}
		}
	}
	return nil
}

// Flush hashes any samples still waiting in the working buffer. Call at
// the end of a run so short streams are reflected in the digest.
func (dig *Audio) Flush() {
	if dig.bufferCt > sha1.Size {
		dig.flush()
	}
}

func (dig *Audio) flush() {
	dig.digest = sha1.Sum(dig.buffer[:dig.bufferCt])
	copy(dig.buffer, dig.digest[:])
	dig.bufferCt = sha1.Size
}
