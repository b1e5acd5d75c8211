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

package digest_test

import (
	"testing"

	"github.com/hexela/gbprobe/digest"
	"github.com/hexela/gbprobe/gameboy"
	"github.com/hexela/gbprobe/test"
)

func TestVideoChaining(t *testing.T) {
	frameA := make([]uint8, gameboy.LCDWidth*gameboy.LCDHeight)
	frameB := make([]uint8, gameboy.LCDWidth*gameboy.LCDHeight)
	frameB[0] = 3

	dig := digest.NewVideo()
	zero := dig.Hash()

	test.ExpectedSuccess(t, dig.ProcessFrame(frameA))
	hashA := dig.Hash()
	if hashA == zero {
		t.Errorf("digest did not change after frame")
	}

	test.ExpectedSuccess(t, dig.ProcessFrame(frameB))
	hashAB := dig.Hash()
	test.Equate(t, dig.Frames(), 2)

	// same frames in a different order must give a different digest
	dig.ResetDigest()
	test.Equate(t, dig.Hash(), zero)
	test.ExpectedSuccess(t, dig.ProcessFrame(frameB))
	test.ExpectedSuccess(t, dig.ProcessFrame(frameA))
	if dig.Hash() == hashAB {
		t.Errorf("digest insensitive to frame order")
	}

	// same frames in the same order must reproduce the digest
	dig.ResetDigest()
	test.ExpectedSuccess(t, dig.ProcessFrame(frameA))
	test.ExpectedSuccess(t, dig.ProcessFrame(frameB))
	test.Equate(t, dig.Hash(), hashAB)
}

func TestVideoBadFrame(t *testing.T) {
	dig := digest.NewVideo()
	test.ExpectedFailure(t, dig.ProcessFrame([]uint8{0, 1, 2}))
}

func TestAudio(t *testing.T) {
	dig := digest.NewAudio()
	zero := dig.Hash()

	samples := make([]float32, 512)
	for i := range samples {
		samples[i] = float32(i) / 512
	}

	test.ExpectedSuccess(t, dig.Write(samples))
	dig.Flush()
	hash := dig.Hash()
	if hash == zero {
		t.Errorf("digest did not change after samples")
	}

	// reproducible
	dig.ResetDigest()
	test.ExpectedSuccess(t, dig.Write(samples))
	dig.Flush()
	test.Equate(t, dig.Hash(), hash)
}
