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

// Package wavwriter saves the APU sample stream to disk as a WAV file. Note
// that audio data is buffered in memory in its entirety and written to disk
// on End(). It is therefore probably only suitable for short capture runs.
package wavwriter

import (
	"os"

	"github.com/hexela/gbprobe/curated"
	"github.com/hexela/gbprobe/logger"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
)

// output format. the APU produces two channel interleaved float32 samples
// at this rate.
const (
	sampleFreq  = 44100
	numChannels = 2
	bitDepth    = 16
)

// WavWriter implements the screen.AudioSink interface.
type WavWriter struct {
	filename string
	buffer   []int
}

// New is the preferred method of initialisation for the WavWriter type.
func New(filename string) *WavWriter {
	return &WavWriter{
		filename: filename,
		buffer:   make([]int, 0, sampleFreq),
	}
}

// Write implements the screen.AudioSink interface. Samples outside the
// -1.0 to 1.0 range are clipped.
func (aw *WavWriter) Write(buf []float32) error {
	for _, sample := range buf {
		if sample > 1.0 {
			sample = 1.0
		} else if sample < -1.0 {
			sample = -1.0
		}
		aw.buffer = append(aw.buffer, int(sample*32767))
	}
	return nil
}

// End writes the buffered samples to disk. The WavWriter must not be used
// again after End() has returned.
func (aw *WavWriter) End() (rerr error) {
	f, err := os.Create(aw.filename)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = curated.Errorf("wavwriter: %v", err)
		}
	}()

	enc := gowav.NewEncoder(f, sampleFreq, bitDepth, numChannels, 1)
	defer func() {
		if err := enc.Close(); err != nil && rerr == nil {
			rerr = curated.Errorf("wavwriter: %v", err)
		}
	}()

	pcm := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: numChannels,
			SampleRate:  sampleFreq,
		},
		Data:           aw.buffer,
		SourceBitDepth: bitDepth,
	}

	if err := enc.Write(pcm); err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	logger.Logf("wavwriter", "%d samples written to %s", len(aw.buffer), aw.filename)

	return nil
}
