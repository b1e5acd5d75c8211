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

package snapshot

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/hexela/gbprobe/curated"
	"github.com/hexela/gbprobe/digest"
	"github.com/hexela/gbprobe/resources"
	"github.com/hexela/gbprobe/screen"
)

// PNGSink writes each sampled frame as a PNG file.
type PNGSink struct {
	dir     string
	prepend string
	scale   int
}

// NewPNGSink is the preferred method of initialisation for the PNGSink
// type. Files are written to dir, which is created if necessary, and named
//
//	prepend_YYYYMMDD_HHMMSS_NNNNNN.png
//
// NNNNNN being the frame number. The timestamp keeps repeated runs over
// the same ROM from overwriting one another.
func NewPNGSink(dir string, prepend string, scale int) (*PNGSink, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, curated.Errorf("snapshot: %v", err)
	}
	return &PNGSink{
		dir:     dir,
		prepend: resources.UniqueFilename(prepend, ""),
		scale:   scale,
	}, nil
}

// Sample implements the Sink interface.
func (snk *PNGSink) Sample(frame int, cpt *screen.Capture) error {
	fn := filepath.Join(snk.dir, fmt.Sprintf("%s_%06d.png", snk.prepend, frame))

	f, err := os.Create(fn)
	if err != nil {
		return curated.Errorf("snapshot: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, cpt.ScaledImage(snk.scale)); err != nil {
		return curated.Errorf("snapshot: %v", err)
	}

	return nil
}

// DigestSink folds each sampled frame into a chained video digest and
// reports the running hash.
type DigestSink struct {
	dig *digest.Video
	out io.Writer
}

// NewDigestSink is the preferred method of initialisation for the
// DigestSink type. The out writer receives one line per sample. A nil
// writer keeps the digest silent, the final hash can still be read with
// Hash().
func NewDigestSink(out io.Writer) *DigestSink {
	return &DigestSink{
		dig: digest.NewVideo(),
		out: out,
	}
}

// Sample implements the Sink interface.
func (snk *DigestSink) Sample(frame int, cpt *screen.Capture) error {
	if err := snk.dig.ProcessFrame(cpt.Shades()); err != nil {
		return err
	}
	if snk.out != nil {
		fmt.Fprintf(snk.out, "%06d: %s\n", frame, snk.dig.Hash())
	}
	return nil
}

// Hash returns the running digest value.
func (snk *DigestSink) Hash() string {
	return snk.dig.Hash()
}
