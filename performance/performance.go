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

package performance

import (
	"fmt"
	"io"
	"time"

	"github.com/hexela/gbprobe/curated"
	"github.com/hexela/gbprobe/gameboy"
	"github.com/hexela/gbprobe/romfile"
	"github.com/hexela/gbprobe/screen"
)

// allow the emulation to warm up before measurement begins
const leadTime = 2 * time.Second

// Check the performance of the emulation using the supplied ROM.
//
// Emulation runs uncapped for the specified duration and will create cpu,
// memory and trace profiles (or a combination of those) as selected by the
// profile argument.
func Check(output io.Writer, profile Profile, ld *romfile.Loader, duration string) error {
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	cpt := screen.NewCapture()
	mc, err := gameboy.NewMachine(cpt, ld)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	startFrame := 0

	runner := func() error {
		// the timer channel signals false at the end of the leadtime and
		// true when the measurement period has expired
		timerChan := make(chan bool)

		time.AfterFunc(leadTime, func() {
			timerChan <- false
			time.AfterFunc(dur, func() {
				timerChan <- true
			})
		})

		return mc.RunFrames(0, func(frame int) error {
			select {
			case v := <-timerChan:
				if v {
					return curated.Errorf(gameboy.HaltRun)
				}
				// leadtime has concluded. measurement starts here
				startFrame = frame
			default:
			}
			return nil
		})
	}

	if err := RunProfiler(profile, "performance", runner); err != nil {
		return err
	}

	numFrames := mc.Frame() - startFrame
	fps, accuracy := CalcFPS(numFrames, dur.Seconds())
	fmt.Fprintf(output, "%.2f fps (%d frames in %.2f seconds) %.1f%%\n", fps, numFrames, dur.Seconds(), accuracy)

	return nil
}
