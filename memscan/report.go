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

package memscan

import (
	"fmt"
	"io"

	"github.com/hexela/gbprobe/curated"

	"github.com/aybabtme/uniplot/histogram"
)

// histogram shape for the activity plot
const (
	histBins  = 10
	histWidth = 40
)

// WriteReport prints the top scoring candidates followed by an activity
// histogram of the whole range. The histogram buckets addresses by how
// often their value changed, which gives a quick feel for how lively the
// scanned range is overall.
func (sc *Scanner) WriteReport(w io.Writer, top int) error {
	if len(sc.samples) < 2 {
		return curated.Errorf("memscan: not enough samples for a report (%d)", len(sc.samples))
	}

	candidates := sc.Analyse()

	fmt.Fprintf(w, "scanned %#04x to %#04x over %d samples\n", sc.from, sc.to, len(sc.samples))
	fmt.Fprintf(w, "%d of %d addresses showed activity\n\n", len(candidates), int(sc.to)-int(sc.from)+1)

	if len(candidates) == 0 {
		fmt.Fprintln(w, "no candidates")
		return nil
	}

	if top > len(candidates) {
		top = len(candidates)
	}

	fmt.Fprintln(w, "addr    score  changes  traits")
	for _, cnd := range candidates[:top] {
		fmt.Fprintf(w, "%#04x  %5.1f  %7d  %s\n", cnd.Addr, cnd.Score, cnd.Changes, cnd.String())
	}

	// activity histogram over every active address
	activity := make([]float64, 0, len(candidates))
	for _, cnd := range candidates {
		activity = append(activity, float64(cnd.Changes))
	}

	fmt.Fprintln(w, "\nactivity distribution (changes per address)")
	hist := histogram.Hist(histBins, activity)
	if err := histogram.Fprint(w, hist, histogram.Linear(histWidth)); err != nil {
		return curated.Errorf("memscan: %v", err)
	}

	return nil
}
