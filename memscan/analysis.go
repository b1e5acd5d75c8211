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
	"sort"
	"strings"
)

// heuristic score weights. tuned by eye against a handful of commercial
// ROMs, not by anything rigorous.
const (
	weightActive    = 1.0
	weightSmallStep = 2.0
	weightCounter   = 3.0
	weightBCD       = 2.0
	weightSteady    = 1.5
)

// a delta larger than this disqualifies an address from the small-step
// heuristic. health bars and menu cursors move in small increments.
const smallStepLimit = 8

// Candidate is one address of the scanned range with its heuristic score.
type Candidate struct {
	Addr uint16

	// Score is the weighted sum of the matched heuristics. Higher is more
	// plausible.
	Score float64

	// Changes is the number of samples in which the value differed from
	// the previous sample.
	Changes int

	// names of the matched heuristics
	Traits []string
}

// String implements the Stringer interface.
func (cnd Candidate) String() string {
	s := strings.Builder{}
	for i, trait := range cnd.Traits {
		if i > 0 {
			s.WriteString(",")
		}
		s.WriteString(trait)
	}
	return s.String()
}

// Analyse scores every address in the scanned range. Addresses whose value
// never changed score zero and are omitted. The returned slice is sorted
// by descending score, ties broken by ascending address.
func (sc *Scanner) Analyse() []Candidate {
	if len(sc.samples) < 2 {
		return nil
	}

	candidates := make([]Candidate, 0, 32)

	for idx := 0; idx <= int(sc.to)-int(sc.from); idx++ {
		series := sc.series(idx)
		cnd := scoreSeries(series)
		if cnd.Score <= 0 {
			continue
		}
		cnd.Addr = sc.from + uint16(idx)
		candidates = append(candidates, cnd)
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Addr < candidates[j].Addr
	})

	return candidates
}

// scoreSeries applies the heuristics to the value history of a single
// address.
func scoreSeries(series []uint8) Candidate {
	var cnd Candidate

	changes := 0
	smallSteps := true
	monotonic := true
	increased := false
	bcd := true

	for i := range series {
		if series[i]&0xf0 > 0x90 || series[i]&0x0f > 0x09 {
			bcd = false
		}

		if i == 0 {
			continue
		}

		delta := int(series[i]) - int(series[i-1])
		if delta != 0 {
			changes++
			if delta > 0 {
				increased = true
			}
		}

		// treat wrap-around as a small step. a frame counter passing 0xff
		// is still a counter
		mag := delta
		if mag < 0 {
			mag = -mag
		}
		if mag > smallStepLimit && mag < 256-smallStepLimit {
			smallSteps = false
		}

		if delta < 0 && delta > -(256-smallStepLimit) {
			monotonic = false
		}
	}

	cnd.Changes = changes

	// a static value is not game state we can detect
	if changes == 0 {
		return cnd
	}

	cnd.Score += weightActive
	cnd.Traits = append(cnd.Traits, "active")

	if smallSteps {
		cnd.Score += weightSmallStep
		cnd.Traits = append(cnd.Traits, "small-step")
	}

	if monotonic && increased {
		cnd.Score += weightCounter
		cnd.Traits = append(cnd.Traits, "counter")
	}

	if bcd {
		cnd.Score += weightBCD
		cnd.Traits = append(cnd.Traits, "bcd")
	}

	// changing on some samples but not all of them. values that flip on
	// every single sample are more likely timers or noise
	if changes < len(series)-1 {
		cnd.Score += weightSteady
		cnd.Traits = append(cnd.Traits, "steady")
	}

	return cnd
}
