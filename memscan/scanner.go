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
	"github.com/hexela/gbprobe/curated"
)

// Peeker is the memory read interface the scanner requires. The gameboy
// Machine satisfies it.
type Peeker interface {
	PeekRange(from, to uint16) ([]uint8, error)
}

// Scanner accumulates snapshots of an inclusive address range. The range
// is fixed at initialisation. Addresses are 16 bit so the range can never
// leave the emulated bus.
type Scanner struct {
	from, to uint16

	// one snapshot of the full range per Sample() call
	samples [][]uint8
}

// NewScanner is the preferred method of initialisation for the Scanner
// type.
func NewScanner(from, to uint16) (*Scanner, error) {
	if from > to {
		return nil, curated.Errorf("memscan: invalid range %#04x to %#04x", from, to)
	}
	return &Scanner{
		from: from,
		to:   to,
	}, nil
}

// From returns the first address of the scanned range.
func (sc *Scanner) From() uint16 {
	return sc.from
}

// To returns the last address of the scanned range.
func (sc *Scanner) To() uint16 {
	return sc.to
}

// NumSamples returns the number of snapshots taken so far.
func (sc *Scanner) NumSamples() int {
	return len(sc.samples)
}

// Sample takes one snapshot of the address range.
func (sc *Scanner) Sample(mem Peeker) error {
	data, err := mem.PeekRange(sc.from, sc.to)
	if err != nil {
		return curated.Errorf("memscan: %v", err)
	}
	sc.samples = append(sc.samples, data)
	return nil
}

// series extracts the time series of values observed at one address. The
// idx argument is the offset from the start of the range.
func (sc *Scanner) series(idx int) []uint8 {
	s := make([]uint8, len(sc.samples))
	for i, smp := range sc.samples {
		s[i] = smp[idx]
	}
	return s
}
