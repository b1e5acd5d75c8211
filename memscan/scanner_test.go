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

package memscan_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hexela/gbprobe/memscan"
	"github.com/hexela/gbprobe/test"
)

// scriptedMemory plays back a fixed sequence of snapshots. each call to
// PeekRange returns the next row.
type scriptedMemory struct {
	rows [][]uint8
	step int
}

func (mem *scriptedMemory) PeekRange(from, to uint16) ([]uint8, error) {
	row := mem.rows[mem.step]
	if mem.step < len(mem.rows)-1 {
		mem.step++
	}
	data := make([]uint8, int(to)-int(from)+1)
	copy(data, row)
	return data, nil
}

func TestScannerBadRange(t *testing.T) {
	_, err := memscan.NewScanner(0xc100, 0xc000)
	test.ExpectedFailure(t, err)

	sc, err := memscan.NewScanner(0xc000, 0xc000)
	test.ExpectedSuccess(t, err)
	test.Equate(t, sc.From(), 0xc000)
	test.Equate(t, sc.To(), 0xc000)
}

func TestScannerHeuristics(t *testing.T) {
	// five addresses with distinct behaviours:
	//   0 static
	//   1 monotonic BCD counter in small steps, not changing every sample
	//   2 random looking, large steps every sample
	//   3 small oscillation
	//   4 counter that wraps
	mem := &scriptedMemory{
		rows: [][]uint8{
			{0x42, 0x00, 0x13, 0x05, 0xfe},
			{0x42, 0x01, 0xc7, 0x06, 0xff},
			{0x42, 0x01, 0x22, 0x05, 0x00},
			{0x42, 0x02, 0x9a, 0x06, 0x01},
			{0x42, 0x03, 0x51, 0x05, 0x02},
		},
	}

	sc, err := memscan.NewScanner(0xc000, 0xc004)
	test.ExpectedSuccess(t, err)

	for i := 0; i < 5; i++ {
		test.ExpectedSuccess(t, sc.Sample(mem))
	}
	test.Equate(t, sc.NumSamples(), 5)

	candidates := sc.Analyse()

	// the static address does not appear at all
	for _, cnd := range candidates {
		if cnd.Addr == 0xc000 {
			t.Errorf("static address reported as candidate")
		}
	}
	test.Equate(t, len(candidates), 4)

	// the BCD counter is the best candidate
	test.Equate(t, candidates[0].Addr, 0xc001)
	traits := candidates[0].String()
	for _, want := range []string{"active", "small-step", "counter", "bcd", "steady"} {
		if !strings.Contains(traits, want) {
			t.Errorf("missing trait %s (have %s)", want, traits)
		}
	}

	// the noisy address scores worst
	test.Equate(t, candidates[len(candidates)-1].Addr, 0xc002)
}

func TestScannerWrappingCounter(t *testing.T) {
	mem := &scriptedMemory{
		rows: [][]uint8{{0xfe}, {0xff}, {0x00}, {0x01}},
	}

	sc, err := memscan.NewScanner(0xff05, 0xff05)
	test.ExpectedSuccess(t, err)
	for i := 0; i < 4; i++ {
		test.ExpectedSuccess(t, sc.Sample(mem))
	}

	candidates := sc.Analyse()
	test.Equate(t, len(candidates), 1)
	if !strings.Contains(candidates[0].String(), "counter") {
		t.Errorf("wrapping counter not recognised (%s)", candidates[0].String())
	}
}

func TestScannerReport(t *testing.T) {
	mem := &scriptedMemory{
		rows: [][]uint8{
			{0x00, 0x10},
			{0x01, 0x10},
			{0x02, 0x11},
		},
	}

	sc, err := memscan.NewScanner(0xc000, 0xc001)
	test.ExpectedSuccess(t, err)

	// too few samples for a report
	test.ExpectedSuccess(t, sc.Sample(mem))
	b := &bytes.Buffer{}
	test.ExpectedFailure(t, sc.WriteReport(b, 10))

	test.ExpectedSuccess(t, sc.Sample(mem))
	test.ExpectedSuccess(t, sc.Sample(mem))

	b.Reset()
	test.ExpectedSuccess(t, sc.WriteReport(b, 10))

	report := b.String()
	if !strings.Contains(report, "0xc000") {
		t.Errorf("report missing candidate address:\n%s", report)
	}
	if !strings.Contains(report, "activity distribution") {
		t.Errorf("report missing histogram:\n%s", report)
	}
}
