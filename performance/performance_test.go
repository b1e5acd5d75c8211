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

package performance_test

import (
	"testing"

	"github.com/hexela/gbprobe/performance"
	"github.com/hexela/gbprobe/test"
)

func TestCalcFPS(t *testing.T) {
	// one second of perfect DMG output
	fps, accuracy := performance.CalcFPS(60, 1.0)
	test.Equate(t, fps, 60.0)
	if accuracy < 100.0 || accuracy > 100.5 {
		t.Errorf("unexpected accuracy (%f)", accuracy)
	}

	fps, _ = performance.CalcFPS(120, 2.0)
	test.Equate(t, fps, 60.0)

	// half speed
	_, accuracy = performance.CalcFPS(30, 1.0)
	if accuracy < 50.0 || accuracy > 50.3 {
		t.Errorf("unexpected accuracy (%f)", accuracy)
	}
}

func TestParseProfile(t *testing.T) {
	p, err := performance.ParseProfile("none")
	test.ExpectedSuccess(t, err)
	test.Equate(t, int(p), int(performance.ProfileNone))

	p, err = performance.ParseProfile("cpu")
	test.ExpectedSuccess(t, err)
	test.Equate(t, int(p), int(performance.ProfileCPU))

	p, err = performance.ParseProfile("cpu,mem")
	test.ExpectedSuccess(t, err)
	test.Equate(t, int(p), int(performance.ProfileCPU|performance.ProfileMem))

	p, err = performance.ParseProfile("all")
	test.ExpectedSuccess(t, err)
	test.Equate(t, int(p), int(performance.ProfileAll))

	_, err = performance.ParseProfile("gpu")
	test.ExpectedFailure(t, err)
}
