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

package curated_test

import (
	"errors"
	"testing"

	"github.com/hexela/gbprobe/curated"
	"github.com/hexela/gbprobe/test"
)

func TestIs(t *testing.T) {
	const pattern = "snapshot: %v"

	err := curated.Errorf(pattern, "file error")
	test.ExpectedSuccess(t, curated.IsAny(err))
	test.ExpectedSuccess(t, curated.Is(err, pattern))
	test.ExpectedFailure(t, curated.Is(err, "some other pattern: %v"))

	// plain errors are never curated
	plain := errors.New("plain")
	test.ExpectedFailure(t, curated.IsAny(plain))
	test.ExpectedFailure(t, curated.Is(plain, pattern))

	// nil is not an error at all
	test.ExpectedFailure(t, curated.Is(nil, pattern))
}

func TestHas(t *testing.T) {
	const inner = "memscan: %v"
	const outer = "scan mode: %v"

	err := curated.Errorf(outer, curated.Errorf(inner, "address out of range"))

	test.ExpectedSuccess(t, curated.Has(err, outer))
	test.ExpectedSuccess(t, curated.Has(err, inner))
	test.ExpectedFailure(t, curated.Has(err, "vision: %v"))

	// Is() only matches the outermost pattern
	test.ExpectedFailure(t, curated.Is(err, inner))
}

func TestNormalisation(t *testing.T) {
	// duplicate adjacent message parts are removed
	err := curated.Errorf("vision: %v", curated.Errorf("vision: %v", "timeout"))
	test.Equate(t, err.Error(), "vision: timeout")

	// non-duplicate parts are preserved
	err = curated.Errorf("serve: %v", curated.Errorf("websocket: %v", "closed"))
	test.Equate(t, err.Error(), "serve: websocket: closed")
}
