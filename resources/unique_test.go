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

package resources_test

import (
	"strings"
	"testing"

	"github.com/hexela/gbprobe/resources"
	"github.com/hexela/gbprobe/test"
)

func TestUniqueFilename(t *testing.T) {
	fn := resources.UniqueFilename("snapshot", "tetris")
	test.ExpectedSuccess(t, strings.HasPrefix(fn, "snapshot_tetris_"))

	// prepend_name_YYYYMMDD_HHMMSS
	test.Equate(t, len(strings.Split(fn, "_")), 4)

	// empty ROM name drops the middle part
	fn = resources.UniqueFilename("snapshot", "")
	test.ExpectedSuccess(t, strings.HasPrefix(fn, "snapshot_"))
	test.Equate(t, len(strings.Split(fn, "_")), 3)

	// white space only is the same as empty
	fn = resources.UniqueFilename("snapshot", "  ")
	test.Equate(t, len(strings.Split(fn, "_")), 3)
}
