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

// Package version records the version number of the project as a whole.
package version

import (
	"runtime/debug"
)

// The name to use when referring to the application.
const ApplicationName = "gbprobe"

// set through the linker with the -X flag. empty if the project was built
// without the makefile
var number string

// Version contains the version string for the project. If no version number
// was baked in at build time the vcs revision is used; failing that, the
// string "unreleased".
var Version string

func init() {
	Version = number
	if Version != "" {
		return
	}

	Version = "unreleased"

	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 7 {
				Version = s.Value[:7]
			}
		}
	}
}
