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

// Package curated provides a way of creating and handling error messages that
// is a little more flexible than the plain error type.
//
// Errors are created with Errorf() in the same way as fmt.Errorf() except
// that the format string is remembered as a pattern. The pattern can later be
// used to test whether an error value belongs to a given category:
//
//	err := curated.Errorf("snapshot: %v", underlying)
//	...
//	if curated.Is(err, "snapshot: %v") { ... }
//
// Has() performs the same test but deeply, looking anywhere in the error
// chain. The Error() function normalises the message, removing duplicate
// adjacent parts that occur when errors are wrapped at several levels with
// the same pattern.
package curated
