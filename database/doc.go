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

// Package database is a very simple way of storing structured and arbitrary
// entry types. It's as simple as simple can be but is still useful in
// helping to organise what is essentially a flat file. The regression
// package stores its entries through this package.
//
// Use of a database requires starting a session with StartSession(),
// coupled with an EndSession() once we're done. The session is initialised
// with a function that registers the entry types the database may contain.
// On reading, the registered deserialiser for an entry's ID is called to
// rebuild the entry from its stored fields.
package database
