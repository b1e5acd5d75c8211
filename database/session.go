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

package database

import (
	"os"
	"strconv"
	"strings"

	"github.com/hexela/gbprobe/curated"
)

// Activity is the type of access the session needs.
type Activity int

// List of valid Activity values.
const (
	// ActivityReading promises the database will not be modified
	ActivityReading Activity = iota

	// ActivityModifying allows entries to be added and deleted
	ActivityModifying

	// ActivityCreating is ActivityModifying that also creates the
	// database file if it does not exist
	ActivityCreating
)

// Session is an open database.
type Session struct {
	path     string
	activity Activity

	entryTypes map[string]deserialiser
	entries    map[int]Entry
}

// StartSession opens the database at path. The init function is called
// before any entries are read, registration of entry types happens there.
func StartSession(path string, activity Activity, init func(*Session) error) (*Session, error) {
	db := &Session{
		path:       path,
		activity:   activity,
		entryTypes: make(map[string]deserialiser),
		entries:    make(map[int]Entry),
	}

	if err := init(db); err != nil {
		return nil, curated.Errorf("database: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, curated.Errorf("database: %v", err)
		}
		if activity != ActivityCreating {
			return nil, curated.Errorf("database: cannot open database (%s)", path)
		}
		return db, nil
	}

	for i, line := range strings.Split(string(data), entrySep) {
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, fieldSep)
		if len(fields) < numLeaderFields {
			return nil, curated.Errorf("database: malformed entry on line %d", i+1)
		}

		key, err := strconv.Atoi(fields[leaderFieldKey])
		if err != nil {
			return nil, curated.Errorf("database: malformed key on line %d", i+1)
		}

		des, ok := db.entryTypes[fields[leaderFieldID]]
		if !ok {
			return nil, curated.Errorf("database: unrecognised entry type (%s)", fields[leaderFieldID])
		}

		ent, err := des(fields[numLeaderFields:])
		if err != nil {
			return nil, curated.Errorf("database: %v", err)
		}

		db.entries[key] = ent
	}

	return db, nil
}

// EndSession closes the database, writing changes to disk if commit is
// true.
func (db *Session) EndSession(commit bool) error {
	if !commit {
		return nil
	}
	if db.activity == ActivityReading {
		return curated.Errorf("database: cannot commit a read-only session")
	}

	s := strings.Builder{}
	for _, key := range db.SortedKeyList() {
		ent := db.entries[key]
		ser, err := ent.Serialise()
		if err != nil {
			return curated.Errorf("database: %v", err)
		}

		s.WriteString(recordHeader(key, ent.ID()))
		for _, f := range ser {
			if strings.Contains(f, fieldSep) {
				return curated.Errorf("database: field contains the separator (%s)", f)
			}
			s.WriteString(fieldSep)
			s.WriteString(f)
		}
		s.WriteString(entrySep)
	}

	if err := os.WriteFile(db.path, []byte(s.String()), 0o600); err != nil {
		return curated.Errorf("database: %v", err)
	}

	return nil
}
