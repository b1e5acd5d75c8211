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

package prefs

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/hexela/gbprobe/curated"
)

// DefaultPrefsFile is the default filename of the project's prefs file,
// relative to the resources base path.
const DefaultPrefsFile = "gbprobe.prefs"

// the first line of a prefs file. files without this header are rejected.
const fileHeader = "*gbprobe_prefs"

// the string that separates the key from the value on a prefs file line. the
// sequence is unusual enough that it should not collide with value content.
const keySep = " :: "

// Disk represents preference values as stored on disk. Individual preference
// values are registered with the Add() function.
type Disk struct {
	path    string
	entries map[string]pref
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	return &Disk{
		path:    path,
		entries: make(map[string]pref),
	}, nil
}

// Add a preference value to the Disk instance under the supplied key. Keys
// must be unique to the Disk instance and must not contain the key separator
// sequence.
func (dsk *Disk) Add(key string, p pref) error {
	if strings.Contains(key, keySep) {
		return curated.Errorf("prefs: %v", fmt.Sprintf("invalid key (%s)", key))
	}
	if _, ok := dsk.entries[key]; ok {
		return curated.Errorf("prefs: %v", fmt.Sprintf("duplicate key (%s)", key))
	}
	dsk.entries[key] = p
	return nil
}

// Load preference values from disk. Keys in the file that have not been
// registered with Add() are ignored; they may belong to another part of the
// program sharing the same file.
//
// A missing prefs file is not an error; registered values keep their current
// content.
func (dsk *Disk) Load() error {
	f, err := os.Open(dsk.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return curated.Errorf("prefs: %v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)

	if !scanner.Scan() || scanner.Text() != fileHeader {
		return curated.Errorf("prefs: %v", fmt.Sprintf("%s is not a prefs file", dsk.path))
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		k, v, ok := strings.Cut(line, keySep)
		if !ok {
			return curated.Errorf("prefs: %v", fmt.Sprintf("malformed line in %s", dsk.path))
		}

		if p, ok := dsk.entries[k]; ok {
			if err := p.Set(v); err != nil {
				return curated.Errorf("prefs: %v", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return curated.Errorf("prefs: %v", err)
	}

	return nil
}

// Save current preference values to disk. Keys in an existing file that have
// not been registered with Add() are preserved.
func (dsk *Disk) Save() error {
	// load unregistered keys so they can be written back
	keep := make(map[string]string)

	if f, err := os.Open(dsk.path); err == nil {
		scanner := bufio.NewScanner(f)
		if scanner.Scan() && scanner.Text() == fileHeader {
			for scanner.Scan() {
				k, v, ok := strings.Cut(scanner.Text(), keySep)
				if !ok {
					continue
				}
				if _, registered := dsk.entries[k]; !registered {
					keep[k] = v
				}
			}
		}
		f.Close()
	}

	f, err := os.Create(dsk.path)
	if err != nil {
		return curated.Errorf("prefs: %v", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, fileHeader); err != nil {
		return curated.Errorf("prefs: %v", err)
	}

	// stable output order makes the file diffable
	keys := make([]string, 0, len(dsk.entries)+len(keep))
	for k := range dsk.entries {
		keys = append(keys, k)
	}
	for k := range keep {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		var v string
		if p, ok := dsk.entries[k]; ok {
			v = p.String()
		} else {
			v = keep[k]
		}
		if _, err := fmt.Fprintf(f, "%s%s%s\n", k, keySep, v); err != nil {
			return curated.Errorf("prefs: %v", err)
		}
	}

	return nil
}
