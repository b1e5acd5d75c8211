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

package regression

import (
	"fmt"
	"io"
	"strconv"

	"github.com/hexela/gbprobe/curated"
	"github.com/hexela/gbprobe/database"
	"github.com/hexela/gbprobe/resources"
)

// name of the regression database file, stored in the resources directory.
const regressionDBFile = "regressionDB"

func initDBSession(db *database.Session) error {
	return db.RegisterEntryType(videoEntryType, deserialiseVideoEntry)
}

func startSession(activity database.Activity) (*database.Session, error) {
	pth, err := resources.JoinPath(regressionDBFile)
	if err != nil {
		return nil, curated.Errorf("regression: %v", err)
	}
	return database.StartSession(pth, activity, initDBSession)
}

// RegressAdd runs the ROM for numFrames frames and records the resulting
// screen digest in the regression database.
func RegressAdd(output io.Writer, rom string, numFrames int, notes string) error {
	if numFrames <= 0 {
		return curated.Errorf("regression: frame count must be positive (%d)", numFrames)
	}

	reg := &VideoRegression{
		ROM:    rom,
		Frames: numFrames,
		Notes:  notes,
	}

	var err error
	reg.digest, err = reg.regress()
	if err != nil {
		return err
	}

	db, err := startSession(database.ActivityCreating)
	if err != nil {
		return err
	}

	if err := db.Add(reg); err != nil {
		return err
	}

	if err := db.EndSession(true); err != nil {
		return err
	}

	fmt.Fprintf(output, "added: %s\n", reg.String())
	return nil
}

// RegressList prints the entries in the regression database.
func RegressList(output io.Writer) error {
	db, err := startSession(database.ActivityReading)
	if err != nil {
		return err
	}
	defer db.EndSession(false)

	return db.List(output)
}

// RegressDelete removes an entry from the regression database. The key
// argument is the entry number as printed by RegressList.
func RegressDelete(output io.Writer, key string) error {
	k, err := strconv.Atoi(key)
	if err != nil {
		return curated.Errorf("regression: invalid key (%s)", key)
	}

	db, err := startSession(database.ActivityModifying)
	if err != nil {
		return err
	}

	if err := db.Delete(k); err != nil {
		return err
	}

	if err := db.EndSession(true); err != nil {
		return err
	}

	fmt.Fprintf(output, "deleted: %03d\n", k)
	return nil
}

// RegressRun re-runs every entry in the regression database and compares
// the new digest against the recorded one. The number of failed entries is
// reported through the error return.
func RegressRun(output io.Writer) error {
	db, err := startSession(database.ActivityReading)
	if err != nil {
		return err
	}
	defer db.EndSession(false)

	numSucceed := 0
	numFail := 0

	_, err = db.SelectAll(func(ent database.Entry) error {
		reg, ok := ent.(*VideoRegression)
		if !ok {
			return curated.Errorf("regression: unexpected entry type (%s)", ent.ID())
		}

		hash, err := reg.regress()
		if err != nil {
			numFail++
			fmt.Fprintf(output, "error: %s (%v)\n", reg.String(), err)
			return nil
		}

		if hash != reg.digest {
			numFail++
			fmt.Fprintf(output, "fail: %s\n", reg.String())
			return nil
		}

		numSucceed++
		fmt.Fprintf(output, "ok: %s\n", reg.String())
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "regression tests: %d succeed, %d fail\n", numSucceed, numFail)

	if numFail > 0 {
		return curated.Errorf("regression: %d entries failed", numFail)
	}

	return nil
}
