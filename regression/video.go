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
	"path/filepath"
	"strconv"

	"github.com/hexela/gbprobe/curated"
	"github.com/hexela/gbprobe/database"
	"github.com/hexela/gbprobe/digest"
	"github.com/hexela/gbprobe/gameboy"
	"github.com/hexela/gbprobe/romfile"
	"github.com/hexela/gbprobe/screen"
)

const videoEntryType = "video"

const (
	videoFieldROM int = iota
	videoFieldFrames
	videoFieldNotes
	videoFieldDigest
	numVideoFields
)

// VideoRegression records the chained screen digest of a ROM after a fixed
// number of frames.
type VideoRegression struct {
	ROM    string
	Frames int
	Notes  string

	digest string
}

func deserialiseVideoEntry(fields []string) (database.Entry, error) {
	if len(fields) != numVideoFields {
		return nil, curated.Errorf("regression: wrong number of fields in entry")
	}

	reg := &VideoRegression{
		ROM:    fields[videoFieldROM],
		Notes:  fields[videoFieldNotes],
		digest: fields[videoFieldDigest],
	}

	var err error
	reg.Frames, err = strconv.Atoi(fields[videoFieldFrames])
	if err != nil {
		return nil, curated.Errorf("regression: invalid frame count (%s)", fields[videoFieldFrames])
	}

	return reg, nil
}

// ID implements the database.Entry interface.
func (reg *VideoRegression) ID() string {
	return videoEntryType
}

// String implements the database.Entry interface.
func (reg *VideoRegression) String() string {
	s := fmt.Sprintf("[%s] %s frames=%d", reg.ID(), filepath.Base(reg.ROM), reg.Frames)
	if reg.Notes != "" {
		s = fmt.Sprintf("%s [%s]", s, reg.Notes)
	}
	return s
}

// Serialise implements the database.Entry interface.
func (reg *VideoRegression) Serialise() (database.SerialisedEntry, error) {
	return database.SerialisedEntry{
		reg.ROM,
		strconv.Itoa(reg.Frames),
		reg.Notes,
		reg.digest,
	}, nil
}

// CleanUp implements the database.Entry interface.
func (reg *VideoRegression) CleanUp() error {
	return nil
}

// regress runs the ROM and returns the screen digest at the end of the
// frame count.
func (reg *VideoRegression) regress() (string, error) {
	ld, err := romfile.NewLoader(reg.ROM)
	if err != nil {
		return "", curated.Errorf("regression: %v", err)
	}

	cpt := screen.NewCapture()
	mc, err := gameboy.NewMachine(cpt, ld)
	if err != nil {
		return "", curated.Errorf("regression: %v", err)
	}

	dig := digest.NewVideo()
	err = mc.RunFrames(reg.Frames, func(_ int) error {
		return dig.ProcessFrame(cpt.Shades())
	})
	if err != nil {
		return "", curated.Errorf("regression: %v", err)
	}

	return dig.Hash(), nil
}
