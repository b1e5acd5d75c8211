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

package romfile

import (
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/hexela/gbprobe/curated"
	"github.com/hexela/gbprobe/logger"
)

// FileExtensions is the list of ROM file extensions recognised by the romfile
// package when searching inside archives.
var FileExtensions = []string{".gb", ".gbc", ".dmg", ".bin"}

// maximum size of a loaded ROM. the largest published Game Boy cartridge is
// 8MB; anything bigger than that is not a ROM
const maxROMSize = 8 * 1024 * 1024

// Loader is used to specify the ROM to attach to the emulated machine.
type Loader struct {
	// filename (or URL) of the ROM to load
	Filename string

	// expected hash of the loaded ROM. empty string indicates that the hash
	// is unknown and need not be validated. after a load operation the value
	// will be the hash of the loaded data
	Hash string

	// copy of the loaded data. subsequent calls to Load() return immediately
	Data []byte

	// decoded cartridge header. valid after a successful Load()
	Header Header

	// name of the file actually loaded. differs from the base of Filename
	// when the ROM was extracted from an archive
	entryName string
}

// NewLoader is the preferred method of initialisation for the Loader type.
func NewLoader(filename string) (*Loader, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, curated.Errorf("romfile: no filename specified")
	}
	return &Loader{Filename: filename}, nil
}

// ShortName returns a shortened version of the loaded ROM's filename.
func (ld *Loader) ShortName() string {
	n := ld.entryName
	if n == "" {
		n = path.Base(ld.Filename)
	} else {
		n = path.Base(n)
	}
	return strings.TrimSuffix(n, path.Ext(n))
}

// HasLoaded returns true if Load() has been successfully called.
func (ld *Loader) HasLoaded() bool {
	return len(ld.Data) > 0
}

// Load the ROM data. Loader filenames with a valid scheme will use that
// method to load the data. Currently supported schemes are HTTP(S) and local
// files. Archive handling happens transparently in both cases.
func (ld *Loader) Load() error {
	if len(ld.Data) > 0 {
		return nil
	}

	scheme := "file"
	if u, err := url.Parse(ld.Filename); err == nil {
		scheme = u.Scheme
	}

	var raw []byte
	var err error

	switch scheme {
	case "http":
		fallthrough
	case "https":
		resp, err2 := http.Get(ld.Filename)
		if err2 != nil {
			return curated.Errorf("romfile: %v", err2)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return curated.Errorf("romfile: %v", fmt.Sprintf("http response %s", resp.Status))
		}

		raw, err = io.ReadAll(io.LimitReader(resp.Body, maxROMSize+1))
		if err != nil {
			return curated.Errorf("romfile: %v", err)
		}

	case "file":
		fallthrough
	case "":
		raw, err = os.ReadFile(ld.Filename)
		if err != nil {
			return curated.Errorf("romfile: %v", err)
		}

	default:
		return curated.Errorf("romfile: %v", fmt.Sprintf("unsupported URL scheme (%s)", scheme))
	}

	if len(raw) > maxROMSize {
		return curated.Errorf("romfile: %v", "file exceeds maximum ROM size")
	}

	// unpack archive data if necessary
	ld.Data, ld.entryName, err = unpack(raw, ld.Filename)
	if err != nil {
		return curated.Errorf("romfile: %v", err)
	}

	// generate hash and check for consistency with any expected hash
	hash := fmt.Sprintf("%x", sha1.Sum(ld.Data))
	if ld.Hash != "" && ld.Hash != hash {
		return curated.Errorf("romfile: %v", "unexpected hash value")
	}
	ld.Hash = hash

	// decode cartridge header. a bad checksum is worth knowing about but the
	// emulation library has the final say on whether the ROM is usable
	ld.Header, err = decodeHeader(ld.Data)
	if err != nil {
		return curated.Errorf("romfile: %v", err)
	}
	if !ld.Header.ChecksumOK {
		logger.Logf("romfile", "header checksum mismatch in %s", ld.ShortName())
	}

	return nil
}
