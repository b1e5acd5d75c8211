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

package romfile_test

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/hexela/gbprobe/romfile"
	"github.com/hexela/gbprobe/test"
)

// testROM builds a minimal ROM image with a valid cartridge header.
func testROM(title string) []byte {
	rom := make([]byte, 32*1024)
	copy(rom[0x0134:], title)
	rom[0x0147] = 0x00 // ROM ONLY
	rom[0x0148] = 0x00 // 32KB
	rom[0x0149] = 0x00 // no RAM

	var sum uint8
	for _, b := range rom[0x0134:0x014d] {
		sum = sum - b - 1
	}
	rom[0x014d] = sum

	return rom
}

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	err := os.WriteFile(fn, data, 0o600)
	test.ExpectedSuccess(t, err)
	return fn
}

func TestLoaderPlainFile(t *testing.T) {
	fn := writeTemp(t, "dungeon.gb", testROM("DUNGEON"))

	ld, err := romfile.NewLoader(fn)
	test.ExpectedSuccess(t, err)
	test.Equate(t, ld.HasLoaded(), false)

	err = ld.Load()
	test.ExpectedSuccess(t, err)
	test.Equate(t, ld.HasLoaded(), true)
	test.Equate(t, len(ld.Data), 32*1024)
	test.Equate(t, ld.Header.Title, "DUNGEON")
	test.Equate(t, ld.Header.Mapper, "ROM ONLY")
	test.Equate(t, ld.Header.ChecksumOK, true)
	test.Equate(t, ld.ShortName(), "dungeon")
	test.Equate(t, len(ld.Hash), 40)
}

func TestLoaderMissingFile(t *testing.T) {
	ld, err := romfile.NewLoader(filepath.Join(t.TempDir(), "no_such.gb"))
	test.ExpectedSuccess(t, err)
	test.ExpectedFailure(t, ld.Load())
}

func TestLoaderZip(t *testing.T) {
	rom := testROM("ZIPPED")

	b := &bytes.Buffer{}
	zw := zip.NewWriter(b)

	// a non-ROM entry first. the loader must skip it.
	w, err := zw.Create("readme.txt")
	test.ExpectedSuccess(t, err)
	_, err = w.Write([]byte("not a rom"))
	test.ExpectedSuccess(t, err)

	w, err = zw.Create("game.gb")
	test.ExpectedSuccess(t, err)
	_, err = w.Write(rom)
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, zw.Close())

	fn := writeTemp(t, "game.zip", b.Bytes())

	ld, err := romfile.NewLoader(fn)
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, ld.Load())
	test.Equate(t, ld.Header.Title, "ZIPPED")
	test.Equate(t, len(ld.Data), len(rom))
}

func TestLoaderZipNoROM(t *testing.T) {
	b := &bytes.Buffer{}
	zw := zip.NewWriter(b)
	w, err := zw.Create("readme.txt")
	test.ExpectedSuccess(t, err)
	_, err = w.Write([]byte("nothing here"))
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, zw.Close())

	fn := writeTemp(t, "empty.zip", b.Bytes())

	ld, err := romfile.NewLoader(fn)
	test.ExpectedSuccess(t, err)
	test.ExpectedFailure(t, ld.Load())
}

func TestLoaderGzip(t *testing.T) {
	rom := testROM("GZROM")

	b := &bytes.Buffer{}
	gz := gzip.NewWriter(b)
	_, err := gz.Write(rom)
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, gz.Close())

	fn := writeTemp(t, "game.gb.gz", b.Bytes())

	ld, err := romfile.NewLoader(fn)
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, ld.Load())
	test.Equate(t, ld.Header.Title, "GZROM")
	test.Equate(t, len(ld.Data), len(rom))
}

func TestLoaderBadChecksum(t *testing.T) {
	rom := testROM("BADSUM")
	rom[0x014d] ^= 0xff

	fn := writeTemp(t, "badsum.gb", rom)

	ld, err := romfile.NewLoader(fn)
	test.ExpectedSuccess(t, err)

	// a bad header checksum is not a load error
	test.ExpectedSuccess(t, ld.Load())
	test.Equate(t, ld.Header.ChecksumOK, false)
}
