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
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/nwaples/rardecode/v2"
)

// magic bytes for archive format detection.
var (
	magicZIP    = []byte{0x50, 0x4b, 0x03, 0x04}
	magicZIPEnd = []byte{0x50, 0x4b, 0x05, 0x06} // empty zip
	magic7z     = []byte{0x37, 0x7a, 0xbc, 0xaf, 0x27, 0x1c}
	magicGzip   = []byte{0x1f, 0x8b}
	magicRAR    = []byte{0x52, 0x61, 0x72, 0x21} // "Rar!"
)

// ErrNoROMFile is returned when an archive contains no recognisable ROM file.
var ErrNoROMFile = errors.New("no ROM file found in archive")

// unpack returns the ROM content of raw. For archive data the first entry
// with a recognised ROM extension is extracted, and its name inside the
// archive returned. Non-archive data is returned as is with an empty name.
func unpack(raw []byte, filename string) ([]byte, string, error) {
	switch {
	case bytes.HasPrefix(raw, magicZIP) || bytes.HasPrefix(raw, magicZIPEnd):
		return unpackZIP(raw)
	case bytes.HasPrefix(raw, magic7z):
		return unpack7z(raw)
	case bytes.HasPrefix(raw, magicGzip):
		return unpackGzip(raw, filename)
	case bytes.HasPrefix(raw, magicRAR):
		return unpackRAR(raw)
	}
	return raw, "", nil
}

// isROMFile tests an archive entry name against the list of recognised ROM
// file extensions.
func isROMFile(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	for _, e := range FileExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

func limitedRead(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxROMSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxROMSize {
		return nil, fmt.Errorf("file exceeds maximum ROM size")
	}
	return data, nil
}

func unpackZIP(raw []byte) ([]byte, string, error) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, "", err
	}

	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !isROMFile(f.Name) {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, "", err
		}
		defer rc.Close()

		data, err := limitedRead(rc)
		if err != nil {
			return nil, "", err
		}
		return data, f.Name, nil
	}

	return nil, "", ErrNoROMFile
}

func unpack7z(raw []byte) ([]byte, string, error) {
	zr, err := sevenzip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, "", err
	}

	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !isROMFile(f.Name) {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, "", err
		}
		defer rc.Close()

		data, err := limitedRead(rc)
		if err != nil {
			return nil, "", err
		}
		return data, f.Name, nil
	}

	return nil, "", ErrNoROMFile
}

// unpackGzip handles both plain gzipped ROMs and gzipped tar archives.
func unpackGzip(raw []byte, filename string) ([]byte, string, error) {
	gz, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, "", err
	}
	defer gz.Close()

	inner := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	if strings.HasSuffix(strings.ToLower(inner), ".tar") {
		return unpackTar(gz)
	}

	data, err := limitedRead(gz)
	if err != nil {
		return nil, "", err
	}
	return data, inner, nil
}

func unpackTar(r io.Reader) ([]byte, string, error) {
	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, "", err
		}

		if hdr.Typeflag != tar.TypeReg || !isROMFile(hdr.Name) {
			continue
		}

		data, err := limitedRead(tr)
		if err != nil {
			return nil, "", err
		}
		return data, hdr.Name, nil
	}
	return nil, "", ErrNoROMFile
}

func unpackRAR(raw []byte) ([]byte, string, error) {
	rr, err := rardecode.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, "", err
	}

	for {
		hdr, err := rr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, "", err
		}

		if hdr.IsDir || !isROMFile(hdr.Name) {
			continue
		}

		data, err := limitedRead(rr)
		if err != nil {
			return nil, "", err
		}
		return data, hdr.Name, nil
	}

	return nil, "", ErrNoROMFile
}
