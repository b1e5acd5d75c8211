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

// Package romfile is responsible for loading ROM data for the rest of the
// project. ROMs can be loaded from local files or over http(s), and can be
// packed inside zip, gzip, tar.gz, 7z or rar archives - archives are detected
// by magic bytes and the first Game Boy ROM found inside is used.
//
// The package also decodes the cartridge header found in every Game Boy ROM.
// The header is only consumed, never produced - interpretation is limited to
// what is useful for probe output (title, mapper type, size codes) and to the
// header checksum, which is a good indicator of whether a file is a Game Boy
// ROM at all.
package romfile
