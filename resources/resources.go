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

// Package resources coordinates the loading and saving of files used by the
// probes: preferences, snapshots, regression databases.
package resources

import (
	"os"
	"path/filepath"
)

// the base path for all resources. if a directory of this name exists in the
// current directory it is used in preference to the user's config directory.
const baseResourcePath = ".gbprobe"

// JoinPath prepends the supplied path with an OS specific base path and
// creates all folders necessary to reach the end of the sub-path. It does not
// otherwise touch or create the named file.
func JoinPath(path ...string) (string, error) {
	p := filepath.Join(path...)

	b := basePath()

	// do not prepend the base path if it is already present
	if !filepath.IsAbs(p) && !hasPrefix(p, b) {
		p = filepath.Join(b, p)
	}

	// check if path already exists
	if _, err := os.Stat(p); err == nil {
		return p, nil
	}

	if err := os.MkdirAll(filepath.Dir(p), 0700); err != nil {
		return "", err
	}

	return p, nil
}

// basePath returns baseResourcePath with the user's config directory
// prepended, unless the unadorned baseResourcePath can be found in the
// current directory.
func basePath() string {
	if _, err := os.Stat(baseResourcePath); err == nil {
		return baseResourcePath
	}

	home, err := os.UserConfigDir()
	if err != nil {
		return baseResourcePath
	}
	return filepath.Join(home, baseResourcePath[1:])
}

func hasPrefix(p string, prefix string) bool {
	for len(p) > 0 {
		if p == prefix {
			return true
		}
		d := filepath.Dir(p)
		if d == p {
			break
		}
		p = d
	}
	return false
}
