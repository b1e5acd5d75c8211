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

package vision

import (
	"github.com/hexela/gbprobe/curated"
	"github.com/hexela/gbprobe/prefs"
	"github.com/hexela/gbprobe/resources"
)

// sensible defaults for a service speaking the chat-completions dialect.
const (
	defServer = "https://api.openai.com"
	defModel  = "gpt-4o-mini"
)

// Preferences for the remote vision service.
type Preferences struct {
	dsk *prefs.Disk

	// Server is the scheme and host of the remote service, without path
	Server prefs.String

	// AuthToken is sent as a bearer token with every request
	AuthToken prefs.String

	// Model is the model name placed in the request body
	Model prefs.String
}

func newPreferences() (*Preferences, error) {
	p := &Preferences{}

	pth, err := resources.JoinPath(prefs.DefaultPrefsFile)
	if err != nil {
		return nil, curated.Errorf("vision: %v", err)
	}

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, curated.Errorf("vision: %v", err)
	}

	if err := p.dsk.Add("vision.server", &p.Server); err != nil {
		return nil, curated.Errorf("vision: %v", err)
	}
	if err := p.dsk.Add("vision.authtoken", &p.AuthToken); err != nil {
		return nil, curated.Errorf("vision: %v", err)
	}
	if err := p.dsk.Add("vision.model", &p.Model); err != nil {
		return nil, curated.Errorf("vision: %v", err)
	}

	_ = p.Server.Set(defServer)
	_ = p.Model.Set(defModel)

	if err := p.dsk.Load(); err != nil {
		return p, curated.Errorf("vision: %v", err)
	}

	return p, nil
}

// Save preferences to disk.
func (p *Preferences) Save() error {
	if err := p.dsk.Save(); err != nil {
		return curated.Errorf("vision: %v", err)
	}
	return nil
}
