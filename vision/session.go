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
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/http"
	"time"

	"github.com/hexela/gbprobe/curated"
)

// DefaultPrompt asks for a terse classification of the screen.
const DefaultPrompt = "This is a screenshot from a Game Boy game. " +
	"In one short sentence, say what is on screen (title screen, menu, gameplay, game over, etc)."

// reasonable ceiling for a classification answer
const maxResponseTokens = 300

// Session represents a conversation with the remote vision service.
// Instances of the Session type can be used for more than one request.
type Session struct {
	Prefs *Preferences

	client *http.Client
}

// NewSession is the preferred method of initialisation for the Session
// type.
func NewSession() (*Session, error) {
	sess := &Session{
		client: &http.Client{Timeout: 60 * time.Second},
	}

	var err error
	sess.Prefs, err = newPreferences()
	if err != nil {
		return nil, err
	}

	return sess, nil
}

// Classify sends the image and the prompt to the remote model and returns
// the model's answer verbatim. An empty prompt selects DefaultPrompt.
func (sess *Session) Classify(img image.Image, prompt string) (string, error) {
	if prompt == "" {
		prompt = DefaultPrompt
	}

	uri, err := dataURI(img)
	if err != nil {
		return "", curated.Errorf("vision: %v", err)
	}

	chat := chatRequest{
		Model:     sess.Prefs.Model.String(),
		MaxTokens: maxResponseTokens,
		Messages: []chatMessage{{
			Role: "user",
			Content: []contentPart{
				{Type: "text", Text: prompt},
				{Type: "image_url", ImageURL: &imageURL{URL: uri}},
			},
		}},
	}

	body, err := json.Marshal(chat)
	if err != nil {
		return "", curated.Errorf("vision: %v", err)
	}

	statusCode, response, err := sess.post("/v1/chat/completions", body)
	if err != nil {
		return "", curated.Errorf("vision: %v", err)
	}

	switch statusCode {
	case 200:
		// model answered
	case 401:
		return "", curated.Errorf("vision: %v", "authorisation refused, check the vision.authtoken preference")
	default:
		err = fmt.Errorf("unexpected response from vision server [%d: %s]", statusCode, response)
		return "", curated.Errorf("vision: %v", err)
	}

	var reply chatResponse
	if err := json.Unmarshal(response, &reply); err != nil {
		return "", curated.Errorf("vision: %v", err)
	}
	if len(reply.Choices) == 0 {
		return "", curated.Errorf("vision: %v", "no choices in response")
	}

	return reply.Choices[0].Message.Content, nil
}

// url should not contain the server address, it will be added
// automatically.
func (sess *Session) post(url string, data []byte) (int, []byte, error) {
	url = fmt.Sprintf("%s%s", sess.Prefs.Server.String(), url)

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(data))
	if err != nil {
		return 0, []byte{}, err
	}

	req.Header.Add("Content-Type", "application/json")
	if tok := sess.Prefs.AuthToken.String(); tok != "" {
		req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", tok))
	}

	resp, err := sess.client.Do(req)
	if err != nil {
		return 0, []byte{}, err
	}
	defer resp.Body.Close()

	response, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, []byte{}, err
	}

	return resp.StatusCode, response, nil
}

// dataURI encodes the image as a base64 PNG data URI.
func dataURI(img image.Image) (string, error) {
	b := &bytes.Buffer{}
	if err := png.Encode(b, img); err != nil {
		return "", err
	}
	return fmt.Sprintf("data:image/png;base64,%s",
		base64.StdEncoding.EncodeToString(b.Bytes())), nil
}
