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

package vision_test

import (
	"encoding/json"
	"image"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/hexela/gbprobe/test"
	"github.com/hexela/gbprobe/vision"
)

func testImage() image.Image {
	return image.NewRGBA(image.Rect(0, 0, 8, 8))
}

// newTestSession points a session at the test server. prefs resources are
// redirected to a scratch directory so a developer's real preferences are
// never read or written.
func newTestSession(t *testing.T, url string) *vision.Session {
	t.Helper()

	wd := t.TempDir()
	cwd, err := os.Getwd()
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, os.Chdir(wd))
	t.Cleanup(func() { _ = os.Chdir(cwd) })
	test.ExpectedSuccess(t, os.Mkdir(".gbprobe", 0o700))

	sess, err := vision.NewSession()
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, sess.Prefs.Server.Set(url))
	test.ExpectedSuccess(t, sess.Prefs.AuthToken.Set("secret-token"))
	test.ExpectedSuccess(t, sess.Prefs.Model.Set("test-model"))
	return sess
}

func TestClassify(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"title screen"}}]}`))
	}))
	defer srv.Close()

	sess := newTestSession(t, srv.URL)

	answer, err := sess.Classify(testImage(), "")
	test.ExpectedSuccess(t, err)
	test.Equate(t, answer, "title screen")

	test.Equate(t, gotPath, "/v1/chat/completions")
	test.Equate(t, gotAuth, "Bearer secret-token")
	test.Equate(t, gotBody["model"].(string), "test-model")

	// the request carries a data URI image part
	msgs := gotBody["messages"].([]interface{})
	content := msgs[0].(map[string]interface{})["content"].([]interface{})
	test.Equate(t, len(content), 2)
	imgPart := content[1].(map[string]interface{})
	test.Equate(t, imgPart["type"].(string), "image_url")
	uri := imgPart["image_url"].(map[string]interface{})["url"].(string)
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Errorf("image is not a png data uri (%.40s)", uri)
	}
}

func TestClassifyServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	sess := newTestSession(t, srv.URL)
	_, err := sess.Classify(testImage(), "what is this?")
	test.ExpectedFailure(t, err)
}

func TestClassifyAuthRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad token", http.StatusUnauthorized)
	}))
	defer srv.Close()

	sess := newTestSession(t, srv.URL)
	_, err := sess.Classify(testImage(), "")
	test.ExpectedFailure(t, err)
}

func TestClassifyEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	sess := newTestSession(t, srv.URL)
	_, err := sess.Classify(testImage(), "")
	test.ExpectedFailure(t, err)
}
