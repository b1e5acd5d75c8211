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

package webview_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hexela/gbprobe/screen"
	"github.com/hexela/gbprobe/test"
	"github.com/hexela/gbprobe/webview"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
)

func TestIndexPage(t *testing.T) {
	srv := webview.NewServer("127.0.0.1:0")
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	test.ExpectedSuccess(t, err)
	defer resp.Body.Close()
	test.Equate(t, resp.StatusCode, 200)

	body, err := io.ReadAll(resp.Body)
	test.ExpectedSuccess(t, err)
	if !strings.Contains(string(body), "gbprobe") {
		t.Errorf("index page missing expected content")
	}
}

func TestFramePush(t *testing.T) {
	srv := webview.NewServer("127.0.0.1:0")
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, _, err := ws.DefaultDialer.Dial(ctx, wsURL)
	test.ExpectedSuccess(t, err)
	defer conn.Close()

	// keep sampling until the client sees a frame. the first samples can
	// race the socket registration
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		cpt := screen.NewCapture()
		for {
			select {
			case <-stop:
				return
			default:
			}
			_ = srv.Sample(1, cpt)
			time.Sleep(10 * time.Millisecond)
		}
	}()

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	data, err := wsutil.ReadServerBinary(conn)
	test.ExpectedSuccess(t, err)

	// frames arrive as PNG
	if !bytes.HasPrefix(data, []byte{0x89, 'P', 'N', 'G'}) {
		t.Errorf("pushed frame is not a png")
	}
}
