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

// Package webview streams sampled frames to a web browser. The server
// exposes a websocket endpoint pushing PNG encoded frames and a minimal
// HTML page that displays them. It exists for eyeballing a headless run
// from another machine, nothing more.
//
// The Server type implements the snapshot.Sink interface so it can be
// registered with a snapshot.Sampler like any other sink.
package webview

import (
	"bytes"
	"image/png"
	"net"
	"net/http"
	"sync"

	"github.com/hexela/gbprobe/curated"
	"github.com/hexela/gbprobe/logger"
	"github.com/hexela/gbprobe/screen"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
)

// Server pushes PNG frames to every connected websocket.
type Server struct {
	listenAddr string
	mux        *http.ServeMux

	socketsRw sync.RWMutex
	sockets   []*socket

	// broadcast channel to all sockets
	q chan []byte
}

// socket is one connected browser.
type socket struct {
	srv  *Server
	conn net.Conn

	// write channel. slow consumers have frames dropped rather than
	// stalling the broadcast
	q chan []byte

	// closed by the read handler when the connection dies
	done chan struct{}
}

// NewServer is the preferred method of initialisation for the Server type.
// Serve() must be called before the server accepts connections.
func NewServer(listenAddr string) *Server {
	srv := &Server{
		listenAddr: listenAddr,
		mux:        http.NewServeMux(),
		sockets:    make([]*socket, 0, 2),
		q:          make(chan []byte, 10),
	}

	srv.mux.Handle("/ws", http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		conn, _, _, err := ws.UpgradeHTTP(req, rw)
		if err != nil {
			logger.Logf("webview", "upgrade: %v", err)
			return
		}
		srv.appendSocket(newSocket(srv, conn))
	}))

	srv.mux.Handle("/", http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		rw.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = rw.Write([]byte(indexPage))
	}))

	go srv.handleBroadcast()

	return srv
}

// Handler exposes the HTTP routing for use with a caller-owned server.
func (srv *Server) Handler() http.Handler {
	return srv.mux
}

// Serve blocks, accepting connections until the process ends.
func (srv *Server) Serve() error {
	logger.Logf("webview", "listening on %s", srv.listenAddr)
	if err := http.ListenAndServe(srv.listenAddr, srv.mux); err != nil {
		return curated.Errorf("webview: %v", err)
	}
	return nil
}

// Sample implements the snapshot.Sink interface.
func (srv *Server) Sample(frame int, cpt *screen.Capture) error {
	b := &bytes.Buffer{}
	if err := png.Encode(b, cpt.Image()); err != nil {
		return curated.Errorf("webview: %v", err)
	}

	// drop the frame if the broadcast queue is full. the emulation loop
	// must never block on a browser
	select {
	case srv.q <- b.Bytes():
	default:
	}

	return nil
}

func (srv *Server) appendSocket(sck *socket) {
	srv.socketsRw.Lock()
	defer srv.socketsRw.Unlock()
	srv.sockets = append(srv.sockets, sck)
}

func (srv *Server) removeSocket(sck *socket) {
	srv.socketsRw.Lock()
	defer srv.socketsRw.Unlock()
	for i, s := range srv.sockets {
		if s == sck {
			srv.sockets = append(srv.sockets[:i], srv.sockets[i+1:]...)
			break
		}
	}
}

func (srv *Server) handleBroadcast() {
	for data := range srv.q {
		srv.socketsRw.RLock()
		sockets := srv.sockets
		srv.socketsRw.RUnlock()

		for _, sck := range sockets {
			select {
			case sck.q <- data:
			default:
			}
		}
	}
}

func newSocket(srv *Server, conn net.Conn) *socket {
	sck := &socket{
		srv:  srv,
		conn: conn,
		q:    make(chan []byte, 2),
		done: make(chan struct{}),
	}
	go sck.readHandler()
	go sck.writeHandler()
	return sck
}

// the reader is in control of the lifetime of the socket. incoming frames
// are discarded, the browser has nothing to say to us except goodbye.
func (sck *socket) readHandler() {
	defer func() {
		_ = sck.conn.Close()
		sck.srv.removeSocket(sck)
		close(sck.done)
	}()

	for {
		msgs, err := wsutil.ReadClientMessage(sck.conn, nil)
		if err != nil {
			return
		}
		for _, msg := range msgs {
			if msg.OpCode == ws.OpClose {
				return
			}
		}
	}
}

func (sck *socket) writeHandler() {
	for {
		select {
		case <-sck.done:
			return
		case data := <-sck.q:
			if err := wsutil.WriteServerBinary(sck.conn, data); err != nil {
				logger.Logf("webview", "write: %v", err)
				return
			}
		}
	}
}
