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

package webview

// the whole front end. each websocket message is one PNG frame.
const indexPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>gbprobe</title>
<style>
body { background: #222; color: #ddd; font-family: monospace; text-align: center; }
img { margin-top: 2em; width: 480px; image-rendering: pixelated; }
</style>
</head>
<body>
<img id="screen" alt="waiting for frames">
<p id="status">connecting</p>
<script>
const img = document.getElementById("screen");
const status = document.getElementById("status");
const sock = new WebSocket("ws://" + location.host + "/ws");
sock.binaryType = "blob";
sock.onopen = () => { status.textContent = "connected"; };
sock.onclose = () => { status.textContent = "disconnected"; };
sock.onmessage = (ev) => {
	const url = URL.createObjectURL(ev.data);
	const old = img.src;
	img.src = url;
	if (old) { URL.revokeObjectURL(old); }
};
</script>
</body>
</html>
`
