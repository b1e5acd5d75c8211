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

// Package vision sends captured frames to a remote vision-capable language
// model for classification. The remote service speaks the widely copied
// OpenAI chat-completions dialect. Frames travel as base64 PNG data URIs
// inside an image content part.
//
// Server address, authorisation token and model name are persisted with
// the prefs package so they only need setting once. The probe exercises
// the image-delivery pipeline, nothing in this package interprets the
// model's answer.
package vision
