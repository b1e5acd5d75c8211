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

package logger

import (
	"testing"

	"github.com/hexela/gbprobe/test"
)

func TestWriteAndClear(t *testing.T) {
	l := newLogger(100)

	tw := &test.CompareWriter{}
	l.write(tw)
	test.ExpectedSuccess(t, tw.Compare(""))

	l.log("test", "this is a test")
	l.write(tw)
	test.ExpectedSuccess(t, tw.Compare("test: this is a test\n"))

	l.clear()
	tw.Clear()
	l.write(tw)
	test.ExpectedSuccess(t, tw.Compare(""))
}

func TestRepeatedEntries(t *testing.T) {
	l := newLogger(100)

	l.log("loop", "frame sampled")
	l.log("loop", "frame sampled")
	l.log("loop", "frame sampled")

	tw := &test.CompareWriter{}
	l.write(tw)
	test.ExpectedSuccess(t, tw.Compare("loop: frame sampled (repeat x3)\n"))
}

func TestTail(t *testing.T) {
	l := newLogger(100)

	l.log("a", "1")
	l.log("b", "2")
	l.log("c", "3")

	tw := &test.CompareWriter{}
	l.tail(tw, 2)
	test.ExpectedSuccess(t, tw.Compare("b: 2\nc: 3\n"))

	// tail longer than the log is the same as write
	tw.Clear()
	l.tail(tw, 10)
	test.ExpectedSuccess(t, tw.Compare("a: 1\nb: 2\nc: 3\n"))
}

func TestMaxEntries(t *testing.T) {
	l := newLogger(2)

	l.log("a", "1")
	l.log("b", "2")
	l.log("c", "3")

	tw := &test.CompareWriter{}
	l.write(tw)
	test.ExpectedSuccess(t, tw.Compare("b: 2\nc: 3\n"))
}

func TestEcho(t *testing.T) {
	l := newLogger(100)

	tw := &test.CompareWriter{}
	l.setEcho(tw)
	l.log("echo", "immediate")
	test.ExpectedSuccess(t, tw.Compare("echo: immediate\n"))

	l.setEcho(nil)
	l.log("echo", "suppressed")
	test.ExpectedSuccess(t, tw.Compare("echo: immediate\n"))
}
