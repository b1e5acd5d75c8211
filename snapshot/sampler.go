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

// Package snapshot is the frame sampling loop shared by the headless
// sub-modes. A Sampler drives the machine for a number of frames and hands
// the captured screen to each registered Sink at the sampling interval.
//
// A failing sink does not stop the run. The failure is logged and sampling
// continues, only emulation errors abort the loop. This is deliberate. A
// long probing run should not be lost because one PNG failed to write or
// one network push timed out.
package snapshot

import (
	"sync"

	"github.com/hexela/gbprobe/curated"
	"github.com/hexela/gbprobe/gameboy"
	"github.com/hexela/gbprobe/logger"
	"github.com/hexela/gbprobe/screen"
)

// Sink receives the captured screen at every sampling point.
type Sink interface {
	Sample(frame int, cpt *screen.Capture) error
}

// Sampler couples a machine to its screen capture and a set of sinks.
type Sampler struct {
	mc       *gameboy.Machine
	cpt      *screen.Capture
	interval int
	sinks    []Sink

	halt     chan struct{}
	haltOnce sync.Once
}

// NewSampler is the preferred method of initialisation for the Sampler
// type. The interval is in frames and must be positive.
func NewSampler(mc *gameboy.Machine, cpt *screen.Capture, interval int) (*Sampler, error) {
	if interval <= 0 {
		return nil, curated.Errorf("snapshot: interval must be positive (%d)", interval)
	}
	return &Sampler{
		mc:       mc,
		cpt:      cpt,
		interval: interval,
		halt:     make(chan struct{}),
	}, nil
}

// Halt ends a Run() cleanly at the next frame boundary. Safe to call from
// any goroutine and safe to call more than once.
func (smp *Sampler) Halt() {
	smp.haltOnce.Do(func() { close(smp.halt) })
}

// AddSink registers a sink. Sinks are called in registration order.
func (smp *Sampler) AddSink(snk Sink) {
	smp.sinks = append(smp.sinks, snk)
}

// Run the machine for numFrames frames, sampling at the interval given at
// initialisation. A numFrames value of zero or less runs forever.
func (smp *Sampler) Run(numFrames int) error {
	return smp.mc.RunFrames(numFrames, func(frame int) error {
		select {
		case <-smp.halt:
			return curated.Errorf(gameboy.HaltRun)
		default:
		}

		if frame%smp.interval != 0 {
			return nil
		}
		for _, snk := range smp.sinks {
			if err := snk.Sample(frame, smp.cpt); err != nil {
				if curated.Is(err, gameboy.HaltRun) {
					return err
				}
				logger.Logf("snapshot", "sample at frame %d: %v", frame, err)
			}
		}
		return nil
	})
}
