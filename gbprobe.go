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

package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/hexela/gbprobe/curated"
	"github.com/hexela/gbprobe/digest"
	"github.com/hexela/gbprobe/gameboy"
	"github.com/hexela/gbprobe/logger"
	"github.com/hexela/gbprobe/memscan"
	"github.com/hexela/gbprobe/modalflag"
	"github.com/hexela/gbprobe/performance"
	"github.com/hexela/gbprobe/regression"
	"github.com/hexela/gbprobe/resources"
	"github.com/hexela/gbprobe/romfile"
	"github.com/hexela/gbprobe/screen"
	"github.com/hexela/gbprobe/sdlplay"
	"github.com/hexela/gbprobe/snapshot"
	"github.com/hexela/gbprobe/statsview"
	"github.com/hexela/gbprobe/term"
	"github.com/hexela/gbprobe/version"
	"github.com/hexela/gbprobe/vision"
	"github.com/hexela/gbprobe/wavwriter"
	"github.com/hexela/gbprobe/webview"
)

// exit values used by main(). anything other than zero is accompanied by
// an error message on stdout.
const (
	exitParseError = 10
	exitModeError  = 20
)

// #mainthread
//
// everything runs on the main goroutine. SDL (the PLAY sub-mode) requires
// window creation and event polling to happen on the main thread so the
// sub-modes are dispatched synchronously rather than from a launch
// goroutine.
func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("PLAY", "SNAP", "SCAN", "VISION", "SERVE", "PERF", "REGRESS")

	showVersion := md.AddBool("version", false, "print version and exit")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(exitParseError)
	}

	if *showVersion {
		fmt.Printf("%s (%s)\n", version.ApplicationName, version.Version)
		os.Exit(0)
	}

	// ctrl-c stops the long running sub-modes at the next frame boundary
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	switch md.Mode() {
	case "PLAY":
		err = play(md)

	case "SNAP":
		err = snap(md, intChan)

	case "SCAN":
		err = scan(md, intChan)

	case "VISION":
		err = visionMode(md, intChan)

	case "SERVE":
		err = serve(md, intChan)

	case "PERF":
		err = perform(md)

	case "REGRESS":
		err = regress(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %v\n", md.String(), err)
		os.Exit(exitModeError)
	}
}

// setEcho connects or disconnects the central logger from stdout.
func setEcho(log bool) {
	if log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}
}

// loadROM checks that exactly one ROM file argument remains on the command
// line and prepares a loader for it.
func loadROM(md *modalflag.Modes) (*romfile.Loader, error) {
	switch len(md.RemainingArgs()) {
	case 0:
		return nil, fmt.Errorf("ROM file required for %s mode", md)
	case 1:
		return romfile.NewLoader(md.GetArg(0))
	default:
		return nil, fmt.Errorf("too many arguments for %s mode", md)
	}
}

// haltOnInterrupt converts an interrupt signal into a clean sampler halt.
// the returned function releases the watching goroutine.
func haltOnInterrupt(intChan chan os.Signal, smp *snapshot.Sampler) func() {
	done := make(chan struct{})
	go func() {
		select {
		case <-intChan:
			smp.Halt()
		case <-done:
		}
	}()
	return func() { close(done) }
}

// interrupted is a non-blocking check of the interrupt channel.
func interrupted(intChan chan os.Signal) bool {
	select {
	case <-intChan:
		return true
	default:
		return false
	}
}

func play(md *modalflag.Modes) error {
	md.NewMode()

	scale := md.AddInt("scale", 4, "integer window scaling")
	numFrames := md.AddInt("frames", 0, "number of frames to run (0 means no limit)")
	wav := md.AddString("wav", "", "record audio to wav file")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}
	setEcho(*log)

	ld, err := loadROM(md)
	if err != nil {
		return err
	}

	ply, err := sdlplay.NewPlayer(*scale)
	if err != nil {
		return err
	}
	defer ply.Destroy()

	if *wav != "" {
		aw := wavwriter.New(*wav)
		ply.AttachAudio(aw)
		defer aw.End()
	}

	mc, err := gameboy.NewMachine(ply, ld)
	if err != nil {
		return err
	}

	fmt.Fprintf(md.Output, "playing %s\n", ld.Header.String())

	return ply.Play(mc, *numFrames)
}

func snap(md *modalflag.Modes, intChan chan os.Signal) error {
	md.NewMode()

	numFrames := md.AddInt("frames", 300, "number of frames to run (0 means no limit)")
	interval := md.AddInt("interval", 60, "frames between samples")
	out := md.AddString("out", "", "output directory (default is the snapshots resource directory)")
	scale := md.AddInt("scale", 1, "integer scaling of written images")
	dig := md.AddBool("digest", false, "print chained screen and audio digests")
	noPNG := md.AddBool("nopng", false, "suppress PNG output (useful with -digest)")
	hold := md.AddString("hold", "", "joypad buttons held for the whole run (comma separated)")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}
	setEcho(*log)

	ld, err := loadROM(md)
	if err != nil {
		return err
	}
	if err := ld.Load(); err != nil {
		return err
	}

	cpt := screen.NewCapture()
	mc, err := gameboy.NewMachine(cpt, ld)
	if err != nil {
		return err
	}

	// getting past a title screen usually needs start held down
	if *hold != "" {
		ev, err := gameboy.ParseEvent(*hold)
		if err != nil {
			return err
		}
		mc.Input(ev)
	}

	smp, err := snapshot.NewSampler(mc, cpt, *interval)
	if err != nil {
		return err
	}

	if !*noPNG {
		dir := *out
		if dir == "" {
			dir, err = resources.JoinPath("snapshots")
			if err != nil {
				return err
			}
		}
		snk, err := snapshot.NewPNGSink(dir, ld.ShortName(), *scale)
		if err != nil {
			return err
		}
		smp.AddSink(snk)
		fmt.Fprintf(md.Output, "writing snapshots to %s\n", dir)
	}

	var adig *digest.Audio
	if *dig {
		smp.AddSink(snapshot.NewDigestSink(md.Output))
		adig = digest.NewAudio()
		cpt.AttachAudio(adig)
	}

	release := haltOnInterrupt(intChan, smp)
	defer release()

	if err := smp.Run(*numFrames); err != nil {
		return err
	}

	if adig != nil {
		adig.Flush()
		fmt.Fprintf(md.Output, "audio: %s\n", adig.Hash())
	}

	return nil
}

// parseAddr converts a command line address. both decimal and the 0x hex
// prefix are accepted.
func parseAddr(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address (%s)", s)
	}
	return uint16(v), nil
}

func scan(md *modalflag.Modes, intChan chan os.Signal) error {
	md.NewMode()

	from := md.AddString("from", "0xc000", "first address of the scanned range")
	to := md.AddString("to", "0xdfff", "last address of the scanned range")
	numFrames := md.AddInt("frames", 600, "number of frames to run")
	interval := md.AddInt("interval", 10, "frames between samples")
	top := md.AddInt("top", 16, "number of candidates to report")
	interactive := md.AddBool("interactive", false, "trigger samples by hand (space samples, q quits)")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}
	setEcho(*log)

	fromAddr, err := parseAddr(*from)
	if err != nil {
		return err
	}
	toAddr, err := parseAddr(*to)
	if err != nil {
		return err
	}

	ld, err := loadROM(md)
	if err != nil {
		return err
	}

	mc, err := gameboy.NewMachine(nil, ld)
	if err != nil {
		return err
	}

	sc, err := memscan.NewScanner(fromAddr, toAddr)
	if err != nil {
		return err
	}

	if *interactive {
		if err := scanInteractive(md, mc, sc, *interval); err != nil {
			return err
		}
	} else {
		if *interval <= 0 {
			return curated.Errorf("interval must be positive (%d)", *interval)
		}
		err = mc.RunFrames(*numFrames, func(frame int) error {
			if interrupted(intChan) {
				return curated.Errorf(gameboy.HaltRun)
			}
			if frame%*interval != 0 {
				return nil
			}
			return sc.Sample(mc)
		})
		if err != nil {
			return err
		}
	}

	return sc.WriteReport(md.Output, *top)
}

// scanInteractive runs the machine in bursts of the sampling interval,
// each burst triggered by a keypress.
func scanInteractive(md *modalflag.Modes, mc *gameboy.Machine, sc *memscan.Scanner, interval int) error {
	if interval <= 0 {
		return curated.Errorf("interval must be positive (%d)", interval)
	}

	kr, err := term.NewKeyReader(os.Stdin)
	if err != nil {
		return err
	}
	defer kr.Restore()

	fmt.Fprintln(md.Output, "space to sample, q to finish")

	for {
		key, ok := <-kr.C
		if !ok {
			return nil
		}

		switch key {
		case 'q':
			return nil
		case ' ':
			if err := mc.RunFrames(interval, nil); err != nil {
				return err
			}
			if err := sc.Sample(mc); err != nil {
				return err
			}
			fmt.Fprintf(md.Output, "sample %d taken at frame %d\n", sc.NumSamples(), mc.Frame())
		}
	}
}

func visionMode(md *modalflag.Modes, intChan chan os.Signal) error {
	md.NewMode()

	numFrames := md.AddInt("frames", 600, "number of frames to run before the capture")
	prompt := md.AddString("prompt", "", "override the classification prompt")
	server := md.AddString("server", "", "set and save the API server URL")
	token := md.AddString("token", "", "set and save the API auth token")
	model := md.AddString("model", "", "set and save the model name")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}
	setEcho(*log)

	sess, err := vision.NewSession()
	if err != nil {
		return err
	}

	// command line settings are persisted for later runs
	save := false
	if *server != "" {
		if err := sess.Prefs.Server.Set(*server); err != nil {
			return err
		}
		save = true
	}
	if *token != "" {
		if err := sess.Prefs.AuthToken.Set(*token); err != nil {
			return err
		}
		save = true
	}
	if *model != "" {
		if err := sess.Prefs.Model.Set(*model); err != nil {
			return err
		}
		save = true
	}
	if save {
		if err := sess.Prefs.Save(); err != nil {
			return err
		}
	}

	ld, err := loadROM(md)
	if err != nil {
		return err
	}

	cpt := screen.NewCapture()
	mc, err := gameboy.NewMachine(cpt, ld)
	if err != nil {
		return err
	}

	err = mc.RunFrames(*numFrames, func(_ int) error {
		if interrupted(intChan) {
			return curated.Errorf(gameboy.HaltRun)
		}
		return nil
	})
	if err != nil {
		return err
	}

	pr := *prompt
	if pr == "" {
		pr = vision.DefaultPrompt
	}

	answer, err := sess.Classify(cpt.Image(), pr)
	if err != nil {
		return err
	}

	fmt.Fprintf(md.Output, "%s\n", answer)
	return nil
}

func serve(md *modalflag.Modes, intChan chan os.Signal) error {
	md.NewMode()

	addr := md.AddString("addr", "localhost:8080", "listen address for the HTTP server")
	numFrames := md.AddInt("frames", 0, "number of frames to run (0 means no limit)")
	interval := md.AddInt("interval", 10, "frames between pushed frames")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}
	setEcho(*log)

	ld, err := loadROM(md)
	if err != nil {
		return err
	}

	cpt := screen.NewCapture()
	mc, err := gameboy.NewMachine(cpt, ld)
	if err != nil {
		return err
	}

	smp, err := snapshot.NewSampler(mc, cpt, *interval)
	if err != nil {
		return err
	}

	srv := webview.NewServer(*addr)
	smp.AddSink(srv)

	go func() {
		if err := srv.Serve(); err != nil {
			logger.Logf("webview", "%v", err)
		}
	}()

	fmt.Fprintf(md.Output, "serving frames on http://%s\n", *addr)

	release := haltOnInterrupt(intChan, smp)
	defer release()

	return smp.Run(*numFrames)
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	duration := md.AddString("duration", "5s", "run duration (note: there is a 2s overhead)")
	profile := md.AddString("profile", "none", "profiling: cpu, mem, trace, all or none")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}
	setEcho(*log)

	prf, err := performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	ld, err := loadROM(md)
	if err != nil {
		return err
	}

	if statsview.Available() {
		statsview.Launch(md.Output)
	}

	return performance.Check(md.Output, prf, ld, *duration)
}

func regress(md *modalflag.Modes) error {
	md.NewMode()
	md.AddSubModes("RUN", "LIST", "DELETE", "ADD")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch md.Mode() {
	case "RUN":
		md.NewMode()

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		if len(md.RemainingArgs()) > 0 {
			return fmt.Errorf("no additional arguments required for %s mode", md)
		}

		return regression.RegressRun(md.Output)

	case "LIST":
		md.NewMode()

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		if len(md.RemainingArgs()) > 0 {
			return fmt.Errorf("no additional arguments required for %s mode", md)
		}

		return regression.RegressList(md.Output)

	case "DELETE":
		md.NewMode()

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		switch len(md.RemainingArgs()) {
		case 0:
			return fmt.Errorf("database key required for %s mode", md)
		case 1:
			return regression.RegressDelete(md.Output, md.GetArg(0))
		default:
			return fmt.Errorf("only one entry can be deleted at a time")
		}

	case "ADD":
		md.NewMode()

		numFrames := md.AddInt("frames", 10, "number of frames to run")
		notes := md.AddString("notes", "", "additional annotation for the database")
		log := md.AddBool("log", false, "echo debugging log to stdout")

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}
		setEcho(*log)

		switch len(md.RemainingArgs()) {
		case 0:
			return fmt.Errorf("ROM file required for %s mode", md)
		case 1:
			return regression.RegressAdd(md.Output, md.GetArg(0), *numFrames, *notes)
		default:
			return fmt.Errorf("too many arguments for %s mode", md)
		}
	}

	return nil
}
