package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/pflag"

	"github.com/lixenwraith/retro-terminal/config"
	"github.com/lixenwraith/retro-terminal/engine"
	"github.com/lixenwraith/retro-terminal/render"
	"github.com/lixenwraith/retro-terminal/status"
)

func main() {
	os.Exit(runMain(os.Args[1:]))
}

// runMain returns the exit code only after its deferred cleanup has run
func runMain(args []string) int {
	var opts options
	fs := newFlagSet(&opts)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	if logFile := setupLogging(opts.debug); logFile != nil {
		defer logFile.Close()
	}

	if err := run(&opts, fs); err != nil {
		log.Printf("fatal: %v", err)
		fmt.Fprintf(os.Stderr, "retro-terminal: %v\n", err)
		return 1
	}
	return 0
}

func run(opts *options, fs *pflag.FlagSet) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if err := opts.apply(fs, cfg); err != nil {
		return err
	}

	headless := opts.snapshot != ""
	p, err := build(cfg, headless)
	if err != nil {
		return err
	}
	defer p.close()

	if headless {
		return runHeadless(p, opts, cfg.Render.FPS)
	}
	return runInteractive(p, cfg.Render.FPS)
}

// runHeadless renders a fixed number of frames on a mock clock and exports the last one
func runHeadless(p *presentation, opts *options, fps int) error {
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init simulation screen: %w", err)
	}
	defer screen.Fini()
	screen.SetSize(opts.cols, opts.rows)
	p.comp.Resize(opts.cols, opts.rows)

	mock := engine.NewMockTimeProvider(time.Unix(0, 0))
	fc := engine.NewFrameClock(mock)
	step := engine.FrameInterval(fps)

	for i := 0; i < opts.frames; i++ {
		f := p.director.Frame(fc.Tick())
		if f.Transitioned() {
			log.Printf("[headless] frame %d: %v -> %v", i, f.Before, f.After)
		}
		mock.Advance(step)
	}
	p.comp.Flush(screen)

	if err := render.ExportPNG(p.comp.Output(), opts.snapshot); err != nil {
		return err
	}
	log.Printf("[headless] wrote %s: %s", opts.snapshot, p.metrics.Summary())
	return nil
}

// crashError turns a recovered panic into an error carrying the stack
func crashError(where string, r any) error {
	return fmt.Errorf("%s crashed: %v\nstack trace:\n%s", where, r, debug.Stack())
}

// runInteractive drives the presentation on the real terminal until a quit key
// A panic in the frame loop or the event poller is returned as an error after the screen is restored
func runInteractive(p *presentation, fps int) (err error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()

	defer func() {
		if r := recover(); r != nil {
			err = crashError("frame loop", r)
		}
	}()

	screen.HideCursor()
	screen.Clear()
	p.comp.Resize(screen.Size())

	fc := engine.NewFrameClock(engine.NewMonotonicTimeProvider())

	eventChan := make(chan tcell.Event, 64)
	crashed := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				crashed <- crashError("event poller", r)
			}
		}()

		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	frameTicker := time.NewTicker(engine.FrameInterval(fps))
	defer frameTicker.Stop()

	for {
		select {
		case err := <-crashed:
			return err

		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				if p.comp.Resize(ev.Size()) {
					screen.Sync()
				}
			case *tcell.EventKey:
				switch keyAction(ev) {
				case actionQuit:
					log.Printf("quit: %s", p.metrics.Summary())
					return nil
				case actionPause:
					togglePause(fc.Clock(), p.metrics)
				}
			}

		case <-frameTicker.C:
			if fc.Clock().IsPaused() {
				continue
			}
			p.director.Frame(fc.Tick())
			p.comp.Flush(screen)
		}
	}
}

// togglePause flips the clock and publishes the pause state and the total time spent paused
func togglePause(clock *engine.PausableClock, reg *status.Registry) bool {
	paused := clock.Toggle()
	total := clock.TotalPauseDuration()
	reg.Bools.Get("clock.paused").Store(paused)
	reg.Floats.Get("clock.paused_seconds").Set(total.Seconds())
	log.Printf("paused: %v, %v paused in total", paused, total)
	return paused
}

type keyAct int

const (
	actionNone keyAct = iota
	actionQuit
	actionPause
)

// keyAction maps ESC, q and Ctrl-C to quit and space or p to pause
func keyAction(ev *tcell.EventKey) keyAct {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return actionQuit
		case ' ', 'p', 'P':
			return actionPause
		}
	}
	return actionNone
}
