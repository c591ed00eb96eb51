package main

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/pflag"

	"github.com/lixenwraith/retro-terminal/audio"
	"github.com/lixenwraith/retro-terminal/config"
	"github.com/lixenwraith/retro-terminal/director"
	"github.com/lixenwraith/retro-terminal/geodata"
	"github.com/lixenwraith/retro-terminal/render"
	"github.com/lixenwraith/retro-terminal/scene"
	"github.com/lixenwraith/retro-terminal/status"
)

// options holds command line values; file settings are overridden only by flags that were set
type options struct {
	configPath string
	debug      bool
	fps        int
	synthAudio bool
	mute       bool
	geodata    string
	timeline   string
	snapshot   string
	frames     int
	cols, rows int
}

func newFlagSet(o *options) *pflag.FlagSet {
	fs := pflag.NewFlagSet("retro-terminal", pflag.ContinueOnError)
	fs.StringVarP(&o.configPath, "config", "c", config.DefaultPath, "config file")
	fs.BoolVar(&o.debug, "debug", false, "write logs to "+logDir+"/"+logFileName)
	fs.IntVar(&o.fps, "fps", 60, "frame rate")
	fs.BoolVar(&o.synthAudio, "synth-audio", false, "use generated sound cues instead of WAV assets")
	fs.BoolVar(&o.mute, "mute", false, "disable audio")
	fs.StringVar(&o.geodata, "geodata", "", "map bundle or GeoJSON directory (default built-in maps)")
	fs.StringVar(&o.timeline, "timeline", "", "transition table TOML (default built-in)")
	fs.StringVar(&o.snapshot, "snapshot", "", "render headless and write the last frame to this PNG")
	fs.IntVar(&o.frames, "frames", 600, "frames to render with --snapshot")
	fs.IntVar(&o.cols, "cols", 160, "headless width in cells")
	fs.IntVar(&o.rows, "rows", 48, "headless height in cells")
	return fs
}

// apply overlays explicitly set flags on cfg and revalidates it
func (o *options) apply(fs *pflag.FlagSet, cfg *config.Config) error {
	if fs.Changed("fps") {
		cfg.Render.FPS = o.fps
	}
	if fs.Changed("synth-audio") {
		cfg.Audio.Synth = config.Flag(o.synthAudio)
	}
	if fs.Changed("mute") {
		cfg.Audio.Mute = config.Flag(o.mute)
	}
	if fs.Changed("geodata") {
		cfg.Geodata.Path = o.geodata
	}
	if fs.Changed("timeline") {
		cfg.Timeline.Path = o.timeline
	}
	if o.snapshot != "" && (o.frames < 1 || o.cols < 1 || o.rows < 1) {
		return fmt.Errorf("%w: snapshot needs positive --frames, --cols and --rows", config.ErrInvalid)
	}
	return cfg.Validate()
}

// presentation is the wired object graph driven by the frame loop
type presentation struct {
	comp     *render.Compositor
	director *director.Director
	player   audio.Player
	metrics  *status.Registry
	close    func()
}

// build loads every startup resource; any failure aborts before the first frame
func build(cfg *config.Config, headless bool) (*presentation, error) {
	store, err := geodata.Load(cfg.Geodata.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load geodata: %w", err)
	}

	tl, err := director.LoadTimeline(cfg.Timeline.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load timeline: %w", err)
	}

	comp, err := render.NewCompositor(render.Options{
		Width:     float64(cfg.Window.Width),
		Height:    float64(cfg.Window.Height),
		Stretch:   bool(cfg.Window.Fullscreen),
		Scanlines: bool(cfg.Render.Scanlines),
		Noise:     cfg.Render.Noise,
		Vignette:  cfg.Render.Vignette,
	})
	if err != nil {
		return nil, err
	}

	player, closeAudio, err := buildAudio(cfg, headless)
	if err != nil {
		return nil, err
	}

	seed := uint64(time.Now().UnixNano())
	if headless {
		seed = 1
	}
	sink := audio.NewKeystrokeSink(player, seed)

	locate, err := scene.NewLocate(store, player)
	if err != nil {
		closeAudio()
		return nil, err
	}
	scenes := director.Scenes{
		Login:    scene.NewLogin(sink),
		Terminal: scene.NewTerminal(scene.DefaultDemo, sink),
		Locate:   locate,
	}

	reg := status.NewRegistry()
	d := director.New(tl, scenes, player, comp)
	d.Attach(reg)

	return &presentation{
		comp:     comp,
		director: d,
		player:   player,
		metrics:  reg,
		close:    closeAudio,
	}, nil
}

// buildAudio picks the cue source; a missing speaker degrades to silence, missing assets do not
func buildAudio(cfg *config.Config, headless bool) (audio.Player, func(), error) {
	nop := func() {}
	if headless || bool(cfg.Audio.Mute) {
		return audio.NullPlayer{}, nop, nil
	}

	sm := audio.NewSoundManager()
	if cfg.Audio.Synth {
		sm.LoadSynth()
	} else if err := sm.LoadDir(cfg.Audio.Dir); err != nil {
		return nil, nil, fmt.Errorf("failed to load audio assets (try --synth-audio or --mute): %w", err)
	}

	if err := sm.Initialize(); err != nil {
		log.Printf("[audio] %v, continuing without sound", err)
		return audio.NullPlayer{}, nop, nil
	}
	sm.SetLoopVolume(cfg.Audio.BackgroundVolume)
	return sm, sm.Cleanup, nil
}
