package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultPath is the config file looked up next to the binary's working directory
const DefaultPath = "config.ini"

// ErrInvalid marks a config value outside its accepted range
var ErrInvalid = errors.New("invalid config")

// Config is the full presentation configuration
// The [Window] section uses the plain INI key layout, which is also valid TOML
type Config struct {
	Window   WindowConfig   `toml:"Window"`
	Audio    AudioConfig    `toml:"Audio"`
	Geodata  GeodataConfig  `toml:"Geodata"`
	Render   RenderConfig   `toml:"Render"`
	Timeline TimelineConfig `toml:"Timeline"`
}

// WindowConfig defines the logical layout resolution scenes draw in
type WindowConfig struct {
	Width      int  `toml:"Width"`
	Height     int  `toml:"Height"`
	Fullscreen Flag `toml:"Fullscreen"`
}

// AudioConfig selects the cue source and background level
type AudioConfig struct {
	Dir              string  `toml:"Dir"`
	BackgroundVolume float64 `toml:"BackgroundVolume"`
	Synth            Flag    `toml:"Synth"`
	Mute             Flag    `toml:"Mute"`
}

// GeodataConfig points at a packed bundle or a directory of GeoJSON files
// An empty path selects the maps compiled into the binary
type GeodataConfig struct {
	Path string `toml:"Path"`
}

// RenderConfig tunes the frame loop and the CRT pass
type RenderConfig struct {
	FPS       int     `toml:"FPS"`
	Scanlines Flag    `toml:"Scanlines"`
	Noise     float64 `toml:"Noise"`
	Vignette  float64 `toml:"Vignette"`
}

// TimelineConfig optionally overrides the embedded transition table
type TimelineConfig struct {
	Path string `toml:"Path"`
}

// Flag is a boolean that also accepts the INI-style 0/1 integers
type Flag bool

// UnmarshalTOML implements toml.Unmarshaler
func (f *Flag) UnmarshalTOML(v any) error {
	switch x := v.(type) {
	case bool:
		*f = Flag(x)
	case int64:
		*f = x != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "1", "true", "yes", "on":
			*f = true
		case "0", "false", "no", "off", "":
			*f = false
		default:
			return fmt.Errorf("%w: flag value %q", ErrInvalid, x)
		}
	default:
		return fmt.Errorf("%w: flag type %T", ErrInvalid, v)
	}
	return nil
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1920,
			Height: 1080,
		},
		Audio: AudioConfig{
			Dir:              "assets/sounds",
			BackgroundVolume: 0.5,
		},
		Render: RenderConfig{
			FPS:       60,
			Scanlines: true,
			Noise:     0.04,
			Vignette:  0.35,
		},
	}
}

// Load reads the config file at path over the defaults
// A missing file is not an error: it is logged and defaults are returned
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("[config] %s not found, using defaults", path)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to stat config: %w", err)
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		log.Printf("[config] ignoring unknown key %s", key)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Printf("[config] loaded %s", path)
	return cfg, nil
}

// Parse decodes a config document over the defaults
func Parse(data string) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Audio.BackgroundVolume < 0 || c.Audio.BackgroundVolume > 1 {
		return fmt.Errorf("%w: background volume %v not in [0,1]", ErrInvalid, c.Audio.BackgroundVolume)
	}
	if c.Render.FPS <= 0 || c.Render.FPS > 240 {
		return fmt.Errorf("%w: fps %d", ErrInvalid, c.Render.FPS)
	}
	if c.Render.Noise < 0 || c.Render.Noise > 1 {
		return fmt.Errorf("%w: noise %v not in [0,1]", ErrInvalid, c.Render.Noise)
	}
	if c.Render.Vignette < 0 || c.Render.Vignette > 1 {
		return fmt.Errorf("%w: vignette %v not in [0,1]", ErrInvalid, c.Render.Vignette)
	}
	return nil
}
