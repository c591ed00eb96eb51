package audio

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

const (
	sampleRate      = beep.SampleRate(48000)
	resampleQuality = 4
)

// outputFormat is the format every cue buffer is converted to
var outputFormat = beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}

var (
	// ErrNotInitialized is returned when playback is requested before Initialize
	ErrNotInitialized = errors.New("audio not initialized")
	// ErrNotLoaded is returned when a cue set has not been loaded
	ErrNotLoaded = errors.New("audio cues not loaded")
)

// SoundManager manages the presentation cue set and background loop
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	cues        [CueCount]*beep.Buffer
	background  *beep.Buffer
	loopCtrl    *beep.Ctrl
	loopVolume  *effects.Volume
	volume      float64
	initialized bool
	played      [CueCount]uint64
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: 1.0,
	}
}

// Initialize opens the speaker and starts draining the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	// Initialize speaker with sample rate and buffer size
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// LoadDir decodes every cue file and the background track from dir
// Any missing or undecodable file fails the whole load
func (sm *SoundManager) LoadDir(dir string) error {
	var cues [CueCount]*beep.Buffer
	for c := Cue(0); c < CueCount; c++ {
		buf, err := loadWav(filepath.Join(dir, c.FileName()))
		if err != nil {
			return fmt.Errorf("load cue %s: %w", c, err)
		}
		cues[c] = buf
	}

	bg, err := loadWav(filepath.Join(dir, BackgroundFile))
	if err != nil {
		return fmt.Errorf("load background: %w", err)
	}

	sm.mu.Lock()
	sm.cues = cues
	sm.background = bg
	sm.mu.Unlock()

	log.Printf("[audio] loaded %d cues and background from %s", CueCount, dir)
	return nil
}

// LoadSynth installs the generated cue set
func (sm *SoundManager) LoadSynth() {
	bank := NewSynthBank()

	sm.mu.Lock()
	sm.cues = bank.Cues
	sm.background = bank.Background
	sm.mu.Unlock()

	log.Printf("[audio] using synthesized cue set")
}

// Loaded reports whether a full cue set is installed
func (sm *SoundManager) Loaded() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.loadedLocked()
}

func (sm *SoundManager) loadedLocked() bool {
	if sm.background == nil {
		return false
	}
	for _, b := range sm.cues {
		if b == nil {
			return false
		}
	}
	return true
}

// Ready returns nil when cues are loaded and the speaker is running
func (sm *SoundManager) Ready() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.loadedLocked() {
		return ErrNotLoaded
	}
	if !sm.initialized {
		return ErrNotInitialized
	}
	return nil
}

// PlayCue starts a one-shot cue on top of whatever is playing
func (sm *SoundManager) PlayCue(c Cue) {
	if !c.Valid() {
		log.Printf("[audio] ignoring invalid %s", c)
		return
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.played[c]++
	buf := sm.cues[c]
	if !sm.initialized || buf == nil {
		return
	}

	speaker.Lock()
	sm.mixer.Add(buf.Streamer(0, buf.Len()))
	speaker.Unlock()
}

// PlayLoop starts the background track, no-op while it is already playing
func (sm *SoundManager) PlayLoop() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.background == nil || sm.loopCtrl != nil {
		return
	}

	loop := beep.Loop(-1, sm.background.Streamer(0, sm.background.Len()))
	vol := &effects.Volume{Streamer: loop, Base: 2}
	applyVolume(vol, sm.volume)
	ctrl := &beep.Ctrl{Streamer: vol, Paused: false}

	speaker.Lock()
	sm.mixer.Add(ctrl)
	speaker.Unlock()

	sm.loopCtrl = ctrl
	sm.loopVolume = vol
}

// StopLoop stops the background track
func (sm *SoundManager) StopLoop() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.loopCtrl == nil {
		return
	}

	// A Ctrl without a streamer reports drained and the mixer drops it
	speaker.Lock()
	sm.loopCtrl.Streamer = nil
	speaker.Unlock()

	sm.loopCtrl = nil
	sm.loopVolume = nil
}

// SetLoopVolume sets the background level in [0,1], other values are rejected
func (sm *SoundManager) SetLoopVolume(v float64) {
	if v < 0 || v > 1 || math.IsNaN(v) {
		log.Printf("[audio] volume must be between 0.0 and 1.0, got %v", v)
		return
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.volume = v
	if sm.loopVolume == nil {
		return
	}
	speaker.Lock()
	applyVolume(sm.loopVolume, v)
	speaker.Unlock()
}

// LoopVolume returns the configured background level
func (sm *SoundManager) LoopVolume() float64 {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.volume
}

// LoopPlaying reports whether the background track is active
func (sm *SoundManager) LoopPlaying() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.loopCtrl != nil
}

// PlayCount returns how often a cue was requested
func (sm *SoundManager) PlayCount(c Cue) uint64 {
	if !c.Valid() {
		return 0
	}
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played[c]
}

// Cleanup stops all sounds and releases the mixer
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	if sm.loopCtrl != nil {
		sm.loopCtrl.Streamer = nil
	}
	sm.mixer.Clear()
	speaker.Unlock()

	// Note: beep doesn't provide a way to close the speaker device here,
	// clearing all streamers ensures no audio artifacts
	sm.loopCtrl = nil
	sm.loopVolume = nil
	sm.initialized = false
}

// applyVolume maps a linear level to beep's logarithmic volume
// math.Log2(0) is -Inf, so zero is handled by silencing
func applyVolume(v *effects.Volume, level float64) {
	if level <= 0 {
		v.Volume = 0
		v.Silent = true
		return
	}
	v.Volume = math.Log2(level)
	v.Silent = false
}

// loadWav decodes a WAV file into an in-memory buffer at the output rate
func loadWav(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		s = beep.Resample(resampleQuality, format.SampleRate, sampleRate, streamer)
	}

	buf := beep.NewBuffer(outputFormat)
	buf.Append(s)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("stream %s: %w", filepath.Base(path), err)
	}
	return buf, nil
}
