package director

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/retro-terminal/asset"
	"github.com/lixenwraith/retro-terminal/audio"
	"github.com/lixenwraith/retro-terminal/vmath"
)

// ErrTimeline marks an invalid transition table
var ErrTimeline = errors.New("invalid timeline")

// Kind selects what ends a state
type Kind int

const (
	// KindScene exits when the state's scene reports finished
	KindScene Kind = iota
	// KindTimed exits when its duration has elapsed
	KindTimed
)

// Effect selects how a state is presented
type Effect int

const (
	EffectNone Effect = iota
	EffectOverlay
	EffectBlackout
)

// Action is a side effect run on state entry or exit
type Action int

const (
	ActionStartLoop Action = iota
	ActionStopLoop
	ActionResetScenes
)

var actionNames = map[string]Action{
	"StartLoop":   ActionStartLoop,
	"StopLoop":    ActionStopLoop,
	"ResetScenes": ActionResetScenes,
}

var effectNames = map[string]Effect{
	"":         EffectNone,
	"none":     EffectNone,
	"overlay":  EffectOverlay,
	"blackout": EffectBlackout,
}

// timelineConfig is the TOML layout of a transition table
type timelineConfig struct {
	Initial string                  `toml:"initial"`
	States  map[string]*stateConfig `toml:"states"`
}

type stateConfig struct {
	Kind     string   `toml:"kind"`
	Next     string   `toml:"next"`
	Duration float64  `toml:"duration"`
	Easing   string   `toml:"easing"`
	Invert   bool     `toml:"invert"`
	Effect   string   `toml:"effect"`
	ExitCue  *int     `toml:"exit_cue"`
	MinDwell float64  `toml:"min_dwell"`
	OnEnter  []string `toml:"on_enter"`
	OnExit   []string `toml:"on_exit"`
}

// Node is one compiled state of the timeline
type Node struct {
	State    State
	Kind     Kind
	Next     State
	Duration float64
	Ease     vmath.EaseFunc
	// Invert reports progress as 1-ease(t), used by the rebuild states
	Invert   bool
	Effect   Effect
	ExitCue  audio.Cue
	HasCue   bool
	MinDwell float64
	OnEnter  []Action
	OnExit   []Action
}

// Progress returns eased progress for elapsed seconds in the state, clamped to [0,1]
func (n *Node) Progress(elapsed float64) float64 {
	if n.Duration <= 0 || n.Ease == nil {
		return 0
	}
	p := n.Ease(vmath.Clamp01(elapsed / n.Duration))
	if n.Invert {
		p = 1 - p
	}
	return p
}

// Timeline is the compiled transition table, one node per state
type Timeline struct {
	Initial State
	nodes   [stateCount]Node
}

// Node returns the compiled node for s
func (t *Timeline) Node(s State) *Node {
	return &t.nodes[s]
}

// DefaultTimeline compiles the embedded transition table
func DefaultTimeline() (*Timeline, error) {
	return ParseTimeline(asset.DefaultTimeline)
}

// LoadTimeline reads a transition table from path, or the embedded one when path is empty
func LoadTimeline(path string) (*Timeline, error) {
	if path == "" {
		return DefaultTimeline()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read timeline: %w", err)
	}
	tl, err := ParseTimeline(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Printf("[director] loaded timeline %s", path)
	return tl, nil
}

// ParseTimeline decodes and validates a TOML transition table
// Every state must be defined and the next links must form one cycle through all of them
func ParseTimeline(data string) (*Timeline, error) {
	var cfg timelineConfig
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTimeline, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown key %s", ErrTimeline, undecoded[0])
	}

	initial, ok := ParseState(cfg.Initial)
	if !ok {
		return nil, fmt.Errorf("%w: initial state %q not found", ErrTimeline, cfg.Initial)
	}

	// Sorted for a deterministic first error
	names := make([]string, 0, len(cfg.States))
	for name := range cfg.States {
		names = append(names, name)
	}
	sort.Strings(names)

	tl := &Timeline{Initial: initial}
	var defined [stateCount]bool
	for _, name := range names {
		s, ok := ParseState(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown state %q", ErrTimeline, name)
		}
		node, err := compileNode(s, cfg.States[name])
		if err != nil {
			return nil, fmt.Errorf("%w: state %q: %v", ErrTimeline, name, err)
		}
		tl.nodes[s] = node
		defined[s] = true
	}
	for s := State(0); s < stateCount; s++ {
		if !defined[s] {
			return nil, fmt.Errorf("%w: state %q not defined", ErrTimeline, s)
		}
	}

	if err := tl.checkCycle(); err != nil {
		return nil, err
	}
	return tl, nil
}

func compileNode(s State, cfg *stateConfig) (Node, error) {
	n := Node{State: s, MinDwell: cfg.MinDwell, Invert: cfg.Invert}

	switch cfg.Kind {
	case "scene":
		if !sceneStates[s] {
			return n, fmt.Errorf("state has no scene")
		}
		n.Kind = KindScene
	case "timed":
		if sceneStates[s] {
			return n, fmt.Errorf("scene state cannot be timed")
		}
		n.Kind = KindTimed
	default:
		return n, fmt.Errorf("unknown kind %q", cfg.Kind)
	}

	next, ok := ParseState(cfg.Next)
	if !ok {
		return n, fmt.Errorf("unknown next state %q", cfg.Next)
	}
	n.Next = next

	effect, ok := effectNames[cfg.Effect]
	if !ok {
		return n, fmt.Errorf("unknown effect %q", cfg.Effect)
	}
	n.Effect = effect

	if n.Kind == KindTimed {
		if cfg.Duration <= 0 {
			return n, fmt.Errorf("duration %v must be positive", cfg.Duration)
		}
		ease, ok := vmath.Easing(cfg.Easing)
		if !ok {
			return n, fmt.Errorf("unknown easing %q", cfg.Easing)
		}
		n.Duration = cfg.Duration
		n.Ease = ease
	} else if n.Effect != EffectNone {
		return n, fmt.Errorf("scene state cannot carry an effect")
	}

	if cfg.MinDwell < 0 {
		return n, fmt.Errorf("negative min_dwell %v", cfg.MinDwell)
	}

	if cfg.ExitCue != nil {
		cue := audio.Cue(*cfg.ExitCue)
		if !cue.Valid() {
			return n, fmt.Errorf("exit cue %d out of range", *cfg.ExitCue)
		}
		n.ExitCue = cue
		n.HasCue = true
	}

	var err error
	if n.OnEnter, err = compileActions(cfg.OnEnter); err != nil {
		return n, fmt.Errorf("on_enter: %w", err)
	}
	if n.OnExit, err = compileActions(cfg.OnExit); err != nil {
		return n, fmt.Errorf("on_exit: %w", err)
	}
	return n, nil
}

func compileActions(names []string) ([]Action, error) {
	actions := make([]Action, 0, len(names))
	for _, name := range names {
		a, ok := actionNames[name]
		if !ok {
			return nil, fmt.Errorf("unknown action %q", name)
		}
		actions = append(actions, a)
	}
	return actions, nil
}

// checkCycle verifies that following next from the initial state visits every state once
func (t *Timeline) checkCycle() error {
	var seen [stateCount]bool
	s := t.Initial
	for i := 0; i < int(stateCount); i++ {
		if seen[s] {
			return fmt.Errorf("%w: %q revisited before every state ran", ErrTimeline, s)
		}
		seen[s] = true
		s = t.nodes[s].Next
	}
	if s != t.Initial {
		return fmt.Errorf("%w: cycle does not return to %q", ErrTimeline, t.Initial)
	}
	return nil
}
