// Package director runs the top-level presentation state machine
// It is driven once per frame from the frame goroutine and owns every scene
package director

import (
	"log"
	"sync/atomic"

	"github.com/lixenwraith/retro-terminal/audio"
	"github.com/lixenwraith/retro-terminal/engine"
	"github.com/lixenwraith/retro-terminal/render"
	"github.com/lixenwraith/retro-terminal/scene"
	"github.com/lixenwraith/retro-terminal/status"
)

// Presenter is the compositor surface the director draws through
type Presenter interface {
	Canvas() render.Canvas
	BeginPass()
	EndPass()
	PresentBase(time float64)
	PresentOverlay(time, closeAnim float64)
	PresentBlackout(fade float64)
}

// Scenes are the three scene instances, constructed once and reset in place
type Scenes struct {
	Login    scene.Scene
	Terminal scene.Scene
	Locate   scene.Scene
}

// Frame reports what one call to Director.Frame did
type Frame struct {
	Before, After State
	// Offscreen is set when a scene pass was begun this frame
	Offscreen bool
	Overlay   bool
	Blackout  bool
	CloseAnim float64
	Fade      float64
}

// Transitioned reports whether the state changed this frame
func (f Frame) Transitioned() bool { return f.Before != f.After }

// Director sequences scenes and transitions per its timeline
type Director struct {
	timeline *Timeline
	scenes   [stateCount]scene.Scene
	player   audio.Player
	out      Presenter

	state      State
	stateStart float64
	dwellStart float64
	dwelling   bool
	closeAnim  float64
	started    bool
	looping    bool
	cycles     int
	frames     int64

	metrics *metrics
}

// metrics are the registry cells the director writes each frame
type metrics struct {
	state     *status.AtomicString
	frames    *atomic.Int64
	cycles    *atomic.Int64
	closeAnim *status.AtomicFloat
	fade      *status.AtomicFloat
	looping   *atomic.Bool
}

// New creates a director at the timeline's initial state
func New(tl *Timeline, sc Scenes, player audio.Player, out Presenter) *Director {
	if player == nil {
		player = audio.NullPlayer{}
	}
	d := &Director{
		timeline: tl,
		player:   player,
		out:      out,
		state:    tl.Initial,
	}
	d.scenes[StateLogin] = sc.Login
	d.scenes[StateTerminal] = sc.Terminal
	d.scenes[StateLocate] = sc.Locate
	return d
}

// Attach publishes director counters into reg under the "director." prefix
func (d *Director) Attach(reg *status.Registry) {
	d.metrics = &metrics{
		state:     reg.Strings.Get("director.state"),
		frames:    reg.Ints.Get("director.frames"),
		cycles:    reg.Ints.Get("director.cycles"),
		closeAnim: reg.Floats.Get("director.close_anim"),
		fade:      reg.Floats.Get("director.fade"),
		looping:   reg.Bools.Get("director.looping"),
	}
	d.metrics.state.Store(d.state.String())
}

// State returns the current state
func (d *Director) State() State { return d.state }

// CloseAnim returns the current TV close progress, 0 open and 1 closed
func (d *Director) CloseAnim() float64 { return d.closeAnim }

// Cycles counts completed presentation loops
func (d *Director) Cycles() int { return d.cycles }

// Looping reports whether the background loop was started and not stopped
func (d *Director) Looping() bool { return d.looping }

// Frame advances the presentation by one frame and presents it
// Pass bracketing follows the state at frame start, presentation the state after any transition
func (d *Director) Frame(ft engine.FrameTime) Frame {
	now := ft.Now
	if !d.started {
		d.started = true
		d.stateStart = now
		d.runActions(d.timeline.Node(d.state).OnEnter)
	}

	f := Frame{Before: d.state}
	node := d.timeline.Node(d.state)

	if node.Effect != EffectBlackout {
		d.out.BeginPass()
		f.Offscreen = true
	}

	switch node.Kind {
	case KindScene:
		d.sceneFrame(node, ft)
	case KindTimed:
		elapsed := now - d.stateStart
		if node.Effect == EffectOverlay {
			d.closeAnim = node.Progress(elapsed)
		}
		if elapsed+1e-9 >= node.Duration {
			d.exit(node, now)
		}
	}

	f.After = d.state
	after := d.timeline.Node(d.state)
	if after.Effect != EffectBlackout {
		d.out.EndPass()
	}

	switch after.Effect {
	case EffectBlackout:
		f.Blackout = true
		f.Fade = after.Progress(now - d.stateStart)
		d.out.PresentBlackout(f.Fade)
	case EffectOverlay:
		f.Overlay = true
		d.out.PresentOverlay(now, d.closeAnim)
	default:
		d.out.PresentBase(now)
	}
	f.CloseAnim = d.closeAnim
	d.frames++
	d.publish(f)
	return f
}

func (d *Director) publish(f Frame) {
	m := d.metrics
	if m == nil {
		return
	}
	m.state.Store(d.state.String())
	m.frames.Store(d.frames)
	m.cycles.Store(int64(d.cycles))
	m.closeAnim.Set(f.CloseAnim)
	m.fade.Set(f.Fade)
	m.looping.Store(d.looping)
}

func (d *Director) sceneFrame(node *Node, ft engine.FrameTime) {
	sc := d.scenes[node.State]
	canvas := d.out.Canvas()

	sc.Update(ft)
	sc.Render(canvas, d.layout(node.State, canvas), ft.Now)

	if node.MinDwell > 0 && !d.dwelling {
		d.dwelling = true
		d.dwellStart = ft.Now
	}
	if !sc.Finished() {
		return
	}
	if node.MinDwell > 0 && ft.Now-d.dwellStart+1e-9 < node.MinDwell {
		return
	}
	d.exit(node, ft.Now)
}

// layout anchors login and locate at mid height and the terminal two rows from the top
func (d *Director) layout(s State, c render.Canvas) scene.Layout {
	ls := c.LineHeight()
	if s == StateTerminal {
		return scene.Layout{Y: 2 * ls, LineSpacing: ls}
	}
	return scene.Layout{Y: c.Height() / 2, LineSpacing: ls}
}

func (d *Director) exit(node *Node, now float64) {
	if node.HasCue {
		d.player.PlayCue(node.ExitCue)
	}
	d.runActions(node.OnExit)

	d.state = node.Next
	d.stateStart = now
	d.dwelling = false
	log.Printf("[director] %v -> %v at %.3fs", node.State, d.state, now)

	d.runActions(d.timeline.Node(d.state).OnEnter)
}

func (d *Director) runActions(actions []Action) {
	for _, a := range actions {
		switch a {
		case ActionStartLoop:
			if !d.looping {
				d.player.PlayLoop()
				d.looping = true
			}
		case ActionStopLoop:
			d.player.StopLoop()
			d.looping = false
		case ActionResetScenes:
			for _, sc := range d.scenes {
				if sc != nil {
					sc.Reset()
				}
			}
			d.cycles++
			log.Printf("[director] cycle %d complete, scenes reset", d.cycles)
		}
	}
}
