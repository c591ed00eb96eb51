package scene

import (
	"fmt"
	"math"

	"github.com/lixenwraith/retro-terminal/audio"
	"github.com/lixenwraith/retro-terminal/engine"
	"github.com/lixenwraith/retro-terminal/geodata"
	"github.com/lixenwraith/retro-terminal/render"
	"github.com/lixenwraith/retro-terminal/vmath"
)

// LocateMaps are the maps the locate scene draws, checked at construction
var LocateMaps = []string{
	geodata.MapWorld,
	geodata.MapGermany,
	geodata.MapSaarland,
	geodata.MapHTW,
	geodata.MapSimpleGermany,
	geodata.MapSimpleSaarland,
	geodata.MapSaarbruecken,
}

// locateStep is one zoom level of the locate sequence
type locateStep struct {
	label     string
	base      string  // map drawn under the radar
	highlight string  // pulsing outline once targeted, empty for none
	scale     float64 // map scale as a fraction of layout height
	bounds    geodata.Bounds
	lon, lat  float64

	// camera targets applied when this step is entered
	zoom, centerX, centerY float64
}

var locateSteps = [...]locateStep{
	{
		label: "Locating: Earth", base: geodata.MapWorld, highlight: geodata.MapSimpleGermany,
		scale: 0.02, bounds: geodata.BoundsGermany, lon: 10.4515, lat: 51.1657,
		zoom: 1.0, centerX: 0.5, centerY: 0.5,
	},
	{
		label: "Locating: Germany", base: geodata.MapGermany, highlight: geodata.MapSimpleSaarland,
		scale: 0.08, bounds: geodata.BoundsGermany, lon: 7.0, lat: 49.4,
		zoom: 5.0, centerX: 0.4, centerY: 0.6,
	},
	{
		label: "Locating: Saarbruecken", base: geodata.MapSaarland, highlight: geodata.MapSaarbruecken,
		scale: 0.04, bounds: geodata.BoundsSaarland, lon: 6.992, lat: 49.240,
		zoom: 10.0, centerX: 0.6, centerY: 0.4,
	},
	{
		label: "Locating: HTW Saar", base: geodata.MapHTW,
		scale: 0.02, bounds: geodata.BoundsHTW, lon: 6.973688439719524, lat: 49.23571585936071,
		zoom: 20.0, centerX: 0.5, centerY: 0.6,
	},
}

// LocateStepCount is the number of zoom steps
const LocateStepCount = len(locateSteps)

const (
	locateLerpRate      = 3.0
	locateSettleEps     = 0.01
	locateCharInterval  = 0.1
	locateStepDwell     = 8.0
	locateInitialZoom   = 0.5
	radarFadeTime       = 1.0
	radarRings          = 4
	radarRingSpacing    = 80.0
	radarRingSpeed      = 60.0
	radarScanRate       = 0.7
	radarScanReach      = 0.7
	radarScanSegments   = 32
	radarScanSweep      = math.Pi / 12
	radarCueInterval    = 1.43
	targetDelay         = 1.5
	targetSpeed         = 0.5
	targetCross         = 32.0
	highlightPeriod     = 0.7
	highlightWindow     = 0.15
	highlightPulse      = 1.05
	hudOffsetX          = 180.0
	hudOffsetY          = 40.0
	hudScale            = 0.7
	initialRadarCueTime = -100.0
)

var (
	colorMap       = render.RGBA(0.2, 1, 0.6, 0.7)
	colorRadar     = render.Opaque(1, 0.2, 0.2)
	colorScan      = render.Opaque(0, 1, 0)
	colorPath      = render.Opaque(1, 0.95, 0.4)
	colorHighlight = render.Opaque(0.9, 0.2, 0.2)
)

// Locate zooms through four map levels, sweeping a radar and targeting a coordinate at each
type Locate struct {
	cues CuePlayer
	maps [len(locateSteps)]struct{ base, highlight *geodata.Map }

	step      int
	finished  bool
	stepTimer float64 // accumulates only while the camera is settled
	charTimer float64
	charIndex int
	settled   bool

	zoom, targetZoom       float64
	centerX, targetCenterX float64
	centerY, targetCenterY float64

	lastRadarCue float64
}

// NewLocate creates the scene over a store holding every map in LocateMaps
func NewLocate(store *geodata.Store, cues CuePlayer) (*Locate, error) {
	if err := store.Require(LocateMaps...); err != nil {
		return nil, fmt.Errorf("locate scene: %w", err)
	}
	if cues == nil {
		cues = nopCues{}
	}
	l := &Locate{cues: cues}
	for i, s := range locateSteps {
		l.maps[i].base = store.MustMap(s.base)
		if s.highlight != "" {
			l.maps[i].highlight = store.MustMap(s.highlight)
		}
	}
	l.Reset()
	// The first entry starts zoomed out and grows in; later entries start at rest
	l.zoom = locateInitialZoom
	return l, nil
}

// Step returns the current step index
func (l *Locate) Step() int { return l.step }

// Label returns the full label of the current step
func (l *Locate) Label() string { return locateSteps[l.step].label }

// RevealedLabel returns the typed part of the current label
func (l *Locate) RevealedLabel() string { return locateSteps[l.step].label[:l.charIndex] }

// StepTimer returns the settled time accumulated in the current step
func (l *Locate) StepTimer() float64 { return l.stepTimer }

// Settled reports whether the camera reached its targets
func (l *Locate) Settled() bool { return l.settled }

// Camera returns the animated zoom and center
func (l *Locate) Camera() (zoom, centerX, centerY float64) {
	return l.zoom, l.centerX, l.centerY
}

// CameraTarget returns the zoom and center the camera is moving toward
func (l *Locate) CameraTarget() (zoom, centerX, centerY float64) {
	return l.targetZoom, l.targetCenterX, l.targetCenterY
}

// Update advances the camera, the label and the step sequence
// While settled it also sounds the radar sweep once per revolution
func (l *Locate) Update(ft engine.FrameTime) {
	if l.finished {
		return
	}
	dt := ft.Delta
	l.charTimer += dt

	l.zoom = vmath.Approach(l.zoom, l.targetZoom, locateLerpRate, dt)
	l.centerX = vmath.Approach(l.centerX, l.targetCenterX, locateLerpRate, dt)
	l.centerY = vmath.Approach(l.centerY, l.targetCenterY, locateLerpRate, dt)

	label := locateSteps[l.step].label
	if l.charIndex < len(label) && reached(l.charTimer, locateCharInterval) {
		l.charIndex++
		l.charTimer = 0
	}

	l.settled = vmath.Near(l.zoom, l.targetZoom, locateSettleEps) &&
		vmath.Near(l.centerX, l.targetCenterX, locateSettleEps) &&
		vmath.Near(l.centerY, l.targetCenterY, locateSettleEps)

	if !l.settled {
		l.stepTimer = 0
		return
	}
	if ft.Now-l.lastRadarCue >= radarCueInterval {
		l.cues.PlayCue(audio.CueSonar)
		l.lastRadarCue = ft.Now
	}
	if l.stepTimer > locateStepDwell && l.charIndex == len(label) {
		l.advance()
		return
	}
	l.stepTimer += dt
}

func (l *Locate) advance() {
	if l.step == len(locateSteps)-1 {
		l.finished = true
		return
	}
	l.step++
	next := locateSteps[l.step]
	l.targetZoom = next.zoom
	l.targetCenterX = next.centerX
	l.targetCenterY = next.centerY
	l.stepTimer = 0
	l.charIndex = 0
	l.settled = false
	l.cues.PlayCue(audio.CueKeystroke3)
}

// targeting returns the path progress toward the step target in [0,1]
func (l *Locate) targeting() float64 {
	if l.stepTimer <= targetDelay {
		return 0
	}
	return vmath.Clamp01((l.stepTimer - targetDelay) * targetSpeed)
}

// Render draws map, radar, target and HUD
func (l *Locate) Render(c render.Canvas, _ Layout, time float64) {
	c.Clear(render.ColorMapClear)

	w, h := c.Width(), c.Height()
	s := locateSteps[l.step]
	scale := h * s.scale
	midX, midY := w/2, h/2

	// map space offsets from the camera center to canvas coordinates
	project := func(x, y float64) (float64, float64) {
		return midX + x*l.zoom, midY - y*l.zoom
	}

	drawMap(c, l.maps[l.step].base, scale, 1, 1, project, colorMap)

	if !l.settled {
		return
	}

	fade := vmath.Clamp01(l.stepTimer / radarFadeTime)
	ring := colorRadar.WithAlpha(fade)
	sweep := vmath.Wrap(time*radarRingSpeed, radarRingSpacing)
	for i := 1; i <= radarRings; i++ {
		c.Circle(midX, midY, float64(i)*radarRingSpacing+sweep, 1, ring)
	}

	angle := vmath.Wrap(time*radarScanRate, 1) * 2 * math.Pi
	reach := math.Max(w, h) * radarScanReach
	scan := colorScan.WithAlpha(0.8 * fade)
	mid := vmath.Vec2{X: midX, Y: midY}
	// screen y grows downward, so angles are negated
	tip := vmath.V2Polar(mid, -angle, reach*l.zoom)
	c.Line(midX, midY, tip.X, tip.Y, 1, scan)
	for i := 0; i <= radarScanSegments; i++ {
		a := angle - radarScanSweep/2 + radarScanSweep*float64(i)/radarScanSegments
		tip = vmath.V2Polar(mid, -a, reach*l.zoom)
		c.Line(midX, midY, tip.X, tip.Y, 1, scan)
	}

	t := l.targeting()
	if t <= 0 {
		return
	}

	target := s.bounds.Normalize(s.lon, s.lat)
	px, py := project(target.X*scale*t, target.Y*scale*t)
	c.Line(midX, midY, px, py, 2, colorPath)

	c.Line(px-targetCross, py, px+targetCross, py, 1, colorRadar)
	c.Line(px, py-targetCross, px, py+targetCross, 1, colorRadar)
	pulse := math.Abs(math.Sin(time * 2))
	c.Circle(px, py, 24+8*pulse, 1, colorRadar)
	c.Circle(px, py, 4+pulse, 8, colorPath)

	if hl := l.maps[l.step].highlight; t >= 1 && hl != nil {
		grow := 1.0
		if vmath.Wrap(time, highlightPeriod) < highlightWindow {
			grow = highlightPulse
		}
		drawMap(c, hl, scale, grow, 5, project, colorHighlight)
	}

	hudX := l.centerX*w - hudOffsetX
	hudY := h - (l.centerY*h + h/(2*l.zoom) - hudOffsetY)
	hud := fmt.Sprintf("COORD: %.6f, %.6f   SIGNAL: %d%%", s.lon, s.lat, int(t*100))
	c.Text(hud, hudX, hudY, hudScale, colorRadar)
	c.Text(l.RevealedLabel(), hudX, hudY+hudOffsetY, 1, render.ColorText)
}

// drawMap strokes every polyline, each scaled by grow about its own centroid
func drawMap(c render.Canvas, m *geodata.Map, scale, grow, width float64,
	project func(x, y float64) (float64, float64), color render.Color) {
	var pts []vmath.Vec2
	for _, line := range m.Lines {
		if len(line) == 0 {
			continue
		}
		var center vmath.Vec2
		if grow != 1 {
			center = vmath.Centroid(line)
		}
		pts = pts[:0]
		for _, p := range line {
			g := vmath.ScaleAbout(p, center, grow)
			sx, sy := project(g.X*scale, g.Y*scale)
			pts = append(pts, vmath.Vec2{X: sx, Y: sy})
		}
		c.Polyline(pts, width, color)
	}
}

// Finished reports whether the last step has dwelled
func (l *Locate) Finished() bool { return l.finished }

// Reset returns to step zero at rest
func (l *Locate) Reset() {
	l.step = 0
	l.finished = false
	l.stepTimer = 0
	l.charTimer = 0
	l.charIndex = 0
	l.settled = false
	l.zoom, l.targetZoom = 1, 1
	l.centerX, l.targetCenterX = 0.5, 0.5
	l.centerY, l.targetCenterY = 0.5, 0.5
	l.lastRadarCue = initialRadarCueTime
}
