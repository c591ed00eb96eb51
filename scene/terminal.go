package scene

import (
	"github.com/lixenwraith/retro-terminal/engine"
	"github.com/lixenwraith/retro-terminal/render"
)

// TerminalPhase is the terminal session sub-state
type TerminalPhase int

const (
	PhaseDirectory TerminalPhase = iota
	PhaseFileDelay
	PhaseFile
	PhaseDemoDelay
	PhaseCode
	PhaseOutput
)

var terminalPhaseNames = [...]string{
	"Directory",
	"FileDelay",
	"File",
	"DemoDelay",
	"Code",
	"Output",
}

func (p TerminalPhase) String() string {
	if p < 0 || int(p) >= len(terminalPhaseNames) {
		return "TerminalPhase(?)"
	}
	return terminalPhaseNames[p]
}

// CodeDemo is the program typed out and the output it prints
type CodeDemo struct {
	Code   []string
	Output []string
}

// DefaultDemo is the demo shown by the presentation
var DefaultDemo = CodeDemo{
	Code: []string{
		"#include <iostream>",
		"",
		"int main() {",
		"    std::cout << \"Projektarbeit: Einfuehrung in die Demoszene\" << std::endl;",
		"    std::cout << \"Teilnehmer: Christian Petry, Xudong Zhang\" << std::endl;",
		"    return 0;",
		"}",
	},
	Output: []string{
		"Projektarbeit: Einfuehrung in die Demoszene",
		"Teilnehmer: Christian Petry, Xudong Zhang",
	},
}

const (
	TerminalPrompt      = "user@retroterminal:~$ "
	TerminalDirCommand  = "cd RetroTerminal/"
	TerminalFilePrompt  = "user@retroterminal:~RetroTerminal$ "
	TerminalFileCommand = "./RetroTerminal"

	promptCharInterval = 0.1
	fileDelay          = 1.0
	demoDelay          = 0.5
	codeCharInterval   = 0.05
	codeLineInterval   = 0.5
	outputHold         = 2.0

	promptX = 10.0
	codeX   = 30.0
)

// Terminal types two shell commands, then a code demo and its output
// Timing is driven by absolute frame time
type Terminal struct {
	sink TypeSink
	demo CodeDemo

	phase     TerminalPhase
	now       float64
	dirChars  int
	fileChars int
	lastType  float64
	fileStart float64
	demoStart float64
	line      int
	lineChars int
	lastCode  float64
}

// NewTerminal creates a terminal scene for demo; sink may be nil
func NewTerminal(demo CodeDemo, sink TypeSink) *Terminal {
	if sink == nil {
		sink = nopSink{}
	}
	t := &Terminal{sink: sink, demo: demo}
	t.Reset()
	return t
}

// Phase returns the current sub-state
func (t *Terminal) Phase() TerminalPhase { return t.phase }

// DemoStart is the time the file command finished typing
func (t *Terminal) DemoStart() float64 { return t.demoStart }

// LastCodeTime is the time of the last code progress event
func (t *Terminal) LastCodeTime() float64 { return t.lastCode }

// Update advances the session; several phases may complete in one frame
func (t *Terminal) Update(ft engine.FrameTime) {
	now := ft.Now
	t.now = now

	if t.phase == PhaseDirectory && reached(now-t.lastType, promptCharInterval) {
		t.dirChars++
		t.lastType = now
		t.sink.Typed()
		if t.dirChars >= len(TerminalDirCommand) {
			t.phase = PhaseFileDelay
			t.fileStart = now
		}
	}

	if t.phase == PhaseFileDelay && reached(now-t.fileStart, fileDelay) {
		t.phase = PhaseFile
	}

	if t.phase == PhaseFile && reached(now-t.lastType, promptCharInterval) {
		t.fileChars++
		t.lastType = now
		t.sink.Typed()
		if t.fileChars >= len(TerminalFileCommand) {
			t.phase = PhaseDemoDelay
			t.demoStart = now
		}
	}

	if t.phase == PhaseDemoDelay && reached(now-t.demoStart, demoDelay) {
		t.phase = PhaseCode
		t.lastCode = t.demoStart + demoDelay
		if len(t.demo.Code) == 0 {
			t.phase = PhaseOutput
		}
	}

	if t.phase == PhaseCode {
		t.advanceCode(now)
	}
}

func (t *Terminal) advanceCode(now float64) {
	line := t.demo.Code[t.line]
	if t.lineChars < len(line) {
		if reached(now-t.lastCode, codeCharInterval) {
			t.lineChars++
			t.lastCode = now
			t.sink.Typed()
		}
		return
	}
	if reached(now-t.lastCode, codeLineInterval) {
		t.line++
		t.lineChars = 0
		t.lastCode = now
		if t.line >= len(t.demo.Code) {
			t.phase = PhaseOutput
		}
	}
}

// Render draws the session with the first prompt at l.Y
func (t *Terminal) Render(c render.Canvas, lay Layout, time float64) {
	color := render.ColorText
	ls := lay.LineSpacing
	y := lay.Y

	dir := TerminalPrompt + TerminalDirCommand[:t.dirChars]
	if t.phase == PhaseDirectory {
		dir += cursor(time, 8)
	}
	c.Text(dir, promptX, y, 1, color)

	if t.phase >= PhaseFileDelay {
		file := TerminalFilePrompt + TerminalFileCommand[:t.fileChars]
		if t.phase <= PhaseFile {
			file += cursor(time, 8)
		}
		c.Text(file, promptX, y+ls, 1, color)
	}

	if t.phase < PhaseCode {
		return
	}

	y += 4 * ls
	c.Text("Demo:", promptX, y, 1, color)
	y += ls
	for i := 0; i < t.line && i < len(t.demo.Code); i++ {
		c.Text(t.demo.Code[i], codeX, y, 1, color)
		y += ls
	}

	if t.phase == PhaseCode {
		line := t.demo.Code[t.line]
		typed := line[:t.lineChars]
		if t.lineChars < len(line) {
			typed += cursor(time, 2)
		}
		c.Text(typed, codeX, y, 1, color)
		return
	}

	y += ls / 2
	c.Text("Output:", promptX, y, 1, color)
	y += ls
	for _, out := range t.demo.Output {
		c.Text(out, codeX, y, 1, color)
		y += ls
	}
}

// Finished reports whether the output has been held long enough
func (t *Terminal) Finished() bool {
	return t.phase == PhaseOutput && reached(t.now-t.lastCode, outputHold)
}

// Reset returns to an empty prompt
func (t *Terminal) Reset() {
	t.phase = PhaseDirectory
	t.now = 0
	t.dirChars = 0
	t.fileChars = 0
	t.lastType = 0
	t.fileStart = 0
	t.demoStart = 0
	t.line = 0
	t.lineChars = 0
	t.lastCode = 0
}
