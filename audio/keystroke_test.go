package audio

import (
	"testing"
)

type recordingPlayer struct {
	cues []Cue
}

func (r *recordingPlayer) PlayCue(c Cue)           { r.cues = append(r.cues, c) }
func (r *recordingPlayer) PlayLoop()               {}
func (r *recordingPlayer) StopLoop()               {}
func (r *recordingPlayer) SetLoopVolume(v float64) {}

func TestKeystrokeSinkPlaysOnlyKeystrokes(t *testing.T) {
	rec := &recordingPlayer{}
	sink := NewKeystrokeSink(rec, 7)

	for i := 0; i < 500; i++ {
		sink.Typed()
	}

	if len(rec.cues) != 500 {
		t.Fatalf("expected one cue per Typed call, got %d", len(rec.cues))
	}

	seen := make(map[Cue]bool)
	for _, c := range rec.cues {
		if c < CueKeystroke1 || c > CueKeystroke5 {
			t.Fatalf("non-keystroke cue %s", c)
		}
		seen[c] = true
	}
	if len(seen) != len(KeystrokeCues) {
		t.Errorf("expected all %d variants over 500 draws, saw %d", len(KeystrokeCues), len(seen))
	}
}

func TestKeystrokeSinkDeterministic(t *testing.T) {
	a, b := &recordingPlayer{}, &recordingPlayer{}
	sa, sb := NewKeystrokeSink(a, 99), NewKeystrokeSink(b, 99)

	for i := 0; i < 50; i++ {
		sa.Typed()
		sb.Typed()
	}
	for i := range a.cues {
		if a.cues[i] != b.cues[i] {
			t.Fatalf("sequences diverge at %d", i)
		}
	}
}

func TestNullPlayer(t *testing.T) {
	var p Player = NullPlayer{}
	p.PlayCue(CuePlasma)
	p.PlayLoop()
	p.SetLoopVolume(2)
	p.StopLoop()
}
