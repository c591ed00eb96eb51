package audio

import "testing"

func TestCueFileNames(t *testing.T) {
	tests := []struct {
		cue  Cue
		file string
	}{
		{CueKeystroke1, "keystroke-01.wav"},
		{CueKeystroke5, "keystroke-05.wav"},
		{CueSonar, "sonar.wav"},
		{CuePlasma, "plasma.wav"},
		{CuePlasmaReverse, "plasma_reverse.wav"},
	}

	for _, tt := range tests {
		if got := tt.cue.FileName(); got != tt.file {
			t.Errorf("%d.FileName() = %q, want %q", int(tt.cue), got, tt.file)
		}
	}
}

func TestCueIndices(t *testing.T) {
	// Indices are part of the timeline config contract
	if CueSonar != 5 || CuePlasma != 6 || CuePlasmaReverse != 7 || CueCount != 8 {
		t.Fatal("cue indices changed")
	}
	if Cue(-1).Valid() || Cue(8).Valid() {
		t.Error("out of range cues must be invalid")
	}
	if got := Cue(9).String(); got != "cue(9)" {
		t.Errorf("String() = %q", got)
	}
}
