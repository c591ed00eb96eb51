package audio

import "fmt"

// Cue indexes a one-shot sound in the presentation cue set
type Cue int

const (
	CueKeystroke1 Cue = iota
	CueKeystroke2
	CueKeystroke3
	CueKeystroke4
	CueKeystroke5
	CueSonar
	CuePlasma
	CuePlasmaReverse

	CueCount
)

// KeystrokeCues are the typing variants picked at random per revealed character
var KeystrokeCues = []Cue{CueKeystroke1, CueKeystroke2, CueKeystroke3, CueKeystroke4, CueKeystroke5}

// BackgroundFile is the looping track loaded next to the cue files
const BackgroundFile = "background.wav"

var cueNames = [CueCount]string{
	"keystroke-01",
	"keystroke-02",
	"keystroke-03",
	"keystroke-04",
	"keystroke-05",
	"sonar",
	"plasma",
	"plasma_reverse",
}

// Valid reports whether c is inside the cue set
func (c Cue) Valid() bool {
	return c >= 0 && c < CueCount
}

func (c Cue) String() string {
	if !c.Valid() {
		return fmt.Sprintf("cue(%d)", int(c))
	}
	return cueNames[c]
}

// FileName is the asset file name for the cue
func (c Cue) FileName() string {
	return c.String() + ".wav"
}
