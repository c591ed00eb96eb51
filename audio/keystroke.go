package audio

import (
	"math/rand/v2"
)

// KeystrokeSink plays a random keystroke cue for every typed character
type KeystrokeSink struct {
	player Player
	rnd    *rand.Rand
}

// NewKeystrokeSink creates a sink with a deterministic variant sequence for the seed
func NewKeystrokeSink(p Player, seed uint64) *KeystrokeSink {
	return &KeystrokeSink{
		player: p,
		rnd:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Typed fires one keystroke cue
func (k *KeystrokeSink) Typed() {
	k.player.PlayCue(KeystrokeCues[k.rnd.IntN(len(KeystrokeCues))])
}
