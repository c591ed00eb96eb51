package audio

// Player is the audio capability consumed by the director and scenes
// Calls are fire-and-forget; the most recent loop call wins
type Player interface {
	PlayCue(c Cue)
	PlayLoop()
	StopLoop()
	SetLoopVolume(v float64)
}

// NullPlayer discards every call, used for --mute
type NullPlayer struct{}

func (NullPlayer) PlayCue(Cue)           {}
func (NullPlayer) PlayLoop()             {}
func (NullPlayer) StopLoop()             {}
func (NullPlayer) SetLoopVolume(float64) {}
