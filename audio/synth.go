package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
)

// Waveform types
const (
	waveSine = iota
	waveSquare
	waveSaw
	waveNoise
)

// floatBuffer is mono float64 samples at unity gain
type floatBuffer []float64

// SynthBank is a generated stand-in for the WAV cue set
type SynthBank struct {
	Cues       [CueCount]*beep.Buffer
	Background *beep.Buffer
}

// NewSynthBank renders every cue and the background loop
func NewSynthBank() *SynthBank {
	rnd := rand.New(rand.NewPCG(1, 2))
	bank := &SynthBank{}

	for i, c := range KeystrokeCues {
		bank.Cues[c] = toBuffer(generateKeystroke(i, rnd), 0.5)
	}
	bank.Cues[CueSonar] = toBuffer(generateSonar(), 0.6)

	plasma := generatePlasma(rnd)
	bank.Cues[CuePlasma] = toBuffer(plasma, 0.5)
	bank.Cues[CuePlasmaReverse] = toBuffer(reverseFloatBuffer(plasma), 0.5)

	bank.Background = backgroundDrone()
	return bank
}

// durationToSamples converts seconds to sample count at the output rate
func durationToSamples(d float64) int {
	return int(d * float64(sampleRate))
}

// oscillator generates raw waveform samples
func oscillator(waveType int, freq float64, samples int, rnd *rand.Rand) floatBuffer {
	buf := make(floatBuffer, samples)
	phase := 0.0
	phaseInc := freq / float64(sampleRate)

	for i := 0; i < samples; i++ {
		switch waveType {
		case waveSine:
			buf[i] = math.Sin(2 * math.Pi * phase)
		case waveSquare:
			if phase < 0.5 {
				buf[i] = 1.0
			} else {
				buf[i] = -1.0
			}
		case waveSaw:
			buf[i] = 2.0 * (phase - 0.5)
		case waveNoise:
			buf[i] = rnd.Float64()*2 - 1
		}

		phase += phaseInc
		if phase >= 1.0 {
			phase -= 1.0
		}
	}
	return buf
}

// sweep generates a saw wave gliding exponentially from f0 to f1
func sweep(f0, f1 float64, samples int) floatBuffer {
	buf := make(floatBuffer, samples)
	phase := 0.0
	for i := range buf {
		t := float64(i) / float64(samples)
		freq := f0 * math.Pow(f1/f0, t)
		buf[i] = 2.0 * (phase - 0.5)
		phase += freq / float64(sampleRate)
		if phase >= 1.0 {
			phase -= 1.0
		}
	}
	return buf
}

// applyEnvelope applies linear attack/release in place
func applyEnvelope(buf floatBuffer, attackSec, releaseSec float64) {
	total := len(buf)
	attackSamples := durationToSamples(attackSec)
	releaseSamples := durationToSamples(releaseSec)

	releaseStart := total - releaseSamples
	if releaseStart < attackSamples {
		releaseStart = attackSamples
	}

	for i := 0; i < total; i++ {
		vol := 1.0
		if i < attackSamples && attackSamples > 0 {
			vol = float64(i) / float64(attackSamples)
		} else if i >= releaseStart && releaseSamples > 0 {
			vol = float64(total-i) / float64(releaseSamples)
		}
		buf[i] *= vol
	}
}

// applyDecay applies an exponential decay with the given time constant
func applyDecay(buf floatBuffer, tau float64) {
	for i := range buf {
		t := float64(i) / float64(sampleRate)
		buf[i] *= math.Exp(-t / tau)
	}
}

// mixFloatBuffers adds b into a (in place), extending a if needed
func mixFloatBuffers(a, b floatBuffer, bScale float64) floatBuffer {
	if len(b) > len(a) {
		extended := make(floatBuffer, len(b))
		copy(extended, a)
		a = extended
	}
	for i := range b {
		a[i] += b[i] * bScale
	}
	return a
}

func reverseFloatBuffer(a floatBuffer) floatBuffer {
	out := make(floatBuffer, len(a))
	for i, v := range a {
		out[len(a)-1-i] = v
	}
	return out
}

// toBuffer converts mono samples to a stereo beep buffer with gain, clipping to [-1,1]
func toBuffer(fb floatBuffer, gain float64) *beep.Buffer {
	pos := 0
	s := beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		if pos >= len(fb) {
			return 0, false
		}
		for i := range samples {
			if pos >= len(fb) {
				return i, true
			}
			v := math.Max(-1, math.Min(1, fb[pos]*gain))
			samples[i] = [2]float64{v, v}
			pos++
		}
		return len(samples), true
	})

	buf := beep.NewBuffer(outputFormat)
	buf.Append(s)
	return buf
}

// --- Cue generators (unity gain) ---

// generateKeystroke renders a short mechanical click, variant shifts the pitch
func generateKeystroke(variant int, rnd *rand.Rand) floatBuffer {
	samples := durationToSamples(0.035)

	noise := oscillator(waveNoise, 0, samples, rnd)
	applyEnvelope(noise, 0.001, 0.030)

	click := oscillator(waveSquare, 1800+float64(variant)*220, durationToSamples(0.012), rnd)
	applyEnvelope(click, 0.0005, 0.010)

	return mixFloatBuffers(noise, click, 0.4)
}

// generateSonar renders a ping with an octave overtone
func generateSonar() floatBuffer {
	samples := durationToSamples(0.9)

	fund := oscillator(waveSine, 1100, samples, nil)
	applyEnvelope(fund, 0.005, 0.05)
	applyDecay(fund, 0.25)

	over := oscillator(waveSine, 2200, samples, nil)
	applyEnvelope(over, 0.005, 0.05)
	applyDecay(over, 0.12)

	return mixFloatBuffers(fund, over, 0.2)
}

// generatePlasma renders a descending power-down sweep with noise
func generatePlasma(rnd *rand.Rand) floatBuffer {
	samples := durationToSamples(0.8)

	buf := sweep(900, 70, samples)
	noise := oscillator(waveNoise, 0, samples, rnd)
	buf = mixFloatBuffers(buf, noise, 0.15)
	applyEnvelope(buf, 0.01, 0.25)
	return buf
}

// backgroundDrone renders a seamless 4 second hum from two sine partials
func backgroundDrone() *beep.Buffer {
	const seconds = 4
	n := sampleRate.N(seconds * time.Second)

	low, err := generators.SineTone(sampleRate, 55)
	if err != nil {
		return toBuffer(make(floatBuffer, n), 0)
	}
	fifth, err := generators.SineTone(sampleRate, 82.5)
	if err != nil {
		return toBuffer(make(floatBuffer, n), 0)
	}

	mixed := beep.Mix(
		gainStreamer(low, 0.2),
		gainStreamer(fifth, 0.1),
	)

	buf := beep.NewBuffer(outputFormat)
	buf.Append(beep.Take(n, tremolo(mixed, 0.25)))
	return buf
}

func gainStreamer(s beep.Streamer, g float64) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n, ok := s.Stream(samples)
		for i := 0; i < n; i++ {
			samples[i][0] *= g
			samples[i][1] *= g
		}
		return n, ok
	})
}

// tremolo modulates amplitude with a slow sine LFO at freq Hz
func tremolo(s beep.Streamer, freq float64) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n, ok := s.Stream(samples)
		for i := 0; i < n; i++ {
			t := float64(pos) / float64(sampleRate)
			g := 0.6 + 0.4*math.Sin(2*math.Pi*freq*t)
			samples[i][0] *= g
			samples[i][1] *= g
			pos++
		}
		return n, ok
	})
}
