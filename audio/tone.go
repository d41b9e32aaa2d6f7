package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Focus chime shape: two rising sine notes
const (
	ChimeNote1Freq     = 659.25 // E5
	ChimeNote2Freq     = 987.77 // B5
	ChimeNote1Duration = 90 * time.Millisecond
	ChimeNote2Duration = 160 * time.Millisecond
	ChimeAttack        = 5 * time.Millisecond
	ChimeRelease       = 120 * time.Millisecond
	ChimeVolume        = 0.35
)

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// newEnvelope shapes s over duration with linear attack and release ramps
func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, sr beep.SampleRate) beep.Streamer {
	total := sr.N(duration)
	att := min(sr.N(attack), total)
	rel := min(sr.N(release), total-att)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: total - att - rel,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.totalSamples {
		return 0, false
	}
	if remaining := e.totalSamples - e.position; len(samples) > remaining {
		samples = samples[:remaining]
	}

	n, ok = e.streamer.Stream(samples)
	releaseStart := e.attackSamples + e.sustainSamples

	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; math.Log2(0) is -Inf so zero is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// note returns a shaped sine of freq lasting duration
func note(sr beep.SampleRate, freq float64, duration time.Duration) (beep.Streamer, error) {
	tone, err := generators.SineTone(sr, freq)
	if err != nil {
		return nil, err
	}
	return newEnvelope(beep.Take(sr.N(duration), tone), duration, ChimeAttack, ChimeRelease, sr), nil
}

// focusChime builds the two-note sequence played when a focus transition starts
func focusChime(sr beep.SampleRate) (beep.Streamer, error) {
	n1, err := note(sr, ChimeNote1Freq, ChimeNote1Duration)
	if err != nil {
		return nil, err
	}
	n2, err := note(sr, ChimeNote2Freq, ChimeNote2Duration)
	if err != nil {
		return nil, err
	}
	return newVolume(beep.Seq(n1, n2), ChimeVolume), nil
}
