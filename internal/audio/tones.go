package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/vovakirdan/tui-jewels/internal/games/jewels/core"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// note is one voice of a sound effect. Sweep shifts the pitch linearly
// over the note's length.
type note struct {
	freq    float64
	sweep   float64
	dur     time.Duration
	wave    Wave
	gain    float64
	release time.Duration
}

// voices lists the notes played in sequence for each sound.
var voices = map[core.SoundID][]note{
	core.SoundSelect:    {{freq: 660, dur: 60 * time.Millisecond, wave: WaveSine, gain: 0.5, release: 40 * time.Millisecond}},
	core.SoundDeselect:  {{freq: 440, sweep: -110, dur: 60 * time.Millisecond, wave: WaveSine, gain: 0.4, release: 40 * time.Millisecond}},
	core.SoundSwap:      {{freq: 330, sweep: 220, dur: 90 * time.Millisecond, wave: WaveSquare, gain: 0.25, release: 50 * time.Millisecond}},
	core.SoundMatch:     {{freq: 880, dur: 70 * time.Millisecond, wave: WaveSine, gain: 0.5}, {freq: 1320, dur: 120 * time.Millisecond, wave: WaveSine, gain: 0.4, release: 90 * time.Millisecond}},
	core.SoundSpawn:     {{freq: 520, dur: 30 * time.Millisecond, wave: WaveSine, gain: 0.2, release: 20 * time.Millisecond}},
	core.SoundPowerUp:   {{freq: 523, dur: 60 * time.Millisecond, wave: WaveSquare, gain: 0.3}, {freq: 659, dur: 60 * time.Millisecond, wave: WaveSquare, gain: 0.3}, {freq: 784, dur: 140 * time.Millisecond, wave: WaveSquare, gain: 0.3, release: 100 * time.Millisecond}},
	core.SoundCharge:    {{freq: 110, sweep: 660, dur: 600 * time.Millisecond, wave: WaveSaw, gain: 0.25, release: 100 * time.Millisecond}},
	core.SoundExplosion: {{dur: 300 * time.Millisecond, wave: WaveNoise, gain: 0.6, release: 250 * time.Millisecond}},
}

// Sound builds the streamer for a sound id, or nil for an unknown id.
func Sound(id core.SoundID, rate beep.SampleRate, volume float64) beep.Streamer {
	notes, ok := voices[id]
	if !ok {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, n.streamer(rate, uint64(id)))
	}
	return withVolume(beep.Seq(parts...), volume)
}

// streamer renders a note. Steady sine and square notes come from beep's
// tone generators; sweeps, saws, noise and faded tails need the oscillator.
func (n note) streamer(rate beep.SampleRate, seed uint64) beep.Streamer {
	if n.sweep == 0 && n.release == 0 {
		if tone := steadyTone(n, rate); tone != nil {
			return &effects.Gain{Streamer: beep.Take(rate.N(n.dur), tone), Gain: n.gain - 1}
		}
	}
	return &oscillator{
		note:  n,
		rate:  rate,
		total: rate.N(n.dur),
		fadeN: rate.N(n.release),
		noise: rand.New(rand.NewPCG(seed, uint64(n.freq))),
	}
}

func steadyTone(n note, rate beep.SampleRate) beep.Streamer {
	var (
		tone beep.Streamer
		err  error
	)
	switch n.wave {
	case WaveSine:
		tone, err = generators.SineTone(rate, n.freq)
	case WaveSquare:
		tone, err = generators.SquareTone(rate, n.freq)
	default:
		return nil
	}
	if err != nil {
		return nil
	}
	return tone
}

type oscillator struct {
	note
	rate  beep.SampleRate
	pos   int
	total int
	fadeN int
	phase float64
	noise *rand.Rand
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.pos >= o.total {
			return i, i > 0
		}

		var v float64
		switch o.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			v = 1
			if o.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (o.phase - 0.5)
		case WaveNoise:
			v = o.noise.Float64()*2 - 1
		}
		v *= o.gain * o.envelope()

		samples[i][0] = v
		samples[i][1] = v

		t := float64(o.pos) / float64(o.total)
		o.phase += (o.freq + o.sweep*t) / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.pos++
	}
	return len(samples), true
}

// envelope fades the tail of the note to avoid clicks.
func (o *oscillator) envelope() float64 {
	remaining := o.total - o.pos
	if o.fadeN <= 0 || remaining >= o.fadeN {
		return 1
	}
	return float64(remaining) / float64(o.fadeN)
}

func (o *oscillator) Err() error { return nil }

// withVolume scales a streamer by a linear factor in 0..1.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(min(vol, 1))}
}
