// Package audio plays the board's sound effects through the system
// speaker. A Player that fails to open the device stays silent.
package audio

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-jewels/internal/games/jewels/core"
)

const sampleRate = beep.SampleRate(44100)

// Player mixes sound effects onto the speaker. It implements
// core.SoundPlayer.
type Player struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	volume  float64
	started bool
	logger  *log.Logger
}

var _ core.SoundPlayer = (*Player)(nil)

// NewPlayer returns a player at the given linear volume. Call Start to
// open the audio device.
func NewPlayer(volume float64, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default().WithPrefix("audio")
	}
	return &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
		logger: logger,
	}
}

// Start opens the speaker. On failure the player keeps working as a no-op.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		p.logger.Warn("audio unavailable, continuing without sound", "err", err)
		return err
	}
	speaker.Play(p.mixer)
	p.started = true
	return nil
}

// PlaySound queues a sound effect.
func (p *Player) PlaySound(id core.SoundID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started {
		return
	}
	s := Sound(id, sampleRate, p.volume)
	if s == nil {
		p.logger.Debug("unknown sound", "id", id)
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// SetVolume changes the volume of sounds queued from now on.
func (p *Player) SetVolume(volume float64) {
	p.mu.Lock()
	p.volume = volume
	p.mu.Unlock()
}

// Close stops all playing sounds.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started {
		return
	}
	speaker.Clear()
	p.started = false
}
