package audio

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/lixenwraith/tumble/parameter"
)

// Player mixes impact cues onto the speaker
// Every method is safe on an uninitialized or nil player, the game then runs silent
type Player struct {
	mu          sync.Mutex
	cfg         *AudioConfig
	mixer       *beep.Mixer
	initialized bool
	offline     bool

	now      func() time.Time
	lastPlay map[Cue]time.Time
	played   uint64
}

// NewPlayer creates a player, nil cfg loads the environment configuration
func NewPlayer(cfg *AudioConfig) *Player {
	if cfg == nil {
		cfg = LoadAudioConfig()
	}
	return &Player{
		cfg:      cfg,
		mixer:    &beep.Mixer{},
		now:      time.Now,
		lastPlay: make(map[Cue]time.Time),
	}
}

// NewOfflinePlayer creates a ready player that is not attached to a speaker
// The caller pulls mixed audio through Stream
func NewOfflinePlayer(cfg *AudioConfig) *Player {
	p := NewPlayer(cfg)
	p.offline = true
	p.initialized = true
	return p
}

// Stream drains the mix of an offline player
func (p *Player) Stream(samples [][2]float64) (n int, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mixer.Stream(samples)
}

func (p *Player) Err() error { return nil }

// Pending returns the number of cues still sounding
func (p *Player) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ownsSpeaker() {
		speaker.Lock()
		defer speaker.Unlock()
	}
	return p.mixer.Len()
}

// Initialize opens the speaker, disabled audio is not an error
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || !p.cfg.Enabled {
		return nil
	}

	rate := beep.SampleRate(p.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	log.Printf("[AUDIO] speaker ready at %d Hz", p.cfg.SampleRate)
	return nil
}

// Play queues a cue, repeats of the same cue inside MinCueGap are dropped
func (p *Player) Play(cue Cue) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	now := p.now()
	if last, ok := p.lastPlay[cue]; ok && now.Sub(last) < parameter.MinCueGap {
		return
	}
	s := NewCueStreamer(cue, p.cfg)
	if s == nil {
		return
	}
	p.lastPlay[cue] = now
	p.played++

	if p.ownsSpeaker() {
		speaker.Lock()
		p.mixer.Add(s)
		speaker.Unlock()
		return
	}
	p.mixer.Add(s)
}

// Played returns the number of cues accepted so far
func (p *Player) Played() uint64 {
	if p == nil {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played
}

// Cleanup stops all cues and releases the speaker
func (p *Player) Cleanup() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	if p.ownsSpeaker() {
		speaker.Close()
	}
	p.mixer.Clear()
	p.initialized = false
}

// ownsSpeaker reports whether the mixer was handed to the speaker
func (p *Player) ownsSpeaker() bool {
	return p.initialized && !p.offline
}
