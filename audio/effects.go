package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/lixenwraith/tumble/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveNoise
)

// oscillator generates a fixed-length raw wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a finite wave streamer
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream of known length
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s with attack/release, the stream ends after duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if remaining := e.totalSamples - e.position; remaining < len(samples) {
		if remaining <= 0 {
			return 0, false
		}
		samples = samples[:remaining]
	}
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.releaseSamples > 0 && e.position >= releaseStart {
			vol = math.Min(vol, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s in a linear gain, zero or negative is silent since log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// thud mixes a low sine with noise, the body of both rock cues
func thud(freq float64, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	tone := NewOscillator(freq, duration, WaveSine, rate)
	noise := NewOscillator(0, duration, WaveNoise, rate)
	mixed := beep.Mix(
		newVolume(tone, 1-parameter.NoiseMix),
		newVolume(noise, parameter.NoiseMix),
	)
	return NewEnvelope(mixed, duration, attack, release, rate)
}

// CreateRockHeavySound is a deep thump for a hard landing
func CreateRockHeavySound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	s := thud(parameter.RockHeavyFreq, parameter.RockHeavyDuration,
		parameter.RockHeavyAttack, parameter.RockHeavyRelease, rate)
	return newVolume(s, cfg.CueVolumes[CueRockHeavy]*cfg.MasterVolume)
}

// CreateRockLightSound is a short tick for a soft landing
func CreateRockLightSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	s := thud(parameter.RockLightFreq, parameter.RockLightDuration,
		parameter.RockLightAttack, parameter.RockLightRelease, rate)
	return newVolume(s, cfg.CueVolumes[CueRockLight]*cfg.MasterVolume)
}

// CreateBlopSound is a soft sine pop followed by its octave
func CreateBlopSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	half := parameter.BlopDuration / 2

	note := func(freq float64) beep.Streamer {
		var src beep.Streamer
		sine, err := generators.SineTone(rate, freq)
		if err != nil {
			src = NewOscillator(freq, half, WaveSine, rate)
		} else {
			src = beep.Take(rate.N(half), sine)
		}
		return NewEnvelope(src, half, parameter.BlopAttack, parameter.BlopRelease/2, rate)
	}

	s := beep.Seq(note(parameter.BlopFreq), note(2*parameter.BlopFreq))
	return newVolume(s, cfg.CueVolumes[CueBlop]*cfg.MasterVolume)
}

// NewCueStreamer builds a fresh streamer for a cue, nil for unknown cues
func NewCueStreamer(cue Cue, cfg *AudioConfig) beep.Streamer {
	switch cue {
	case CueRockHeavy:
		return CreateRockHeavySound(cfg)
	case CueRockLight:
		return CreateRockLightSound(cfg)
	case CueBlop:
		return CreateBlopSound(cfg)
	default:
		return nil
	}
}
