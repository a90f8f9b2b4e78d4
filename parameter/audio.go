package parameter

import "time"

// Audio hardware settings
const (
	AudioSampleRate     = 44100
	AudioBufferDuration = 100 * time.Millisecond
)

// MinCueGap drops repeats of the same cue inside this window
const MinCueGap = 50 * time.Millisecond

// Heavy rock impact
const (
	RockHeavyDuration = 180 * time.Millisecond
	RockHeavyAttack   = 2 * time.Millisecond
	RockHeavyRelease  = 150 * time.Millisecond
	RockHeavyFreq     = 70.0
)

// Light rock impact
const (
	RockLightDuration = 90 * time.Millisecond
	RockLightAttack   = 2 * time.Millisecond
	RockLightRelease  = 70 * time.Millisecond
	RockLightFreq     = 140.0
)

// Walker bump
const (
	BlopDuration = 70 * time.Millisecond
	BlopAttack   = 5 * time.Millisecond
	BlopRelease  = 40 * time.Millisecond
	BlopFreq     = 440.0
)

// Volume mix
const (
	DefaultMasterVolume = 0.6
	NoiseMix            = 0.35
)
