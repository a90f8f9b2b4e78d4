package audio

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/lixenwraith/tumble/parameter"
)

// AudioConfig holds playback settings
type AudioConfig struct {
	Enabled      bool
	MasterVolume float64
	SampleRate   int
	CueVolumes   map[Cue]float64
}

// DefaultAudioConfig returns settings used when nothing is overridden
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: parameter.DefaultMasterVolume,
		SampleRate:   parameter.AudioSampleRate,
		CueVolumes: map[Cue]float64{
			CueRockHeavy: 1.0,
			CueRockLight: 0.6,
			CueBlop:      0.5,
		},
	}
}

// LoadAudioConfig applies environment overrides on top of the defaults
func LoadAudioConfig() *AudioConfig {
	return DefaultAudioConfig().ApplyEnv()
}

// ApplyEnv overrides cfg from TUMBLE_* environment variables and returns it
func (cfg *AudioConfig) ApplyEnv() *AudioConfig {
	if enabled := os.Getenv("TUMBLE_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Master volume is 0-100
	if volume := os.Getenv("TUMBLE_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = clampUnit(float64(val) / 100.0)
		}
	}

	// Per-cue volumes as JSON, e.g. {"blop":0.2}
	if cueVols := os.Getenv("TUMBLE_CUE_VOLUMES"); cueVols != "" {
		var volumes map[string]float64
		if err := json.Unmarshal([]byte(cueVols), &volumes); err == nil {
			for name, v := range volumes {
				if cue, ok := parseCue(name); ok {
					cfg.CueVolumes[cue] = clampUnit(v)
				}
			}
		}
	}

	if sampleRate := os.Getenv("TUMBLE_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	return cfg
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
