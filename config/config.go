// Package config loads engine settings from YAML
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/tumble/parameter"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Config is the run configuration, command-line flags override loaded values
type Config struct {
	Scene         string        `yaml:"scene"`
	TickRate      int           `yaml:"tick_rate"`
	MaxPasses     int           `yaml:"max_passes"`
	MaxFrameDelta time.Duration `yaml:"max_frame_delta"`
	Headless      bool          `yaml:"headless"`
	Frames        int           `yaml:"frames,omitempty"`

	Audio  AudioConfig  `yaml:"audio"`
	Record RecordConfig `yaml:"record"`
	Stream StreamConfig `yaml:"stream"`
}

// AudioConfig toggles impact cues, environment variables still take precedence
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// RecordConfig enables the snapshot recorder
type RecordConfig struct {
	Path  string `yaml:"path,omitempty"`
	Every int    `yaml:"every"`
}

// StreamConfig enables the websocket spectator endpoint
type StreamConfig struct {
	Addr string `yaml:"addr,omitempty"`
	Path string `yaml:"path"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Scene:         "bounce",
		TickRate:      parameter.DefaultTickRate,
		MaxPasses:     parameter.MaxCollisionPasses,
		MaxFrameDelta: parameter.MaxFrameDelta,
		Audio: AudioConfig{
			Enabled: true,
			Volume:  parameter.DefaultMasterVolume,
		},
		Record: RecordConfig{Every: 1},
		Stream: StreamConfig{Path: "/ws"},
	}
}

// Load reads path over the defaults, a missing file yields the defaults
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values the engine cannot run with
func (c *Config) Validate() error {
	switch {
	case c.Scene == "":
		return fmt.Errorf("%w: scene is empty", ErrInvalidConfig)
	case c.TickRate <= 0:
		return fmt.Errorf("%w: tick_rate %d", ErrInvalidConfig, c.TickRate)
	case c.MaxPasses <= 0:
		return fmt.Errorf("%w: max_passes %d", ErrInvalidConfig, c.MaxPasses)
	case c.MaxFrameDelta < 0:
		return fmt.Errorf("%w: max_frame_delta %s", ErrInvalidConfig, c.MaxFrameDelta)
	case c.Frames < 0:
		return fmt.Errorf("%w: frames %d", ErrInvalidConfig, c.Frames)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: audio.volume %v outside 0..1", ErrInvalidConfig, c.Audio.Volume)
	case c.Record.Every <= 0:
		return fmt.Errorf("%w: record.every %d", ErrInvalidConfig, c.Record.Every)
	}
	return nil
}
