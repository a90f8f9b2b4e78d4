// Package status collects run metrics written by the frame loop and its collaborators
package status

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/tumble/engine"
)

// Metric keys written by Sampler
const (
	KeySteps      = "world.steps"
	KeyBodies     = "world.bodies"
	KeyHits       = "world.hits"
	KeyPeakPasses = "world.passes.peak"
	KeyFPS        = "frame.fps"
)

// Registry is the metrics facade, writers cache pointers and store atomically
type Registry struct {
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

func NewRegistry() *Registry {
	return &Registry{
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// Summary renders every metric as sorted key=value pairs, ints first
func (r *Registry) Summary() string {
	var parts []string
	r.Ints.Range(func(k string, v *atomic.Int64) {
		parts = append(parts, fmt.Sprintf("%s=%d", k, v.Load()))
	})
	r.Floats.Range(func(k string, v *AtomicFloat) {
		parts = append(parts, fmt.Sprintf("%s=%.1f", k, v.Get()))
	})
	return strings.Join(parts, " ")
}

// Sampler is an engine.Observer feeding world stats into a Registry
type Sampler struct {
	now  func() time.Time
	last time.Time

	steps, bodies, hits *atomic.Int64
	peak                *atomic.Int64
	fps                 *AtomicFloat
}

// NewSampler caches the metric pointers it writes
func NewSampler(r *Registry) *Sampler {
	return &Sampler{
		now:    time.Now,
		steps:  r.Ints.Get(KeySteps),
		bodies: r.Ints.Get(KeyBodies),
		hits:   r.Ints.Get(KeyHits),
		peak:   r.Ints.Get(KeyPeakPasses),
		fps:    r.Floats.Get(KeyFPS),
	}
}

// Observe records the latest step, collisions accumulate across frames
func (s *Sampler) Observe(w *engine.World) {
	st := w.Stats()
	prev := s.steps.Swap(int64(st.Steps))
	s.bodies.Store(int64(st.Bodies))
	if uint64(prev) != st.Steps {
		s.hits.Add(int64(st.Collisions))
	}
	if p := int64(st.Passes); p > s.peak.Load() {
		s.peak.Store(p)
	}

	now := s.now()
	if !s.last.IsZero() {
		if d := now.Sub(s.last); d > 0 {
			// smoothed frames per second of wall time
			inst := float64(time.Second) / float64(d)
			old := s.fps.Get()
			if old == 0 {
				s.fps.Set(inst)
			} else {
				s.fps.Set(old*0.9 + inst*0.1)
			}
		}
	}
	s.last = now
}
