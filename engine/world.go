package engine

import (
	"cmp"
	"errors"
	"fmt"
	"log"
	"math"
	"slices"

	"github.com/lixenwraith/tumble/parameter"
	"github.com/lixenwraith/tumble/physics"
)

// Sentinel errors
var (
	ErrInvalidDelta = errors.New("step delta must be positive and finite")
	ErrIterationCap = errors.New("collision resolution did not converge")
)

// Stats describes the most recent step
type Stats struct {
	Steps      uint64 // completed steps since creation
	Passes     int    // detection passes of the last step
	Collisions int    // collisions resolved in the last step
	Bodies     int
}

// World owns the element set and runs the per-frame step
// Elements are kept in id order for simulation and in stable depth order for painting
type World struct {
	Width  float64
	Height float64

	elements   []physics.Element
	paintOrder []physics.Element

	maxPasses int
	logger    *log.Logger
	stats     Stats
}

// WorldOption configures a world at construction
type WorldOption func(*World)

// WithLogger routes step diagnostics to l
func WithLogger(l *log.Logger) WorldOption {
	return func(w *World) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithMaxPasses overrides the resolution loop safety cap
func WithMaxPasses(n int) WorldOption {
	return func(w *World) {
		if n > 0 {
			w.maxPasses = n
		}
	}
}

// NewWorld creates an empty world of the given logical size
func NewWorld(width, height float64, opts ...WorldOption) *World {
	w := &World{
		Width:     width,
		Height:    height,
		maxPasses: parameter.MaxCollisionPasses,
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Add registers elements, only valid during setup before the first step
func (w *World) Add(elems ...physics.Element) {
	w.elements = append(w.elements, elems...)
	slices.SortStableFunc(w.elements, func(a, b physics.Element) int {
		return cmp.Compare(a.Base().ID, b.Base().ID)
	})

	w.paintOrder = slices.Clone(w.elements)
	slices.SortStableFunc(w.paintOrder, func(a, b physics.Element) int {
		return cmp.Compare(a.Base().Depth, b.Base().Depth)
	})
	w.stats.Bodies = len(w.elements)
}

// Elements returns the simulation set in id order, callers must not reorder it
func (w *World) Elements() []physics.Element {
	return w.elements
}

// PaintOrder returns elements sorted by ascending depth, ties keep id order
func (w *World) PaintOrder() []physics.Element {
	return w.paintOrder
}

// Stats returns counters of the last step
func (w *World) Stats() Stats {
	return w.stats
}

// Step advances the simulation by dt seconds
// Integration runs for every element first, then collisions are resolved one at a time
// in ascending contact coordinate until none remain, finally velocities are re-derived
func (w *World) Step(dt float64) error {
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidDelta, dt)
	}

	for _, e := range w.elements {
		e.Accelerate(dt)
	}
	for _, e := range w.elements {
		e.Move(dt)
	}

	passes, resolved := 0, 0
	for {
		collisions := physics.DetectAll(w.elements, dt)
		passes++
		if len(collisions) == 0 {
			break
		}
		if passes > w.maxPasses {
			w.stats.Passes, w.stats.Collisions = passes, resolved
			first := collisions[0]
			w.logger.Printf("[ENGINE] resolution cap %d reached, %d pending, first %s %s vs %s",
				w.maxPasses, len(collisions), first.Side, first.Subject.Base(), first.Other.Base())
			return fmt.Errorf("%w after %d passes (%d collisions pending)", ErrIterationCap, w.maxPasses, len(collisions))
		}

		physics.SortByWhere(collisions)
		physics.Resolve(collisions[0], dt)
		resolved++
	}

	for _, e := range w.elements {
		e.Base().AdjustSpeed(dt)
	}

	w.stats.Steps++
	w.stats.Passes, w.stats.Collisions = passes, resolved
	return nil
}
