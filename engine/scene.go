package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/tumble/input"
	"github.com/lixenwraith/tumble/parameter"
	"github.com/lixenwraith/tumble/physics"
)

// ErrStopped reports that a controller or prepaint hook ended the run
var ErrStopped = errors.New("scene stopped")

// KeyHandler is implemented by elements that respond to key presses
// Returning false asks the scene to stop
type KeyHandler interface {
	HandleKey(k input.Key) bool
}

// Controller receives each key before the step, false vetoes the run
type Controller func(elems []physics.Element, k input.Key) bool

// Prepaint runs after the step and before rendering, false vetoes the run
type Prepaint func(w *World) bool

// Renderer presents a world after each frame
type Renderer interface {
	Render(w *World) error
}

// Observer receives the world after each frame, implementations must not retain it
type Observer interface {
	Observe(w *World)
}

// DefaultController forwards each key to every element implementing KeyHandler
// All handlers see the key, any false vetoes
func DefaultController(elems []physics.Element, k input.Key) bool {
	ok := true
	for _, e := range elems {
		if h, isHandler := e.(KeyHandler); isHandler {
			if !h.HandleKey(k) {
				ok = false
			}
		}
	}
	return ok
}

// Scene drives a world frame by frame: keys, step, prepaint, render, observe
type Scene struct {
	World      *World
	Clock      *Clock
	Controller Controller
	Prepaint   Prepaint
	Renderer   Renderer
	Observers  []Observer
	TickRate   int
}

// NewScene creates a scene over w with the system clock and the default controller
func NewScene(w *World) *Scene {
	return &Scene{
		World:      w,
		Clock:      NewClock(nil),
		Controller: DefaultController,
		TickRate:   parameter.DefaultTickRate,
	}
}

// Observe registers an observer, called in registration order
func (s *Scene) Observe(o Observer) {
	s.Observers = append(s.Observers, o)
}

// Frame runs one frame with the keys pressed since the previous one
// Returns ErrStopped when a hook vetoes, or the step error
func (s *Scene) Frame(keys []input.Key) error {
	for _, k := range keys {
		if k == input.KeyPause {
			s.Clock.Toggle()
			continue
		}
		if k == input.KeyQuit {
			return fmt.Errorf("%w: quit key", ErrStopped)
		}
		if s.Controller != nil && !s.Controller(s.World.Elements(), k) {
			return fmt.Errorf("%w: controller veto on %s", ErrStopped, k)
		}
	}

	dt := s.Clock.Tick()
	if dt > 0 {
		if err := s.World.Step(dt); err != nil {
			return err
		}
	}

	if s.Prepaint != nil && !s.Prepaint(s.World) {
		return fmt.Errorf("%w: prepaint veto", ErrStopped)
	}

	if s.Renderer != nil {
		if err := s.Renderer.Render(s.World); err != nil {
			return fmt.Errorf("render: %w", err)
		}
	}
	for _, o := range s.Observers {
		o.Observe(s.World)
	}
	return nil
}

// Run loops frames at the tick rate until ctx is done, a hook vetoes,
// the key channel closes or a step fails
// A veto or closed channel returns nil, cancellation returns the context error
func (s *Scene) Run(ctx context.Context, keys <-chan input.Key) error {
	rate := s.TickRate
	if rate <= 0 {
		rate = parameter.DefaultTickRate
	}
	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	var pending []input.Key
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case k, ok := <-keys:
			if !ok {
				return nil
			}
			pending = append(pending, k)
		case <-ticker.C:
			err := s.Frame(pending)
			pending = pending[:0]
			if errors.Is(err, ErrStopped) {
				return nil
			}
			if err != nil {
				return err
			}
		}
	}
}
