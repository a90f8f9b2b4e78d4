// Package snapshot captures world state for recording, replay and spectators
package snapshot

import (
	"fmt"
	"math"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/lixenwraith/tumble/engine"
	"github.com/lixenwraith/tumble/physics"
)

// BodyState is the wire form of one body
type BodyState struct {
	ID    uint64  `msgpack:"id"`
	Kind  string  `msgpack:"k"`
	X     float64 `msgpack:"x"`
	Y     float64 `msgpack:"y"`
	VX    float64 `msgpack:"vx"`
	VY    float64 `msgpack:"vy"`
	W     float64 `msgpack:"w"`
	H     float64 `msgpack:"h"`
	Depth int     `msgpack:"d"`
}

// State is one frame of a world, bodies in id order
type State struct {
	Step       uint64      `msgpack:"step"`
	Passes     int         `msgpack:"passes"`
	Collisions int         `msgpack:"hits"`
	Bodies     []BodyState `msgpack:"bodies"`
}

// round2 trims wire size, positions are in screen units
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Capture copies the world into a State, the result shares nothing with w
func Capture(w *engine.World) State {
	st := w.Stats()
	elems := w.Elements()
	s := State{
		Step:       st.Steps,
		Passes:     st.Passes,
		Collisions: st.Collisions,
		Bodies:     make([]BodyState, 0, len(elems)),
	}
	for _, e := range elems {
		b := e.Base()
		s.Bodies = append(s.Bodies, BodyState{
			ID:    b.ID,
			Kind:  b.Kind.String(),
			X:     round2(b.Pos[0]),
			Y:     round2(b.Pos[1]),
			VX:    round2(b.Vel[0]),
			VY:    round2(b.Vel[1]),
			W:     b.Width(),
			H:     b.Height(),
			Depth: b.Depth,
		})
	}
	return s
}

// Marshal encodes a state as a single msgpack value
func Marshal(s *State) ([]byte, error) {
	return msgpack.Marshal(s)
}

// Unmarshal decodes a state produced by Marshal
func Unmarshal(data []byte) (State, error) {
	var s State
	err := msgpack.Unmarshal(data, &s)
	return s, err
}

// Restore builds a static world showing a captured frame
// Bodies are inert stand-ins: gravity off, solid against nothing
func Restore(s State, width, height float64) (*engine.World, error) {
	w := engine.NewWorld(width, height)
	elems := make([]physics.Element, 0, len(s.Bodies))
	for _, bs := range s.Bodies {
		kind, err := physics.ParseKind(bs.Kind)
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", bs.ID, err)
		}
		b, err := physics.NewBody(kind, bs.X, bs.Y, bs.W, bs.H,
			physics.WithGravity(0),
			physics.WithVelocity(bs.VX, bs.VY),
			physics.WithDepth(bs.Depth))
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", bs.ID, err)
		}
		elems = append(elems, b)
	}
	w.Add(elems...)
	return w, nil
}
