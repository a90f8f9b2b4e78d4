package physics

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/lixenwraith/tumble/parameter"
	"github.com/lixenwraith/tumble/vmath"
)

// Sentinel errors
var (
	ErrInvalidMass   = errors.New("body mass must be positive")
	ErrInvalidExtent = errors.New("body width and height must be positive")
	ErrNotFinite     = errors.New("body parameter is not finite")
	ErrUnknownKind   = errors.New("unknown body kind")
)

// lastID is the process-wide id sequence, ids follow creation order
var lastID atomic.Uint64

// Body is the physical state of one simulated rectangle
// Pos is the centre and is authoritative, the rectangle is always derived from it
type Body struct {
	ID     uint64
	Kind   Kind
	Solids KindSet

	Pos   vmath.Vec2
	Vel   vmath.Vec2
	Accel vmath.Vec2
	// Gravity is added to Accel.Y during Accelerate, +Y is down
	Gravity float64

	Half       vmath.Vec2
	Mass       float64
	Elasticity float64
	Depth      int

	// Distance is the Manhattan length traveled, used for sprite cycling only
	Distance float64
	// SkipAdjust keeps the velocity set during this tick instead of re-deriving it from displacement
	SkipAdjust bool

	prevPos vmath.Vec2 // position before the current tick
	lastVel vmath.Vec2 // velocity of the latest Move
}

// Option configures a body at construction
type Option func(*Body)

// WithVelocity sets the initial velocity
func WithVelocity(vx, vy float64) Option {
	return func(b *Body) { b.Vel = vmath.V(vx, vy) }
}

// WithAccel sets a constant acceleration on top of gravity
func WithAccel(ax, ay float64) Option {
	return func(b *Body) { b.Accel = vmath.V(ax, ay) }
}

// WithGravity overrides the default downward gravity, zero for static bodies
func WithGravity(g float64) Option {
	return func(b *Body) { b.Gravity = g }
}

// WithMass overrides the default (near immovable) mass
func WithMass(m float64) Option {
	return func(b *Body) { b.Mass = m }
}

// WithElasticity sets the restitution coefficient, 0 inelastic to 1 elastic
func WithElasticity(e float64) Option {
	return func(b *Body) { b.Elasticity = e }
}

// WithSolids sets the kinds this body reacts to on contact
func WithSolids(kinds ...Kind) Option {
	return func(b *Body) { b.Solids = NewKindSet(kinds...) }
}

// WithDepth sets the paint-order key
func WithDepth(d int) Option {
	return func(b *Body) { b.Depth = d }
}

// NewBody validates and creates a body centred at (x, y)
// Invalid mass, extents or non-finite numbers are rejected before an id is taken
func NewBody(kind Kind, x, y, width, height float64, opts ...Option) (*Body, error) {
	b := &Body{
		Kind:    kind,
		Pos:     vmath.V(x, y),
		Half:    vmath.V(width/2, height/2),
		Gravity: parameter.DefaultGravity,
		Mass:    parameter.DefaultMass,
		Depth:   parameter.DefaultDepth,
	}
	for _, opt := range opts {
		opt(b)
	}

	if !vmath.Finite(b.Pos[0], b.Pos[1], b.Vel[0], b.Vel[1], b.Accel[0], b.Accel[1],
		b.Gravity, width, height, b.Mass, b.Elasticity) {
		return nil, fmt.Errorf("%w: %s at (%v,%v)", ErrNotFinite, kind, x, y)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %s %vx%v", ErrInvalidExtent, kind, width, height)
	}
	if b.Mass <= 0 {
		return nil, fmt.Errorf("%w: %s mass %v", ErrInvalidMass, kind, b.Mass)
	}

	b.prevPos = b.Pos
	b.lastVel = b.Vel
	b.ID = lastID.Add(1)
	return b, nil
}

// Base returns the body itself, satisfying Element
func (b *Body) Base() *Body { return b }

// Rect returns the bounding rectangle at the current position
func (b *Body) Rect() vmath.AABB {
	return vmath.AABB{Center: b.Pos, Half: b.Half}
}

func (b *Body) Width() float64  { return 2 * b.Half[0] }
func (b *Body) Height() float64 { return 2 * b.Half[1] }

// Solid reports whether contacts with kind k are reacted to
func (b *Body) Solid(k Kind) bool { return b.Solids.Has(k) }

// SetPosition moves the centre
func (b *Body) SetPosition(x, y float64) { b.Pos = vmath.V(x, y) }

// Shift translates the centre by (dx, dy)
func (b *Body) Shift(dx, dy float64) { b.Pos = b.Pos.Add(vmath.V(dx, dy)) }

// PrevPosition returns the position recorded by the latest Accelerate
func (b *Body) PrevPosition() vmath.Vec2 { return b.prevPos }

// LastVelocity returns the velocity the body had at its latest Move
// The resolver uses it as the pre-collision velocity of the other body
func (b *Body) LastVelocity() vmath.Vec2 { return b.lastVel }

// Accelerate records the pre-tick position and integrates acceleration and gravity
func (b *Body) Accelerate(dt float64) {
	b.prevPos = b.Pos
	b.Vel[0] += b.Accel[0] * dt
	b.Vel[1] += (b.Accel[1] + b.Gravity) * dt
}

// Move integrates position over dt and records the velocity used
func (b *Body) Move(dt float64) {
	d := b.Vel.Mul(dt)
	b.Pos = b.Pos.Add(d)
	b.Distance += vmath.Manhattan(d)
	b.lastVel = b.Vel
}

// AdjustSpeed re-derives velocity from this tick's displacement unless SkipAdjust is set
// The flag is consumed either way
func (b *Body) AdjustSpeed(dt float64) {
	if b.SkipAdjust {
		b.SkipAdjust = false
		return
	}
	b.Vel = b.Pos.Sub(b.prevPos).Mul(1 / dt)
}

// SnapTo places the contacted edge exactly on the contact coordinate
func (b *Body) SnapTo(side Side, where float64) {
	switch side {
	case SideLeft:
		b.Pos[0] = where + b.Half[0]
	case SideRight:
		b.Pos[0] = where - b.Half[0]
	case SideTop:
		b.Pos[1] = where + b.Half[1]
	case SideBottom:
		b.Pos[1] = where - b.Half[1]
	}
}

// UndoCrossMotion removes the movement along the axis perpendicular to side
// made during the overtime part of the tick
func (b *Body) UndoCrossMotion(side Side, overtime float64) {
	if side.Horizontal() {
		b.Pos[1] -= b.Vel[1] * overtime
	} else {
		b.Pos[0] -= b.Vel[0] * overtime
	}
}

// React is the default contact response: elastic exchange along the contact axis
// scaled by elasticity, edge snapped to the contact, cross-axis overtime undone
func (b *Body) React(c Contact) bool {
	if !b.Solid(c.Other.Kind) {
		return false
	}
	b.SkipAdjust = true

	if c.Side.Horizontal() {
		v := vmath.ElasticVelocity(b.Vel[0], b.Mass, c.Other.lastVel[0], c.Other.Mass)
		b.SnapTo(c.Side, c.Where)
		b.Vel[0] = v * b.Elasticity
	} else {
		v := vmath.ElasticVelocity(b.Vel[1], b.Mass, c.Other.lastVel[1], c.Other.Mass)
		b.SnapTo(c.Side, c.Where)
		b.Vel[1] = v * b.Elasticity
	}
	b.UndoCrossMotion(c.Side, c.Overtime)
	return true
}

func (b *Body) String() string {
	return fmt.Sprintf("%s %d at %.2f,%.2f v=%.2f,%.2f", b.Kind, b.ID, b.Pos[0], b.Pos[1], b.Vel[0], b.Vel[1])
}
