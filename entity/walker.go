package entity

import (
	"github.com/lixenwraith/tumble/audio"
	"github.com/lixenwraith/tumble/input"
	"github.com/lixenwraith/tumble/parameter"
	"github.com/lixenwraith/tumble/physics"
	"github.com/lixenwraith/tumble/render"
	"github.com/lixenwraith/tumble/vmath"
)

// Walker is the side-view player, it keeps walking and turns around at walls
type Walker struct {
	physics.Body
	sound Sounder
}

// NewWalker creates a walker centred at (x, y), snd may be nil
func NewWalker(x, y, vx, vy float64, snd Sounder) (*Walker, error) {
	b, err := physics.NewBody(physics.KindWalker, x, y, parameter.WalkerWidth, parameter.WalkerHeight,
		physics.WithVelocity(vx, vy),
		physics.WithMass(parameter.WalkerMass),
		physics.WithElasticity(0),
		physics.WithSolids(physics.KindGround, physics.KindRock, physics.KindWalker))
	if err != nil {
		return nil, err
	}
	return &Walker{Body: *b, sound: snd}, nil
}

func (w *Walker) grounded() bool { return w.Vel[1] == 0 }

// Accelerate snaps walking speed up to the next step while on the ground
func (w *Walker) Accelerate(dt float64) {
	if w.grounded() {
		w.Vel[0] = vmath.QuantizeUp(w.Vel[0], parameter.WalkerSpeedStep, parameter.WalkerMaxSpeed)
	}
	w.Body.Accelerate(dt)
}

// React bounces off side contacts at a fixed speed, vertical contacts use the default path
func (w *Walker) React(c physics.Contact) bool {
	if c.Side.Horizontal() && w.Solid(c.Other.Kind) {
		play(w.sound, audio.CueBlop)
		w.SkipAdjust = true
		if c.Side == physics.SideLeft {
			w.Vel[0] = parameter.WalkerReboundSpeed
		} else {
			w.Vel[0] = -parameter.WalkerReboundSpeed
		}
		return true
	}
	return w.Body.React(c)
}

// HandleKey steers only while grounded, escape on the ground quits
func (w *Walker) HandleKey(k input.Key) bool {
	if !w.grounded() {
		return true
	}
	switch k {
	case input.KeyEscape:
		return false
	case input.KeyJump:
		w.SkipAdjust = true
		w.Vel[1] = parameter.WalkerJumpSpeed
	case input.KeyLeft:
		w.Vel[0] -= parameter.WalkerSpeedStep
	case input.KeyRight:
		w.Vel[0] += parameter.WalkerSpeedStep
	}
	return true
}

// Frame returns the animation frame derived from distance walked
func (w *Walker) Frame() int {
	return int(w.Distance/parameter.WalkerStride) % parameter.WalkerFrames
}

// walkerLegs maps the frame cycle onto a stride, the cycle swings out and back
var walkerLegs = [parameter.WalkerFrames]rune{
	'║', '╽', '╽', '/', '/', 'λ', 'λ', 'Λ', 'Λ', 'Λ', 'λ', 'λ', '/', '/', '╽', '╽',
}

func (w *Walker) Paint(c *render.Canvas) {
	r := w.Rect()
	style := fg(render.RgbWalker)

	head := '◄'
	if w.Vel[0] > 0 {
		head = '►'
	}
	body := vmath.NewAABB(r.Center, r.Width(), r.Height()/2)
	c.FillRect(body, '█', style)
	c.Glyph(r.Center[0], r.Top()+1, head, style)
	c.Glyph(r.Center[0], r.Bottom()-1, walkerLegs[w.Frame()], style)
}
