package entity

import (
	"github.com/lixenwraith/tumble/audio"
	"github.com/lixenwraith/tumble/parameter"
	"github.com/lixenwraith/tumble/physics"
	"github.com/lixenwraith/tumble/render"
)

// Rock falls and stops dead on contact instead of bouncing
type Rock struct {
	physics.Body
	sound Sounder
}

// NewRock creates a rock centred at (x, y), snd may be nil
func NewRock(x, y, vx, vy float64, snd Sounder) (*Rock, error) {
	b, err := physics.NewBody(physics.KindRock, x, y, parameter.RockSize, parameter.RockSize,
		physics.WithVelocity(vx, vy),
		physics.WithSolids(physics.KindRock, physics.KindGround))
	if err != nil {
		return nil, err
	}
	return &Rock{Body: *b, sound: snd}, nil
}

// React zeroes velocity along the contact axis
// Landing on ground with vy above half the gravity constant plays a cue, heavy above the full constant
func (r *Rock) React(c physics.Contact) bool {
	if !r.Solid(c.Other.Kind) {
		return false
	}
	r.SkipAdjust = true
	oldVy := r.Vel[1]

	r.SnapTo(c.Side, c.Where)
	if c.Side.Horizontal() {
		r.Vel[0] = 0
	} else {
		r.Vel[1] = 0
	}
	r.UndoCrossMotion(c.Side, c.Overtime)

	if c.Other.Kind == physics.KindGround && oldVy > 0.5*r.Gravity {
		if oldVy > r.Gravity {
			play(r.sound, audio.CueRockHeavy)
		} else {
			play(r.sound, audio.CueRockLight)
		}
	}
	return true
}

func (r *Rock) Paint(c *render.Canvas) {
	c.FillRect(r.Rect(), '▓', fg(render.RgbRock))
}
