package physics

import (
	"cmp"
	"math"
	"slices"

	"github.com/lixenwraith/tumble/parameter"
)

// Collision is a contact candidate found after integration
type Collision struct {
	// Side is the face of Subject that was hit
	Side Side
	// Time is the estimated contact instant measured from the start of the tick
	Time float64
	// Where is the coordinate of the touching edges at that instant
	Where   float64
	Subject Element
	Other   Element
}

// FindCollisionSide estimates when and on which side subject met other during the last tick
//
// It only fires for pairs whose current (already integrated) rectangles overlap, then
// back-computes the pre-tick leading edges from each body's velocity and solves for the
// instant they coincided. Pairs fast enough to pass through each other within one tick
// never overlap here and produce no collision.
// Every side sharing the minimum time is returned.
func FindCollisionSide(subject, other Element, dt float64) []Collision {
	a, b := subject.Base(), other.Base()
	if !a.Rect().Overlaps(b.Rect()) {
		return nil
	}

	inf := math.Inf(1)
	tLeft, tRight, tTop, tBottom := inf, inf, inf, inf
	var leftA, rightA, topA, bottomA float64

	sw, sh := a.Half[0], a.Half[1]
	ow, oh := b.Half[0], b.Half[1]
	maxTime := parameter.MaxTimeFactor * dt
	dvx := a.Vel[0] - b.Vel[0]
	dvy := a.Vel[1] - b.Vel[1]

	if math.Abs(dvx) > parameter.MinDeltaSpeed {
		if dvx < 0 {
			leftA = a.Pos[0] - sw - a.Vel[0]*dt
			rightB := b.Pos[0] + ow - b.Vel[0]*dt
			tLeft = contactTime(rightB-leftA, dvx, maxTime)
		} else {
			rightA = a.Pos[0] + sw - a.Vel[0]*dt
			leftB := b.Pos[0] - ow - b.Vel[0]*dt
			tRight = contactTime(leftB-rightA, dvx, maxTime)
		}
	}

	// y is gated on displacement rather than speed
	if math.Abs(dvy)*dt > parameter.MinDeltaSpeed {
		if dvy > 0 {
			bottomA = a.Pos[1] + sh - a.Vel[1]*dt
			topB := b.Pos[1] - oh - b.Vel[1]*dt
			tBottom = contactTime(topB-bottomA, dvy, maxTime)
		} else {
			topA = a.Pos[1] - sh - a.Vel[1]*dt
			bottomB := b.Pos[1] + oh - b.Vel[1]*dt
			tTop = contactTime(bottomB-topA, dvy, maxTime)
		}
	}

	tMin := min(tLeft, tRight, tTop, tBottom)
	if math.IsInf(tMin, 1) {
		return nil
	}

	var out []Collision
	if tLeft == tMin {
		out = append(out, Collision{SideLeft, tLeft, leftA + tLeft*a.Vel[0], subject, other})
	}
	if tRight == tMin {
		out = append(out, Collision{SideRight, tRight, rightA + tRight*a.Vel[0], subject, other})
	}
	if tTop == tMin {
		out = append(out, Collision{SideTop, tTop, topA + tTop*a.Vel[1], subject, other})
	}
	if tBottom == tMin {
		out = append(out, Collision{SideBottom, tBottom, bottomA + tBottom*a.Vel[1], subject, other})
	}
	return out
}

// contactTime solves gap/dv, rejecting roots further than maxTime from the tick start
func contactTime(gap, dv, maxTime float64) float64 {
	t := gap / dv
	if math.Abs(t) > maxTime {
		return math.Inf(1)
	}
	return t
}

// Detect tests subject against every other element whose kind it is solid against
func Detect(subject Element, all []Element, dt float64) []Collision {
	self := subject.Base()
	var out []Collision
	for _, e := range all {
		o := e.Base()
		if o.ID == self.ID || !self.Solid(o.Kind) {
			continue
		}
		out = append(out, FindCollisionSide(subject, e, dt)...)
	}
	return out
}

// DetectAll runs Detect for every element, a mutually solid pair is reported from both sides
func DetectAll(all []Element, dt float64) []Collision {
	var out []Collision
	for _, e := range all {
		out = append(out, Detect(e, all, dt)...)
	}
	return out
}

// SortByWhere orders candidates by contact coordinate, ties keep detection order
func SortByWhere(cols []Collision) {
	slices.SortStableFunc(cols, func(a, b Collision) int {
		return cmp.Compare(a.Where, b.Where)
	})
}
