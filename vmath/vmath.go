package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec2 is the simulation vector type
type Vec2 = mgl64.Vec2

// V builds a Vec2
func V(x, y float64) Vec2 { return Vec2{x, y} }

// ElasticVelocity returns the post-collision velocity of body 1 in a perfectly elastic
// one-dimensional collision with body 2: (m1*v1 - m2*v1 + 2*m2*v2) / (m1+m2)
func ElasticVelocity(v1, m1, v2, m2 float64) float64 {
	return (m1*v1 - m2*v1 + 2*m2*v2) / (m1 + m2)
}

// Manhattan returns |x|+|y|
func Manhattan(v Vec2) float64 {
	return math.Abs(v[0]) + math.Abs(v[1])
}

// Finite reports whether every value is neither NaN nor infinite
func Finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// ApproxEqual compares with an absolute tolerance
func ApproxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// Quantize snaps v to a multiple of step using round-half-to-even, capped in magnitude at limit
func Quantize(v, step, limit float64) float64 {
	q := step * math.RoundToEven(v/step)
	return math.Copysign(math.Min(limit, math.Abs(q)), v)
}

// QuantizeUp snaps v to the multiple of step toward +Inf, capped in magnitude at limit
func QuantizeUp(v, step, limit float64) float64 {
	q := math.Abs(step * math.Ceil(v/step))
	return math.Copysign(math.Min(limit, q), v)
}
