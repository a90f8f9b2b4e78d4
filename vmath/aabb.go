package vmath

// AABB is an axis-aligned rectangle stored as centre and half extents
// Y grows downward, so Top < Bottom
type AABB struct {
	Center Vec2
	Half   Vec2
}

// NewAABB builds a rectangle from its centre and full size
func NewAABB(center Vec2, width, height float64) AABB {
	return AABB{Center: center, Half: Vec2{width / 2, height / 2}}
}

// FromCorner builds a rectangle from its top-left corner and full size
func FromCorner(x, y, width, height float64) AABB {
	return AABB{
		Center: Vec2{x + width/2, y + height/2},
		Half:   Vec2{width / 2, height / 2},
	}
}

func (r AABB) Left() float64   { return r.Center[0] - r.Half[0] }
func (r AABB) Right() float64  { return r.Center[0] + r.Half[0] }
func (r AABB) Top() float64    { return r.Center[1] - r.Half[1] }
func (r AABB) Bottom() float64 { return r.Center[1] + r.Half[1] }
func (r AABB) Width() float64  { return 2 * r.Half[0] }
func (r AABB) Height() float64 { return 2 * r.Half[1] }

// Overlaps reports strict interpenetration on both axes, touching edges do not count
func (r AABB) Overlaps(o AABB) bool {
	return r.Left() < o.Right() &&
		r.Right() > o.Left() &&
		r.Top() < o.Bottom() &&
		r.Bottom() > o.Top()
}

// Translate returns the rectangle moved by d
func (r AABB) Translate(d Vec2) AABB {
	r.Center = r.Center.Add(d)
	return r
}
