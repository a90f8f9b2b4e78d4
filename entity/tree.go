package entity

import (
	"github.com/lixenwraith/tumble/parameter"
	"github.com/lixenwraith/tumble/physics"
	"github.com/lixenwraith/tumble/render"
	"github.com/lixenwraith/tumble/vmath"
)

// Tree is scenery, solid against nothing and never falling
// Depth doubles as scale so nearer trees are larger and scroll faster
type Tree struct {
	physics.Body
}

// NewTree plants a tree with its base at (x, y), depth is clamped to 1..20
func NewTree(x, y float64, depth int) (*Tree, error) {
	depth = min(max(depth, parameter.TreeMinDepth), parameter.TreeMaxDepth)
	scale := float64(depth) / parameter.DepthScale
	w, h := parameter.TreeWidth*scale, parameter.TreeHeight*scale

	b, err := physics.NewBody(physics.KindTree, x, y-h/2, w, h,
		physics.WithGravity(0), physics.WithDepth(depth))
	if err != nil {
		return nil, err
	}
	return &Tree{Body: *b}, nil
}

func (t *Tree) Paint(c *render.Canvas) {
	r := t.Rect()
	dim := float64(t.Depth) / parameter.TreeMaxDepth
	dim = 0.4 + 0.6*dim

	// Trunk is the lower third, a quarter of the width
	trunk := vmath.NewAABB(vmath.V(r.Center[0], r.Bottom()-r.Height()/6), r.Width()/4, r.Height()/3)
	crown := vmath.NewAABB(vmath.V(r.Center[0], r.Top()+r.Height()/3), r.Width(), r.Height()*2/3)

	c.FillRect(crown, '♣', fg(render.Dim(render.RgbTreeLeaves, dim)))
	c.FillRect(trunk, '║', fg(render.Dim(render.RgbTreeTrunk, dim)))
}
