package scene

import (
	"math"

	"github.com/lixenwraith/tumble/engine"
	"github.com/lixenwraith/tumble/parameter"
	"github.com/lixenwraith/tumble/physics"
)

// prepaints maps definition names to hook constructors, the empty name means none
var prepaints = map[string]func(w *engine.World) engine.Prepaint{
	"":       nil,
	"follow": Follow,
}

// Follow keeps the first walker horizontally centred by sliding the whole scene
// Each body moves by its depth over DepthScale, giving parallax on trees
// The run ends once the walker has fallen two screens below the top
func Follow(w *engine.World) engine.Prepaint {
	var target *physics.Body
	for _, e := range w.Elements() {
		if k := e.Base().Kind; k == physics.KindWalker || k == physics.KindWalker2D {
			target = e.Base()
			break
		}
	}

	return func(w *engine.World) bool {
		if target == nil {
			return true
		}
		dx := target.Pos[0] - w.Width/2
		if math.Abs(dx) > 0 {
			for _, e := range w.Elements() {
				b := e.Base()
				b.Shift(-dx*float64(b.Depth)/parameter.DepthScale, 0)
			}
		}
		return target.Rect().Top() <= 2*w.Height
	}
}
