package engine

import (
	"bytes"
	"errors"
	"io"
	"log"
	"math"
	"strings"
	"testing"

	"github.com/lixenwraith/tumble/physics"
	"github.com/lixenwraith/tumble/vmath"
)

const tol = 1e-9

func quietWorld(opts ...WorldOption) *World {
	return NewWorld(640, 480, append([]WorldOption{WithLogger(log.New(io.Discard, "", 0))}, opts...)...)
}

func newBall(t *testing.T, x, y, size float64, opts ...physics.Option) *physics.Body {
	t.Helper()
	base := []physics.Option{
		physics.WithGravity(0),
		physics.WithMass(1),
		physics.WithElasticity(1),
		physics.WithSolids(physics.KindBall, physics.KindGround),
	}
	b, err := physics.NewBody(physics.KindBall, x, y, size, size, append(base, opts...)...)
	if err != nil {
		t.Fatalf("NewBody: %v", err)
	}
	return b
}

func newGround(t *testing.T, x, y, w, h float64) *physics.Body {
	t.Helper()
	g, err := physics.NewBody(physics.KindGround, x, y, w, h, physics.WithGravity(0))
	if err != nil {
		t.Fatalf("NewBody: %v", err)
	}
	return g
}

func TestStepZeroGravityRest(t *testing.T) {
	w := quietWorld()
	b := newBall(t, 100, 100, 10)
	w.Add(b)

	for i := 0; i < 120; i++ {
		if err := w.Step(1.0 / 60); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if b.Pos != vmath.V(100, 100) || b.Vel != vmath.V(0, 0) {
		t.Errorf("resting body drifted: %s", b)
	}
	if b.Distance != 0 {
		t.Errorf("Distance = %v, want 0", b.Distance)
	}
}

func TestStepEqualMassSwap(t *testing.T) {
	w := quietWorld()
	a := newBall(t, 36, 0, 10, physics.WithVelocity(100, 0))
	b := newBall(t, 50, 0, 10)
	w.Add(a, b)

	if err := w.Step(0.1); err != nil {
		t.Fatalf("Step: %v", err)
	}

	// Contact at x=45 after 0.04s, remaining 0.06s spent at the new velocities
	if !vmath.ApproxEqual(a.Pos[0], 40, tol) || !vmath.ApproxEqual(a.Vel[0], 0, tol) {
		t.Errorf("a = %s, want x=40 vx=0", a)
	}
	if !vmath.ApproxEqual(b.Pos[0], 56, tol) || !vmath.ApproxEqual(b.Vel[0], 100, tol) {
		t.Errorf("b = %s, want x=56 vx=100", b)
	}
	if a.Rect().Overlaps(b.Rect()) {
		t.Error("bodies still overlap after step")
	}

	st := w.Stats()
	if st.Collisions != 1 || st.Passes != 2 || st.Steps != 1 {
		t.Errorf("Stats = %+v, want 1 collision, 2 passes, 1 step", st)
	}
}

func TestStepImmovableObstacleReverses(t *testing.T) {
	w := quietWorld()
	ball := newBall(t, 300, 91, 10, physics.WithVelocity(0, 100))
	ground := newGround(t, 320, 110, 640, 20)
	w.Add(ball, ground)

	if err := w.Step(0.1); err != nil {
		t.Fatalf("Step: %v", err)
	}

	want := vmath.ElasticVelocity(100, 1, 0, ground.Mass)
	if !vmath.ApproxEqual(ball.Vel[1], want, 1e-6) {
		t.Errorf("vy = %v, want %v", ball.Vel[1], want)
	}
	if ball.Vel[1] > -99 {
		t.Errorf("vy = %v, want close to -100", ball.Vel[1])
	}
	if ball.Rect().Bottom() > 100 {
		t.Errorf("ball bottom %v penetrates ground top 100", ball.Rect().Bottom())
	}
	if ground.Pos != vmath.V(320, 110) || ground.Vel != vmath.V(0, 0) {
		t.Errorf("ground moved: %s", ground)
	}
}

func TestStepSeparatedIsIdempotent(t *testing.T) {
	w := quietWorld()
	a := newBall(t, 100, 100, 10, physics.WithVelocity(10, 0))
	b := newBall(t, 300, 100, 10, physics.WithVelocity(-10, 0))
	w.Add(a, b)

	if err := w.Step(0.1); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if st := w.Stats(); st.Collisions != 0 || st.Passes != 1 {
		t.Errorf("Stats = %+v, want no collisions in one pass", st)
	}
	if !vmath.ApproxEqual(a.Pos[0], 101, tol) || !vmath.ApproxEqual(b.Pos[0], 299, tol) {
		t.Errorf("positions a=%v b=%v", a.Pos, b.Pos)
	}
	if !vmath.ApproxEqual(a.Vel[0], 10, tol) || !vmath.ApproxEqual(b.Vel[0], -10, tol) {
		t.Errorf("velocities a=%v b=%v", a.Vel, b.Vel)
	}
}

func TestStepTunneling(t *testing.T) {
	w := quietWorld()
	a := newBall(t, 0, 0, 10, physics.WithVelocity(1000, 0))
	b := newBall(t, 50, 0, 10)
	w.Add(a, b)

	if err := w.Step(0.1); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if w.Stats().Collisions != 0 {
		t.Error("fast body collided, expected it to pass through")
	}
	if !vmath.ApproxEqual(a.Pos[0], 100, tol) || b.Pos[0] != 50 {
		t.Errorf("a=%v b=%v", a.Pos, b.Pos)
	}
}

func TestStepNonSolidPassesThrough(t *testing.T) {
	w := quietWorld()
	ghost, err := physics.NewBody(physics.KindTree, 300, 91, 10, 10,
		physics.WithGravity(0), physics.WithVelocity(0, 100))
	if err != nil {
		t.Fatalf("NewBody: %v", err)
	}
	ground := newGround(t, 320, 110, 640, 20)
	w.Add(ghost, ground)

	if err := w.Step(0.1); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !vmath.ApproxEqual(ghost.Pos[1], 101, tol) || !vmath.ApproxEqual(ghost.Vel[1], 100, tol) {
		t.Errorf("ghost = %s, want y=101 vy=100", ghost)
	}
	if ground.Pos != vmath.V(320, 110) {
		t.Errorf("ground moved: %s", ground)
	}
}

func TestStepGravityFall(t *testing.T) {
	w := quietWorld()
	b, err := physics.NewBody(physics.KindRock, 100, 100, 10, 10)
	if err != nil {
		t.Fatalf("NewBody: %v", err)
	}
	w.Add(b)

	if err := w.Step(0.5); err != nil {
		t.Fatalf("Step: %v", err)
	}
	// v = 200*0.5 = 100 before the move, displacement 50
	if !vmath.ApproxEqual(b.Pos[1], 150, tol) || !vmath.ApproxEqual(b.Vel[1], 100, tol) {
		t.Errorf("falling body = %s", b)
	}
}

func TestStepInvalidDelta(t *testing.T) {
	for _, dt := range []float64{0, -0.1, math.NaN(), math.Inf(1)} {
		w := quietWorld()
		b := newBall(t, 10, 10, 4, physics.WithVelocity(5, 5))
		w.Add(b)

		err := w.Step(dt)
		if !errors.Is(err, ErrInvalidDelta) {
			t.Errorf("Step(%v) error = %v, want ErrInvalidDelta", dt, err)
		}
		if b.Pos != vmath.V(10, 10) || b.Vel != vmath.V(5, 5) {
			t.Errorf("Step(%v) touched body: %s", dt, b)
		}
	}
}

// frozen accepts every contact but never moves, so a collision is never cleared
type frozen struct {
	*physics.Body
}

func (f frozen) Move(float64) {}

func (f frozen) React(physics.Contact) bool { return true }

func TestStepIterationCap(t *testing.T) {
	var buf bytes.Buffer
	w := NewWorld(640, 480, WithLogger(log.New(&buf, "", 0)), WithMaxPasses(5))
	a := frozen{newBall(t, 46, 0, 10, physics.WithVelocity(100, 0))}
	g := newGround(t, 50, 0, 10, 10)
	w.Add(a, g)

	err := w.Step(0.1)
	if !errors.Is(err, ErrIterationCap) {
		t.Fatalf("Step error = %v, want ErrIterationCap", err)
	}
	if !strings.Contains(buf.String(), "resolution cap 5") {
		t.Errorf("cap not logged, log = %q", buf.String())
	}
	if w.Stats().Steps != 0 {
		t.Errorf("failed step counted: %+v", w.Stats())
	}
}

func TestWorldOrdering(t *testing.T) {
	w := quietWorld()
	far := newBall(t, 0, 0, 1, physics.WithDepth(20))
	near := newBall(t, 0, 0, 1, physics.WithDepth(5))
	mid := newBall(t, 0, 0, 1)
	back := newBall(t, 0, 0, 1, physics.WithDepth(5))

	w.Add(back, mid)
	w.Add(near, far)

	ids := func(elems []physics.Element) []uint64 {
		out := make([]uint64, len(elems))
		for i, e := range elems {
			out[i] = e.Base().ID
		}
		return out
	}

	gotSim := ids(w.Elements())
	wantSim := []uint64{far.ID, near.ID, mid.ID, back.ID}
	for i := range wantSim {
		if gotSim[i] != wantSim[i] {
			t.Fatalf("Elements order = %v, want %v", gotSim, wantSim)
		}
	}

	gotPaint := ids(w.PaintOrder())
	wantPaint := []uint64{near.ID, back.ID, mid.ID, far.ID}
	for i := range wantPaint {
		if gotPaint[i] != wantPaint[i] {
			t.Fatalf("PaintOrder = %v, want %v", gotPaint, wantPaint)
		}
	}
	if w.Stats().Bodies != 4 {
		t.Errorf("Bodies = %d", w.Stats().Bodies)
	}
}
