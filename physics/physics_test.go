package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/lixenwraith/tumble/vmath"
)

const tol = 1e-9

// newTestBody creates a weightless-by-default ball-kind body, failing the test on error
func newTestBody(t *testing.T, kind Kind, x, y, size float64, opts ...Option) *Body {
	t.Helper()
	base := []Option{WithGravity(0), WithMass(1), WithElasticity(1)}
	b, err := NewBody(kind, x, y, size, size, append(base, opts...)...)
	if err != nil {
		t.Fatalf("NewBody: %v", err)
	}
	return b
}

func TestMirror(t *testing.T) {
	pairs := map[Side]Side{
		SideLeft:   SideRight,
		SideRight:  SideLeft,
		SideTop:    SideBottom,
		SideBottom: SideTop,
	}
	for in, want := range pairs {
		if got := Mirror(in); got != want {
			t.Errorf("Mirror(%s) = %s, want %s", in, got, want)
		}
		if Mirror(Mirror(in)) != in {
			t.Errorf("Mirror is not an involution for %s", in)
		}
		if in.Horizontal() != Mirror(in).Horizontal() {
			t.Errorf("Mirror changed axis of %s", in)
		}
	}
}

func TestParseKind(t *testing.T) {
	for k := KindDefault; k < kindCount; k++ {
		got, err := ParseKind(k.String())
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", k.String(), err)
		}
		if got != k {
			t.Errorf("ParseKind(%q) = %v, want %v", k.String(), got, k)
		}
	}

	if k, err := ParseKind(" Ground "); err != nil || k != KindGround {
		t.Errorf("ParseKind with spaces and case = %v, %v", k, err)
	}
	if _, err := ParseKind("dragon"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestKindSet(t *testing.T) {
	s := NewKindSet(KindRock, KindGround)
	if !s.Has(KindRock) || !s.Has(KindGround) {
		t.Errorf("set %s missing members", s)
	}
	if s.Has(KindBall) || s.Has(KindDefault) {
		t.Errorf("set %s has unexpected members", s)
	}
	if got := s.String(); got != "{ground,rock}" {
		t.Errorf("String() = %q", got)
	}
	if NewKindSet().Has(KindDefault) {
		t.Error("empty set reports membership")
	}
}

func TestNewBodyValidation(t *testing.T) {
	tests := []struct {
		name string
		w, h float64
		opts []Option
		want error
	}{
		{"zero mass", 10, 10, []Option{WithMass(0)}, ErrInvalidMass},
		{"negative mass", 10, 10, []Option{WithMass(-1)}, ErrInvalidMass},
		{"zero width", 0, 10, nil, ErrInvalidExtent},
		{"negative height", 10, -2, nil, ErrInvalidExtent},
		{"nan velocity", 10, 10, []Option{WithVelocity(math.NaN(), 0)}, ErrNotFinite},
		{"inf gravity", 10, 10, []Option{WithGravity(math.Inf(1))}, ErrNotFinite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBody(KindBall, 0, 0, tt.w, tt.h, tt.opts...)
			if !errors.Is(err, tt.want) {
				t.Fatalf("NewBody error = %v, want %v", err, tt.want)
			}
			if b != nil {
				t.Error("expected nil body on error")
			}
		})
	}
}

func TestNewBodyDefaults(t *testing.T) {
	b, err := NewBody(KindDefault, 1, 2, 4, 6)
	if err != nil {
		t.Fatal(err)
	}
	if b.Gravity != 200 || b.Mass != 10000 || b.Elasticity != 0 || b.Depth != 10 {
		t.Errorf("unexpected defaults: %+v", b)
	}
	if b.Width() != 4 || b.Height() != 6 {
		t.Errorf("size = %vx%v", b.Width(), b.Height())
	}
	if b.Solids != 0 {
		t.Errorf("default solids = %s, want empty", b.Solids)
	}
}

func TestNewBodyIDsFollowCreationOrder(t *testing.T) {
	a := newTestBody(t, KindBall, 0, 0, 1)
	b := newTestBody(t, KindBall, 0, 0, 1)
	c := newTestBody(t, KindBall, 0, 0, 1)
	if !(a.ID < b.ID && b.ID < c.ID) {
		t.Errorf("ids not increasing: %d %d %d", a.ID, b.ID, c.ID)
	}
}

func TestIntegration(t *testing.T) {
	b := newTestBody(t, KindBall, 0, 0, 2, WithGravity(200), WithVelocity(10, 0))

	b.Accelerate(0.1)
	if !vmath.ApproxEqual(b.Vel[1], 20, tol) || b.Vel[0] != 10 {
		t.Fatalf("after Accelerate vel = %v", b.Vel)
	}

	b.Move(0.1)
	if !vmath.ApproxEqual(b.Pos[0], 1, tol) || !vmath.ApproxEqual(b.Pos[1], 2, tol) {
		t.Fatalf("after Move pos = %v", b.Pos)
	}
	if !vmath.ApproxEqual(b.Distance, 3, tol) {
		t.Errorf("Distance = %v, want Manhattan 3", b.Distance)
	}
	if b.Rect().Center != b.Pos {
		t.Errorf("rect centre %v out of sync with %v", b.Rect().Center, b.Pos)
	}

	b.Shift(-1, 0) // clamp as a collision would
	b.AdjustSpeed(0.1)
	if !vmath.ApproxEqual(b.Vel[0], 0, tol) || !vmath.ApproxEqual(b.Vel[1], 20, tol) {
		t.Errorf("after AdjustSpeed vel = %v", b.Vel)
	}
}

func TestAdjustSpeedSkipIsConsumed(t *testing.T) {
	b := newTestBody(t, KindBall, 0, 0, 2, WithVelocity(5, 5))
	b.Accelerate(0.1)
	b.Move(0.1)
	b.Vel = vmath.V(-7, 0)
	b.SkipAdjust = true

	b.AdjustSpeed(0.1)
	if b.Vel != vmath.V(-7, 0) {
		t.Errorf("skipped adjust changed vel to %v", b.Vel)
	}
	if b.SkipAdjust {
		t.Error("skip flag not consumed")
	}

	b.AdjustSpeed(0.1)
	if !vmath.ApproxEqual(b.Vel[0], 5, tol) {
		t.Errorf("second adjust vel = %v, want re-derived 5", b.Vel)
	}
}

func TestFindCollisionSideHeadOn(t *testing.T) {
	// positions are post-integration: A moved from 36 to 46 at +100 over 0.1s
	a := newTestBody(t, KindBall, 46, 0, 10, WithVelocity(100, 0), WithSolids(KindBall))
	b := newTestBody(t, KindBall, 50, 0, 10, WithSolids(KindBall))

	cols := FindCollisionSide(a, b, 0.1)
	if len(cols) != 1 {
		t.Fatalf("got %d collisions, want 1", len(cols))
	}
	c := cols[0]
	if c.Side != SideRight {
		t.Errorf("side = %s, want right", c.Side)
	}
	if !vmath.ApproxEqual(c.Time, 0.04, tol) {
		t.Errorf("time = %v, want 0.04", c.Time)
	}
	if !vmath.ApproxEqual(c.Where, 45, tol) {
		t.Errorf("where = %v, want 45", c.Where)
	}
	if c.Subject != Element(a) || c.Other != Element(b) {
		t.Error("subject/other swapped")
	}

	rev := FindCollisionSide(b, a, 0.1)
	if len(rev) != 1 || rev[0].Side != SideLeft || !vmath.ApproxEqual(rev[0].Where, 45, tol) {
		t.Errorf("reverse detection = %+v", rev)
	}
}

func TestFindCollisionSideVertical(t *testing.T) {
	ball := newTestBody(t, KindBall, 0, 90, 10, WithVelocity(0, 100))
	ground := newTestBody(t, KindGround, 0, 100, 200, WithMass(1e12))
	ground.Half = vmath.V(100, 10)

	cols := FindCollisionSide(ball, ground, 0.1)
	if len(cols) != 1 || cols[0].Side != SideBottom {
		t.Fatalf("collisions = %+v, want one bottom", cols)
	}
	if !vmath.ApproxEqual(cols[0].Where, 90, tol) || !vmath.ApproxEqual(cols[0].Time, 0.05, tol) {
		t.Errorf("where/time = %v/%v, want 90/0.05", cols[0].Where, cols[0].Time)
	}
}

func TestFindCollisionSideTie(t *testing.T) {
	a := newTestBody(t, KindBall, 46, 46, 10, WithVelocity(100, 100))
	b := newTestBody(t, KindBall, 50, 50, 10)

	cols := FindCollisionSide(a, b, 0.1)
	if len(cols) != 2 {
		t.Fatalf("got %d collisions, want 2 on a tie", len(cols))
	}
	if cols[0].Side != SideRight || cols[1].Side != SideBottom {
		t.Errorf("sides = %s,%s want right,bottom", cols[0].Side, cols[1].Side)
	}
}

func TestFindCollisionSideNoOverlap(t *testing.T) {
	a := newTestBody(t, KindBall, 10, 0, 10, WithVelocity(100, 0))
	b := newTestBody(t, KindBall, 50, 0, 10)
	if cols := FindCollisionSide(a, b, 0.1); cols != nil {
		t.Errorf("expected no collision, got %+v", cols)
	}
}

func TestFindCollisionSideTunneling(t *testing.T) {
	// moved from 0 to 100 in one tick, straight through the obstacle at 50
	a := newTestBody(t, KindBall, 100, 0, 10, WithVelocity(1000, 0))
	b := newTestBody(t, KindBall, 50, 0, 10)
	if cols := FindCollisionSide(a, b, 0.1); cols != nil {
		t.Errorf("tunneling pair produced %+v", cols)
	}
}

func TestFindCollisionSideRejectsFarRoot(t *testing.T) {
	// deep overlap with a crawl: the back-solved instant is far outside the tick
	a := newTestBody(t, KindBall, 0, 0, 10, WithVelocity(1, 0))
	b := newTestBody(t, KindBall, 5, 0, 10)
	if cols := FindCollisionSide(a, b, 0.1); cols != nil {
		t.Errorf("expected far root rejected, got %+v", cols)
	}
}

func TestFindCollisionSideIgnoresTinyRelativeSpeed(t *testing.T) {
	a := newTestBody(t, KindBall, 0, 0, 10, WithVelocity(30, 30))
	b := newTestBody(t, KindBall, 5, 5, 10, WithVelocity(30, 30))
	if cols := FindCollisionSide(a, b, 0.1); cols != nil {
		t.Errorf("co-moving pair produced %+v", cols)
	}
}

func TestDetectRespectsSolids(t *testing.T) {
	a := newTestBody(t, KindBall, 46, 0, 10, WithVelocity(100, 0), WithSolids(KindRock))
	b := newTestBody(t, KindRock, 50, 0, 10)
	all := []Element{a, b}

	cols := DetectAll(all, 0.1)
	if len(cols) != 1 || cols[0].Subject != Element(a) {
		t.Fatalf("DetectAll = %+v, want only a's view", cols)
	}

	a.Solids = 0
	if cols := DetectAll(all, 0.1); len(cols) != 0 {
		t.Errorf("non-solid pair produced %+v", cols)
	}
}

func TestDetectSkipsSelf(t *testing.T) {
	a := newTestBody(t, KindBall, 0, 0, 10, WithVelocity(100, 0), WithSolids(KindBall))
	if cols := Detect(a, []Element{a}, 0.1); len(cols) != 0 {
		t.Errorf("self collision reported: %+v", cols)
	}
}

func TestSortByWhereIsStable(t *testing.T) {
	a := newTestBody(t, KindBall, 0, 0, 1)
	b := newTestBody(t, KindBall, 0, 0, 1)
	cols := []Collision{
		{Side: SideTop, Where: 30, Subject: a},
		{Side: SideLeft, Where: 10, Subject: a},
		{Side: SideRight, Where: 10, Subject: b},
		{Side: SideBottom, Where: -5, Subject: b},
	}
	SortByWhere(cols)

	want := []Side{SideBottom, SideLeft, SideRight, SideTop}
	for i, s := range want {
		if cols[i].Side != s {
			t.Errorf("position %d = %s, want %s", i, cols[i].Side, s)
		}
	}
}

func TestResolveSwapsEqualMasses(t *testing.T) {
	a := newTestBody(t, KindBall, 46, 0, 10, WithVelocity(100, 0), WithSolids(KindBall))
	b := newTestBody(t, KindBall, 50, 0, 10, WithSolids(KindBall))

	ra, rb := Resolve(Collision{Side: SideRight, Time: 0.04, Where: 45, Subject: a, Other: b}, 0.1)
	if !ra || !rb {
		t.Fatalf("reactions = %v,%v want both", ra, rb)
	}
	if !vmath.ApproxEqual(a.Vel[0], 0, tol) || !vmath.ApproxEqual(b.Vel[0], 100, tol) {
		t.Errorf("velocities = %v, %v want 0, 100", a.Vel[0], b.Vel[0])
	}
	if !vmath.ApproxEqual(a.Pos[0], 40, tol) {
		t.Errorf("a snapped to %v, want 40", a.Pos[0])
	}
	// b snapped to 50 then re-moved for the 0.06s overtime
	if !vmath.ApproxEqual(b.Pos[0], 56, 1e-6) {
		t.Errorf("b at %v, want 56", b.Pos[0])
	}
	if !a.SkipAdjust || !b.SkipAdjust {
		t.Error("reacting bodies must skip velocity re-derivation")
	}
	if a.Rect().Overlaps(b.Rect()) {
		t.Error("pair still overlaps after resolution")
	}
}

func TestResolveOneSided(t *testing.T) {
	a := newTestBody(t, KindBall, 46, 0, 10, WithVelocity(100, 0), WithSolids(KindRock))
	rock := newTestBody(t, KindRock, 50, 0, 10, WithMass(1e12))

	ra, rb := Resolve(Collision{Side: SideRight, Time: 0.04, Where: 45, Subject: a, Other: rock}, 0.1)
	if !ra || rb {
		t.Fatalf("reactions = %v,%v want subject only", ra, rb)
	}
	if rock.Pos[0] != 50 || rock.Vel[0] != 0 || rock.SkipAdjust {
		t.Errorf("non-reacting body changed: %s", rock)
	}
}

func TestReactImmovableObstacleReverses(t *testing.T) {
	ball := newTestBody(t, KindBall, 0, 88, 10, WithVelocity(0, 100), WithSolids(KindGround))
	ground := newTestBody(t, KindGround, 0, 100, 20, WithMass(1e12))

	if !ball.React(Contact{Side: SideBottom, Overtime: 0.05, Where: 90, Other: ground}) {
		t.Fatal("expected reaction")
	}
	if !vmath.ApproxEqual(ball.Vel[1], -100, 1e-6) {
		t.Errorf("vy = %v, want -100", ball.Vel[1])
	}
	if !vmath.ApproxEqual(ball.Pos[1], 85, tol) {
		t.Errorf("y = %v, want bottom snapped to 90", ball.Pos[1])
	}
}

func TestReactScalesByElasticity(t *testing.T) {
	ball := newTestBody(t, KindBall, 0, 0, 10, WithVelocity(-50, 0), WithElasticity(0.5), WithSolids(KindGround))
	wall := newTestBody(t, KindGround, -10, 0, 10, WithMass(1e12))

	ball.React(Contact{Side: SideLeft, Where: -5, Other: wall})
	if !vmath.ApproxEqual(ball.Vel[0], 25, 1e-6) {
		t.Errorf("vx = %v, want 25", ball.Vel[0])
	}
	if !vmath.ApproxEqual(ball.Pos[0], 0, tol) {
		t.Errorf("x = %v, want left edge on -5", ball.Pos[0])
	}
}

func TestReactUndoesCrossMotion(t *testing.T) {
	ball := newTestBody(t, KindBall, 0, 10, 10, WithVelocity(100, 20), WithSolids(KindGround))
	wall := newTestBody(t, KindGround, 10, 0, 10, WithMass(1e12))

	ball.React(Contact{Side: SideRight, Overtime: 0.05, Where: 5, Other: wall})
	if !vmath.ApproxEqual(ball.Pos[1], 9, tol) {
		t.Errorf("y = %v, want 9 after undoing overtime fall", ball.Pos[1])
	}
}

func TestReactIgnoresNonSolid(t *testing.T) {
	ball := newTestBody(t, KindBall, 0, 0, 10, WithVelocity(100, 0), WithSolids(KindGround))
	tree := newTestBody(t, KindTree, 5, 0, 10)
	before := *ball

	if ball.React(Contact{Side: SideRight, Where: 0, Other: tree}) {
		t.Error("reacted to non-solid kind")
	}
	if ball.Pos != before.Pos || ball.Vel != before.Vel || ball.SkipAdjust {
		t.Error("non-solid contact mutated the body")
	}
}
