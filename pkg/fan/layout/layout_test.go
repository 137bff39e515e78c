package layout

import (
	"math"
	"reflect"
	"testing"
)

const eps = 1e-6

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func deg(t Transform) float64 { return t.Degrees() }

func TestCalculateEmpty(t *testing.T) {
	for _, cfg := range []Config{
		{Width: 800, Height: 600, ItemWidth: 120, ItemHeight: 180, Spacing: 48},
		{Width: 800, Height: 600, ItemWidth: 120, ItemHeight: 180, Spacing: 48, MinRadius: 500, MaxAngle: 60},
	} {
		res := Calculate(nil, cfg)
		if len(res.Transforms) != 0 {
			t.Errorf("len(Transforms) = %d, want 0", len(res.Transforms))
		}
		if res.Radius != -1 {
			t.Errorf("Radius = %v, want -1", res.Radius)
		}
	}
}

func TestCalculateArcSymmetricAngles(t *testing.T) {
	// Spacing chosen so three items span exactly 60 degrees at radius 2000.
	cfg := Config{
		Width: 10000, Height: 3000,
		ItemWidth: 120, ItemHeight: 180,
		Spacing:   2000 * math.Pi / 3 / 2,
		MinRadius: 2000,
		MaxAngle:  60,
	}
	res := Calculate(Entries(3), cfg)

	want := []float64{30, 0, -30}
	for i, w := range want {
		if got := deg(res.Transforms[i]); !near(got, w, 1e-3) {
			t.Errorf("angle[%d] = %v, want %v", i, got, w)
		}
	}
	if !near(res.Radius, 2000, eps) {
		t.Errorf("Radius = %v, want 2000", res.Radius)
	}
	if res.Transforms[1].Angle != 0 {
		t.Errorf("middle angle = %v, want exactly 0", res.Transforms[1].Angle)
	}
}

func TestCalculateArcMirrorSymmetry(t *testing.T) {
	cfg := Config{
		Width: 1200, Height: 800,
		ItemWidth: 120, ItemHeight: 180,
		Spacing: 48, MinRadius: 300, MaxAngle: 90,
	}
	for n := 2; n <= 9; n++ {
		res := Calculate(Entries(n), cfg)
		for i := 0; i < n; i++ {
			a := res.Transforms[i].Angle
			b := res.Transforms[n-1-i].Angle
			if !near(a, -b, eps) {
				t.Errorf("n=%d: angle[%d] = %v, angle[%d] = %v, want mirrored", n, i, a, n-1-i, b)
			}
			ca := res.Transforms[i].Center()
			cb := res.Transforms[n-1-i].Center()
			if !near(ca.X-cfg.Width/2, cfg.Width/2-cb.X, 1e-6) || !near(ca.Y, cb.Y, 1e-6) {
				t.Errorf("n=%d: centers %v and %v not mirrored", n, ca, cb)
			}
		}
	}
}

func TestCalculateArcRadiusGrowsWithCount(t *testing.T) {
	cfg := Config{
		Width: 100000, Height: 800,
		ItemWidth: 120, ItemHeight: 180,
		Spacing: 48, MinRadius: 10, MaxAngle: 60,
	}
	// With a tiny minimum radius the fan always spans MaxAngle.
	for _, n := range []int{2, 5, 20} {
		res := Calculate(Entries(n), cfg)
		if got := res.HalfAngle * 2 * 180 / math.Pi; !near(got, 60, 1e-6) {
			t.Errorf("n=%d: span = %v, want 60", n, got)
		}
		wantR := 48 * float64(n-1) / (math.Pi / 3)
		if !near(res.Radius, wantR, 1e-6) {
			t.Errorf("n=%d: Radius = %v, want %v", n, res.Radius, wantR)
		}
	}
}

func TestCalculateArcFootprintFits(t *testing.T) {
	cfg := Config{
		Width: 600, Height: 800,
		ItemWidth: 120, ItemHeight: 180,
		Spacing: 48, MinRadius: 400, MaxAngle: 120,
	}
	res := Calculate(Entries(30), cfg)
	first, last := res.Transforms[0], res.Transforms[29]
	if first.X < -1e-6 {
		t.Errorf("first.X = %v, want >= 0", first.X)
	}
	if right := last.X + last.BoundW; right > cfg.Width+1e-6 {
		t.Errorf("right edge = %v, want <= %v", right, cfg.Width)
	}
	if res.Spacing >= cfg.Spacing {
		t.Errorf("Spacing = %v, want shrunk below %v", res.Spacing, cfg.Spacing)
	}
}

func TestCalculateArcWrapExempt(t *testing.T) {
	cfg := Config{
		Width: 200, Height: 200,
		ItemWidth: 40, ItemHeight: 60,
		Spacing: 40, MinRadius: 10, MaxAngle: 300,
	}
	res := Calculate(Entries(12), cfg)
	if got := res.HalfAngle * 180 / math.Pi; !near(got, 150, 1e-6) {
		t.Errorf("HalfAngle = %v deg, want 150", got)
	}
}

func TestCalculateLinear(t *testing.T) {
	cfg := Config{
		Width: 800, Height: 600,
		ItemWidth: 120, ItemHeight: 180,
		Spacing: 48,
	}
	res := Calculate(Entries(3), cfg)
	footprint := 120.0 + 48*2
	left := (800 - footprint) / 2
	for i, tr := range res.Transforms {
		if tr.Angle != 0 {
			t.Errorf("angle[%d] = %v, want 0", i, tr.Angle)
		}
		if want := left + 48*float64(i); !near(tr.X, want, eps) {
			t.Errorf("X[%d] = %v, want %v", i, tr.X, want)
		}
		if want := 600.0/2 - 180.0/2; !near(tr.Y, want, eps) {
			t.Errorf("Y[%d] = %v, want %v", i, tr.Y, want)
		}
	}
	if res.Radius != -1 {
		t.Errorf("Radius = %v, want -1", res.Radius)
	}
}

func TestCalculateLinearOverflow(t *testing.T) {
	cfg := Config{
		Width: 400, Height: 600,
		ItemWidth: 120, ItemHeight: 180,
		Spacing: 48,
	}
	tests := []struct {
		n    int
		want float64
	}{
		{10, (400.0 - 120) / 9},
		{30, (400.0 - 120) / 29},
	}
	for _, tt := range tests {
		res := Calculate(Entries(tt.n), cfg)
		if !near(res.Spacing, tt.want, eps) {
			t.Errorf("n=%d: Spacing = %v, want %v", tt.n, res.Spacing, tt.want)
		}
		if res.Transforms[0].X != 0 {
			t.Errorf("n=%d: first X = %v, want 0", tt.n, res.Transforms[0].X)
		}
		last := res.Transforms[tt.n-1]
		if !near(last.X+last.BoundW, cfg.Width, 1e-6) {
			t.Errorf("n=%d: right edge = %v, want %v", tt.n, last.X+last.BoundW, cfg.Width)
		}
	}

	// Narrower than one item: spacing never goes negative.
	cfg.Width = 100
	if res := Calculate(Entries(4), cfg); res.Spacing != 0 {
		t.Errorf("Spacing = %v, want 0", res.Spacing)
	}
}

func TestCalculateSingleItemIsLinear(t *testing.T) {
	cfg := Config{
		Width: 800, Height: 600,
		ItemWidth: 120, ItemHeight: 180,
		Spacing: 48, MinRadius: 1000, MaxAngle: 60,
	}
	res := Calculate(Entries(1), cfg)
	if res.Radius != -1 {
		t.Errorf("Radius = %v, want -1", res.Radius)
	}
	c := res.Transforms[0].Center()
	if !near(c.X, 400, eps) || !near(c.Y, 300, eps) {
		t.Errorf("center = %v, want (400, 300)", c)
	}
}

func TestCalculateLift(t *testing.T) {
	base := Config{
		Width: 2000, Height: 800,
		ItemWidth: 120, ItemHeight: 180,
		Spacing: 48, MinRadius: 300, MaxAngle: 60, Lift: 48,
	}
	lifted := base
	lifted.Lifted = []int{0, 2}

	a := Calculate(Entries(3), base)
	b := Calculate(Entries(3), lifted)

	for i := range 3 {
		dx := b.Transforms[i].X - a.Transforms[i].X
		dy := b.Transforms[i].Y - a.Transforms[i].Y
		if i == 1 {
			if dx != 0 || dy != 0 {
				t.Errorf("unlifted item moved by (%v, %v)", dx, dy)
			}
			continue
		}
		if d := math.Hypot(dx, dy); !near(d, 48, 1e-9) {
			t.Errorf("lift distance[%d] = %v, want 48", i, d)
		}
		up := a.Transforms[i].Up()
		if !near(dx, up.X*48, 1e-9) || !near(dy, up.Y*48, 1e-9) {
			t.Errorf("lift[%d] = (%v, %v), want along %v", i, dx, dy, up)
		}
	}

	// Per-entry flag behaves like the index set.
	entries := Entries(3)
	entries[0].Lifted = true
	entries[2].Lifted = true
	c := Calculate(entries, base)
	if !reflect.DeepEqual(b.Transforms, c.Transforms) {
		t.Error("Entry.Lifted result differs from Config.Lifted")
	}
}

func TestCalculateTrueCenter(t *testing.T) {
	cfg := Config{
		Width: 2000, Height: 800,
		ItemWidth: 120, ItemHeight: 180,
		Spacing: 48, MinRadius: 200, MaxAngle: 90,
		TrueCenter: true,
	}
	res := Calculate(Entries(5), cfg)
	low := math.Inf(1)
	for _, tr := range res.Transforms {
		low = math.Min(low, tr.Y)
	}
	if want := 800.0/2 - 180.0/2; !near(low, want, eps) {
		t.Errorf("lowest Y = %v, want %v", low, want)
	}
}

func TestCalculateIdempotent(t *testing.T) {
	cfg := Config{
		Width: 900, Height: 700,
		ItemWidth: 120, ItemHeight: 180,
		Spacing: 48, MinRadius: 500, MaxAngle: 60,
		Lift: 30, Lifted: []int{1},
	}
	a := Calculate(Entries(7), cfg)
	b := Calculate(Entries(7), cfg)
	if !reflect.DeepEqual(a, b) {
		t.Error("Calculate is not deterministic")
	}
}

func TestNewTransform(t *testing.T) {
	tr := NewTransform(100, 100, 0.0005, 120, 180)
	if tr.Angle != 0 || tr.Sin != 0 || tr.Cos != 1 {
		t.Errorf("tiny angle not snapped: %+v", tr)
	}
	if tr.X != 40 || tr.Y != 10 {
		t.Errorf("corner = (%v, %v), want (40, 10)", tr.X, tr.Y)
	}

	q := NewTransform(0, 0, math.Pi/2, 120, 180)
	if !near(q.BoundW, 180, eps) || !near(q.BoundH, 120, eps) {
		t.Errorf("bounds = (%v, %v), want (180, 120)", q.BoundW, q.BoundH)
	}
	c := q.Center()
	if !near(c.X, 0, eps) || !near(c.Y, 0, eps) {
		t.Errorf("Center() = %v, want origin", c)
	}
}
