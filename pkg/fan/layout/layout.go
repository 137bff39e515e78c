package layout

import (
	"math"
	"slices"
)

// Config is the immutable per-redraw snapshot of fan geometry.
type Config struct {
	Width, Height         float64 // container size
	ItemWidth, ItemHeight float64
	Spacing               float64
	MinRadius             float64 // <= 0 selects linear mode
	MaxAngle              float64 // degrees, clamped to [1, 360]
	Lift                  float64
	TrueCenter            bool
	Lifted                []int // indices offset by Lift
}

// IsLifted reports whether index i is in the lifted set.
func (c Config) IsLifted(i int) bool {
	return slices.Contains(c.Lifted, i)
}

// Linear reports whether n items are laid out in linear mode.
func (c Config) Linear(n int) bool {
	return c.MinRadius <= 0 || n < 2
}

// Entry describes one item in the ordered input. Zero sizes fall back to the
// configured item size.
type Entry struct {
	Width, Height float64
	Lifted        bool
}

// Entries returns n default entries.
func Entries(n int) []Entry {
	return make([]Entry, n)
}

// Result is the output of Calculate. Only Transforms matters for correctness;
// the remaining fields are informational.
type Result struct {
	Transforms []Transform
	Radius     float64 // achieved radius, -1 in linear mode
	Spacing    float64 // achieved spacing
	HalfAngle  float64 // radians, 0 in linear mode
	Origin     Point   // arc center, or first slot corner in linear mode
}

// Calculate computes target transforms for items under cfg. It is pure: the
// same inputs always produce the same output.
func Calculate(items []Entry, cfg Config) Result {
	n := len(items)
	if n == 0 {
		return Result{Transforms: []Transform{}, Radius: -1, Spacing: cfg.Spacing}
	}
	if cfg.Linear(n) {
		return linear(items, cfg)
	}
	return arc(items, cfg)
}

func (c Config) size(e Entry) (float64, float64) {
	w, h := e.Width, e.Height
	if w <= 0 {
		w = c.ItemWidth
	}
	if h <= 0 {
		h = c.ItemHeight
	}
	return w, h
}

func linear(items []Entry, cfg Config) Result {
	n := len(items)
	spacing := cfg.Spacing
	footprint := cfg.ItemWidth + spacing*float64(n-1)
	left := (cfg.Width - footprint) / 2

	// Too wide: shrink spacing and rely on lifting to reveal covered items.
	if footprint > cfg.Width && n >= 2 {
		left = 0
		spacing = math.Max(0, (cfg.Width-cfg.ItemWidth)/float64(n-1))
	}

	base := cfg.Height/2 - cfg.ItemHeight/2
	out := make([]Transform, n)
	for i, e := range items {
		w, h := cfg.size(e)
		t := NewTransform(left+spacing*float64(i)+w/2, base+h/2, 0, w, h)
		if e.Lifted || cfg.IsLifted(i) {
			t = t.Lift(cfg.Lift)
		}
		out[i] = t
	}
	return Result{
		Transforms: out,
		Radius:     -1,
		Spacing:    spacing,
		Origin:     Point{X: left, Y: base},
	}
}

func arc(items []Entry, cfg Config) Result {
	n := len(items)
	maxAngle := math.Min(360, math.Max(1, cfg.MaxAngle)) * math.Pi / 180

	spacing := cfg.Spacing
	required := spacing * float64(n-1)
	radius := math.Max(cfg.MinRadius, required/maxAngle)
	half := required / radius / 2

	// Keep the outermost items inside the container. Fans deliberately
	// configured to wrap past 180 degrees are left alone.
	extreme := NewTransform(0, 0, half, cfg.ItemWidth, cfg.ItemHeight)
	if half < math.Pi/2 && 2*radius*math.Sin(half)+extreme.BoundW > cfg.Width {
		avail := math.Max(0, cfg.Width-extreme.BoundW)
		half = math.Asin(math.Min(1, avail/(2*radius)))
		spacing = 2 * half * radius / float64(n-1)
	}

	origin := Point{X: cfg.Width / 2, Y: cfg.Height/2 - radius}
	step := 2 * half / float64(n-1)

	out := make([]Transform, n)
	lifted := make([]bool, n)
	for i, e := range items {
		w, h := cfg.size(e)
		theta := half - float64(i)*step
		s, c := math.Sincos(theta)
		out[i] = NewTransform(origin.X-radius*s, origin.Y+radius*c, theta, w, h)
		lifted[i] = e.Lifted || cfg.IsLifted(i)
	}

	if cfg.TrueCenter {
		// Rotated items dip below the nominal arc; raise the whole fan so the
		// lowest corner sits on the baseline of an unrotated item.
		baseline := cfg.Height/2 - cfg.ItemHeight/2
		low := math.Inf(1)
		for _, t := range out {
			low = math.Min(low, t.Y)
		}
		dy := baseline - low
		for i := range out {
			out[i] = out[i].Translate(0, dy)
		}
		origin.Y += dy
	}

	for i := range out {
		if lifted[i] {
			out[i] = out[i].Lift(cfg.Lift)
		}
	}

	return Result{
		Transforms: out,
		Radius:     radius,
		Spacing:    spacing,
		HalfAngle:  half,
		Origin:     origin,
	}
}
