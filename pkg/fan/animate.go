package fan

import (
	"math"
	"time"

	"github.com/matzehuels/cardfan/pkg/errors"
	"github.com/matzehuels/cardfan/pkg/observability"
)

const (
	positionTolerance = 1   // units, per axis
	rotationTolerance = 0.1 // degrees
	sizeTolerance     = 0.5 // units

	// rotationShare is the fraction of a move spent rotating; rotation
	// finishes before translation so the footprint stays steady.
	rotationShare = 0.8
	sizeShare     = 0.8
)

type track struct {
	prop Property
	to   float64
	d    time.Duration
}

// group joins the tracks started for one handle: done runs once after every
// track finished, and never after cancel.
type group struct {
	pending   int
	cancels   []func()
	cancelled bool
	done      func()
}

func (g *group) finish() {
	if g.cancelled || g.pending == 0 {
		return
	}
	g.pending--
	if g.pending == 0 {
		g.done()
	}
}

func (g *group) cancel() {
	if g.cancelled {
		return
	}
	g.cancelled = true
	for _, c := range g.cancels {
		if c != nil {
			c()
		}
	}
}

// start replaces st's animation with a group running tracks concurrently.
func (f *Fan) start(st *itemState, tracks []track) {
	f.cancel(st)
	id := st.hid
	g := &group{pending: len(tracks)}
	g.done = func() { f.enqueue(func() { f.complete(id, g) }) }
	st.anim = g
	for _, tr := range tracks {
		g.cancels = append(g.cancels, f.env.Tweener.Tween(st.handle, tr.prop, tr.to, tr.d, g.finish))
	}
	observability.Fan().OnAnimationStart(st.status.String(), len(tracks))
}

func (f *Fan) cancel(st *itemState) {
	if st.anim != nil {
		st.anim.cancel()
		st.anim = nil
	}
}

// animateToward moves st's handle toward its target. It reports whether an
// animation was started.
func (f *Fan) animateToward(st *itemState) bool {
	switch st.status {
	case StatusNew, StatusMoving, StatusSettled:
	default:
		panic(errors.New(errors.ErrCodeUnknownStatus, "item %q reached layout in status %v", st.key(), st.status))
	}
	if st.dragging {
		return false
	}

	h, t := st.handle, st.target
	if st.status == StatusNew && !st.placed {
		h.SetSize(t.Width, t.Height)
		h.SetRotation(t.Degrees())
		h.SetPosition(t.X, t.Y)
		h.SetOpacity(0)
		st.placed = true
		f.start(st, []track{{prop: PropOpacity, to: 1, d: f.cfg.FadeDuration}})
		return true
	}

	if f.resized && st.status == StatusSettled {
		h.SetSize(t.Width, t.Height)
		h.SetRotation(t.Degrees())
		h.SetPosition(t.X, t.Y)
		return false
	}

	tracks := f.plan(st)
	if len(tracks) == 0 {
		if st.status == StatusSettled {
			return false
		}
		f.cancel(st)
		st.status = StatusSettled
		f.enqueue(func() {
			if f.byKey[st.key()] == st && st.status == StatusSettled {
				f.emitAdded(st)
			}
		})
		return false
	}
	st.status = StatusMoving
	f.start(st, tracks)
	return true
}

// plan returns the tracks that carry st's handle to its target. Rotation at
// an already correct position is applied immediately.
func (f *Fan) plan(st *itemState) []track {
	h, t := st.handle, st.target

	cur := NormalizeDegrees(h.Rotation())
	if cur != h.Rotation() {
		h.SetRotation(cur)
	}
	want := ShortestRotation(cur, t.Degrees())
	rotate := math.Abs(want-cur) > rotationTolerance

	x, y := h.Position()
	dx, dy := t.X-x, t.Y-y
	moved := math.Abs(dx) > positionTolerance || math.Abs(dy) > positionTolerance
	if !moved && rotate {
		h.SetRotation(want)
		rotate = false
	}

	var tracks []track
	var longest time.Duration
	if moved {
		d := f.travel(math.Hypot(dx, dy))
		tracks = append(tracks, track{PropX, t.X, d}, track{PropY, t.Y, d})
		if rotate {
			tracks = append(tracks, track{PropRotation, want, scale(d, rotationShare)})
		}
		longest = d
	}
	if op := h.Opacity(); op != 1 {
		d := scale(f.cfg.FadeDuration, math.Abs(1-op))
		tracks = append(tracks, track{PropOpacity, 1, d})
		longest = max(longest, d)
	}
	if w, ht := h.Size(); math.Abs(w-t.Width) > sizeTolerance || math.Abs(ht-t.Height) > sizeTolerance {
		base := longest
		if base == 0 {
			base = f.cfg.FadeDuration
		}
		d := scale(base, sizeShare)
		tracks = append(tracks, track{PropWidth, t.Width, d}, track{PropHeight, t.Height, d})
	}
	return tracks
}

// travel returns the duration of a move over dist units.
func (f *Fan) travel(dist float64) time.Duration {
	d := time.Duration(dist / f.cfg.LinearSpeed * float64(time.Second))
	return min(d, f.cfg.MaxDuration)
}

// ShortestRotation returns the rotation equivalent to b that is reached from
// a with the smallest sweep. Both angles are reduced modulo 360 first.
func ShortestRotation(a, b float64) float64 {
	a, b = NormalizeDegrees(a), NormalizeDegrees(b)
	switch diff := b - a; {
	case diff < -180:
		return b + 360
	case diff > 180:
		return b - 360
	}
	return b
}

// NormalizeDegrees reduces deg to [0, 360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg == 360 {
		deg = 0
	}
	return deg
}

func scale(d time.Duration, k float64) time.Duration {
	return time.Duration(float64(d) * k)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
