package fan

import (
	"time"

	"github.com/matzehuels/cardfan/pkg/fan/pool"
)

// Item is a value displayed by the fan. Keys identify items across redraws
// and must be unique within one fan.
type Item interface {
	Key() string
}

// Handle is a displayable element owned by the host.
//
// Position is the lower-left corner of the element's rotated bounding box in
// container coordinates (y up). Rotation is in degrees, counter-clockwise.
type Handle interface {
	Position() (x, y float64)
	SetPosition(x, y float64)
	Rotation() float64
	SetRotation(deg float64)
	Opacity() float64
	SetOpacity(a float64)
	Size() (w, h float64)
	SetSize(w, h float64)
}

// Binder is implemented by handles that display item data.
type Binder interface {
	Bind(item Item)
}

// Resetter is implemented by handles that can be cleared before pooling.
type Resetter = pool.Resetter

// Container holds attached handles. Attach order is z-order: later
// attachments draw on top, and attaching an attached handle raises it.
type Container interface {
	Attach(h Handle)
	Detach(h Handle)
}

// Scheduler defers work to the host's event loop.
type Scheduler interface {
	// Post runs fn on the next tick.
	Post(fn func())
	// After runs fn once d has elapsed. The returned function cancels it.
	After(d time.Duration, fn func()) (cancel func())
}

// Property names an animatable handle attribute.
type Property int

const (
	PropX Property = iota
	PropY
	PropRotation
	PropOpacity
	PropWidth
	PropHeight
)

var propertyNames = [...]string{"x", "y", "rotation", "opacity", "width", "height"}

func (p Property) String() string {
	if p < 0 || int(p) >= len(propertyNames) {
		return "unknown"
	}
	return propertyNames[p]
}

// Tweener interpolates one handle property linearly to a target value.
// done is called once when the tween finishes and never after cancel.
type Tweener interface {
	Tween(h Handle, p Property, to float64, d time.Duration, done func()) (cancel func())
}

// HitTester maps a container point to the index of the topmost item under it.
type HitTester interface {
	HitTest(x, y float64) (index int, ok bool)
}

// HitTesterFunc adapts a function to HitTester.
type HitTesterFunc func(x, y float64) (int, bool)

// HitTest calls f(x, y).
func (f HitTesterFunc) HitTest(x, y float64) (int, bool) { return f(x, y) }

// Env bundles the host collaborators a Fan drives. HitTester may be nil, in
// which case contacts are never claimed.
type Env struct {
	Scheduler Scheduler
	Tweener   Tweener
	Container Container
	HitTester HitTester
}

// Get reads property p from h.
func Get(h Handle, p Property) float64 {
	switch p {
	case PropX:
		x, _ := h.Position()
		return x
	case PropY:
		_, y := h.Position()
		return y
	case PropRotation:
		return h.Rotation()
	case PropOpacity:
		return h.Opacity()
	case PropWidth:
		w, _ := h.Size()
		return w
	case PropHeight:
		_, ht := h.Size()
		return ht
	}
	return 0
}

// Set writes v to property p of h.
func Set(h Handle, p Property, v float64) {
	switch p {
	case PropX:
		_, y := h.Position()
		h.SetPosition(v, y)
	case PropY:
		x, _ := h.Position()
		h.SetPosition(x, v)
	case PropRotation:
		h.SetRotation(v)
	case PropOpacity:
		h.SetOpacity(v)
	case PropWidth:
		_, ht := h.Size()
		h.SetSize(v, ht)
	case PropHeight:
		w, _ := h.Size()
		h.SetSize(w, v)
	}
}
