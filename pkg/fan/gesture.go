package fan

import (
	"math"

	"github.com/matzehuels/cardfan/pkg/observability"
)

// Gesture is the classification of one contact session.
type Gesture int

const (
	GestureUndetermined Gesture = iota
	GestureTap
	GestureDrag
	GestureLongPress
)

var gestureNames = [...]string{"undetermined", "tap", "drag", "long-press"}

func (g Gesture) String() string {
	if g < 0 || int(g) >= len(gestureNames) {
		return "unknown"
	}
	return gestureNames[g]
}

type session struct {
	state   *itemState
	gesture Gesture
	origin  Contact
	last    Contact
	stop    func() // cancels the long-press timer
}

func (s *session) stopTimer() {
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
}

// live reports whether st still represents an item in the collection.
func (f *Fan) live(st *itemState) bool {
	if f.byKey[st.key()] != st {
		return false
	}
	switch st.status {
	case StatusNew, StatusMoving, StatusSettled:
		return true
	}
	return false
}

// ContactDown starts a gesture session if the contact lands on an item. It
// reports whether the contact was claimed.
func (f *Fan) ContactDown(c Contact) bool {
	if f.env.HitTester == nil {
		return false
	}
	i, ok := f.env.HitTester.HitTest(c.X, c.Y)
	if !ok || i < 0 || i >= len(f.items) {
		return false
	}
	st := f.byKey[f.items[i].Key()]
	if st == nil || st.handle == nil || !f.live(st) {
		return false
	}

	if old := f.sessions[c.ID]; old != nil {
		old.stopTimer()
	}
	s := &session{state: st, origin: c, last: c}
	if delay := f.cfg.LongPressDelay; delay > 0 {
		id := c.ID
		s.stop = f.env.Scheduler.After(delay, func() {
			f.enqueue(func() { f.longPress(id, s) })
		})
	}
	f.sessions[c.ID] = s
	f.logger.Debug("contact down", "id", c.ID, "key", st.key(), "index", st.index)
	return true
}

// ContactMove feeds a pointer move into the contact's session.
func (f *Fan) ContactMove(c Contact) bool {
	s := f.sessions[c.ID]
	if s == nil {
		return false
	}
	defer func() { s.last = c }()

	st := s.state
	switch s.gesture {
	case GestureUndetermined:
		threshold := f.cfg.DragThreshold()
		dist := math.Abs(c.X-s.origin.X) + math.Abs(c.Y-s.origin.Y)
		if threshold <= 0 || dist <= threshold || !f.live(st) {
			return true
		}
		s.gesture = GestureDrag
		s.stopTimer()
		f.cancel(st)
		st.dragging = true
		f.classified(s)
		f.emitGesture(EventDragBegin, st, c)
		// The handle catches up with the pointer, then follows it.
		f.shift(st, c.X-s.origin.X, c.Y-s.origin.Y)
	case GestureDrag:
		if st.dragging && st.handle != nil {
			f.shift(st, c.X-s.last.X, c.Y-s.last.Y)
		}
	}
	return true
}

// ContactUp ends the contact's session and requests a redraw so the item
// returns to its computed place.
func (f *Fan) ContactUp(c Contact) bool {
	s := f.sessions[c.ID]
	if s == nil {
		return false
	}
	delete(f.sessions, c.ID)
	s.stopTimer()

	st := s.state
	switch s.gesture {
	case GestureUndetermined:
		s.gesture = GestureTap
		f.classified(s)
		if f.live(st) {
			f.emitGesture(EventPress, st, c)
		}
	case GestureDrag:
		st.dragging = false
		if f.live(st) {
			f.emitGesture(EventDrop, st, c)
		}
	}
	f.Redraw()
	return true
}

// CancelContacts drops every open session without emitting events.
func (f *Fan) CancelContacts() {
	for id, s := range f.sessions {
		s.stopTimer()
		s.state.dragging = false
		delete(f.sessions, id)
	}
	f.Redraw()
}

func (f *Fan) longPress(id int, s *session) {
	if f.sessions[id] != s || s.gesture != GestureUndetermined {
		return
	}
	s.stop = nil
	s.gesture = GestureLongPress
	f.classified(s)
	if f.live(s.state) {
		f.emitGesture(EventLongPress, s.state, s.last)
	}
}

// Hover tracks the topmost item under a pointer that is not pressed and
// emits hover-enter and hover-leave as it changes.
func (f *Fan) Hover(x, y float64) {
	if f.env.HitTester == nil || len(f.sessions) > 0 {
		return
	}
	var next *itemState
	if i, ok := f.env.HitTester.HitTest(x, y); ok && i >= 0 && i < len(f.items) {
		if st := f.byKey[f.items[i].Key()]; st != nil && f.live(st) {
			next = st
		}
	}
	prev := f.hover
	if prev == next {
		return
	}
	f.hover = next
	c := Contact{X: x, Y: y}
	if prev != nil && f.live(prev) {
		f.emitGesture(EventHoverLeave, prev, c)
	}
	if next != nil {
		f.emitGesture(EventHoverEnter, next, c)
	}
}

func (f *Fan) shift(st *itemState, dx, dy float64) {
	x, y := st.handle.Position()
	st.handle.SetPosition(x+dx, y+dy)
}

func (f *Fan) classified(s *session) {
	observability.Gesture().OnClassify(s.gesture.String())
	f.logger.Debug("gesture", "kind", s.gesture, "key", s.state.key())
}

func (f *Fan) emitGesture(kind EventKind, st *itemState, c Contact) {
	f.events.emit(Event{Kind: kind, Index: st.index, Item: st.item, Handle: st.handle, Contact: c})
}
