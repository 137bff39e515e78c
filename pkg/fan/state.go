package fan

import (
	"fmt"

	"github.com/matzehuels/cardfan/pkg/fan/layout"
)

// Status is the lifecycle state of one item.
type Status int

const (
	StatusNew Status = iota
	StatusMoving
	StatusSettled
	StatusRemoving
	StatusRecycling
)

var statusNames = [...]string{"new", "moving", "settled", "removing", "recycling"}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("status(%d)", int(s))
	}
	return statusNames[s]
}

// HandleID is an arena token identifying the binding of a handle to an item
// state. Tokens are never reused: a released slot bumps its generation, so a
// token captured by a late completion no longer resolves.
type HandleID struct {
	Index uint32
	Gen   uint32
}

// Valid reports whether id was ever issued.
func (id HandleID) Valid() bool { return id.Gen != 0 }

func (id HandleID) String() string { return fmt.Sprintf("%d@%d", id.Index, id.Gen) }

// itemState is the per-item record.
type itemState struct {
	item     Item
	status   Status
	handle   Handle
	hid      HandleID
	target   layout.Transform
	index    int
	anim     *group
	placed   bool // handle has been shown at least once
	dragging bool
}

func (s *itemState) key() string { return s.item.Key() }

// State is a read-only snapshot of one item's lifecycle record.
type State struct {
	Key       string
	Status    Status
	Index     int
	Handle    Handle
	HandleID  HandleID
	Target    layout.Transform
	Animating bool
	Dragging  bool
}

func (s *itemState) snapshot() State {
	return State{
		Key:       s.key(),
		Status:    s.status,
		Index:     s.index,
		Handle:    s.handle,
		HandleID:  s.hid,
		Target:    s.target,
		Animating: s.anim != nil,
		Dragging:  s.dragging,
	}
}

type slot struct {
	gen   uint32
	state *itemState
}

// arena is the handle table: HandleID to item state.
type arena struct {
	slots []slot
	free  []uint32
	live  int
}

func (a *arena) bind(s *itemState) HandleID {
	var i uint32
	if n := len(a.free); n > 0 {
		i = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.slots = append(a.slots, slot{})
		i = uint32(len(a.slots) - 1)
	}
	sl := &a.slots[i]
	sl.gen++
	sl.state = s
	a.live++
	return HandleID{Index: i, Gen: sl.gen}
}

func (a *arena) lookup(id HandleID) *itemState {
	if !id.Valid() || int(id.Index) >= len(a.slots) {
		return nil
	}
	sl := a.slots[id.Index]
	if sl.gen != id.Gen {
		return nil
	}
	return sl.state
}

func (a *arena) unbind(id HandleID) {
	if a.lookup(id) == nil {
		return
	}
	sl := &a.slots[id.Index]
	sl.state = nil
	sl.gen++
	a.free = append(a.free, id.Index)
	a.live--
}

func (a *arena) each(fn func(HandleID, *itemState)) {
	for i, sl := range a.slots {
		if sl.state != nil {
			fn(HandleID{Index: uint32(i), Gen: sl.gen}, sl.state)
		}
	}
}

func (a *arena) len() int { return a.live }
