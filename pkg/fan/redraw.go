package fan

import (
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/cardfan/pkg/errors"
	"github.com/matzehuels/cardfan/pkg/fan/layout"
	"github.com/matzehuels/cardfan/pkg/observability"
)

// redraw reconciles the item tables with the current collection and starts
// the animations that carry each handle to its new place.
func (f *Fan) redraw() {
	start := time.Now()
	n := len(f.items)
	res := layout.Calculate(layout.Entries(n), f.cfg.Layout(f.width, f.height))
	f.geometry = res

	present := make(map[string]struct{}, n)
	animated := 0
	for i, item := range f.items {
		key := item.Key()
		present[key] = struct{}{}

		st := f.byKey[key]
		if st != nil && st.status == StatusRemoving {
			f.forget(st)
			st = nil
		}
		if st == nil {
			st = &itemState{item: item, status: StatusNew}
			f.byKey[key] = st
		}
		st.item = item
		st.index = i
		st.target = res.Transforms[i]

		switch {
		case st.handle == nil:
			h := f.pool.Acquire()
			f.bind(st, h)
			st.status = StatusNew
			st.placed = false
			if b, ok := h.(Binder); ok {
				b.Bind(item)
			}
		case st.status == StatusRecycling:
			// Put back before its fade finished.
			st.status = StatusMoving
		}
		f.attach(st.handle)

		if f.animateToward(st) {
			animated++
		}
	}

	var gone []*itemState
	for key, st := range f.byKey {
		if _, ok := present[key]; !ok {
			gone = append(gone, st)
		}
	}
	slices.SortFunc(gone, func(a, b *itemState) int {
		if a.index != b.index {
			return a.index - b.index
		}
		return strings.Compare(a.key(), b.key())
	})
	for _, st := range gone {
		switch {
		case st.status == StatusRemoving:
			continue
		case st.status == StatusRecycling && st.anim != nil:
			continue
		}
		f.fadeOut(st)
		animated++
	}

	f.resized = false
	if err := f.Validate(); err != nil {
		panic(err)
	}

	observability.Fan().OnRedraw(n, animated, time.Since(start))
	f.logger.Debug("redraw",
		"items", n,
		"animated", animated,
		"radius", res.Radius,
		"spacing", res.Spacing,
		"pool", f.pool.Len())
}

// fadeOut starts the recycle fade of an item that left the collection. An
// item that never got a handle is dropped at once.
func (f *Fan) fadeOut(st *itemState) {
	if st.handle == nil {
		f.forget(st)
		item := st.item
		f.enqueue(func() { f.emitRemoved(item, nil, true) })
		return
	}
	st.status = StatusRecycling
	st.dragging = false
	op := clamp01(st.handle.Opacity())
	f.start(st, []track{{prop: PropOpacity, to: 0, d: scale(f.cfg.FadeDuration, op)}})
	f.logger.Debug("recycling", "key", st.key(), "opacity", op)
}

// complete is the single exit point of every animation group.
func (f *Fan) complete(id HandleID, g *group) {
	st := f.handles.lookup(id)
	if st == nil || st.anim != g {
		return
	}
	st.anim = nil

	switch st.status {
	case StatusRemoving:
		h := st.handle
		f.forget(st)
		f.emitRemoved(st.item, h, false)
	case StatusRecycling:
		h := st.handle
		f.forget(st)
		f.pool.Release(h, len(f.items))
		f.emitRemoved(st.item, nil, true)
	case StatusNew, StatusMoving:
		st.status = StatusSettled
		f.emitAdded(st)
	case StatusSettled:
	default:
		panic(errors.New(errors.ErrCodeUnknownStatus, "completion for item %q in status %v", st.key(), st.status))
	}
}

func (f *Fan) emitAdded(st *itemState) {
	f.events.emit(Event{Kind: EventAdded, Index: st.index, Item: st.item, Handle: st.handle})
}

// Validate checks that the item table and the handle table agree. A non-nil
// result means the fan is corrupt; redraw panics with it.
func (f *Fan) Validate() error {
	bound := 0
	for key, st := range f.byKey {
		if st == nil || st.item == nil || st.key() != key {
			return errors.New(errors.ErrCodeInvariant, "item table entry %q does not match its state", key)
		}
		if st.handle == nil {
			if st.hid.Valid() {
				return errors.New(errors.ErrCodeInvariant, "item %q holds token %v without a handle", key, st.hid)
			}
			continue
		}
		bound++
		if got := f.handles.lookup(st.hid); got != st {
			return errors.New(errors.ErrCodeInvariant, "handle %v of item %q resolves to another state", st.hid, key)
		}
	}

	var err error
	f.handles.each(func(id HandleID, st *itemState) {
		if err != nil {
			return
		}
		if cur := f.byKey[st.key()]; cur != st {
			err = errors.New(errors.ErrCodeInvariant, "handle %v maps to an untracked item %q", id, st.key())
		} else if st.hid != id {
			err = errors.New(errors.ErrCodeInvariant, "handle %v maps to item %q holding %v", id, st.key(), st.hid)
		}
	})
	if err != nil {
		return err
	}
	if bound != f.handles.len() {
		return errors.New(errors.ErrCodeInvariant, "%d handles bound, %d tracked", f.handles.len(), bound)
	}

	if !f.queue.redraw {
		for i, it := range f.items {
			st := f.byKey[it.Key()]
			if st == nil || st.handle == nil {
				return errors.New(errors.ErrCodeInvariant, "item %q at %d has no handle after redraw", it.Key(), i)
			}
		}
	}
	return nil
}
