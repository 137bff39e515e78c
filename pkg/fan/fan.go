package fan

import (
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cardfan/pkg/errors"
	"github.com/matzehuels/cardfan/pkg/fan/layout"
	"github.com/matzehuels/cardfan/pkg/fan/pool"
	"github.com/matzehuels/cardfan/pkg/observability"
)

// Fan arranges an ordered collection of items, animates them toward their
// computed places and classifies pointer gestures on them.
//
// A Fan is not safe for concurrent use. All methods, completions and timers
// must run on the host's event loop.
type Fan struct {
	env    Env
	cfg    Config
	width  float64
	height float64
	logger *log.Logger

	pool    *pool.Pool[Handle]
	items   []Item
	byKey   map[string]*itemState
	handles arena

	events   registry
	queue    taskQueue
	resized  bool
	geometry layout.Result

	sessions map[int]*session
	hover    *itemState
}

// Option configures a Fan.
type Option func(*Fan)

// WithLogger sets the logger. Redraw and gesture details log at debug level.
func WithLogger(l *log.Logger) Option {
	return func(f *Fan) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithConfig replaces DefaultConfig.
func WithConfig(c Config) Option {
	return func(f *Fan) { f.cfg = c }
}

// WithSize sets the initial container size.
func WithSize(w, h float64) Option {
	return func(f *Fan) { f.width, f.height = w, h }
}

// WithPoolPolicy replaces pool.DefaultKeepPolicy.
func WithPoolPolicy(p pool.KeepPolicy) Option {
	return func(f *Fan) { f.pool = f.newPool(f.pool.Factory(), p) }
}

// New creates a fan that builds handles with factory. env.Scheduler and
// env.Tweener are required.
func New(env Env, factory func() Handle, opts ...Option) (*Fan, error) {
	if env.Scheduler == nil || env.Tweener == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "fan requires a scheduler and a tweener")
	}
	if factory == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "fan requires a handle factory")
	}
	f := &Fan{
		env:      env,
		cfg:      DefaultConfig(),
		logger:   log.Default(),
		byKey:    make(map[string]*itemState),
		sessions: make(map[int]*session),
		geometry: layout.Result{Radius: -1},
	}
	f.pool = f.newPool(factory, nil)
	for _, opt := range opts {
		opt(f)
	}
	if err := f.cfg.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Fan) newPool(factory func() Handle, policy pool.KeepPolicy) *pool.Pool[Handle] {
	opts := []pool.Option[Handle]{pool.WithDetach(f.detach)}
	if policy != nil {
		opts = append(opts, pool.WithKeepPolicy[Handle](policy))
	}
	return pool.New(factory, opts...)
}

// On subscribes fn to events of the given kind.
func (f *Fan) On(kind EventKind, fn func(Event)) Subscription {
	return f.events.on(kind, fn)
}

// Config returns the current configuration.
func (f *Fan) Config() Config {
	c := f.cfg
	c.Lifted = slices.Clone(f.cfg.Lifted)
	return c
}

// SetConfig validates and applies c, then requests a redraw.
func (f *Fan) SetConfig(c Config) error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.Lifted = slices.Clone(c.Lifted)
	f.cfg = c
	f.Redraw()
	return nil
}

// SetLifted replaces the set of lifted indices.
func (f *Fan) SetLifted(indices ...int) {
	f.cfg.Lifted = slices.DeleteFunc(slices.Clone(indices), func(i int) bool { return i < 0 })
	f.Redraw()
}

// Size returns the container size.
func (f *Fan) Size() (w, h float64) { return f.width, f.height }

// SetSize resizes the container. The next redraw snaps settled items to
// their new places instead of animating them.
func (f *Fan) SetSize(w, h float64) {
	if w == f.width && h == f.height {
		return
	}
	f.width, f.height = w, h
	f.resized = true
	f.Redraw()
}

// Geometry returns the informational output of the last redraw.
func (f *Fan) Geometry() layout.Result { return f.geometry }

// PoolStats returns the handle pool counters.
func (f *Fan) PoolStats() pool.Stats { return f.pool.Stats() }

// PoolLen returns the number of pooled handles.
func (f *Fan) PoolLen() int { return f.pool.Len() }

// Len returns the number of items in the collection.
func (f *Fan) Len() int { return len(f.items) }

// Items returns a copy of the collection.
func (f *Fan) Items() []Item { return slices.Clone(f.items) }

// At returns the item at index i.
func (f *Fan) At(i int) (Item, error) {
	if err := errors.ValidateIndex(i, len(f.items), false); err != nil {
		return nil, err
	}
	return f.items[i], nil
}

// Index returns the position of the item with the given key, or -1.
func (f *Fan) Index(key string) int {
	return slices.IndexFunc(f.items, func(it Item) bool { return it.Key() == key })
}

// State returns a snapshot of the lifecycle record for key.
func (f *Fan) State(key string) (State, bool) {
	st, ok := f.byKey[key]
	if !ok {
		return State{}, false
	}
	return st.snapshot(), true
}

// States returns snapshots of every tracked item, including items that are
// still fading out, ordered by index.
func (f *Fan) States() []State {
	out := make([]State, 0, len(f.byKey))
	for _, st := range f.byKey {
		out = append(out, st.snapshot())
	}
	slices.SortFunc(out, func(a, b State) int {
		if a.Index != b.Index {
			return a.Index - b.Index
		}
		if a.Key < b.Key {
			return -1
		}
		if a.Key > b.Key {
			return 1
		}
		return 0
	})
	return out
}

// HandleAt returns the handle shown for index i, if any.
func (f *Fan) HandleAt(i int) (Handle, bool) {
	if i < 0 || i >= len(f.items) {
		return nil, false
	}
	st := f.byKey[f.items[i].Key()]
	if st == nil || st.handle == nil {
		return nil, false
	}
	return st.handle, true
}

// IndexOf returns the collection index of the item displayed by h.
func (f *Fan) IndexOf(h Handle) (int, bool) {
	for i, it := range f.items {
		if st := f.byKey[it.Key()]; st != nil && st.handle != nil && st.handle == h {
			return i, true
		}
	}
	return -1, false
}

func (f *Fan) checkInsert(index int, item Item) error {
	if item == nil {
		return errors.New(errors.ErrCodeInvalidInput, "item is nil")
	}
	if err := errors.ValidateKey(item.Key()); err != nil {
		return err
	}
	if err := errors.ValidateIndex(index, len(f.items), true); err != nil {
		return err
	}
	if f.Index(item.Key()) >= 0 {
		return errors.New(errors.ErrCodeDuplicateItem, "item %q already in fan", item.Key())
	}
	return nil
}

// Insert adds item at index and requests a redraw. The item fades in at its
// computed place.
func (f *Fan) Insert(index int, item Item) error {
	if err := f.checkInsert(index, item); err != nil {
		return err
	}
	key := item.Key()
	if st := f.byKey[key]; st != nil && st.status == StatusRemoving {
		// The old handle already belongs to the caller.
		f.forget(st)
	}
	f.items = slices.Insert(f.items, index, item)
	f.reindex()
	f.Redraw()
	return nil
}

// InsertWithHandle adds item at index displayed by h, which the fan now
// owns. The item moves from h's current geometry to its computed place, as
// when a card is dealt from a pile.
func (f *Fan) InsertWithHandle(index int, item Item, h Handle) error {
	if h == nil {
		return f.Insert(index, item)
	}
	if err := f.checkInsert(index, item); err != nil {
		return err
	}
	if st := f.byKey[item.Key()]; st != nil {
		f.retire(st)
	}
	st := &itemState{item: item, status: StatusMoving, index: index, placed: true}
	f.byKey[item.Key()] = st
	f.bind(st, h)
	if b, ok := h.(Binder); ok {
		b.Bind(item)
	}
	f.items = slices.Insert(f.items, index, item)
	f.reindex()
	f.Redraw()
	return nil
}

// Pop removes the item at index.
//
// With recycle set, the item fades out at the next redraw and its handle
// returns to the pool; the returned handle is nil. Without recycle, the
// item's animation is cancelled, its handle is detached and returned to the
// caller, and a removed event follows on the next tick.
func (f *Fan) Pop(index int, recycle bool) (Item, Handle, error) {
	if err := errors.ValidateIndex(index, len(f.items), false); err != nil {
		return nil, nil, err
	}
	item := f.items[index]
	f.items = slices.Delete(f.items, index, index+1)
	f.reindex()
	defer f.Redraw()

	st := f.byKey[item.Key()]
	if st == nil {
		return item, nil, nil
	}
	if recycle {
		st.status = StatusRecycling
		f.cancel(st)
		return item, nil, nil
	}

	st.status = StatusRemoving
	f.cancel(st)
	st.dragging = false
	h := st.handle
	if h != nil {
		f.detach(h)
	}
	f.enqueue(func() { f.finishRemoval(st, h) })
	return item, h, nil
}

// Remove removes the item with the given key. See Pop.
func (f *Fan) Remove(key string, recycle bool) (Handle, error) {
	i := f.Index(key)
	if i < 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "item %q not in fan", key)
	}
	_, h, err := f.Pop(i, recycle)
	return h, err
}

// Replace swaps the whole collection. Items are matched to existing states
// by key at the next redraw; missing ones fade out and recycle.
func (f *Fan) Replace(items []Item) error {
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if it == nil {
			return errors.New(errors.ErrCodeInvalidInput, "item is nil")
		}
		if err := errors.ValidateKey(it.Key()); err != nil {
			return err
		}
		if _, dup := seen[it.Key()]; dup {
			return errors.New(errors.ErrCodeDuplicateItem, "item %q appears twice", it.Key())
		}
		seen[it.Key()] = struct{}{}
	}
	for _, it := range items {
		if st := f.byKey[it.Key()]; st != nil && st.status == StatusRemoving {
			f.forget(st)
		}
	}
	f.items = slices.Clone(items)
	f.reindex()
	f.Redraw()
	return nil
}

// Move reorders the item at from to index to.
func (f *Fan) Move(from, to int) error {
	if err := errors.ValidateIndex(from, len(f.items), false); err != nil {
		return err
	}
	if err := errors.ValidateIndex(to, len(f.items), false); err != nil {
		return err
	}
	if from == to {
		return nil
	}
	it := f.items[from]
	f.items = slices.Delete(f.items, from, from+1)
	f.items = slices.Insert(f.items, to, it)
	f.reindex()
	f.Redraw()
	return nil
}

// SetFactory replaces the handle factory. Pooled handles are dropped and
// every displayed item gets a fresh handle copied from its old one.
func (f *Fan) SetFactory(factory func() Handle) {
	if factory == nil {
		return
	}
	f.pool.SetFactory(factory)

	var stale []*itemState
	for _, st := range f.byKey {
		if st.handle != nil {
			stale = append(stale, st)
		}
	}
	slices.SortFunc(stale, func(a, b *itemState) int { return a.index - b.index })

	for _, st := range stale {
		switch st.status {
		case StatusRecycling:
			f.cancel(st)
			f.detach(st.handle)
			f.forget(st)
			f.emitRemoved(st.item, nil, true)
		case StatusRemoving:
			// Owned by the caller already.
		default:
			f.cancel(st)
			old := st.handle
			f.detach(old)
			f.handles.unbind(st.hid)
			st.handle, st.hid = nil, HandleID{}
			h := f.pool.Acquire()
			copyGeometry(h, old)
			f.bind(st, h)
			if b, ok := h.(Binder); ok {
				b.Bind(st.item)
			}
			f.attach(h)
		}
	}
	f.Redraw()
}

// reindex refreshes every tracked index after a collection edit, so events
// emitted before the next redraw report current positions. Items that left
// the collection get -1.
func (f *Fan) reindex() {
	for _, st := range f.byKey {
		st.index = -1
	}
	for i, it := range f.items {
		if st := f.byKey[it.Key()]; st != nil {
			st.index = i
		}
	}
}

func copyGeometry(dst, src Handle) {
	w, h := src.Size()
	dst.SetSize(w, h)
	dst.SetRotation(src.Rotation())
	x, y := src.Position()
	dst.SetPosition(x, y)
	dst.SetOpacity(src.Opacity())
}

func (f *Fan) bind(st *itemState, h Handle) {
	st.handle = h
	st.hid = f.handles.bind(st)
}

func (f *Fan) attach(h Handle) {
	if f.env.Container != nil {
		f.env.Container.Attach(h)
	}
}

func (f *Fan) detach(h Handle) {
	if f.env.Container != nil {
		f.env.Container.Detach(h)
	}
}

// forget drops st from both tables.
func (f *Fan) forget(st *itemState) {
	f.cancel(st)
	if cur, ok := f.byKey[st.key()]; ok && cur == st {
		delete(f.byKey, st.key())
	}
	if st.hid.Valid() {
		f.handles.unbind(st.hid)
	}
	st.handle, st.hid = nil, HandleID{}
	if f.hover == st {
		f.hover = nil
	}
}

// retire finishes st at once: a pooled handle is released and removed fires.
func (f *Fan) retire(st *itemState) {
	switch st.status {
	case StatusRemoving:
		f.forget(st)
	default:
		h := st.handle
		f.forget(st)
		if h != nil {
			f.pool.Release(h, len(f.items))
		}
		f.emitRemoved(st.item, nil, true)
	}
}

func (f *Fan) finishRemoval(st *itemState, h Handle) {
	if st.status != StatusRemoving {
		return
	}
	f.forget(st)
	f.emitRemoved(st.item, h, false)
}

func (f *Fan) emitRemoved(item Item, h Handle, recycled bool) {
	observability.Fan().OnRemoved(recycled)
	f.logger.Debug("item removed", "key", item.Key(), "recycled", recycled)
	f.events.emit(Event{Kind: EventRemoved, Index: -1, Item: item, Handle: h})
}
