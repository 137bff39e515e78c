// Package pool recycles display handles between fan items.
//
// A Pool hands out handles built by a factory and takes them back when an
// item is done with them. Released handles are detached, reset and then kept
// on a free list or discarded according to a KeepPolicy. Replacing the
// factory drops every pooled handle so later acquisitions match the new
// factory.
package pool

import "github.com/matzehuels/cardfan/pkg/observability"

// Resetter is implemented by handles that can be cleared for reuse.
type Resetter interface {
	Reset()
}

// KeepPolicy decides whether a released handle is kept. poolSize is the
// free-list length before the release, itemCount the number of items the
// owner currently displays.
type KeepPolicy func(poolSize, itemCount int) bool

// DefaultKeepPolicy keeps a handle while the pool holds fewer than ten
// handles or fewer than half the displayed item count.
func DefaultKeepPolicy(poolSize, itemCount int) bool {
	return poolSize < 10 || float64(poolSize) < 0.5*float64(itemCount)
}

// Stats counts pool traffic.
type Stats struct {
	Created   int // handles built by the factory
	Reused    int // acquisitions served from the free list
	Kept      int // releases that went to the free list
	Discarded int // releases that were dropped
}

// Pool is a free list of handles. It is not safe for concurrent use; the fan
// drives it from a single event loop.
type Pool[H any] struct {
	factory func() H
	keep    KeepPolicy
	detach  func(H)
	free    []H
	stats   Stats
}

// Option configures a Pool.
type Option[H any] func(*Pool[H])

// WithKeepPolicy replaces DefaultKeepPolicy.
func WithKeepPolicy[H any](p KeepPolicy) Option[H] {
	return func(pl *Pool[H]) {
		if p != nil {
			pl.keep = p
		}
	}
}

// WithDetach sets a function called on every released handle before it is
// reset, typically removing it from its display container.
func WithDetach[H any](fn func(H)) Option[H] {
	return func(pl *Pool[H]) { pl.detach = fn }
}

// New creates a pool that builds handles with factory.
func New[H any](factory func() H, opts ...Option[H]) *Pool[H] {
	p := &Pool[H]{factory: factory, keep: DefaultKeepPolicy}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Acquire returns a pooled handle, or a fresh one when the pool is empty.
func (p *Pool[H]) Acquire() H {
	if n := len(p.free); n > 0 {
		h := p.free[n-1]
		var zero H
		p.free[n-1] = zero
		p.free = p.free[:n-1]
		p.stats.Reused++
		observability.Pool().OnAcquire(true)
		return h
	}
	p.stats.Created++
	observability.Pool().OnAcquire(false)
	return p.factory()
}

// Release detaches and resets h, then keeps or discards it. It reports
// whether the handle was kept.
func (p *Pool[H]) Release(h H, itemCount int) bool {
	if p.detach != nil {
		p.detach(h)
	}
	if r, ok := any(h).(Resetter); ok {
		r.Reset()
	}
	kept := p.keep(len(p.free), itemCount)
	if kept {
		p.free = append(p.free, h)
		p.stats.Kept++
	} else {
		p.stats.Discarded++
	}
	observability.Pool().OnRelease(kept)
	return kept
}

// SetFactory replaces the factory and drops all pooled handles.
func (p *Pool[H]) SetFactory(factory func() H) {
	p.factory = factory
	clear(p.free)
	p.free = p.free[:0]
}

// Factory returns the current factory.
func (p *Pool[H]) Factory() func() H {
	return p.factory
}

// Len returns the number of pooled handles.
func (p *Pool[H]) Len() int {
	return len(p.free)
}

// Stats returns a snapshot of the pool counters.
func (p *Pool[H]) Stats() Stats {
	return p.stats
}
