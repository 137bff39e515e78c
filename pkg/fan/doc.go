// Package fan arranges a changing collection of items into a fan or a row,
// animates handles toward their computed places, recycles handles of removed
// items and classifies pointer gestures on them.
//
// # Overview
//
// A [Fan] owns an ordered collection of [Item] values. Every mutation (Insert,
// Pop, Move, Replace, SetSize, SetConfig) requests a redraw. Requests made
// before the next scheduler tick coalesce, and the redraw diffs the
// collection as it is when it runs:
//
//  1. Compute target transforms with [layout.Calculate]
//  2. Give each newly seen item a handle from the pool and fade it in
//  3. Move items whose handle is away from its target
//  4. Fade out items that left the collection and return their handles
//
// # Lifecycle
//
// Each item passes through the statuses new, moving, settled, removing and
// recycling. Animation completions are the only way out of new, moving,
// removing and recycling. Completions find their item through a [HandleID]
// token, so a completion that arrives after its item was forgotten does
// nothing.
//
// # Host Collaborators
//
// The fan draws nothing itself. An [Env] supplies the event loop
// ([Scheduler]), the interpolator ([Tweener]), the display container
// ([Container]) and the hit test ([HitTester]). Package host provides a
// deterministic implementation driven by a virtual clock.
//
// # Events
//
// Subscribers register with [Fan.On]:
//
//	f.On(fan.EventPress, func(ev fan.Event) {
//	    f.SetLifted(ev.Index)
//	})
//
// # Threading
//
// A Fan is single-threaded. Completions and timers are queued as tasks and
// drained from one scheduler post; a pending redraw runs after the queued
// tasks. Hosts that run a real event loop call every method from it.
package fan
