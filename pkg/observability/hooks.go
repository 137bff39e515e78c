// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about redraws, animations, handle pooling and gesture
// classification.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are called from the fan's single event loop and must return quickly.
// None of them take a context: the fan core never blocks.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetFanHooks(&myFanHooks{})
//	    observability.SetPoolHooks(&myPoolHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Fan().OnRedraw(items, animated, time.Since(start))
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Fan Hooks
// =============================================================================

// FanHooks receives events from the fan lifecycle.
type FanHooks interface {
	// OnRedraw records one reconciliation pass.
	OnRedraw(items, animated int, duration time.Duration)

	// OnAnimationStart records an animation group being started for an item
	// in the given lifecycle status.
	OnAnimationStart(status string, tracks int)

	// OnRemoved records an item leaving the fan for good.
	OnRemoved(recycled bool)
}

// =============================================================================
// Pool Hooks
// =============================================================================

// PoolHooks receives events from the display handle pool.
type PoolHooks interface {
	// OnAcquire records a handle leaving the pool.
	OnAcquire(reused bool)

	// OnRelease records a handle being returned to the pool.
	OnRelease(kept bool)
}

// =============================================================================
// Gesture Hooks
// =============================================================================

// GestureHooks receives events from the gesture classifier.
type GestureHooks interface {
	// OnClassify records the final classification of a contact.
	OnClassify(gesture string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopFanHooks is a no-op implementation of FanHooks.
type NoopFanHooks struct{}

func (NoopFanHooks) OnRedraw(int, int, time.Duration) {}
func (NoopFanHooks) OnAnimationStart(string, int)     {}
func (NoopFanHooks) OnRemoved(bool)                   {}

// NoopPoolHooks is a no-op implementation of PoolHooks.
type NoopPoolHooks struct{}

func (NoopPoolHooks) OnAcquire(bool) {}
func (NoopPoolHooks) OnRelease(bool) {}

// NoopGestureHooks is a no-op implementation of GestureHooks.
type NoopGestureHooks struct{}

func (NoopGestureHooks) OnClassify(string) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	fanHooks     FanHooks     = NoopFanHooks{}
	poolHooks    PoolHooks    = NoopPoolHooks{}
	gestureHooks GestureHooks = NoopGestureHooks{}
	hooksMu      sync.RWMutex
)

// SetFanHooks registers custom fan hooks.
// This should be called once at application startup before any fan is created.
func SetFanHooks(h FanHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		fanHooks = h
	}
}

// SetPoolHooks registers custom pool hooks.
func SetPoolHooks(h PoolHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		poolHooks = h
	}
}

// SetGestureHooks registers custom gesture hooks.
func SetGestureHooks(h GestureHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		gestureHooks = h
	}
}

// Fan returns the registered fan hooks.
func Fan() FanHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return fanHooks
}

// Pool returns the registered pool hooks.
func Pool() PoolHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return poolHooks
}

// Gesture returns the registered gesture hooks.
func Gesture() GestureHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return gestureHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	fanHooks = NoopFanHooks{}
	poolHooks = NoopPoolHooks{}
	gestureHooks = NoopGestureHooks{}
}
