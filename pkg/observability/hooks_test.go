package observability

import (
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	// Fan hooks
	f := NoopFanHooks{}
	f.OnRedraw(52, 3, time.Millisecond)
	f.OnAnimationStart("moving", 3)
	f.OnRemoved(true)

	// Pool hooks
	p := NoopPoolHooks{}
	p.OnAcquire(true)
	p.OnRelease(false)

	// Gesture hooks
	g := NoopGestureHooks{}
	g.OnClassify("tap")
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Fan().(NoopFanHooks); !ok {
		t.Error("Fan() should return NoopFanHooks by default")
	}
	if _, ok := Pool().(NoopPoolHooks); !ok {
		t.Error("Pool() should return NoopPoolHooks by default")
	}
	if _, ok := Gesture().(NoopGestureHooks); !ok {
		t.Error("Gesture() should return NoopGestureHooks by default")
	}

	// Set custom hooks
	customFan := &testFanHooks{}
	SetFanHooks(customFan)
	if Fan() != customFan {
		t.Error("SetFanHooks should set custom hooks")
	}

	customPool := &testPoolHooks{}
	SetPoolHooks(customPool)
	if Pool() != customPool {
		t.Error("SetPoolHooks should set custom hooks")
	}

	customGesture := &testGestureHooks{}
	SetGestureHooks(customGesture)
	if Gesture() != customGesture {
		t.Error("SetGestureHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Fan().(NoopFanHooks); !ok {
		t.Error("Reset() should restore NoopFanHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testFanHooks{}
	SetFanHooks(custom)

	// Setting nil should be ignored
	SetFanHooks(nil)

	if Fan() != custom {
		t.Error("SetFanHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testFanHooks struct{ NoopFanHooks }
type testPoolHooks struct{ NoopPoolHooks }
type testGestureHooks struct{ NoopGestureHooks }
