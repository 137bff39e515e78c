// Package host is a deterministic single-threaded host for fans.
//
// A [Clock] implements fan.Scheduler and fan.Tweener on virtual time: nothing
// happens until Advance is called. [Sprite] is an in-memory card handle and
// [Stage] an ordered container with a geometric hit test. Tests, the
// headless simulator, the terminal UI and the ebiten demo all drive fans
// through this package.
package host

import (
	"slices"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/matzehuels/cardfan/pkg/fan"
)

type timer struct {
	due       time.Duration
	seq       uint64
	fn        func()
	cancelled bool
}

type tween struct {
	h         fan.Handle
	p         fan.Property
	to        float64
	tw        *gween.Tween
	done      func()
	cancelled bool
	finished  bool
}

// Clock is a virtual frame clock.
type Clock struct {
	now    time.Duration
	seq    uint64
	posts  []func()
	timers []*timer
	tweens []*tween
}

// NewClock returns a clock at time zero.
func NewClock() *Clock {
	return &Clock{}
}

// Now returns the virtual time elapsed since the clock was created.
func (c *Clock) Now() time.Duration { return c.now }

// Post runs fn during the next Advance.
func (c *Clock) Post(fn func()) {
	c.posts = append(c.posts, fn)
}

// After runs fn once the clock has advanced by d.
func (c *Clock) After(d time.Duration, fn func()) func() {
	c.seq++
	t := &timer{due: c.now + d, seq: c.seq, fn: fn}
	c.timers = append(c.timers, t)
	return func() { t.cancelled = true }
}

// Tween animates property p of h linearly to the value to over d.
func (c *Clock) Tween(h fan.Handle, p fan.Property, to float64, d time.Duration, done func()) func() {
	t := &tween{h: h, p: p, to: to, done: done}
	if d <= 0 {
		fan.Set(h, p, to)
		t.finished = true
		c.Post(func() {
			if !t.cancelled && done != nil {
				done()
			}
		})
		return func() { t.cancelled = true }
	}
	from := fan.Get(h, p)
	t.tw = gween.New(float32(from), float32(to), float32(d.Seconds()), ease.Linear)
	c.tweens = append(c.tweens, t)
	return func() { t.cancelled = true }
}

// Advance moves virtual time forward by dt: posted functions run, due timers
// fire, tweens step and finished tweens report completion. Functions posted
// meanwhile run before Advance returns.
func (c *Clock) Advance(dt time.Duration) {
	c.runPosts()
	c.now += dt
	c.fireTimers()
	c.stepTweens(dt)
	c.runPosts()
}

// Idle reports whether nothing is posted, pending or animating.
func (c *Clock) Idle() bool {
	if len(c.posts) > 0 {
		return false
	}
	for _, t := range c.timers {
		if !t.cancelled {
			return false
		}
	}
	for _, t := range c.tweens {
		if !t.cancelled && !t.finished {
			return false
		}
	}
	return true
}

// Settle advances in steps of step until the clock is idle or limit virtual
// time has passed. It returns the virtual time spent.
func (c *Clock) Settle(step, limit time.Duration) time.Duration {
	start := c.now
	c.runPosts()
	for !c.Idle() && c.now-start < limit {
		c.Advance(step)
	}
	return c.now - start
}

// Animating returns the number of running tweens.
func (c *Clock) Animating() int {
	n := 0
	for _, t := range c.tweens {
		if !t.cancelled && !t.finished {
			n++
		}
	}
	return n
}

func (c *Clock) runPosts() {
	for len(c.posts) > 0 {
		batch := c.posts
		c.posts = nil
		for _, fn := range batch {
			fn()
		}
	}
}

func (c *Clock) fireTimers() {
	for {
		var next *timer
		for _, t := range c.timers {
			if t.cancelled || t.due > c.now {
				continue
			}
			if next == nil || t.due < next.due || (t.due == next.due && t.seq < next.seq) {
				next = t
			}
		}
		if next == nil {
			break
		}
		c.timers = slices.DeleteFunc(c.timers, func(t *timer) bool { return t == next })
		next.fn()
	}
	c.timers = slices.DeleteFunc(c.timers, func(t *timer) bool { return t.cancelled })
}

func (c *Clock) stepTweens(dt time.Duration) {
	step := float32(dt.Seconds())
	for _, t := range slices.Clone(c.tweens) {
		if t.cancelled || t.finished {
			continue
		}
		v, done := t.tw.Update(step)
		if !done {
			fan.Set(t.h, t.p, float64(v))
			continue
		}
		fan.Set(t.h, t.p, t.to)
		t.finished = true
		if t.done != nil {
			t.done()
		}
	}
	c.tweens = slices.DeleteFunc(c.tweens, func(t *tween) bool { return t.cancelled || t.finished })
}
