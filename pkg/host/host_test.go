package host

import (
	"math"
	"testing"
	"time"

	"github.com/matzehuels/cardfan/pkg/card"
	"github.com/matzehuels/cardfan/pkg/fan"
)

func TestClockPostAndTimers(t *testing.T) {
	c := NewClock()
	var got []string

	c.Post(func() {
		got = append(got, "post")
		c.Post(func() { got = append(got, "nested") })
	})
	c.After(30*time.Millisecond, func() { got = append(got, "t30") })
	c.After(10*time.Millisecond, func() { got = append(got, "t10") })
	stop := c.After(20*time.Millisecond, func() { got = append(got, "t20") })
	stop()

	c.Advance(5 * time.Millisecond)
	if want := []string{"post", "nested"}; !equal(got, want) {
		t.Fatalf("after 5ms = %v, want %v", got, want)
	}
	c.Advance(30 * time.Millisecond)
	if want := []string{"post", "nested", "t10", "t30"}; !equal(got, want) {
		t.Errorf("after 35ms = %v, want %v", got, want)
	}
	if !c.Idle() {
		t.Error("Idle() = false, want true")
	}
}

func TestClockTween(t *testing.T) {
	c := NewClock()
	s := NewSprite()
	done := 0
	c.Tween(s, fan.PropX, 100, 100*time.Millisecond, func() { done++ })

	c.Advance(50 * time.Millisecond)
	if x, _ := s.Position(); math.Abs(x-50) > 0.01 {
		t.Errorf("x at half time = %v, want 50", x)
	}
	if done != 0 {
		t.Errorf("done = %d before the end", done)
	}

	c.Advance(60 * time.Millisecond)
	if x, _ := s.Position(); x != 100 {
		t.Errorf("x at end = %v, want exactly 100", x)
	}
	if done != 1 {
		t.Errorf("done = %d, want 1", done)
	}
	c.Advance(time.Second)
	if done != 1 {
		t.Errorf("done fired again: %d", done)
	}
}

func TestClockTweenCancel(t *testing.T) {
	c := NewClock()
	s := NewSprite()
	done := false
	cancel := c.Tween(s, fan.PropOpacity, 0, 100*time.Millisecond, func() { done = true })
	c.Advance(20 * time.Millisecond)
	cancel()
	op := s.Opacity()
	c.Advance(time.Second)
	if done {
		t.Error("cancelled tween reported completion")
	}
	if s.Opacity() != op {
		t.Errorf("opacity moved after cancel: %v -> %v", op, s.Opacity())
	}

	// Zero duration applies at once and completes on the next advance.
	zero := false
	c.Tween(s, fan.PropRotation, 45, 0, func() { zero = true })
	if s.Rotation() != 45 {
		t.Errorf("rotation = %v, want 45", s.Rotation())
	}
	c.Advance(0)
	if !zero {
		t.Error("zero-duration tween did not complete")
	}
}

func TestSpriteContains(t *testing.T) {
	s := NewSprite()
	s.SetSize(100, 200)
	s.SetRotation(90)
	bw, bh := s.Bounds()
	if math.Abs(bw-200) > 1e-9 || math.Abs(bh-100) > 1e-9 {
		t.Fatalf("Bounds() = (%v, %v), want (200, 100)", bw, bh)
	}
	// Lower-left of the bounding box at origin: center is (100, 50).
	tests := []struct {
		x, y float64
		want bool
	}{
		{100, 50, true},
		{5, 50, true},
		{100, 99, true},
		{100, 101, false},
		{201, 50, false},
	}
	for _, tt := range tests {
		if got := s.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestSpriteBindReset(t *testing.T) {
	s := NewSprite()
	c := card.New("9S")
	s.Bind(c)
	if s.Card() != c {
		t.Fatal("Bind() did not show the card")
	}
	s.SetOpacity(0.3)
	s.SetPosition(10, 10)
	s.Reset()
	if s.Card() != nil || s.Opacity() != 1 || s.Resets != 1 {
		t.Errorf("after Reset(): card=%v opacity=%v resets=%d", s.Card(), s.Opacity(), s.Resets)
	}
	if x, y := s.Position(); x != 0 || y != 0 {
		t.Errorf("Position() = (%v, %v), want origin", x, y)
	}
}

func TestStagePick(t *testing.T) {
	st := NewStage()
	a, b := NewSprite(), NewSprite()
	for _, sp := range []*Sprite{a, b} {
		sp.SetSize(100, 100)
		st.Attach(sp)
	}
	b.SetPosition(50, 0)

	if got, _ := st.Pick(75, 50); got != b {
		t.Error("Pick() in overlap did not return the top sprite")
	}
	st.Attach(a)
	if got, _ := st.Pick(75, 50); got != a {
		t.Error("Attach() did not raise the sprite")
	}
	if st.Len() != 2 {
		t.Errorf("Len() = %d, want 2", st.Len())
	}

	a.SetOpacity(0)
	if got, _ := st.Pick(75, 50); got != b {
		t.Error("Pick() hit a transparent sprite")
	}

	st.Detach(b)
	if _, ok := st.Pick(75, 50); ok {
		t.Error("Pick() hit a detached sprite")
	}
	if st.Contains(b) {
		t.Error("Contains() = true after Detach()")
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
