package host

import (
	"slices"

	"github.com/matzehuels/cardfan/pkg/fan"
)

// minOpacity is the opacity below which a sprite does not receive hits.
const minOpacity = 0.05

// Stage is an ordered sprite container. The last sprite draws on top.
type Stage struct {
	sprites []*Sprite
}

// NewStage returns an empty stage.
func NewStage() *Stage {
	return &Stage{}
}

// Attach adds h on top, raising it if already attached. Handles that are not
// sprites are ignored.
func (s *Stage) Attach(h fan.Handle) {
	sp, ok := h.(*Sprite)
	if !ok {
		return
	}
	s.sprites = slices.DeleteFunc(s.sprites, func(x *Sprite) bool { return x == sp })
	s.sprites = append(s.sprites, sp)
}

// Detach removes h.
func (s *Stage) Detach(h fan.Handle) {
	sp, ok := h.(*Sprite)
	if !ok {
		return
	}
	s.sprites = slices.DeleteFunc(s.sprites, func(x *Sprite) bool { return x == sp })
}

// Sprites returns the attached sprites bottom to top.
func (s *Stage) Sprites() []*Sprite {
	return slices.Clone(s.sprites)
}

// Len returns the number of attached sprites.
func (s *Stage) Len() int { return len(s.sprites) }

// Contains reports whether h is attached.
func (s *Stage) Contains(h fan.Handle) bool {
	sp, ok := h.(*Sprite)
	return ok && slices.Contains(s.sprites, sp)
}

// Pick returns the topmost visible sprite under (x, y).
func (s *Stage) Pick(x, y float64) (*Sprite, bool) {
	for i := len(s.sprites) - 1; i >= 0; i-- {
		sp := s.sprites[i]
		if sp.Opacity() >= minOpacity && sp.Contains(x, y) {
			return sp, true
		}
	}
	return nil, false
}

// HitTester resolves picks to fan indices through index, typically
// (*fan.Fan).IndexOf.
func (s *Stage) HitTester(index func(fan.Handle) (int, bool)) fan.HitTester {
	return fan.HitTesterFunc(func(x, y float64) (int, bool) {
		sp, ok := s.Pick(x, y)
		if !ok {
			return -1, false
		}
		return index(sp)
	})
}

// Env returns a fan environment backed by clock and s.
func (s *Stage) Env(clock *Clock, hit fan.HitTester) fan.Env {
	return fan.Env{Scheduler: clock, Tweener: clock, Container: s, HitTester: hit}
}
