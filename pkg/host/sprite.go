package host

import (
	"math"

	"github.com/matzehuels/cardfan/pkg/card"
	"github.com/matzehuels/cardfan/pkg/fan"
)

// Sprite is an in-memory card handle.
type Sprite struct {
	card.Face

	x, y    float64
	rot     float64
	opacity float64
	w, h    float64

	// Resets counts how often the sprite was recycled.
	Resets int
}

// NewSprite returns an empty, fully opaque sprite.
func NewSprite() *Sprite {
	return &Sprite{opacity: 1}
}

// Factory adapts NewSprite to a fan handle factory.
func Factory() fan.Handle { return NewSprite() }

// Position returns the lower-left corner of the rotated bounding box.
func (s *Sprite) Position() (float64, float64) { return s.x, s.y }

// SetPosition moves the sprite so its bounding box starts at (x, y).
func (s *Sprite) SetPosition(x, y float64) { s.x, s.y = x, y }

// Rotation returns the rotation in degrees, counter-clockwise.
func (s *Sprite) Rotation() float64 { return s.rot }

// SetRotation rotates the sprite about its center.
func (s *Sprite) SetRotation(deg float64) { s.rot = deg }

// Opacity returns the alpha in [0, 1].
func (s *Sprite) Opacity() float64 { return s.opacity }

// SetOpacity sets the alpha.
func (s *Sprite) SetOpacity(a float64) { s.opacity = a }

// Size returns the unrotated width and height.
func (s *Sprite) Size() (float64, float64) { return s.w, s.h }

// SetSize sets the unrotated width and height.
func (s *Sprite) SetSize(w, h float64) { s.w, s.h = w, h }

// Bind shows item if it is a card.
func (s *Sprite) Bind(item fan.Item) {
	if c, ok := item.(*card.Card); ok {
		s.SetCard(c)
	}
}

// Reset clears the sprite for reuse.
func (s *Sprite) Reset() {
	s.Face.Clear()
	s.x, s.y, s.rot, s.w, s.h = 0, 0, 0, 0, 0
	s.opacity = 1
	s.Resets++
}

// Bounds returns the sprite's rotated bounding box size.
func (s *Sprite) Bounds() (bw, bh float64) {
	sin, cos := math.Sincos(s.rot * math.Pi / 180)
	return math.Abs(s.w*cos) + math.Abs(s.h*sin), math.Abs(s.w*sin) + math.Abs(s.h*cos)
}

// Center returns the rotation pivot.
func (s *Sprite) Center() (cx, cy float64) {
	bw, bh := s.Bounds()
	return s.x + bw/2, s.y + bh/2
}

// Corners returns the four corners of the rotated card, counter-clockwise
// from its own lower-left.
func (s *Sprite) Corners() [4][2]float64 {
	cx, cy := s.Center()
	sin, cos := math.Sincos(s.rot * math.Pi / 180)
	hw, hh := s.w/2, s.h/2
	local := [4][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	var out [4][2]float64
	for i, p := range local {
		out[i] = [2]float64{cx + p[0]*cos - p[1]*sin, cy + p[0]*sin + p[1]*cos}
	}
	return out
}

// Contains reports whether (px, py) lies on the rotated card.
func (s *Sprite) Contains(px, py float64) bool {
	cx, cy := s.Center()
	sin, cos := math.Sincos(-s.rot * math.Pi / 180)
	dx, dy := px-cx, py-cy
	lx := dx*cos - dy*sin
	ly := dx*sin + dy*cos
	return math.Abs(lx) <= s.w/2 && math.Abs(ly) <= s.h/2
}
