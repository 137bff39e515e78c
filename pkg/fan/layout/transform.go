package layout

import "math"

// angleSnap is the rotation, in radians, below which an angle is treated as
// exactly zero. Near-zero rotations render as jitter on the centered item.
const angleSnap = 0.001

// Point is a position in container coordinates (origin bottom-left, y up).
type Point struct {
	X, Y float64
}

// Transform is the computed placement of one item.
//
// X and Y denote the lower-left corner of the item's rotated bounding box,
// not its center. The host rotates the item about the center of that box.
// Sin, Cos and the bounding box are computed once at construction.
type Transform struct {
	X, Y   float64 // lower-left corner of the rotated bounding box
	Angle  float64 // radians, counter-clockwise
	Sin    float64
	Cos    float64
	BoundW float64 // rotated bounding box width
	BoundH float64 // rotated bounding box height
	Width  float64 // unrotated item width
	Height float64 // unrotated item height
}

// NewTransform places an item of size w×h with its center at (cx, cy),
// rotated by angle radians.
func NewTransform(cx, cy, angle, w, h float64) Transform {
	if math.Abs(angle) < angleSnap {
		angle = 0
	}
	s, c := 0.0, 1.0
	if angle != 0 {
		s, c = math.Sincos(angle)
	}
	bw := math.Abs(w*c) + math.Abs(h*s)
	bh := math.Abs(w*s) + math.Abs(h*c)
	return Transform{
		X:      cx - bw/2,
		Y:      cy - bh/2,
		Angle:  angle,
		Sin:    s,
		Cos:    c,
		BoundW: bw,
		BoundH: bh,
		Width:  w,
		Height: h,
	}
}

// Center returns the rotation pivot of the item.
func (t Transform) Center() Point {
	return Point{X: t.X + t.BoundW/2, Y: t.Y + t.BoundH/2}
}

// Degrees returns the rotation in degrees.
func (t Transform) Degrees() float64 {
	return t.Angle * 180 / math.Pi
}

// Up returns the item's local "up" unit vector.
func (t Transform) Up() Point {
	return Point{X: -t.Sin, Y: t.Cos}
}

// Translate returns t moved by (dx, dy).
func (t Transform) Translate(dx, dy float64) Transform {
	t.X += dx
	t.Y += dy
	return t
}

// Lift returns t moved by d along its own up vector.
func (t Transform) Lift(d float64) Transform {
	return t.Translate(-t.Sin*d, t.Cos*d)
}
