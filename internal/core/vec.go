package core

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vec is a point or direction in logical arena pixels (y axis up).
type Vec = r2.Vec

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vec) float64 {
	return r2.Norm(r2.Sub(a, b))
}

// Scale returns v multiplied by f.
func Scale(v Vec, f float64) Vec {
	return r2.Scale(f, v)
}

// Heading returns the unit vector for a rotation angle. Angle 0 points up,
// positive angles turn counter-clockwise.
func Heading(angle float64) Vec {
	return Vec{X: -math.Sin(angle), Y: math.Cos(angle)}
}

// FRect is an axis-aligned rectangle in logical pixels.
type FRect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Contains reports whether p lies inside r, edges included.
func (r FRect) Contains(p Vec) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// Width returns the horizontal extent.
func (r FRect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent.
func (r FRect) Height() float64 { return r.MaxY - r.MinY }

// ClampF restricts v to [lo, hi].
func ClampF(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
