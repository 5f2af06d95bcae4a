package geometry

import (
	"image"
	"math"
)

// Point2D is a position on the selectable surface, in surface pixels.
// Transforms never mutate the receiver; they return a new value.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point2D{X: x, Y: y}.
func Pt(x, y float64) Point2D { return Point2D{X: x, Y: y} }

// ClampToRect clamps X into [0, r.Width] and Y into [0, r.Height].
func (p Point2D) ClampToRect(r Rect) Point2D {
	return Point2D{X: clamp(p.X, 0, r.Width), Y: clamp(p.Y, 0, r.Height)}
}

// Add returns p translated by (dx, dy).
func (p Point2D) Add(dx, dy float64) Point2D { return Point2D{X: p.X + dx, Y: p.Y + dy} }

// ImagePoint rounds p to the nearest integer pixel.
func (p Point2D) ImagePoint() image.Point {
	return image.Pt(int(math.Round(p.X)), int(math.Round(p.Y)))
}

// Rect is an extent without an origin. It describes either the surface bounds
// or the size of a region. Resize mutates in place and does not validate.
type Rect struct {
	Width, Height float64
}

// NewRect returns a Rect of the given extent.
func NewRect(w, h float64) Rect { return Rect{Width: w, Height: h} }

// Resize replaces the extent. Negative values are accepted as given.
func (r *Rect) Resize(w, h float64) {
	r.Width, r.Height = w, h
}

// ConstrainSquare moves p onto the equal-offset diagonal through ref, using
// the shorter of the two axis deltas and keeping the sign of each delta.
// The result is never farther from ref than p on either axis.
func ConstrainSquare(p, ref Point2D) Point2D {
	dx, dy := p.X-ref.X, p.Y-ref.Y
	d := math.Min(math.Abs(dx), math.Abs(dy))
	return Point2D{X: ref.X + d*sign(dx), Y: ref.Y + d*sign(dy)}
}

// Region is an axis-aligned rectangle given by its two extreme corners.
// Min <= Max holds componentwise for values built with RegionFromCorners.
type Region struct {
	Min Point2D `json:"min"`
	Max Point2D `json:"max"`
}

// RegionFromCorners normalizes two opposite corners in any order.
func RegionFromCorners(a, b Point2D) Region {
	return Region{
		Min: Point2D{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: Point2D{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

// Origin returns the top-left corner.
func (r Region) Origin() Point2D { return r.Min }

// Size returns the extent of the region.
func (r Region) Size() Rect { return Rect{Width: r.Max.X - r.Min.X, Height: r.Max.Y - r.Min.Y} }

// Empty reports whether the region has no area.
func (r Region) Empty() bool { return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y }

// ImageRect converts the region to integer pixel coordinates.
func (r Region) ImageRect() image.Rectangle {
	return image.Rectangle{Min: r.Min.ImagePoint(), Max: r.Max.ImagePoint()}.Canon()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
