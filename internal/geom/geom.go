package geom

import "math"

// Point is a 2D coordinate. Depending on context it is either a logical
// (unscaled) position or a canvas pixel position.
type Point struct {
	X float64
	Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Scale multiplies each axis independently.
func (p Point) Scale(sx, sy float64) Point {
	return Point{X: p.X * sx, Y: p.Y * sy}
}

// Near reports whether p and q differ by less than eps on both axes.
func (p Point) Near(q Point, eps float64) bool {
	return math.Abs(p.X-q.X) < eps && math.Abs(p.Y-q.Y) < eps
}

// Rect is an axis-aligned rectangle. Max is exclusive for hit testing.
type Rect struct {
	Min Point
	Max Point
}

// RectFromSize builds a rect from its top-left corner and size.
func RectFromSize(x, y, width, height float64) Rect {
	return Rect{
		Min: Point{X: x, Y: y},
		Max: Point{X: x + width, Y: y + height},
	}
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// ContainsRect reports whether o lies fully inside r (edges may touch).
// A small tolerance absorbs float rounding from the scale round trip.
func (r Rect) ContainsRect(o Rect) bool {
	const eps = 1e-6
	return o.Min.X >= r.Min.X-eps && o.Max.X <= r.Max.X+eps &&
		o.Min.Y >= r.Min.Y-eps && o.Max.Y <= r.Max.Y+eps
}
