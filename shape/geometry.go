package shape

import "math"

// Point is a position in world coordinates on the annotation plane.
type Point struct {
	X float64
	Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Norm returns the Euclidean length of the vector p.
func (p Point) Norm() float64 {
	return math.Hypot(p.X, p.Y)
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Rotate returns p rotated about the origin by the given angle in degrees,
// counter-clockwise positive.
func (p Point) Rotate(degrees float64) Point {
	theta := degrees * math.Pi / 180.0
	c, s := math.Cos(theta), math.Sin(theta)
	return Point{
		X: c*p.X - s*p.Y,
		Y: s*p.X + c*p.Y,
	}
}

// Axis selects one of the two annotation-plane axes.
type Axis int

const (
	// AxisX is the world X axis.
	AxisX Axis = 0
	// AxisY is the world Y axis.
	AxisY Axis = 1
)

// Box is an axis-aligned rectangle given by two opposite corners in world
// coordinates. Corners may be supplied in any order; use Normalize (or the
// accessors, which normalize on the fly) before relying on Min/Max ordering.
type Box struct {
	Min Point
	Max Point
}

// NewBox builds a normalized box from two opposite corners.
func NewBox(a, b Point) Box {
	return Box{Min: a, Max: b}.Normalize()
}

// Normalize returns the box with Min holding the per-axis minima and Max the
// per-axis maxima.
func (b Box) Normalize() Box {
	if b.Min.X > b.Max.X {
		b.Min.X, b.Max.X = b.Max.X, b.Min.X
	}
	if b.Min.Y > b.Max.Y {
		b.Min.Y, b.Max.Y = b.Max.Y, b.Min.Y
	}
	return b
}

// Contains reports whether p lies within the closed rectangle.
func (b Box) Contains(p Point) bool {
	b = b.Normalize()
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Span returns the extent of the box along the given axis.
func (b Box) Span(axis Axis) float64 {
	b = b.Normalize()
	if axis == AxisX {
		return b.Max.X - b.Min.X
	}
	return b.Max.Y - b.Min.Y
}

// LongAxis returns the axis of greater extent. Ties resolve to AxisX.
func (b Box) LongAxis() Axis {
	if b.Span(AxisX) >= b.Span(AxisY) {
		return AxisX
	}
	return AxisY
}

// Center returns the box midpoint.
func (b Box) Center() Point {
	b = b.Normalize()
	return Point{
		X: (b.Min.X + b.Max.X) / 2.0,
		Y: (b.Min.Y + b.Max.Y) / 2.0,
	}
}

// Union returns the smallest box covering both b and o.
func (b Box) Union(o Box) Box {
	b, o = b.Normalize(), o.Normalize()
	return Box{
		Min: Point{X: math.Min(b.Min.X, o.Min.X), Y: math.Min(b.Min.Y, o.Min.Y)},
		Max: Point{X: math.Max(b.Max.X, o.Max.X), Y: math.Max(b.Max.Y, o.Max.Y)},
	}
}

// Expand returns the box grown by margin on every side. A negative margin
// shrinks the box and may produce an inverted (empty) rectangle.
func (b Box) Expand(margin float64) Box {
	b = b.Normalize()
	return Box{
		Min: Point{X: b.Min.X - margin, Y: b.Min.Y - margin},
		Max: Point{X: b.Max.X + margin, Y: b.Max.Y + margin},
	}
}
