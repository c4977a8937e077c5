// Package shape defines the annotation geometry model: 2D points and boxes in
// world coordinates, the closed annotation Kind enumeration, and the Shape
// type that label files persist.
package shape

// Shape is one annotation: a label, a geometric type and an ordered vertex
// list in world coordinates. Rectangles always carry exactly two opposite
// corners; points exactly one vertex. The engine never stores pixel
// coordinates in a Shape.
type Shape struct {
	Label   string
	Kind    Kind
	Type    Type
	Points  []Point
	GroupID *int
	Flags   map[string]bool
}

// New creates a shape with the kind derived from the label and the geometric
// type derived from the kind.
func New(label string, points ...Point) *Shape {
	k := KindOf(label)
	return &Shape{
		Label:  label,
		Kind:   k,
		Type:   k.DrawType(),
		Points: points,
		Flags:  map[string]bool{},
	}
}

// Clone returns a deep copy of the shape.
func (s *Shape) Clone() *Shape {
	c := *s
	c.Points = make([]Point, len(s.Points))
	copy(c.Points, s.Points)
	if s.GroupID != nil {
		id := *s.GroupID
		c.GroupID = &id
	}
	c.Flags = make(map[string]bool, len(s.Flags))
	for k, v := range s.Flags {
		c.Flags[k] = v
	}
	return &c
}

// Box returns the shape's two-corner rectangle. It is only meaningful for
// rectangle shapes; for other types it returns the bounding box of the
// vertices.
func (s *Shape) Box() Box {
	if len(s.Points) == 0 {
		return Box{}
	}
	b := Box{Min: s.Points[0], Max: s.Points[0]}
	for _, p := range s.Points[1:] {
		b = b.Union(Box{Min: p, Max: p})
	}
	return b.Normalize()
}

// SetBox replaces the vertices of a rectangle shape with the two corners of
// the given box, normalized.
func (s *Shape) SetBox(b Box) {
	b = b.Normalize()
	s.Points = []Point{b.Min, b.Max}
}

// ContainsPoint reports whether p lies inside the shape. Rectangles test the
// closed box; all other types test the bounding box of the vertices, which is
// what interactive hit-testing needs from this engine.
func (s *Shape) ContainsPoint(p Point) bool {
	return s.Box().Contains(p)
}

// Rotate rotates every vertex about the world origin by the given angle in
// degrees, counter-clockwise positive.
func (s *Shape) Rotate(degrees float64) {
	for i, p := range s.Points {
		s.Points[i] = p.Rotate(degrees)
	}
}
