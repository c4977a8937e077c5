// Package query composes kind-aware spatial queries over a point store:
// snapping freshly drawn annotation vertices to physical structure and
// highlighting the points a shape covers.
package query

import (
	"math"

	"github.com/hupe1980/pclabel/pointcloud"
	"github.com/hupe1980/pclabel/shape"
)

// Options tunes the snapping behavior.
type Options struct {
	// Radius is the 2D neighborhood radius for center/corner snapping.
	Radius float64

	// CrosshairThreshold is the axis distance below which a new beam snaps
	// onto the row or column of an existing beam. Beams sit on a regular
	// grid, so aligning with neighbors beats the local centroid.
	CrosshairThreshold float64
}

// DefaultOptions returns the snapping defaults.
func DefaultOptions() Options {
	return Options{
		Radius:             0.5,
		CrosshairThreshold: 0.3,
	}
}

// Query dispatches spatial operations by shape kind.
type Query struct {
	store *pointcloud.Store
	opts  Options
}

// New creates a Query over the given store.
func New(store *pointcloud.Store, opts Options) *Query {
	if opts.Radius <= 0 {
		opts = DefaultOptions()
	}
	return &Query{store: store, opts: opts}
}

// Snap adjusts the vertices of a freshly drawn shape to the physical
// structure under it:
//
//   - beams snap to the nearest beam-grid crosshair when one is within the
//     threshold, otherwise to the neighborhood centroid;
//   - poles snap to the neighborhood centroid;
//   - walls snap every vertex independently to the nearest structural corner.
//
// Racks are not snapped here; their corners are maintained by rack.Editor
// tightening. Other kinds pass through unchanged. shapes provides the
// existing annotations for crosshair lookup.
func (q *Query) Snap(s *shape.Shape, shapes []*shape.Shape) {
	switch s.Kind {
	case shape.KindBeam:
		if len(s.Points) == 0 {
			return
		}
		if p, ok := q.CrosshairIntersection(s.Points[0], shapes); ok {
			s.Points[0] = p
			return
		}
		s.Points[0] = q.store.SnapToCenter(s.Points[0], q.opts.Radius)
	case shape.KindPole:
		if len(s.Points) == 0 {
			return
		}
		s.Points[0] = q.store.SnapToCenter(s.Points[0], q.opts.Radius)
	case shape.KindWall:
		for i, p := range s.Points {
			s.Points[i] = q.store.SnapToCorner(p, q.opts.Radius)
		}
	}
}

// CrosshairIntersection aligns p with the beam grid: when an existing beam's
// x (or y) coordinate is within the threshold, p's coordinate is replaced by
// it. Both axes can snap independently; ok reports whether at least one did.
func (q *Query) CrosshairIntersection(p shape.Point, shapes []*shape.Shape) (snapped shape.Point, ok bool) {
	snapped = p
	for _, s := range shapes {
		if s.Kind != shape.KindBeam || len(s.Points) == 0 {
			continue
		}
		b := s.Points[0]
		if math.Abs(b.X-p.X) < q.opts.CrosshairThreshold {
			snapped.X = b.X
			ok = true
		}
		if math.Abs(b.Y-p.Y) < q.opts.CrosshairThreshold {
			snapped.Y = b.Y
			ok = true
		}
	}
	return snapped, ok
}

// Highlight boxes around point annotations, in world units.
const (
	beamHighlightMargin = 0.1
	poleHighlightMargin = 0.05
)

// HighlightBox returns the 2D box of points a shape covers for viewer
// highlighting: a small box around a beam or pole point, the rectangle of a
// rack. Kinds without a meaningful point region return ok false.
func (q *Query) HighlightBox(s *shape.Shape) (box shape.Box, ok bool) {
	if len(s.Points) == 0 {
		return shape.Box{}, false
	}
	switch {
	case s.Kind == shape.KindBeam:
		p := s.Points[0]
		return shape.Box{Min: p, Max: p}.Expand(beamHighlightMargin), true
	case s.Kind == shape.KindPole:
		p := s.Points[0]
		return shape.Box{Min: p, Max: p}.Expand(poleHighlightMargin), true
	case s.Kind.IsRack():
		return s.Box(), true
	default:
		return shape.Box{}, false
	}
}

// HighlightShape selects the points the shape covers and pushes them to the
// attached viewer. A shape covering no points is a routine no-op.
func (q *Query) HighlightShape(s *shape.Shape) {
	q.HighlightShapes(s)
}

// HighlightShapes selects the union of the points the given shapes cover and
// pushes it to the viewer as one highlight set. Nil shapes and shapes
// covering no points contribute nothing.
func (q *Query) HighlightShapes(shapes ...*shape.Shape) {
	union := pointcloud.NewMask()
	for _, s := range shapes {
		if s == nil {
			continue
		}
		box, ok := q.HighlightBox(s)
		if !ok {
			continue
		}
		union.Or(q.store.InBox2D(box))
	}
	if union.IsEmpty() {
		return
	}
	q.store.Highlight(q.store.Select(union, false))
}
