// Package pointcloud owns the raw point set of one loaded scan and its
// per-point boolean attributes.
//
// Points are stored columnar (x, y, z, optional score) and never reordered or
// duplicated after load: indices are stable for the lifetime of the store.
// The showing/selected/highlighted attributes are independent bitsets over
// those indices, mutated only through Store methods. The store provides no
// internal locking; callers serialize structural mutation.
package pointcloud

import (
	"math"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/pclabel/shape"
	"github.com/hupe1980/pclabel/viewer"
)

// Store is the point set of one loaded file.
type Store struct {
	xs, ys, zs []float64
	score      []float64 // nil when the source carries no intensity

	showing     *roaring.Bitmap
	selected    *roaring.Bitmap
	highlighted *roaring.Bitmap

	path string
	vw   viewer.Viewer
}

// New creates a store from coordinate columns. All columns must share one
// length; score may be nil. Every point starts showing, none selected or
// highlighted.
func New(xs, ys, zs, score []float64) *Store {
	s := &Store{
		xs:          xs,
		ys:          ys,
		zs:          zs,
		score:       score,
		showing:     roaring.New(),
		selected:    roaring.New(),
		highlighted: roaring.New(),
		vw:          viewer.Noop{},
	}
	if n := len(xs); n > 0 {
		s.showing.AddRange(0, uint64(n))
	}
	return s
}

// Len returns the number of points.
func (s *Store) Len() int { return len(s.xs) }

// Path returns the file the store was loaded from, if any.
func (s *Store) Path() string { return s.path }

// XYZ returns the coordinates of the point at index i.
func (s *Store) XYZ(i uint32) (x, y, z float64) {
	return s.xs[i], s.ys[i], s.zs[i]
}

// HasScore reports whether the source carried a per-point score column.
func (s *Store) HasScore() bool { return s.score != nil }

// Score returns the score of the point at index i, or 0 without a score
// column.
func (s *Store) Score(i uint32) float64 {
	if s.score == nil {
		return 0
	}
	return s.score[i]
}

// Scores returns the raw score column (nil without one). The slice is owned
// by the store; callers must not mutate it.
func (s *Store) Scores() []float64 { return s.score }

// Showing returns a copy of the showing bitset as a Mask.
func (s *Store) Showing() *Mask {
	return &Mask{rb: s.showing.Clone()}
}

// SetShowing replaces the showing bitset with the given mask.
func (s *Store) SetShowing(m *Mask) {
	s.showing = m.rb.Clone()
}

// ShowAll marks every point showing.
func (s *Store) ShowAll() {
	s.showing.Clear()
	if n := s.Len(); n > 0 {
		s.showing.AddRange(0, uint64(n))
	}
}

// IsShowing reports whether the point at index i is showing.
func (s *Store) IsShowing(i uint32) bool { return s.showing.Contains(i) }

// IsHighlighted reports whether the point at index i is highlighted.
func (s *Store) IsHighlighted(i uint32) bool { return s.highlighted.Contains(i) }

// IsSelected reports whether the point at index i is selected.
func (s *Store) IsSelected(i uint32) bool { return s.selected.Contains(i) }

// Select returns the indices where mask is set. With highlighted true it also
// makes those points the highlighted set; highlighting is exclusive, so any
// previously highlighted points are cleared first.
func (s *Store) Select(mask *Mask, highlighted bool) []uint32 {
	indices := mask.Indices()
	if highlighted {
		s.highlighted = mask.rb.Clone()
	}
	return indices
}

// SetSelected replaces the selected bitset.
func (s *Store) SetSelected(indices []uint32) {
	s.selected.Clear()
	s.selected.AddMany(indices)
}

// Highlight pushes the given indices to the attached viewer. It is a no-op
// when no viewer is attached or the viewer is not ready.
func (s *Store) Highlight(indices []uint32) {
	if !s.ViewerIsReady() {
		return
	}
	s.vw.Highlight(indices)
}

// AttachViewer attaches the external 3D viewer collaborator.
func (s *Store) AttachViewer(v viewer.Viewer) {
	if v == nil {
		v = viewer.Noop{}
	}
	s.vw = v
}

// Viewer returns the attached viewer collaborator.
func (s *Store) Viewer() viewer.Viewer { return s.vw }

// ViewerIsReady reports whether an external 3D viewer is attached and
// initialized.
func (s *Store) ViewerIsReady() bool {
	return s.vw != nil && s.vw.IsReady()
}

// InBox2D returns a mask over all points whose (x, y) falls within the closed
// rectangle. Box corners may be given in either order.
func (s *Store) InBox2D(box shape.Box) *Mask {
	box = box.Normalize()
	m := NewMask()
	for i := range s.xs {
		if s.xs[i] >= box.Min.X && s.xs[i] <= box.Max.X &&
			s.ys[i] >= box.Min.Y && s.ys[i] <= box.Max.Y {
			m.Add(uint32(i))
		}
	}
	return m
}

// Rotate returns all x, y rotated about the origin by the given angle in
// degrees (counter-clockwise positive), z untouched. The store itself is not
// mutated; assign the result back with SetXY to commit the rotation.
func (s *Store) Rotate(degrees float64) (xs, ys []float64) {
	theta := degrees * math.Pi / 180.0
	c, sn := math.Cos(theta), math.Sin(theta)
	xs = make([]float64, len(s.xs))
	ys = make([]float64, len(s.ys))
	for i := range s.xs {
		xs[i] = c*s.xs[i] - sn*s.ys[i]
		ys[i] = sn*s.xs[i] + c*s.ys[i]
	}
	return xs, ys
}

// SetXY replaces the x and y columns. Both slices must have exactly Len
// elements.
func (s *Store) SetXY(xs, ys []float64) {
	if len(xs) != len(s.xs) || len(ys) != len(s.ys) {
		panic("pointcloud: SetXY column length mismatch")
	}
	s.xs, s.ys = xs, ys
}

// Bounds returns the 2D bounding box of all points, or a zero box for an
// empty store.
func (s *Store) Bounds() shape.Box {
	if s.Len() == 0 {
		return shape.Box{}
	}
	b := shape.Box{
		Min: shape.Point{X: s.xs[0], Y: s.ys[0]},
		Max: shape.Point{X: s.xs[0], Y: s.ys[0]},
	}
	for i := 1; i < len(s.xs); i++ {
		b.Min.X = math.Min(b.Min.X, s.xs[i])
		b.Min.Y = math.Min(b.Min.Y, s.ys[i])
		b.Max.X = math.Max(b.Max.X, s.xs[i])
		b.Max.Y = math.Max(b.Max.Y, s.ys[i])
	}
	return b
}
