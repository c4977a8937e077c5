package pointcloud

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pclabel/shape"
	"github.com/hupe1980/pclabel/viewer"
)

func newTestStore() *Store {
	// A 3x3 unit grid plus one outlier.
	var xs, ys, zs []float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			xs = append(xs, float64(i))
			ys = append(ys, float64(j))
			zs = append(zs, 1.0)
		}
	}
	xs = append(xs, 100)
	ys = append(ys, 100)
	zs = append(zs, 1.0)
	return New(xs, ys, zs, nil)
}

func TestStoreNewShowsEverything(t *testing.T) {
	s := newTestStore()
	require.Equal(t, 10, s.Len())
	for i := range uint32(10) {
		assert.True(t, s.IsShowing(i))
	}
}

func TestInBox2D(t *testing.T) {
	s := newTestStore()

	mask := s.InBox2D(shape.NewBox(shape.Point{X: -0.5, Y: -0.5}, shape.Point{X: 1.5, Y: 1.5}))
	assert.Equal(t, uint64(4), mask.Cardinality())

	// Boundary is inclusive.
	mask = s.InBox2D(shape.NewBox(shape.Point{X: 0, Y: 0}, shape.Point{X: 2, Y: 2}))
	assert.Equal(t, uint64(9), mask.Cardinality())
}

func TestInBox2DCornerOrderIrrelevant(t *testing.T) {
	s := newTestStore()

	a := s.InBox2D(shape.NewBox(shape.Point{X: -0.5, Y: -0.5}, shape.Point{X: 1.5, Y: 1.5}))
	b := s.InBox2D(shape.NewBox(shape.Point{X: 1.5, Y: 1.5}, shape.Point{X: -0.5, Y: -0.5}))
	assert.Equal(t, a.Indices(), b.Indices())
}

func TestSelectExclusiveHighlight(t *testing.T) {
	s := newTestStore()

	first := s.InBox2D(shape.NewBox(shape.Point{X: -0.5, Y: -0.5}, shape.Point{X: 0.5, Y: 0.5}))
	s.Select(first, true)
	for i := range first.All() {
		assert.True(t, s.IsHighlighted(i))
	}

	second := s.InBox2D(shape.NewBox(shape.Point{X: 1.5, Y: 1.5}, shape.Point{X: 2.5, Y: 2.5}))
	s.Select(second, true)

	// Highlighting is exclusive: the first batch is cleared.
	for i := range first.All() {
		assert.False(t, s.IsHighlighted(i))
	}
	for i := range second.All() {
		assert.True(t, s.IsHighlighted(i))
	}
}

func TestHighlightRequiresReadyViewer(t *testing.T) {
	s := newTestStore()

	rec := &viewer.Recorder{}
	s.AttachViewer(rec)

	s.Highlight([]uint32{1, 2})
	assert.Empty(t, rec.Highlights)

	rec.Ready = true
	s.Highlight([]uint32{1, 2})
	require.Len(t, rec.Highlights, 1)
	assert.Equal(t, []uint32{1, 2}, rec.Highlights[0])
}

func TestRotateRoundTrip(t *testing.T) {
	s := newTestStore()

	xs0 := make([]float64, s.Len())
	ys0 := make([]float64, s.Len())
	for i := range uint32(s.Len()) {
		xs0[i], ys0[i], _ = s.XYZ(i)
	}

	xs, ys := s.Rotate(33)
	s.SetXY(xs, ys)
	xs, ys = s.Rotate(-33)
	s.SetXY(xs, ys)

	for i := range uint32(s.Len()) {
		x, y, _ := s.XYZ(i)
		assert.InDelta(t, xs0[i], x, 1e-9)
		assert.InDelta(t, ys0[i], y, 1e-9)
	}
}

func TestSetXYLengthMismatchPanics(t *testing.T) {
	s := newTestStore()
	assert.Panics(t, func() {
		s.SetXY([]float64{1}, []float64{2})
	})
}

func TestSnapToCenter(t *testing.T) {
	// Four points around (1,1); centroid is exactly (1,1).
	s := New(
		[]float64{0.9, 1.1, 0.9, 1.1},
		[]float64{0.9, 0.9, 1.1, 1.1},
		[]float64{0, 0, 0, 0},
		nil,
	)

	p := s.SnapToCenter(shape.Point{X: 1.05, Y: 0.95}, 0.5)
	assert.InDelta(t, 1.0, p.X, 1e-12)
	assert.InDelta(t, 1.0, p.Y, 1e-12)
}

func TestSnapToCenterEmptyNeighborhood(t *testing.T) {
	s := newTestStore()

	orig := shape.Point{X: 50, Y: 50}
	assert.Equal(t, orig, s.SnapToCenter(orig, 0.5))
}

func TestSnapToCorner(t *testing.T) {
	// A cluster hugging (0,0) with one extremal point at (0.4, 0.4).
	s := New(
		[]float64{0.0, 0.05, 0.1, 0.4},
		[]float64{0.0, 0.05, 0.1, 0.4},
		[]float64{0, 0, 0, 0},
		nil,
	)

	p := s.SnapToCorner(shape.Point{X: 0.1, Y: 0.1}, 0.5)
	assert.Equal(t, shape.Point{X: 0.4, Y: 0.4}, p)
}

func TestMaskOps(t *testing.T) {
	a := NewMask()
	a.Add(1)
	a.Add(5)

	b := NewMask()
	b.Add(5)
	b.Add(9)

	c := a.Clone()
	c.Or(b)
	assert.Equal(t, []uint32{1, 5, 9}, c.Indices())
	assert.Equal(t, uint64(2), a.Cardinality()) // clone did not alias

	var seen []uint32
	for i := range c.All() {
		seen = append(seen, i)
	}
	assert.Equal(t, []uint32{1, 5, 9}, seen)
}
