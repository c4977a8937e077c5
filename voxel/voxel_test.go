package voxel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pclabel/shape"
)

func TestBuildEmptyInput(t *testing.T) {
	_, err := Build(nil, nil, nil, [3]float64{1, 1, 1}, nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestBuildDims(t *testing.T) {
	// Corners of a 10x5 footprint, all at z=0.
	xs := []float64{0, 0, 10, 10}
	ys := []float64{0, 5, 0, 5}
	zs := []float64{0, 0, 0, 0}

	g, err := Build(xs, ys, zs, [3]float64{1, 1, 1}, nil)
	require.NoError(t, err)

	assert.Equal(t, [3]float64{0, 0, 0}, g.MinCorner())
	assert.Equal(t, [3]int{11, 6, 1}, g.Dims())
	assert.Equal(t, 4, g.Points())
	assert.Equal(t, uint32(1), g.Occupancy(0, 0, 0))
	assert.Equal(t, uint32(1), g.Occupancy(10, 5, 0))
	assert.Equal(t, uint32(0), g.Occupancy(5, 2, 0))
}

func TestSliceCountMatchesExtent(t *testing.T) {
	xs := []float64{0, 3.9}
	ys := []float64{0, 1.9}
	zs := []float64{0, 7.9}

	g, err := Build(xs, ys, zs, [3]float64{1, 1, 1}, nil)
	require.NoError(t, err)

	assert.Equal(t, 4, g.SliceCount(AxisX))
	assert.Equal(t, 2, g.SliceCount(AxisY))
	assert.Equal(t, 8, g.SliceCount(AxisZ))

	for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
		n := 0
		for range g.Bitmap2D(255, axis, false) {
			n++
		}
		assert.Equal(t, g.SliceCount(axis), n)
	}
}

func TestRenderSliceScaling(t *testing.T) {
	// Two points in one voxel, one in another: peak occupancy is 2.
	xs := []float64{0.1, 0.2, 3.5}
	ys := []float64{0.1, 0.2, 0.5}
	zs := []float64{0, 0, 0}

	g, err := Build(xs, ys, zs, [3]float64{1, 1, 1}, nil)
	require.NoError(t, err)

	img := g.RenderSlice(0, 255, AxisZ, false)
	require.Len(t, img, 1)  // one row
	require.Len(t, img[0], 4)

	assert.Equal(t, 255.0, img[0][0])
	assert.Equal(t, 127.5, img[0][3])
	assert.Equal(t, 0.0, img[0][1])
}

func TestRenderSliceRowOrientation(t *testing.T) {
	// One point at low y, one at high y. The high-y point must land on the
	// top raster row (row 0).
	xs := []float64{0, 0}
	ys := []float64{0, 3}
	zs := []float64{0, 0}

	g, err := Build(xs, ys, zs, [3]float64{1, 1, 1}, nil)
	require.NoError(t, err)

	img := g.RenderSlice(0, 255, AxisZ, false)
	require.Len(t, img, 4)
	assert.Equal(t, 255.0, img[0][0]) // y=3
	assert.Equal(t, 255.0, img[3][0]) // y=0
	assert.Equal(t, 0.0, img[1][0])
}

func TestRenderSliceScored(t *testing.T) {
	xs := []float64{0, 2}
	ys := []float64{0, 0}
	zs := []float64{0, 0}
	scores := []float64{0.5, 1.0}

	g, err := Build(xs, ys, zs, [3]float64{1, 1, 1}, scores)
	require.NoError(t, err)

	img := g.RenderSlice(0, 255, AxisZ, true)
	assert.Equal(t, 127.5, img[0][0])
	assert.Equal(t, 255.0, img[0][2])
}

func TestRenderAllMatchesBitmap2D(t *testing.T) {
	xs := []float64{0, 1, 2, 3}
	ys := []float64{0, 1, 0, 1}
	zs := []float64{0, 1, 2, 3}

	g, err := Build(xs, ys, zs, [3]float64{1, 1, 1}, nil)
	require.NoError(t, err)

	all, err := g.RenderAll(context.Background(), 255, AxisZ, false, 4)
	require.NoError(t, err)
	require.Len(t, all, g.SliceCount(AxisZ))

	layer := 0
	for img := range g.Bitmap2D(255, AxisZ, false) {
		assert.Equal(t, img, all[layer])
		layer++
	}
}

func TestRenderAllCanceledContext(t *testing.T) {
	g, err := Build([]float64{0, 5}, []float64{0, 0}, []float64{0, 9}, [3]float64{1, 1, 1}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = g.RenderAll(ctx, 255, AxisZ, false, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMappingRoundTrip(t *testing.T) {
	xs := []float64{-3.2, 7.7}
	ys := []float64{1.1, 9.4}
	zs := []float64{0, 4}

	g, err := Build(xs, ys, zs, [3]float64{0.05, 0.05, 0.5}, nil)
	require.NoError(t, err)

	m := g.PlaneMapping(AxisZ)
	for _, w := range []shape.Point{
		{X: -3.2, Y: 1.1},
		{X: 0, Y: 5},
		{X: 7.7, Y: 9.4},
	} {
		got := m.ToWorld(m.ToPixel(w))
		assert.InDelta(t, w.X, got.X, 1e-6)
		assert.InDelta(t, w.Y, got.Y, 1e-6)
	}

	// And the other direction.
	p := shape.Point{X: 12, Y: 34}
	got := m.ToPixel(m.ToWorld(p))
	assert.InDelta(t, p.X, got.X, 1e-6)
	assert.InDelta(t, p.Y, got.Y, 1e-6)
}

func TestMappingSideViewCells(t *testing.T) {
	// Side views put z on the row axis, which carries the slab thickness
	// rather than the planar cell size.
	xs := []float64{-3.2, 7.7}
	ys := []float64{1.1, 9.4}
	zs := []float64{0, 4}

	g, err := Build(xs, ys, zs, [3]float64{0.05, 0.05, 0.5}, nil)
	require.NoError(t, err)

	m := g.PlaneMapping(AxisX)
	assert.Equal(t, 0.05, m.CellX)
	assert.Equal(t, 0.5, m.CellY)
	assert.Equal(t, float64(g.Dims()[2]), m.Height)

	// World (y=1.1, z=4) sits on the left edge, one thickness below the top.
	px := m.ToPixel(shape.Point{X: 1.1, Y: 4})
	assert.InDelta(t, 0.0, px.X, 1e-9)
	assert.InDelta(t, m.Height-8, px.Y, 1e-9)

	back := m.ToWorld(px)
	assert.InDelta(t, 1.1, back.X, 1e-9)
	assert.InDelta(t, 4.0, back.Y, 1e-9)
}
