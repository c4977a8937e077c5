package voxel

import (
	"context"
	"iter"

	"golang.org/x/sync/semaphore"
)

// SliceCount returns the number of 2D slices the grid projects along the
// given axis: one per voxel layer.
func (g *Grid) SliceCount(axis Axis) int {
	return g.dims[axis]
}

// planeAxes returns the raster column and row axes for a slicing axis. The
// row axis is rendered bottom-up so the raster agrees with the world-to-pixel
// mapping (pixel y grows downward, world y grows upward).
func planeAxes(axis Axis) (col, row int) {
	switch axis {
	case AxisX:
		return 1, 2
	case AxisY:
		return 0, 2
	default:
		return 0, 1
	}
}

// Bitmap2D projects voxel occupancy onto the plane orthogonal to axis and
// returns the slices as a lazy, restartable sequence of 2D rasters in
// increasing voxel order along axis. Each raster value is the voxel's point
// count scaled into [0, max] against the grid-wide maximum, so slices are
// comparable to each other. With scored true (and a score column present at
// build time) the mean voxel score is projected instead of occupancy.
//
// The sequence is finite: its length equals SliceCount(axis).
func (g *Grid) Bitmap2D(max float64, axis Axis, scored bool) iter.Seq[[][]float64] {
	scored = scored && g.scoreSum != nil
	peak := g.peakValue(scored)
	return func(yield func([][]float64) bool) {
		for layer := 0; layer < g.dims[axis]; layer++ {
			if !yield(g.renderSlice(layer, axis, scored, max, peak)) {
				return
			}
		}
	}
}

// RenderSlice materializes a single slice (see Bitmap2D for semantics).
func (g *Grid) RenderSlice(layer int, max float64, axis Axis, scored bool) [][]float64 {
	scored = scored && g.scoreSum != nil
	return g.renderSlice(layer, axis, scored, max, g.peakValue(scored))
}

// RenderAll materializes every slice along axis, rasterizing up to
// parallelism slices concurrently. The grid is immutable once built, so
// concurrent projection is safe; slice order in the result matches Bitmap2D.
func (g *Grid) RenderAll(ctx context.Context, max float64, axis Axis, scored bool, parallelism int64) ([][][]float64, error) {
	if parallelism < 1 {
		parallelism = 1
	}
	scored = scored && g.scoreSum != nil
	peak := g.peakValue(scored)

	sem := semaphore.NewWeighted(parallelism)
	out := make([][][]float64, g.dims[axis])
	for layer := 0; layer < g.dims[axis]; layer++ {
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		go func(layer int) {
			defer sem.Release(1)
			out[layer] = g.renderSlice(layer, axis, scored, max, peak)
		}(layer)
	}
	// Wait for the in-flight renders.
	if err := sem.Acquire(ctx, parallelism); err != nil {
		return nil, err
	}
	sem.Release(parallelism)
	return out, nil
}

// peakValue returns the grid-wide maximum projected value, used to scale
// rasters into [0, max].
func (g *Grid) peakValue(scored bool) float64 {
	peak := 0.0
	for i, c := range g.count {
		if c == 0 {
			continue
		}
		v := float64(c)
		if scored {
			v = g.scoreSum[i] / float64(c)
		}
		if v > peak {
			peak = v
		}
	}
	return peak
}

func (g *Grid) renderSlice(layer int, axis Axis, scored bool, max, peak float64) [][]float64 {
	colAxis, rowAxis := planeAxes(axis)
	width, height := g.dims[colAxis], g.dims[rowAxis]

	raster := make([][]float64, height)
	for r := range raster {
		raster[r] = make([]float64, width)
	}
	if peak <= 0 {
		return raster
	}

	var v [3]int
	v[axis] = layer
	for col := 0; col < width; col++ {
		for rowIdx := 0; rowIdx < height; rowIdx++ {
			v[colAxis] = col
			v[rowAxis] = rowIdx
			c := g.count[g.flatIndex(v)]
			if c == 0 {
				continue
			}
			val := float64(c)
			if scored {
				val = g.scoreSum[g.flatIndex(v)] / float64(c)
			}
			// Row 0 is the top of the raster: the highest world
			// coordinate along the row axis.
			raster[height-1-rowIdx][col] = val / peak * max
		}
	}
	return raster
}
