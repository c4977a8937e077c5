// Package voxel partitions a point cloud into a fixed-size 3D occupancy grid
// and projects it into 2D raster slices.
//
// A Grid is immutable once built: changing the cell size or the input subset
// requires a full rebuild. Rasterization is a read-only projection and may
// run concurrently once the grid exists.
package voxel

import (
	"errors"
	"math"
)

// ErrEmptyInput is returned when a grid is built from zero points. Callers
// must skip rasterization in that case instead of rendering empty slices.
var ErrEmptyInput = errors.New("voxel: no input points")

// Axis selects the slicing axis of a grid.
type Axis int

const (
	// AxisX slices along world X.
	AxisX Axis = 0
	// AxisY slices along world Y.
	AxisY Axis = 1
	// AxisZ slices along world Z; this is the usual top-down warehouse view.
	AxisZ Axis = 2
)

// Grid is a voxel occupancy grid over one point subset.
type Grid struct {
	cell [3]float64
	min  [3]float64
	dims [3]int

	// count holds the number of points per voxel; scoreSum the accumulated
	// score, for scored projections. Flat layout: index = (ix*ny+iy)*nz+iz.
	count    []uint32
	scoreSum []float64
	points   int
}

// Build constructs a grid from coordinate columns at the given cell size. The
// minimum corner of the input becomes the grid origin; each point maps to the
// voxel floor((coord-min)/cell). scores may be nil.
func Build(xs, ys, zs []float64, cell [3]float64, scores []float64) (*Grid, error) {
	if len(xs) == 0 {
		return nil, ErrEmptyInput
	}
	for _, c := range cell {
		if c <= 0 {
			return nil, errors.New("voxel: cell size must be positive")
		}
	}

	g := &Grid{cell: cell, points: len(xs)}
	g.min = [3]float64{xs[0], ys[0], zs[0]}
	max := g.min
	for i := 1; i < len(xs); i++ {
		g.min[0] = math.Min(g.min[0], xs[i])
		g.min[1] = math.Min(g.min[1], ys[i])
		g.min[2] = math.Min(g.min[2], zs[i])
		max[0] = math.Max(max[0], xs[i])
		max[1] = math.Max(max[1], ys[i])
		max[2] = math.Max(max[2], zs[i])
	}
	for a := 0; a < 3; a++ {
		g.dims[a] = int(math.Floor((max[a]-g.min[a])/cell[a])) + 1
	}

	g.count = make([]uint32, g.dims[0]*g.dims[1]*g.dims[2])
	if scores != nil {
		g.scoreSum = make([]float64, len(g.count))
	}
	for i := range xs {
		idx := g.flatIndex(g.voxelOf(xs[i], ys[i], zs[i]))
		g.count[idx]++
		if scores != nil {
			g.scoreSum[idx] += scores[i]
		}
	}
	return g, nil
}

// voxelOf maps world coordinates to voxel indices.
func (g *Grid) voxelOf(x, y, z float64) [3]int {
	return [3]int{
		int(math.Floor((x - g.min[0]) / g.cell[0])),
		int(math.Floor((y - g.min[1]) / g.cell[1])),
		int(math.Floor((z - g.min[2]) / g.cell[2])),
	}
}

func (g *Grid) flatIndex(v [3]int) int {
	return (v[0]*g.dims[1]+v[1])*g.dims[2] + v[2]
}

// MinCorner returns the grid origin: the per-axis minimum of the input
// subset. The caller uses it to establish the world-to-pixel mapping.
func (g *Grid) MinCorner() [3]float64 { return g.min }

// CellSize returns the configured voxel edge lengths.
func (g *Grid) CellSize() [3]float64 { return g.cell }

// Dims returns the grid extent in voxels along each axis.
func (g *Grid) Dims() [3]int { return g.dims }

// Points returns the number of input points the grid was built from.
func (g *Grid) Points() int { return g.points }

// Occupancy returns the point count of the voxel at the given indices.
func (g *Grid) Occupancy(ix, iy, iz int) uint32 {
	return g.count[g.flatIndex([3]int{ix, iy, iz})]
}
