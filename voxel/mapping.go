package voxel

import "github.com/hupe1980/pclabel/shape"

// Mapping converts between world coordinates on the annotation plane and
// raster/pixel coordinates of a slice image. It is the contract every
// snapping and splitting operation relies on, so the round trip must be the
// identity up to floating-point tolerance:
//
//	px = (wx - offset.X) / cellX
//	py = height - (wy - offset.Y) / cellY
//
// The column and row cell lengths differ for side views, where the row axis
// is z and carries the slab thickness rather than the planar cell size.
type Mapping struct {
	Offset shape.Point // grid MinCorner projected onto the plane
	CellX  float64     // voxel edge length along the column axis
	CellY  float64     // voxel edge length along the row axis
	Height float64     // raster height in pixels
}

// PlaneMapping builds the mapping for slices of g along the given axis.
func (g *Grid) PlaneMapping(axis Axis) Mapping {
	colAxis, rowAxis := planeAxes(axis)
	return Mapping{
		Offset: shape.Point{X: g.min[colAxis], Y: g.min[rowAxis]},
		CellX:  g.cell[colAxis],
		CellY:  g.cell[rowAxis],
		Height: float64(g.dims[rowAxis]),
	}
}

// ToPixel maps a world point to pixel coordinates.
func (m Mapping) ToPixel(w shape.Point) shape.Point {
	return shape.Point{
		X: (w.X - m.Offset.X) / m.CellX,
		Y: m.Height - (w.Y-m.Offset.Y)/m.CellY,
	}
}

// ToWorld maps pixel coordinates back to the world plane. It is the exact
// inverse of ToPixel.
func (m Mapping) ToWorld(p shape.Point) shape.Point {
	return shape.Point{
		X: p.X*m.CellX + m.Offset.X,
		Y: (m.Height-p.Y)*m.CellY + m.Offset.Y,
	}
}
