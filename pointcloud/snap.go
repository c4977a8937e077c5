package pointcloud

import (
	"gonum.org/v1/gonum/stat"

	"github.com/hupe1980/pclabel/shape"
)

// neighborhood collects the coordinates of all points within radius of p in
// the 2D plane.
func (s *Store) neighborhood(p shape.Point, radius float64) (xs, ys []float64) {
	r2 := radius * radius
	for i := range s.xs {
		dx, dy := s.xs[i]-p.X, s.ys[i]-p.Y
		if dx*dx+dy*dy <= r2 {
			xs = append(xs, s.xs[i])
			ys = append(ys, s.ys[i])
		}
	}
	return xs, ys
}

// SnapToCenter returns the centroid of the points within radius of p. When no
// point falls within the radius, p is returned unchanged; an empty
// neighborhood is a routine interactive condition, not an error.
func (s *Store) SnapToCenter(p shape.Point, radius float64) shape.Point {
	xs, ys := s.neighborhood(p, radius)
	if len(xs) == 0 {
		return p
	}
	return shape.Point{
		X: stat.Mean(xs, nil),
		Y: stat.Mean(ys, nil),
	}
}

// SnapToCorner returns, among the points within radius of p, the one whose
// offset from the neighborhood centroid has the greatest magnitude. That
// point is the local extremum of the cluster, which for wall corners is the
// corner itself. When no point falls within the radius, p is returned
// unchanged.
func (s *Store) SnapToCorner(p shape.Point, radius float64) shape.Point {
	xs, ys := s.neighborhood(p, radius)
	if len(xs) == 0 {
		return p
	}
	center := shape.Point{
		X: stat.Mean(xs, nil),
		Y: stat.Mean(ys, nil),
	}
	best, bestDist := p, -1.0
	for i := range xs {
		q := shape.Point{X: xs[i], Y: ys[i]}
		if d := q.Sub(center).Norm(); d > bestDist {
			best, bestDist = q, d
		}
	}
	return best
}
