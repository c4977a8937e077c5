// Package align estimates a room's principal wall orientation from a wall
// polygon and produces the rotation that axis-aligns the whole scan.
package align

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/hupe1980/pclabel/shape"
)

// WallAngle estimates the dominant wall orientation of the ordered wall
// polygon, in degrees within (-45, 45]. Rotating the scan by the negated
// angle axis-aligns the walls.
//
// The estimator folds every edge direction into a quarter turn (walls meet
// at right angles, so parallel and perpendicular edges vote for the same
// orientation) and takes the length-weighted circular mean. It is
// deterministic and invariant to polygon winding direction and translation.
// Polygons with fewer than two vertices have no orientation and yield 0.
func WallAngle(polygon []shape.Point) float64 {
	if len(polygon) < 2 {
		return 0
	}

	// Circular mean over 4*theta: folding by 4 maps all edge directions of
	// a rectangular room onto one angle, and the vector sum weights each
	// edge by its length.
	var sins, coss []float64
	n := len(polygon)
	for i := 0; i < n; i++ {
		a, b := polygon[i], polygon[(i+1)%n]
		d := b.Sub(a)
		length := d.Norm()
		if length == 0 {
			continue
		}
		theta := math.Atan2(d.Y, d.X)
		sins = append(sins, length*math.Sin(4*theta))
		coss = append(coss, length*math.Cos(4*theta))
	}
	if len(sins) == 0 {
		return 0
	}
	mean := math.Atan2(floats.Sum(sins), floats.Sum(coss)) / 4.0

	deg := mean * 180.0 / math.Pi
	// Fold into (-45, 45].
	for deg <= -45 {
		deg += 90
	}
	for deg > 45 {
		deg -= 90
	}
	return deg
}
