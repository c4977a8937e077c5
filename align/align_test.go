package align

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/pclabel/shape"
)

// rotatedRect returns a unit-ish rectangle rotated by degrees about the
// origin, translated by (tx, ty).
func rotatedRect(degrees, tx, ty float64) []shape.Point {
	corners := []shape.Point{
		{X: 0, Y: 0},
		{X: 10, Y: 0},
		{X: 10, Y: 4},
		{X: 0, Y: 4},
	}
	out := make([]shape.Point, len(corners))
	for i, c := range corners {
		r := c.Rotate(degrees)
		out[i] = shape.Point{X: r.X + tx, Y: r.Y + ty}
	}
	return out
}

func TestWallAngleAxisAligned(t *testing.T) {
	assert.InDelta(t, 0, WallAngle(rotatedRect(0, 0, 0)), 1e-9)
}

func TestWallAngleRecoversRotation(t *testing.T) {
	for _, deg := range []float64{5, 17, 30, -12, -40} {
		got := WallAngle(rotatedRect(deg, 0, 0))
		assert.InDelta(t, deg, got, 1e-9, "rotation %g", deg)
	}
}

func TestWallAngleFoldsPerpendicular(t *testing.T) {
	// 95 degrees is 5 degrees past a quarter turn; walls at right angles
	// make the two indistinguishable.
	got := WallAngle(rotatedRect(95, 0, 0))
	assert.InDelta(t, 5, got, 1e-9)
}

func TestWallAngleTranslationInvariant(t *testing.T) {
	a := WallAngle(rotatedRect(17, 0, 0))
	b := WallAngle(rotatedRect(17, 123.4, -56.7))
	assert.InDelta(t, a, b, 1e-9)
}

func TestWallAngleWindingInvariant(t *testing.T) {
	poly := rotatedRect(17, 0, 0)
	reversed := make([]shape.Point, len(poly))
	for i, p := range poly {
		reversed[len(poly)-1-i] = p
	}
	assert.InDelta(t, WallAngle(poly), WallAngle(reversed), 1e-9)
}

func TestWallAngleDegenerate(t *testing.T) {
	assert.Equal(t, 0.0, WallAngle(nil))
	assert.Equal(t, 0.0, WallAngle([]shape.Point{{X: 1, Y: 1}}))
	// All vertices coincident: zero-length edges carry no orientation.
	assert.Equal(t, 0.0, WallAngle([]shape.Point{{X: 1, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 1}}))
}
