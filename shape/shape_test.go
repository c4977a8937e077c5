package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		label string
		want  Kind
	}{
		{"beam", KindBeam},
		{"pole", KindPole},
		{"select_rack", KindRackSelect},
		{"drive_in_rack", KindRackDriveIn},
		{"extra_deep_rack", KindRackExtraDeep},
		{"walls", KindWall},
		{"door", KindDoor},
		{"noise", KindNoise},
		{"forklift", KindUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, KindOf(tt.label), tt.label)
	}
}

func TestKindIsRack(t *testing.T) {
	assert.True(t, KindRackSelect.IsRack())
	assert.True(t, KindRackDriveIn.IsRack())
	assert.True(t, KindRackExtraDeep.IsRack())
	assert.False(t, KindBeam.IsRack())
	assert.False(t, KindWall.IsRack())
	assert.False(t, KindUnknown.IsRack())
}

func TestKindDrawType(t *testing.T) {
	assert.Equal(t, TypePoint, KindBeam.DrawType())
	assert.Equal(t, TypePoint, KindPole.DrawType())
	assert.Equal(t, TypeRectangle, KindRackSelect.DrawType())
	assert.Equal(t, TypePolygon, KindWall.DrawType())
}

func TestBoxNormalize(t *testing.T) {
	b := NewBox(Point{X: 5, Y: 7}, Point{X: 1, Y: 2})
	assert.Equal(t, Point{X: 1, Y: 2}, b.Min)
	assert.Equal(t, Point{X: 5, Y: 7}, b.Max)
}

func TestBoxContains(t *testing.T) {
	b := NewBox(Point{X: 0, Y: 0}, Point{X: 10, Y: 5})

	assert.True(t, b.Contains(Point{X: 5, Y: 2}))
	// Boundary is inclusive.
	assert.True(t, b.Contains(Point{X: 0, Y: 0}))
	assert.True(t, b.Contains(Point{X: 10, Y: 5}))
	assert.False(t, b.Contains(Point{X: 10.001, Y: 5}))
}

func TestBoxSpanAndLongAxis(t *testing.T) {
	b := NewBox(Point{X: 0, Y: 0}, Point{X: 10, Y: 5})
	assert.Equal(t, 10.0, b.Span(AxisX))
	assert.Equal(t, 5.0, b.Span(AxisY))
	assert.Equal(t, AxisX, b.LongAxis())

	tall := NewBox(Point{X: 0, Y: 0}, Point{X: 2, Y: 8})
	assert.Equal(t, AxisY, tall.LongAxis())

	// Ties go to X.
	square := NewBox(Point{X: 0, Y: 0}, Point{X: 3, Y: 3})
	assert.Equal(t, AxisX, square.LongAxis())
}

func TestBoxUnion(t *testing.T) {
	a := NewBox(Point{X: 0, Y: 0}, Point{X: 2, Y: 2})
	b := NewBox(Point{X: 5, Y: -1}, Point{X: 7, Y: 1})

	u := a.Union(b)
	assert.Equal(t, Point{X: 0, Y: -1}, u.Min)
	assert.Equal(t, Point{X: 7, Y: 2}, u.Max)
}

func TestPointRotate(t *testing.T) {
	p := Point{X: 1, Y: 0}

	r := p.Rotate(90)
	assert.InDelta(t, 0, r.X, 1e-12)
	assert.InDelta(t, 1, r.Y, 1e-12)

	back := r.Rotate(-90)
	assert.InDelta(t, p.X, back.X, 1e-12)
	assert.InDelta(t, p.Y, back.Y, 1e-12)
}

func TestShapeClone(t *testing.T) {
	gid := 7
	s := New("select_rack", Point{X: 0, Y: 0}, Point{X: 3, Y: 2})
	s.GroupID = &gid
	s.Flags = map[string]bool{"verified": true}

	c := s.Clone()
	require.Equal(t, s.Label, c.Label)
	require.Equal(t, s.Points, c.Points)

	// Deep copy: mutations must not leak back.
	c.Points[0].X = 99
	*c.GroupID = 8
	c.Flags["verified"] = false
	assert.Equal(t, 0.0, s.Points[0].X)
	assert.Equal(t, 7, gid)
	assert.True(t, s.Flags["verified"])
}

func TestShapeSetBox(t *testing.T) {
	s := New("select_rack", Point{X: 9, Y: 9}, Point{X: 1, Y: 1})
	s.SetBox(NewBox(Point{X: 4, Y: 5}, Point{X: 0, Y: 1}))

	require.Len(t, s.Points, 2)
	assert.Equal(t, Point{X: 0, Y: 1}, s.Points[0])
	assert.Equal(t, Point{X: 4, Y: 5}, s.Points[1])
}

func TestShapeContainsPoint(t *testing.T) {
	s := New("select_rack", Point{X: 0, Y: 0}, Point{X: 4, Y: 4})
	assert.True(t, s.ContainsPoint(Point{X: 2, Y: 2}))
	assert.False(t, s.ContainsPoint(Point{X: 5, Y: 2}))
}
