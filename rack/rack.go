// Package rack maintains rack annotation geometry: bounding-box tightening,
// merged-rack detection and splitting, beam-driven automatic splitting, and
// rack merging.
//
// Ingest and merge re-tighten their resulting boxes against current point
// membership; manual and beam-driven splits keep the exact cut extents so the
// gap around the cut survives.
package rack

import (
	"errors"
	"math"

	"github.com/hupe1980/pclabel/pointcloud"
	"github.com/hupe1980/pclabel/shape"
)

// ErrEmptyBox is returned by Ingest when a freshly drawn rack box contains
// no points.
var ErrEmptyBox = errors.New("rack: box contains no points")

// Config holds the rack heuristics. The thresholds are empirically tuned,
// not physics; treat them as site-specific settings.
type Config struct {
	// CanonicalSize is the expected footprint length per rack subtype, in
	// world units.
	CanonicalSize map[shape.Kind]float64

	// TwoRackRatio is the span/canonical ratio a box must exceed on both
	// axes to count as two merged racks. A box elongated on only one axis
	// is one long rack.
	TwoRackRatio float64

	// TwoRackGap is the total gap inserted at the midpoint when splitting
	// a two-rack box.
	TwoRackGap float64

	// SplitGap is the total gap straddling a manual or beam-driven cut.
	SplitGap float64

	// BeamMargin is the extra transverse distance beyond the rack
	// half-span within which a beam triggers an automatic split.
	BeamMargin float64
}

// DefaultConfig returns the heuristics used in production warehouse scans.
func DefaultConfig() Config {
	return Config{
		CanonicalSize: map[shape.Kind]float64{
			shape.KindRackSelect:    2.5,
			shape.KindRackDriveIn:   3.7,
			shape.KindRackExtraDeep: 5.0,
		},
		TwoRackRatio: 1.9,
		TwoRackGap:   0.1,
		SplitGap:     0.4,
		BeamMargin:   2.0,
	}
}

// Editor edits rack annotations against a point store.
type Editor struct {
	store *pointcloud.Store
	cfg   Config
	subs  []Subscriber
}

// NewEditor creates an Editor over the given store. A config without
// canonical sizes gets the default size table; other fields are kept as
// given.
func NewEditor(store *pointcloud.Store, cfg Config) *Editor {
	if cfg.CanonicalSize == nil {
		cfg.CanonicalSize = DefaultConfig().CanonicalSize
	}
	return &Editor{store: store, cfg: cfg}
}

// Config returns the editor's heuristics.
func (e *Editor) Config() Config { return e.cfg }

// Tighten shrinks box to the minimal axis-aligned rectangle covering exactly
// the points currently inside it, iterating until stable. A box containing
// no points is returned unchanged; callers that need to distinguish that
// case check InBox2D first.
func (e *Editor) Tighten(box shape.Box) shape.Box {
	box = box.Normalize()
	for {
		mask := e.store.InBox2D(box)
		if mask.IsEmpty() {
			return box
		}
		tight := shape.Box{
			Min: shape.Point{X: math.Inf(1), Y: math.Inf(1)},
			Max: shape.Point{X: math.Inf(-1), Y: math.Inf(-1)},
		}
		for i := range mask.All() {
			x, y, _ := e.store.XYZ(i)
			tight.Min.X = math.Min(tight.Min.X, x)
			tight.Min.Y = math.Min(tight.Min.Y, y)
			tight.Max.X = math.Max(tight.Max.X, x)
			tight.Max.Y = math.Max(tight.Max.Y, y)
		}
		if tight == box {
			return box
		}
		box = tight
	}
}

// IsTwoRacks reports whether box is large enough on both axes to plausibly
// be two adjacent racks merged by a naive bounding box: both spans must
// exceed TwoRackRatio times the canonical size for the kind. Kinds without a
// configured canonical size are never two racks.
func (e *Editor) IsTwoRacks(kind shape.Kind, box shape.Box) bool {
	canonical, ok := e.cfg.CanonicalSize[kind]
	if !ok {
		return false
	}
	threshold := e.cfg.TwoRackRatio * canonical
	return box.Span(shape.AxisX) > threshold && box.Span(shape.AxisY) > threshold
}

// SplitTwoRacks splits box into two boxes along whichever axis is closer to
// exactly twice the canonical size for kind, inserting half of TwoRackGap on
// each side of the midpoint. The caller re-tightens each result.
func (e *Editor) SplitTwoRacks(kind shape.Kind, box shape.Box) (shape.Box, shape.Box) {
	box = box.Normalize()
	canonical := e.cfg.CanonicalSize[kind]
	axis := shape.AxisX
	if math.Abs(box.Span(shape.AxisY)-2*canonical) < math.Abs(box.Span(shape.AxisX)-2*canonical) {
		axis = shape.AxisY
	}
	gap := e.cfg.TwoRackGap / 2.0
	first, second := box, box
	if axis == shape.AxisX {
		mid := (box.Min.X + box.Max.X) / 2.0
		first.Max.X = mid - gap
		second.Min.X = mid + gap
	} else {
		mid := (box.Min.Y + box.Max.Y) / 2.0
		first.Max.Y = mid - gap
		second.Min.Y = mid + gap
	}
	return first, second
}

// Ingest normalizes a freshly drawn rack annotation: the box is tightened to
// the points it covers and, when it plausibly covers two back-to-back racks,
// split at the midpoint into the original shape plus a returned twin. Emits
// RackCreated for every resulting rack.
func (e *Editor) Ingest(s *shape.Shape) (*shape.Shape, error) {
	box := s.Box()
	if e.store.InBox2D(box).IsEmpty() {
		return nil, ErrEmptyBox
	}
	box = e.Tighten(box)
	if !e.IsTwoRacks(s.Kind, box) {
		s.SetBox(box)
		e.emit(RackCreated, s)
		return nil, nil
	}

	first, second := e.SplitTwoRacks(s.Kind, box)
	s.SetBox(e.Tighten(first))
	twin := s.Clone()
	twin.SetBox(e.Tighten(second))
	e.emit(RackCreated, s)
	e.emit(RackCreated, twin)
	return twin, nil
}

// SplitRack cuts the rack containing pos into two racks at pos, along the
// rack's long axis, with half of SplitGap on each side of the cut. When rck
// is nil the rack is located by point containment among shapes. The halves
// keep the exact cut extents; tightening them would swallow the gap. The
// newly created rack is returned; nil means no rack contains pos and nothing
// happened.
func (e *Editor) SplitRack(pos shape.Point, rck *shape.Shape, shapes []*shape.Shape) *shape.Shape {
	if rck == nil {
		for _, s := range shapes {
			if s.Kind.IsRack() && s.ContainsPoint(pos) {
				rck = s
				break
			}
		}
	}
	if rck == nil {
		return nil
	}

	box := rck.Box()
	created := rck.Clone()
	gap := e.cfg.SplitGap / 2.0
	newBox := box
	if box.LongAxis() == shape.AxisX {
		box.Max.X = pos.X - gap
		newBox.Min.X = pos.X + gap
	} else {
		box.Max.Y = pos.Y - gap
		newBox.Min.Y = pos.Y + gap
	}
	rck.SetBox(box)
	created.SetBox(newBox)

	e.emit(RackUpdated, rck)
	e.emit(RackCreated, created)
	return created
}

// SplitRacks applies the beam-proximity heuristic to every candidate rack:
// racks broken up by roof support beams are split at the beam. A beam
// qualifies when its point lies within the rack's span on one axis and
// within half-span plus BeamMargin of the rack's centerline on the other.
// The beam's transverse position is overridden to the centerline before
// splitting so the resulting racks stay collinear.
//
// candidates selects the racks to consider (the current selection, or all
// racks); beams come from shapes. Newly created racks are returned and are
// not themselves re-considered.
func (e *Editor) SplitRacks(candidates, shapes []*shape.Shape) []*shape.Shape {
	var created []*shape.Shape
	for _, rck := range candidates {
		if !rck.Kind.IsRack() {
			continue
		}
		for _, s := range shapes {
			if s.Kind != shape.KindBeam || len(s.Points) == 0 {
				continue
			}
			box := rck.Box()
			center := box.Center()
			beam := s.Points[0]
			switch {
			case box.Min.X < beam.X && beam.X < box.Max.X:
				if math.Abs(center.Y-beam.Y) < box.Span(shape.AxisY)/2.0+e.cfg.BeamMargin {
					pos := shape.Point{X: beam.X, Y: center.Y}
					if n := e.SplitRack(pos, rck, nil); n != nil {
						created = append(created, n)
					}
				}
			case box.Min.Y < beam.Y && beam.Y < box.Max.Y:
				if math.Abs(center.X-beam.X) < box.Span(shape.AxisX)/2.0+e.cfg.BeamMargin {
					pos := shape.Point{X: center.X, Y: beam.Y}
					if n := e.SplitRack(pos, rck, nil); n != nil {
						created = append(created, n)
					}
				}
			}
		}
	}
	return created
}

// Unsplit collapses the selected racks into a single rack covering their
// union bounding box, re-tightened. The first rack in the selection survives
// with the union extent; the others are returned as removed. A selection
// without racks is a no-op returning nil.
func (e *Editor) Unsplit(selection []*shape.Shape) (kept *shape.Shape, removed []*shape.Shape) {
	var racks []*shape.Shape
	for _, s := range selection {
		if s.Kind.IsRack() {
			racks = append(racks, s)
		}
	}
	if len(racks) == 0 {
		return nil, nil
	}

	union := racks[0].Box()
	for _, r := range racks[1:] {
		union = union.Union(r.Box())
	}
	kept = racks[0]
	kept.SetBox(e.Tighten(union))
	removed = racks[1:]

	e.emit(RackUpdated, kept)
	for _, r := range removed {
		e.emit(RackRemoved, r)
	}
	return kept, removed
}
