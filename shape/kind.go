package shape

import "strings"

// Kind is a closed enumeration of annotation kinds. All behavior that used to
// hang off label strings (draw mode, snapping, rack handling) dispatches on
// Kind instead.
type Kind uint8

const (
	// KindUnknown is the zero value; shapes with labels outside the known
	// vocabulary keep it and receive no special treatment.
	KindUnknown Kind = iota
	// KindBeam is a roof support beam, annotated as a single point.
	KindBeam
	// KindPole is a floor pole, annotated as a single point.
	KindPole
	// KindRackSelect is a selective (single-deep) pallet rack footprint.
	KindRackSelect
	// KindRackDriveIn is a drive-in rack footprint.
	KindRackDriveIn
	// KindRackExtraDeep is an extra-deep rack footprint.
	KindRackExtraDeep
	// KindWall is a wall outline, annotated as a polygon of corners.
	KindWall
	// KindDoor is a door, annotated as a line.
	KindDoor
	// KindNoise marks a region of scan noise, annotated as a polygon.
	KindNoise
)

var kindLabels = map[Kind]string{
	KindBeam:          "beam",
	KindPole:          "pole",
	KindRackSelect:    "select_rack",
	KindRackDriveIn:   "drive_in_rack",
	KindRackExtraDeep: "extra_deep_rack",
	KindWall:          "walls",
	KindDoor:          "door",
	KindNoise:         "noise",
}

// KindOf maps an annotation label to its Kind. Unrecognized labels map to
// KindUnknown.
func KindOf(label string) Kind {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "beam":
		return KindBeam
	case "pole":
		return KindPole
	case "select_rack":
		return KindRackSelect
	case "drive_in_rack":
		return KindRackDriveIn
	case "extra_deep_rack":
		return KindRackExtraDeep
	case "wall", "walls":
		return KindWall
	case "door":
		return KindDoor
	case "noise":
		return KindNoise
	default:
		return KindUnknown
	}
}

// String returns the canonical label for the kind.
func (k Kind) String() string {
	if s, ok := kindLabels[k]; ok {
		return s
	}
	return "unknown"
}

// IsRack reports whether the kind is one of the rack subtypes.
func (k Kind) IsRack() bool {
	switch k {
	case KindRackSelect, KindRackDriveIn, KindRackExtraDeep:
		return true
	default:
		return false
	}
}

// Type is the geometric representation of a shape on the 2D canvas.
type Type string

const (
	// TypePoint is a single point.
	TypePoint Type = "point"
	// TypeRectangle is an axis-aligned rectangle given by two opposite corners.
	TypeRectangle Type = "rectangle"
	// TypeLine is a two-point segment.
	TypeLine Type = "line"
	// TypePolygon is a closed polygon.
	TypePolygon Type = "polygon"
	// TypeLineStrip is an open polyline.
	TypeLineStrip Type = "linestrip"
)

// DrawType returns the geometric type a kind is drawn with.
// Unknown kinds default to polygons.
func (k Kind) DrawType() Type {
	switch k {
	case KindBeam, KindPole:
		return TypePoint
	case KindRackSelect, KindRackDriveIn, KindRackExtraDeep:
		return TypeRectangle
	case KindDoor:
		return TypeLine
	default:
		return TypePolygon
	}
}
