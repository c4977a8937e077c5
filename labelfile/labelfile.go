// Package labelfile persists annotation sets in the label-file schema shared
// with the other warehouse tools: one JSON document per scan holding the
// shapes in world coordinates.
package labelfile

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/hupe1980/pclabel/codec"
	"github.com/hupe1980/pclabel/shape"
)

// Version is the label-file schema version written by this package.
const Version = "1.0.0"

// Suffix is the conventional label-file extension.
const Suffix = ".json"

// ShapeRecord is the wire form of one annotation. Points are [x, y] pairs in
// world coordinates, in the shape's vertex order.
type ShapeRecord struct {
	Label     string          `json:"label"`
	Points    [][]float64     `json:"points"`
	GroupID   *int            `json:"group_id"`
	ShapeType string          `json:"shape_type"`
	Flags     map[string]bool `json:"flags"`
}

// File is the label-file envelope.
type File struct {
	Version    string          `json:"version"`
	Flags      map[string]bool `json:"flags"`
	Shapes     []ShapeRecord   `json:"shapes"`
	SourcePath string          `json:"sourcePath"`
}

// ErrInvalid indicates a label file that exists but cannot be decoded.
type ErrInvalid struct {
	Path  string
	cause error
}

func (e *ErrInvalid) Error() string {
	return fmt.Sprintf("invalid label file %s", e.Path)
}

func (e *ErrInvalid) Unwrap() error { return e.cause }

// Store reads and writes label files with a configurable codec.
type Store struct {
	codec codec.Codec
}

// NewStore creates a label-file store. A nil codec selects codec.Default.
func NewStore(c codec.Codec) *Store {
	if c == nil {
		c = codec.Default
	}
	return &Store{codec: c}
}

// Encode converts shapes to their wire form.
func Encode(shapes []*shape.Shape) []ShapeRecord {
	records := make([]ShapeRecord, 0, len(shapes))
	for _, s := range shapes {
		points := make([][]float64, len(s.Points))
		for i, p := range s.Points {
			points[i] = []float64{p.X, p.Y}
		}
		records = append(records, ShapeRecord{
			Label:     s.Label,
			Points:    points,
			GroupID:   s.GroupID,
			ShapeType: string(s.Type),
			Flags:     s.Flags,
		})
	}
	return records
}

// Decode converts wire records back to shapes. Kind is re-derived from the
// label; the persisted shape_type wins over the kind's draw type so foreign
// tools' geometry survives a round trip.
func Decode(records []ShapeRecord) []*shape.Shape {
	shapes := make([]*shape.Shape, 0, len(records))
	for _, r := range records {
		points := make([]shape.Point, len(r.Points))
		for i, p := range r.Points {
			if len(p) >= 2 {
				points[i] = shape.Point{X: p[0], Y: p[1]}
			}
		}
		s := shape.New(r.Label, points...)
		if r.ShapeType != "" {
			s.Type = shape.Type(r.ShapeType)
		}
		s.GroupID = r.GroupID
		if r.Flags != nil {
			s.Flags = r.Flags
		}
		shapes = append(shapes, s)
	}
	return shapes
}

// Save writes the annotation set to path. When the target exists and
// overwrite is false, Save fails with an error satisfying
// errors.Is(err, fs.ErrExist).
func (st *Store) Save(path string, shapes []*shape.Shape, flags map[string]bool, sourcePath string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s: %w", path, fs.ErrExist)
		}
	}
	f := File{
		Version:    Version,
		Flags:      flags,
		Shapes:     Encode(shapes),
		SourcePath: sourcePath,
	}
	data, err := st.codec.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode label file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load reads the annotation set from path. A missing file yields an error
// satisfying errors.Is(err, fs.ErrNotExist); an undecodable file an
// *ErrInvalid.
func (st *Store) Load(path string) (*File, []*shape.Shape, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	var f File
	if err := st.codec.Unmarshal(data, &f); err != nil {
		return nil, nil, &ErrInvalid{Path: path, cause: err}
	}
	return &f, Decode(f.Shapes), nil
}

// IsLabelFile reports whether path holds a decodable label file.
func (st *Store) IsLabelFile(path string) bool {
	_, _, err := st.Load(path)
	return err == nil
}
