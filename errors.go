package pclabel

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/hupe1980/pclabel/labelfile"
	"github.com/hupe1980/pclabel/pointcloud"
	"github.com/hupe1980/pclabel/voxel"
)

var (
	// ErrNoScan is returned by operations that need a point cloud
	// before one has been opened.
	ErrNoScan = errors.New("no scan open")

	// ErrNotFound is returned when a scan or label file does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNoWalls is returned by AlignRoom when no walls polygon has
	// been annotated.
	ErrNoWalls = errors.New("no walls annotation")

	// ErrShapeNotFound is returned when an operation names a shape
	// that is not part of the annotation set.
	ErrShapeNotFound = errors.New("shape not found")
)

// ErrBadScan indicates a scan file that could not be parsed.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrBadScan struct {
	Path  string
	cause error
}

func (e *ErrBadScan) Error() string {
	return fmt.Sprintf("bad scan file: %s", e.Path)
}

func (e *ErrBadScan) Unwrap() error { return e.cause }

// ErrBadLabelFile indicates a label file that could not be decoded.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrBadLabelFile struct {
	Path  string
	cause error
}

func (e *ErrBadLabelFile) Error() string {
	return fmt.Sprintf("bad label file: %s", e.Path)
}

func (e *ErrBadLabelFile) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Not found unification.
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	// Format normalization.
	var ef *pointcloud.ErrFormat
	if errors.As(err, &ef) {
		return &ErrBadScan{Path: ef.Path, cause: err}
	}
	var li *labelfile.ErrInvalid
	if errors.As(err, &li) {
		return &ErrBadLabelFile{Path: li.Path, cause: err}
	}

	if errors.Is(err, voxel.ErrEmptyInput) {
		return fmt.Errorf("%w: %w", ErrNoScan, err)
	}

	return err
}
