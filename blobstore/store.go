// Package blobstore abstracts the storage of scan and label artifacts.
//
// Warehouse scans are produced on site and frequently live in object storage
// rather than on the annotating workstation; the engine fetches them through
// this interface and stays agnostic of the backend. Implementations exist
// for the local filesystem, memory (tests), S3 and MinIO.
package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// BlobStore is an abstraction for storing and retrieving named artifacts.
type BlobStore interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Put writes a blob from r. size may be -1 when unknown; backends
	// that need a length buffer in that case.
	Put(ctx context.Context, name string, r io.Reader, size int64) error

	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all blobs with the given prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Fetch downloads a blob into a local file. It is the bridge between remote
// scan storage and the file-based point-cloud loader.
func Fetch(ctx context.Context, store BlobStore, name, localPath string) error {
	rc, err := store.Open(ctx, name)
	if err != nil {
		return err
	}
	defer rc.Close()

	f, err := os.Create(localPath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, rc); err != nil {
		f.Close()
		os.Remove(localPath)
		return err
	}
	return f.Close()
}
