package pointcloud

import "fmt"

// ErrFormat indicates a point-cloud file that exists but cannot be parsed.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrFormat struct {
	Path  string
	Line  int // 1-based line for text formats, 0 when not applicable
	cause error
}

func (e *ErrFormat) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("invalid point-cloud file %s: line %d", e.Path, e.Line)
	}
	return fmt.Sprintf("invalid point-cloud file %s", e.Path)
}

func (e *ErrFormat) Unwrap() error { return e.cause }
