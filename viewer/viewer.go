// Package viewer defines the interface to the external 3D point-cloud viewer.
//
// The viewer is a separate collaborator process; calls into it are
// fire-and-forget notifications with no ordering guarantee relative to
// viewer-side rendering. Callers must poll IsReady before relying on viewer
// state.
package viewer

// Camera describes a viewer camera framing: a look-at target plus spherical
// coordinates of the eye around it.
type Camera struct {
	LookAt [3]float64
	Theta  float64
	R      float64
	Phi    float64
}

// Viewer is the external 3D rendering collaborator.
type Viewer interface {
	// Render starts or refreshes the 3D rendering of the current cloud.
	Render()
	// IsReady reports whether the viewer is attached and initialized.
	IsReady() bool
	// Highlight marks the given point indices in the viewer.
	Highlight(indices []uint32)
	// Selected returns the point indices currently selected viewer-side.
	Selected() []uint32
	// SetCamera frames the camera.
	SetCamera(c Camera)
}

// Noop is a Viewer that does nothing and never becomes ready.
type Noop struct{}

func (Noop) Render()            {}
func (Noop) IsReady() bool      { return false }
func (Noop) Highlight([]uint32) {}
func (Noop) Selected() []uint32 { return nil }
func (Noop) SetCamera(Camera)   {}

// Recorder is an in-process Viewer double for tests. It records every call
// and can serve a canned selection.
type Recorder struct {
	Ready      bool
	Rendered   int
	Highlights [][]uint32
	Cameras    []Camera
	Selection  []uint32
}

func (r *Recorder) Render() {
	r.Rendered++
	r.Ready = true
}

func (r *Recorder) IsReady() bool { return r.Ready }

func (r *Recorder) Highlight(indices []uint32) {
	cp := make([]uint32, len(indices))
	copy(cp, indices)
	r.Highlights = append(r.Highlights, cp)
}

func (r *Recorder) Selected() []uint32 { return r.Selection }

func (r *Recorder) SetCamera(c Camera) {
	r.Cameras = append(r.Cameras, c)
}
