package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	r := &Recorder{Selection: []uint32{3, 4}}
	assert.False(t, r.IsReady())

	r.Render()
	assert.True(t, r.IsReady())
	assert.Equal(t, 1, r.Rendered)

	indices := []uint32{1, 2}
	r.Highlight(indices)
	indices[0] = 99 // recorder must keep its own copy
	require.Len(t, r.Highlights, 1)
	assert.Equal(t, []uint32{1, 2}, r.Highlights[0])

	assert.Equal(t, []uint32{3, 4}, r.Selected())

	r.SetCamera(Camera{R: 15})
	require.Len(t, r.Cameras, 1)
	assert.Equal(t, 15.0, r.Cameras[0].R)
}

func TestNoop(t *testing.T) {
	var v Viewer = Noop{}
	v.Render()
	v.Highlight([]uint32{1})
	v.SetCamera(Camera{})
	assert.False(t, v.IsReady())
	assert.Nil(t, v.Selected())
}
