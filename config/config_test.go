package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	assert.Equal(t, 0.05, c.Voxel.CellSize)
	assert.Equal(t, 0.5, c.Voxel.Thickness)
	assert.Equal(t, 0.5, c.Snap.Radius)
	assert.Equal(t, 0.3, c.Snap.CrosshairThreshold)
	assert.Equal(t, 2.5, c.Rack.CanonicalSize["select_rack"])
	assert.Equal(t, 3.7, c.Rack.CanonicalSize["drive_in_rack"])
	assert.Equal(t, 5.0, c.Rack.CanonicalSize["extra_deep_rack"])
	assert.Equal(t, 1.9, c.Rack.TwoRackRatio)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
voxel:
  cellSize: 0.1
snap:
  radius: 1.0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.1, c.Voxel.CellSize)
	assert.Equal(t, 1.0, c.Snap.Radius)
	// Untouched fields keep their defaults.
	assert.Equal(t, 0.5, c.Voxel.Thickness)
	assert.Equal(t, 1.9, c.Rack.TwoRackRatio)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("voxel:\n  cellSize: -1\n"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "cellSize")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	c := Default()
	c.Load.MaxPoints = 500000
	require.NoError(t, c.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestValidate(t *testing.T) {
	c := Default()
	c.Rack.TwoRackRatio = 0.5
	assert.ErrorContains(t, c.Validate(), "twoRackRatio")

	c = Default()
	c.Rack.CanonicalSize["select_rack"] = 0
	assert.ErrorContains(t, c.Validate(), "canonicalSize")

	c = Default()
	c.Snap.Radius = 0
	assert.ErrorContains(t, c.Validate(), "radius")
}
