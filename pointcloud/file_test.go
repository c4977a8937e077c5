package pointcloud

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.xyz")
	content := `# warehouse scan
1.0 2.0 3.0
4.0,5.0,6.0

7.0;8.0;9.0 0.5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := Load(path, 0)
	require.NoError(t, err)
	require.Equal(t, 3, s.Len())

	x, y, z := s.XYZ(1)
	assert.Equal(t, 4.0, x)
	assert.Equal(t, 5.0, y)
	assert.Equal(t, 6.0, z)

	// A score column appearing mid-file backfills zeros.
	require.True(t, s.HasScore())
	assert.Equal(t, 0.0, s.Score(0))
	assert.Equal(t, 0.5, s.Score(2))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.xyz"), 0)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadBadText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.xyz")
	require.NoError(t, os.WriteFile(path, []byte("1.0 2.0\n"), 0o644))

	_, err := Load(path, 0)
	var ef *ErrFormat
	require.ErrorAs(t, err, &ef)
	assert.Equal(t, path, ef.Path)
	assert.Equal(t, 1, ef.Line)
}

func TestWriteRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.xyz")
	s := New([]float64{1}, []float64{2}, []float64{3}, nil)

	require.NoError(t, s.Write(path, false))
	err := s.Write(path, false)
	assert.ErrorIs(t, err, fs.ErrExist)
	require.NoError(t, s.Write(path, true))
}

func TestBinaryRoundTrip(t *testing.T) {
	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		t.Run(compressionName(c), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "scan.pcz")
			src := New(
				[]float64{1.5, -2.25, 3.125, 0},
				[]float64{4, 5, 6, -0.5},
				[]float64{7, 8, 9, 10},
				[]float64{0.1, 0.2, 0.3, 0.4},
			)
			require.NoError(t, src.WriteCompressed(path, false, c))

			got, err := Load(path, 0)
			require.NoError(t, err)
			require.Equal(t, src.Len(), got.Len())
			for i := range uint32(src.Len()) {
				x0, y0, z0 := src.XYZ(i)
				x1, y1, z1 := got.XYZ(i)
				assert.Equal(t, x0, x1)
				assert.Equal(t, y0, y1)
				assert.Equal(t, z0, z1)
				assert.Equal(t, src.Score(i), got.Score(i))
			}
		})
	}
}

func compressionName(c Compression) string {
	switch c {
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return "none"
	}
}

func TestBinaryRoundTripWithoutScore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.pcz")
	src := New([]float64{1, 2}, []float64{3, 4}, []float64{5, 6}, nil)
	require.NoError(t, src.Write(path, false))

	got, err := Load(path, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Len())
	assert.False(t, got.HasScore())
}

func TestLoadBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.pcz")
	require.NoError(t, os.WriteFile(path, []byte("NOPE\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00"), 0o644))

	_, err := Load(path, 0)
	var ef *ErrFormat
	assert.True(t, errors.As(err, &ef))
}

func TestSubsampleDeterministicStride(t *testing.T) {
	xs := make([]float64, 10)
	ys := make([]float64, 10)
	zs := make([]float64, 10)
	for i := range xs {
		xs[i] = float64(i)
	}

	// n=10, max=4 -> stride 3 -> indices 0, 3, 6, 9.
	ox, _, _, _ := subsample(xs, ys, zs, nil, 4)
	assert.Equal(t, []float64{0, 3, 6, 9}, ox)

	// Same input, same subset.
	again, _, _, _ := subsample(xs, ys, zs, nil, 4)
	assert.Equal(t, ox, again)

	// No cap keeps everything, aliasing the input.
	all, _, _, _ := subsample(xs, ys, zs, nil, 0)
	assert.Len(t, all, 10)
}

func TestLoadAppliesMaxPoints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.xyz")
	var content []byte
	for i := 0; i < 100; i++ {
		content = append(content, []byte("1 2 3\n")...)
	}
	require.NoError(t, os.WriteFile(path, content, 0o644))

	s, err := Load(path, 10)
	require.NoError(t, err)
	assert.LessOrEqual(t, s.Len(), 10)
	assert.Greater(t, s.Len(), 0)
}
