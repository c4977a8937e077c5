package pointcloud

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the block codec of the binary container format.
type Compression uint8

const (
	// CompressionNone stores columns uncompressed.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD block compression (better ratio).
	CompressionZSTD Compression = 2
)

// pczMagic identifies the binary point-cloud container.
var pczMagic = [4]byte{'P', 'C', 'Z', '1'}

const flagHasScore = 1 << 0

// Load reads a point-cloud file into a new Store.
//
// Text files (.xyz, .csv, .txt) carry one point per line as
// "x y z [score]" with whitespace or comma separators; lines starting with
// '#' are skipped. Files with the .pcz extension use the binary container
// written by Write.
//
// When maxPoints is positive and the file holds more points, the cloud is
// subsampled with a deterministic stride over file order: every
// ceil(n/maxPoints)-th point is kept, starting at the first. The same file
// and maxPoints always yield the same subset.
//
// A missing file yields an error satisfying errors.Is(err, fs.ErrNotExist);
// an unparsable file yields an *ErrFormat.
func Load(path string, maxPoints int) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var xs, ys, zs, score []float64
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pcz":
		xs, ys, zs, score, err = readBinary(f, path)
	default:
		xs, ys, zs, score, err = readText(f, path)
	}
	if err != nil {
		return nil, err
	}

	xs, ys, zs, score = subsample(xs, ys, zs, score, maxPoints)
	s := New(xs, ys, zs, score)
	s.path = path
	return s, nil
}

// Write persists the current point positions (and score column, if any) to
// path, in the format implied by its extension. When the target exists and
// overwrite is false, Write fails with an error satisfying
// errors.Is(err, fs.ErrExist). Binary output uses ZSTD block compression;
// use WriteCompressed to pick the codec.
func (s *Store) Write(path string, overwrite bool) error {
	return s.WriteCompressed(path, overwrite, CompressionZSTD)
}

// WriteCompressed is Write with an explicit block codec for binary output.
// The codec is ignored for text formats.
func (s *Store) WriteCompressed(path string, overwrite bool, c Compression) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s: %w", path, fs.ErrExist)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pcz":
		err = s.writeBinary(w, c)
	default:
		err = s.writeText(w)
	}
	if err != nil {
		return err
	}
	return w.Flush()
}

// subsample applies the deterministic stride policy.
func subsample(xs, ys, zs, score []float64, maxPoints int) (ox, oy, oz, os []float64) {
	n := len(xs)
	if maxPoints <= 0 || n <= maxPoints {
		return xs, ys, zs, score
	}
	stride := (n + maxPoints - 1) / maxPoints
	for i := 0; i < n; i += stride {
		ox = append(ox, xs[i])
		oy = append(oy, ys[i])
		oz = append(oz, zs[i])
		if score != nil {
			os = append(os, score[i])
		}
	}
	if score == nil {
		os = nil
	}
	return ox, oy, oz, os
}

func readText(r io.Reader, path string) (xs, ys, zs, score []float64, err error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	hasScore := false
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ' ' || r == '\t' || r == ',' || r == ';'
		})
		if len(fields) < 3 {
			return nil, nil, nil, nil, &ErrFormat{Path: path, Line: line, cause: fmt.Errorf("expected at least 3 columns, got %d", len(fields))}
		}
		var vals [4]float64
		cols := len(fields)
		if cols > 4 {
			cols = 4
		}
		for i := 0; i < cols; i++ {
			v, perr := strconv.ParseFloat(fields[i], 64)
			if perr != nil {
				return nil, nil, nil, nil, &ErrFormat{Path: path, Line: line, cause: perr}
			}
			vals[i] = v
		}
		xs = append(xs, vals[0])
		ys = append(ys, vals[1])
		zs = append(zs, vals[2])
		if cols >= 4 {
			// Backfill zeros when a score column appears mid-file.
			for len(score) < len(xs)-1 {
				score = append(score, 0)
			}
			score = append(score, vals[3])
			hasScore = true
		} else if hasScore {
			score = append(score, 0)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, nil, nil, &ErrFormat{Path: path, cause: err}
	}
	if !hasScore {
		score = nil
	}
	return xs, ys, zs, score, nil
}

func (s *Store) writeText(w io.Writer) error {
	for i := range s.xs {
		var err error
		if s.score != nil {
			_, err = fmt.Fprintf(w, "%g %g %g %g\n", s.xs[i], s.ys[i], s.zs[i], s.score[i])
		} else {
			_, err = fmt.Fprintf(w, "%g %g %g\n", s.xs[i], s.ys[i], s.zs[i])
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) writeBinary(w io.Writer, c Compression) error {
	if _, err := w.Write(pczMagic[:]); err != nil {
		return err
	}
	var flags uint8
	if s.score != nil {
		flags |= flagHasScore
	}
	if _, err := w.Write([]byte{flags, byte(c)}); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(s.Len())); err != nil {
		return err
	}
	cols := [][]float64{s.xs, s.ys, s.zs}
	if s.score != nil {
		cols = append(cols, s.score)
	}
	for _, col := range cols {
		if err := writeBlock(w, floatsToBytes(col), c); err != nil {
			return err
		}
	}
	return nil
}

func readBinary(r io.Reader, path string) (xs, ys, zs, score []float64, err error) {
	var header [6]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, nil, nil, nil, &ErrFormat{Path: path, cause: err}
	}
	if !bytes.Equal(header[:4], pczMagic[:]) {
		return nil, nil, nil, nil, &ErrFormat{Path: path, cause: fmt.Errorf("bad magic %q", header[:4])}
	}
	flags, c := header[4], Compression(header[5])
	var count uint64
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, nil, nil, nil, &ErrFormat{Path: path, cause: err}
	}
	nCols := 3
	if flags&flagHasScore != 0 {
		nCols = 4
	}
	cols := make([][]float64, nCols)
	for i := range cols {
		data, berr := readBlock(r, c)
		if berr != nil {
			return nil, nil, nil, nil, &ErrFormat{Path: path, cause: berr}
		}
		col, cerr := bytesToFloats(data, count)
		if cerr != nil {
			return nil, nil, nil, nil, &ErrFormat{Path: path, cause: cerr}
		}
		cols[i] = col
	}
	xs, ys, zs = cols[0], cols[1], cols[2]
	if nCols == 4 {
		score = cols[3]
	}
	return xs, ys, zs, score, nil
}

// Block layout: [uncompressedSize uint32][compressedSize uint32][data].
// compressedSize == 0 means the block is stored uncompressed.
func writeBlock(w io.Writer, data []byte, c Compression) error {
	compressed, err := compressBlock(data, c)
	if err != nil {
		return err
	}
	var sizes [8]byte
	binary.LittleEndian.PutUint32(sizes[0:4], uint32(len(data)))
	if compressed == nil {
		binary.LittleEndian.PutUint32(sizes[4:8], 0)
		if _, err := w.Write(sizes[:]); err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
	binary.LittleEndian.PutUint32(sizes[4:8], uint32(len(compressed)))
	if _, err := w.Write(sizes[:]); err != nil {
		return err
	}
	_, err = w.Write(compressed)
	return err
}

func readBlock(r io.Reader, c Compression) ([]byte, error) {
	var sizes [8]byte
	if _, err := io.ReadFull(r, sizes[:]); err != nil {
		return nil, err
	}
	uncompressedSize := binary.LittleEndian.Uint32(sizes[0:4])
	compressedSize := binary.LittleEndian.Uint32(sizes[4:8])
	if compressedSize == 0 {
		data := make([]byte, uncompressedSize)
		if _, err := io.ReadFull(r, data); err != nil {
			return nil, err
		}
		return data, nil
	}
	compressed := make([]byte, compressedSize)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return nil, err
	}
	return decompressBlock(compressed, int(uncompressedSize), c)
}

// compressBlock returns nil when the block should be stored uncompressed
// (incompressible data or CompressionNone).
func compressBlock(data []byte, c Compression) ([]byte, error) {
	switch c {
	case CompressionNone:
		return nil, nil
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, err
		}
		if n == 0 || n >= len(data) {
			return nil, nil
		}
		return buf[:n], nil
	case CompressionZSTD:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, err
		}
		defer enc.Close()
		out := enc.EncodeAll(data, nil)
		if len(out) >= len(data) {
			return nil, nil
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown compression type %d", c)
	}
}

func decompressBlock(compressed []byte, uncompressedSize int, c Compression) ([]byte, error) {
	switch c {
	case CompressionLZ4:
		out := make([]byte, uncompressedSize)
		n, err := lz4.UncompressBlock(compressed, out)
		if err != nil {
			return nil, err
		}
		return out[:n], nil
	case CompressionZSTD:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(compressed, make([]byte, 0, uncompressedSize))
	default:
		return nil, fmt.Errorf("unknown compression type %d", c)
	}
}

func floatsToBytes(vals []float64) []byte {
	out := make([]byte, 8*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint64(out[8*i:], math.Float64bits(v))
	}
	return out
}

func bytesToFloats(data []byte, count uint64) ([]float64, error) {
	if uint64(len(data)) != 8*count {
		return nil, fmt.Errorf("column size %d does not match point count %d", len(data), count)
	}
	out := make([]float64, count)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[8*i:]))
	}
	return out, nil
}
