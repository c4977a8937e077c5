package pclabel

import (
	"context"
	"fmt"
	"iter"
	"math"
	"sync"
	"time"

	"github.com/hupe1980/pclabel/align"
	"github.com/hupe1980/pclabel/blobstore"
	"github.com/hupe1980/pclabel/codec"
	"github.com/hupe1980/pclabel/config"
	"github.com/hupe1980/pclabel/labelfile"
	"github.com/hupe1980/pclabel/pointcloud"
	"github.com/hupe1980/pclabel/query"
	"github.com/hupe1980/pclabel/rack"
	"github.com/hupe1980/pclabel/shape"
	"github.com/hupe1980/pclabel/viewer"
	"github.com/hupe1980/pclabel/voxel"
)

// Raster peak value for rendered slices (8-bit grayscale).
const rasterMax = 255.0

// Camera framing for single-annotation 3D views.
const (
	cameraTheta     = math.Pi / 4
	cameraR         = 15.0
	cameraPhi       = -math.Pi / 2
	cameraFallbackZ = 3.0
)

// Annotator is the annotation engine for a single warehouse scan. It owns
// the point store, its voxelization, and the current set of labeled shapes,
// and routes every geometry operation through them.
//
// All methods are safe for concurrent use.
type Annotator struct {
	mu      sync.Mutex
	cfg     *config.Config
	codec   codec.Codec
	vw      viewer.Viewer
	metrics MetricsCollector
	logger  *Logger

	store   *pointcloud.Store
	grid    *voxel.Grid
	query   *query.Query
	racks   *rack.Editor
	labels  *labelfile.Store
	shapes  []*shape.Shape
	flags   map[string]bool
	subs    []rack.Subscriber
}

// New creates an Annotator. Open a scan before calling geometry operations.
func New(optFns ...Option) (*Annotator, error) {
	opts := applyOptions(optFns)

	if err := opts.config.Validate(); err != nil {
		return nil, fmt.Errorf("pclabel: %w", err)
	}

	c := opts.codec
	if c == nil {
		c = codec.Default
	}

	return &Annotator{
		cfg:     opts.config,
		codec:   c,
		vw:      opts.viewer,
		metrics: opts.metricsCollector,
		logger:  opts.logger,
		labels:  labelfile.NewStore(c),
		flags:   map[string]bool{},
	}, nil
}

// Open loads a scan from a local file and voxelizes it. Any previously open
// scan and its shapes are discarded.
func (a *Annotator) Open(ctx context.Context, path string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	start := time.Now()
	store, err := pointcloud.Load(path, a.cfg.Load.MaxPoints)
	points := 0
	if store != nil {
		points = store.Len()
	}
	a.metrics.RecordLoad(points, time.Since(start), err)
	a.logger.LogLoad(ctx, path, points, err)
	if err != nil {
		return translateError(err)
	}

	store.AttachViewer(a.vw)
	a.store = store
	a.shapes = nil
	a.flags = map[string]bool{}
	if err := a.voxelize(ctx); err != nil {
		return err
	}

	a.query = query.New(store, query.Options{
		Radius:             a.cfg.Snap.Radius,
		CrosshairThreshold: a.cfg.Snap.CrosshairThreshold,
	})
	a.racks = rack.NewEditor(store, a.rackConfig())
	for _, fn := range a.subs {
		a.racks.Subscribe(fn)
	}
	return nil
}

// OpenRemote fetches a scan from a blob store into localPath, then opens it.
func (a *Annotator) OpenRemote(ctx context.Context, bs blobstore.BlobStore, name, localPath string) error {
	if err := blobstore.Fetch(ctx, bs, name, localPath); err != nil {
		return translateError(err)
	}
	return a.Open(ctx, localPath)
}

// voxelize rebuilds the occupancy grid. Caller holds a.mu.
func (a *Annotator) voxelize(ctx context.Context) error {
	start := time.Now()
	cell := [3]float64{a.cfg.Voxel.CellSize, a.cfg.Voxel.CellSize, a.cfg.Voxel.Thickness}
	xs, ys, zs, scores := a.columns()
	grid, err := voxel.Build(xs, ys, zs, cell, scores)
	voxels := 0
	if grid != nil {
		d := grid.Dims()
		voxels = d[0] * d[1] * d[2]
	}
	a.metrics.RecordVoxelize(a.store.Len(), time.Since(start), err)
	a.logger.LogVoxelize(ctx, a.store.Len(), voxels, err)
	if err != nil {
		return translateError(err)
	}
	a.grid = grid
	return nil
}

// columns extracts the showing points. Hidden points (cropped noise, cut
// regions) stay out of the raster.
func (a *Annotator) columns() (xs, ys, zs, scores []float64) {
	n := a.store.Len()
	all := a.store.Scores()
	for i := range n {
		idx := uint32(i)
		if !a.store.IsShowing(idx) {
			continue
		}
		x, y, z := a.store.XYZ(idx)
		xs = append(xs, x)
		ys = append(ys, y)
		zs = append(zs, z)
		if all != nil {
			scores = append(scores, all[i])
		}
	}
	return xs, ys, zs, scores
}

// Revoxelize rebuilds the occupancy grid from the currently showing points.
// Call it after changing point visibility on the store.
func (a *Annotator) Revoxelize(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.store == nil {
		return ErrNoScan
	}
	return a.voxelize(ctx)
}

func (a *Annotator) rackConfig() rack.Config {
	cfg := rack.DefaultConfig()
	cfg.CanonicalSize = make(map[shape.Kind]float64, len(a.cfg.Rack.CanonicalSize))
	for label, size := range a.cfg.Rack.CanonicalSize {
		cfg.CanonicalSize[shape.KindOf(label)] = size
	}
	cfg.TwoRackRatio = a.cfg.Rack.TwoRackRatio
	cfg.TwoRackGap = a.cfg.Rack.TwoRackGap
	cfg.SplitGap = a.cfg.Rack.SplitGap
	cfg.BeamMargin = a.cfg.Rack.BeamMargin
	return cfg
}

// Store returns the open point store, or nil before Open.
func (a *Annotator) Store() *pointcloud.Store {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store
}

// Grid returns the current voxel grid, or nil before Open.
func (a *Annotator) Grid() *voxel.Grid {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.grid
}

// Shapes returns the current annotation set. The returned slice is shared;
// treat it as read-only.
func (a *Annotator) Shapes() []*shape.Shape {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.shapes
}

// Subscribe registers fn for rack lifecycle events. Subscriptions survive
// Open calls.
func (a *Annotator) Subscribe(fn rack.Subscriber) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.subs = append(a.subs, fn)
	if a.racks != nil {
		a.racks.Subscribe(fn)
	}
}

// Mapping returns the world/pixel coordinate mapping for slices along axis.
func (a *Annotator) Mapping(axis voxel.Axis) (voxel.Mapping, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.grid == nil {
		return voxel.Mapping{}, ErrNoScan
	}
	return a.grid.PlaneMapping(axis), nil
}

// SliceCount returns the number of raster slices along axis.
func (a *Annotator) SliceCount(axis voxel.Axis) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.grid == nil {
		return 0, ErrNoScan
	}
	return a.grid.SliceCount(axis), nil
}

// LayerAt returns the slice index along axis containing world coordinate w.
// Coordinates outside the grid clamp to the nearest slice.
func (a *Annotator) LayerAt(axis voxel.Axis, w float64) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.grid == nil {
		return 0, ErrNoScan
	}
	cell := a.grid.CellSize()[axis]
	layer := int(math.Floor((w - a.grid.MinCorner()[axis]) / cell))
	return min(max(layer, 0), a.grid.SliceCount(axis)-1), nil
}

// RenderSlice rasterizes one occupancy slice along axis as a grayscale grid
// scaled to [0,255]. scored weights cells by the score column when present.
func (a *Annotator) RenderSlice(ctx context.Context, axis voxel.Axis, layer int, scored bool) ([][]float64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.grid == nil {
		return nil, ErrNoScan
	}
	start := time.Now()
	img := a.grid.RenderSlice(layer, rasterMax, axis, scored)
	a.metrics.RecordRender(1, time.Since(start), nil)
	return img, nil
}

// Slices returns a lazy iterator over every slice along axis, bottom-up.
func (a *Annotator) Slices(axis voxel.Axis, scored bool) (iter.Seq[[][]float64], error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.grid == nil {
		return nil, ErrNoScan
	}
	return a.grid.Bitmap2D(rasterMax, axis, scored), nil
}

// RenderAll rasterizes every slice along axis, parallelism slices at a time.
func (a *Annotator) RenderAll(ctx context.Context, axis voxel.Axis, scored bool, parallelism int64) ([][][]float64, error) {
	a.mu.Lock()
	grid := a.grid
	a.mu.Unlock()
	if grid == nil {
		return nil, ErrNoScan
	}
	start := time.Now()
	imgs, err := grid.RenderAll(ctx, rasterMax, axis, scored, parallelism)
	a.metrics.RecordRender(len(imgs), time.Since(start), err)
	return imgs, translateError(err)
}

// NewShape commits a freshly drawn annotation. Beams snap to crosshair
// intersections or point centroids, poles to centroids, wall vertices to
// corners. Racks are tightened to the points they cover and, when the box
// plausibly covers two back-to-back racks, split in two. The points inside
// the committed shape are selected and highlighted.
func (a *Annotator) NewShape(ctx context.Context, s *shape.Shape) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	start := time.Now()
	err := a.newShape(s)
	a.metrics.RecordShape(time.Since(start), err)
	a.logger.LogShape(ctx, s.Label, len(s.Points), err)
	return translateError(err)
}

func (a *Annotator) newShape(s *shape.Shape) error {
	if a.store == nil {
		return ErrNoScan
	}

	if s.Kind.IsRack() {
		twin, err := a.racks.Ingest(s)
		if err != nil {
			return err
		}
		a.shapes = append(a.shapes, s)
		if twin != nil {
			a.shapes = append(a.shapes, twin)
		}
		a.query.HighlightShapes(s, twin)
		return nil
	}

	a.query.Snap(s, a.shapes)
	a.shapes = append(a.shapes, s)
	a.query.HighlightShape(s)
	return nil
}

// RemoveShape drops s from the annotation set. Removing a shape that is not
// part of the set returns ErrShapeNotFound.
func (a *Annotator) RemoveShape(s *shape.Shape) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i, cur := range a.shapes {
		if cur == s {
			a.shapes = append(a.shapes[:i], a.shapes[i+1:]...)
			return nil
		}
	}
	return ErrShapeNotFound
}

// SplitRack cuts the rack under pos into two racks at pos. A position not
// inside any rack is a no-op returning nil.
func (a *Annotator) SplitRack(ctx context.Context, pos shape.Point) *shape.Shape {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.racks == nil {
		return nil
	}
	created := a.racks.SplitRack(pos, nil, a.shapes)
	if created != nil {
		a.shapes = append(a.shapes, created)
		a.logger.LogSplit(ctx, created.Label, 1)
	}
	return created
}

// SplitRacks auto-splits every candidate rack at nearby roof support beams.
// A nil candidates slice considers every rack. Newly created racks are
// returned.
func (a *Annotator) SplitRacks(ctx context.Context, candidates []*shape.Shape) []*shape.Shape {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.racks == nil {
		return nil
	}
	if candidates == nil {
		candidates = a.shapes
	}
	created := a.racks.SplitRacks(candidates, a.shapes)
	a.shapes = append(a.shapes, created...)
	if len(created) > 0 {
		a.logger.LogSplit(ctx, created[0].Label, len(created))
	}
	return created
}

// MergeRacks collapses the selected racks into one rack covering their
// union bounding box. The surviving rack is returned; nil means the
// selection held no racks.
func (a *Annotator) MergeRacks(ctx context.Context, selection []*shape.Shape) *shape.Shape {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.racks == nil {
		return nil
	}
	kept, removed := a.racks.Unsplit(selection)
	if kept == nil {
		return nil
	}
	for _, r := range removed {
		for i, cur := range a.shapes {
			if cur == r {
				a.shapes = append(a.shapes[:i], a.shapes[i+1:]...)
				break
			}
		}
	}
	return kept
}

// HighlightShape selects and highlights the points covered by s.
func (a *Annotator) HighlightShape(s *shape.Shape) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.query == nil {
		return ErrNoScan
	}
	a.query.HighlightShape(s)
	return nil
}

// AlignRoom rotates the whole scene so the walls run parallel to the
// axes: the wall angle is estimated from the first walls polygon, then the
// point cloud and every shape vertex rotate together by its negation. The
// rotated cloud is persisted over the scan file and the grid rebuilt.
func (a *Annotator) AlignRoom(ctx context.Context) (float64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	degrees, err := a.alignRoom(ctx)
	a.logger.LogAlign(ctx, degrees, err)
	return degrees, translateError(err)
}

func (a *Annotator) alignRoom(ctx context.Context) (float64, error) {
	if a.store == nil {
		return 0, ErrNoScan
	}
	var walls *shape.Shape
	for _, s := range a.shapes {
		if s.Kind == shape.KindWall {
			walls = s
			break
		}
	}
	if walls == nil {
		return 0, ErrNoWalls
	}

	degrees := align.WallAngle(walls.Points)
	xs, ys := a.store.Rotate(-degrees)
	a.store.SetXY(xs, ys)
	for _, s := range a.shapes {
		s.Rotate(-degrees)
	}
	if err := a.voxelize(ctx); err != nil {
		return degrees, err
	}
	if err := a.store.Write(a.store.Path(), true); err != nil {
		return degrees, err
	}
	return degrees, nil
}

// UpdateFromViewer reshapes s from the points currently selected in the
// viewer: a rack becomes the min/max bounding box of the selection, a beam
// or pole moves to its center. An empty selection is a no-op.
func (a *Annotator) UpdateFromViewer(s *shape.Shape) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.store == nil {
		return ErrNoScan
	}

	selected := a.store.Viewer().Selected()
	if len(selected) == 0 {
		return nil
	}

	box := shape.Box{
		Min: shape.Point{X: math.Inf(1), Y: math.Inf(1)},
		Max: shape.Point{X: math.Inf(-1), Y: math.Inf(-1)},
	}
	for _, i := range selected {
		x, y, _ := a.store.XYZ(i)
		box.Min.X = math.Min(box.Min.X, x)
		box.Min.Y = math.Min(box.Min.Y, y)
		box.Max.X = math.Max(box.Max.X, x)
		box.Max.Y = math.Max(box.Max.Y, y)
	}

	switch {
	case s.Kind.IsRack():
		s.SetBox(box)
	case s.Kind == shape.KindBeam || s.Kind == shape.KindPole:
		s.Points = []shape.Point{box.Center()}
	}
	return nil
}

// ViewShape3D frames the viewer camera on s: look at the shape's center at
// the mean height of its points, from a fixed oblique angle.
func (a *Annotator) ViewShape3D(s *shape.Shape) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.store == nil {
		return ErrNoScan
	}

	center := s.Box().Center()
	z := cameraFallbackZ
	if mask := a.store.InBox2D(s.Box()); !mask.IsEmpty() {
		var sum float64
		for i := range mask.All() {
			_, _, pz := a.store.XYZ(i)
			sum += pz
		}
		z = sum / float64(mask.Cardinality())
	}

	a.vw.SetCamera(viewer.Camera{
		LookAt: [3]float64{center.X, center.Y, z},
		Theta:  cameraTheta,
		R:      cameraR,
		Phi:    cameraPhi,
	})
	a.vw.Render()
	return nil
}

// SaveLabels writes the current annotation set as a label file.
func (a *Annotator) SaveLabels(ctx context.Context, path string, overwrite bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.store == nil {
		return ErrNoScan
	}

	start := time.Now()
	err := a.labels.Save(path, a.shapes, a.flags, a.store.Path(), overwrite)
	a.metrics.RecordSave(len(a.shapes), time.Since(start), err)
	a.logger.LogSave(ctx, path, len(a.shapes), err)
	return translateError(err)
}

// LoadLabels replaces the annotation set with the shapes from a label file.
func (a *Annotator) LoadLabels(ctx context.Context, path string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	file, shapes, err := a.labels.Load(path)
	if err != nil {
		return translateError(err)
	}
	a.shapes = shapes
	a.flags = file.Flags
	if a.flags == nil {
		a.flags = map[string]bool{}
	}
	return nil
}

// SetFlag records a file-level annotation flag, persisted with the labels.
func (a *Annotator) SetFlag(name string, value bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.flags[name] = value
}
