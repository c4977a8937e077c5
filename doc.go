// Package pclabel provides an embedded spatial engine for annotating
// warehouse point clouds.
//
// Pclabel loads LIDAR scans of warehouse interiors, rasterizes them
// into 2D top-down or side-view slices via a voxel grid, and maintains
// a set of labeled shapes (racks, beams, poles, walls, doors) that are
// snapped, split, merged, and aligned against the underlying points.
//
// # Quick Start
//
//	ctx := context.Background()
//	a, _ := pclabel.New(pclabel.WithLogLevel(slog.LevelInfo))
//	if err := a.Open(ctx, "warehouse.pcz"); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Rasterize the top-down slab at z=2.0 as a grayscale grid.
//	layer, _ := a.LayerAt(voxel.AxisZ, 2.0)
//	img, _ := a.RenderSlice(ctx, voxel.AxisZ, layer, false)
//
//	// Annotate a rack; the box is tightened to the occupied points and
//	// split in two if it covers a back-to-back pair.
//	s := shape.New("select_rack", shape.Point{X: 1, Y: 1}, shape.Point{X: 6, Y: 4})
//	a.NewShape(ctx, s)
//
//	a.SaveLabels(ctx, "warehouse.json", true)
//
// # Remote Scans
//
// Scans and label files can live in object storage via BlobStore:
//
//	store := s3.NewStore(client, "my-bucket", "site-42/")
//	blobstore.Fetch(ctx, store, "warehouse.pcz", localPath)
//
// # Key Features
//
//   - Text (.xyz/.csv) and compressed binary (.pcz, LZ4/zstd) scan formats
//   - Deterministic subsampling for oversized scans
//   - Voxel occupancy grid with lazy per-slice rasterization
//   - Crosshair beam snapping, pole centering, wall corner snapping
//   - Rack tightening, two-rack detection, split and merge
//   - Room alignment from the walls polygon
//   - Label files compatible with polygonal annotation tooling
package pclabel
