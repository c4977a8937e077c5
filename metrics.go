package pclabel

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    loadCounter     prometheus.Counter
//	    renderHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordLoad(points int, duration time.Duration, err error) {
//	    p.loadCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordLoad is called after each point cloud load.
	// points is the number of points kept after subsampling,
	// duration is the total time taken, err is nil if successful.
	RecordLoad(points int, duration time.Duration, err error)

	// RecordVoxelize is called after each voxelization pass.
	RecordVoxelize(points int, duration time.Duration, err error)

	// RecordRender is called after each slice rasterization.
	RecordRender(slices int, duration time.Duration, err error)

	// RecordShape is called after each shape commit (create or snap).
	RecordShape(duration time.Duration, err error)

	// RecordSave is called after each label file save.
	RecordSave(shapes int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordLoad(int, time.Duration, error)     {}
func (NoopMetricsCollector) RecordVoxelize(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordRender(int, time.Duration, error)   {}
func (NoopMetricsCollector) RecordShape(time.Duration, error)         {}
func (NoopMetricsCollector) RecordSave(int, time.Duration, error)     {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	LoadCount          atomic.Int64
	LoadErrors         atomic.Int64
	LoadTotalNanos     atomic.Int64
	LoadPoints         atomic.Int64
	VoxelizeCount      atomic.Int64
	VoxelizeErrors     atomic.Int64
	VoxelizeTotalNanos atomic.Int64
	RenderCount        atomic.Int64
	RenderErrors       atomic.Int64
	RenderTotalNanos   atomic.Int64
	ShapeCount         atomic.Int64
	ShapeErrors        atomic.Int64
	SaveCount          atomic.Int64
	SaveErrors         atomic.Int64
	SaveShapes         atomic.Int64
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(points int, duration time.Duration, err error) {
	b.LoadCount.Add(1)
	b.LoadTotalNanos.Add(duration.Nanoseconds())
	b.LoadPoints.Add(int64(points))
	if err != nil {
		b.LoadErrors.Add(1)
	}
}

// RecordVoxelize implements MetricsCollector.
func (b *BasicMetricsCollector) RecordVoxelize(points int, duration time.Duration, err error) {
	b.VoxelizeCount.Add(1)
	b.VoxelizeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.VoxelizeErrors.Add(1)
	}
}

// RecordRender implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRender(slices int, duration time.Duration, err error) {
	b.RenderCount.Add(1)
	b.RenderTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RenderErrors.Add(1)
	}
}

// RecordShape implements MetricsCollector.
func (b *BasicMetricsCollector) RecordShape(duration time.Duration, err error) {
	b.ShapeCount.Add(1)
	if err != nil {
		b.ShapeErrors.Add(1)
	}
}

// RecordSave implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSave(shapes int, duration time.Duration, err error) {
	b.SaveCount.Add(1)
	b.SaveShapes.Add(int64(shapes))
	if err != nil {
		b.SaveErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		LoadCount:      b.LoadCount.Load(),
		LoadErrors:     b.LoadErrors.Load(),
		LoadAvgNanos:   b.getAvgLoadNanos(),
		LoadPoints:     b.LoadPoints.Load(),
		VoxelizeCount:  b.VoxelizeCount.Load(),
		VoxelizeErrors: b.VoxelizeErrors.Load(),
		RenderCount:    b.RenderCount.Load(),
		RenderErrors:   b.RenderErrors.Load(),
		RenderAvgNanos: b.getAvgRenderNanos(),
		ShapeCount:     b.ShapeCount.Load(),
		ShapeErrors:    b.ShapeErrors.Load(),
		SaveCount:      b.SaveCount.Load(),
		SaveErrors:     b.SaveErrors.Load(),
		SaveShapes:     b.SaveShapes.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgLoadNanos() int64 {
	count := b.LoadCount.Load()
	if count == 0 {
		return 0
	}
	return b.LoadTotalNanos.Load() / count
}

func (b *BasicMetricsCollector) getAvgRenderNanos() int64 {
	count := b.RenderCount.Load()
	if count == 0 {
		return 0
	}
	return b.RenderTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	LoadCount      int64
	LoadErrors     int64
	LoadAvgNanos   int64
	LoadPoints     int64
	VoxelizeCount  int64
	VoxelizeErrors int64
	RenderCount    int64
	RenderErrors   int64
	RenderAvgNanos int64
	ShapeCount     int64
	ShapeErrors    int64
	SaveCount      int64
	SaveErrors     int64
	SaveShapes     int64
}
