package pclabel

import (
	"log/slog"

	"github.com/hupe1980/pclabel/codec"
	"github.com/hupe1980/pclabel/config"
	"github.com/hupe1980/pclabel/viewer"
)

type options struct {
	codec            codec.Codec
	config           *config.Config
	viewer           viewer.Viewer
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures Annotator constructor behavior.
//
// Today options primarily exist to avoid exploding the API surface
// (e.g. codec-specific constructor variants).
type Option func(*options)

// WithCodec configures the codec used for label file encoding.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithConfig configures annotation parameters (voxel cell size, snap
// radii, rack thresholds). Pass nil to use config.Default().
func WithConfig(cfg *config.Config) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// WithViewer attaches a 3D viewer that receives highlight and camera
// updates. Pass nil to run headless.
//
// Example:
//
//	rec := &viewer.Recorder{}
//	a, _ := pclabel.New(pclabel.WithViewer(rec))
func WithViewer(v viewer.Viewer) Option {
	return func(o *options) {
		o.viewer = v
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &pclabel.BasicMetricsCollector{}
//	a, _ := pclabel.New(pclabel.WithMetricsCollector(metrics))
//	// ... use a ...
//	stats := metrics.GetStats()
//	fmt.Printf("Loads: %d, Avg latency: %dns\n", stats.LoadCount, stats.LoadAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := pclabel.NewJSONLogger(slog.LevelInfo)
//	a, _ := pclabel.New(pclabel.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:            nil,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.config == nil {
		o.config = config.Default()
	}
	if o.viewer == nil {
		o.viewer = viewer.Noop{}
	}
	return o
}
