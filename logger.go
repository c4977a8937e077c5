package pclabel

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with pclabel-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithScan adds the scan path to the logger (useful for tagging operations).
func (l *Logger) WithScan(path string) *Logger {
	return &Logger{
		Logger: l.Logger.With("scan", path),
	}
}

// WithLabel adds a label field to the logger.
func (l *Logger) WithLabel(label string) *Logger {
	return &Logger{
		Logger: l.Logger.With("label", label),
	}
}

// WithPoints adds a point count field to the logger.
func (l *Logger) WithPoints(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("points", n),
	}
}

// LogLoad logs a point cloud load operation.
func (l *Logger) LogLoad(ctx context.Context, path string, points int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"path", path,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "load completed",
			"path", path,
			"points", points,
		)
	}
}

// LogVoxelize logs a voxelization pass.
func (l *Logger) LogVoxelize(ctx context.Context, points, voxels int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "voxelize failed",
			"points", points,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "voxelize completed",
			"points", points,
			"voxels", voxels,
		)
	}
}

// LogShape logs the creation or update of an annotation shape.
func (l *Logger) LogShape(ctx context.Context, label string, vertices int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "shape rejected",
			"label", label,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "shape committed",
			"label", label,
			"vertices", vertices,
		)
	}
}

// LogSplit logs a rack split operation.
func (l *Logger) LogSplit(ctx context.Context, label string, created int) {
	l.DebugContext(ctx, "rack split completed",
		"label", label,
		"created", created,
	)
}

// LogAlign logs a room alignment pass.
func (l *Logger) LogAlign(ctx context.Context, degrees float64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "alignment failed",
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "room aligned",
			"degrees", degrees,
		)
	}
}

// LogSave logs a label file save.
func (l *Logger) LogSave(ctx context.Context, path string, shapes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "save failed",
			"path", path,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "labels saved",
			"path", path,
			"shapes", shapes,
		)
	}
}
