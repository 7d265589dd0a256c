package domain

import (
	"context"
	"log/slog"

	"filepipe.dev/pkg/filepipe/internal/adapter"
	m "filepipe.dev/pkg/filepipe/internal/model"
)

const outputFileMode = 0o644

// ContentWriter persists a transform result.
type ContentWriter interface {
	// Write replaces path with result.Text. It never retries; a failure
	// ends the run.
	Write(ctx context.Context, path m.Path, result m.TransformResult) (int, error)
}

type contentWriter struct {
	fsAdapter adapter.FSAdapter
}

// NewContentWriter constructs a ContentWriter backed by fsAdapter.
func NewContentWriter(fsAdapter adapter.FSAdapter) ContentWriter {
	return &contentWriter{fsAdapter: fsAdapter}
}

func (w *contentWriter) Write(ctx context.Context, path m.Path, result m.TransformResult) (int, error) {
	n, err := w.fsAdapter.WriteFile(ctx, path, []byte(result.Text), outputFileMode)
	if err != nil {
		slog.Error("Failed to write output", "path", path, "written", n, "error", err)
		return n, Classify("write", path, err)
	}

	slog.Info("Wrote output", "path", path, "bytes", n, "lines", result.Lines)

	return n, nil
}
