// Package adapter contains filesystem adapters for the qmetrics CLI.
package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	m "qmetrics.dev/pkg/qmetrics/internal/model"
)

// JSONValidator inspects raw JSON bytes before they are decoded.
type JSONValidator func(data []byte) error

// ArtifactReader loads raw test-run artifacts. Every failure is reported as
// "absent" so the pipeline tolerates any subset of missing artifacts.
type ArtifactReader interface {
	// ReadText returns the file content, or ("", false) when the file is
	// missing, unreadable or empty.
	ReadText(ctx context.Context, path m.Path) (string, bool)

	// ReadJSON decodes the file into v after running the validators on the
	// raw bytes. It returns false when the file is absent or any step fails.
	ReadJSON(ctx context.Context, path m.Path, v any, validators ...JSONValidator) bool

	// Exists reports whether a regular file is present at path.
	Exists(ctx context.Context, path m.Path) bool
}

// LocalArtifactReader reads artifacts from the local filesystem. Paths are
// used as given; callers resolve them with m.ArtifactPaths.Under.
type LocalArtifactReader struct{}

// NewLocalArtifactReader constructs a LocalArtifactReader.
func NewLocalArtifactReader() *LocalArtifactReader {
	return &LocalArtifactReader{}
}

// Exists implements ArtifactReader.
func (a *LocalArtifactReader) Exists(_ context.Context, path m.Path) bool {
	info, err := os.Stat(string(path))
	if err != nil {
		return false
	}

	return info.Mode().IsRegular()
}

// ReadText implements ArtifactReader.
func (a *LocalArtifactReader) ReadText(ctx context.Context, path m.Path) (string, bool) {
	data, ok := a.readBytes(ctx, path)
	if !ok {
		return "", false
	}

	return string(data), true
}

// ReadJSON implements ArtifactReader.
func (a *LocalArtifactReader) ReadJSON(ctx context.Context, path m.Path, v any, validators ...JSONValidator) bool {
	data, ok := a.readBytes(ctx, path)
	if !ok {
		return false
	}

	for _, validate := range validators {
		if err := validate(data); err != nil {
			slog.WarnContext(ctx, "Artifact failed validation", "path", path, "error", err)
			return false
		}
	}

	if err := json.Unmarshal(data, v); err != nil {
		slog.WarnContext(ctx, "Failed to parse JSON artifact", "path", path, "error", err)
		return false
	}

	return true
}

func (a *LocalArtifactReader) readBytes(ctx context.Context, path m.Path) ([]byte, bool) {
	if path == "" {
		return nil, false
	}

	data, err := os.ReadFile(string(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.DebugContext(ctx, "Artifact not found", "path", path)
		} else {
			slog.WarnContext(ctx, "Failed to read artifact", "path", path, "error", fmt.Errorf("read artifact: %w", err))
		}

		return nil, false
	}

	if len(data) == 0 {
		slog.DebugContext(ctx, "Artifact is empty", "path", path)
		return nil, false
	}

	slog.DebugContext(ctx, "Read artifact", "path", path, "bytes", len(data))

	return data, true
}
