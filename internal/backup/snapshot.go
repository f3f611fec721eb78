// Package backup produces backup artifacts of the collection: the JSON
// snapshot users can re-import, and a CSV summary report.
package backup

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"salvadanaio/internal/store"
)

// ArtifactName returns the canonical backup file name for a given day.
func ArtifactName(t time.Time) string {
	return "savings-tracker-backup-" + t.Format("2006-01-02") + ".json"
}

// Writer snapshots a store into a directory.
type Writer struct {
	dir    string
	loader store.Loader
}

func NewWriter(dir string, loader store.Loader) *Writer {
	return &Writer{dir: dir, loader: loader}
}

// WriteSnapshot loads the current collection and writes it as a
// formatted JSON artifact. Snapshots taken on the same day overwrite
// each other, matching the artifact naming.
func (w *Writer) WriteSnapshot(ctx context.Context) (string, error) {
	banks, err := w.loader.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load collection: %w", err)
	}
	data, err := store.EncodeCollection(banks)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}
	path := filepath.Join(w.dir, ArtifactName(time.Now()))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	slog.InfoContext(ctx, "Snapshot written",
		"path", path,
		"banks", len(banks))
	return path, nil
}
