// Package jsonfile persists the collection as one formatted JSON array
// in a single file, the closest analogue to a browser key-value blob.
package jsonfile

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"salvadanaio/internal/core"
	"salvadanaio/internal/store"
)

type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// Load reads and decodes the blob. A missing file is an empty
// collection, matching a first run.
func (s *Store) Load(ctx context.Context) ([]core.Bank, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []core.Bank{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	banks, err := store.DecodeCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	slog.DebugContext(ctx, "Collection loaded", "path", s.path, "banks", len(banks))
	return banks, nil
}

// Save writes the whole collection atomically (temp file + rename), so
// a crash mid-write never leaves a torn blob behind.
func (s *Store) Save(ctx context.Context, banks []core.Bank) error {
	data, err := store.EncodeCollection(banks)
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".piggybanks-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename temp file: %w", err)
	}
	slog.DebugContext(ctx, "Collection saved", "path", s.path, "banks", len(banks))
	return nil
}

func (s *Store) Close() error { return nil }
