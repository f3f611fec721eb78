package store

import (
	"context"

	"salvadanaio/internal/core"
)

// Ports for persistence backends.
//
// The whole collection is loaded and saved as one unit, mirroring the
// single-blob persistence model: every client reloads at entry and
// Save replaces everything. Two clients writing concurrently are
// last-write-wins with no conflict detection; that limitation is
// accepted, not solved here.
type (
	Loader interface {
		Load(ctx context.Context) ([]core.Bank, error)
	}

	Saver interface {
		Save(ctx context.Context, banks []core.Bank) error
	}

	Store interface {
		Loader
		Saver
		Close() error
	}
)
