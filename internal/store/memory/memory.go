// Package memory holds the collection in process memory. It is the
// default backend for local runs and the test double for everything
// that speaks the store port.
package memory

import (
	"context"
	"sync"

	"salvadanaio/internal/core"
)

type Store struct {
	mu    sync.Mutex
	banks []core.Bank
}

func New(banks ...core.Bank) *Store {
	s := &Store{}
	s.banks = clone(banks)
	return s
}

// Load returns a deep copy with totals recomputed, so callers can
// mutate freely and stale cached totals self-heal like any other
// backend.
func (s *Store) Load(_ context.Context) ([]core.Bank, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := clone(s.banks)
	core.RecalculateAll(out)
	return out, nil
}

// Save replaces the whole collection.
func (s *Store) Save(_ context.Context, banks []core.Bank) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.banks = clone(banks)
	return nil
}

func (s *Store) Close() error { return nil }

func clone(banks []core.Bank) []core.Bank {
	out := make([]core.Bank, len(banks))
	for i, b := range banks {
		b.Transactions = append([]core.Transaction(nil), b.Transactions...)
		out[i] = b
	}
	return out
}
