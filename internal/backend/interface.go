package backend

import (
	"context"

	"salvadanaio/internal/store"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// Result contains the store instance and optional cleanup function
type Result struct {
	Store   store.Store
	Cleanup CleanupFunc
}

// Factory creates stores based on configuration
type Factory interface {
	// CreateStore creates a store instance based on the provided config
	CreateStore(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for store creation
type Config struct {
	Type Type

	// jsonfile specific
	DataFile string

	// sqlite specific
	SQLiteDBPath string
}

// Type represents the type of persistence backend
type Type string

const (
	MemoryBackend   Type = "memory"
	JSONFileBackend Type = "jsonfile"
	SQLiteBackend   Type = "sqlite"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case MemoryBackend, JSONFileBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

// Types returns all valid backend types
func Types() []Type {
	return []Type{MemoryBackend, JSONFileBackend, SQLiteBackend}
}
