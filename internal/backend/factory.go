package backend

import (
	"context"
	"fmt"
	"log/slog"

	"salvadanaio/internal/store/jsonfile"
	"salvadanaio/internal/store/memory"
	"salvadanaio/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// CreateStore implements Factory.CreateStore
func (f *DefaultFactory) CreateStore(ctx context.Context, config Config) (*Result, error) {
	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteStore(config)
	case JSONFileBackend:
		return f.createJSONFileStore(config)
	case MemoryBackend:
		return f.createMemoryStore()
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteStore(config Config) (*Result, error) {
	sqliteStore, err := storage.New(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
	}

	f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)

	return &Result{
		Store:   sqliteStore,
		Cleanup: sqliteStore.Close,
	}, nil
}

func (f *DefaultFactory) createJSONFileStore(config Config) (*Result, error) {
	if config.DataFile == "" {
		return nil, fmt.Errorf("data file path is required for jsonfile backend")
	}

	f.logger.Info("Initialized JSON file backend", "data_file", config.DataFile)

	return &Result{
		Store:   jsonfile.New(config.DataFile),
		Cleanup: nil,
	}, nil
}

func (f *DefaultFactory) createMemoryStore() (*Result, error) {
	f.logger.Info("Initialized memory backend")

	return &Result{
		Store:   memory.New(),
		Cleanup: nil,
	}, nil
}
