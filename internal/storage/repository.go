// Package storage implements the store port on SQLite. The collection
// keeps its blob semantics: Load assembles everything, Save replaces
// everything inside one SQL transaction.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"salvadanaio/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

func New(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load assembles the full collection in insertion order and recomputes
// every total, so a database edited by other tools self-heals the same
// way an imported blob does.
func (s *SQLiteStore) Load(ctx context.Context) ([]core.Bank, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, category FROM banks ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query banks: %w", err)
	}
	defer rows.Close()

	banks := []core.Bank{}
	index := map[int64]int{}
	for rows.Next() {
		var b core.Bank
		var category string
		if err := rows.Scan(&b.ID, &b.Name, &category); err != nil {
			return nil, fmt.Errorf("scan bank: %w", err)
		}
		b.Category = core.Category(category)
		b.Transactions = []core.Transaction{}
		index[b.ID] = len(banks)
		banks = append(banks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate banks: %w", err)
	}

	txRows, err := s.db.QueryContext(ctx,
		`SELECT bank_id, id, amount_cents, note, date FROM transactions ORDER BY bank_id, position`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer txRows.Close()

	for txRows.Next() {
		var bankID, cents int64
		var tx core.Transaction
		var dateStr string
		if err := txRows.Scan(&bankID, &tx.ID, &cents, &tx.Note, &dateStr); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.Amount = core.Money{Cents: cents}
		tx.Date, err = time.Parse(time.RFC3339Nano, dateStr)
		if err != nil {
			return nil, fmt.Errorf("parse transaction date %q: %w", dateStr, err)
		}
		i, ok := index[bankID]
		if !ok {
			// Orphan row; skip rather than fail the whole load.
			slog.WarnContext(ctx, "Transaction without bank", "bank_id", bankID, "transaction_id", tx.ID)
			continue
		}
		banks[i].Transactions = append(banks[i].Transactions, tx)
	}
	if err := txRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	core.RecalculateAll(banks)
	return banks, nil
}

// Save replaces the whole collection transactionally.
func (s *SQLiteStore) Save(ctx context.Context, banks []core.Bank) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM banks`); err != nil {
		return fmt.Errorf("clear banks: %w", err)
	}

	for pos, b := range banks {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO banks (id, name, category, total_cents, position) VALUES (?, ?, ?, ?, ?)`,
			b.ID, b.Name, string(b.Category), b.Total.Cents, pos); err != nil {
			return fmt.Errorf("insert bank %d: %w", b.ID, err)
		}
		for txPos, t := range b.Transactions {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO transactions (bank_id, id, amount_cents, note, date, position) VALUES (?, ?, ?, ?, ?, ?)`,
				b.ID, t.ID, t.Amount.Cents, t.Note, t.Date.Format(time.RFC3339Nano), txPos); err != nil {
				return fmt.Errorf("insert transaction %d/%d: %w", b.ID, t.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}

	slog.DebugContext(ctx, "Collection saved to SQLite", "banks", len(banks))
	return nil
}
