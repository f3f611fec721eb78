// Package services orchestrates domain operations over a store: every
// operation reloads the collection at entry, mutates it with the core
// primitives, persists the result, and publishes a change notification.
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"salvadanaio/internal/amqp"
	"salvadanaio/internal/core"
	"salvadanaio/internal/store"
)

// Ledger is the single entry point the view layer talks to. It owns no
// in-memory collection: state lives in the store, and reloading at each
// operation keeps independently-opened views from acting on stale data.
type Ledger struct {
	store  store.Store
	events *amqp.Client // optional; nil disables change notifications
	ids    core.IDGenerator
}

func NewLedger(st store.Store, events *amqp.Client) *Ledger {
	return &Ledger{store: st, events: events}
}

// Banks reloads and returns the full collection.
func (l *Ledger) Banks(ctx context.Context) ([]core.Bank, error) {
	banks, err := l.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load collection: %w", err)
	}
	return banks, nil
}

// Summary recomputes the dashboard statistics from scratch.
func (l *Ledger) Summary(ctx context.Context) (core.Summary, error) {
	banks, err := l.Banks(ctx)
	if err != nil {
		return core.Summary{}, err
	}
	return core.Summarize(banks), nil
}

// Dashboard returns the filtered and sorted sequence to render.
func (l *Ledger) Dashboard(ctx context.Context, query string, key core.SortKey) ([]core.Bank, error) {
	banks, err := l.Banks(ctx)
	if err != nil {
		return nil, err
	}
	if !key.IsValid() {
		key = core.SortNameAsc
	}
	return core.QueryBanks(banks, query, key), nil
}

// Bank returns a single bank for the detail view.
func (l *Ledger) Bank(ctx context.Context, id int64) (core.Bank, error) {
	banks, err := l.Banks(ctx)
	if err != nil {
		return core.Bank{}, err
	}
	b, ok := core.FindBank(banks, id)
	if !ok {
		return core.Bank{}, core.ErrBankNotFound
	}
	return *b, nil
}

// Transactions returns a bank's transactions within the optional date
// range, newest first.
func (l *Ledger) Transactions(ctx context.Context, bankID int64, start, end *time.Time) ([]core.Transaction, error) {
	b, err := l.Bank(ctx, bankID)
	if err != nil {
		return nil, err
	}
	txns := core.FilterByDateRange(b.Transactions, start, end)
	core.SortByDateDesc(txns)
	return txns, nil
}

// CreateBank adds a new empty bank to the collection.
func (l *Ledger) CreateBank(ctx context.Context, name string, category core.Category) (core.Bank, error) {
	banks, err := l.Banks(ctx)
	if err != nil {
		return core.Bank{}, err
	}
	bank, err := core.NewBank(l.ids.Next(), name, category)
	if err != nil {
		return core.Bank{}, err
	}
	banks = append(banks, bank)
	if err := l.save(ctx, banks); err != nil {
		return core.Bank{}, err
	}
	l.publish(ctx, amqp.OpBankCreated, bank.ID)
	return bank, nil
}

// EditBank renames and recategorizes a bank in place. A missing id is a
// silent no-op: the bank may have been deleted from another view.
func (l *Ledger) EditBank(ctx context.Context, id int64, name string, category core.Category) error {
	banks, err := l.Banks(ctx)
	if err != nil {
		return err
	}
	b, ok := core.FindBank(banks, id)
	if !ok {
		slog.DebugContext(ctx, "Edit of missing bank ignored", "bank_id", id)
		return nil
	}
	if err := b.Rename(name, category); err != nil {
		return err
	}
	if err := l.save(ctx, banks); err != nil {
		return err
	}
	l.publish(ctx, amqp.OpBankUpdated, id)
	return nil
}

// DeleteBank removes a bank and, by cascade, all its transactions.
func (l *Ledger) DeleteBank(ctx context.Context, id int64) error {
	banks, err := l.Banks(ctx)
	if err != nil {
		return err
	}
	banks, removed := core.RemoveBank(banks, id)
	if !removed {
		slog.DebugContext(ctx, "Delete of missing bank ignored", "bank_id", id)
		return nil
	}
	if err := l.save(ctx, banks); err != nil {
		return err
	}
	l.publish(ctx, amqp.OpBankDeleted, id)
	return nil
}

// AddTransaction records a new transaction against a bank.
func (l *Ledger) AddTransaction(ctx context.Context, bankID int64, amount core.Money, note string, txDate time.Time) (core.Transaction, error) {
	banks, err := l.Banks(ctx)
	if err != nil {
		return core.Transaction{}, err
	}
	b, ok := core.FindBank(banks, bankID)
	if !ok {
		return core.Transaction{}, core.ErrBankNotFound
	}
	tx := core.Transaction{ID: l.ids.Next(), Amount: amount, Note: note, Date: txDate}
	if err := b.AddTransaction(tx); err != nil {
		return core.Transaction{}, err
	}
	if err := l.save(ctx, banks); err != nil {
		return core.Transaction{}, err
	}
	l.publish(ctx, amqp.OpTransactionAdded, bankID)
	// The stored copy carries the defaulted note.
	return b.Transactions[len(b.Transactions)-1], nil
}

// EditTransaction overwrites a transaction's fields.
func (l *Ledger) EditTransaction(ctx context.Context, bankID, txID int64, amount core.Money, note string, txDate time.Time) error {
	banks, err := l.Banks(ctx)
	if err != nil {
		return err
	}
	b, ok := core.FindBank(banks, bankID)
	if !ok {
		return core.ErrBankNotFound
	}
	if err := b.EditTransaction(txID, amount, note, txDate); err != nil {
		return err
	}
	if err := l.save(ctx, banks); err != nil {
		return err
	}
	l.publish(ctx, amqp.OpTransactionUpdated, bankID)
	return nil
}

// DeleteTransaction removes a transaction from a bank.
func (l *Ledger) DeleteTransaction(ctx context.Context, bankID, txID int64) error {
	banks, err := l.Banks(ctx)
	if err != nil {
		return err
	}
	b, ok := core.FindBank(banks, bankID)
	if !ok {
		return core.ErrBankNotFound
	}
	if err := b.DeleteTransaction(txID); err != nil {
		return err
	}
	if err := l.save(ctx, banks); err != nil {
		return err
	}
	l.publish(ctx, amqp.OpTransactionDeleted, bankID)
	return nil
}

// Export writes the collection as formatted JSON, byte-for-byte the
// shape held in the store.
func (l *Ledger) Export(ctx context.Context, w io.Writer) error {
	banks, err := l.Banks(ctx)
	if err != nil {
		return err
	}
	data, err := store.EncodeCollection(banks)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// Import replaces the whole collection with the uploaded document.
// Format errors (store.ErrNotJSON, store.ErrNotArray) abort without
// touching existing state. The caller is responsible for having
// obtained the user's confirmation: the replace is destructive.
func (l *Ledger) Import(ctx context.Context, r io.Reader) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("read import: %w", err)
	}
	banks, err := store.DecodeCollection(data)
	if err != nil {
		return 0, err
	}
	if err := l.save(ctx, banks); err != nil {
		return 0, err
	}
	l.publish(ctx, amqp.OpCollectionImported, 0)
	slog.InfoContext(ctx, "Collection imported", "banks", len(banks))
	return len(banks), nil
}

// ClearAll resets the collection to empty. The caller must have walked
// the user through both confirmations first.
func (l *Ledger) ClearAll(ctx context.Context) error {
	if err := l.save(ctx, []core.Bank{}); err != nil {
		return err
	}
	l.publish(ctx, amqp.OpCollectionCleared, 0)
	slog.InfoContext(ctx, "Collection cleared")
	return nil
}

// IsNotFound reports whether err is one of the not-found sentinels the
// view layer treats as silent no-ops.
func IsNotFound(err error) bool {
	return errors.Is(err, core.ErrBankNotFound) || errors.Is(err, core.ErrTransactionNotFound)
}

// Close releases the store and the event client.
func (l *Ledger) Close() error {
	var errs []error
	if l.store != nil {
		if err := l.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}
	if l.events != nil {
		if err := l.events.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close ledger: %v", errs)
	}
	return nil
}

func (l *Ledger) save(ctx context.Context, banks []core.Bank) error {
	if err := l.store.Save(ctx, banks); err != nil {
		return fmt.Errorf("save collection: %w", err)
	}
	return nil
}

// publish is fire-and-forget: a broker outage must never fail a user
// operation that already persisted.
func (l *Ledger) publish(ctx context.Context, op string, bankID int64) {
	if l.events == nil {
		return
	}
	if err := l.events.PublishChange(ctx, op, bankID); err != nil {
		slog.ErrorContext(ctx, "Failed to publish change message",
			"op", op, "bank_id", bankID, "error", err)
	}
}
