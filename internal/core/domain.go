package core

import (
	"errors"
	"strings"
	"time"
)

const (
	// MaxAmountCents caps a single transaction amount at 999999.99.
	MaxAmountCents int64 = 99999999

	// DefaultNote replaces a blank transaction note.
	DefaultNote = "No description"

	// MaxNameLen bounds piggy bank names.
	MaxNameLen = 100
)

type (
	// Transaction is a single dated monetary entry belonging to exactly
	// one piggy bank. Identity is immutable; amount, note and date may
	// be edited in place.
	Transaction struct {
		ID     int64     `json:"id"`
		Amount Money     `json:"amount"`
		Note   string    `json:"note"`
		Date   time.Time `json:"date"`
	}

	// Bank is a named, categorized savings goal. Total is a cached
	// derivation of the transaction amounts and is kept consistent by
	// the mutation methods below; Recalculate restores it from scratch.
	Bank struct {
		ID           int64         `json:"id"`
		Name         string        `json:"name"`
		Category     Category      `json:"category"`
		Total        Money         `json:"total"`
		Transactions []Transaction `json:"transactions"`
	}
)

var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrAmountTooLarge      = errors.New("amount too large")
	ErrMissingDate         = errors.New("missing date")
	ErrEmptyName           = errors.New("empty name")
	ErrNameTooLong         = errors.New("name too long")
	ErrInvalidCategory     = errors.New("invalid category")
	ErrBankNotFound        = errors.New("piggy bank not found")
	ErrTransactionNotFound = errors.New("transaction not found")
)

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	if m.Cents > MaxAmountCents {
		return ErrAmountTooLarge
	}
	return nil
}

func (t Transaction) Validate() error {
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if t.Date.IsZero() {
		return ErrMissingDate
	}
	return nil
}

// NewBank builds a bank with an empty transaction list and zero total.
func NewBank(id int64, name string, category Category) (Bank, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Bank{}, ErrEmptyName
	}
	if len(name) > MaxNameLen {
		return Bank{}, ErrNameTooLong
	}
	if !category.IsValid() {
		return Bank{}, ErrInvalidCategory
	}
	return Bank{
		ID:           id,
		Name:         name,
		Category:     category,
		Transactions: []Transaction{},
	}, nil
}

// Rename updates name and category in place; transactions and total are
// untouched.
func (b *Bank) Rename(name string, category Category) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > MaxNameLen {
		return ErrNameTooLong
	}
	if !category.IsValid() {
		return ErrInvalidCategory
	}
	b.Name = name
	b.Category = category
	return nil
}

// AddTransaction validates and appends tx, updating the cached total
// incrementally. Append order is insertion order, not display order.
func (b *Bank) AddTransaction(tx Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(tx.Note) == "" {
		tx.Note = DefaultNote
	}
	b.Transactions = append(b.Transactions, tx)
	b.Total = b.Total.Add(tx.Amount)
	return nil
}

// EditTransaction overwrites the fields of the transaction with the
// given id. The total is recomputed from scratch to absorb the change
// of an arbitrary prior amount.
func (b *Bank) EditTransaction(id int64, amount Money, note string, date time.Time) error {
	upd := Transaction{ID: id, Amount: amount, Note: strings.TrimSpace(note), Date: date}
	if err := upd.Validate(); err != nil {
		return err
	}
	if upd.Note == "" {
		upd.Note = DefaultNote
	}
	for i := range b.Transactions {
		if b.Transactions[i].ID == id {
			b.Transactions[i] = upd
			b.Recalculate()
			return nil
		}
	}
	return ErrTransactionNotFound
}

// DeleteTransaction removes the transaction with the given id and
// recomputes the total.
func (b *Bank) DeleteTransaction(id int64) error {
	for i := range b.Transactions {
		if b.Transactions[i].ID == id {
			b.Transactions = append(b.Transactions[:i], b.Transactions[i+1:]...)
			b.Recalculate()
			return nil
		}
	}
	return ErrTransactionNotFound
}

// Recalculate rebuilds the cached total from the transaction list.
func (b *Bank) Recalculate() {
	var sum int64
	for _, tx := range b.Transactions {
		sum += tx.Amount.Cents
	}
	b.Total = Money{Cents: sum}
}

// RecalculateAll restores every bank's total. Run at collection-load
// time so externally edited or imported data self-heals.
func RecalculateAll(banks []Bank) {
	for i := range banks {
		banks[i].Recalculate()
	}
}

// FindBank returns a pointer into banks for the given id.
func FindBank(banks []Bank, id int64) (*Bank, bool) {
	for i := range banks {
		if banks[i].ID == id {
			return &banks[i], true
		}
	}
	return nil, false
}

// RemoveBank deletes the bank with the given id, cascading its
// transactions. The second return reports whether anything was removed.
func RemoveBank(banks []Bank, id int64) ([]Bank, bool) {
	for i := range banks {
		if banks[i].ID == id {
			return append(banks[:i], banks[i+1:]...), true
		}
	}
	return banks, false
}
