package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{ID: 1, Amount: Money{Cents: 100}, Note: "deposit", Date: date(2024, 6, 1)}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name string
		tx   Transaction
		want error
	}{
		{"zero amount", Transaction{Amount: Money{}, Date: date(2024, 6, 1)}, ErrInvalidAmount},
		{"negative amount", Transaction{Amount: Money{Cents: -1}, Date: date(2024, 6, 1)}, ErrInvalidAmount},
		{"over limit", Transaction{Amount: Money{Cents: MaxAmountCents + 1}, Date: date(2024, 6, 1)}, ErrAmountTooLarge},
		{"missing date", Transaction{Amount: Money{Cents: 100}}, ErrMissingDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.tx.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestNewBank(t *testing.T) {
	b, err := NewBank(1, "  Trip  ", CategoryVacation)
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if b.Name != "Trip" || b.Total.Cents != 0 || len(b.Transactions) != 0 {
		t.Fatalf("unexpected bank: %+v", b)
	}

	if _, err := NewBank(2, "   ", CategoryFood); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if _, err := NewBank(3, strings.Repeat("x", MaxNameLen+1), CategoryFood); !errors.Is(err, ErrNameTooLong) {
		t.Fatalf("expected ErrNameTooLong, got %v", err)
	}
	if _, err := NewBank(4, "ok", Category("crypto")); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestAddTransactionUpdatesTotal(t *testing.T) {
	b, _ := NewBank(1, "Trip", CategoryVacation)
	if err := b.AddTransaction(Transaction{ID: 10, Amount: Money{Cents: 10001}, Date: date(2024, 6, 1)}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if b.Total.Cents != 10001 {
		t.Fatalf("total = %d, want 10001", b.Total.Cents)
	}
	// Blank note takes the default.
	if b.Transactions[0].Note != DefaultNote {
		t.Fatalf("note = %q, want %q", b.Transactions[0].Note, DefaultNote)
	}

	if err := b.AddTransaction(Transaction{ID: 11, Amount: Money{Cents: 250}, Note: "snack", Date: date(2024, 6, 2)}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if b.Total.Cents != 10251 {
		t.Fatalf("total = %d, want 10251", b.Total.Cents)
	}

	// Deleting returns the total to its prior value.
	if err := b.DeleteTransaction(11); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if b.Total.Cents != 10001 {
		t.Fatalf("total after delete = %d, want 10001", b.Total.Cents)
	}
}

func TestAddTransactionRejectsInvalid(t *testing.T) {
	b, _ := NewBank(1, "Trip", CategoryVacation)
	if err := b.AddTransaction(Transaction{ID: 10, Amount: Money{Cents: 0}, Date: date(2024, 6, 1)}); err == nil {
		t.Fatal("expected error for zero amount")
	}
	if len(b.Transactions) != 0 || b.Total.Cents != 0 {
		t.Fatalf("rejected add must not mutate: %+v", b)
	}
}

func TestEditTransactionRecomputesTotal(t *testing.T) {
	b, _ := NewBank(1, "Trip", CategoryVacation)
	_ = b.AddTransaction(Transaction{ID: 10, Amount: Money{Cents: 1000}, Note: "a", Date: date(2024, 6, 1)})
	_ = b.AddTransaction(Transaction{ID: 11, Amount: Money{Cents: 2000}, Note: "b", Date: date(2024, 6, 2)})

	if err := b.EditTransaction(10, Money{Cents: 500}, "", date(2024, 6, 3)); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if b.Total.Cents != 2500 {
		t.Fatalf("total = %d, want 2500", b.Total.Cents)
	}
	if b.Transactions[0].Note != DefaultNote {
		t.Fatalf("edited blank note should default, got %q", b.Transactions[0].Note)
	}

	if err := b.EditTransaction(99, Money{Cents: 100}, "x", date(2024, 6, 1)); !errors.Is(err, ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}
	if err := b.DeleteTransaction(99); !errors.Is(err, ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}
}

func TestRecalculateAllSelfHeals(t *testing.T) {
	banks := []Bank{
		{
			ID: 1, Name: "Trip", Category: CategoryVacation,
			Total: Money{Cents: 999999}, // stale cached value
			Transactions: []Transaction{
				{ID: 10, Amount: Money{Cents: 100}, Date: date(2024, 1, 1)},
				{ID: 11, Amount: Money{Cents: 250}, Date: date(2024, 1, 2)},
			},
		},
	}
	RecalculateAll(banks)
	if banks[0].Total.Cents != 350 {
		t.Fatalf("total = %d, want 350", banks[0].Total.Cents)
	}
}

func TestRemoveBankCascades(t *testing.T) {
	banks := []Bank{
		{ID: 1, Name: "A", Category: CategoryFood, Transactions: []Transaction{{ID: 10, Amount: Money{Cents: 100}, Date: date(2024, 1, 1)}}},
		{ID: 2, Name: "B", Category: CategoryFood},
	}
	banks, removed := RemoveBank(banks, 1)
	if !removed || len(banks) != 1 || banks[0].ID != 2 {
		t.Fatalf("unexpected collection after remove: %+v", banks)
	}
	if TransactionCount(banks) != 0 {
		t.Fatalf("cascaded transactions still counted: %d", TransactionCount(banks))
	}

	banks, removed = RemoveBank(banks, 99)
	if removed || len(banks) != 1 {
		t.Fatalf("remove of missing id must be a no-op")
	}
}
