package core

import "testing"

func bankWith(id int64, name string, cat Category, cents ...int64) Bank {
	b := Bank{ID: id, Name: name, Category: cat}
	for i, c := range cents {
		b.Transactions = append(b.Transactions, Transaction{
			ID:     id*100 + int64(i),
			Amount: Money{Cents: c},
			Date:   date(2024, 1, i+1),
		})
	}
	b.Recalculate()
	return b
}

func TestGrandTotal(t *testing.T) {
	banks := []Bank{
		bankWith(1, "A", CategoryFood, 100, 250),
		bankWith(2, "B", CategoryVacation, 1000),
	}
	if got := GrandTotal(banks); got.Cents != 1350 {
		t.Fatalf("grand total = %d, want 1350", got.Cents)
	}
	if got := GrandTotal(nil); got.Cents != 0 {
		t.Fatalf("empty grand total = %d, want 0", got.Cents)
	}
}

func TestTransactionCount(t *testing.T) {
	banks := []Bank{
		bankWith(1, "A", CategoryFood, 100, 250),
		bankWith(2, "B", CategoryVacation, 1000),
	}
	if got := TransactionCount(banks); got != 3 {
		t.Fatalf("count = %d, want 3", got)
	}
}

func TestMostUsedCategory(t *testing.T) {
	t.Run("empty collection", func(t *testing.T) {
		if got := MostUsedCategory(nil); got != CategoryNone {
			t.Fatalf("got %q, want %q", got, CategoryNone)
		}
	})

	t.Run("highest count wins", func(t *testing.T) {
		banks := []Bank{
			bankWith(1, "A", CategoryFood),
			bankWith(2, "B", CategoryVacation),
			bankWith(3, "C", CategoryVacation),
		}
		if got := MostUsedCategory(banks); got != CategoryVacation {
			t.Fatalf("got %q, want %q", got, CategoryVacation)
		}
	})

	t.Run("tie breaks to first encountered", func(t *testing.T) {
		banks := []Bank{
			bankWith(1, "A", CategoryShopping),
			bankWith(2, "B", CategoryEducation),
			bankWith(3, "C", CategoryEducation),
			bankWith(4, "D", CategoryShopping),
		}
		if got := MostUsedCategory(banks); got != CategoryShopping {
			t.Fatalf("got %q, want %q", got, CategoryShopping)
		}
	})
}

func TestSummarize(t *testing.T) {
	banks := []Bank{
		bankWith(1, "A", CategoryFood, 100),
		bankWith(2, "B", CategoryFood, 200),
	}
	s := Summarize(banks)
	if s.GrandTotal.Cents != 300 || s.BankCount != 2 || s.TransactionCount != 2 || s.MostUsed != CategoryFood {
		t.Fatalf("unexpected summary: %+v", s)
	}
}
