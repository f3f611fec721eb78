package core

// Summary bundles the dashboard statistics derived from the full
// collection. All fields are recomputed from scratch on demand; at this
// data scale incremental maintenance is not worth the bookkeeping.
type Summary struct {
	GrandTotal       Money
	BankCount        int
	TransactionCount int
	MostUsed         Category
}

// GrandTotal sums the cached totals over all banks.
func GrandTotal(banks []Bank) Money {
	var sum int64
	for _, b := range banks {
		sum += b.Total.Cents
	}
	return Money{Cents: sum}
}

// TransactionCount sums the per-bank transaction counts.
func TransactionCount(banks []Bank) int {
	n := 0
	for _, b := range banks {
		n += len(b.Transactions)
	}
	return n
}

// MostUsedCategory returns the category carried by the most banks.
// Ties break in favor of the category encountered first during the
// scan; an empty collection yields CategoryNone.
func MostUsedCategory(banks []Bank) Category {
	if len(banks) == 0 {
		return CategoryNone
	}
	counts := make(map[Category]int, len(categoryInfo))
	var order []Category
	for _, b := range banks {
		if counts[b.Category] == 0 {
			order = append(order, b.Category)
		}
		counts[b.Category]++
	}
	most := CategoryNone
	max := 0
	for _, c := range order {
		if counts[c] > max {
			max = counts[c]
			most = c
		}
	}
	return most
}

// Summarize computes the four dashboard statistics in one pass over the
// collection.
func Summarize(banks []Bank) Summary {
	return Summary{
		GrandTotal:       GrandTotal(banks),
		BankCount:        len(banks),
		TransactionCount: TransactionCount(banks),
		MostUsed:         MostUsedCategory(banks),
	}
}
