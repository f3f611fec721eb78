package core

import (
	"sort"
	"strings"
	"time"
)

// SortKey selects the dashboard ordering. The string values match the
// sort selector options of the UI.
type SortKey string

const (
	SortNameAsc    SortKey = "name-asc"
	SortNameDesc   SortKey = "name-desc"
	SortAmountDesc SortKey = "amount-desc"
	SortAmountAsc  SortKey = "amount-asc"
)

func (k SortKey) IsValid() bool {
	switch k {
	case SortNameAsc, SortNameDesc, SortAmountDesc, SortAmountAsc:
		return true
	}
	return false
}

// FilterBanks retains banks whose name contains query as a
// case-insensitive substring. An empty query matches all. The input
// slice is not modified.
func FilterBanks(banks []Bank, query string) []Bank {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return append([]Bank(nil), banks...)
	}
	out := make([]Bank, 0, len(banks))
	for _, b := range banks {
		if strings.Contains(strings.ToLower(b.Name), query) {
			out = append(out, b)
		}
	}
	return out
}

// SortBanks orders banks in place by the given key. The sort is stable,
// so equal elements keep their original relative order.
func SortBanks(banks []Bank, key SortKey) {
	sort.SliceStable(banks, func(i, j int) bool {
		switch key {
		case SortNameAsc:
			return banks[i].Name < banks[j].Name
		case SortNameDesc:
			return banks[j].Name < banks[i].Name
		case SortAmountDesc:
			return banks[j].Total.Cents < banks[i].Total.Cents
		case SortAmountAsc:
			return banks[i].Total.Cents < banks[j].Total.Cents
		}
		return false
	})
}

// QueryBanks applies filter then sort, producing the sequence to
// render. Recomputed fully on every call; no incremental update.
func QueryBanks(banks []Bank, query string, key SortKey) []Bank {
	out := FilterBanks(banks, query)
	SortBanks(out, key)
	return out
}

// FilterByDateRange keeps transactions whose calendar day falls within
// the optional start/end bounds, both inclusive. Transaction dates are
// normalized to midnight; the end bound is compared at end-of-day.
func FilterByDateRange(txns []Transaction, start, end *time.Time) []Transaction {
	if start == nil && end == nil {
		return append([]Transaction(nil), txns...)
	}
	out := make([]Transaction, 0, len(txns))
	for _, tx := range txns {
		day := midnight(tx.Date)
		if start != nil && day.Before(midnight(*start)) {
			continue
		}
		if end != nil && day.After(endOfDay(*end)) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// SortByDateDesc orders transactions newest first for display.
func SortByDateDesc(txns []Transaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		return txns[j].Date.Before(txns[i].Date)
	})
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, t.Location())
}
