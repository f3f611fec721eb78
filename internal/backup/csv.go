package backup

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"salvadanaio/internal/core"
)

// WriteSummaryCSV renders a human-readable report of the collection:
// a summary section followed by one row per piggy bank.
func WriteSummaryCSV(banks []core.Bank, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	s := core.Summarize(banks)

	header := [][]string{
		{"Savings Tracker Report"},
		{"Generated", time.Now().Format("2006-01-02 15:04:05")},
		{},
		{"SUMMARY"},
		{"Total Balance", s.GrandTotal.Format()},
		{"Piggy Banks", strconv.Itoa(s.BankCount)},
		{"Total Transactions", strconv.Itoa(s.TransactionCount)},
		{"Most Used Category", s.MostUsed.Info().Name},
		{},
		{"PIGGY BANKS"},
		{"Name", "Category", "Transactions", "Total"},
	}
	for _, row := range header {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write report header: %w", err)
		}
	}

	for _, b := range banks {
		row := []string{
			b.Name,
			b.Category.Info().Name,
			strconv.Itoa(len(b.Transactions)),
			b.Total.Format(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write bank row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
