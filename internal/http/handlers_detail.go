package http

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"salvadanaio/internal/core"
	"salvadanaio/internal/services"
)

// amountInput renders a money value the way the amount form fields expect it.
func amountInput(m core.Money) string {
	cents := m.Cents
	neg := ""
	if cents < 0 {
		neg = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", neg, cents/100, cents%100)
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	id, err := ParseID(r.URL.Query(), "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	bank, err := s.ledger.Bank(r.Context(), id)
	if err != nil {
		if services.IsNotFound(err) {
			http.NotFound(w, r)
			return
		}
		slog.ErrorContext(r.Context(), "Bank lookup error", "error", err, "bank_id", id)
		http.Error(w, "could not load piggy bank", http.StatusInternalServerError)
		return
	}

	data := struct {
		ID         int64
		Icon       string
		Name       string
		Total      string
		Today      string
		Categories []categoryOption
	}{
		ID:         bank.ID,
		Icon:       bank.Category.Info().Icon,
		Name:       bank.Name,
		Total:      bank.Total.Format(),
		Today:      time.Now().Format(dateLayout),
		Categories: categoryOptions(bank.Category),
	}

	if err := s.templates.ExecuteTemplate(w, "detail.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Detail template execution failed", "error", err, "template", "detail.html", "bank_id", id)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleTransactions renders the transaction list partial for one bank.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	id, err := ParseID(r.URL.Query(), "id")
	if err != nil {
		_, _ = w.Write([]byte(`<div class="error">Missing piggy bank id</div>`))
		return
	}
	start := ParseOptionalDate(r.URL.Query(), "start")
	end := ParseOptionalDate(r.URL.Query(), "end")

	txns, err := s.ledger.Transactions(r.Context(), id, start, end)
	if err != nil {
		if services.IsNotFound(err) {
			_, _ = w.Write([]byte(`<div class="error">Piggy bank not found</div>`))
			return
		}
		slog.ErrorContext(r.Context(), "Transaction list error", "error", err, "bank_id", id)
		_, _ = w.Write([]byte(`<div class="error">Could not load transactions</div>`))
		return
	}

	type txRow struct {
		ID        int64
		Date      string
		RawDate   string
		Note      string
		Amount    string
		RawAmount string
	}
	data := struct {
		BankID   int64
		Filtered bool
		Items    []txRow
	}{BankID: id, Filtered: start != nil || end != nil}
	for _, tx := range txns {
		data.Items = append(data.Items, txRow{
			ID:        tx.ID,
			Date:      tx.Date.Format("Jan 2, 2006"),
			RawDate:   tx.Date.Format(dateLayout),
			Note:      tx.Note,
			Amount:    tx.Amount.Format(),
			RawAmount: amountInput(tx.Amount),
		})
	}

	if err := s.templates.ExecuteTemplate(w, "transactions.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "transactions.html", "bank_id", id)
		_, _ = w.Write([]byte(`<div class="error">Could not render transactions</div>`))
	}
}

func (s *Server) handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "method", r.Method, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	bankID, err := ParseID(r.Form, "bank_id")
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Missing piggy bank id</div>`))
		return
	}

	amount, err := core.ParseAmount(r.Form.Get("amount"))
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Please enter a valid amount</div>`))
		return
	}

	date, err := ParseDate(r.Form, "date")
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Please pick a valid date</div>`))
		return
	}

	note := sanitizeInput(r.Form.Get("note"))

	tx, err := s.ledger.AddTransaction(r.Context(), bankID, amount, note, date)
	if err != nil {
		// The bank may have been deleted from another view. No state
		// change; trigger a refresh so this view catches up.
		if services.IsNotFound(err) {
			w.Header().Set("HX-Trigger", "bank:changed")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`<div class="placeholder">This piggy bank no longer exists</div>`))
			return
		}
		slog.ErrorContext(r.Context(), "Add transaction error", "error", err, "bank_id", bankID, "amount_cents", amount.Cents)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Could not save the transaction</div>`))
		return
	}

	w.Header().Set("HX-Trigger", "transaction:changed")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Added ` + template.HTMLEscapeString(tx.Amount.Format()) +
		` (` + template.HTMLEscapeString(tx.Note) + `)</div>`))
}

func (s *Server) handleEditTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "method", r.Method, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	bankID, err := ParseID(r.Form, "bank_id")
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Missing piggy bank id</div>`))
		return
	}
	txID, err := ParseID(r.Form, "id")
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Missing transaction id</div>`))
		return
	}

	amount, err := core.ParseAmount(r.Form.Get("amount"))
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Please enter a valid amount</div>`))
		return
	}
	date, err := ParseDate(r.Form, "date")
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Please pick a valid date</div>`))
		return
	}
	note := sanitizeInput(r.Form.Get("note"))

	if err := s.ledger.EditTransaction(r.Context(), bankID, txID, amount, note, date); err != nil {
		if services.IsNotFound(err) {
			w.Header().Set("HX-Trigger", "transaction:changed")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`<div class="placeholder">This transaction no longer exists</div>`))
			return
		}
		slog.ErrorContext(r.Context(), "Edit transaction error", "error", err, "bank_id", bankID, "transaction_id", txID)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Could not save the transaction</div>`))
		return
	}

	w.Header().Set("HX-Trigger", "transaction:changed")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Transaction updated</div>`))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodDelete {
		w.Header().Set("Allow", "POST, DELETE")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "method", r.Method, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	bankID, err := ParseID(r.Form, "bank_id")
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Missing piggy bank id</div>`))
		return
	}
	txID, err := ParseID(r.Form, "id")
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Missing transaction id</div>`))
		return
	}

	if err := s.ledger.DeleteTransaction(r.Context(), bankID, txID); err != nil {
		if services.IsNotFound(err) {
			w.Header().Set("HX-Trigger", "transaction:changed")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`<div class="placeholder">This transaction no longer exists</div>`))
			return
		}
		slog.ErrorContext(r.Context(), "Delete transaction error", "error", err, "bank_id", bankID, "transaction_id", txID)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Could not delete the transaction</div>`))
		return
	}

	w.Header().Set("HX-Trigger", "transaction:changed")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Transaction deleted</div>`))
}
