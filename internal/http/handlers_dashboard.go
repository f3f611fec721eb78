package http

import (
	"log/slog"
	"net/http"
	"strings"

	"salvadanaio/internal/core"
)

// categoryOption is a category entry for the select controls.
type categoryOption struct {
	Value    string
	Icon     string
	Name     string
	Selected bool
}

func categoryOptions(selected core.Category) []categoryOption {
	opts := make([]categoryOption, 0, len(core.Categories()))
	for _, c := range core.Categories() {
		info := c.Info()
		opts = append(opts, categoryOption{
			Value:    c.String(),
			Icon:     info.Icon,
			Name:     info.Name,
			Selected: c == selected,
		})
	}
	return opts
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	data := struct {
		Categories []categoryOption
	}{
		Categories: categoryOptions(core.CategoryNone),
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleSummary renders the aggregate totals partial.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	summary, err := s.ledger.Summary(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Summary error", "error", err)
		_, _ = w.Write([]byte(`<div class="error">Could not load the summary</div>`))
		return
	}

	info := summary.MostUsed.Info()
	data := struct {
		GrandTotal       string
		BankCount        int
		TransactionCount int
		MostUsedIcon     string
		MostUsedName     string
	}{
		GrandTotal:       summary.GrandTotal.Format(),
		BankCount:        summary.BankCount,
		TransactionCount: summary.TransactionCount,
		MostUsedIcon:     info.Icon,
		MostUsedName:     info.Name,
	}

	if err := s.templates.ExecuteTemplate(w, "summary.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "summary.html")
		_, _ = w.Write([]byte(`<div class="error">Could not render the summary</div>`))
	}
}

// handleDashboard renders the searchable, sortable bank list partial.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	key := ParseSortKey(r.URL.Query())

	banks, err := s.ledger.Dashboard(r.Context(), query, key)
	if err != nil {
		slog.ErrorContext(r.Context(), "Dashboard error", "error", err, "query", query, "sort", key)
		_, _ = w.Write([]byte(`<div class="error">Could not load piggy banks</div>`))
		return
	}

	type bankRow struct {
		ID               int64
		Icon             string
		Name             string
		Total            string
		TransactionCount int
	}
	data := struct {
		Query string
		Banks []bankRow
	}{Query: query}
	for _, b := range banks {
		data.Banks = append(data.Banks, bankRow{
			ID:               b.ID,
			Icon:             b.Category.Info().Icon,
			Name:             b.Name,
			Total:            b.Total.Format(),
			TransactionCount: len(b.Transactions),
		})
	}

	if err := s.templates.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "dashboard.html")
		_, _ = w.Write([]byte(`<div class="error">Could not render piggy banks</div>`))
	}
}
