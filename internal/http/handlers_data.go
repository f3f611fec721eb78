package http

import (
	"log/slog"
	"net/http"
	"time"

	"salvadanaio/internal/backup"
	"salvadanaio/internal/store"
)

// importMaxBytes caps uploaded backup files at 10 MiB.
const importMaxBytes = 10 << 20

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		s.exportCSV(w, r)
		return
	}

	name := backup.ArtifactName(time.Now())
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	if err := s.ledger.Export(r.Context(), w); err != nil {
		slog.ErrorContext(r.Context(), "Export error", "error", err)
		http.Error(w, "could not export data", http.StatusInternalServerError)
	}
}

func (s *Server) exportCSV(w http.ResponseWriter, r *http.Request) {
	banks, err := s.ledger.Banks(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Export error", "error", err)
		http.Error(w, "could not export data", http.StatusInternalServerError)
		return
	}

	name := "savings-tracker-report-" + time.Now().Format("2006-01-02") + ".csv"
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	if err := backup.WriteSummaryCSV(banks, w); err != nil {
		slog.ErrorContext(r.Context(), "CSV export error", "error", err)
	}
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, importMaxBytes)
	if err := r.ParseMultipartForm(importMaxBytes); err != nil {
		slog.ErrorContext(r.Context(), "Parse multipart form error", "error", err)
		http.Error(w, "invalid upload", http.StatusBadRequest)
		return
	}

	if r.FormValue("confirm") != "yes" {
		http.Error(w, "import requires confirmation", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing backup file", http.StatusBadRequest)
		return
	}
	defer func() { _ = file.Close() }()

	count, err := s.ledger.Import(r.Context(), file)
	if err != nil {
		if store.IsFormatError(err) {
			http.Error(w, "the file is not a valid backup", http.StatusUnprocessableEntity)
			return
		}
		slog.ErrorContext(r.Context(), "Import error", "error", err)
		http.Error(w, "could not import data", http.StatusInternalServerError)
		return
	}

	slog.InfoContext(r.Context(), "Backup imported", "banks", count)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err)
		http.Error(w, "invalid request format", http.StatusBadRequest)
		return
	}

	// Clearing everything takes two explicit confirmations.
	if !Confirmed(r.Form, "confirm") || !Confirmed(r.Form, "acknowledge") {
		http.Error(w, "clearing all data requires double confirmation", http.StatusBadRequest)
		return
	}

	if err := s.ledger.ClearAll(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Clear error", "error", err)
		http.Error(w, "could not clear data", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
