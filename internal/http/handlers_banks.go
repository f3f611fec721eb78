package http

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"salvadanaio/internal/core"
)

// bankValidationMessage maps domain validation errors to user-facing text.
func bankValidationMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrEmptyName):
		return "Please enter a name"
	case errors.Is(err, core.ErrNameTooLong):
		return "The name is too long"
	case errors.Is(err, core.ErrInvalidCategory):
		return "Unknown category"
	default:
		return "Invalid piggy bank data"
	}
}

func (s *Server) handleCreateBank(w http.ResponseWriter, r *http.Request) {
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

	name := sanitizeInput(r.Form.Get("name"))
	category := core.Category(sanitizeInput(r.Form.Get("category")))

	bank, err := s.ledger.CreateBank(r.Context(), name, category)
	if err != nil {
		if errors.Is(err, core.ErrEmptyName) || errors.Is(err, core.ErrNameTooLong) || errors.Is(err, core.ErrInvalidCategory) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(bankValidationMessage(err)) + `</div>`))
			return
		}
		slog.ErrorContext(r.Context(), "Create bank error", "error", err, "bank_name", name)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Could not save the piggy bank</div>`))
		return
	}

	w.Header().Set("HX-Trigger", "bank:changed")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Created ` + template.HTMLEscapeString(bank.Category.Info().Icon+" "+bank.Name) + `</div>`))
}

func (s *Server) handleEditBank(w http.ResponseWriter, r *http.Request) {
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

	id, err := ParseID(r.Form, "id")
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Missing piggy bank id</div>`))
		return
	}

	name := sanitizeInput(r.Form.Get("name"))
	category := core.Category(sanitizeInput(r.Form.Get("category")))

	if err := s.ledger.EditBank(r.Context(), id, name, category); err != nil {
		if errors.Is(err, core.ErrEmptyName) || errors.Is(err, core.ErrNameTooLong) || errors.Is(err, core.ErrInvalidCategory) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(bankValidationMessage(err)) + `</div>`))
			return
		}
		slog.ErrorContext(r.Context(), "Edit bank error", "error", err, "bank_id", id)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Could not save the piggy bank</div>`))
		return
	}

	w.Header().Set("HX-Trigger", "bank:changed")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Piggy bank updated</div>`))
}

func (s *Server) handleDeleteBank(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "method", r.Method, "url", r.URL.Path)
		http.Error(w, "invalid request format", http.StatusBadRequest)
		return
	}

	id, err := ParseID(r.Form, "id")
	if err != nil {
		http.Error(w, "missing piggy bank id", http.StatusBadRequest)
		return
	}

	if !Confirmed(r.Form, "confirm") {
		http.Error(w, "deletion requires confirmation", http.StatusBadRequest)
		return
	}

	if err := s.ledger.DeleteBank(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Delete bank error", "error", err, "bank_id", id)
		http.Error(w, "could not delete the piggy bank", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
