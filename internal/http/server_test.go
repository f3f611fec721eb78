package http

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"salvadanaio/internal/core"
	"salvadanaio/internal/services"
	"salvadanaio/internal/store/memory"
)

func newTestServer(t *testing.T) (*Server, *services.Ledger) {
	t.Helper()
	ledger := services.NewLedger(memory.New(), nil)
	return NewServer(":0", ledger), ledger
}

func postForm(t *testing.T, srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func TestIndexAndHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := get(t, srv, "/")
	if rr.Code != 200 {
		t.Fatalf("index status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Savings Tracker") {
		t.Fatalf("index body missing heading")
	}

	for _, path := range []string{"/healthz", "/readyz"} {
		rr := get(t, srv, path)
		if rr.Code != 200 {
			t.Fatalf("%s status=%d", path, rr.Code)
		}
	}

	if rr := get(t, srv, "/no-such-page"); rr.Code != http.StatusNotFound {
		t.Fatalf("unknown path status=%d, want 404", rr.Code)
	}
}

func TestCreateBankValidationAndSuccess(t *testing.T) {
	srv, _ := newTestServer(t)

	// Wrong method
	if rr := get(t, srv, "/banks"); rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}

	// Empty name
	rr := postForm(t, srv, "/banks", url.Values{"name": {""}, "category": {"food"}})
	if rr.Code != 422 {
		t.Fatalf("expected 422, got %d", rr.Code)
	}

	// Unknown category
	rr = postForm(t, srv, "/banks", url.Values{"name": {"Trip"}, "category": {"crypto"}})
	if rr.Code != 422 {
		t.Fatalf("expected 422, got %d", rr.Code)
	}

	// Success
	rr = postForm(t, srv, "/banks", url.Values{"name": {"Trip to Rome"}, "category": {"vacation"}})
	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "success") {
		t.Fatalf("expected success in body: %s", rr.Body.String())
	}
	if rr.Header().Get("HX-Trigger") != "bank:changed" {
		t.Fatalf("expected bank:changed trigger, got %q", rr.Header().Get("HX-Trigger"))
	}
}

func TestDashboardAndSummaryPartials(t *testing.T) {
	srv, ledger := newTestServer(t)
	ctx := context.Background()
	if _, err := ledger.CreateBank(ctx, "Emergency Fund", core.CategoryShopping); err != nil {
		t.Fatal(err)
	}

	rr := get(t, srv, "/ui/dashboard")
	if rr.Code != 200 || !strings.Contains(rr.Body.String(), "Emergency Fund") {
		t.Fatalf("dashboard status=%d body=%s", rr.Code, rr.Body.String())
	}

	rr = get(t, srv, "/ui/dashboard?q=zzz")
	if !strings.Contains(rr.Body.String(), "No piggy banks match") {
		t.Fatalf("expected empty search message, got %s", rr.Body.String())
	}

	rr = get(t, srv, "/ui/summary")
	if rr.Code != 200 || !strings.Contains(rr.Body.String(), "$0.00") {
		t.Fatalf("summary status=%d body=%s", rr.Code, rr.Body.String())
	}
}

func TestTransactionLifecycle(t *testing.T) {
	srv, ledger := newTestServer(t)
	ctx := context.Background()
	bank, err := ledger.CreateBank(ctx, "Trip", core.CategoryVacation)
	if err != nil {
		t.Fatal(err)
	}
	bankID := strconv.FormatInt(bank.ID, 10)

	// Invalid amount
	rr := postForm(t, srv, "/transactions", url.Values{
		"bank_id": {bankID}, "amount": {"abc"}, "date": {"2024-03-15"},
	})
	if rr.Code != 422 {
		t.Fatalf("expected 422, got %d", rr.Code)
	}

	// Missing date
	rr = postForm(t, srv, "/transactions", url.Values{
		"bank_id": {bankID}, "amount": {"10.50"},
	})
	if rr.Code != 422 {
		t.Fatalf("expected 422, got %d", rr.Code)
	}

	// Unknown bank is a no-op that asks the view to refresh
	rr = postForm(t, srv, "/transactions", url.Values{
		"bank_id": {"999"}, "amount": {"10.50"}, "date": {"2024-03-15"},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 no-op, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "no longer exists") {
		t.Fatalf("expected no-op message, got %s", rr.Body.String())
	}
	if rr.Header().Get("HX-Trigger") != "bank:changed" {
		t.Fatalf("expected refresh trigger, got %q", rr.Header().Get("HX-Trigger"))
	}

	// Success
	rr = postForm(t, srv, "/transactions", url.Values{
		"bank_id": {bankID}, "amount": {"10.50"}, "note": {"birthday"}, "date": {"2024-03-15"},
	})
	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	// Partial lists the transaction
	rr = get(t, srv, "/ui/transactions?id="+bankID)
	if rr.Code != 200 || !strings.Contains(rr.Body.String(), "birthday") {
		t.Fatalf("transactions status=%d body=%s", rr.Code, rr.Body.String())
	}

	// Date filter excludes it
	rr = get(t, srv, "/ui/transactions?id="+bankID+"&start=2024-04-01")
	if !strings.Contains(rr.Body.String(), "No transactions in the selected date range") {
		t.Fatalf("expected filtered empty message, got %s", rr.Body.String())
	}

	// Edit and delete round out the lifecycle
	txns, err := ledger.Transactions(ctx, bank.ID, nil, nil)
	if err != nil || len(txns) != 1 {
		t.Fatalf("Transactions() = %v, %v", txns, err)
	}
	txID := strconv.FormatInt(txns[0].ID, 10)

	rr = postForm(t, srv, "/transactions/edit", url.Values{
		"bank_id": {bankID}, "id": {txID}, "amount": {"5.00"}, "note": {"updated"}, "date": {"2024-03-16"},
	})
	if rr.Code != 200 {
		t.Fatalf("edit expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = postForm(t, srv, "/transactions/delete", url.Values{
		"bank_id": {bankID}, "id": {txID},
	})
	if rr.Code != 200 {
		t.Fatalf("delete expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	b, err := ledger.Bank(ctx, bank.ID)
	if err != nil {
		t.Fatal(err)
	}
	if b.Total.Cents != 0 || len(b.Transactions) != 0 {
		t.Fatalf("bank after delete = total %d, %d transactions", b.Total.Cents, len(b.Transactions))
	}
}

func TestDetailPage(t *testing.T) {
	srv, ledger := newTestServer(t)
	bank, err := ledger.CreateBank(context.Background(), "Trip", core.CategoryVacation)
	if err != nil {
		t.Fatal(err)
	}

	rr := get(t, srv, "/detail?id="+strconv.FormatInt(bank.ID, 10))
	if rr.Code != 200 || !strings.Contains(rr.Body.String(), "Trip") {
		t.Fatalf("detail status=%d", rr.Code)
	}

	if rr := get(t, srv, "/detail?id=999"); rr.Code != http.StatusNotFound {
		t.Fatalf("missing bank detail status=%d, want 404", rr.Code)
	}
	if rr := get(t, srv, "/detail"); rr.Code != http.StatusBadRequest {
		t.Fatalf("detail without id status=%d, want 400", rr.Code)
	}
}

func TestDeleteBankRequiresConfirmation(t *testing.T) {
	srv, ledger := newTestServer(t)
	ctx := context.Background()
	bank, err := ledger.CreateBank(ctx, "Trip", core.CategoryVacation)
	if err != nil {
		t.Fatal(err)
	}
	id := strconv.FormatInt(bank.ID, 10)

	rr := postForm(t, srv, "/banks/delete", url.Values{"id": {id}})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unconfirmed delete status=%d, want 400", rr.Code)
	}
	if _, err := ledger.Bank(ctx, bank.ID); err != nil {
		t.Fatal("bank deleted without confirmation")
	}

	rr = postForm(t, srv, "/banks/delete", url.Values{"id": {id}, "confirm": {"yes"}})
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("confirmed delete status=%d, want 303", rr.Code)
	}
	if _, err := ledger.Bank(ctx, bank.ID); !services.IsNotFound(err) {
		t.Fatalf("Bank() after delete = %v, want not found", err)
	}
}

func TestExportAndImport(t *testing.T) {
	srv, ledger := newTestServer(t)
	ctx := context.Background()
	bank, err := ledger.CreateBank(ctx, "Trip", core.CategoryVacation)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ledger.AddTransaction(ctx, bank.ID, core.Money{Cents: 1050}, "", time.Now()); err != nil {
		t.Fatal(err)
	}

	rr := get(t, srv, "/export")
	if rr.Code != 200 {
		t.Fatalf("export status=%d", rr.Code)
	}
	if !strings.Contains(rr.Header().Get("Content-Disposition"), "savings-tracker-backup-") {
		t.Fatalf("export disposition=%q", rr.Header().Get("Content-Disposition"))
	}
	exported := rr.Body.Bytes()

	rr = get(t, srv, "/export?format=csv")
	if rr.Code != 200 || !strings.Contains(rr.Header().Get("Content-Type"), "text/csv") {
		t.Fatalf("csv export status=%d type=%s", rr.Code, rr.Header().Get("Content-Type"))
	}

	// Import without confirmation is rejected
	body, contentType := multipartUpload(t, exported, "")
	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/import", body)
	req.Header.Set("Content-Type", contentType)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unconfirmed import status=%d, want 400", rr.Code)
	}

	// Garbage upload is rejected as a format error
	body, contentType = multipartUpload(t, []byte("{not json"), "yes")
	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/import", body)
	req.Header.Set("Content-Type", contentType)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("garbage import status=%d, want 422", rr.Code)
	}

	// Confirmed import of the export round-trips
	body, contentType = multipartUpload(t, exported, "yes")
	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/import", body)
	req.Header.Set("Content-Type", contentType)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("confirmed import status=%d, want 303: %s", rr.Code, rr.Body.String())
	}

	banks, err := ledger.Banks(ctx)
	if err != nil || len(banks) != 1 {
		t.Fatalf("Banks() after import = %v, %v", banks, err)
	}
	if banks[0].Total.Cents != 1050 {
		t.Fatalf("imported total = %d, want 1050", banks[0].Total.Cents)
	}
}

func multipartUpload(t *testing.T, content []byte, confirm string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "backup.json")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatal(err)
	}
	if confirm != "" {
		if err := mw.WriteField("confirm", confirm); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func TestClearRequiresDoubleConfirmation(t *testing.T) {
	srv, ledger := newTestServer(t)
	ctx := context.Background()
	if _, err := ledger.CreateBank(ctx, "Trip", core.CategoryVacation); err != nil {
		t.Fatal(err)
	}

	for _, form := range []url.Values{
		{},
		{"confirm": {"yes"}},
		{"acknowledge": {"yes"}},
	} {
		if rr := postForm(t, srv, "/clear", form); rr.Code != http.StatusBadRequest {
			t.Fatalf("partial confirmation %v status=%d, want 400", form, rr.Code)
		}
	}

	rr := postForm(t, srv, "/clear", url.Values{"confirm": {"yes"}, "acknowledge": {"yes"}})
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("confirmed clear status=%d, want 303", rr.Code)
	}
	banks, err := ledger.Banks(ctx)
	if err != nil || len(banks) != 0 {
		t.Fatalf("Banks() after clear = %v, %v", banks, err)
	}
}
