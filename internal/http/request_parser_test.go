package http

import (
	"net/url"
	"testing"
	"time"

	"salvadanaio/internal/core"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int64
		wantErr bool
	}{
		{"valid", "42", 42, false},
		{"millisecond id", "1714000000000", 1714000000000, false},
		{"missing", "", 0, true},
		{"zero", "0", 0, true},
		{"negative", "-5", 0, true},
		{"not a number", "abc", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{}
			if tt.raw != "" {
				values.Set("id", tt.raw)
			}
			got, err := ParseID(values, "id")
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseID(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseID(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	values := url.Values{"date": {"2024-03-15"}}
	got, err := ParseDate(values, "date")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseDate() = %v, want %v", got, want)
	}

	for _, raw := range []string{"", "15/03/2024", "not-a-date"} {
		values := url.Values{}
		if raw != "" {
			values.Set("date", raw)
		}
		if _, err := ParseDate(values, "date"); err == nil {
			t.Errorf("ParseDate(%q) = nil error, want error", raw)
		}
	}
}

func TestParseOptionalDate(t *testing.T) {
	if got := ParseOptionalDate(url.Values{}, "start"); got != nil {
		t.Errorf("ParseOptionalDate(absent) = %v, want nil", got)
	}
	if got := ParseOptionalDate(url.Values{"start": {"garbage"}}, "start"); got != nil {
		t.Errorf("ParseOptionalDate(garbage) = %v, want nil", got)
	}
	got := ParseOptionalDate(url.Values{"start": {"2024-01-31"}}, "start")
	if got == nil || got.Day() != 31 {
		t.Errorf("ParseOptionalDate(2024-01-31) = %v, want Jan 31", got)
	}
}

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		raw  string
		want core.SortKey
	}{
		{"name-asc", core.SortNameAsc},
		{"amount-desc", core.SortAmountDesc},
		{"", core.SortNameAsc},
		{"bogus", core.SortNameAsc},
	}
	for _, tt := range tests {
		values := url.Values{}
		if tt.raw != "" {
			values.Set("sort", tt.raw)
		}
		if got := ParseSortKey(values); got != tt.want {
			t.Errorf("ParseSortKey(%q) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}

func TestConfirmed(t *testing.T) {
	if Confirmed(url.Values{}, "confirm") {
		t.Error("Confirmed(absent) = true, want false")
	}
	if Confirmed(url.Values{"confirm": {"no"}}, "confirm") {
		t.Error("Confirmed(no) = true, want false")
	}
	if !Confirmed(url.Values{"confirm": {"yes"}}, "confirm") {
		t.Error("Confirmed(yes) = false, want true")
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  hello  ", "hello"},
		{"with\x00null", "withnull"},
		{"keep\ttabs", "keep\ttabs"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := sanitizeInput(tt.in); got != tt.want {
			t.Errorf("sanitizeInput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
