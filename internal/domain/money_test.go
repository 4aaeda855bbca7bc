package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/easycloudbook/cloudbook-api/internal/domain"
)

func TestAmount_DecodesNumbersAndStrings(t *testing.T) {
	var doc struct {
		A domain.Amount `json:"a"`
		B domain.Amount `json:"b"`
	}
	if err := json.Unmarshal([]byte(`{"a": 123.45, "b": "67.80"}`), &doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.A.String() != "123.45" {
		t.Errorf("expected 123.45, got %s", doc.A)
	}
	if !doc.B.Equal(domain.AmountFromString("67.8").Decimal) {
		t.Errorf("expected 67.8, got %s", doc.B)
	}
}

func TestAmount_MalformedInputCoercesToZero(t *testing.T) {
	cases := []string{`{"a": "abc"}`, `{"a": ""}`, `{"a": null}`, `{}`}
	for _, raw := range cases {
		var doc struct {
			A domain.Amount `json:"a"`
		}
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			t.Fatalf("%s: unexpected error: %v", raw, err)
		}
		if !doc.A.IsZero() {
			t.Errorf("%s: expected zero, got %s", raw, doc.A)
		}
	}
}

func TestDate_AcceptsBothFormats(t *testing.T) {
	var doc struct {
		Plain domain.Date `json:"plain"`
		Full  domain.Date `json:"full"`
	}
	raw := `{"plain": "2026-03-05", "full": "2026-03-05T10:30:00Z"}`
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Plain.Year() != 2026 || doc.Plain.Month() != time.March || doc.Plain.Day() != 5 {
		t.Errorf("plain date parsed wrong: %v", doc.Plain)
	}
	if doc.Full.Hour() != 10 {
		t.Errorf("timestamp parsed wrong: %v", doc.Full)
	}
}

func TestDate_MalformedInputIsZero(t *testing.T) {
	var doc struct {
		D domain.Date `json:"d"`
	}
	if err := json.Unmarshal([]byte(`{"d": "not-a-date"}`), &doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !doc.D.IsZero() {
		t.Errorf("expected zero date, got %v", doc.D)
	}
}

func TestDate_MarshalsAsPlainDate(t *testing.T) {
	out, err := json.Marshal(domain.NewDate(2026, time.March, 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != `"2026-03-05"` {
		t.Errorf("expected \"2026-03-05\", got %s", out)
	}
}

func TestClassification_DebitNormal(t *testing.T) {
	debitNormal := []domain.Classification{
		domain.ClassAsset, domain.ClassExpense, domain.ClassCostOfGoodsSold,
	}
	creditNormal := []domain.Classification{
		domain.ClassLiability, domain.ClassEquity, domain.ClassRevenue, "Something Else",
	}
	for _, c := range debitNormal {
		if !c.DebitNormal() {
			t.Errorf("%s should be debit-normal", c)
		}
	}
	for _, c := range creditNormal {
		if c.DebitNormal() {
			t.Errorf("%s should be credit-normal", c)
		}
	}
}
