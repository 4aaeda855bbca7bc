package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Amount is a signed decimal money value. Document forms historically
// produced amounts as numbers, numeric strings, empty strings or nothing
// at all, so decoding is tolerant: anything that does not parse becomes
// zero instead of failing the whole collection.
type Amount struct {
	decimal.Decimal
}

// NewAmount creates an Amount from a decimal value.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// AmountFromInt creates an Amount from an integer value.
func AmountFromInt(v int64) Amount {
	return Amount{Decimal: decimal.NewFromInt(v)}
}

// AmountFromString parses s, coercing malformed input to zero.
func AmountFromString(s string) Amount {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Amount{Decimal: decimal.Zero}
	}
	return Amount{Decimal: d}
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	s = strings.Trim(s, `"`)
	if s == "" || s == "null" {
		a.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		a.Decimal = decimal.Zero
		return nil
	}
	a.Decimal = d
	return nil
}

// Date is a calendar date. Accepts RFC3339 timestamps and plain
// "2006-01-02" dates; anything else decodes to the zero date.
type Date struct {
	time.Time
}

// NewDate creates a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateFromString parses s, returning the zero date on failure.
func DateFromString(s string) Date {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Date{Time: t}
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return Date{Time: t}
	}
	return Date{}
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	*d = DateFromString(s)
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}
