package domain

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a fixed-point amount with two fractional digits. All arithmetic
// goes through shopspring/decimal; binary floats never enter the type.
type Money struct {
	d decimal.Decimal
}

var ZeroMoney = Money{}

func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d: d.Round(2)}
}

// ParseMoney parses a decimal string such as "12000.00". Inputs with more
// than two fractional digits are rejected rather than rounded.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Money{}, fmt.Errorf("ParseMoney: %q: %w", s, ErrInvalidAmount)
	}
	if d.Exponent() < -2 {
		return Money{}, fmt.Errorf("ParseMoney: %q: more than two fractional digits: %w", s, ErrInvalidAmount)
	}
	return Money{d: d}, nil
}

func MustMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Add(other Money) Money    { return Money{d: m.d.Add(other.d)} }
func (m Money) Sub(other Money) Money    { return Money{d: m.d.Sub(other.d)} }
func (m Money) IsZero() bool             { return m.d.IsZero() }
func (m Money) IsPositive() bool         { return m.d.IsPositive() }
func (m Money) IsNegative() bool         { return m.d.IsNegative() }
func (m Money) Equal(other Money) bool   { return m.d.Equal(other.d) }
func (m Money) GreaterThan(o Money) bool { return m.d.GreaterThan(o.d) }
func (m Money) String() string           { return m.d.StringFixed(2) }

// MarshalJSON renders the amount as an unquoted decimal literal with
// exactly two fractional digits, e.g. 12000.00.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.d.StringFixed(2)), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Scan reads a NUMERIC(18,2) column.
func (m *Money) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*m = ZeroMoney
		return nil
	case []byte:
		return m.scanString(string(v))
	case string:
		return m.scanString(v)
	case int64:
		*m = Money{d: decimal.NewFromInt(v)}
		return nil
	default:
		return fmt.Errorf("Money.Scan: unsupported type %T", value)
	}
}

func (m *Money) scanString(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("Money.Scan: %w", err)
	}
	m.d = d
	return nil
}

func (m Money) Value() (driver.Value, error) {
	return m.d.StringFixed(2), nil
}
