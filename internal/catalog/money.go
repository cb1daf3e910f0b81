package catalog

import "github.com/shopspring/decimal"

// Money is an exact decimal amount that always encodes as a JSON number.
// Decoding accepts a JSON number or a numeric string.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

// MustMoney parses s and panics on malformed input. Use it for fixed data.
func MustMoney(s string) Money {
	return Money{Decimal: decimal.RequireFromString(s)}
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}
