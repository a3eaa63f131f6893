package arthik

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency amounts are displayed in when none is configured.
const DefaultCurrency = money.INR

// Money represents an exact monetary value in major units.
// The backend is the authority on amounts, Money only carries and displays them.
type Money struct {
	value decimal.Decimal
}

func M[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Money {
	switch v := any(value).(type) {
	case float32:
		return Money{decimal.NewFromFloat32(v)}
	case float64:
		return Money{decimal.NewFromFloat(v)}
	case int:
		return Money{decimal.NewFromInt(int64(v))}
	case int32:
		return Money{decimal.NewFromInt32(v)}
	case int64:
		return Money{decimal.NewFromInt(v)}
	case decimal.Decimal:
		return Money{v}
	}
	return Money{}
}

// ParseMoney parses a user typed amount like "1250.50".
func ParseMoney(s string) (Money, error) {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Money{v}, nil
}

// Format returns the amount formatted in the given ISO currency code.
func (m Money) Format(currency string) string {
	if currency == "" {
		currency = DefaultCurrency
	}
	// to get a never nil currency I need to call the Money constructor
	cur := money.New(0, currency).Currency()
	return cur.Formatter().Format(m.value.Shift(int32(cur.Fraction)).Round(0).IntPart())
}

// String returns the amount with two decimals and no currency.
func (m Money) String() string { return m.value.StringFixed(2) }

func (m Money) Decimal() decimal.Decimal          { return m.value }
func (m Money) IsZero() bool                      { return m.value.IsZero() }
func (m Money) IsPositive() bool                  { return m.value.IsPositive() }
func (m Money) IsNegative() bool                  { return m.value.IsNegative() }
func (m Money) Equal(n Money) bool                { return m.value.Equal(n.value) }
func (m Money) LessThan(n Money) bool             { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool          { return m.value.GreaterThan(n.value) }
func (m Money) Add(n Money) Money                 { return Money{m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money                 { return Money{m.value.Sub(n.value)} }
func (m Money) Abs() Money                        { return Money{m.value.Abs()} }
func (m Money) Neg() Money                        { return Money{m.value.Neg()} }
func (m Money) AsFloat() float64                  { return m.value.InexactFloat64() }
func (m Money) Max(n Money) Money                 { return Money{decimal.Max(m.value, n.value)} }
func (m Money) Ratio(total Money) Percent {
	if total.IsZero() {
		return 0
	}
	return Percent(m.value.Div(total.value).Mul(decimal.NewFromInt(100)).InexactFloat64())
}

// MarshalJSON encodes the amount as a JSON number, as the backend expects.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.value.String()), nil
}

// UnmarshalJSON accepts JSON numbers, quoted numbers and null.
func (m *Money) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Money{}
		return nil
	}
	return m.value.UnmarshalJSON(data)
}
