package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an immutable amount in a single currency. Arithmetic between two
// Money values is only allowed when their currencies match.
type Money struct {
	currency Currency
	amount   decimal.Decimal
}

func NewMoney(currency Currency, amount decimal.Decimal) Money {
	return Money{currency: currency, amount: amount}
}

func (m Money) Currency() Currency {
	return m.currency
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.currency, other.currency)
	}

	return Money{currency: m.currency, amount: m.amount.Add(other.amount)}, nil
}

func (m Money) Sub(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.currency, other.currency)
	}

	return Money{currency: m.currency, amount: m.amount.Sub(other.amount)}, nil
}

func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{currency: m.currency, amount: m.amount.Mul(factor)}
}

// Percent returns the share of m given by p, in the same currency.
func (m Money) Percent(p Percent) Money {
	return m.Mul(p.Ratio())
}

func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

func (m Money) String() string {
	return m.amount.StringFixed(2) + " " + m.currency.Code()
}
