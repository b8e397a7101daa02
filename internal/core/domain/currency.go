package domain

import (
	"strings"
	"unicode/utf8"
)

// Currency is a three letter currency code such as "EUR".
type Currency struct {
	code string
}

func NewCurrency(code string) (Currency, error) {
	code = strings.TrimSpace(code)
	if code == "" || utf8.RuneCountInString(code) != 3 {
		return Currency{}, ErrInvalidCurrencyCode
	}

	return Currency{code: strings.ToUpper(code)}, nil
}

func (c Currency) Code() string {
	return c.code
}

func (c Currency) String() string {
	return c.code
}
