package domain

import "github.com/shopspring/decimal"

var (
	percentMin = decimal.Zero
	percentMax = decimal.NewFromInt(1)
)

// Percent is a ratio in the closed range [0, 1].
type Percent struct {
	ratio decimal.Decimal
}

func NewPercent(ratio decimal.Decimal) (Percent, error) {
	if ratio.LessThan(percentMin) || ratio.GreaterThan(percentMax) {
		return Percent{}, ErrInvalidPercent
	}

	return Percent{ratio: ratio}, nil
}

// MustPercent is NewPercent for constants known to be in range.
func MustPercent(ratio string) Percent {
	p, err := NewPercent(decimal.RequireFromString(ratio))
	if err != nil {
		panic(err)
	}

	return p
}

func (p Percent) Ratio() decimal.Decimal {
	return p.ratio
}

func (p Percent) String() string {
	return p.ratio.String()
}
