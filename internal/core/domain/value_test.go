package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/venue_booking/internal/core/domain"
)

func TestNewCurrency(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		want    string
		wantErr bool
	}{
		{name: "valid", code: "EUR", want: "EUR"},
		{name: "lower case normalised", code: "usd", want: "USD"},
		{name: "empty", code: "", wantErr: true},
		{name: "too short", code: "EU", wantErr: true},
		{name: "too long", code: "EURO", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := domain.NewCurrency(tt.code)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidCurrencyCode)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Code())
		})
	}
}

func TestNewPercent(t *testing.T) {
	for _, ratio := range []string{"1.5", "-0.1", "1.0001"} {
		_, err := domain.NewPercent(decimal.RequireFromString(ratio))
		assert.ErrorIs(t, err, domain.ErrInvalidPercent, ratio)
	}

	for _, ratio := range []string{"0", "1", "0.2"} {
		p, err := domain.NewPercent(decimal.RequireFromString(ratio))
		require.NoError(t, err, ratio)
		assert.True(t, p.Ratio().Equal(decimal.RequireFromString(ratio)))
	}
}

func TestMustPercentPanicsOutOfRange(t *testing.T) {
	assert.Panics(t, func() { domain.MustPercent("2") })
}

func TestMoneyArithmetic(t *testing.T) {
	eur, _ := domain.NewCurrency("EUR")
	usd, _ := domain.NewCurrency("USD")

	a := domain.NewMoney(eur, decimal.NewFromInt(100))
	b := domain.NewMoney(eur, decimal.NewFromInt(40))

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Equal(domain.NewMoney(eur, decimal.NewFromInt(140))))

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.True(t, diff.Amount().Equal(decimal.NewFromInt(60)))

	_, err = a.Add(domain.NewMoney(usd, decimal.NewFromInt(1)))
	assert.ErrorIs(t, err, domain.ErrCurrencyMismatch)

	share := a.Percent(domain.MustPercent("0.25"))
	assert.True(t, share.Amount().Equal(decimal.NewFromInt(25)))
	assert.Equal(t, "EUR", share.Currency().Code())
	assert.Equal(t, "100.00 EUR", a.String())
}

func TestTimeOfDay(t *testing.T) {
	nine, err := domain.ParseTimeOfDay("09:00")
	require.NoError(t, err)
	assert.Equal(t, 9, nine.Hour())
	assert.Equal(t, "09:00", nine.String())

	before, err := domain.NewTimeOfDay(8, 59)
	require.NoError(t, err)
	assert.True(t, before.Before(nine))
	assert.False(t, nine.Before(nine))

	_, err = domain.NewTimeOfDay(24, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidTimeOfDay)

	_, err = domain.ParseTimeOfDay("9am")
	assert.ErrorIs(t, err, domain.ErrInvalidTimeOfDay)
}
