package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/venue_booking/internal/core/domain"
)

func TestRecentBookingsKeepsLastTwo(t *testing.T) {
	f := newFixture(t)
	user, err := domain.NewUser(30)
	require.NoError(t, err)

	first := f.book(t, user)
	assert.Equal(t, []*domain.Booking{first}, user.RecentBookings())

	second := f.book(t, user)
	assert.Equal(t, []*domain.Booking{first, second}, user.RecentBookings())

	third := f.book(t, user)
	assert.Equal(t, []*domain.Booking{second, third}, user.RecentBookings())
}

func TestRecentBookingsReturnsCopy(t *testing.T) {
	f := newFixture(t)
	company := domain.NewCompany(domain.MustPercent("0.1"))
	f.book(t, company)

	got := company.RecentBookings()
	got[0] = nil

	assert.NotNil(t, company.RecentBookings()[0])
}

func TestNewUserRejectsNegativeAge(t *testing.T) {
	_, err := domain.NewUser(-1)
	assert.ErrorIs(t, err, domain.ErrInvalidAge)
}

func TestPartyKinds(t *testing.T) {
	user, _ := domain.NewUser(20)
	company := domain.NewCompany(domain.MustPercent("0"))

	assert.Equal(t, domain.PartyUser, user.Kind())
	assert.Equal(t, domain.PartyCompany, company.Kind())
	assert.NotEqual(t, user.ID(), company.ID())
}
