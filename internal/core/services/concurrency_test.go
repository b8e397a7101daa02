package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/venue_booking/internal/adapter/payment"
	"github.com/srgjo27/venue_booking/internal/adapter/queue/rabbitmq"
	"github.com/srgjo27/venue_booking/internal/adapter/repository/memory"
	"github.com/srgjo27/venue_booking/internal/core/services"
	"github.com/srgjo27/venue_booking/internal/platform/clock"
)

func TestConcurrentReadsDuringStateChanges(t *testing.T) {
	clk := clock.NewManual(now)
	svc := services.NewBookingService(
		memory.NewBookingRepository(clk),
		memory.NewPartyRepository(),
		payment.NewLedgerGateway(clk),
		rabbitmq.LogPublisher{},
		nil,
		clk,
	)
	ctx := context.Background()

	party, err := svc.RegisterParty(ctx, services.RegisterPartyRequest{Kind: "user", Age: 30})
	require.NoError(t, err)

	booking, err := svc.CreateBooking(ctx, services.CreateBookingRequest{
		PartyID:         party.PartyID,
		StartTime:       startTime.Format(time.RFC3339),
		DurationMinutes: 30,
		Currency:        "EUR",
		Amount:          "100",
		VATRate:         "0.1",
		OpeningTime:     "09:00",
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := svc.ConfirmBooking(ctx, booking.Reference)
		assert.NoError(t, err)
		_, err = svc.CancelBooking(ctx, booking.Reference)
		assert.NoError(t, err)
	}()

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_, err := svc.GetBooking(ctx, booking.Reference)
				assert.NoError(t, err)
				_, err = svc.GetPrice(ctx, booking.Reference)
				assert.NoError(t, err)
			}
		}()
	}

	go func() {
		defer wg.Done()
		for j := 0; j < 50; j++ {
			_, err := svc.RecentBookings(ctx, party.PartyID)
			assert.NoError(t, err)
		}
	}()

	wg.Wait()

	got, err := svc.GetBooking(ctx, booking.Reference)
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", got.Status)
	assert.True(t, got.Confirmed)
}
