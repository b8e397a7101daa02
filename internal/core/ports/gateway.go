package ports

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/venue_booking/internal/core/domain"
)

var ErrPaymentDeclined = errors.New("payment declined")

// PaymentGateway charges for bookings. Captures are idempotent per booking
// reference: a repeated capture must not charge twice.
type PaymentGateway interface {
	CapturePayment(ctx context.Context, reference uuid.UUID, amount domain.Money) error
}

// BookingEvent is the payload published when a booking changes state.
type BookingEvent struct {
	Reference  string    `json:"reference"`
	PartyID    string    `json:"party_id"`
	PartyKind  string    `json:"party_kind"`
	StartTime  string    `json:"start_time"`
	Amount     string    `json:"amount"`
	Currency   string    `json:"currency"`
	OccurredAt time.Time `json:"occurred_at"`
}

type EventPublisher interface {
	PublishBookingConfirmed(ctx context.Context, event BookingEvent) error
	PublishBookingCancelled(ctx context.Context, event BookingEvent) error
}
