package ports

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/venue_booking/internal/core/domain"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrPartyNotFound   = errors.New("party not found")
)

type BookingRepository interface {
	Save(ctx context.Context, booking *domain.Booking) error
	GetByReference(ctx context.Context, reference uuid.UUID) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	ListByParty(ctx context.Context, partyID uuid.UUID, limit int) ([]*domain.Booking, error)
	DeleteCancelledBefore(ctx context.Context, cutoff time.Time) (int, error)
}

type PartyRepository interface {
	Save(ctx context.Context, party domain.Party) error
	GetByID(ctx context.Context, partyID uuid.UUID) (domain.Party, error)
}
