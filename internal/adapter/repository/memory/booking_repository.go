// Package memory holds in-process repositories. Parties are kept as shared
// objects and carry their recent bookings. Bookings are kept as snapshots,
// so every read hands out a fresh copy and changes only land through Update.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/venue_booking/internal/core/domain"
	"github.com/srgjo27/venue_booking/internal/core/ports"
)

type bookingRecord struct {
	snapshot domain.BookingSnapshot
	party    domain.Party
	seq      int
}

type BookingRepository struct {
	mu       sync.RWMutex
	bookings map[uuid.UUID]bookingRecord
	seq      int
	clock    domain.Clock
}

func NewBookingRepository(clk domain.Clock) *BookingRepository {
	return &BookingRepository{
		bookings: make(map[uuid.UUID]bookingRecord),
		clock:    clk,
	}
}

// Save does not deduplicate; saving the same reference twice replaces it.
func (r *BookingRepository) Save(_ context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	r.bookings[booking.Reference()] = bookingRecord{
		snapshot: booking.Snapshot(),
		party:    booking.Party(),
		seq:      r.seq,
	}

	return nil
}

func (r *BookingRepository) GetByReference(_ context.Context, reference uuid.UUID) (*domain.Booking, error) {
	r.mu.RLock()
	rec, ok := r.bookings[reference]
	r.mu.RUnlock()

	if !ok {
		return nil, ports.ErrBookingNotFound
	}

	return domain.RestoreBooking(rec.snapshot, rec.party, r.clock)
}

func (r *BookingRepository) Update(_ context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.bookings[booking.Reference()]
	if !ok {
		return ports.ErrBookingNotFound
	}

	rec.snapshot = booking.Snapshot()
	r.bookings[booking.Reference()] = rec

	return nil
}

// ListByParty returns the newest bookings of a party first.
func (r *BookingRepository) ListByParty(_ context.Context, partyID uuid.UUID, limit int) ([]*domain.Booking, error) {
	r.mu.RLock()
	var recs []bookingRecord
	for _, rec := range r.bookings {
		if rec.snapshot.PartyID == partyID {
			recs = append(recs, rec)
		}
	}
	r.mu.RUnlock()

	sort.Slice(recs, func(i, j int) bool {
		return recs[i].seq > recs[j].seq
	})

	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}

	out := make([]*domain.Booking, 0, len(recs))
	for _, rec := range recs {
		b, err := domain.RestoreBooking(rec.snapshot, rec.party, r.clock)
		if err != nil {
			return nil, err
		}

		out = append(out, b)
	}

	return out, nil
}

func (r *BookingRepository) DeleteCancelledBefore(_ context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for ref, rec := range r.bookings {
		if rec.snapshot.State == domain.BookingCancelled && rec.snapshot.StartTime.Before(cutoff) {
			delete(r.bookings, ref)
			n++
		}
	}

	return n, nil
}
