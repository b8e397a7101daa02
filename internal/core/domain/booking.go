package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingState string

const (
	BookingActive    BookingState = "ACTIVE"
	BookingCancelled BookingState = "CANCELLED"
)

const (
	MaxBookingDuration   = 60 * time.Minute
	CancellationLeadTime = 60 * time.Minute
)

// Clock supplies the current time to bookings.
type Clock interface {
	Now() time.Time
}

type NewBookingInput struct {
	CreatedAt time.Time
	StartTime time.Time
	Duration  time.Duration
	Price     Money
	VAT       Percent
	Party     Party
	Location  Location
}

// Booking is a reserved slot at a location. Bookings are only created through
// NewBooking (or RestoreBooking when loading from storage), and the only state
// change after creation is confirmation and the one-way move to cancelled.
type Booking struct {
	reference   uuid.UUID
	party       Party
	location    Location
	startTime   time.Time
	basePrice   Money
	vat         Percent
	state       BookingState
	createdAt   time.Time
	confirmedAt *time.Time
	cancelledAt *time.Time
	clock       Clock
}

// NewBooking validates the request and registers the new booking in the
// party's recent bookings. clk is kept for cancellation and confirmation; it
// is not read here.
func NewBooking(in NewBookingInput, clk Clock) (*Booking, error) {
	if in.Party == nil {
		return nil, ErrMissingParty
	}

	if in.Duration > MaxBookingDuration {
		return nil, ErrInvalidDuration
	}

	if TimeOfDayOf(in.StartTime).Before(in.Location.OpeningTime()) {
		return nil, ErrOutsideOpeningHours
	}

	b := &Booking{
		reference: uuid.New(),
		party:     in.Party,
		location:  in.Location,
		startTime: in.StartTime,
		basePrice: in.Price,
		vat:       in.VAT,
		state:     BookingActive,
		createdAt: in.CreatedAt,
		clock:     clk,
	}

	in.Party.AddBooking(b)

	return b, nil
}

func (b *Booking) Reference() uuid.UUID    { return b.reference }
func (b *Booking) Party() Party            { return b.party }
func (b *Booking) Location() Location      { return b.location }
func (b *Booking) StartTime() time.Time    { return b.startTime }
func (b *Booking) BasePrice() Money        { return b.basePrice }
func (b *Booking) VAT() Percent            { return b.vat }
func (b *Booking) State() BookingState     { return b.state }
func (b *Booking) CreatedAt() time.Time    { return b.createdAt }
func (b *Booking) IsCancelled() bool       { return b.state == BookingCancelled }
func (b *Booking) IsConfirmed() bool       { return b.confirmedAt != nil }
func (b *Booking) ConfirmedAt() *time.Time { return copyTime(b.confirmedAt) }
func (b *Booking) CancelledAt() *time.Time { return copyTime(b.cancelledAt) }

// Price is computed from the party's tariff on every call.
func (b *Booking) Price() Money {
	return b.party.quote(b.basePrice, b.vat)
}

func (b *Booking) Cancel() error {
	if b.state == BookingCancelled {
		return ErrAlreadyCancelled
	}

	now := b.clock.Now()
	if b.startTime.Sub(now) < CancellationLeadTime {
		return ErrTooLateToCancel
	}

	b.state = BookingCancelled
	b.cancelledAt = &now

	return nil
}

// Discard takes a booking that was never stored back out of its party's
// recent bookings. Only the party's latest booking can be discarded.
func (b *Booking) Discard() {
	b.party.dropBooking(b)
}

// Clone returns a copy that can change state without touching b.
func (b *Booking) Clone() *Booking {
	c := *b
	c.confirmedAt = copyTime(b.confirmedAt)
	c.cancelledAt = copyTime(b.cancelledAt)
	return &c
}

func (b *Booking) Confirm() error {
	if b.state == BookingCancelled {
		return ErrBookingCancelled
	}

	if b.confirmedAt != nil {
		return ErrAlreadyConfirmed
	}

	now := b.clock.Now()
	b.confirmedAt = &now

	return nil
}

// BookingSnapshot is the storable form of a Booking.
type BookingSnapshot struct {
	Reference   uuid.UUID
	PartyID     uuid.UUID
	OpeningTime TimeOfDay
	StartTime   time.Time
	BasePrice   Money
	VAT         Percent
	State       BookingState
	CreatedAt   time.Time
	ConfirmedAt *time.Time
	CancelledAt *time.Time
}

func (b *Booking) Snapshot() BookingSnapshot {
	return BookingSnapshot{
		Reference:   b.reference,
		PartyID:     b.party.ID(),
		OpeningTime: b.location.OpeningTime(),
		StartTime:   b.startTime,
		BasePrice:   b.basePrice,
		VAT:         b.vat,
		State:       b.state,
		CreatedAt:   b.createdAt,
		ConfirmedAt: copyTime(b.confirmedAt),
		CancelledAt: copyTime(b.cancelledAt),
	}
}

// RestoreBooking rebuilds a stored booking. Creation rules are not re-checked
// and the party history is left untouched.
func RestoreBooking(s BookingSnapshot, party Party, clk Clock) (*Booking, error) {
	if party == nil || party.ID() != s.PartyID {
		return nil, ErrMissingParty
	}

	state := s.State
	if state == "" {
		state = BookingActive
	}

	return &Booking{
		reference:   s.Reference,
		party:       party,
		location:    NewLocation(s.OpeningTime),
		startTime:   s.StartTime,
		basePrice:   s.BasePrice,
		vat:         s.VAT,
		state:       state,
		createdAt:   s.CreatedAt,
		confirmedAt: copyTime(s.ConfirmedAt),
		cancelledAt: copyTime(s.CancelledAt),
		clock:       clk,
	}, nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	c := *t
	return &c
}
