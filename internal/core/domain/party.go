package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PartyKind string

const (
	PartyUser    PartyKind = "USER"
	PartyCompany PartyKind = "COMPANY"
)

// RecentBookingsLimit is how many bookings a party remembers.
const RecentBookingsLimit = 2

const (
	seniorAge = 70
	childAge  = 12
)

var childShare = decimal.RequireFromString("0.5")

// Party is whoever holds a booking. The set of parties is closed: only User
// and Company implement it, and each carries its own pricing rule.
type Party interface {
	ID() uuid.UUID
	Kind() PartyKind
	AddBooking(b *Booking)
	RecentBookings() []*Booking

	quote(base Money, vat Percent) Money
	dropBooking(b *Booking)
}

// bookingHistory keeps the most recent bookings of a party, oldest first.
// It only references bookings for display; it never owns them.
type bookingHistory struct {
	recent  []*Booking
	evicted *Booking
}

func (h *bookingHistory) AddBooking(b *Booking) {
	h.evicted = nil
	if len(h.recent) > RecentBookingsLimit-1 {
		h.evicted = h.recent[0]
		h.recent = append(h.recent[:0:0], h.recent[1:]...)
	}

	h.recent = append(h.recent, b)
}

// dropBooking undoes the last AddBooking when it added b.
func (h *bookingHistory) dropBooking(b *Booking) {
	n := len(h.recent)
	if n == 0 || h.recent[n-1] != b {
		return
	}

	kept := make([]*Booking, 0, RecentBookingsLimit)
	if h.evicted != nil {
		kept = append(kept, h.evicted)
	}

	h.recent = append(kept, h.recent[:n-1]...)
	h.evicted = nil
}

func (h *bookingHistory) RecentBookings() []*Booking {
	out := make([]*Booking, len(h.recent))
	copy(out, h.recent)
	return out
}

type User struct {
	bookingHistory
	id  uuid.UUID
	age int
}

func NewUser(age int) (*User, error) {
	return RestoreUser(uuid.New(), age)
}

func RestoreUser(id uuid.UUID, age int) (*User, error) {
	if age < 0 {
		return nil, ErrInvalidAge
	}

	return &User{id: id, age: age}, nil
}

func (u *User) ID() uuid.UUID   { return u.id }
func (u *User) Kind() PartyKind { return PartyUser }
func (u *User) Age() int        { return u.age }

func (u *User) quote(base Money, vat Percent) Money {
	switch {
	case u.age >= seniorAge:
		return NewMoney(base.Currency(), decimal.Zero)
	case u.age < childAge:
		return withVAT(base, vat).Mul(childShare)
	default:
		return withVAT(base, vat)
	}
}

type Company struct {
	bookingHistory
	id       uuid.UUID
	discount Percent
}

func NewCompany(discount Percent) *Company {
	return RestoreCompany(uuid.New(), discount)
}

func RestoreCompany(id uuid.UUID, discount Percent) *Company {
	return &Company{id: id, discount: discount}
}

func (c *Company) ID() uuid.UUID     { return c.id }
func (c *Company) Kind() PartyKind   { return PartyCompany }
func (c *Company) Discount() Percent { return c.discount }

// quote deducts the company discount from the base price. Company tariffs
// carry no VAT.
func (c *Company) quote(base Money, _ Percent) Money {
	return NewMoney(base.Currency(), base.Amount().Sub(base.Percent(c.discount).Amount()))
}

func withVAT(base Money, vat Percent) Money {
	return NewMoney(base.Currency(), base.Amount().Add(base.Percent(vat).Amount()))
}
