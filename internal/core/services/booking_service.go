package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/srgjo27/venue_booking/internal/core/domain"
	"github.com/srgjo27/venue_booking/internal/core/ports"
)

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrPaymentFailed  = errors.New("payment failed")
)

const (
	bookingCacheTTL = 5 * time.Minute
	lockStripes     = 64
)

type RegisterPartyRequest struct {
	Kind     string `json:"kind"`
	Age      int    `json:"age"`
	Discount string `json:"discount"`
}

type PartyResponse struct {
	PartyID  string `json:"party_id"`
	Kind     string `json:"kind"`
	Age      *int   `json:"age,omitempty"`
	Discount string `json:"discount,omitempty"`
}

type CreateBookingRequest struct {
	PartyID         string `json:"party_id"`
	StartTime       string `json:"start_time"`
	DurationMinutes int    `json:"duration_minutes"`
	Currency        string `json:"currency"`
	Amount          string `json:"amount"`
	VATRate         string `json:"vat_rate"`
	OpeningTime     string `json:"opening_time"`
}

type BookingResponse struct {
	Reference   string `json:"reference"`
	PartyID     string `json:"party_id"`
	PartyKind   string `json:"party_kind"`
	StartTime   string `json:"start_time"`
	OpeningTime string `json:"opening_time"`
	BasePrice   string `json:"base_price"`
	VATRate     string `json:"vat_rate"`
	Price       string `json:"price"`
	Currency    string `json:"currency"`
	Status      string `json:"status"`
	Confirmed   bool   `json:"confirmed"`
	CreatedAt   string `json:"created_at"`
	ConfirmedAt string `json:"confirmed_at,omitempty"`
	CancelledAt string `json:"cancelled_at,omitempty"`
}

type PriceResponse struct {
	Reference string `json:"reference"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
}

type BookingService struct {
	bookingRepo ports.BookingRepository
	partyRepo   ports.PartyRepository
	payments    ports.PaymentGateway
	events      ports.EventPublisher
	cache       *redis.Client
	clock       domain.Clock

	// Party IDs and booking references hash into the same stripe table.
	// Writers to a booking or party hold the stripe exclusively and readers
	// share it. Unrelated IDs may share a stripe and then wait on each other.
	locks [lockStripes]sync.RWMutex
}

func NewBookingService(
	bookingRepo ports.BookingRepository,
	partyRepo ports.PartyRepository,
	payments ports.PaymentGateway,
	events ports.EventPublisher,
	cache *redis.Client,
	clk domain.Clock,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		partyRepo:   partyRepo,
		payments:    payments,
		events:      events,
		cache:       cache,
		clock:       clk,
	}
}

func (s *BookingService) RegisterParty(ctx context.Context, req RegisterPartyRequest) (*PartyResponse, error) {
	var party domain.Party

	switch domain.PartyKind(normalizeKind(req.Kind)) {
	case domain.PartyUser:
		user, err := domain.NewUser(req.Age)
		if err != nil {
			return nil, err
		}
		party = user
	case domain.PartyCompany:
		ratio, err := decimal.NewFromString(req.Discount)
		if err != nil {
			return nil, fmt.Errorf("%w: discount %q", ErrInvalidRequest, req.Discount)
		}
		discount, err := domain.NewPercent(ratio)
		if err != nil {
			return nil, err
		}
		party = domain.NewCompany(discount)
	default:
		return nil, fmt.Errorf("%w: unknown party kind %q", ErrInvalidRequest, req.Kind)
	}

	if err := s.partyRepo.Save(ctx, party); err != nil {
		return nil, fmt.Errorf("failed to save party: %w", err)
	}

	resp := toPartyResponse(party)
	return &resp, nil
}

func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*BookingResponse, error) {
	partyID, err := uuid.Parse(req.PartyID)
	if err != nil {
		return nil, fmt.Errorf("%w: party id", ErrInvalidRequest)
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: start time must be RFC3339", ErrInvalidRequest)
	}

	currency, err := domain.NewCurrency(req.Currency)
	if err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: amount %q", ErrInvalidRequest, req.Amount)
	}

	vatRatio, err := decimal.NewFromString(req.VATRate)
	if err != nil {
		return nil, fmt.Errorf("%w: vat rate %q", ErrInvalidRequest, req.VATRate)
	}

	vat, err := domain.NewPercent(vatRatio)
	if err != nil {
		return nil, err
	}

	opening, err := domain.ParseTimeOfDay(req.OpeningTime)
	if err != nil {
		return nil, err
	}

	mu := s.lockFor(partyID)
	mu.Lock()
	defer mu.Unlock()

	party, err := s.partyRepo.GetByID(ctx, partyID)
	if err != nil {
		return nil, err
	}

	booking, err := domain.NewBooking(domain.NewBookingInput{
		CreatedAt: s.clock.Now(),
		StartTime: startTime,
		Duration:  time.Duration(req.DurationMinutes) * time.Minute,
		Price:     domain.NewMoney(currency, amount),
		VAT:       vat,
		Party:     party,
		Location:  domain.NewLocation(opening),
	}, s.clock)
	if err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Save(ctx, booking); err != nil {
		booking.Discard()
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	log.Printf("Booking %s created for %s %s", booking.Reference(), party.Kind(), party.ID())

	resp := toBookingResponse(booking)
	return &resp, nil
}

func (s *BookingService) GetBooking(ctx context.Context, reference string) (*BookingResponse, error) {
	ref, err := uuid.Parse(reference)
	if err != nil {
		return nil, fmt.Errorf("%w: booking reference", ErrInvalidRequest)
	}

	mu := s.lockFor(ref)
	mu.RLock()
	defer mu.RUnlock()

	if cached, ok := s.cachedBooking(ctx, ref); ok {
		return cached, nil
	}

	booking, err := s.bookingRepo.GetByReference(ctx, ref)
	if err != nil {
		return nil, err
	}

	resp := toBookingResponse(booking)
	s.cacheBooking(ctx, ref, resp)

	return &resp, nil
}

func (s *BookingService) GetPrice(ctx context.Context, reference string) (*PriceResponse, error) {
	ref, err := uuid.Parse(reference)
	if err != nil {
		return nil, fmt.Errorf("%w: booking reference", ErrInvalidRequest)
	}

	mu := s.lockFor(ref)
	mu.RLock()
	defer mu.RUnlock()

	booking, err := s.bookingRepo.GetByReference(ctx, ref)
	if err != nil {
		return nil, err
	}

	price := booking.Price()

	return &PriceResponse{
		Reference: ref.String(),
		Amount:    price.Amount().StringFixed(2),
		Currency:  price.Currency().Code(),
	}, nil
}

func (s *BookingService) CancelBooking(ctx context.Context, reference string) (*BookingResponse, error) {
	ref, err := uuid.Parse(reference)
	if err != nil {
		return nil, fmt.Errorf("%w: booking reference", ErrInvalidRequest)
	}

	mu := s.lockFor(ref)
	mu.Lock()
	defer mu.Unlock()

	stored, err := s.bookingRepo.GetByReference(ctx, ref)
	if err != nil {
		return nil, err
	}

	booking := stored.Clone()
	if err := booking.Cancel(); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	s.invalidate(ctx, ref)

	if err := s.events.PublishBookingCancelled(ctx, s.bookingEvent(booking)); err != nil {
		log.Printf("Failed to publish cancellation of booking %s: %v", ref, err)
	}

	resp := toBookingResponse(booking)
	return &resp, nil
}

// ConfirmBooking captures the booking price and marks the booking confirmed.
// Nothing is captured for free bookings. A failed update leaves the stored
// booking unconfirmed, and a retry relies on the gateway not charging twice.
func (s *BookingService) ConfirmBooking(ctx context.Context, reference string) (*BookingResponse, error) {
	ref, err := uuid.Parse(reference)
	if err != nil {
		return nil, fmt.Errorf("%w: booking reference", ErrInvalidRequest)
	}

	mu := s.lockFor(ref)
	mu.Lock()
	defer mu.Unlock()

	stored, err := s.bookingRepo.GetByReference(ctx, ref)
	if err != nil {
		return nil, err
	}

	booking := stored.Clone()
	if booking.IsCancelled() {
		return nil, domain.ErrBookingCancelled
	}
	if booking.IsConfirmed() {
		return nil, domain.ErrAlreadyConfirmed
	}

	price := booking.Price()
	if !price.IsZero() {
		if err := s.payments.CapturePayment(ctx, ref, price); err != nil {
			log.Printf("Payment capture for booking %s failed: %v", ref, err)
			return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
		}
	}

	if err := booking.Confirm(); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	s.invalidate(ctx, ref)

	if err := s.events.PublishBookingConfirmed(ctx, s.bookingEvent(booking)); err != nil {
		log.Printf("Failed to publish confirmation of booking %s: %v", ref, err)
	}

	resp := toBookingResponse(booking)
	return &resp, nil
}

func (s *BookingService) RecentBookings(ctx context.Context, partyID string) ([]BookingResponse, error) {
	id, err := uuid.Parse(partyID)
	if err != nil {
		return nil, fmt.Errorf("%w: party id", ErrInvalidRequest)
	}

	mu := s.lockFor(id)
	mu.RLock()
	defer mu.RUnlock()

	if _, err := s.partyRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	recent, err := s.bookingRepo.ListByParty(ctx, id, domain.RecentBookingsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	// Oldest first, as a party lists its own recent bookings.
	out := make([]BookingResponse, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		out = append(out, toBookingResponse(recent[i]))
	}

	return out, nil
}

func (s *BookingService) RunBackgroundCleanup(ctx context.Context, every, retention time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	log.Printf("Background Worker started: purging cancelled bookings every %s...", every)

	for {
		select {
		case <-ctx.Done():
			log.Println("Background Worker stopped.")
			return
		case <-ticker.C:
			s.processCancelledBookings(ctx, retention)
		}
	}
}

func (s *BookingService) processCancelledBookings(ctx context.Context, retention time.Duration) {
	cutoff := s.clock.Now().Add(-retention)

	n, err := s.bookingRepo.DeleteCancelledBefore(ctx, cutoff)
	if err != nil {
		log.Printf("Error purging cancelled bookings: %v", err)
		return
	}

	if n > 0 {
		log.Printf("Purged %d cancelled bookings that started before %s.", n, cutoff.Format(time.RFC3339))
	}
}

func (s *BookingService) lockFor(id uuid.UUID) *sync.RWMutex {
	return &s.locks[int(id[15])%lockStripes]
}

func (s *BookingService) cachedBooking(ctx context.Context, ref uuid.UUID) (*BookingResponse, bool) {
	if s.cache == nil {
		return nil, false
	}

	raw, err := s.cache.Get(ctx, cacheKey(ref)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("Cache read for booking %s failed: %v", ref, err)
		}
		return nil, false
	}

	var resp BookingResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, false
	}

	return &resp, true
}

func (s *BookingService) cacheBooking(ctx context.Context, ref uuid.UUID, resp BookingResponse) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, cacheKey(ref), raw, bookingCacheTTL).Err(); err != nil {
		log.Printf("Cache write for booking %s failed: %v", ref, err)
	}
}

func (s *BookingService) invalidate(ctx context.Context, ref uuid.UUID) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Del(ctx, cacheKey(ref)).Err(); err != nil {
		log.Printf("Cache invalidation for booking %s failed: %v", ref, err)
	}
}

func (s *BookingService) bookingEvent(b *domain.Booking) ports.BookingEvent {
	price := b.Price()

	return ports.BookingEvent{
		Reference:  b.Reference().String(),
		PartyID:    b.Party().ID().String(),
		PartyKind:  string(b.Party().Kind()),
		StartTime:  b.StartTime().Format(time.RFC3339),
		Amount:     price.Amount().StringFixed(2),
		Currency:   price.Currency().Code(),
		OccurredAt: s.clock.Now(),
	}
}

func cacheKey(ref uuid.UUID) string {
	return fmt.Sprintf("booking:%s", ref.String())
}
