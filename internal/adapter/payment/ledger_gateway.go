// Package payment provides an in-process payment gateway. It records captures
// instead of talking to a payment provider.
package payment

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/venue_booking/internal/core/domain"
	"github.com/srgjo27/venue_booking/internal/core/ports"
)

type Capture struct {
	Reference  uuid.UUID
	Amount     domain.Money
	CapturedAt time.Time
}

type LedgerGateway struct {
	mu       sync.Mutex
	captures []Capture
	captured map[uuid.UUID]bool
	declined map[uuid.UUID]bool
	clock    domain.Clock
}

func NewLedgerGateway(clk domain.Clock) *LedgerGateway {
	return &LedgerGateway{
		captured: make(map[uuid.UUID]bool),
		declined: make(map[uuid.UUID]bool),
		clock:    clk,
	}
}

// Decline makes every later capture for reference fail.
func (g *LedgerGateway) Decline(reference uuid.UUID) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.declined[reference] = true
}

// CapturePayment records one capture per reference. Capturing a reference
// again succeeds without recording a second charge.
func (g *LedgerGateway) CapturePayment(ctx context.Context, reference uuid.UUID, amount domain.Money) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if amount.Amount().IsNegative() {
		return fmt.Errorf("%w: negative amount %s", ports.ErrPaymentDeclined, amount)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.declined[reference] {
		return ports.ErrPaymentDeclined
	}

	if g.captured[reference] {
		log.Printf("Booking %s already captured, skipping", reference)
		return nil
	}
	g.captured[reference] = true

	g.captures = append(g.captures, Capture{
		Reference:  reference,
		Amount:     amount,
		CapturedAt: g.clock.Now(),
	})

	log.Printf("Captured %s for booking %s", amount, reference)

	return nil
}

func (g *LedgerGateway) Captures() []Capture {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]Capture, len(g.captures))
	copy(out, g.captures)
	return out
}
