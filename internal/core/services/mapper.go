package services

import (
	"strings"
	"time"

	"github.com/srgjo27/venue_booking/internal/core/domain"
)

func normalizeKind(kind string) string {
	return strings.ToUpper(strings.TrimSpace(kind))
}

func toPartyResponse(p domain.Party) PartyResponse {
	resp := PartyResponse{
		PartyID: p.ID().String(),
		Kind:    string(p.Kind()),
	}

	switch v := p.(type) {
	case *domain.User:
		age := v.Age()
		resp.Age = &age
	case *domain.Company:
		resp.Discount = v.Discount().String()
	}

	return resp
}

func toBookingResponse(b *domain.Booking) BookingResponse {
	price := b.Price()

	resp := BookingResponse{
		Reference:   b.Reference().String(),
		PartyID:     b.Party().ID().String(),
		PartyKind:   string(b.Party().Kind()),
		StartTime:   b.StartTime().Format(time.RFC3339),
		OpeningTime: b.Location().OpeningTime().String(),
		BasePrice:   b.BasePrice().Amount().StringFixed(2),
		VATRate:     b.VAT().String(),
		Price:       price.Amount().StringFixed(2),
		Currency:    price.Currency().Code(),
		Status:      string(b.State()),
		Confirmed:   b.IsConfirmed(),
		CreatedAt:   b.CreatedAt().Format(time.RFC3339),
	}

	if at := b.ConfirmedAt(); at != nil {
		resp.ConfirmedAt = at.Format(time.RFC3339)
	}
	if at := b.CancelledAt(); at != nil {
		resp.CancelledAt = at.Format(time.RFC3339)
	}

	return resp
}
