package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/srgjo27/venue_booking/internal/core/domain"
	"github.com/srgjo27/venue_booking/internal/core/ports"
	"github.com/srgjo27/venue_booking/internal/core/services"
)

// BookingService is the part of services.BookingService the HTTP layer uses.
type BookingService interface {
	RegisterParty(ctx context.Context, req services.RegisterPartyRequest) (*services.PartyResponse, error)
	CreateBooking(ctx context.Context, req services.CreateBookingRequest) (*services.BookingResponse, error)
	GetBooking(ctx context.Context, reference string) (*services.BookingResponse, error)
	GetPrice(ctx context.Context, reference string) (*services.PriceResponse, error)
	CancelBooking(ctx context.Context, reference string) (*services.BookingResponse, error)
	ConfirmBooking(ctx context.Context, reference string) (*services.BookingResponse, error)
	RecentBookings(ctx context.Context, partyID string) ([]services.BookingResponse, error)
}

type BookingHandler struct {
	svc BookingService
}

func NewBookingHandler(svc BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) Routes(r chi.Router) {
	r.Post("/parties", h.RegisterParty)
	r.Get("/parties/{partyID}/bookings", h.RecentBookings)

	r.Post("/bookings", h.CreateBooking)
	r.Get("/bookings/{reference}", h.GetBooking)
	r.Get("/bookings/{reference}/price", h.GetPrice)
	r.Post("/bookings/{reference}/cancel", h.CancelBooking)
	r.Post("/bookings/{reference}/confirm", h.ConfirmBooking)
}

func (h *BookingHandler) RegisterParty(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterPartyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid json body")
		return
	}

	resp, err := h.svc.RegisterParty(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *BookingHandler) RecentBookings(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.RecentBookings(r.Context(), chi.URLParam(r, "partyID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req services.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid json body")
		return
	}

	resp, err := h.svc.CreateBooking(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.GetBooking(r.Context(), chi.URLParam(r, "reference"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *BookingHandler) GetPrice(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.GetPrice(r.Context(), chi.URLParam(r, "reference"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.CancelBooking(r.Context(), chi.URLParam(r, "reference"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *BookingHandler) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.ConfirmBooking(r.Context(), chi.URLParam(r, "reference"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

var errorCodes = []struct {
	err    error
	status int
	code   string
}{
	{services.ErrInvalidRequest, http.StatusBadRequest, codeInvalidRequest},
	{domain.ErrInvalidCurrencyCode, http.StatusBadRequest, codeInvalidCurrency},
	{domain.ErrInvalidPercent, http.StatusBadRequest, codeInvalidPercent},
	{domain.ErrInvalidTimeOfDay, http.StatusBadRequest, codeInvalidTimeOfDay},
	{domain.ErrInvalidAge, http.StatusBadRequest, codeInvalidAge},
	{domain.ErrInvalidDuration, http.StatusBadRequest, codeInvalidDuration},
	{domain.ErrOutsideOpeningHours, http.StatusBadRequest, codeOutsideOpeningHours},
	{ports.ErrBookingNotFound, http.StatusNotFound, codeBookingNotFound},
	{ports.ErrPartyNotFound, http.StatusNotFound, codePartyNotFound},
	{domain.ErrTooLateToCancel, http.StatusConflict, codeTooLateToCancel},
	{domain.ErrAlreadyCancelled, http.StatusConflict, codeAlreadyCancelled},
	{domain.ErrAlreadyConfirmed, http.StatusConflict, codeAlreadyConfirmed},
	{domain.ErrBookingCancelled, http.StatusConflict, codeBookingCancelled},
	{services.ErrPaymentFailed, http.StatusBadGateway, codePaymentFailed},
}

func writeServiceError(w http.ResponseWriter, err error) {
	for _, e := range errorCodes {
		if errors.Is(err, e.err) {
			writeError(w, e.status, e.code, err.Error())
			return
		}
	}

	writeError(w, http.StatusInternalServerError, codeInternalError, "internal server error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
