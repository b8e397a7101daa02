package handler

import (
	"encoding/json"
	"net/http"
)

const (
	codeInvalidRequestBody  = "invalid_request_body"
	codeInvalidRequest      = "invalid_request"
	codeInvalidCurrency     = "invalid_currency_code"
	codeInvalidPercent      = "invalid_percent"
	codeInvalidTimeOfDay    = "invalid_time_of_day"
	codeInvalidAge          = "invalid_age"
	codeInvalidDuration     = "invalid_duration"
	codeOutsideOpeningHours = "outside_opening_hours"
	codeBookingNotFound     = "booking_not_found"
	codePartyNotFound       = "party_not_found"
	codeTooLateToCancel     = "too_late_to_cancel"
	codeAlreadyCancelled    = "already_cancelled"
	codeAlreadyConfirmed    = "already_confirmed"
	codeBookingCancelled    = "booking_cancelled"
	codePaymentFailed       = "payment_failed"
	codeRateLimited         = "rate_limited"
	codeNotFound            = "not_found"
	codeMethodNotAllowed    = "method_not_allowed"
	codeInternalError       = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}
