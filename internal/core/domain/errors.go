package domain

import "errors"

var (
	ErrInvalidCurrencyCode = errors.New("invalid currency code")
	ErrCurrencyMismatch    = errors.New("currency mismatch")
	ErrInvalidPercent      = errors.New("invalid percent: must be between 0 and 1")
	ErrInvalidTimeOfDay    = errors.New("invalid time of day")
	ErrInvalidAge          = errors.New("invalid age")
	ErrInvalidDuration     = errors.New("invalid duration: bookings must not exceed 60 minutes")
	ErrOutsideOpeningHours = errors.New("booking starts before the location opens")
	ErrTooLateToCancel     = errors.New("booking may not be cancelled less than 60 minutes before start")
	ErrAlreadyCancelled    = errors.New("booking already cancelled")
	ErrAlreadyConfirmed    = errors.New("booking already confirmed")
	ErrBookingCancelled    = errors.New("booking is cancelled")
	ErrMissingParty        = errors.New("booking party is required")
)
