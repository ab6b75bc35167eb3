package repository

import "errors"

// Sentinel errors supaya layer di atas bisa pakai errors.Is tanpa
// bergantung pada string SQL.
var (
	ErrEventNotFound    = errors.New("event not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailTaken       = errors.New("email already registered")
	ErrEventHasBookings = errors.New("event still has active bookings")
)
