package entity

import (
	"errors"

	"github.com/google/uuid"
)

// ErrInvalidTransition is returned when a booking status change breaks the
// lifecycle rules (cancelled is terminal).
var ErrInvalidTransition = errors.New("invalid booking status transition")

// ErrInvalidQuantity is returned before any transaction is opened when the
// requested quantity is below 1.
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo melaporkan apakah perpindahan status diizinkan.
// pending -> confirmed | cancelled, confirmed -> cancelled.
// Transisi ke status yang sama bukan urusan fungsi ini (no-op di protokol).
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return next == BookingStatusConfirmed || next == BookingStatusCancelled
	case BookingStatusConfirmed:
		return next == BookingStatusCancelled
	case BookingStatusCancelled:
		return false
	}
	return false
}

type Booking struct {
	Base
	UserID          uuid.UUID     `db:"user_id"`
	EventID         uuid.UUID     `db:"event_id"`
	Quantity        int           `db:"quantity"`
	TotalPriceCents int64         `db:"total_price_cents"`
	Status          BookingStatus `db:"status"`
}
