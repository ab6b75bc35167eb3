package entity

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrReleaseOverflow menandakan release yang membuat available > total.
// Stok tetap di-clamp ke total supaya state tetap valid; caller wajib log.
var ErrReleaseOverflow = errors.New("ticket release exceeds total tickets")

// InsufficientStockError is returned when a reservation asks for more
// tickets than the event has left. It carries the diagnostic payload so
// callers can react (e.g. offer fewer tickets).
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient ticket stock: requested %d, available %d", e.Requested, e.Available)
}

type Event struct {
	Base
	OrganizerID      uuid.UUID `db:"organizer_id"`
	Name             string    `db:"name"`
	Description      string    `db:"description"`
	Location         string    `db:"location"`
	EventDate        time.Time `db:"event_date"`
	TicketPriceCents int64     `db:"ticket_price_cents"`
	TotalTickets     int       `db:"total_tickets"`
	AvailableTickets int       `db:"available_tickets"`
}

// SoldTickets = jumlah tiket yang terikat booking aktif (non-cancelled).
func (e *Event) SoldTickets() int {
	return e.TotalTickets - e.AvailableTickets
}

// Reserve decrements the available counter. The quantity >= 1 precondition
// belongs to the caller; this only guards the stock invariant. Must only be
// called while holding the event row lock.
func (e *Event) Reserve(quantity int) error {
	if quantity > e.AvailableTickets {
		return &InsufficientStockError{
			Available: e.AvailableTickets,
			Requested: quantity,
		}
	}
	e.AvailableTickets -= quantity
	return nil
}

// Release returns quantity tickets to the pool. If the result would exceed
// total_tickets (double-release bug) the counter is clamped and
// ErrReleaseOverflow is returned so the violation gets logged upstream.
func (e *Event) Release(quantity int) error {
	e.AvailableTickets += quantity
	if e.AvailableTickets > e.TotalTickets {
		e.AvailableTickets = e.TotalTickets
		return ErrReleaseOverflow
	}
	return nil
}

// AdjustTotalTickets applies an administrative capacity change while keeping
// the sold count intact. Available never goes negative: shrinking total below
// the sold count clamps available to 0. Returns true when clamping happened
// (bookings are then oversold relative to the new total).
func (e *Event) AdjustTotalTickets(newTotal int) bool {
	sold := e.SoldTickets()
	e.TotalTickets = newTotal
	e.AvailableTickets = newTotal - sold
	if e.AvailableTickets < 0 {
		e.AvailableTickets = 0
		return true
	}
	return false
}
