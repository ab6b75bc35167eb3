// Package queue defines message payloads exchanged over the message broker.
package queue

const (
	QueueBookingCreated   = "booking.created"
	QueueBookingCancelled = "booking.cancelled"
)

// BookingCreatedEvent dipublish setelah reservasi commit. Isinya cukup untuk
// consumer (notifikasi, analytics) tanpa query balik ke database utama.
type BookingCreatedEvent struct {
	BookingID       string `json:"booking_id"`
	UserID          string `json:"user_id"`
	EventID         string `json:"event_id"`
	EventName       string `json:"event_name"`
	Quantity        int    `json:"quantity"`
	TotalPriceCents int64  `json:"total_price_cents"`
	Status          string `json:"status"`
	CreatedAt       string `json:"created_at"`
}

// BookingCancelledEvent dipublish setelah stok dikembalikan.
type BookingCancelledEvent struct {
	BookingID   string `json:"booking_id"`
	UserID      string `json:"user_id"`
	EventID     string `json:"event_id"`
	Quantity    int    `json:"quantity"`
	CancelledAt string `json:"cancelled_at"`
}
