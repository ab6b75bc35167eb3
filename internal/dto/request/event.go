package request

import "time"

type CreateEventRequest struct {
	Name             string    `json:"name" validate:"required,min=2,max=200"`
	Description      string    `json:"description" validate:"max=2000"`
	Location         string    `json:"location" validate:"required,min=2,max=200"`
	EventDate        time.Time `json:"event_date" validate:"required"`
	TicketPriceCents int64     `json:"ticket_price_cents" validate:"min=0"`
	TotalTickets     int       `json:"total_tickets" validate:"required,min=1"`
}

// UpdateEventRequest pakai pointer supaya field yang tidak dikirim
// tidak menimpa nilai lama (partial update seperti versi aslinya).
type UpdateEventRequest struct {
	Name             *string    `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Description      *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	Location         *string    `json:"location,omitempty" validate:"omitempty,min=2,max=200"`
	EventDate        *time.Time `json:"event_date,omitempty"`
	TicketPriceCents *int64     `json:"ticket_price_cents,omitempty" validate:"omitempty,min=0"`
	TotalTickets     *int       `json:"total_tickets,omitempty" validate:"omitempty,min=1"`
}
