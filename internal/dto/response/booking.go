package response

import (
	"time"

	"event-booking/internal/data/entity"
)

type BookingResponse struct {
	ID              string               `json:"id"`
	UserID          string               `json:"user_id"`
	EventID         string               `json:"event_id"`
	Quantity        int                  `json:"quantity"`
	TotalPriceCents int64                `json:"total_price_cents"`
	Status          entity.BookingStatus `json:"status"`
	CreatedAt       time.Time            `json:"created_at"`
}

// InsufficientStockResponse adalah payload errors untuk 409 Conflict.
type InsufficientStockResponse struct {
	Available int `json:"available"`
	Requested int `json:"requested"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:              booking.ID.String(),
		UserID:          booking.UserID.String(),
		EventID:         booking.EventID.String(),
		Quantity:        booking.Quantity,
		TotalPriceCents: booking.TotalPriceCents,
		Status:          booking.Status,
		CreatedAt:       booking.CreatedAt,
	}
}
