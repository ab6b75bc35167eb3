package response

import (
	"time"

	"event-booking/internal/data/entity"
)

type EventResponse struct {
	ID               string    `json:"id"`
	OrganizerID      string    `json:"organizer_id"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	Location         string    `json:"location"`
	EventDate        time.Time `json:"event_date"`
	TicketPriceCents int64     `json:"ticket_price_cents"`
	TotalTickets     int       `json:"total_tickets"`
	AvailableTickets int       `json:"available_tickets"`
	CreatedAt        time.Time `json:"created_at"`
}

func EventToResponse(event *entity.Event) EventResponse {
	return EventResponse{
		ID:               event.ID.String(),
		OrganizerID:      event.OrganizerID.String(),
		Name:             event.Name,
		Description:      event.Description,
		Location:         event.Location,
		EventDate:        event.EventDate,
		TicketPriceCents: event.TicketPriceCents,
		TotalTickets:     event.TotalTickets,
		AvailableTickets: event.AvailableTickets,
		CreatedAt:        event.CreatedAt,
	}
}
