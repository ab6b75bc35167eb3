package adaptor

import (
	"event-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	Event   *EventHandler
	Booking *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		Event:   NewEventHandler(service.Event, log),
		Booking: NewBookingHandler(service.Booking, log),
	}
}
