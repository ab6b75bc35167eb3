package usecase

import (
	"event-booking/internal/data/repository"
	"event-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	Event   EventService
	Booking BookingService
}

func NewService(repo *repository.Repository, config *utils.Config, publisher BookingEventPublisher, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, config, log),
		Event:   NewEventService(repo, log),
		Booking: NewBookingService(repo, publisher, log),
	}
}
