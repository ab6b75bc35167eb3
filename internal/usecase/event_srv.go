package usecase

import (
	"context"
	"fmt"
	"time"

	"event-booking/internal/data/entity"
	"event-booking/internal/data/repository"
	"event-booking/internal/dto/request"
	"event-booking/internal/dto/response"
	"event-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EventService interface {
	// Public
	ListEvents(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.EventResponse], error)
	GetEvent(ctx context.Context, eventID string) (*response.EventResponse, error)

	// Admin
	CreateEvent(ctx context.Context, organizerID string, req *request.CreateEventRequest) (*response.EventResponse, error)
	UpdateEvent(ctx context.Context, eventID string, req *request.UpdateEventRequest) (*response.EventResponse, error)
	DeleteEvent(ctx context.Context, eventID string) error
}

type eventService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewEventService(repo *repository.Repository, log *zap.Logger) EventService {
	return &eventService{
		repo: repo,
		log:  log.With(zap.String("service", "event")),
	}
}

func (s *eventService) ListEvents(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.EventResponse], error) {
	events, err := s.repo.Event.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list events", zap.Error(err))
		return nil, fmt.Errorf("list events: %w", err)
	}

	total, err := s.repo.Event.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count events", zap.Error(err))
		return nil, fmt.Errorf("count events: %w", err)
	}

	eventResponses := make([]response.EventResponse, len(events))
	for i, event := range events {
		eventResponses[i] = response.EventToResponse(event)
	}

	return response.NewPaginatedResponse(eventResponses, req.Page, req.PerPage, total), nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID string) (*response.EventResponse, error) {
	id, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID format %s: %w", eventID, err)
	}

	event, err := s.repo.Event.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.EventToResponse(event)
	return &resp, nil
}

func (s *eventService) CreateEvent(ctx context.Context, organizerID string, req *request.CreateEventRequest) (*response.EventResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create event validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	organizerUUID, err := uuid.Parse(organizerID)
	if err != nil {
		return nil, fmt.Errorf("invalid organizer ID format %s: %w", organizerID, err)
	}

	// Event baru: available = total.
	now := time.Now()
	event := &entity.Event{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrganizerID:      organizerUUID,
		Name:             req.Name,
		Description:      req.Description,
		Location:         req.Location,
		EventDate:        req.EventDate,
		TicketPriceCents: req.TicketPriceCents,
		TotalTickets:     req.TotalTickets,
		AvailableTickets: req.TotalTickets,
	}

	if err := s.repo.Event.Create(ctx, event); err != nil {
		s.log.Error("Failed to create event", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.log.Info("Event created",
		zap.String("event_id", event.ID.String()),
		zap.String("name", event.Name),
		zap.Int("total_tickets", event.TotalTickets),
	)

	resp := response.EventToResponse(event)
	return &resp, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID string, req *request.UpdateEventRequest) (*response.EventResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update event validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID format %s: %w", eventID, err)
	}

	current, err := s.repo.Event.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Partial update: field nil tidak menimpa nilai lama.
	// available_tickets tidak pernah diterima dari request; repo menghitung
	// ulang dari total baru di bawah row lock.
	upd := *current
	if req.Name != nil {
		upd.Name = *req.Name
	}
	if req.Description != nil {
		upd.Description = *req.Description
	}
	if req.Location != nil {
		upd.Location = *req.Location
	}
	if req.EventDate != nil {
		upd.EventDate = *req.EventDate
	}
	if req.TicketPriceCents != nil {
		upd.TicketPriceCents = *req.TicketPriceCents
	}
	if req.TotalTickets != nil {
		upd.TotalTickets = *req.TotalTickets
	}
	upd.UpdatedAt = time.Now()

	updated, clamped, err := s.repo.Event.Update(ctx, &upd)
	if err != nil {
		return nil, err
	}
	if clamped {
		s.log.Warn("Event update stranded oversold bookings",
			zap.String("event_id", eventID),
			zap.Int("new_total", updated.TotalTickets),
		)
	}

	s.log.Info("Event updated", zap.String("event_id", eventID))

	resp := response.EventToResponse(updated)
	return &resp, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID string) error {
	id, err := uuid.Parse(eventID)
	if err != nil {
		return fmt.Errorf("invalid event ID format %s: %w", eventID, err)
	}

	if err := s.repo.Event.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("Event deleted", zap.String("event_id", eventID))
	return nil
}
