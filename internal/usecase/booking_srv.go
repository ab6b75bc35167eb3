package usecase

import (
	"context"
	"fmt"
	"time"

	"event-booking/internal/data/entity"
	"event-booking/internal/data/repository"
	"event-booking/internal/dto/request"
	"event-booking/internal/dto/response"
	"event-booking/internal/queue"
	"event-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingEventPublisher diimplementasikan oleh queue.Publisher. Publish
// berjalan setelah commit dan bersifat best-effort.
type BookingEventPublisher interface {
	PublishBookingCreated(ctx context.Context, event queue.BookingCreatedEvent) error
	PublishBookingCancelled(ctx context.Context, event queue.BookingCancelledEvent) error
}

type BookingService interface {
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	ListBookings(ctx context.Context, userID, role string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBooking(ctx context.Context, userID, role, bookingID string) (*response.BookingResponse, error)
	UpdateBookingStatus(ctx context.Context, userID, role, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)
	DeleteBooking(ctx context.Context, userID, role, bookingID string) error
}

type bookingService struct {
	repo      *repository.Repository
	publisher BookingEventPublisher
	log       *zap.Logger
}

func NewBookingService(repo *repository.Repository, publisher BookingEventPublisher, log *zap.Logger) BookingService {
	return &bookingService{
		repo:      repo,
		publisher: publisher,
		log:       log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// Precondition dicek sebelum buka transaksi.
	if req.Quantity < 1 {
		return nil, entity.ErrInvalidQuantity
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	eventUUID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID format %s: %w", req.EventID, err)
	}

	// total_price_cents diisi oleh protokol reservasi dari harga yang
	// terbaca di bawah lock.
	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:   userUUID,
		EventID:  eventUUID,
		Quantity: req.Quantity,
		Status:   entity.BookingStatusPending,
	}

	created, err := s.repo.Booking.CreateWithReservation(ctx, booking)
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking created",
		zap.String("booking_id", created.ID.String()),
		zap.String("user_id", userID),
		zap.String("event_id", req.EventID),
		zap.Int("quantity", created.Quantity),
		zap.Int64("total_price_cents", created.TotalPriceCents),
	)

	s.publishCreated(ctx, created)

	resp := response.BookingToResponse(created)
	return &resp, nil
}

func (s *bookingService) ListBookings(ctx context.Context, userID, role string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	// Admin lihat semua booking, user hanya miliknya sendiri.
	var (
		bookings []*entity.Booking
		total    int64
	)
	if role == string(entity.RoleAdmin) {
		bookings, err = s.repo.Booking.FindAll(ctx, req.Limit(), req.Offset())
		if err == nil {
			total, err = s.repo.Booking.CountAll(ctx)
		}
	} else {
		bookings, err = s.repo.Booking.FindByUserID(ctx, userUUID, req.Limit(), req.Offset())
		if err == nil {
			total, err = s.repo.Booking.CountByUserID(ctx, userUUID)
		}
	}
	if err != nil {
		s.log.Error("Failed to list bookings", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		bookingResponses[i] = response.BookingToResponse(booking)
	}

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}

func (s *bookingService) GetBooking(ctx context.Context, userID, role, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.authorizeBookingAccess(ctx, userID, role, bookingID)
	if err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) UpdateBookingStatus(ctx context.Context, userID, role, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update booking status validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	booking, err := s.authorizeBookingAccess(ctx, userID, role, bookingID)
	if err != nil {
		return nil, err
	}

	next := entity.BookingStatus(req.Status)
	wasCancelled := booking.Status == entity.BookingStatusCancelled

	updated, err := s.repo.Booking.UpdateStatusWithRelease(ctx, booking.ID, next)
	if err != nil {
		return nil, err
	}

	if updated.Status == entity.BookingStatusCancelled && !wasCancelled {
		s.publishCancelled(ctx, updated)
	}

	s.log.Info("Booking status updated",
		zap.String("booking_id", bookingID),
		zap.String("status", string(updated.Status)),
	)

	resp := response.BookingToResponse(updated)
	return &resp, nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, userID, role, bookingID string) error {
	booking, err := s.authorizeBookingAccess(ctx, userID, role, bookingID)
	if err != nil {
		return err
	}

	wasCancelled := booking.Status == entity.BookingStatusCancelled

	if err := s.repo.Booking.DeleteWithRelease(ctx, booking.ID); err != nil {
		return err
	}

	if !wasCancelled {
		s.publishCancelled(ctx, booking)
	}

	s.log.Info("Booking deleted", zap.String("booking_id", bookingID))
	return nil
}

// authorizeBookingAccess memuat booking dan menerapkan aturan
// owner-or-admin. Otorisasi hidup di sini, bukan di dalam transaksi.
func (s *bookingService) authorizeBookingAccess(ctx context.Context, userID, role, bookingID string) (*entity.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if role != string(entity.RoleAdmin) && booking.UserID != userUUID {
		s.log.Warn("Booking access denied",
			zap.String("booking_id", bookingID),
			zap.String("user_id", userID),
		)
		return nil, ErrForbidden
	}

	return booking, nil
}

func (s *bookingService) publishCreated(ctx context.Context, booking *entity.Booking) {
	if s.publisher == nil {
		return
	}

	eventName := ""
	if ev, err := s.repo.Event.FindByID(ctx, booking.EventID); err == nil {
		eventName = ev.Name
	}

	err := s.publisher.PublishBookingCreated(ctx, queue.BookingCreatedEvent{
		BookingID:       booking.ID.String(),
		UserID:          booking.UserID.String(),
		EventID:         booking.EventID.String(),
		EventName:       eventName,
		Quantity:        booking.Quantity,
		TotalPriceCents: booking.TotalPriceCents,
		Status:          string(booking.Status),
		CreatedAt:       booking.CreatedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		// Best-effort saja; request utama tetap sukses.
		s.log.Warn("Failed to publish booking.created",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
	}
}

func (s *bookingService) publishCancelled(ctx context.Context, booking *entity.Booking) {
	if s.publisher == nil {
		return
	}

	err := s.publisher.PublishBookingCancelled(ctx, queue.BookingCancelledEvent{
		BookingID:   booking.ID.String(),
		UserID:      booking.UserID.String(),
		EventID:     booking.EventID.String(),
		Quantity:    booking.Quantity,
		CancelledAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		s.log.Warn("Failed to publish booking.cancelled",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
	}
}
