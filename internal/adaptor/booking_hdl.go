package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"event-booking/internal/data/entity"
	"event-booking/internal/data/repository"
	"event-booking/internal/dto/request"
	"event-booking/internal/dto/response"
	"event-booking/internal/usecase"
	"event-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings (protected)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), userID.String(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

// ListBookings handles GET /api/bookings (protected; admin melihat semua)
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	bookings, err := h.service.ListBookings(r.Context(), userID.String(), role, req)
	if err != nil {
		h.handleServiceError(w, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetBooking handles GET /api/bookings/{id} (protected, owner-or-admin)
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())

	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	booking, err := h.service.GetBooking(r.Context(), userID.String(), role, bookingID)
	if err != nil {
		h.handleServiceError(w, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// UpdateBookingStatus handles PATCH /api/bookings/{id}/status (protected, owner-or-admin)
func (h *BookingHandler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())

	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	var req request.UpdateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.UpdateBookingStatus(r.Context(), userID.String(), role, bookingID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update booking status")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// DeleteBooking handles DELETE /api/bookings/{id} (protected, owner-or-admin)
func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())

	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	if err := h.service.DeleteBooking(r.Context(), userID.String(), role, bookingID); err != nil {
		h.handleServiceError(w, err, "delete booking")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

func (h *BookingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	var stockErr *entity.InsufficientStockError

	switch {
	case errors.As(err, &stockErr):
		// 409 dengan payload available/requested supaya client bisa
		// menawarkan jumlah yang masih mungkin
		h.log.Warn(operation+" failed - insufficient stock",
			zap.Int("available", stockErr.Available),
			zap.Int("requested", stockErr.Requested))
		utils.ResponseConflict(w, err.Error(), response.InsufficientStockResponse{
			Available: stockErr.Available,
			Requested: stockErr.Requested,
		})

	case errors.Is(err, entity.ErrInvalidTransition):
		h.log.Warn(operation+" failed - invalid transition", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), nil)

	case errors.Is(err, entity.ErrInvalidQuantity):
		h.log.Warn(operation+" failed - invalid quantity", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrForbidden):
		h.log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, repository.ErrBookingNotFound),
		errors.Is(err, repository.ErrEventNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case strings.Contains(err.Error(), "validation failed"),
		strings.Contains(err.Error(), "invalid"):
		h.log.Warn(operation+" failed - bad input", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
