package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"event-booking/internal/data/repository"
	"event-booking/internal/dto/request"
	"event-booking/internal/usecase"
	"event-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type EventHandler struct {
	service usecase.EventService
	log     *zap.Logger
}

func NewEventHandler(service usecase.EventService, log *zap.Logger) *EventHandler {
	return &EventHandler{
		service: service,
		log:     log.With(zap.String("handler", "event")),
	}
}

// ListEvents handles GET /api/events (public)
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	events, err := h.service.ListEvents(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err, "list events")
		return
	}

	utils.ResponseSuccess(w, "success", events)
}

// GetEvent handles GET /api/events/{id} (public)
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if eventID == "" {
		utils.ResponseBadRequest(w, "Event ID is required", nil)
		return
	}

	event, err := h.service.GetEvent(r.Context(), eventID)
	if err != nil {
		h.handleServiceError(w, err, "get event")
		return
	}

	utils.ResponseSuccess(w, "success", event)
}

// CreateEvent handles POST /api/events (admin only)
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	event, err := h.service.CreateEvent(r.Context(), userID.String(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create event")
		return
	}

	utils.ResponseCreated(w, "success", event)
}

// UpdateEvent handles PUT /api/events/{id} (admin only)
func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if eventID == "" {
		utils.ResponseBadRequest(w, "Event ID is required", nil)
		return
	}

	var req request.UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	event, err := h.service.UpdateEvent(r.Context(), eventID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update event")
		return
	}

	utils.ResponseSuccess(w, "success", event)
}

// DeleteEvent handles DELETE /api/events/{id} (admin only)
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if eventID == "" {
		utils.ResponseBadRequest(w, "Event ID is required", nil)
		return
	}

	if err := h.service.DeleteEvent(r.Context(), eventID); err != nil {
		h.handleServiceError(w, err, "delete event")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

func (h *EventHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, repository.ErrEventNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, repository.ErrEventHasBookings):
		h.log.Warn(operation+" failed - active bookings", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), nil)

	case strings.Contains(err.Error(), "validation failed"),
		strings.Contains(err.Error(), "invalid"):
		h.log.Warn(operation+" failed - bad input", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
