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

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// Register handles POST /api/auth/register (public)
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	auth, err := h.service.Register(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "register")
		return
	}

	utils.ResponseCreated(w, "success", auth)
}

// Login handles POST /api/auth/login (public)
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	auth, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "login")
		return
	}

	utils.ResponseSuccess(w, "success", auth)
}

// Profile handles GET /api/auth/profile (protected)
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	profile, err := h.service.Profile(r.Context(), userID.String())
	if err != nil {
		h.handleServiceError(w, err, "get profile")
		return
	}

	utils.ResponseSuccess(w, "success", profile)
}

func (h *AuthHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidCredentials):
		h.log.Warn(operation+" failed - invalid credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, repository.ErrEmailTaken):
		h.log.Warn(operation+" failed - email taken", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), nil)

	case errors.Is(err, repository.ErrUserNotFound):
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
