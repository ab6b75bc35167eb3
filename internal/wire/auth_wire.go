package wire

import (
	"event-booking/internal/adaptor"
	"event-booking/pkg/middleware"
	"event-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/auth/register", authHandler.Register)
	r.Post("/api/auth/login", authHandler.Login)

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, log))

		r.Get("/api/auth/profile", authHandler.Profile)
	})
}
