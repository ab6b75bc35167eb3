package wire

import (
	"event-booking/internal/adaptor"
	"event-booking/pkg/middleware"
	"event-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireEvent(
	r chi.Router,
	eventHandler *adaptor.EventHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// Katalog event bisa dibaca tanpa login
	r.Get("/api/events", eventHandler.ListEvents)
	r.Get("/api/events/{id}", eventHandler.GetEvent)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, log))
		r.Use(middleware.Admin(log))

		r.Post("/api/events", eventHandler.CreateEvent)
		r.Put("/api/events/{id}", eventHandler.UpdateEvent)
		r.Delete("/api/events/{id}", eventHandler.DeleteEvent)
	})
}
