package wire

import (
	"event-booking/internal/adaptor"
	"event-booking/pkg/middleware"
	"event-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	config *utils.Config,
	rdb *redis.Client,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, log))

		// Rate limit hanya di pembuatan booking; endpoint inilah yang
		// memperebutkan row lock event.
		r.With(middleware.RateLimit(config.RateLimit, rdb, log)).
			Post("/api/bookings", bookingHandler.CreateBooking)

		r.Get("/api/bookings", bookingHandler.ListBookings)
		r.Get("/api/bookings/{id}", bookingHandler.GetBooking)
		r.Patch("/api/bookings/{id}/status", bookingHandler.UpdateBookingStatus)
		r.Delete("/api/bookings/{id}", bookingHandler.DeleteBooking)
	})
}
