package wire

import (
	"net/http"

	"event-booking/internal/adaptor"
	"event-booking/internal/data/repository"
	"event-booking/internal/usecase"
	"event-booking/pkg/middleware"
	"event-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App menyimpan semua dependencies
type App struct {
	Router *chi.Mux
}

// Wiring menginisialisasi semua dependencies. rdb dan publisher boleh
// nil; rate limiting dan domain events jadi no-op.
func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	rdb *redis.Client,
	publisher usecase.BookingEventPublisher,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, config, publisher, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, config, rdb, logger)

	return &App{
		Router: router,
	}
}

// setupRouter konfigurasi Chi router
func setupRouter(
	handler *adaptor.Handler,
	config *utils.Config,
	rdb *redis.Client,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth, config, logger)
	wireEvent(r, handler.Event, config, logger)
	wireBooking(r, handler.Booking, config, rdb, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
