// main.go
package main

import (
	"context"
	"log"

	"event-booking/cmd"
	"event-booking/internal/data/repository"
	"event-booking/internal/queue"
	"event-booking/internal/usecase"
	"event-booking/internal/wire"
	"event-booking/pkg/database"
	"event-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Apply schema
	if err := database.Migrate(context.Background(), db); err != nil {
		logger.Fatal("Failed to apply schema", zap.Error(err))
	}

	// Redis opsional; tanpa Redis rate limiting jadi no-op
	var rdb *redis.Client
	if config.Redis.Addr != "" {
		rdb, err = database.InitRedis(config.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, rate limiting disabled", zap.Error(err))
			rdb = nil
		} else {
			defer rdb.Close()
			logger.Info("Redis connected successfully")
		}
	}

	// RabbitMQ opsional; tanpa queue domain events tidak dipublish
	var publisher usecase.BookingEventPublisher
	if config.Queue.Enabled {
		publisher = queue.NewPublisher(config.Queue.URL, logger)
		logger.Info("Queue publisher enabled", zap.String("url", config.Queue.URL))
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, rdb, publisher, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
