//	@title			Dog Registry API
//	@version		1.0
//	@description	Tracks service dogs and the suppliers they were acquired from.
//	@BasePath		/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and a JWT.
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gartstein/dogs/internal/dogs/config"
	"github.com/gartstein/dogs/internal/dogs/controller"
	"github.com/gartstein/dogs/internal/dogs/db"
	"github.com/gartstein/dogs/internal/dogs/events"
	"github.com/gartstein/dogs/internal/dogs/handlers"
	"github.com/gartstein/dogs/internal/dogs/metrics"
	"go.uber.org/zap"
)

type eventProducer interface {
	controller.EventProducer
	Close()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := cfg.Logger()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	repo, err := db.NewRepository(cfg.Database(), logger)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error("failed to close database", zap.Error(err))
		}
	}()

	producer := initProducer(cfg, logger)
	defer producer.Close()

	dogSvc := controller.NewDogService(repo, producer, logger)
	dogHandler := handlers.NewDogHandler(dogSvc, logger, handlers.PageLimits{
		DefaultSize: cfg.DefaultPageSize,
		MaxSize:     cfg.MaxPageSize,
	})

	reg := metrics.NewRegistry()
	router := handlers.NewRouter(dogHandler, handlers.RouterOptions{
		JWTSecret: cfg.JWTSecret,
		Metrics:   metrics.NewHTTPMetrics(reg),
		Gatherer:  reg,
		Logger:    logger,
	})

	server := handlers.NewServer(cfg.HTTPPort, router, logger)
	if err := server.Start(); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}

	waitForShutdown(server, logger)
}

// initProducer connects to Kafka, falling back to a no-op producer when no
// brokers are configured or the brokers cannot be reached.
func initProducer(cfg *config.Config, logger *zap.Logger) eventProducer {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("No Kafka brokers configured, events are disabled")
		return events.NopProducer{}
	}
	producer, err := events.NewProducer(cfg.KafkaBrokers, logger, cfg.Topic)
	if err != nil {
		logger.Error("failed to initialize Kafka producer, events are disabled", zap.Error(err))
		return events.NopProducer{}
	}
	return producer
}

// waitForShutdown blocks until an interrupt, SIGTERM or a server failure,
// then shuts the server down.
func waitForShutdown(server *handlers.Server, logger *zap.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-stop:
		logger.Info("Received signal", zap.String("signal", sig.String()))
	case err := <-server.Errors():
		if err != nil {
			logger.Error("Server failed", zap.Error(err))
		}
	}

	server.Stop()
	logger.Info("Server stopped properly")
}
