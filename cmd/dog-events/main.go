// Command dog-events consumes the dog lifecycle topic and writes one audit
// log line per event.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gartstein/dogs/internal/dogs/config"
	"github.com/gartstein/dogs/internal/dogs/events"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := cfg.Logger()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if len(cfg.KafkaBrokers) == 0 {
		logger.Fatal("KAFKA_BROKERS is empty, nothing to consume")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := events.NewConsumer(cfg.KafkaBrokers, cfg.EventsGroupID, cfg.Topic, logger)
	consumer.Start(ctx)
	logger.Info("Consuming dog events",
		zap.String("topic", cfg.Topic),
		zap.String("group_id", cfg.EventsGroupID),
	)

	<-ctx.Done()
	consumer.Close()
	logger.Info("Consumer stopped")
}
