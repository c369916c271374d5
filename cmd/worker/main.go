package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/kelseyhightower/envconfig"

	"github.com/jwalitptl/booking-api/config"
	"github.com/jwalitptl/booking-api/internal/repository/postgres"
	"github.com/jwalitptl/booking-api/pkg/logger"
	"github.com/jwalitptl/booking-api/pkg/messaging"
	"github.com/jwalitptl/booking-api/pkg/messaging/redis"
	"github.com/jwalitptl/booking-api/pkg/metrics"
	"github.com/jwalitptl/booking-api/pkg/worker"
)

// runtimeConfig holds the worker-local knobs; shared infrastructure (database,
// redis, outbox batching) comes from the same config file the API reads.
type runtimeConfig struct {
	HealthAddr string `envconfig:"HEALTH_ADDR" default:":8081"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
}

func main() {
	var rt runtimeConfig
	if err := envconfig.Process("worker", &rt); err != nil {
		logger.NewLogger(nil).Fatal(err, "failed to load worker runtime config")
	}

	log := logger.NewLogger(&logger.Config{Level: logger.ParseLevel(rt.LogLevel)})

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err, "failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	broker, err := redis.NewRedisBroker(cfg.Redis.ToBrokerConfig(), log.Zerolog())
	if err != nil {
		log.Fatal(err, "failed to create redis broker")
	}
	defer broker.Close()

	processor := worker.NewOutboxProcessor(
		postgres.NewOutboxRepository(db),
		broker,
		cfg.Outbox.ToProcessorConfig(),
		log,
		metrics.NewMetrics("booking_worker"),
	)

	startHealthServer(rt.HealthAddr, broker, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("shutting down worker")
		cancel()
	}()

	log.Info("outbox worker started",
		"batch_size", cfg.Outbox.BatchSize,
		"poll_interval", cfg.Outbox.PollInterval.String())
	processor.Start(ctx)
}

func startHealthServer(addr string, broker messaging.Broker, log *logger.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		if !broker.Healthy() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Fatal(err, "health server failed")
		}
	}()
}
