package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avidato/farehold/config"
	"github.com/avidato/farehold/internal/amadeus"
	"github.com/avidato/farehold/internal/bootstrap"
	"github.com/avidato/farehold/internal/cache"
	"github.com/avidato/farehold/internal/email"
	"github.com/avidato/farehold/internal/kafka"
	"github.com/avidato/farehold/internal/metrics"
	"github.com/avidato/farehold/internal/repository"
	"github.com/avidato/farehold/internal/service/requests"
	"github.com/avidato/farehold/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Init("")
		log.Fatal().Err(err).Msg("load config")
	}
	logger.Init(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Redis.RequestsCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	notifier, err := email.NewGmailSender(ctx, cfg.Mail)
	if err != nil {
		log.Fatal().Err(err).Msg("init mail sender")
	}

	requestRepo := repository.NewRequestRepository(pool)
	provider := amadeus.NewClient(cfg.Amadeus)
	requestService := requests.NewRequestService(
		requestRepo,
		provider,
		requests.WithCache(redisCache),
		requests.WithProducer(producer, cfg.Kafka.RequestEventsTopic),
		requests.WithNotifier(notifier),
		requests.WithMetrics(metrics.NewMetrics("farehold")),
	)

	if err := bootstrap.Run(ctx, cfg, requestService); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
