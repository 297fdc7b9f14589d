package di

import (
	"context"
	"fmt"
	"time"

	"ShellWatch/internal/domain/models"
	"ShellWatch/internal/domain/repository"
	"ShellWatch/internal/handler/api"
	"ShellWatch/internal/handler/ws"
	internalrepo "ShellWatch/internal/repository"
	"ShellWatch/internal/usecase"
	"ShellWatch/pkg/cache"
	pkgch "ShellWatch/pkg/clickhouse"
	"ShellWatch/pkg/config"
	pkgkafka "ShellWatch/pkg/kafka"
	applogger "ShellWatch/pkg/logger"
	"ShellWatch/pkg/metrics"
	"ShellWatch/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCache creates the snapshot cache configured by backend.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	switch cfg.Cache.Backend {
	case "redis":
		c, err := cache.NewRedisCache(
			cache.WithRedisAddr(cfg.Cache.Redis.Host, cfg.Cache.Redis.Port),
			cache.WithRedisAuth(cfg.Cache.Redis.Password, cfg.Cache.Redis.DB),
			cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return c, nil
	default:
		return cache.NewMemoryCache(
			cache.WithMemoryMaxSize(cfg.Cache.Memory.MaxSize),
		), nil
	}
}

// ProvideClickHouseClient creates a ClickHouse client when history is enabled.
// Returns nil when disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.History.Enabled {
		return nil, nil
	}

	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.History.ClickHouse.Host),
		pkgch.WithPort(cfg.History.ClickHouse.Port),
		pkgch.WithDatabase(cfg.History.ClickHouse.Database),
		pkgch.WithCredentials(cfg.History.ClickHouse.User, cfg.History.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithTimeouts(cfg.History.ClickHouse.DialTimeout, cfg.History.ClickHouse.ReadTimeout, cfg.History.ClickHouse.WriteTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.InitSchema(ctx, []string{
		"CREATE DATABASE IF NOT EXISTS shellwatch",
		"CREATE TABLE IF NOT EXISTS " + cfg.History.Table + " (identity_id String, item_id String, hour DateTime, observed_price Int32, base_price Int32) ENGINE=MergeTree ORDER BY (identity_id, item_id, hour)",
	}); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideObservationStore creates ClickHouse-backed observation storage.
// Returns nil when history is disabled.
func ProvideObservationStore(chClient *pkgch.Client, cfg *config.Config) repository.ObservationStore {
	if chClient == nil {
		return nil
	}
	return internalrepo.NewClickHouseObservationStore(chClient.DB(), cfg.History.Table)
}

// ProvideKafkaProducer creates a Kafka producer when alerts are enabled.
// Returns nil when disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Alerts.Enabled {
		return nil, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Alerts.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Alerts.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Alerts.Kafka.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Alerts.Kafka.MaxAttempts),
		pkgkafka.WithWriteTimeout(cfg.Alerts.Kafka.WriteTimeout),
		pkgkafka.WithAsync(cfg.Alerts.Kafka.Async),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideAlertPublisher creates the Kafka alert publisher.
// Returns nil when alerts are disabled.
func ProvideAlertPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.AlertPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaAlertPublisher(producer, cfg.Alerts.Topic)
}

// ProvideSnapshotBuilder creates the snapshot pipeline use case.
func ProvideSnapshotBuilder(
	c cache.Service,
	store repository.ObservationStore,
	alerts repository.AlertPublisher,
	m repository.Metrics,
	logger *applogger.Logger,
	cfg *config.Config,
) *usecase.SnapshotBuilder {
	return usecase.NewSnapshotBuilder(c, store, alerts, m, logger, usecase.BuilderConfig{
		ReferenceBasePrice: cfg.Shop.ReferenceBasePrice,
		EventEndHour:       cfg.EventEndHour(),
		AlertThreshold:     cfg.Shop.AlertThreshold,
		AlertTopic:         cfg.Alerts.Topic,
	})
}

// ProvideShopHandler creates the REST API handler.
func ProvideShopHandler(logger *applogger.Logger, builder *usecase.SnapshotBuilder, cfg *config.Config) *api.ShopEchoHandler {
	bounds := models.PriceBounds{
		MinPercent: cfg.Shop.MinPercent,
		MaxPercent: cfg.Shop.MaxPercent,
	}
	return api.NewShopEchoHandler(logger, builder, bounds, cfg.Shop.ReferenceBasePrice, cfg.EventEndHour())
}

// ProvideWatchHandler creates the WebSocket watch handler.
func ProvideWatchHandler(logger *applogger.Logger, builder *usecase.SnapshotBuilder, m repository.Metrics) *ws.WatchHandler {
	return ws.NewWatchHandler(logger, builder, m)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	logger *applogger.Logger,
	shop *api.ShopEchoHandler,
	watch *ws.WatchHandler,
	c cache.Service,
	chClient *pkgch.Client,
	store repository.ObservationStore,
	alerts repository.AlertPublisher,
) *server.App {
	return server.New(cfg, logger, shop, watch, c, chClient, store, alerts)
}
