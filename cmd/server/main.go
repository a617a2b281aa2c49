package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/qrpulse/qrpulse/internal/api"
	"github.com/qrpulse/qrpulse/internal/config"
	"github.com/qrpulse/qrpulse/internal/pkg/logger"
	"github.com/qrpulse/qrpulse/internal/repository/local"
	"github.com/qrpulse/qrpulse/internal/repository/postgres"
	"github.com/qrpulse/qrpulse/internal/service/campaign"
	"github.com/qrpulse/qrpulse/internal/suggest"
	"github.com/qrpulse/qrpulse/internal/tracking"
)

func main() {
	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Pick the storage backend once at startup. A configured database that
	// cannot be reached is fatal; without one the local file store keeps
	// the service usable.
	store, backend, err := openStore(cfg.Storage)
	if err != nil {
		log.Fatalf("open storage: %v", err)
	}
	logger.Info("storage backend selected", "backend", backend)

	svc := campaign.NewService(store)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Scan recording: direct writes by default, a Redis queue with a
	// background consumer when configured.
	var rec tracking.Recorder = tracking.NewDirectRecorder(svc)
	var consumer *tracking.Consumer
	if cfg.Redis.Enabled() {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatalf("redis ping: %v", err)
		}
		rec = tracking.NewQueuePublisher(client)
		consumer = tracking.NewConsumer(client, svc)
		consumer.Start(ctx)
		logger.Info("scan queue enabled", "addr", cfg.Redis.Addr)
	}

	oracle := suggest.NewOracle(buildProvider(ctx, cfg.Suggestions))

	tracker := tracking.NewHandler(svc, rec)
	handlers := api.NewHandlers(svc, oracle, tracker, cfg.Server.PublicURL, backend, cfg.Redis.Enabled())
	server := api.NewServer(cfg.Server, handlers)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	cancel()
	if consumer != nil {
		consumer.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}

// openStore selects and initializes the storage backend from config.
func openStore(cfg config.StorageConfig) (campaign.Store, string, error) {
	if cfg.Remote() {
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, "", err
		}
		store := postgres.New(db)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, "", err
		}
		return store, "remote", nil
	}

	store, err := local.New(cfg.LocalPath)
	if err != nil {
		return nil, "", err
	}
	return store, "local", nil
}

// buildProvider constructs the configured suggestion provider, or nil when
// suggestions are disabled or misconfigured. A broken provider degrades to
// fallback strings rather than blocking startup.
func buildProvider(ctx context.Context, cfg config.SuggestionsConfig) suggest.Provider {
	switch cfg.Provider {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			logger.Warn("openai provider selected but OPENAI_API_KEY is empty; suggestions disabled")
			return nil
		}
		return suggest.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	case "bedrock":
		p, err := suggest.NewBedrockProvider(ctx, cfg.AWSRegion, cfg.BedrockModelID)
		if err != nil {
			logger.Warn("bedrock provider init failed; suggestions disabled", "error", err)
			return nil
		}
		return p
	case "":
		return nil
	default:
		logger.Warn("unknown suggestions provider; suggestions disabled", "provider", cfg.Provider)
		return nil
	}
}
