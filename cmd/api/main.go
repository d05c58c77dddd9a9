package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/wahho/rewards-platform/internal/api"
	"github.com/wahho/rewards-platform/internal/core/domain"
	"github.com/wahho/rewards-platform/internal/infrastructure/config"
	mongodb "github.com/wahho/rewards-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/wahho/rewards-platform/internal/infrastructure/db/redis"
	"github.com/wahho/rewards-platform/internal/infrastructure/queue"
	"github.com/wahho/rewards-platform/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// defaultCatalog seeds an empty task collection on first boot. Catalog
// curation beyond this bootstrap happens out of band.
var defaultCatalog = []domain.Task{
	{ID: "watch_intro", Title: "Watch the intro video", Description: "Watch the 2-minute walkthrough", Reward: 5},
	{ID: "complete_profile", Title: "Complete your profile", Description: "Fill in your name and payout details", Reward: 10},
	{ID: "first_share", Title: "Share your referral link", Description: "Share your referral code anywhere", Reward: 5},
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "rewards-api",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	if err := prepareStore(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("store preparation failed")
	}

	ledgerRepo := mongodb.NewLedgerRepository(db)
	dispatcher := queue.NewDispatcher(cfg.LedgerWorkers, ledgerRepo, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(cfg, db, rdb, dispatcher, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("rewards API started")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info().Msg("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// prepareStore creates indexes and seeds the task catalog on first boot.
func prepareStore(ctx context.Context, db *mongo.Database, log zerolog.Logger) error {
	users := mongodb.NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewWithdrawalRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewLedgerRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}

	if err := mongodb.NewTaskRepository(db).Seed(ctx, defaultCatalog); err != nil {
		return err
	}

	log.Debug().Msg("store indexes and catalog ready")
	return nil
}
