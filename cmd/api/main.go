// Command api starts the restaurant ratings HTTP server.
//
// @title        Restaurant Ratings API
// @version      1.0
// @description  REST backend exposing restaurants, ratings, events and user authentication.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/awesomeeats/restaurant-api/docs"
	"github.com/awesomeeats/restaurant-api/internal/api"
	"github.com/awesomeeats/restaurant-api/internal/core/service"
	"github.com/awesomeeats/restaurant-api/internal/infrastructure/config"
	mongodb "github.com/awesomeeats/restaurant-api/internal/infrastructure/db/mongo"
	redisdb "github.com/awesomeeats/restaurant-api/internal/infrastructure/db/redis"
	"github.com/awesomeeats/restaurant-api/internal/infrastructure/queue"
	"github.com/awesomeeats/restaurant-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	// --- Event pipeline ---
	eventFeed := redisdb.NewEventFeed(rdb)
	eventService := service.NewEventService(eventFeed, log)
	dispatcher := queue.NewDispatcher(0, eventService, log)
	dispatcher.Start(ctx)

	// --- HTTP ---
	e := api.NewRouter(db, rdb, api.Options{
		Auth: service.AuthOptions{
			SecurityKey:        cfg.JWT.SecurityKey,
			Issuer:             cfg.JWT.Issuer,
			Audience:           cfg.JWT.Audience,
			ExpirationMinutes:  cfg.JWT.ExpirationMinutes,
			MinPasswordLength:  cfg.Identity.MinPasswordLength,
			RequireUniqueEmail: cfg.Identity.RequireUniqueEmail,
		},
		EventService: eventService,
		Dispatcher:   dispatcher,
		Logger:       log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// ensureIndexes creates all collection indexes at startup so the listing,
// scoped-lookup and unique-email queries are always backed.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewRestaurantRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongodb.NewRatingRepository(db).EnsureIndexes(ctx)
}
