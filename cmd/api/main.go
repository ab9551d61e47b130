package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/foodrescue/foodrescue-api/internal/api"
	"github.com/foodrescue/foodrescue-api/internal/core/ports"
	"github.com/foodrescue/foodrescue-api/internal/core/service"
	"github.com/foodrescue/foodrescue-api/internal/infrastructure/config"
	"github.com/foodrescue/foodrescue-api/internal/infrastructure/db/memory"
	mongodb "github.com/foodrescue/foodrescue-api/internal/infrastructure/db/mongo"
	redisdb "github.com/foodrescue/foodrescue-api/internal/infrastructure/db/redis"
	"github.com/foodrescue/foodrescue-api/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Credential store ---
	var repo ports.UserRepository
	var mongoDB *mongo.Database
	switch cfg.StorageDriver {
	case config.DriverMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() {
			_ = client.Disconnect(context.Background())
		}()

		mongoRepo := mongodb.NewUserRepository(db)
		if err := mongoRepo.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("mongo index setup failed")
		}
		repo = mongoRepo
		mongoDB = db
	default:
		repo = memory.NewUserRepository()
	}

	seeded, err := memory.Seed(ctx, repo)
	if err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}
	count, _ := repo.Count(ctx)
	log.Info().Int("seeded", seeded).Int("users", count).Msg("credential store initialized")

	// --- Optional login throttle ---
	var throttle ports.LoginThrottle
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redisdb.Connect(ctx, redisdb.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer func() {
			_ = rdb.Close()
		}()
		throttle = redisdb.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.Window)
	}

	// --- Services ---
	issuer := service.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL())
	authService := service.NewAuthService(repo, issuer)
	userService := service.NewUserService(repo)

	e := api.NewRouter(api.Deps{
		Config:      cfg,
		AuthService: authService,
		UserService: userService,
		Throttle:    throttle,
		Mongo:       mongoDB,
		Redis:       rdb,
		Log:         log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().
		Str("app", cfg.AppName).
		Str("version", cfg.Version).
		Str("port", cfg.Port).
		Str("storage", cfg.StorageDriver).
		Msg("listening")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
