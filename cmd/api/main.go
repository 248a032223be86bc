package main

import (
	"context"
	"errors"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/apiecommerce/catalog-api/docs"
	"github.com/apiecommerce/catalog-api/internal/api"
	"github.com/apiecommerce/catalog-api/internal/core/service"
	mongodb "github.com/apiecommerce/catalog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/apiecommerce/catalog-api/internal/infrastructure/db/redis"
	"github.com/apiecommerce/catalog-api/internal/infrastructure/queue"
	"github.com/apiecommerce/catalog-api/internal/pkg/config"
	"github.com/apiecommerce/catalog-api/pkg/logger"
)

// @title Catalog API
// @version 1.0
// @description E-commerce catalog API with JWT-based account management.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Configuration faults (including a missing signing secret) must
		// prevent the process from serving at all.
		stdlog.Fatalf("failed to load configuration: %v", err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	categoryRepo := mongodb.NewCategoryRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)

	// Unique indexes are the authoritative uniqueness guards; refuse to
	// serve without them.
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user indexes failed")
	}
	if err := categoryRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("category indexes failed")
	}
	if err := productRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("product indexes failed")
	}

	// --- Services ---
	issuer, err := service.NewJWTIssuer(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("token issuer configuration invalid")
	}

	dispatcher := queue.NewAuditDispatcher(cfg.AuditWorkers, auditRepo, log)
	dispatcher.Start(ctx)

	throttle := redisdb.NewLoginThrottle(rdb, cfg.LoginMaxAttempts, cfg.LoginWindow)

	authService := service.NewAuthService(userRepo, roleRepo, service.NewBcryptHasher(), issuer, log).
		WithThrottle(throttle).
		WithAudit(dispatcher)
	categoryService := service.NewCategoryService(categoryRepo, log)
	productService := service.NewProductService(productRepo, categoryRepo, log)

	e := api.NewRouter(api.Deps{
		Auth:       authService,
		Users:      userRepo,
		Roles:      roleRepo,
		Categories: categoryService,
		Products:   productService,
		Mongo:      db,
		Redis:      rdb,
		JWTSecret:  cfg.JWTSecret,
		Logger:     log,
	})

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting catalog api")
	if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
