package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/veridian/identity-service/internal/api"
	"github.com/veridian/identity-service/internal/api/metrics"
	"github.com/veridian/identity-service/internal/core/service"
	"github.com/veridian/identity-service/internal/infrastructure/bootstrap"
	"github.com/veridian/identity-service/internal/infrastructure/config"
	mongodb "github.com/veridian/identity-service/internal/infrastructure/db/mongo"
	redisdb "github.com/veridian/identity-service/internal/infrastructure/db/redis"
	"github.com/veridian/identity-service/internal/infrastructure/queue"
	"github.com/veridian/identity-service/internal/infrastructure/security"
	"github.com/veridian/identity-service/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Stores ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Repositories and collaborators ---
	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	profileRepo := mongodb.NewProfileRepository(db)
	hasher := security.NewBcryptHasher(0)
	compromised := redisdb.NewCompromisedChecker(rdb)

	// Roles and the admin account must exist before any registration.
	if err := bootstrap.Seed(ctx, userRepo, roleRepo, hasher, bootstrap.AdminAccount{
		Username: cfg.Admin.Username,
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
	}, log); err != nil {
		log.Fatal().Err(err).Msg("bootstrap seeding failed")
	}

	// --- Event bus + notifier ---
	bus := queue.NewDispatcher(0, log)
	bus.Subscribe(service.NewProfileService(profileRepo, metrics.ProfilesCreatedTotal, log))
	bus.Start(ctx)

	// --- Core services ---
	validator := service.NewCredentialValidator(userRepo, compromised, log)
	userSvc := service.NewUserService(userRepo, roleRepo, validator, hasher, bus, log)
	authSvc := service.NewAuthService(userRepo, hasher, log)
	tokenSvc := service.NewTokenService(
		[]byte(cfg.JWT.Secret),
		cfg.JWT.Issuer,
		cfg.JWT.AccessTTL,
		cfg.JWT.RefreshTTL,
		userSvc,
		log,
	)

	e := api.NewRouter(api.Services{Users: userSvc, Auth: authSvc, Tokens: tokenSvc}, db, rdb, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	if err := e.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
