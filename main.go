// main.go
package main

import (
	"context"
	"log"

	"ecommerce-rbac/cmd"
	"ecommerce-rbac/internal/adaptor"
	"ecommerce-rbac/internal/data/repository"
	"ecommerce-rbac/internal/wire"
	"ecommerce-rbac/pkg/database"
	"ecommerce-rbac/pkg/mailer"
	"ecommerce-rbac/pkg/session"
	"ecommerce-rbac/pkg/throttle"
	"ecommerce-rbac/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.Name, config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("db_driver", config.Database.Driver),
		zap.Bool("debug", config.App.Debug),
	)

	ctx := context.Background()
	health := make(map[string]adaptor.HealthCheck)

	// Connect to the configured store and build the repositories on it
	var repos *repository.Repository
	switch config.Database.Driver {
	case utils.DriverPostgres:
		pool, err := database.InitPostgres(ctx, config.Database)
		if err != nil {
			logger.Fatal("Failed to connect to postgres", zap.Error(err))
		}
		defer pool.Close()

		repos = repository.NewRepository(pool, logger)
		health["database"] = pool.Ping

	default:
		client, db, err := database.ConnectMongo(ctx, config.Database)
		if err != nil {
			logger.Fatal("Failed to connect to mongo", zap.Error(err))
		}
		defer client.Disconnect(context.Background())

		repos, err = repository.NewMongoRepository(ctx, db, logger)
		if err != nil {
			logger.Fatal("Failed to prepare mongo collections", zap.Error(err))
		}
		health["database"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }
	}
	logger.Info("Database connected successfully")

	// Redis backs the resend cooldown; without it requests are not throttled
	cooldown := throttle.NewNoopCooldown()
	redisClient, err := database.ConnectRedis(ctx, config.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close()
		cooldown = throttle.NewRedisCooldown(redisClient, config.Redis.ResendCooldown)
		health["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
		logger.Info("Redis connected", zap.Duration("cooldown", config.Redis.ResendCooldown))
	} else {
		logger.Warn("REDIS_ADDR not set, resend cooldown disabled")
	}

	mail := mailer.NewSMTPSender(config.Email, config.OTP.ExpiryMinutes, logger)
	if !mail.IsConfigured() {
		logger.Warn("SMTP not configured, mails are written to the log")
	}

	issuer := session.NewIssuer(config.JWT.Secret, config.JWT.LoginExpiry, config.JWT.PasswordResetExpiry)

	// Wire all dependencies
	app := wire.Wiring(wire.Dependencies{
		Repo:     repos,
		Issuer:   issuer,
		Mailer:   mail,
		Cooldown: cooldown,
		Health:   health,
	}, config, logger)

	seeded, err := app.Service.User.SeedAdmin(ctx, config.Seed)
	if err != nil {
		logger.Fatal("Failed to seed admin", zap.Error(err))
	}
	if seeded {
		logger.Info("Admin account created", zap.String("email", config.Seed.AdminEmail))
	}

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
	}
}
