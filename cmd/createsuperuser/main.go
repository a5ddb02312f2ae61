// Command createsuperuser provisions a superuser account directly against the
// database. Intended for bootstrap and operations, not exposed over HTTP.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/pulsefeed/social-api/internal/core/ports"
	"github.com/pulsefeed/social-api/internal/core/service"
	"github.com/pulsefeed/social-api/internal/infrastructure/config"
	mongodb "github.com/pulsefeed/social-api/internal/infrastructure/db/mongo"
	"github.com/pulsefeed/social-api/pkg/logger"
)

func main() {
	username := flag.String("username", "", "username for the new superuser")
	email := flag.String("email", "", "email for the new superuser")
	password := flag.String("password", "", "password for the new superuser")
	flag.Parse()

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "createsuperuser"})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index bootstrap failed")
	}

	// Token issuance is not needed for account provisioning.
	authService := service.NewAuthService(mongodb.NewUserRepository(db), nil, cfg.JWTSecret, cfg.AccessTokenTTL, log)

	user, err := authService.RegisterSuperuser(ctx, ports.RegisterInput{
		Username: *username,
		Email:    *email,
		Password: *password,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("superuser creation failed")
	}

	log.Info().Str("user_id", user.PublicID).Str("username", user.Username).Msg("superuser created")
}
