package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/mhaberler/rikitrakiws/internal/config"
	"github.com/mhaberler/rikitrakiws/internal/db"
	"github.com/mhaberler/rikitrakiws/internal/delivery/handler"
	"github.com/mhaberler/rikitrakiws/internal/infrastructure"
	"github.com/mhaberler/rikitrakiws/internal/repository"
	"github.com/mhaberler/rikitrakiws/internal/usecase"
)

func main() {
	// .env is optional, real deployments configure the environment
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()

	log.WithFields(log.Fields{
		"url": cfg.MongoURL,
		"db":  cfg.MongoDBName,
	}).Info("connecting to database")

	client, err := db.Connect(ctx, cfg.MongoURL)
	if err != nil {
		log.WithError(err).Fatal("cannot connect to database")
	}
	database := client.Database(cfg.MongoDBName)

	// indexes gate readiness: no traffic is served against a store
	// missing its uniqueness constraints
	if err := db.EnsureIndexes(ctx, database); err != nil {
		log.WithError(err).Fatal("index setup failed")
	}

	tokens := infrastructure.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	mailer := infrastructure.NewMailer(cfg.SendgridAPIKey, cfg.InviteFromEmail)

	userRepo := repository.NewUserRepo(database)
	invitationRepo := repository.NewInvitationRepo(database)
	vehicleRepo := repository.NewVehicleRepo(database)
	trackRepo := repository.NewTrackRepo(database)

	e := echo.New()
	e.HideBanner = true
	handler.Register(e, tokens, handler.Services{
		Users:    usecase.NewUserUsecase(userRepo, invitationRepo, mailer, tokens),
		Vehicles: usecase.NewVehicleUsecase(vehicleRepo),
		Tracks:   usecase.NewTrackUsecase(trackRepo),
	})

	log.WithField("port", cfg.Port).Info("server starting")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
