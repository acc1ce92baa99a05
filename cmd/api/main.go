package main

import (
	"context"
	"log"
	"time"

	"github.com/teamup-dev/teamup-backend/config"
	"github.com/teamup-dev/teamup-backend/internal/auth"
	"github.com/teamup-dev/teamup-backend/internal/bootstrap"
	"github.com/teamup-dev/teamup-backend/internal/storage/postgres"
	"github.com/teamup-dev/teamup-backend/internal/storage/s3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	db, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: postgres.DSN(&cfg.Database)})
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	identity, err := auth.InitializeFirebase(&cfg.Firebase)
	if err != nil {
		log.Fatalf("firebase: %v", err)
	}

	issuer, err := auth.NewTokenIssuer(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryMinutes)*time.Minute)
	if err != nil {
		log.Fatalf("jwt: %v", err)
	}

	images, err := s3.NewPresigner(ctx, &cfg.AWS)
	if err != nil {
		log.Fatalf("s3: %v", err)
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:      "teamup-backend",
		Version:          cfg.App.Version,
		DB:               db,
		Redis:            rdb,
		Identity:         identity,
		TokenIssuer:      issuer,
		Images:           images,
		EncryptionSecret: cfg.Crypto.EncryptionSecret,
	})

	log.Printf("listening on :%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
