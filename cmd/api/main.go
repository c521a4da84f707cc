package main

import (
	"context"
	"log"
	"time"

	"froot-boot-api-server/config"
	"froot-boot-api-server/internal/api/routes"
	"froot-boot-api-server/internal/auth"
	"froot-boot-api-server/internal/database"
	"froot-boot-api-server/internal/events"
	"froot-boot-api-server/internal/notify"
	"froot-boot-api-server/internal/s3"
	"froot-boot-api-server/internal/socket"

	"github.com/joho/godotenv"
)

func main() {
	// Local development secrets live in .env; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	expiry, err := time.ParseDuration(cfg.JWT.Expiration)
	if err != nil {
		log.Fatalf("Invalid JWT expiration %q: %v", cfg.JWT.Expiration, err)
	}

	tokens, err := auth.NewTokenIssuer(cfg.JWT.PrivateKey, cfg.JWT.PublicKey, expiry)
	if err != nil {
		log.Fatalf("Could not load JWT key pair: %v", err)
	}

	db, err := database.Connect(cfg.Mongo)
	if err != nil {
		log.Fatalf("Could not connect to MongoDB: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Could not create indexes: %v", err)
	}

	if cfg.Seed.Enabled {
		if err := database.SeedSampleData(ctx, db); err != nil {
			log.Fatalf("Could not seed sample data: %v", err)
		}
	}

	// Photo uploads are optional; without a bucket the endpoint answers 503.
	var uploader *s3.Uploader
	if cfg.S3.Bucket != "" {
		uploader, err = s3.NewUploader(cfg.S3)
		if err != nil {
			log.Fatalf("Could not create S3 uploader: %v", err)
		}
	}

	svcs := routes.NewServices(db)
	wsHub := socket.NewHub()

	bus := events.NewBus()
	notifier := notify.New(svcs.Products, svcs.WebHooks, wsHub)
	if err := notifier.Subscribe(bus); err != nil {
		log.Fatalf("Could not subscribe webhook notifier: %v", err)
	}

	router := routes.SetupRouter(cfg, svcs, tokens, bus, uploader, wsHub)

	log.Printf("Starting API server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
