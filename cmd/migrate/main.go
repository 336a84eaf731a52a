// Command migrate applies the database schema and can grant staff access.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"campground_backend/internal/config"
	"campground_backend/internal/database"
	"campground_backend/internal/repositories"
	"campground_backend/internal/services"
	"campground_backend/pkg/utils"
)

func main() {
	promote := flag.String("promote", "", "username to grant staff access after migrating")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	utils.InitLogger(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Open(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := database.ApplySchema(ctx, db); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}
	utils.LogInfo("Schema applied", map[string]interface{}{"driver": cfg.DB.Driver})

	if *promote == "" {
		return
	}
	authService := services.NewAuthService(
		repositories.NewAuthRepository(db),
		repositories.NewCamperRepository(db),
		db, cfg.JWTSecret, cfg.JWTTTL,
	)
	if err := authService.PromoteToStaff(ctx, *promote); err != nil {
		log.Fatalf("Failed to promote %s: %v", *promote, err)
	}
	utils.LogInfo("User promoted to staff", map[string]interface{}{"username": *promote})
}
