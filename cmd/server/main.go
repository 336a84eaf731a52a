package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campground_backend/internal/config"
	"campground_backend/internal/database"
	"campground_backend/internal/events"
	"campground_backend/internal/router"
	"campground_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize Logger
	utils.InitLogger(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Open(cfg.DB)
	if err != nil {
		utils.LogError(err, "Failed to open database")
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if cfg.DB.ApplySchema {
		if err := database.ApplySchema(context.Background(), db); err != nil {
			utils.LogError(err, "Failed to apply schema")
			log.Fatalf("Failed to apply schema: %v", err)
		}
	}
	utils.LogInfo("Database initialized", map[string]interface{}{"driver": cfg.DB.Driver})

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			utils.LogWarn(err, "Redis unreachable, rate limiting will pass requests through", map[string]interface{}{"addr": cfg.Redis.Addr})
		}
		cancel()
	}

	publisher := events.NewPublisher(cfg.AMQPURL, cfg.AMQPQueue)
	defer publisher.Close()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := router.New(db, cfg, publisher, rdb)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.LogInfo("Server starting", map[string]interface{}{"port": cfg.Port, "env": cfg.AppEnv})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.LogError(err, "Failed to start server")
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.LogInfo("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.LogError(err, "Server forced to shutdown")
	}
}
