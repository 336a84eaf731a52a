package router

import (
	"net/http"

	"campground_backend/internal/config"
	"campground_backend/internal/events"
	"campground_backend/internal/handlers"
	"campground_backend/internal/middleware"
	"campground_backend/internal/repositories"
	"campground_backend/internal/services"
	"campground_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// New builds the engine with the global middleware chain and all routes.
// rdb may be nil, in which case rate limiting is skipped.
func New(db *sqlx.DB, cfg *config.Config, publisher events.Publisher, rdb *redis.Client) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(utils.GinLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	engine.Use(cors.New(corsConfig))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	Setup(engine, db, cfg, publisher, rdb)
	return engine
}

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sqlx.DB, cfg *config.Config, publisher events.Publisher, rdb *redis.Client) {
	// Initialize Repositories
	authRepo := repositories.NewAuthRepository(db)
	camperRepo := repositories.NewCamperRepository(db)
	paymentRepo := repositories.NewPaymentMethodRepository(db)
	campsiteRepo := repositories.NewCampsiteRepository(db)
	amenityRepo := repositories.NewAmenityRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	reservationRepo := repositories.NewReservationRepository(db)

	// Initialize Services
	authService := services.NewAuthService(authRepo, camperRepo, db, cfg.JWTSecret, cfg.JWTTTL)
	campsiteService := services.NewCampsiteService(campsiteRepo, amenityRepo, reviewRepo, camperRepo, db)
	availabilityService := services.NewAvailabilityService(campsiteRepo, reservationRepo)
	reservationService := services.NewReservationService(reservationRepo, campsiteRepo, camperRepo, publisher, db)
	paymentService := services.NewPaymentMethodService(paymentRepo, camperRepo, db)
	profileService := services.NewProfileService(authRepo, camperRepo, paymentRepo, reservationRepo, campsiteService, db)
	reportService := services.NewReportService(reservationRepo)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(profileService, paymentService, reservationService)
	campsiteHandler := handlers.NewCampsiteHandler(campsiteService, availabilityService, reservationService)
	reportHandler := handlers.NewReportHandler(reportService)

	secret := []byte(cfg.JWTSecret)
	root := engine.Group("")
	root.Use(middleware.RateLimit(cfg.RateLimit, rdb))

	SetupAuthRoutes(root, authHandler, profileHandler, secret)
	SetupCampsiteRoutes(root, campsiteHandler, secret)
	SetupReportRoutes(root, reportHandler, secret)
}
