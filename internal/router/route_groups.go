package router

import (
	"campground_backend/internal/handlers"
	"campground_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up registration, login and the camper profile routes.
func SetupAuthRoutes(apiGroup *gin.RouterGroup, authHandler *handlers.AuthHandler, profileHandler *handlers.ProfileHandler, secret []byte) {
	authRoutes := apiGroup.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)

		profileRoutes := authRoutes.Group("/profile")
		profileRoutes.Use(middleware.AuthMiddleware(secret))
		{
			profileRoutes.GET("", profileHandler.GetProfile)
			profileRoutes.PUT("", profileHandler.UpdateProfile)
			profileRoutes.DELETE("", profileHandler.DeleteProfile)
			profileRoutes.POST("/addpaymentmethod", profileHandler.AddPaymentMethod)
			profileRoutes.POST("/removepaymentmethod", profileHandler.RemovePaymentMethod)
			profileRoutes.POST("/cancel-reservation", profileHandler.CancelReservation)
		}
	}
}

// SetupCampsiteRoutes sets up the public catalogue plus camper and staff actions.
func SetupCampsiteRoutes(apiGroup *gin.RouterGroup, campsiteHandler *handlers.CampsiteHandler, secret []byte) {
	campsiteRoutes := apiGroup.Group("/campsites")
	{
		campsiteRoutes.GET("", campsiteHandler.ListCampsites)
		campsiteRoutes.GET("/amenities", campsiteHandler.ListAmenities)
		campsiteRoutes.GET("/:id", campsiteHandler.GetCampsite)
		campsiteRoutes.GET("/:id/availability", campsiteHandler.GetAvailability)

		camperRoutes := campsiteRoutes.Group("")
		camperRoutes.Use(middleware.AuthMiddleware(secret))
		{
			camperRoutes.POST("/:id/reserve", campsiteHandler.Reserve)
			camperRoutes.POST("/:id/review", campsiteHandler.AddReview)
		}

		staffRoutes := campsiteRoutes.Group("")
		staffRoutes.Use(middleware.AuthMiddleware(secret), middleware.StaffOnly())
		{
			staffRoutes.POST("", campsiteHandler.CreateCampsite)
			staffRoutes.PUT("/:id", campsiteHandler.UpdateCampsite)
			staffRoutes.POST("/amenities", campsiteHandler.CreateAmenity)
		}
	}
}

// SetupReportRoutes sets up the staff report routes.
func SetupReportRoutes(apiGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler, secret []byte) {
	reportRoutes := apiGroup.Group("/reports")
	reportRoutes.Use(middleware.AuthMiddleware(secret), middleware.StaffOnly())
	{
		reportRoutes.GET("", reportHandler.GetReportIndex)
		reportRoutes.GET("/sales", reportHandler.GetSalesReport)
		reportRoutes.GET("/reservations", reportHandler.GetReservationReport)
	}
}
