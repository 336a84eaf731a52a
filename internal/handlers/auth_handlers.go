package handlers

import (
	"net/http"

	"campground_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// Register creates a user with its camper profile and returns a token.
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if !bindJSON(c, &req, "Register") {
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Register", "Failed to register user.")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login handles user login by username or email.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if !bindJSON(c, &req, "Login") {
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Login", "Failed to login.")
		return
	}
	c.JSON(http.StatusOK, resp)
}
