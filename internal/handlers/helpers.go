package handlers

import (
	"errors"
	"net/http"
	"time"

	"campground_backend/internal/middleware"
	"campground_backend/internal/services"
	"campground_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// requestContext builds the acting identity from values set by
// middleware.AuthMiddleware. Public routes get a zero UserID.
func requestContext(c *gin.Context) services.RequestContext {
	return services.RequestContext{
		UserID:  c.GetInt64(middleware.ContextUserID),
		IsStaff: c.GetBool(middleware.ContextIsStaff),
		Now:     time.Now(),
	}
}

// parseIDParam reads a positive int64 path parameter, responding 400 on failure.
func parseIDParam(c *gin.Context, name, op string) (int64, bool) {
	raw := c.Param(name)
	id, err := utils.StrToInt64(raw)
	if err != nil || id <= 0 {
		utils.LogError(errors.New("invalid id "+raw), op+": Invalid "+name+" parameter")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid "+name+" format.", raw))
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, req interface{}, op string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.LogError(err, op+": Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return false
	}
	return true
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// failMsg is shown for unexpected errors, whose cause is only logged.
func respondServiceError(c *gin.Context, err error, op, failMsg string) {
	utils.LogError(err, op+": Error from service for user "+utils.Int64ToStr(c.GetInt64(middleware.ContextUserID)))
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Resource not found.", err.Error()))
	case errors.Is(err, services.ErrInvalidRange):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeInvalidRange, "Invalid date range.", err.Error()))
	case errors.Is(err, services.ErrInvalidInput):
		utils.RespondValidationFailed(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "You do not have permission to perform this action.", err.Error()))
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid username or password.", err.Error()))
	default:
		utils.RespondInternalError(c, failMsg)
	}
}
