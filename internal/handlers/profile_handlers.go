package handlers

import (
	"net/http"

	"campground_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// ProfileHandler serves the /auth/profile endpoints of the acting camper.
type ProfileHandler struct {
	profileService     services.ProfileService
	paymentService     services.PaymentMethodService
	reservationService services.ReservationService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(ps services.ProfileService, pms services.PaymentMethodService, rs services.ReservationService) *ProfileHandler {
	return &ProfileHandler{profileService: ps, paymentService: pms, reservationService: rs}
}

// GetProfile returns the camper profile with payment methods and reservation history.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileService.GetProfile(c.Request.Context(), requestContext(c))
	if err != nil {
		respondServiceError(c, err, "GetProfile", "Failed to retrieve profile.")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile applies a partial update of age and phone number.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req services.UpdateProfileRequest
	if !bindJSON(c, &req, "UpdateProfile") {
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), requestContext(c), req)
	if err != nil {
		respondServiceError(c, err, "UpdateProfile", "Failed to update profile.")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// DeleteProfile removes the account and everything it owns.
func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	if err := h.profileService.DeleteProfile(c.Request.Context(), requestContext(c)); err != nil {
		respondServiceError(c, err, "DeleteProfile", "Failed to delete profile.")
		return
	}
	c.Status(http.StatusNoContent)
}

// AddPaymentMethod stores a card for the acting camper.
func (h *ProfileHandler) AddPaymentMethod(c *gin.Context) {
	var req services.AddPaymentMethodRequest
	if !bindJSON(c, &req, "AddPaymentMethod") {
		return
	}

	pm, err := h.paymentService.AddPaymentMethod(c.Request.Context(), requestContext(c), req)
	if err != nil {
		respondServiceError(c, err, "AddPaymentMethod", "Failed to add payment method.")
		return
	}
	c.JSON(http.StatusCreated, pm)
}

// RemovePaymentMethod deletes one of the acting camper's cards.
func (h *ProfileHandler) RemovePaymentMethod(c *gin.Context) {
	var req services.RemovePaymentMethodRequest
	if !bindJSON(c, &req, "RemovePaymentMethod") {
		return
	}

	if err := h.paymentService.RemovePaymentMethod(c.Request.Context(), requestContext(c), req.PaymentMethodID); err != nil {
		respondServiceError(c, err, "RemovePaymentMethod", "Failed to remove payment method.")
		return
	}
	c.Status(http.StatusNoContent)
}

// CancelReservation cancels a reservation owned by the acting camper.
func (h *ProfileHandler) CancelReservation(c *gin.Context) {
	var req services.CancelReservationRequest
	if !bindJSON(c, &req, "CancelReservation") {
		return
	}

	reservation, err := h.reservationService.CancelReservation(c.Request.Context(), requestContext(c), req.ReservationID)
	if err != nil {
		respondServiceError(c, err, "CancelReservation", "Failed to cancel reservation.")
		return
	}
	c.JSON(http.StatusOK, reservation)
}
