package handlers

import (
	"net/http"
	"strconv"

	"campground_backend/internal/services"
	"campground_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CampsiteHandler serves campsites, their availability, reservations,
// reviews and the amenity catalogue.
type CampsiteHandler struct {
	campsiteService     services.CampsiteService
	availabilityService services.AvailabilityService
	reservationService  services.ReservationService
}

// NewCampsiteHandler creates a new CampsiteHandler.
func NewCampsiteHandler(cs services.CampsiteService, as services.AvailabilityService, rs services.ReservationService) *CampsiteHandler {
	return &CampsiteHandler{campsiteService: cs, availabilityService: as, reservationService: rs}
}

// ListCampsites returns every campsite with images, reviews and amenities.
func (h *CampsiteHandler) ListCampsites(c *gin.Context) {
	campsites, err := h.campsiteService.ListCampsites(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "ListCampsites", "Failed to retrieve campsites.")
		return
	}
	c.JSON(http.StatusOK, campsites)
}

// GetCampsite returns a single campsite.
func (h *CampsiteHandler) GetCampsite(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "GetCampsite")
	if !ok {
		return
	}

	campsite, err := h.campsiteService.GetCampsite(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "GetCampsite", "Failed to retrieve campsite.")
		return
	}
	c.JSON(http.StatusOK, campsite)
}

// CreateCampsite handles staff creation of a campsite.
func (h *CampsiteHandler) CreateCampsite(c *gin.Context) {
	var req services.CreateCampsiteRequest
	if !bindJSON(c, &req, "CreateCampsite") {
		return
	}

	campsite, err := h.campsiteService.CreateCampsite(c.Request.Context(), requestContext(c), req)
	if err != nil {
		respondServiceError(c, err, "CreateCampsite", "Failed to create campsite.")
		return
	}
	c.JSON(http.StatusCreated, campsite)
}

// UpdateCampsite handles a partial staff update of a campsite.
func (h *CampsiteHandler) UpdateCampsite(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "UpdateCampsite")
	if !ok {
		return
	}
	var req services.UpdateCampsiteRequest
	if !bindJSON(c, &req, "UpdateCampsite") {
		return
	}

	campsite, err := h.campsiteService.UpdateCampsite(c.Request.Context(), requestContext(c), id, req)
	if err != nil {
		respondServiceError(c, err, "UpdateCampsite", "Failed to update campsite.")
		return
	}
	c.JSON(http.StatusOK, campsite)
}

// GetAvailability returns the per-day calendar for ?month=&year=, defaulting
// to the current month.
func (h *CampsiteHandler) GetAvailability(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "GetAvailability")
	if !ok {
		return
	}
	month, ok := queryInt(c, "month")
	if !ok {
		return
	}
	year, ok := queryInt(c, "year")
	if !ok {
		return
	}

	days, err := h.availabilityService.GetAvailability(c.Request.Context(), requestContext(c), id, month, year)
	if err != nil {
		respondServiceError(c, err, "GetAvailability", "Failed to compute availability.")
		return
	}
	c.JSON(http.StatusOK, days)
}

// Reserve books the campsite for the acting camper.
func (h *CampsiteHandler) Reserve(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "Reserve")
	if !ok {
		return
	}
	var req services.CreateReservationRequest
	if !bindJSON(c, &req, "Reserve") {
		return
	}

	reservation, err := h.reservationService.CreateReservation(c.Request.Context(), requestContext(c), id, req)
	if err != nil {
		respondServiceError(c, err, "Reserve", "Failed to create reservation.")
		return
	}
	c.JSON(http.StatusCreated, reservation)
}

// AddReview records a rating and optional comment from the acting camper.
func (h *CampsiteHandler) AddReview(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "AddReview")
	if !ok {
		return
	}
	var req services.CreateReviewRequest
	if !bindJSON(c, &req, "AddReview") {
		return
	}

	review, err := h.campsiteService.AddReview(c.Request.Context(), requestContext(c), id, req)
	if err != nil {
		respondServiceError(c, err, "AddReview", "Failed to add review.")
		return
	}
	c.JSON(http.StatusCreated, review)
}

// ListAmenities returns the amenity catalogue.
func (h *CampsiteHandler) ListAmenities(c *gin.Context) {
	amenities, err := h.campsiteService.ListAmenities(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "ListAmenities", "Failed to retrieve amenities.")
		return
	}
	c.JSON(http.StatusOK, amenities)
}

// CreateAmenity adds a named amenity to the catalogue.
func (h *CampsiteHandler) CreateAmenity(c *gin.Context) {
	var req services.CreateAmenityRequest
	if !bindJSON(c, &req, "CreateAmenity") {
		return
	}

	amenity, err := h.campsiteService.CreateAmenity(c.Request.Context(), requestContext(c), req)
	if err != nil {
		respondServiceError(c, err, "CreateAmenity", "Failed to create amenity.")
		return
	}
	c.JSON(http.StatusCreated, amenity)
}

// queryInt reads an optional integer query parameter; absent means zero.
func queryInt(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		utils.RespondValidationFailed(c, name+" must be an integer")
		return 0, false
	}
	return v, true
}
